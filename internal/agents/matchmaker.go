package agents

import (
	"sort"
	"strings"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/types"
)

// Weights for the overall match score components.
const (
	experienceWeight = 0.5
	skillWeight      = 0.3
	educationWeight  = 0.2

	requiredSkillWeight  = 2.0
	preferredSkillWeight = 1.0
)

// MatchMaker selects which experiences, education entries and skills go
// into the resume. It is fully rule based; no model call is involved,
// so its output is reproducible for identical inputs.
type MatchMaker struct {
	cfg config.PipelineConfig
}

// NewMatchMaker creates a matchmaker with the given thresholds.
func NewMatchMaker(cfg config.PipelineConfig) *MatchMaker {
	return &MatchMaker{cfg: cfg}
}

// Match scores the profile against the job and makes the selection
// decisions. A profile with no skills and no experiences yields a zero
// score and empty selections.
func (m *MatchMaker) Match(profile *types.Profile, job *types.JobAnalysis) *types.MatchAnalysis {
	if profile.IsEmpty() {
		return &types.MatchAnalysis{
			OverallMatchScore:   0,
			ExperienceMatches:   []types.ExperienceMatch{},
			SelectedExperiences: []int{},
			SelectedSkills:      []string{},
			SelectedEducation:   []int{},
		}
	}

	matches := m.scoreExperiences(profile, job)
	selected := m.selectExperiences(profile, matches)
	selectedEducation := selectEducation(profile.Education)
	selectedSkills, matchedCount := m.prioritizeSkills(profile.Skills, job)
	missing := missingSkills(profile, job.RequiredSkills)

	return &types.MatchAnalysis{
		OverallMatchScore:   m.overallScore(matches, selected, selectedEducation, matchedCount, job),
		ExperienceMatches:   matches,
		SelectedExperiences: selected,
		SelectedSkills:      selectedSkills,
		SelectedEducation:   selectedEducation,
		MissingSkills:       missing,
	}
}

// scoreExperiences computes a 0-100 relevance score per experience as
// the weighted fraction of the job's skills evidenced in the
// experience's text.
func (m *MatchMaker) scoreExperiences(profile *types.Profile, job *types.JobAnalysis) []types.ExperienceMatch {
	totalWeight := requiredSkillWeight*float64(len(job.RequiredSkills)) +
		preferredSkillWeight*float64(len(job.PreferredSkills))

	matches := make([]types.ExperienceMatch, len(profile.Experiences))
	for i, exp := range profile.Experiences {
		text := experienceText(exp)

		var hitWeight float64
		var matching []string
		for _, skill := range job.RequiredSkills {
			if containsSkill(text, skill) {
				hitWeight += requiredSkillWeight
				matching = append(matching, strings.ToLower(skill))
			}
		}
		for _, skill := range job.PreferredSkills {
			if containsSkill(text, skill) {
				hitWeight += preferredSkillWeight
				matching = append(matching, strings.ToLower(skill))
			}
		}

		var score float64
		if totalWeight > 0 {
			score = clampScore(100 * hitWeight / totalWeight)
		}

		matches[i] = types.ExperienceMatch{
			ExperienceIndex: i,
			RelevanceScore:  score,
			MatchingSkills:  matching,
		}
	}
	return matches
}

// selectExperiences applies the selection rule: the most recent
// experience is always in, further experiences join in descending score
// order when above the inclusion threshold, capped at the configured
// maximum.
func (m *MatchMaker) selectExperiences(profile *types.Profile, matches []types.ExperienceMatch) []int {
	latest := profile.LatestExperienceIndex()
	if latest < 0 {
		return []int{}
	}

	selected := []int{latest}

	candidates := make([]types.ExperienceMatch, 0, len(matches))
	for _, match := range matches {
		if match.ExperienceIndex == latest {
			continue
		}
		if match.RelevanceScore > m.cfg.RelevanceThreshold {
			candidates = append(candidates, match)
		}
	}
	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].RelevanceScore > candidates[j].RelevanceScore
	})

	for _, candidate := range candidates {
		if len(selected) >= m.cfg.MaxExperiences {
			break
		}
		selected = append(selected, candidate.ExperienceIndex)
	}

	// Present selections in the profile's original order
	sort.Ints(selected)
	return selected
}

// selectEducation keeps the most recent degree and any earlier degree
// in a different field. A Bachelor's in the same field as a later
// Master's is dropped.
func selectEducation(education []types.Education) []int {
	if len(education) == 0 {
		return []int{}
	}

	indices := make([]int, len(education))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		dateA := types.ParseFlexibleDate(education[indices[a]].GraduationDate)
		dateB := types.ParseFlexibleDate(education[indices[b]].GraduationDate)
		return dateA.After(dateB)
	})

	selected := []int{indices[0]}
	seenFields := map[string]bool{
		normalizeField(education[indices[0]]): true,
	}
	for _, idx := range indices[1:] {
		field := normalizeField(education[idx])
		if seenFields[field] {
			continue
		}
		seenFields[field] = true
		selected = append(selected, idx)
	}

	sort.Ints(selected)
	return selected
}

// prioritizeSkills orders profile skills with job matches first
// (required matches before preferred), then the rest in profile order,
// truncated to the configured maximum. Returns the ordered list and the
// number of job-matching skills.
func (m *MatchMaker) prioritizeSkills(skills []string, job *types.JobAnalysis) ([]string, int) {
	required := skillSet(job.RequiredSkills)
	preferred := skillSet(job.PreferredSkills)

	var requiredMatches, preferredMatches, rest []string
	for _, skill := range skills {
		key := strings.ToLower(strings.TrimSpace(skill))
		switch {
		case required[key]:
			requiredMatches = append(requiredMatches, skill)
		case preferred[key]:
			preferredMatches = append(preferredMatches, skill)
		default:
			rest = append(rest, skill)
		}
	}

	ordered := make([]string, 0, len(skills))
	ordered = append(ordered, requiredMatches...)
	ordered = append(ordered, preferredMatches...)
	ordered = append(ordered, rest...)

	if len(ordered) > m.cfg.MaxSkills {
		ordered = ordered[:m.cfg.MaxSkills]
	}
	return ordered, len(requiredMatches) + len(preferredMatches)
}

// missingSkills lists required job skills absent from the profile.
func missingSkills(profile *types.Profile, required []string) []string {
	have := skillSet(profile.Skills)
	var missing []string
	for _, skill := range required {
		if !have[strings.ToLower(strings.TrimSpace(skill))] {
			missing = append(missing, strings.ToLower(skill))
		}
	}
	return missing
}

// overallScore aggregates experience relevance, skill overlap and
// education fit into a single 0-100 figure.
func (m *MatchMaker) overallScore(matches []types.ExperienceMatch, selected []int, selectedEducation []int, matchedSkills int, job *types.JobAnalysis) float64 {
	var experienceScore float64
	if len(selected) > 0 {
		var sum float64
		for _, idx := range selected {
			sum += matches[idx].RelevanceScore
		}
		experienceScore = sum / float64(len(selected))
	}

	var skillScore float64
	if jobSkillCount := len(job.RequiredSkills) + len(job.PreferredSkills); jobSkillCount > 0 {
		ratio := float64(matchedSkills) / float64(jobSkillCount)
		if ratio > 1 {
			ratio = 1
		}
		skillScore = 100 * ratio
	}

	var educationScore float64
	if len(selectedEducation) > 0 {
		educationScore = 100
	}

	return clampScore(experienceWeight*experienceScore +
		skillWeight*skillScore +
		educationWeight*educationScore)
}

// experienceText flattens an experience into lowercase text for skill
// matching.
func experienceText(exp types.Experience) string {
	parts := []string{exp.Title, exp.Description}
	parts = append(parts, exp.Achievements...)
	return strings.ToLower(strings.Join(parts, " "))
}

// containsSkill reports whether the lowercase text mentions the skill.
func containsSkill(loweredText, skill string) bool {
	skill = strings.ToLower(strings.TrimSpace(skill))
	if skill == "" {
		return false
	}
	return strings.Contains(loweredText, skill)
}

// skillSet builds a lowercase lookup set.
func skillSet(skills []string) map[string]bool {
	set := make(map[string]bool, len(skills))
	for _, skill := range skills {
		set[strings.ToLower(strings.TrimSpace(skill))] = true
	}
	return set
}

// normalizeField canonicalizes a degree field for the breadth rule.
// Falls back to the degree name when the field is not populated.
func normalizeField(edu types.Education) string {
	field := strings.ToLower(strings.TrimSpace(edu.Field))
	if field == "" {
		field = strings.ToLower(strings.TrimSpace(edu.Degree))
	}
	return field
}

// clampScore bounds a score to [0,100].
func clampScore(score float64) float64 {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
