package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// yearsClaim matches phrases like "12 years of experience" or
// "12+ years' experience" in generated prose.
var yearsClaim = regexp.MustCompile(`(\d+)\+?\s*years?['’]?\s*(?:of\s+)?experience`)

// Reviewer judges generated content. The length and coherence checks
// are deterministic; the model contributes the quality score and
// revision suggestions. A deterministic check failing always overrides
// a model that claims the check passed.
type Reviewer struct {
	llm llm.Client
	cfg config.PipelineConfig
}

// NewReviewer creates a reviewer.
func NewReviewer(client llm.Client, cfg config.PipelineConfig) *Reviewer {
	return &Reviewer{llm: client, cfg: cfg}
}

// Review runs the review stage.
func (r *Reviewer) Review(ctx context.Context, content *types.EnhancedContent, profile *types.Profile, analysis *types.ProfileAnalysis, job *types.JobAnalysis) (*types.ReviewResult, error) {
	const stage = "reviewer"

	violations := CoherenceViolations(content, profile, analysis)
	wordCount := content.WordCount()
	lengthOK := wordCount <= r.cfg.MaxWords

	result, err := r.reviewWithModel(ctx, content, profile, job)
	if err != nil {
		return nil, err
	}

	result.LengthCheck = lengthOK
	if len(violations) > 0 {
		result.CoherenceCheck = false
		result.Suggestions = append(violations, result.Suggestions...)
	}
	if !lengthOK {
		result.Suggestions = append(result.Suggestions,
			fmt.Sprintf("content is %d words, cut it to at most %d", wordCount, r.cfg.MaxWords))
	}

	result.Approved = result.CoherenceCheck && result.LengthCheck &&
		result.QualityScore >= r.cfg.ReviewThreshold

	return result, nil
}

func (r *Reviewer) reviewWithModel(ctx context.Context, content *types.EnhancedContent, profile *types.Profile, job *types.JobAnalysis) (*types.ReviewResult, error) {
	const stage = "reviewer"

	template, err := prompts.Get("agents.json", "review-content")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	profileJSON, _ := json.Marshal(profile)
	jobJSON, _ := json.Marshal(job)
	contentJSON, _ := json.Marshal(content)

	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON":     string(profileJSON),
		"JobAnalysisJSON": string(jobJSON),
		"ContentJSON":     string(contentJSON),
		"ReviewThreshold": fmt.Sprintf("%.0f", r.cfg.ReviewThreshold),
	})

	response, err := r.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Stage: stage, Cause: err}
	}

	if err := schemas.Validate(schemas.ReviewResult, response); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	var result types.ReviewResult
	if err := json.Unmarshal([]byte(response), &result); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}
	return &result, nil
}

// CoherenceViolations lists the ways the content contradicts the source
// profile: unknown employers or titles, altered dates, invented skills,
// or a years-of-experience claim above the computed real value.
func CoherenceViolations(content *types.EnhancedContent, profile *types.Profile, analysis *types.ProfileAnalysis) []string {
	var violations []string

	for _, exp := range content.Experiences {
		source := findSourceExperience(profile, exp)
		if source == nil {
			violations = append(violations,
				fmt.Sprintf("experience %q at %q does not exist in the profile", exp.Title, exp.Company))
			continue
		}
		if exp.StartDate != source.StartDate || exp.EndDate != source.EndDate {
			violations = append(violations,
				fmt.Sprintf("dates for %q at %q differ from the profile", exp.Title, exp.Company))
		}
	}

	profileSkills := skillSet(profile.Skills)
	for _, skill := range content.Skills {
		if !profileSkills[strings.ToLower(strings.TrimSpace(skill))] {
			violations = append(violations,
				fmt.Sprintf("skill %q is not listed in the profile", skill))
		}
	}

	if analysis != nil {
		if claimed, ok := claimedYears(content.ProfessionalSummary); ok && float64(claimed) > analysis.YearsOfExperience+1 {
			violations = append(violations,
				fmt.Sprintf("summary claims %d years of experience, profile supports %.1f", claimed, analysis.YearsOfExperience))
		}
	}

	return violations
}

// findSourceExperience matches a generated experience back to the
// profile by employer and title.
func findSourceExperience(profile *types.Profile, exp types.EnhancedExperience) *types.Experience {
	for i := range profile.Experiences {
		if strings.EqualFold(profile.Experiences[i].Company, exp.Company) &&
			strings.EqualFold(profile.Experiences[i].Title, exp.Title) {
			return &profile.Experiences[i]
		}
	}
	return nil
}

// claimedYears extracts a stated years-of-experience figure from prose.
func claimedYears(text string) (int, bool) {
	match := yearsClaim.FindStringSubmatch(strings.ToLower(text))
	if match == nil {
		return 0, false
	}
	years, err := strconv.Atoi(match[1])
	if err != nil {
		return 0, false
	}
	return years, true
}
