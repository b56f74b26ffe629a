package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// ContentWriter produces the tailored resume content from the analysis
// and selection decisions. Facts the model must not change (employers,
// titles, dates, locations) are stamped back from the source profile
// after generation, so a drifting model cannot corrupt them.
type ContentWriter struct {
	llm llm.Client
}

// NewContentWriter creates a content writer.
func NewContentWriter(client llm.Client) *ContentWriter {
	return &ContentWriter{llm: client}
}

// WriteRequest carries everything one content writing call needs.
// Feedback and PreviousDraft are set on revision rounds only.
type WriteRequest struct {
	Profile         *types.Profile
	ProfileAnalysis *types.ProfileAnalysis
	JobAnalysis     *types.JobAnalysis
	Match           *types.MatchAnalysis
	Feedback        []string
	PreviousDraft   *types.EnhancedContent
}

// Write runs the content writing stage.
func (w *ContentWriter) Write(ctx context.Context, req *WriteRequest) (*types.EnhancedContent, error) {
	const stage = "content_writer"

	prompt, err := w.buildPrompt(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	response, err := w.llm.GenerateJSON(ctx, prompt, llm.TierAdvanced)
	if err != nil {
		return nil, &APICallError{Stage: stage, Cause: err}
	}

	if err := schemas.Validate(schemas.EnhancedContent, response); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	var content types.EnhancedContent
	if err := json.Unmarshal([]byte(response), &content); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	enforceSelection(&content, req.Profile, req.Match)

	return &content, nil
}

func (w *ContentWriter) buildPrompt(req *WriteRequest) (string, error) {
	template, err := prompts.Get("agents.json", "write-content")
	if err != nil {
		return "", err
	}

	profileJSON, err := json.Marshal(req.Profile)
	if err != nil {
		return "", fmt.Errorf("failed to encode profile: %w", err)
	}
	profileAnalysisJSON, _ := json.Marshal(req.ProfileAnalysis)
	jobAnalysisJSON, _ := json.Marshal(req.JobAnalysis)
	matchJSON, _ := json.Marshal(req.Match)

	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON":         string(profileJSON),
		"ProfileAnalysisJSON": string(profileAnalysisJSON),
		"JobAnalysisJSON":     string(jobAnalysisJSON),
		"MatchJSON":           string(matchJSON),
	})

	if len(req.Feedback) > 0 && req.PreviousDraft != nil {
		revision, err := prompts.Get("agents.json", "write-content-revision")
		if err != nil {
			return "", err
		}
		draftJSON, _ := json.Marshal(req.PreviousDraft)
		prompt += prompts.Format(revision, map[string]string{
			"Feedback":          strings.Join(req.Feedback, "\n- "),
			"PreviousDraftJSON": string(draftJSON),
		})
	}

	return prompt, nil
}

// enforceSelection replaces the model's experience list with the
// selected source experiences, keeping the model's rewritten
// achievement bullets where they can be matched by employer and title.
// Selected skills are used verbatim.
func enforceSelection(content *types.EnhancedContent, profile *types.Profile, match *types.MatchAnalysis) {
	experiences := make([]types.EnhancedExperience, 0, len(match.SelectedExperiences))
	for _, idx := range match.SelectedExperiences {
		if idx < 0 || idx >= len(profile.Experiences) {
			continue
		}
		source := profile.Experiences[idx]

		achievements := source.Achievements
		if rewritten := findRewritten(content.Experiences, source); rewritten != nil && len(rewritten.Achievements) > 0 {
			achievements = rewritten.Achievements
		}

		experiences = append(experiences, types.EnhancedExperience{
			Title:        source.Title,
			Company:      source.Company,
			Location:     source.Location,
			StartDate:    source.StartDate,
			EndDate:      source.EndDate,
			Current:      source.Current,
			Achievements: achievements,
		})
	}
	content.Experiences = experiences

	if len(match.SelectedSkills) > 0 {
		content.Skills = match.SelectedSkills
	}

	education := make([]types.Education, 0, len(match.SelectedEducation))
	for _, idx := range match.SelectedEducation {
		if idx < 0 || idx >= len(profile.Education) {
			continue
		}
		education = append(education, profile.Education[idx])
	}
	content.Education = education
}

// findRewritten locates the model's version of an experience by
// employer and title.
func findRewritten(experiences []types.EnhancedExperience, source types.Experience) *types.EnhancedExperience {
	for i := range experiences {
		if strings.EqualFold(experiences[i].Company, source.Company) &&
			strings.EqualFold(experiences[i].Title, source.Title) {
			return &experiences[i]
		}
	}
	return nil
}
