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

// LegacyGenerator is the single-prompt generation path used when the
// staged pipeline cannot run. It is the last fallback level: an error
// here is terminal for the request.
type LegacyGenerator struct {
	llm llm.Client
}

// NewLegacyGenerator creates a legacy generator.
func NewLegacyGenerator(client llm.Client) *LegacyGenerator {
	return &LegacyGenerator{llm: client}
}

// Generate produces best-effort resume content directly from the
// profile and posting without the staged decomposition.
func (g *LegacyGenerator) Generate(ctx context.Context, profile *types.Profile, job *types.JobPosting) (*types.EnhancedContent, error) {
	const stage = "legacy_generator"

	template, err := prompts.Get("agents.json", "legacy-generate")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode profile: %w", stage, err)
	}

	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON": string(profileJSON),
		"Title":       job.Title,
		"Company":     job.Company,
		"Description": job.Description,
	})

	response, err := g.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
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

	ensureNonEmpty(&content, profile, job)

	return &content, nil
}

// ensureNonEmpty guarantees the legacy path never returns blank
// content, falling back to profile text when the model returned an
// empty summary.
func ensureNonEmpty(content *types.EnhancedContent, profile *types.Profile, job *types.JobPosting) {
	if strings.TrimSpace(content.ProfessionalSummary) != "" {
		return
	}
	switch {
	case strings.TrimSpace(profile.Summary) != "":
		content.ProfessionalSummary = profile.Summary
	case strings.TrimSpace(profile.Headline) != "":
		content.ProfessionalSummary = profile.Headline
	default:
		content.ProfessionalSummary = fmt.Sprintf("Candidate for the %s position at %s.", job.Title, job.Company)
	}
}
