package agents

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// ProfileAnalyzer produces a structured assessment of a candidate
// profile. Years of experience and career level are computed here, not
// by the model; the model only partitions skills and names strengths
// and domains.
type ProfileAnalyzer struct {
	llm llm.Client
	cfg config.PipelineConfig
	now func() time.Time
}

// NewProfileAnalyzer creates a profile analyzer.
func NewProfileAnalyzer(client llm.Client, cfg config.PipelineConfig) *ProfileAnalyzer {
	return &ProfileAnalyzer{
		llm: client,
		cfg: cfg,
		now: time.Now,
	}
}

// CareerLevelFor classifies total years of experience using the
// configured band boundaries.
func CareerLevelFor(years float64, levels [4]float64) types.CareerLevel {
	switch {
	case years < levels[0]:
		return types.CareerEntry
	case years < levels[1]:
		return types.CareerMid
	case years < levels[2]:
		return types.CareerSenior
	case years < levels[3]:
		return types.CareerLead
	default:
		return types.CareerExecutive
	}
}

// Analyze runs the profile analysis stage.
func (a *ProfileAnalyzer) Analyze(ctx context.Context, profile *types.Profile) (*types.ProfileAnalysis, error) {
	const stage = "profile_analyzer"

	years := profile.YearsOfExperience(a.now())
	level := CareerLevelFor(years, a.cfg.CareerLevels)

	profileJSON, err := json.Marshal(profile)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to encode profile: %w", stage, err)
	}

	template, err := prompts.Get("agents.json", "analyze-profile")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}
	prompt := prompts.Format(template, map[string]string{
		"ProfileJSON":       string(profileJSON),
		"YearsOfExperience": fmt.Sprintf("%.1f", years),
		"CareerLevel":       string(level),
	})

	response, err := a.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Stage: stage, Cause: err}
	}

	if err := schemas.Validate(schemas.ProfileAnalysis, response); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	var analysis types.ProfileAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	// The computed figures are authoritative regardless of what the
	// model echoed back.
	analysis.YearsOfExperience = years
	analysis.CareerLevel = level

	return &analysis, nil
}
