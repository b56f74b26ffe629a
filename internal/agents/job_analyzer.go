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

// Bounds on the ATS keyword set size.
const (
	minATSKeywords = 15
	maxATSKeywords = 25
)

// JobAnalyzer extracts skill requirements and ATS keywords from a job
// posting.
type JobAnalyzer struct {
	llm llm.Client
}

// NewJobAnalyzer creates a job analyzer.
func NewJobAnalyzer(client llm.Client) *JobAnalyzer {
	return &JobAnalyzer{llm: client}
}

// Analyze runs the job analysis stage. An empty description yields
// empty sets rather than an error.
func (a *JobAnalyzer) Analyze(ctx context.Context, job *types.JobPosting) (*types.JobAnalysis, error) {
	const stage = "job_analyzer"

	if strings.TrimSpace(job.Description) == "" {
		return &types.JobAnalysis{
			RequiredSkills:      []string{},
			PreferredSkills:     []string{},
			KeyResponsibilities: []string{},
			Qualifications:      []string{},
			ATSKeywords:         []string{},
			SeniorityLevel:      string(types.CareerMid),
		}, nil
	}

	template, err := prompts.Get("agents.json", "analyze-job")
	if err != nil {
		return nil, fmt.Errorf("%s: %w", stage, err)
	}
	prompt := prompts.Format(template, map[string]string{
		"Title":       job.Title,
		"Company":     job.Company,
		"Description": job.Description,
	})

	response, err := a.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &APICallError{Stage: stage, Cause: err}
	}

	if err := schemas.Validate(schemas.JobAnalysis, response); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	var analysis types.JobAnalysis
	if err := json.Unmarshal([]byte(response), &analysis); err != nil {
		return nil, &SchemaError{Stage: stage, Cause: err}
	}

	analysis.ATSKeywords = normalizeATSKeywords(&analysis, job)

	return &analysis, nil
}

// normalizeATSKeywords lowercases and deduplicates the model's keyword
// list, topping it up from the skill lists when too short and capping
// it when too long.
func normalizeATSKeywords(analysis *types.JobAnalysis, job *types.JobPosting) []string {
	seen := make(map[string]bool)
	keywords := make([]string, 0, maxATSKeywords)

	add := func(candidates []string) {
		for _, candidate := range candidates {
			if len(keywords) >= maxATSKeywords {
				return
			}
			normalized := strings.ToLower(strings.TrimSpace(candidate))
			if normalized == "" || seen[normalized] {
				continue
			}
			seen[normalized] = true
			keywords = append(keywords, normalized)
		}
	}

	add(analysis.ATSKeywords)
	if len(keywords) < minATSKeywords {
		add(analysis.RequiredSkills)
		add(analysis.PreferredSkills)
		add(job.Skills)
	}

	return keywords
}
