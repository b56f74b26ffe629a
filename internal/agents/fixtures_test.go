package agents

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/config"
	"github.com/jonathan/resume-forge/internal/types"
)

func testPipelineConfig() config.PipelineConfig {
	return config.DefaultConfig().Pipeline
}

// sampleProfile has three experiences of which the two most recent
// overlap with the sample job's skills.
func sampleProfile() *types.Profile {
	return &types.Profile{
		Name:     "Jordan Rivera",
		Headline: "Staff Engineer",
		Summary:  "Backend engineer focused on data-heavy platforms.",
		Experiences: []types.Experience{
			{
				Title:       "Software Engineer",
				Company:     "DataCorp",
				StartDate:   "2015-06",
				EndDate:     "2018-02",
				Description: "Built reporting services in Java.",
			},
			{
				Title:       "Senior Software Engineer",
				Company:     "Acme",
				StartDate:   "2018-03",
				EndDate:     "2022-01",
				Description: "Designed Go services backed by PostgreSQL.",
				Achievements: []string{
					"Cut query latency by 40% through PostgreSQL tuning",
				},
			},
			{
				Title:       "Staff Engineer",
				Company:     "TechCo",
				StartDate:   "2022-02",
				Current:     true,
				Description: "Leads the Go platform team, running PostgreSQL and Kubernetes in production.",
			},
		},
		Education: []types.Education{
			{Degree: "MS", School: "State University", Field: "Computer Science", GraduationDate: "2015-05"},
			{Degree: "BS", School: "State University", Field: "Computer Science", GraduationDate: "2013-05"},
		},
		Skills: []string{"Go", "PostgreSQL", "Kubernetes", "Docker", "Leadership", "Java"},
	}
}

func sampleJobAnalysis() *types.JobAnalysis {
	return &types.JobAnalysis{
		RequiredSkills:  []string{"go", "postgresql"},
		PreferredSkills: []string{"kubernetes"},
		ATSKeywords:     []string{"go", "postgresql", "kubernetes", "microservices"},
		SeniorityLevel:  "senior",
	}
}

func sampleJobPosting() *types.JobPosting {
	return &types.JobPosting{
		URL:         "https://boards.greenhouse.io/acme/jobs/1",
		Title:       "Senior Backend Engineer",
		Company:     "Acme",
		Description: "We need a senior engineer. Go and PostgreSQL are required. Kubernetes is a plus.",
	}
}

// contentDraft builds schema-valid writer output for the sample
// profile's two most recent experiences.
func contentDraft(summary string) *types.EnhancedContent {
	profile := sampleProfile()
	return &types.EnhancedContent{
		ProfessionalSummary: summary,
		Experiences: []types.EnhancedExperience{
			{
				Title:        profile.Experiences[1].Title,
				Company:      profile.Experiences[1].Company,
				StartDate:    profile.Experiences[1].StartDate,
				EndDate:      profile.Experiences[1].EndDate,
				Achievements: []string{"Cut query latency by 40% through PostgreSQL tuning"},
			},
			{
				Title:        profile.Experiences[2].Title,
				Company:      profile.Experiences[2].Company,
				StartDate:    profile.Experiences[2].StartDate,
				Current:      true,
				Achievements: []string{"Led the Go platform team running PostgreSQL and Kubernetes"},
			},
		},
		Skills:    []string{"Go", "PostgreSQL", "Kubernetes"},
		Education: []types.Education{profile.Education[0]},
	}
}

func mustJSON(t *testing.T, v interface{}) string {
	t.Helper()
	data, err := json.Marshal(v)
	require.NoError(t, err)
	return string(data)
}

func profileAnalysisJSON(t *testing.T) string {
	return mustJSON(t, &types.ProfileAnalysis{
		KeyStrengths:      []string{"distributed systems"},
		TechnicalSkills:   []string{"Go", "PostgreSQL", "Kubernetes", "Docker", "Java"},
		SoftSkills:        []string{"Leadership"},
		YearsOfExperience: 1, // deliberately wrong, computed value wins
		CareerLevel:       types.CareerEntry,
		Domains:           []string{"data platforms"},
	})
}

func jobAnalysisJSON(t *testing.T) string {
	return mustJSON(t, sampleJobAnalysis())
}

func reviewJSON(t *testing.T, approved bool, score float64, suggestions ...string) string {
	return mustJSON(t, &types.ReviewResult{
		Approved:       approved,
		QualityScore:   score,
		CoherenceCheck: true,
		LengthCheck:    true,
		Suggestions:    suggestions,
	})
}
