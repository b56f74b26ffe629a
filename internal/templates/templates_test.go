package templates

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/types"
)

func TestInferCategory(t *testing.T) {
	tests := []struct {
		filename string
		expected Category
	}{
		{"sales_professional.html", CategorySales},
		{"accounting-ledger.html", CategoryAccounting},
		{"finance_sheet.html", CategoryAccounting},
		{"technical_grid.html", CategoryTechnical},
		{"software-engineer.html", CategoryTechnical},
		{"legal_brief.html", CategoryLegal},
		{"management_summary.html", CategoryManagement},
		{"executive-profile.html", CategoryManagement},
		{"classic_serif.html", CategoryClassic},
		{"modern.html", CategoryModern},
		{"something_else.html", CategoryModern},
		{"/tmp/themes/legal_two_col.html", CategoryLegal},
	}

	for _, tt := range tests {
		t.Run(tt.filename, func(t *testing.T) {
			assert.Equal(t, tt.expected, InferCategory(tt.filename))
		})
	}
}

func TestNewRegistryLoadsDefaults(t *testing.T) {
	registry, err := NewRegistry("")
	require.NoError(t, err)

	list := registry.List()
	require.NotEmpty(t, list)

	modern := registry.Get("modern")
	require.NotNil(t, modern)
	assert.Equal(t, CategoryModern, modern.Category)
	assert.Contains(t, modern.HTML, "{{.Content.ProfessionalSummary}}")

	technical := registry.Get("technical")
	require.NotNil(t, technical)
	assert.Equal(t, CategoryTechnical, technical.Category)
}

func TestNewRegistryOverlaysDirectory(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "legal_brief.html"), []byte("<html>{{.Name}}</html>"), 0o644))
	require.NoError(t, os.WriteFile(
		filepath.Join(dir, "notes.txt"), []byte("not a template"), 0o644))

	registry, err := NewRegistry(dir)
	require.NoError(t, err)

	legal := registry.Get("legal_brief")
	require.NotNil(t, legal)
	assert.Equal(t, CategoryLegal, legal.Category)
	assert.Equal(t, "Legal Brief", legal.Name)

	assert.Nil(t, registry.Get("notes"))
}

func TestNewRegistryMissingDirIsFine(t *testing.T) {
	registry, err := NewRegistry("/definitely/not/here")
	require.NoError(t, err)
	assert.NotEmpty(t, registry.List())
}

func TestScoreForJob(t *testing.T) {
	engineeringJob := &types.JobPosting{
		Title:       "Senior Software Engineer",
		Description: "Build backend services with a strong engineering culture.",
	}

	technicalScore := ScoreForJob(CategoryTechnical, engineeringJob)
	salesScore := ScoreForJob(CategorySales, engineeringJob)

	assert.Greater(t, technicalScore, salesScore)
	assert.Equal(t, baseAffinity, salesScore)
	assert.LessOrEqual(t, technicalScore, maxAffinityScore)
}

func TestScoreForJobFormalityBonus(t *testing.T) {
	legalJob := &types.JobPosting{
		Title:       "Corporate Counsel",
		Description: "Support regulatory filings for the firm.",
	}

	withBonus := ScoreForJob(CategoryLegal, legalJob)
	// legal keyword hit in description plus counsel in title plus
	// formality bonus
	assert.Greater(t, withBonus, baseAffinity+titleHitBonus)
}

func TestRankForJob(t *testing.T) {
	registry, err := NewRegistry("")
	require.NoError(t, err)

	job := &types.JobPosting{
		Title:       "Staff Software Engineer",
		Description: "Backend developer role on a devops-minded data team.",
	}

	ranked := registry.RankForJob(job)
	require.NotEmpty(t, ranked)
	assert.Equal(t, "technical", ranked[0].ID)

	for i := 1; i < len(ranked); i++ {
		assert.GreaterOrEqual(t, ranked[i-1].Score, ranked[i].Score)
	}

	best := registry.BestForJob(job)
	require.NotNil(t, best)
	assert.Equal(t, "technical", best.ID)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "Modern Two Column", displayName("modern_two_column"))
	assert.Equal(t, "Legal Brief", displayName("legal-brief"))
	assert.Equal(t, "Classic", displayName("classic"))
}
