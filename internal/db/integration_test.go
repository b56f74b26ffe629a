//go:build integration

package db

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/types"
)

const testCacheTTL = 24 * time.Hour

// getTestDB connects to the database named by TEST_DATABASE_URL,
// skipping the test when the variable is unset.
func getTestDB(t *testing.T) *DB {
	t.Helper()

	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL not set; skipping integration test")
	}

	db, err := Connect(context.Background(), url)
	require.NoError(t, err)
	require.NoError(t, db.InitSchema(context.Background()))
	return db
}

func createTestUser(t *testing.T, db *DB) uuid.UUID {
	t.Helper()
	id, err := db.CreateUser(context.Background(),
		"Integration Test", uuid.New().String()+"@example.com", "")
	require.NoError(t, err)
	return id
}

func TestIntegration_UserLifecycle(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := createTestUser(t, db)

	user, err := db.GetUser(ctx, userID)
	require.NoError(t, err)
	require.NotNil(t, user)
	assert.False(t, user.PasswordSet)

	require.NoError(t, db.UpdatePassword(ctx, userID, "hash"))

	user, err = db.GetUser(ctx, userID)
	require.NoError(t, err)
	assert.True(t, user.PasswordSet)

	exists, err := db.CheckEmailExists(ctx, user.Email)
	require.NoError(t, err)
	assert.True(t, exists)
}

func TestIntegration_ProfileUpsertReplacesWholesale(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := createTestUser(t, db)

	first := &types.Profile{Name: "Ada", Skills: []string{"Go", "SQL"}}
	_, err := db.UpsertProfile(ctx, userID, first)
	require.NoError(t, err)

	second := &types.Profile{Name: "Ada", Skills: []string{"Rust"}}
	record, err := db.UpsertProfile(ctx, userID, second)
	require.NoError(t, err)

	decoded, err := record.DecodeProfile()
	require.NoError(t, err)
	assert.Equal(t, []string{"Rust"}, decoded.Skills)
	require.NotNil(t, record.LastSyncedAt)
}

func TestIntegration_JobPostingAndResume(t *testing.T) {
	db := getTestDB(t)
	defer db.Close()
	ctx := context.Background()

	userID := createTestUser(t, db)

	posting := &types.JobPosting{
		URL:         "https://boards.greenhouse.io/acme/jobs/" + uuid.New().String(),
		Platform:    "greenhouse",
		Title:       "Backend Engineer",
		Company:     "Acme",
		Description: "Build services in Go.",
		Skills:      []string{"Go", "PostgreSQL"},
	}

	stored, err := db.CreateJobPosting(ctx, &userID, posting)
	require.NoError(t, err)
	assert.Equal(t, posting.Title, stored.Title)

	fresh, err := db.GetFreshJobPostingByURL(ctx, posting.URL, testCacheTTL)
	require.NoError(t, err)
	require.NotNil(t, fresh)
	assert.Equal(t, stored.ID, fresh.ID)

	resume, err := db.CreateResume(ctx, &ResumeInput{
		UserID:       userID,
		JobPostingID: &stored.ID,
		TemplateID:   "modern",
		Content: &types.EnhancedContent{
			ProfessionalSummary: "Engineer.",
			Skills:              []string{"Go"},
		},
		MatchScore:   82,
		QualityScore: 90,
		PDFPath:      "generated/test.pdf",
	})
	require.NoError(t, err)

	history, err := db.ListResumesByUser(ctx, userID, 10)
	require.NoError(t, err)
	require.NotEmpty(t, history)
	assert.Equal(t, resume.ID, history[0].ID)
}
