package server

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/resume-forge/internal/db"
	"github.com/jonathan/resume-forge/internal/types"
)

// DBClient is the persistence surface the server depends on. *db.DB
// satisfies it; tests substitute fakes.
type DBClient interface {
	// Users
	CreateUser(ctx context.Context, name, email, phone string) (uuid.UUID, error)
	GetUser(ctx context.Context, userID uuid.UUID) (*db.User, error)
	GetUserByEmail(ctx context.Context, email string) (*db.User, error)
	CheckEmailExists(ctx context.Context, email string) (bool, error)
	UpdatePassword(ctx context.Context, userID uuid.UUID, passwordHash string) error

	// Profiles
	UpsertProfile(ctx context.Context, userID uuid.UUID, profile *types.Profile) (*db.Profile, error)
	GetProfileByUserID(ctx context.Context, userID uuid.UUID) (*db.Profile, error)

	// Job postings
	CreateJobPosting(ctx context.Context, userID *uuid.UUID, posting *types.JobPosting) (*db.JobPosting, error)
	GetJobPosting(ctx context.Context, id uuid.UUID) (*db.JobPosting, error)
	GetFreshJobPostingByURL(ctx context.Context, url string, maxAge time.Duration) (*db.JobPosting, error)
	ListJobPostingsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.JobPosting, error)

	// Resumes
	CreateResume(ctx context.Context, input *db.ResumeInput) (*db.Resume, error)
	GetResume(ctx context.Context, id uuid.UUID) (*db.Resume, error)
	ListResumesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]db.Resume, error)
}
