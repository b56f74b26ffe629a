package db

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-forge/internal/types"
)

const jobPostingColumns = `id, user_id, url, platform, title, company, location, description,
	employment_type, seniority_level, is_remote, skills, raw_payload, created_at`

// CreateJobPosting inserts a normalized job posting and returns the stored row.
func (db *DB) CreateJobPosting(ctx context.Context, userID *uuid.UUID, posting *types.JobPosting) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`INSERT INTO job_postings
		   (user_id, url, platform, title, company, location, description,
		    employment_type, seniority_level, is_remote, skills, raw_payload)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 RETURNING `+jobPostingColumns,
		userID, posting.URL, posting.Platform, posting.Title, posting.Company,
		posting.Location, posting.Description, posting.EmploymentType,
		posting.SeniorityLevel, posting.IsRemote, StringArray(posting.Skills),
		[]byte(posting.RawPayload),
	)

	record, err := scanJobPosting(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create job posting: %w", err)
	}
	return record, nil
}

// GetJobPosting retrieves a job posting by ID. Returns (nil, nil) when not found.
func (db *DB) GetJobPosting(ctx context.Context, id uuid.UUID) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+` FROM job_postings WHERE id = $1`, id)

	record, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting: %w", err)
	}
	return record, nil
}

// GetFreshJobPostingByURL retrieves the most recent posting for a URL if it
// was scraped within maxAge. Returns (nil, nil) when absent or stale.
func (db *DB) GetFreshJobPostingByURL(ctx context.Context, url string, maxAge time.Duration) (*JobPosting, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE url = $1 AND created_at > $2
		 ORDER BY created_at DESC
		 LIMIT 1`,
		url, time.Now().Add(-maxAge),
	)

	record, err := scanJobPosting(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get job posting by url: %w", err)
	}
	return record, nil
}

// ListJobPostingsByUser returns a user's scraped postings, newest first.
func (db *DB) ListJobPostingsByUser(ctx context.Context, userID uuid.UUID, limit int) ([]JobPosting, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+jobPostingColumns+`
		 FROM job_postings
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list job postings: %w", err)
	}
	defer rows.Close()

	var postings []JobPosting
	for rows.Next() {
		record, err := scanJobPosting(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan job posting: %w", err)
		}
		postings = append(postings, *record)
	}
	return postings, rows.Err()
}

// ToPosting converts a stored row back to the domain type.
func (j *JobPosting) ToPosting() *types.JobPosting {
	return &types.JobPosting{
		URL:            j.URL,
		Platform:       j.Platform,
		Title:          j.Title,
		Company:        j.Company,
		Location:       j.Location,
		Description:    j.Description,
		EmploymentType: j.EmploymentType,
		SeniorityLevel: j.SeniorityLevel,
		IsRemote:       j.IsRemote,
		Skills:         []string(j.Skills),
		RawPayload:     j.RawPayload,
	}
}

func scanJobPosting(row pgx.Row) (*JobPosting, error) {
	var record JobPosting
	err := row.Scan(&record.ID, &record.UserID, &record.URL, &record.Platform,
		&record.Title, &record.Company, &record.Location, &record.Description,
		&record.EmploymentType, &record.SeniorityLevel, &record.IsRemote,
		&record.Skills, &record.RawPayload, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
