package db

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jonathan/resume-forge/internal/types"
)

// ResumeInput carries everything needed to persist one successful generation.
// A Resume row is only written after rendering succeeds; failed generations
// leave no partial rows behind.
type ResumeInput struct {
	UserID       uuid.UUID
	JobPostingID *uuid.UUID
	TemplateID   string
	Content      *types.EnhancedContent
	MatchScore   float64
	QualityScore float64
	PDFPath      string
	DOCXPath     string
}

const resumeColumns = `id, user_id, job_posting_id, template_id, generated_content,
	match_score, quality_score, pdf_path, docx_path, created_at`

// CreateResume inserts a finished resume and returns the stored row.
func (db *DB) CreateResume(ctx context.Context, input *ResumeInput) (*Resume, error) {
	content, err := json.Marshal(input.Content)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal generated content: %w", err)
	}

	row := db.pool.QueryRow(ctx,
		`INSERT INTO resumes
		   (user_id, job_posting_id, template_id, generated_content,
		    match_score, quality_score, pdf_path, docx_path)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING `+resumeColumns,
		input.UserID, input.JobPostingID, input.TemplateID, content,
		input.MatchScore, input.QualityScore, input.PDFPath, input.DOCXPath,
	)

	record, err := scanResume(row)
	if err != nil {
		return nil, fmt.Errorf("failed to create resume: %w", err)
	}
	return record, nil
}

// GetResume retrieves a resume by ID. Returns (nil, nil) when not found.
func (db *DB) GetResume(ctx context.Context, id uuid.UUID) (*Resume, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+resumeColumns+` FROM resumes WHERE id = $1`, id)

	record, err := scanResume(row)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get resume: %w", err)
	}
	return record, nil
}

// ListResumesByUser returns a user's generation history, newest first.
func (db *DB) ListResumesByUser(ctx context.Context, userID uuid.UUID, limit int) ([]Resume, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := db.pool.Query(ctx,
		`SELECT `+resumeColumns+`
		 FROM resumes
		 WHERE user_id = $1
		 ORDER BY created_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to list resumes: %w", err)
	}
	defer rows.Close()

	var resumes []Resume
	for rows.Next() {
		record, err := scanResume(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan resume: %w", err)
		}
		resumes = append(resumes, *record)
	}
	return resumes, rows.Err()
}

// DecodeContent unmarshals the stored generated content.
func (r *Resume) DecodeContent() (*types.EnhancedContent, error) {
	var content types.EnhancedContent
	if err := json.Unmarshal(r.GeneratedContent, &content); err != nil {
		return nil, fmt.Errorf("failed to decode generated content: %w", err)
	}
	return &content, nil
}

func scanResume(row pgx.Row) (*Resume, error) {
	var record Resume
	err := row.Scan(&record.ID, &record.UserID, &record.JobPostingID,
		&record.TemplateID, &record.GeneratedContent, &record.MatchScore,
		&record.QualityScore, &record.PDFPath, &record.DOCXPath, &record.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &record, nil
}
