package db

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
)

// User represents a user account
type User struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	PasswordHash string    `json:"-"` // Never serialize to JSON
	PasswordSet  bool      `json:"password_set"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Profile is a stored candidate profile. Data holds the full profile JSON;
// sync operations replace it wholesale.
type Profile struct {
	ID           uuid.UUID       `json:"id"`
	UserID       uuid.UUID       `json:"user_id"`
	Data         json.RawMessage `json:"data"`
	LastSyncedAt *time.Time      `json:"last_synced_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// JobPosting is a stored scraped job posting, read-only after creation.
type JobPosting struct {
	ID             uuid.UUID       `json:"id"`
	UserID         *uuid.UUID      `json:"user_id,omitempty"`
	URL            string          `json:"url"`
	Platform       string          `json:"platform,omitempty"`
	Title          string          `json:"title"`
	Company        string          `json:"company,omitempty"`
	Location       string          `json:"location,omitempty"`
	Description    string          `json:"description"`
	EmploymentType string          `json:"employment_type,omitempty"`
	SeniorityLevel string          `json:"seniority_level,omitempty"`
	IsRemote       bool            `json:"is_remote,omitempty"`
	Skills         StringArray     `json:"skills"`
	RawPayload     json.RawMessage `json:"raw_payload,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// Resume is a stored generation result. Rows are immutable; regenerating
// for the same job inserts a new row, which is what powers history.
type Resume struct {
	ID               uuid.UUID       `json:"id"`
	UserID           uuid.UUID       `json:"user_id"`
	JobPostingID     *uuid.UUID      `json:"job_posting_id,omitempty"`
	TemplateID       string          `json:"template_id,omitempty"`
	GeneratedContent json.RawMessage `json:"generated_content"`
	MatchScore       float64         `json:"match_score"`
	QualityScore     float64         `json:"quality_score"`
	PDFPath          string          `json:"pdf_path,omitempty"`
	DOCXPath         string          `json:"docx_path,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// StringArray handles JSONB string arrays
type StringArray []string

// Scan implements the Scanner interface for StringArray
func (a *StringArray) Scan(src interface{}) error {
	if src == nil {
		*a = []string{}
		return nil
	}
	switch source := src.(type) {
	case []byte:
		return json.Unmarshal(source, a)
	case string:
		return json.Unmarshal([]byte(source), a)
	default:
		return errors.New("unsupported source type for StringArray")
	}
}

// Value implements the Valuer interface for StringArray
func (a StringArray) Value() (driver.Value, error) {
	if a == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(a)
}
