package types

import "encoding/json"

// JobPosting represents a normalized job posting produced by a scrape.
// Read-only after creation; RawPayload preserves the provider response verbatim.
type JobPosting struct {
	URL            string          `json:"url"`
	Platform       string          `json:"platform,omitempty"`
	Title          string          `json:"title"`
	Company        string          `json:"company"`
	Location       string          `json:"location,omitempty"`
	Description    string          `json:"description"`
	EmploymentType string          `json:"employment_type,omitempty"`
	SeniorityLevel string          `json:"seniority_level,omitempty"`
	IsRemote       bool            `json:"is_remote,omitempty"`
	Skills         []string        `json:"skills,omitempty"`
	RawPayload     json.RawMessage `json:"raw_payload,omitempty"`
}

// Employment type constants for JobPosting.EmploymentType
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentInternship = "internship"
)

// Seniority level constants shared by JobPosting and JobAnalysis
const (
	SeniorityEntry     = "entry"
	SeniorityMid       = "mid"
	SenioritySenior    = "senior"
	SeniorityLead      = "lead"
	SeniorityExecutive = "executive"
)
