package types

import (
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// ScrapeJobRequest represents the request to scrape a job posting URL.
type ScrapeJobRequest struct {
	URL string `json:"url" validate:"required,url"`
}

// GenerateResumeRequest represents the request to generate a tailored resume.
// TemplateID is optional; when empty the best-matching template is chosen.
type GenerateResumeRequest struct {
	JobID      uuid.UUID `json:"job_id" validate:"required"`
	TemplateID string    `json:"template_id,omitempty"`
}

// UpdateProfileRequest carries a full profile replacement (manual edit or sync payload).
type UpdateProfileRequest struct {
	Profile Profile `json:"profile" validate:"required"`
}

// Validate validates the ScrapeJobRequest using the validator.
func (r *ScrapeJobRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}

// Validate validates the GenerateResumeRequest using the validator.
func (r *GenerateResumeRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.JobID == uuid.Nil {
		return &ValidationError{Field: "job_id", Message: "job_id is required"}
	}
	return nil
}

// Validate validates the UpdateProfileRequest using the validator.
func (r *UpdateProfileRequest) Validate() error {
	validate := validator.New()
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Profile.Name == "" {
		return &ValidationError{Field: "profile.name", Message: "name is required"}
	}
	return nil
}

// ValidationError reports a rejected input field with a user-facing message.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return "invalid " + e.Field + ": " + e.Message
}
