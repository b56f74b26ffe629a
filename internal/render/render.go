// Package render turns accepted resume content into deliverable
// artifacts: HTML via the template registry, PDF via headless Chrome,
// and DOCX built programmatically.
package render

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/jonathan/resume-forge/internal/templates"
	"github.com/jonathan/resume-forge/internal/types"
)

// Data is the payload a resume template is executed with.
type Data struct {
	Name     string
	Headline string
	Email    string
	Phone    string
	Location string
	Content  *types.EnhancedContent
}

// NewData assembles template data from a profile's contact fields and
// the generated content.
func NewData(profile *types.Profile, content *types.EnhancedContent) *Data {
	return &Data{
		Name:     profile.Name,
		Headline: profile.Headline,
		Email:    profile.Email,
		Phone:    profile.Phone,
		Location: profile.Location,
		Content:  content,
	}
}

// FillHTML executes a resume template with the given data.
func FillHTML(tmpl *templates.Template, data *Data) (string, error) {
	parsed, err := template.New(tmpl.ID).Parse(tmpl.HTML)
	if err != nil {
		return "", &RenderError{Format: "html", Message: fmt.Sprintf("template %s does not parse", tmpl.ID), Cause: err}
	}

	var buf bytes.Buffer
	if err := parsed.Execute(&buf, data); err != nil {
		return "", &RenderError{Format: "html", Message: fmt.Sprintf("template %s failed to execute", tmpl.ID), Cause: err}
	}
	return buf.String(), nil
}
