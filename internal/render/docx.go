package render

import (
	"fmt"
	"strings"

	"github.com/gingfrederik/docx"
)

// Font sizes in half points as Word expects them.
const (
	nameSize    = 36
	headingSize = 26
	bodySize    = 21
)

// RenderDOCX writes the resume as a Word document at path, mirroring
// the section order of the HTML templates.
func RenderDOCX(data *Data, path string) error {
	f := docx.NewFile()

	f.AddParagraph().AddText(data.Name).Size(nameSize)
	if contact := contactLine(data); contact != "" {
		f.AddParagraph().AddText(contact).Size(bodySize)
	}

	addHeading(f, "Summary")
	f.AddParagraph().AddText(data.Content.ProfessionalSummary).Size(bodySize)

	addHeading(f, "Experience")
	for _, exp := range data.Content.Experiences {
		end := exp.EndDate
		if exp.Current {
			end = "Present"
		}
		f.AddParagraph().AddText(fmt.Sprintf("%s, %s (%s - %s)", exp.Title, exp.Company, exp.StartDate, end)).Size(bodySize)
		for _, achievement := range exp.Achievements {
			f.AddParagraph().AddText("  - " + achievement).Size(bodySize)
		}
	}

	addHeading(f, "Skills")
	f.AddParagraph().AddText(strings.Join(data.Content.Skills, ", ")).Size(bodySize)

	if len(data.Content.Education) > 0 {
		addHeading(f, "Education")
		for _, edu := range data.Content.Education {
			line := edu.Degree
			if edu.Field != "" {
				line += ", " + edu.Field
			}
			line += " - " + edu.School
			if edu.GraduationDate != "" {
				line += " (" + edu.GraduationDate + ")"
			}
			f.AddParagraph().AddText(line).Size(bodySize)
		}
	}

	if len(data.Content.Certifications) > 0 {
		addHeading(f, "Certifications")
		for _, cert := range data.Content.Certifications {
			line := cert.Name
			if cert.Issuer != "" {
				line += " - " + cert.Issuer
			}
			f.AddParagraph().AddText(line).Size(bodySize)
		}
	}

	if err := f.Save(path); err != nil {
		return &RenderError{Format: "docx", Message: "failed to save document", Cause: err}
	}
	return nil
}

func addHeading(f *docx.File, title string) {
	f.AddParagraph().AddText(title).Size(headingSize)
}

func contactLine(data *Data) string {
	var parts []string
	for _, part := range []string{data.Email, data.Phone, data.Location} {
		if strings.TrimSpace(part) != "" {
			parts = append(parts, part)
		}
	}
	return strings.Join(parts, " | ")
}
