package types

import "strings"

// EnhancedExperience is a rewritten experience entry. Company, title, dates
// and location must be carried verbatim from the source Experience; only the
// achievement bullets are rewritten.
type EnhancedExperience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date"`
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Achievements []string `json:"achievements"`
}

// EnhancedContent is the content writing stage output and, once accepted,
// the generated_content payload persisted on a Resume.
type EnhancedContent struct {
	ProfessionalSummary string               `json:"professional_summary"`
	Experiences         []EnhancedExperience `json:"experiences"`
	Skills              []string             `json:"skills"`
	Education           []Education          `json:"education,omitempty"`
	Certifications      []Certification      `json:"certifications,omitempty"`
}

// WordCount estimates the rendered length of the content for the one-page check.
func (c *EnhancedContent) WordCount() int {
	count := len(strings.Fields(c.ProfessionalSummary))
	for _, exp := range c.Experiences {
		count += len(strings.Fields(exp.Title)) + len(strings.Fields(exp.Company))
		for _, a := range exp.Achievements {
			count += len(strings.Fields(a))
		}
	}
	for _, s := range c.Skills {
		count += len(strings.Fields(s))
	}
	for _, e := range c.Education {
		count += len(strings.Fields(e.Degree)) + len(strings.Fields(e.School))
	}
	return count
}

// ReviewResult is the structured output of the review stage.
type ReviewResult struct {
	Approved       bool     `json:"approved"`
	QualityScore   float64  `json:"quality_score"` // 0-100
	CoherenceCheck bool     `json:"coherence_check"`
	LengthCheck    bool     `json:"length_check"`
	Suggestions    []string `json:"suggestions,omitempty"`
}
