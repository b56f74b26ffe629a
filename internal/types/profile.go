// Package types provides type definitions for structured data used throughout the resume-forge system.
package types

import (
	"sort"
	"strings"
	"time"
)

// Profile represents a candidate profile owned by a user.
// Sync operations replace the structured fields wholesale; partial merges are not performed.
type Profile struct {
	Name           string          `json:"name"`
	Email          string          `json:"email,omitempty"`
	Phone          string          `json:"phone,omitempty"`
	Location       string          `json:"location,omitempty"`
	Headline       string          `json:"headline,omitempty"`
	Summary        string          `json:"summary,omitempty"`
	Experiences    []Experience    `json:"experiences"`
	Education      []Education     `json:"education"`
	Skills         []string        `json:"skills"`
	Certifications []Certification `json:"certifications,omitempty"`
}

// Experience represents a single work experience entry.
// An open-ended position (Current=true or empty EndDate) is treated as most recent.
type Experience struct {
	Title        string   `json:"title"`
	Company      string   `json:"company"`
	Location     string   `json:"location,omitempty"`
	StartDate    string   `json:"start_date"` // YYYY-MM or YYYY-MM-DD
	EndDate      string   `json:"end_date,omitempty"`
	Current      bool     `json:"current,omitempty"`
	Description  string   `json:"description,omitempty"`
	Achievements []string `json:"achievements,omitempty"`
}

// Education represents a single education entry.
type Education struct {
	Degree         string  `json:"degree"`
	School         string  `json:"school"`
	Field          string  `json:"field,omitempty"`
	GraduationDate string  `json:"graduation_date,omitempty"`
	GPA            float64 `json:"gpa,omitempty"`
}

// Certification represents a professional certification.
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer,omitempty"`
	Date   string `json:"date,omitempty"`
}

// IsEmpty reports whether the profile has neither experiences nor skills.
// Empty profiles short-circuit the staged pipeline and use the legacy path.
func (p *Profile) IsEmpty() bool {
	return len(p.Experiences) == 0 && len(p.Skills) == 0
}

// LatestExperienceIndex returns the index of the most recent experience.
// Open-ended positions sort before dated ones; among dated positions the
// latest end date wins. Returns -1 for an empty experience list.
func (p *Profile) LatestExperienceIndex() int {
	if len(p.Experiences) == 0 {
		return -1
	}

	best := 0
	for i := 1; i < len(p.Experiences); i++ {
		if experienceEndsAfter(p.Experiences[i], p.Experiences[best]) {
			best = i
		}
	}
	return best
}

// ExperiencesByRecency returns experience indices ordered most recent first.
func (p *Profile) ExperiencesByRecency() []int {
	indices := make([]int, len(p.Experiences))
	for i := range indices {
		indices[i] = i
	}
	sort.SliceStable(indices, func(a, b int) bool {
		return experienceEndsAfter(p.Experiences[indices[a]], p.Experiences[indices[b]])
	})
	return indices
}

// experienceEndsAfter reports whether a ends after b.
func experienceEndsAfter(a, b Experience) bool {
	aOpen := a.Current || strings.TrimSpace(a.EndDate) == ""
	bOpen := b.Current || strings.TrimSpace(b.EndDate) == ""
	if aOpen != bOpen {
		return aOpen
	}
	if aOpen && bOpen {
		// Both open-ended: later start wins
		return ParseFlexibleDate(a.StartDate).After(ParseFlexibleDate(b.StartDate))
	}
	return ParseFlexibleDate(a.EndDate).After(ParseFlexibleDate(b.EndDate))
}

// ParseFlexibleDate parses dates in YYYY, YYYY-MM, or YYYY-MM-DD form.
// Unparseable input yields the zero time, which sorts before any real date.
func ParseFlexibleDate(s string) time.Time {
	s = strings.TrimSpace(s)
	for _, layout := range []string{"2006-01-02", "2006-01", "2006", "Jan 2006", "January 2006"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}

// YearsOfExperience computes total years across all experiences, counting
// overlapping positions once. Open-ended positions run through the present.
func (p *Profile) YearsOfExperience(now time.Time) float64 {
	type span struct{ start, end time.Time }
	spans := make([]span, 0, len(p.Experiences))
	for _, exp := range p.Experiences {
		start := ParseFlexibleDate(exp.StartDate)
		if start.IsZero() {
			continue
		}
		end := now
		if !exp.Current && strings.TrimSpace(exp.EndDate) != "" {
			end = ParseFlexibleDate(exp.EndDate)
			if end.IsZero() || end.After(now) {
				end = now
			}
		}
		if end.Before(start) {
			continue
		}
		spans = append(spans, span{start, end})
	}

	if len(spans) == 0 {
		return 0
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].start.Before(spans[j].start) })

	// Merge overlapping spans before summing
	var total time.Duration
	cur := spans[0]
	for _, s := range spans[1:] {
		if s.start.After(cur.end) {
			total += cur.end.Sub(cur.start)
			cur = s
			continue
		}
		if s.end.After(cur.end) {
			cur.end = s.end
		}
	}
	total += cur.end.Sub(cur.start)

	return total.Hours() / (24 * 365.25)
}
