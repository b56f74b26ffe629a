package types

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLatestExperienceIndexPrefersOpenEnded(t *testing.T) {
	profile := &Profile{
		Experiences: []Experience{
			{Title: "Engineer", Company: "Acme", StartDate: "2015-01", EndDate: "2019-12"},
			{Title: "Senior Engineer", Company: "Beta", StartDate: "2020-01", Current: true},
			{Title: "Intern", Company: "Gamma", StartDate: "2014-06", EndDate: "2014-09"},
		},
	}

	assert.Equal(t, 1, profile.LatestExperienceIndex())
}

func TestLatestExperienceIndexByEndDate(t *testing.T) {
	profile := &Profile{
		Experiences: []Experience{
			{Company: "Acme", StartDate: "2015-01", EndDate: "2017-06"},
			{Company: "Beta", StartDate: "2017-07", EndDate: "2021-03"},
		},
	}

	assert.Equal(t, 1, profile.LatestExperienceIndex())
}

func TestLatestExperienceIndexEmpty(t *testing.T) {
	profile := &Profile{}
	assert.Equal(t, -1, profile.LatestExperienceIndex())
}

func TestExperiencesByRecency(t *testing.T) {
	profile := &Profile{
		Experiences: []Experience{
			{Company: "Oldest", StartDate: "2010-01", EndDate: "2012-01"},
			{Company: "Current", StartDate: "2020-01", Current: true},
			{Company: "Middle", StartDate: "2012-02", EndDate: "2019-12"},
		},
	}

	order := profile.ExperiencesByRecency()
	require.Len(t, order, 3)
	assert.Equal(t, []int{1, 2, 0}, order)
}

func TestParseFlexibleDate(t *testing.T) {
	assert.Equal(t, 2021, ParseFlexibleDate("2021-03").Year())
	assert.Equal(t, time.March, ParseFlexibleDate("2021-03-15").Month())
	assert.Equal(t, 1999, ParseFlexibleDate("1999").Year())
	assert.True(t, ParseFlexibleDate("not a date").IsZero())
}

func TestYearsOfExperienceMergesOverlaps(t *testing.T) {
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	profile := &Profile{
		Experiences: []Experience{
			{Company: "Acme", StartDate: "2016-01", EndDate: "2020-01"},
			// Overlaps the first by two years; should not double count
			{Company: "Side", StartDate: "2018-01", EndDate: "2020-01"},
			{Company: "Beta", StartDate: "2021-01", Current: true},
		},
	}

	years := profile.YearsOfExperience(now)
	assert.InDelta(t, 9.0, years, 0.2)
}

func TestYearsOfExperienceEmpty(t *testing.T) {
	profile := &Profile{}
	assert.Zero(t, profile.YearsOfExperience(time.Now()))
}

func TestIsEmpty(t *testing.T) {
	assert.True(t, (&Profile{Name: "A"}).IsEmpty())
	assert.False(t, (&Profile{Skills: []string{"Go"}}).IsEmpty())
	assert.False(t, (&Profile{Experiences: []Experience{{Company: "Acme"}}}).IsEmpty())
}

func TestWordCount(t *testing.T) {
	content := &EnhancedContent{
		ProfessionalSummary: "Seasoned engineer with ten years of experience",
		Experiences: []EnhancedExperience{
			{Title: "Engineer", Company: "Acme", Achievements: []string{"Shipped the flagship product"}},
		},
		Skills: []string{"Go", "PostgreSQL"},
	}

	assert.Equal(t, 15, content.WordCount())
}

func TestScrapeJobRequestValidate(t *testing.T) {
	valid := &ScrapeJobRequest{URL: "https://boards.greenhouse.io/acme/jobs/123"}
	require.NoError(t, valid.Validate())

	invalid := &ScrapeJobRequest{URL: "not-a-url"}
	assert.Error(t, invalid.Validate())

	empty := &ScrapeJobRequest{}
	assert.Error(t, empty.Validate())
}
