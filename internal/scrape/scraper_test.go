package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/types"
)

// stubLLM returns canned responses for scraper tests.
type stubLLM struct {
	response string
	err      error
	prompts  []string
}

func (s *stubLLM) GenerateContent(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) GenerateJSON(ctx context.Context, prompt string, tier llm.ModelTier) (string, error) {
	s.prompts = append(s.prompts, prompt)
	return s.response, s.err
}

func (s *stubLLM) GetModel(tier llm.ModelTier) string {
	return "stub-model"
}

func (s *stubLLM) Close() error { return nil }

const postingJSON = `{
	"title": "Backend Engineer",
	"company": "Acme",
	"location": "Remote, US",
	"description": "Build and operate Go services.",
	"employment_type": "Full-Time",
	"seniority_level": "Senior",
	"skills": ["Go", "go", "PostgreSQL", ""]
}`

func TestScraperHTTPPath(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Enough content to skip the browser fallback
		fmt.Fprintf(w, `<html><body><div class="job-description">%s</div></body></html>`,
			longDescription())
	}))
	defer server.Close()

	client := &stubLLM{response: postingJSON}
	scraper := NewScraper(client, nil, false)

	posting, err := scraper.Scrape(context.Background(), server.URL+"/jobs/1")
	require.NoError(t, err)

	assert.Equal(t, "Backend Engineer", posting.Title)
	assert.Equal(t, "Acme", posting.Company)
	assert.Equal(t, server.URL+"/jobs/1", posting.URL)
	assert.Equal(t, string(PlatformUnknown), posting.Platform)
	assert.Equal(t, "full-time", posting.EmploymentType)
	assert.Equal(t, "senior", posting.SeniorityLevel)
	assert.True(t, posting.IsRemote)
	// Skills are deduplicated and lowercased, empties dropped
	assert.Equal(t, []string{"go", "postgresql"}, posting.Skills)
	assert.NotEmpty(t, posting.RawPayload)

	// The parse prompt carries the page text
	require.Len(t, client.prompts, 1)
	assert.Contains(t, client.prompts[0], "Build distributed Go services")
}

func TestScraperRejectsInvalidURL(t *testing.T) {
	scraper := NewScraper(&stubLLM{}, nil, false)

	_, err := scraper.Scrape(context.Background(), "not a url")
	assert.Error(t, err)
}

func TestScraperSchemaFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="job-description">%s</div></body></html>`, longDescription())
	}))
	defer server.Close()

	// Missing required description field
	client := &stubLLM{response: `{"title": "Engineer"}`}
	scraper := NewScraper(client, nil, false)

	_, err := scraper.Scrape(context.Background(), server.URL)
	require.Error(t, err)
	assert.IsType(t, &ParseError{}, err)
}

func TestScraperApifyPath(t *testing.T) {
	apifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`[{
			"title": "Platform Engineer",
			"companyName": "Acme",
			"location": "New York",
			"descriptionText": "Run the platform.",
			"skills": ["Kubernetes"]
		}]`))
	}))
	defer apifyServer.Close()

	apify := NewApifyClient("token", "acme~job-scraper")
	apify.baseURL = apifyServer.URL

	// The LLM stub would fail schema validation; Apify succeeding means
	// it is never consulted.
	scraper := NewScraper(&stubLLM{response: "{}"}, apify, false)

	posting, err := scraper.Scrape(context.Background(), "https://boards.greenhouse.io/acme/jobs/1")
	require.NoError(t, err)

	assert.Equal(t, "Platform Engineer", posting.Title)
	assert.Equal(t, string(PlatformGreenhouse), posting.Platform)
	assert.Equal(t, []string{"kubernetes"}, posting.Skills)
}

func TestScraperApifyFallback(t *testing.T) {
	apifyServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Empty dataset forces the HTTP fallback
		_, _ = w.Write([]byte(`[]`))
	}))
	defer apifyServer.Close()

	pageServer := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprintf(w, `<html><body><div class="job-description">%s</div></body></html>`, longDescription())
	}))
	defer pageServer.Close()

	apify := NewApifyClient("token", "acme~job-scraper")
	apify.baseURL = apifyServer.URL

	scraper := NewScraper(&stubLLM{response: postingJSON}, apify, false)

	posting, err := scraper.Scrape(context.Background(), pageServer.URL)
	require.NoError(t, err)
	assert.Equal(t, "Backend Engineer", posting.Title)
}

func TestNormalizePosting(t *testing.T) {
	posting := &types.JobPosting{
		Title:    "  Engineer  ",
		Location: "Remote (EMEA)",
		Skills:   []string{"Go", "GO", " Python "},
	}
	normalizePosting(posting, "https://jobs.lever.co/acme/1", PlatformLever)

	assert.Equal(t, "Engineer", posting.Title)
	assert.Equal(t, "https://jobs.lever.co/acme/1", posting.URL)
	assert.Equal(t, string(PlatformLever), posting.Platform)
	assert.True(t, posting.IsRemote)
	assert.Equal(t, []string{"go", "python"}, posting.Skills)
}

// longDescription returns page text comfortably above the browser
// fallback threshold.
func longDescription() string {
	text := "Build distributed Go services. "
	for len(text) < MinContentLength+100 {
		text += "We value reliability, observability and incremental delivery. "
	}
	return text
}
