package scrape

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestApifyClientEnabled(t *testing.T) {
	assert.False(t, (*ApifyClient)(nil).Enabled())
	assert.False(t, NewApifyClient("", "actor").Enabled())
	assert.False(t, NewApifyClient("token", "").Enabled())
	assert.True(t, NewApifyClient("token", "actor").Enabled())
}

func TestApifyRunSync(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Contains(t, r.URL.Path, "/v2/acts/acme~job-scraper/run-sync-get-dataset-items")
		assert.Equal(t, "test-token", r.URL.Query().Get("token"))

		var input apifyInput
		require.NoError(t, json.NewDecoder(r.Body).Decode(&input))
		require.Len(t, input.StartURLs, 1)
		assert.Equal(t, "https://example.com/jobs/1", input.StartURLs[0].URL)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{
			"url": "https://example.com/jobs/1",
			"title": "Backend Engineer",
			"companyName": "Acme",
			"location": "Remote",
			"descriptionText": "Build services in Go.",
			"skills": ["go", "postgresql"]
		}]`))
	}))
	defer server.Close()

	client := NewApifyClient("test-token", "acme~job-scraper")
	client.baseURL = server.URL

	items, err := client.RunSync(context.Background(), "https://example.com/jobs/1")
	require.NoError(t, err)
	require.Len(t, items, 1)

	assert.Equal(t, "Backend Engineer", items[0].Title)
	assert.Equal(t, "Acme", items[0].CompanyName)
	assert.Equal(t, []string{"go", "postgresql"}, items[0].Skills)
	assert.NotEmpty(t, items[0].Raw)
}

func TestApifyRunSyncActorFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusPaymentRequired)
	}))
	defer server.Close()

	client := NewApifyClient("test-token", "acme~job-scraper")
	client.baseURL = server.URL

	_, err := client.RunSync(context.Background(), "https://example.com/jobs/1")
	require.Error(t, err)

	var fetchErr *FetchError
	require.True(t, errors.As(err, &fetchErr))
	assert.Contains(t, fetchErr.Message, "402")
}

func TestApifyRunSyncBadPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"not": "an array"}`))
	}))
	defer server.Close()

	client := NewApifyClient("test-token", "acme~job-scraper")
	client.baseURL = server.URL

	_, err := client.RunSync(context.Background(), "https://example.com/jobs/1")
	require.Error(t, err)

	var parseErr *ParseError
	assert.True(t, errors.As(err, &parseErr))
}

func TestApifyRunSyncNotConfigured(t *testing.T) {
	client := NewApifyClient("", "")
	_, err := client.RunSync(context.Background(), "https://example.com/jobs/1")
	assert.Error(t, err)
}
