package scrape

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// ApifyBaseURL is the Apify API root. Overridable for testing.
const ApifyBaseURL = "https://api.apify.com"

// ApifyTimeout bounds a synchronous actor run. Actor runs include a
// full browser session on Apify's side, so this is generous.
const ApifyTimeout = 120 * time.Second

// ApifyClient calls Apify actors synchronously and returns their
// dataset items. Used as the primary scraping path when a token is
// configured.
type ApifyClient struct {
	baseURL    string
	token      string
	actor      string
	httpClient *http.Client
}

// NewApifyClient creates an Apify client for the given actor.
func NewApifyClient(token, actor string) *ApifyClient {
	return &ApifyClient{
		baseURL: ApifyBaseURL,
		token:   token,
		actor:   actor,
		httpClient: &http.Client{
			Timeout: ApifyTimeout,
		},
	}
}

// Enabled reports whether the client has credentials to run.
func (c *ApifyClient) Enabled() bool {
	return c != nil && c.token != "" && c.actor != ""
}

// apifyInput is the standard input shape for scraper actors.
type apifyInput struct {
	StartURLs []apifyStartURL `json:"startUrls"`
}

type apifyStartURL struct {
	URL string `json:"url"`
}

// ApifyItem is a single dataset item returned by a scraper actor.
// Fields cover the common output shape of job-scraper actors; the raw
// item is preserved for anything actor-specific.
type ApifyItem struct {
	URL            string   `json:"url"`
	Title          string   `json:"title"`
	CompanyName    string   `json:"companyName"`
	Location       string   `json:"location"`
	Description    string   `json:"descriptionText"`
	EmploymentType string   `json:"employmentType"`
	SeniorityLevel string   `json:"seniorityLevel"`
	Skills         []string `json:"skills"`

	Raw json.RawMessage `json:"-"`
}

// RunSync runs the configured actor against a single URL and returns
// the dataset items produced by the run.
func (c *ApifyClient) RunSync(ctx context.Context, targetURL string) ([]ApifyItem, error) {
	if !c.Enabled() {
		return nil, &FetchError{
			URL:     targetURL,
			Message: "apify client not configured",
		}
	}

	input := apifyInput{
		StartURLs: []apifyStartURL{{URL: targetURL}},
	}
	body, err := json.Marshal(input)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal actor input: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/acts/%s/run-sync-get-dataset-items?token=%s",
		c.baseURL, url.PathEscape(c.actor), url.QueryEscape(c.token))

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &FetchError{
			URL:     targetURL,
			Message: "apify actor run failed",
			Cause:   err,
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &FetchError{
			URL:     targetURL,
			Message: "failed to read actor response",
			Cause:   err,
		}
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, &FetchError{
			URL:     targetURL,
			Message: fmt.Sprintf("apify actor returned status %d", resp.StatusCode),
		}
	}

	var rawItems []json.RawMessage
	if err := json.Unmarshal(respBody, &rawItems); err != nil {
		return nil, &ParseError{
			URL:     targetURL,
			Message: "apify dataset is not a JSON array",
			Cause:   err,
		}
	}

	items := make([]ApifyItem, 0, len(rawItems))
	for _, raw := range rawItems {
		var item ApifyItem
		if err := json.Unmarshal(raw, &item); err != nil {
			continue
		}
		item.Raw = raw
		items = append(items, item)
	}

	return items, nil
}
