package scrape

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/resume-forge/internal/llm"
	"github.com/jonathan/resume-forge/internal/prompts"
	"github.com/jonathan/resume-forge/internal/schemas"
	"github.com/jonathan/resume-forge/internal/types"
)

// maxPromptText caps the amount of page text sent to the LLM parser.
const maxPromptText = 12000

// Scraper turns a job posting URL into a structured JobPosting.
//
// The flow tries the cheapest path first: an Apify actor when
// configured, then a plain HTTP fetch with CSS extraction, then a
// headless browser when the static fetch looks JS-rendered. The
// extracted text is parsed into structured fields by the LLM.
type Scraper struct {
	llm     llm.Client
	apify   *ApifyClient
	options *Options
	// UseBrowser enables the headless Chrome fallback.
	UseBrowser bool
}

// NewScraper creates a scraper. apify may be nil when no token is
// configured.
func NewScraper(llmClient llm.Client, apify *ApifyClient, useBrowser bool) *Scraper {
	return &Scraper{
		llm:        llmClient,
		apify:      apify,
		options:    DefaultOptions(),
		UseBrowser: useBrowser,
	}
}

// Scrape fetches and parses the job posting at the given URL.
func (s *Scraper) Scrape(ctx context.Context, urlStr string) (*types.JobPosting, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)

	if s.apify.Enabled() {
		posting, err := s.scrapeWithApify(ctx, urlStr, platform)
		if err == nil {
			return posting, nil
		}
		log.Printf("[scrape] apify path failed for %s, falling back: %v", urlStr, err)
	}

	text, err := s.fetchText(ctx, urlStr, platform)
	if err != nil {
		return nil, err
	}

	posting, err := s.parseWithLLM(ctx, urlStr, text)
	if err != nil {
		return nil, err
	}

	normalizePosting(posting, urlStr, platform)
	return posting, nil
}

// scrapeWithApify runs the configured actor and maps its first dataset
// item into a posting.
func (s *Scraper) scrapeWithApify(ctx context.Context, urlStr string, platform Platform) (*types.JobPosting, error) {
	items, err := s.apify.RunSync(ctx, urlStr)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, &ParseError{URL: urlStr, Message: "apify run returned no items"}
	}

	item := items[0]
	if item.Title == "" || item.Description == "" {
		return nil, &ParseError{URL: urlStr, Message: "apify item missing title or description"}
	}

	posting := &types.JobPosting{
		URL:            urlStr,
		Title:          item.Title,
		Company:        item.CompanyName,
		Location:       item.Location,
		Description:    item.Description,
		EmploymentType: item.EmploymentType,
		SeniorityLevel: item.SeniorityLevel,
		Skills:         item.Skills,
		RawPayload:     item.Raw,
	}
	normalizePosting(posting, urlStr, platform)
	return posting, nil
}

// fetchText retrieves the page and extracts its main text, escalating
// to a headless browser when the static fetch looks too thin.
func (s *Scraper) fetchText(ctx context.Context, urlStr string, platform Platform) (string, error) {
	result, err := FetchURL(ctx, urlStr, s.options)
	if err != nil {
		return "", err
	}

	text, err := ExtractMainText(result.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
	if err != nil {
		return "", &ParseError{URL: urlStr, Message: "failed to extract page text", Cause: err}
	}

	if ShouldUseBrowser(text) && s.UseBrowser {
		log.Printf("[scrape] static fetch too thin (%d chars) for %s, using browser", len(text), urlStr)
		browserResult, err := FetchWithBrowser(ctx, urlStr)
		if err != nil {
			return "", err
		}
		text, err = ExtractMainText(browserResult.HTML, ContentSelectors(platform), NoiseSelectors(platform)...)
		if err != nil {
			return "", &ParseError{URL: urlStr, Message: "failed to extract rendered page text", Cause: err}
		}
	}

	if len(strings.TrimSpace(text)) == 0 {
		return "", &ParseError{URL: urlStr, Message: "no content extracted from page"}
	}

	return text, nil
}

// parseWithLLM asks the model to structure the extracted text and
// validates the result against the posting schema.
func (s *Scraper) parseWithLLM(ctx context.Context, urlStr, text string) (*types.JobPosting, error) {
	if len(text) > maxPromptText {
		text = text[:maxPromptText]
	}

	template, err := prompts.Get("scrape.json", "parse-job-posting")
	if err != nil {
		return nil, fmt.Errorf("failed to load parse prompt: %w", err)
	}
	prompt := prompts.Format(template, map[string]string{
		"URL":  urlStr,
		"Text": text,
	})

	response, err := s.llm.GenerateJSON(ctx, prompt, llm.TierStandard)
	if err != nil {
		return nil, &FetchError{URL: urlStr, Message: "llm parse call failed", Cause: err}
	}

	if err := schemas.Validate(schemas.JobPosting, response); err != nil {
		return nil, &ParseError{URL: urlStr, Message: "llm response failed schema validation", Cause: err}
	}

	var posting types.JobPosting
	if err := json.Unmarshal([]byte(response), &posting); err != nil {
		return nil, &ParseError{URL: urlStr, Message: "failed to decode llm response", Cause: err}
	}

	posting.RawPayload = json.RawMessage(response)
	return &posting, nil
}

// normalizePosting fills derived fields and canonicalizes free-text
// values coming from scrapers or the model.
func normalizePosting(posting *types.JobPosting, urlStr string, platform Platform) {
	if posting.URL == "" {
		posting.URL = urlStr
	}
	if posting.Platform == "" {
		posting.Platform = string(platform)
	}

	posting.Title = strings.TrimSpace(posting.Title)
	posting.Company = strings.TrimSpace(posting.Company)
	posting.Location = strings.TrimSpace(posting.Location)
	posting.EmploymentType = strings.ToLower(strings.TrimSpace(posting.EmploymentType))
	posting.SeniorityLevel = strings.ToLower(strings.TrimSpace(posting.SeniorityLevel))

	posting.Skills = dedupeSkills(posting.Skills)

	if !posting.IsRemote {
		location := strings.ToLower(posting.Location)
		posting.IsRemote = strings.Contains(location, "remote")
	}
}

// dedupeSkills trims, lowercases and deduplicates a skill list while
// preserving order.
func dedupeSkills(skills []string) []string {
	seen := make(map[string]bool, len(skills))
	result := make([]string, 0, len(skills))
	for _, skill := range skills {
		normalized := strings.ToLower(strings.TrimSpace(skill))
		if normalized == "" || seen[normalized] {
			continue
		}
		seen[normalized] = true
		result = append(result, normalized)
	}
	return result
}
