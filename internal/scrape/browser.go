package scrape

import (
	"context"
	"fmt"
	"time"

	"github.com/chromedp/chromedp"
)

// MinContentLength is the threshold below which a static fetch is
// considered too thin and a browser retry is warranted.
const MinContentLength = 500

// BrowserTimeout is the maximum time allowed for a headless browser fetch.
const BrowserTimeout = 60 * time.Second

// ShouldUseBrowser reports whether the extracted text from a static
// fetch looks like a JS-rendered shell rather than real posting content.
func ShouldUseBrowser(extractedText string) bool {
	return len(extractedText) < MinContentLength
}

// FetchWithBrowser retrieves fully-rendered HTML using headless Chrome.
// Used as a fallback for job boards that render content client-side.
func FetchWithBrowser(ctx context.Context, urlStr string) (*FetchResult, error) {
	if err := ValidateURL(urlStr); err != nil {
		return nil, err
	}

	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
		chromedp.UserAgent(DefaultUserAgent),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, BrowserTimeout)
	defer cancelTimeout()

	var html string
	err := chromedp.Run(browserCtx,
		chromedp.Navigate(urlStr),
		chromedp.WaitReady("body"),
		// Give client-side rendering a moment to settle.
		chromedp.Sleep(3*time.Second),
		dismissCookieBanner(),
		chromedp.OuterHTML("html", &html),
	)
	if err != nil {
		return nil, &FetchError{
			URL:     urlStr,
			Message: fmt.Sprintf("browser fetch failed: %v", err),
			Cause:   err,
		}
	}

	return &FetchResult{
		URL:  urlStr,
		HTML: html,
	}, nil
}

// dismissCookieBanner attempts to click common cookie consent buttons.
// Failures are ignored since many pages have no banner.
func dismissCookieBanner() chromedp.Action {
	return chromedp.ActionFunc(func(ctx context.Context) error {
		selectors := []string{
			"#onetrust-accept-btn-handler",
			".cookie-accept",
			"[aria-label='Accept cookies']",
			"button[data-testid='cookie-accept']",
		}
		for _, sel := range selectors {
			clickCtx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
			err := chromedp.Click(sel, chromedp.ByQuery).Do(clickCtx)
			cancel()
			if err == nil {
				return nil
			}
		}
		return nil
	})
}
