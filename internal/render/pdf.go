package render

import (
	"bytes"
	"context"
	"time"

	"github.com/chromedp/cdproto/page"
	"github.com/chromedp/chromedp"
)

// pdfTimeout bounds one Chrome print run.
const pdfTimeout = 60 * time.Second

// US Letter in inches.
const (
	paperWidth  = 8.5
	paperHeight = 11
	pageMargin  = 0.4
)

var pdfMagic = []byte("%PDF")

// RenderPDF prints the HTML document to PDF bytes using headless
// Chrome. Empty or corrupt output is retried once before failing.
func RenderPDF(ctx context.Context, html string) ([]byte, error) {
	pdf, err := printToPDF(ctx, html)
	if err == nil && validPDF(pdf) {
		return pdf, nil
	}

	if ctx.Err() != nil {
		return nil, &RenderError{Format: "pdf", Message: "print aborted", Cause: ctx.Err()}
	}

	// One retry covers the occasional blank render from a cold Chrome
	pdf, err = printToPDF(ctx, html)
	if err != nil {
		return nil, &RenderError{Format: "pdf", Message: "chrome print failed", Cause: err}
	}
	if !validPDF(pdf) {
		return nil, &RenderError{Format: "pdf", Message: "chrome produced invalid PDF output"}
	}
	return pdf, nil
}

func printToPDF(ctx context.Context, html string) ([]byte, error) {
	opts := append(chromedp.DefaultExecAllocatorOptions[:],
		chromedp.Flag("headless", true),
		chromedp.Flag("disable-gpu", true),
		chromedp.Flag("no-sandbox", true),
		chromedp.Flag("disable-dev-shm-usage", true),
	)

	allocCtx, cancelAlloc := chromedp.NewExecAllocator(ctx, opts...)
	defer cancelAlloc()

	browserCtx, cancelBrowser := chromedp.NewContext(allocCtx)
	defer cancelBrowser()

	browserCtx, cancelTimeout := context.WithTimeout(browserCtx, pdfTimeout)
	defer cancelTimeout()

	var pdf []byte
	err := chromedp.Run(browserCtx,
		chromedp.Navigate("about:blank"),
		chromedp.ActionFunc(func(ctx context.Context) error {
			frameTree, err := page.GetFrameTree().Do(ctx)
			if err != nil {
				return err
			}
			return page.SetDocumentContent(frameTree.Frame.ID, html).Do(ctx)
		}),
		chromedp.ActionFunc(func(ctx context.Context) error {
			var err error
			pdf, _, err = page.PrintToPDF().
				WithPrintBackground(true).
				WithPaperWidth(paperWidth).
				WithPaperHeight(paperHeight).
				WithMarginTop(pageMargin).
				WithMarginBottom(pageMargin).
				WithMarginLeft(pageMargin).
				WithMarginRight(pageMargin).
				Do(ctx)
			return err
		}),
	)
	if err != nil {
		return nil, err
	}
	return pdf, nil
}

// validPDF checks the output starts with the PDF magic bytes.
func validPDF(data []byte) bool {
	return len(data) > len(pdfMagic) && bytes.HasPrefix(data, pdfMagic)
}
