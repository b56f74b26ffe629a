package server

import (
	"context"

	"github.com/jonathan/resume-forge/internal/render"
)

// artifactRenderer abstracts PDF and DOCX rendering so handlers can be
// tested without a headless browser.
type artifactRenderer interface {
	RenderPDF(ctx context.Context, html string) ([]byte, error)
	RenderDOCX(data *render.Data, path string) error
}

// chromeRenderer renders with the real render package.
type chromeRenderer struct{}

func (chromeRenderer) RenderPDF(ctx context.Context, html string) ([]byte, error) {
	return render.RenderPDF(ctx, html)
}

func (chromeRenderer) RenderDOCX(data *render.Data, path string) error {
	return render.RenderDOCX(data, path)
}
