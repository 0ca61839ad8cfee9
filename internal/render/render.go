// Package render rasterizes every page of a PDF into a preview image.
package render

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"image/png"

	"github.com/gen2brain/go-fitz"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// DefaultScale is the preview zoom relative to the page's native size.
const DefaultScale = 1.5

// pointsPerInch is the PDF user space unit; a page rasterized at 72 DPI has
// its native size in pixels.
const pointsPerInch = 72

// Document is an opened document that can rasterize its pages. Page numbers
// are 0-based, as in MuPDF.
type Document interface {
	NumPage() int
	Bound(pageNumber int) (image.Rectangle, error)
	ImageDPI(pageNumber int, dpi float64) (*image.RGBA, error)
	Close() error
}

// OpenFunc opens raw PDF bytes for rendering.
type OpenFunc func(data []byte) (Document, error)

func openFitz(data []byte) (Document, error) {
	doc, err := fitz.NewFromMemory(data)
	if err != nil {
		return nil, err
	}
	return doc, nil
}

type Renderer struct {
	scale float64
	open  OpenFunc
	log   logger.Logger
}

type Option func(*Renderer)

// WithOpener replaces the MuPDF backend.
func WithOpener(open OpenFunc) Option {
	return func(r *Renderer) {
		r.open = open
	}
}

// NewRenderer creates a renderer at the given scale; a non-positive scale
// means DefaultScale.
func NewRenderer(scale float64, log logger.Logger, opts ...Option) *Renderer {
	if scale <= 0 {
		scale = DefaultScale
	}
	r := &Renderer{scale: scale, open: openFitz, log: log}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *Renderer) Scale() float64 {
	return r.scale
}

// Label is the text of the export control attached to a page preview.
func Label(pageNumber int) string {
	return fmt.Sprintf("Download Page %d", pageNumber)
}

// ViewportFor scales a page's native bounds.
func ViewportFor(bound image.Rectangle, scale float64) models.Viewport {
	return models.Viewport{
		Width:  float64(bound.Dx()) * scale,
		Height: float64(bound.Dy()) * scale,
		Scale:  scale,
	}
}

// RenderAll renders pages 1..N of data in ascending order. A page that fails
// to render is left out of the previews and listed in the report's failures;
// the pass continues with the next page. Only an unreadable document or a
// cancelled context fails the whole pass.
func (r *Renderer) RenderAll(ctx context.Context, data models.PdfData) (*models.RenderReport, error) {
	if len(data) == 0 {
		return nil, &pdf.ParseError{Err: errors.New("empty document")}
	}
	doc, err := r.open(data)
	if err != nil {
		return nil, &pdf.ParseError{Err: err}
	}
	defer doc.Close()

	pageCount := doc.NumPage()
	report := &models.RenderReport{
		PageCount: pageCount,
		Previews:  make([]models.PagePreview, 0, pageCount),
	}

	for pageNum := 1; pageNum <= pageCount; pageNum++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		preview, err := r.renderPage(doc, pageNum)
		if err != nil {
			r.log.Warn("Skipping page %d of %d: %v", pageNum, pageCount, err)
			report.Failures = append(report.Failures, models.PageFailure{
				PageNumber: pageNum,
				Err:        err.Error(),
			})
			continue
		}
		preview.Export = models.ExportRequest{Source: data, PageNumber: pageNum}
		report.Previews = append(report.Previews, *preview)
	}

	r.log.Info("Rendered %d of %d pages at %.2fx", len(report.Previews), pageCount, r.scale)
	return report, nil
}

func (r *Renderer) renderPage(doc Document, pageNum int) (*models.PagePreview, error) {
	bound, err := doc.Bound(pageNum - 1)
	if err != nil {
		return nil, fmt.Errorf("failed to read page bounds: %w", err)
	}
	viewport := ViewportFor(bound, r.scale)

	img, err := doc.ImageDPI(pageNum-1, pointsPerInch*r.scale)
	if err != nil {
		return nil, fmt.Errorf("failed to rasterize page: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	size := img.Bounds().Size()
	return &models.PagePreview{
		PageNumber: pageNum,
		Label:      Label(pageNum),
		Viewport:   viewport,
		Width:      size.X,
		Height:     size.Y,
		PNG:        buf.Bytes(),
	}, nil
}
