package export

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdftest"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

func TestFilename(t *testing.T) {
	tests := map[int]string{
		1:   "page_1.pdf",
		2:   "page_2.pdf",
		10:  "page_10.pdf",
		123: "page_123.pdf",
	}
	for page, want := range tests {
		if got := Filename(page); got != want {
			t.Errorf("Filename(%d) = %q, want %q", page, got, want)
		}
	}
}

func TestExportPage_RoundTrip(t *testing.T) {
	dims := pdftest.Distinct(3)
	source := models.PdfData(pdftest.Build(dims...))
	exporter := NewExporter(logger.NewNoOpLogger())

	for i := 1; i <= len(dims); i++ {
		artifact, err := exporter.ExportPage(models.ExportRequest{Source: source, PageNumber: i})
		if err != nil {
			t.Fatalf("ExportPage(%d) failed: %v", i, err)
		}

		if artifact.Filename != Filename(i) {
			t.Errorf("Expected filename %q, got %q", Filename(i), artifact.Filename)
		}
		if artifact.MediaType != "application/pdf" {
			t.Errorf("Expected application/pdf, got %q", artifact.MediaType)
		}

		count, err := api.PageCount(bytes.NewReader(artifact.Data), nil)
		if err != nil {
			t.Fatalf("Exported page %d is not a valid PDF: %v", i, err)
		}
		if count != 1 {
			t.Errorf("Exported page %d has %d pages, want 1", i, count)
		}

		// Copy-back: page 1 of the export must match source page i
		again, err := exporter.ExportPage(models.ExportRequest{Source: artifact.Data, PageNumber: 1})
		if err != nil {
			t.Fatalf("Re-export of page %d failed: %v", i, err)
		}
		got, err := api.PageDims(bytes.NewReader(again.Data), nil)
		if err != nil {
			t.Fatalf("Failed to read dims: %v", err)
		}
		if got[0].Width != dims[i-1].Width || got[0].Height != dims[i-1].Height {
			t.Errorf("Page %d exported as %vx%v, want %vx%v", i, got[0].Width, got[0].Height, dims[i-1].Width, dims[i-1].Height)
		}
	}
}

func TestExportPage_Errors(t *testing.T) {
	exporter := NewExporter(logger.NewNoOpLogger())
	source := models.PdfData(pdftest.Build(pdftest.Distinct(2)...))

	_, err := exporter.ExportPage(models.ExportRequest{Source: source, PageNumber: 3})
	if !errors.Is(err, pdf.ErrPageOutOfRange) {
		t.Errorf("Expected ErrPageOutOfRange, got %v", err)
	}

	_, err = exporter.ExportPage(models.ExportRequest{Source: models.PdfData("not a pdf"), PageNumber: 1})
	var parseErr *pdf.ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected ParseError, got %v", err)
	}
}

func TestExportPage_Concurrent(t *testing.T) {
	exporter := NewExporter(logger.NewNoOpLogger())
	source := models.PdfData(pdftest.Build(pdftest.Distinct(4)...))

	errs := make(chan error, 4)
	for i := 1; i <= 4; i++ {
		go func(page int) {
			_, err := exporter.ExportPage(models.ExportRequest{Source: source, PageNumber: page})
			errs <- err
		}(i)
	}
	for i := 0; i < 4; i++ {
		if err := <-errs; err != nil {
			t.Errorf("Concurrent export failed: %v", err)
		}
	}
}
