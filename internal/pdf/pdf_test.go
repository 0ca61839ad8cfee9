package pdf

import (
	"bytes"
	"errors"
	"testing"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/Epistemic-Technology/pdf-splitter/internal/pdftest"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

func TestSplitPdf(t *testing.T) {
	for _, pageCount := range []int{1, 3, 7} {
		dims := pdftest.Distinct(pageCount)
		pdfBytes := pdftest.Build(dims...)

		pages, err := SplitPdf(models.PdfData(pdfBytes))
		if err != nil {
			t.Fatalf("SplitPdf failed for %d pages: %v", pageCount, err)
		}

		if len(pages) != pageCount {
			t.Fatalf("Expected %d pages, got %d", pageCount, len(pages))
		}

		// Validate each page is a valid single-page PDF matching its source page
		for i, pageData := range pages {
			if len(pageData) == 0 {
				t.Errorf("Page %d is empty", i+1)
				continue
			}

			count, err := api.PageCount(bytes.NewReader(pageData), nil)
			if err != nil {
				t.Errorf("Page %d is not a valid PDF: %v", i+1, err)
				continue
			}
			if count != 1 {
				t.Errorf("Page %d should have 1 page, but has %d", i+1, count)
			}

			got, err := api.PageDims(bytes.NewReader(pageData), nil)
			if err != nil {
				t.Errorf("Failed to get dims for page %d: %v", i+1, err)
				continue
			}
			if got[0].Width != dims[i].Width || got[0].Height != dims[i].Height {
				t.Errorf("Page %d has dims %vx%v, want %vx%v", i+1, got[0].Width, got[0].Height, dims[i].Width, dims[i].Height)
			}
		}
	}
}

func TestPageCount(t *testing.T) {
	count, err := PageCount(models.PdfData(pdftest.Build(pdftest.Distinct(4)...)))
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if count != 4 {
		t.Errorf("Expected 4 pages, got %d", count)
	}
}

func TestExtractPage_OutOfRange(t *testing.T) {
	pdfContext, err := Open(models.PdfData(pdftest.Build(pdftest.Distinct(2)...)))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}

	for _, pageNum := range []int{-1, 0, 3} {
		_, err := ExtractPage(pdfContext, pageNum)
		if !errors.Is(err, ErrPageOutOfRange) {
			t.Errorf("ExtractPage(%d): expected ErrPageOutOfRange, got %v", pageNum, err)
		}
	}
}

func TestSplitPdf_EmptyInput(t *testing.T) {
	_, err := SplitPdf(models.PdfData([]byte{}))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected ParseError for empty PDF data, got %v", err)
	}
}

func TestSplitPdf_InvalidInput(t *testing.T) {
	invalidData := []byte("This is not a PDF")
	_, err := SplitPdf(models.PdfData(invalidData))
	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Errorf("Expected ParseError for invalid PDF data, got %v", err)
	}
}
