package pdf

import (
	"bytes"
	"errors"
	"fmt"
	"io"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"

	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// ErrPageOutOfRange is returned when a page number falls outside [1, N].
var ErrPageOutOfRange = errors.New("page number out of range")

// ParseError reports bytes that could not be read as a PDF document.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("failed to parse PDF: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// Open reads and validates a PDF held in memory.
func Open(pdf models.PdfData) (*model.Context, error) {
	if len(pdf) == 0 {
		return nil, &ParseError{Err: errors.New("empty document")}
	}
	reader := bytes.NewReader(pdf)
	conf := model.NewDefaultConfiguration()
	pdfContext, err := api.ReadValidateAndOptimize(reader, conf)
	if err != nil {
		return nil, &ParseError{Err: err}
	}
	return pdfContext, nil
}

func PageCount(pdf models.PdfData) (int, error) {
	pdfContext, err := Open(pdf)
	if err != nil {
		return 0, err
	}
	return pdfContext.PageCount, nil
}

// ExtractPage copies page pageNum (1-based) of pdfContext into a new
// single-page document and returns its serialized bytes.
func ExtractPage(pdfContext *model.Context, pageNum int) (models.PdfPageData, error) {
	if pageNum < 1 || pageNum > pdfContext.PageCount {
		return nil, fmt.Errorf("%w: page %d of %d", ErrPageOutOfRange, pageNum, pdfContext.PageCount)
	}
	pageReader, err := api.ExtractPage(pdfContext, pageNum)
	if err != nil {
		return nil, fmt.Errorf("failed to extract page %d: %w", pageNum, err)
	}
	pageData, err := io.ReadAll(pageReader)
	if err != nil {
		return nil, fmt.Errorf("failed to serialize page %d: %w", pageNum, err)
	}
	return models.PdfPageData(pageData), nil
}

// SplitPdf splits a PDF document into single-page documents, in page order
func SplitPdf(pdf models.PdfData) (models.PdfPages, error) {
	var pages models.PdfPages
	pdfContext, err := Open(pdf)
	if err != nil {
		return pages, err
	}
	for pageNum := 1; pageNum <= pdfContext.PageCount; pageNum++ {
		pageData, err := ExtractPage(pdfContext, pageNum)
		if err != nil {
			return pages, err
		}
		pages = append(pages, pageData)
	}
	return pages, nil
}
