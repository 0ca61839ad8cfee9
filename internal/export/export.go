// Package export turns a page of a source document into a standalone
// single-page PDF ready to be downloaded.
package export

import (
	"fmt"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// Filename is the download name of an exported page: page_<N>.pdf.
func Filename(pageNumber int) string {
	return fmt.Sprintf("page_%d.pdf", pageNumber)
}

type Exporter struct {
	log logger.Logger
}

func NewExporter(log logger.Logger) *Exporter {
	return &Exporter{log: log}
}

// ExportPage re-parses req.Source and copies page req.PageNumber into a new
// document. Safe for concurrent use.
func (e *Exporter) ExportPage(req models.ExportRequest) (*models.ExportArtifact, error) {
	pdfContext, err := pdf.Open(req.Source)
	if err != nil {
		return nil, err
	}

	pageData, err := pdf.ExtractPage(pdfContext, req.PageNumber)
	if err != nil {
		return nil, err
	}

	e.log.Debug("Exported page %d of %d (%d bytes)", req.PageNumber, pdfContext.PageCount, len(pageData))

	return &models.ExportArtifact{
		Filename:  Filename(req.PageNumber),
		MediaType: models.PDFMediaType,
		Data:      models.PdfData(pageData),
	}, nil
}
