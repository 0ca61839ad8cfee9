package models

// PDFMediaType is the only declared media type intake accepts.
const PDFMediaType = "application/pdf"

type PdfData []byte
type PdfPageData []byte
type PdfPages []PdfPageData

// SourceInfo contains information about where a candidate file came from
type SourceInfo struct {
	ZoteroID string `json:"zotero_id,omitempty"`
	URL      string `json:"url,omitempty"`
	Path     string `json:"path,omitempty"`
}

// CandidateFile is a file offered for intake, before the media type gate.
type CandidateFile struct {
	Name      string  `json:"name"`
	MediaType string  `json:"media_type"`
	Size      int64   `json:"size"`
	Data      PdfData `json:"-"`
}

// InputFile is the active input: the most recently accepted PDF.
type InputFile struct {
	Name string  `json:"name"`
	Size int64   `json:"size"`
	Data PdfData `json:"-"`
}

// Viewport is the pixel frame a page is rasterized into.
type Viewport struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// ExportRequest asks for one page of Source as a standalone document.
// PageNumber is 1-based.
type ExportRequest struct {
	Source     PdfData `json:"-"`
	PageNumber int     `json:"page_number"`
}

// ExportArtifact is a serialized single-page document ready for download.
type ExportArtifact struct {
	Filename  string  `json:"filename"`
	MediaType string  `json:"media_type"`
	Data      PdfData `json:"data"`
}

type PagePreview struct {
	PageNumber int           `json:"page_number"`
	Label      string        `json:"label"`
	Viewport   Viewport      `json:"viewport"`
	Width      int           `json:"width"`
	Height     int           `json:"height"`
	PNG        []byte        `json:"-"`
	Export     ExportRequest `json:"export"`
}

// PageFailure records a page that could not be rendered during a pass.
type PageFailure struct {
	PageNumber int    `json:"page_number"`
	Err        string `json:"error"`
}

// RenderReport is the outcome of one render pass over a document.
type RenderReport struct {
	PageCount int           `json:"page_count"`
	Previews  []PagePreview `json:"previews"`
	Failures  []PageFailure `json:"failures,omitempty"`
}
