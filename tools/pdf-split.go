package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/models"
	"github.com/Epistemic-Technology/pdf-splitter/resources"
)

type PDFSplitQuery struct{}

type PageInfo struct {
	PageNumber  int             `json:"page_number"`
	Label       string          `json:"label"`
	Viewport    models.Viewport `json:"viewport"`
	Width       int             `json:"width"`
	Height      int             `json:"height"`
	PreviewURI  string          `json:"preview_uri"`
	DocumentURI string          `json:"document_uri"`
}

type PDFSplitResponse struct {
	PageCount int                  `json:"page_count"`
	Pages     []PageInfo           `json:"pages"`
	Failures  []models.PageFailure `json:"failures,omitempty"`
}

func PDFSplitTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PDFSplitQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "pdf-split",
		Description: "Render a preview of every page of the selected PDF at 1.5x. Returns one entry per page, in page order, with resource URIs for the preview image and the single-page PDF. Pages that fail to render are listed under failures.",
		InputSchema: inputschema,
	}
}

func PDFSplitToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PDFSplitQuery, splitter *operations.Splitter, log logger.Logger) (*mcp.CallToolResult, *PDFSplitResponse, error) {
	log.Info("pdf-split tool called")
	report, err := splitter.Split(ctx)
	if err != nil {
		log.Error("pdf-split tool failed: %v", err)
		return nil, nil, err
	}

	response := &PDFSplitResponse{
		PageCount: report.PageCount,
		Pages:     make([]PageInfo, 0, len(report.Previews)),
		Failures:  report.Failures,
	}
	for _, p := range report.Previews {
		response.Pages = append(response.Pages, PageInfo{
			PageNumber:  p.PageNumber,
			Label:       p.Label,
			Viewport:    p.Viewport,
			Width:       p.Width,
			Height:      p.Height,
			PreviewURI:  resources.PreviewURI(p.PageNumber),
			DocumentURI: resources.DocumentURI(p.PageNumber),
		})
	}

	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Rendered %d of %d pages.", len(report.Previews), report.PageCount),
			},
		},
	}
	return result, response, nil
}
