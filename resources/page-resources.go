package resources

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
)

const scheme = "splitter://"

// PreviewURI is the resource holding the PNG preview of a rendered page
func PreviewURI(pageNumber int) string {
	return fmt.Sprintf("%spages/%d/preview", scheme, pageNumber)
}

// DocumentURI is the resource holding a page exported as a single-page PDF
func DocumentURI(pageNumber int) string {
	return fmt.Sprintf("%spages/%d/pdf", scheme, pageNumber)
}

// PageResourceHandler serves the pages of the latest split
type PageResourceHandler struct {
	splitter *operations.Splitter
}

func NewPageResourceHandler(splitter *operations.Splitter) *PageResourceHandler {
	return &PageResourceHandler{splitter: splitter}
}

// ListResources returns a preview and a document resource per rendered page
func (h *PageResourceHandler) ListResources(ctx context.Context) []*mcp.Resource {
	var resources []*mcp.Resource
	for _, p := range h.splitter.State().Previews {
		resources = append(resources,
			&mcp.Resource{
				URI:         PreviewURI(p.PageNumber),
				Name:        fmt.Sprintf("page-%d-preview", p.PageNumber),
				Description: fmt.Sprintf("Preview of page %d (%dx%d)", p.PageNumber, p.Width, p.Height),
				MIMEType:    "image/png",
			},
			&mcp.Resource{
				URI:         DocumentURI(p.PageNumber),
				Name:        fmt.Sprintf("page-%d-pdf", p.PageNumber),
				Description: fmt.Sprintf("Page %d as a single-page PDF", p.PageNumber),
				MIMEType:    "application/pdf",
			},
		)
	}
	return resources
}

// ReadResource reads a specific resource by URI:
// splitter://pages/{pageNumber}/{preview|pdf}
func (h *PageResourceHandler) ReadResource(ctx context.Context, uri string) (*mcp.ReadResourceResult, error) {
	if !strings.HasPrefix(uri, scheme) {
		return nil, fmt.Errorf("invalid URI scheme, expected %s", scheme)
	}

	parts := strings.Split(strings.TrimPrefix(uri, scheme), "/")
	if len(parts) != 3 || parts[0] != "pages" {
		return nil, fmt.Errorf("invalid URI, expected %spages/{pageNumber}/{preview|pdf}", scheme)
	}

	pageNumber, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, fmt.Errorf("invalid page number: %s", parts[1])
	}

	var contents *mcp.ResourceContents
	switch parts[2] {
	case "preview":
		preview, err := h.splitter.Preview(pageNumber)
		if err != nil {
			return nil, err
		}
		contents = &mcp.ResourceContents{URI: uri, MIMEType: "image/png", Blob: preview.PNG}
	case "pdf":
		artifact, err := h.splitter.ExportPage(pageNumber)
		if err != nil {
			return nil, err
		}
		contents = &mcp.ResourceContents{URI: uri, MIMEType: artifact.MediaType, Blob: artifact.Data}
	default:
		return nil, fmt.Errorf("unknown resource type: %s", parts[2])
	}

	return &mcp.ReadResourceResult{
		Contents: []*mcp.ResourceContents{contents},
	}, nil
}
