package tools

import (
	"context"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/resources"
)

type PDFPageExportQuery struct {
	PageNumber int `json:"page_number" jsonschema:"1-based page number from the latest pdf-split result"`
}

type PDFPageExportResponse struct {
	Filename    string `json:"filename"`
	MediaType   string `json:"media_type"`
	Size        int    `json:"size"`
	DocumentURI string `json:"document_uri"`
}

func PDFPageExportTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PDFPageExportQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "pdf-page-export",
		Description: "Export one page of the last split PDF as a standalone single-page PDF named page_<N>.pdf. The document is returned as an embedded resource.",
		InputSchema: inputschema,
	}
}

func PDFPageExportToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PDFPageExportQuery, splitter *operations.Splitter, log logger.Logger) (*mcp.CallToolResult, *PDFPageExportResponse, error) {
	log.Info("pdf-page-export tool called for page %d", query.PageNumber)
	artifact, err := splitter.ExportPage(query.PageNumber)
	if err != nil {
		log.Error("pdf-page-export tool failed: %v", err)
		return nil, nil, err
	}

	uri := resources.DocumentURI(query.PageNumber)
	result := &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{
				Text: fmt.Sprintf("Exported %s (%d bytes).", artifact.Filename, len(artifact.Data)),
			},
			&mcp.EmbeddedResource{
				Resource: &mcp.ResourceContents{
					URI:      uri,
					MIMEType: artifact.MediaType,
					Blob:     artifact.Data,
				},
			},
		},
	}

	return result, &PDFPageExportResponse{
		Filename:    artifact.Filename,
		MediaType:   artifact.MediaType,
		Size:        len(artifact.Data),
		DocumentURI: uri,
	}, nil
}
