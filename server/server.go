package server

import (
	"context"
	"sync"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdf-splitter/internal/config"
	"github.com/Epistemic-Technology/pdf-splitter/internal/documents"
	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/resources"
	"github.com/Epistemic-Technology/pdf-splitter/tools"
)

const version = "v0.1.0"

// CreateServer builds the MCP surface over splitter.
func CreateServer(splitter *operations.Splitter, cfg *config.Config, log logger.Logger) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: "pdf-splitter", Version: version}, nil)

	creds := documents.ZoteroCredentials{APIKey: cfg.Zotero.APIKey, LibraryID: cfg.Zotero.LibraryID}
	pageResourceHandler := resources.NewPageResourceHandler(splitter)
	published := &publishedPages{server: server, handler: pageResourceHandler}

	mcp.AddTool(server, tools.PDFSubmitTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PDFSubmitQuery) (*mcp.CallToolResult, *tools.PDFSubmitResponse, error) {
		result, response, err := tools.PDFSubmitToolHandler(ctx, req, query, splitter, creds, log)
		if err == nil {
			published.sync(ctx)
		}
		return result, response, err
	})

	mcp.AddTool(server, tools.PDFSplitTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PDFSplitQuery) (*mcp.CallToolResult, *tools.PDFSplitResponse, error) {
		result, response, err := tools.PDFSplitToolHandler(ctx, req, query, splitter, log)
		if err == nil {
			published.sync(ctx)
		}
		return result, response, err
	})

	mcp.AddTool(server, tools.PDFPageExportTool(), func(ctx context.Context, req *mcp.CallToolRequest, query tools.PDFPageExportQuery) (*mcp.CallToolResult, *tools.PDFPageExportResponse, error) {
		return tools.PDFPageExportToolHandler(ctx, req, query, splitter, log)
	})

	// Template for page previews
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "splitter://pages/{pageNumber}/preview",
		Name:        "page-preview",
		Description: "PNG preview of a page from the latest split, at 1.5x",
		MIMEType:    "image/png",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return pageResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	// Template for exported pages
	server.AddResourceTemplate(&mcp.ResourceTemplate{
		URITemplate: "splitter://pages/{pageNumber}/pdf",
		Name:        "page-pdf",
		Description: "A page from the latest split as a standalone single-page PDF",
		MIMEType:    "application/pdf",
	}, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		return pageResourceHandler.ReadResource(ctx, req.Params.URI)
	})

	return server
}

// publishedPages keeps the server's concrete resource list equal to the
// pages of the latest split.
type publishedPages struct {
	mu      sync.Mutex
	server  *mcp.Server
	handler *resources.PageResourceHandler
	uris    []string
}

func (p *publishedPages) sync(ctx context.Context) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.uris) > 0 {
		p.server.RemoveResources(p.uris...)
	}
	p.uris = p.uris[:0]
	for _, r := range p.handler.ListResources(ctx) {
		p.server.AddResource(r, func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
			return p.handler.ReadResource(ctx, req.Params.URI)
		})
		p.uris = append(p.uris, r.URI)
	}
}
