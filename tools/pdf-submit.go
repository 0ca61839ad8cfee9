package tools

import (
	"context"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/Epistemic-Technology/pdf-splitter/internal/documents"
	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/operations"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

type PDFSubmitQuery struct {
	RawData   []byte `json:"raw_data,omitempty" jsonschema:"the document bytes, base64 encoded"`
	Name      string `json:"name,omitempty" jsonschema:"file name shown in the summary when raw_data is given"`
	MediaType string `json:"media_type,omitempty" jsonschema:"declared media type of raw_data; sniffed from content when omitted"`
	URL       string `json:"url,omitempty"`
	ZoteroID  string `json:"zotero_id,omitempty"`
	Path      string `json:"path,omitempty" jsonschema:"path of a local file"`
}

type PDFSubmitResponse struct {
	Summary  string `json:"summary"`
	CanSplit bool   `json:"can_split"`
}

func PDFSubmitTool() *mcp.Tool {
	inputschema, err := jsonschema.For[PDFSubmitQuery](nil)
	if err != nil {
		panic(err)
	}
	return &mcp.Tool{
		Name:        "pdf-submit",
		Description: "Select the PDF to split. Provide exactly one of raw_data, url, zotero_id or path. Only files whose media type is application/pdf are accepted; the new file replaces any previously selected one.",
		InputSchema: inputschema,
	}
}

func PDFSubmitToolHandler(ctx context.Context, req *mcp.CallToolRequest, query PDFSubmitQuery, splitter *operations.Splitter, creds documents.ZoteroCredentials, log logger.Logger) (*mcp.CallToolResult, *PDFSubmitResponse, error) {
	log.Info("pdf-submit tool called")

	var candidate models.CandidateFile
	if query.RawData != nil {
		candidate = models.CandidateFile{
			Name:      query.Name,
			MediaType: query.MediaType,
			Size:      int64(len(query.RawData)),
			Data:      query.RawData,
		}
		if candidate.Name == "" {
			candidate.Name = "document.pdf"
		}
		if candidate.MediaType == "" {
			candidate.MediaType = documents.SniffMediaType(query.RawData)
		}
	} else {
		var err error
		source := models.SourceInfo{ZoteroID: query.ZoteroID, URL: query.URL, Path: query.Path}
		candidate, err = documents.GetCandidate(ctx, source, creds)
		if err != nil {
			log.Error("pdf-submit tool failed: %v", err)
			return nil, nil, err
		}
	}

	if err := splitter.Submit(candidate); err != nil {
		log.Warn("pdf-submit rejected %q: %v", candidate.Name, err)
		return nil, nil, err
	}

	state := splitter.State()
	return nil, &PDFSubmitResponse{Summary: state.Summary, CanSplit: state.CanSplit}, nil
}
