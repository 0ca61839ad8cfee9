package documents

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"path/filepath"
	"testing"

	"github.com/Epistemic-Technology/pdf-splitter/models"
)

func TestSniffMediaType(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		expected string
	}{
		{
			name:     "PDF document",
			data:     []byte("%PDF-1.4\nsome pdf content"),
			expected: "application/pdf",
		},
		{
			name:     "HTML",
			data:     []byte("<!DOCTYPE html><html><body>test</body></html>"),
			expected: "text/html",
		},
		{
			name:     "Plain text",
			data:     []byte("This is just plain text content"),
			expected: "text/plain",
		},
		{
			name:     "PNG",
			data:     []byte("\x89PNG\r\n\x1a\n0000"),
			expected: "image/png",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SniffMediaType(tt.data); got != tt.expected {
				t.Errorf("SniffMediaType() = %v, want %v", got, tt.expected)
			}
		})
	}
}

func TestFromPath(t *testing.T) {
	dir := t.TempDir()
	pdfPath := filepath.Join(dir, "report.pdf")
	txtPath := filepath.Join(dir, "notes.txt")
	if err := os.WriteFile(pdfPath, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(txtPath, []byte("hello"), 0644); err != nil {
		t.Fatal(err)
	}

	c, err := FromPath(pdfPath)
	if err != nil {
		t.Fatalf("FromPath failed: %v", err)
	}
	if c.Name != "report.pdf" || c.MediaType != "application/pdf" || c.Size != 8 {
		t.Errorf("Unexpected candidate %+v", c)
	}

	c, err = FromPath(txtPath)
	if err != nil {
		t.Fatalf("FromPath failed: %v", err)
	}
	if c.MediaType != "text/plain" {
		t.Errorf("Expected text/plain, got %q", c.MediaType)
	}

	if _, err := FromPath(filepath.Join(dir, "missing.pdf")); err == nil {
		t.Error("Expected error for missing file, got nil")
	}
}

func TestFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/papers/paper.pdf":
			w.Header().Set("Content-Type", "application/pdf; qs=0.9")
			w.Write([]byte("%PDF-1.7"))
		case "/page":
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			w.Write([]byte("<html></html>"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	ctx := context.Background()

	c, err := FromURL(ctx, srv.URL+"/papers/paper.pdf")
	if err != nil {
		t.Fatalf("FromURL failed: %v", err)
	}
	if c.Name != "paper.pdf" || c.MediaType != "application/pdf" || c.Size != 8 {
		t.Errorf("Unexpected candidate %+v", c)
	}

	c, err = FromURL(ctx, srv.URL+"/page")
	if err != nil {
		t.Fatalf("FromURL failed: %v", err)
	}
	if c.MediaType != "text/html" {
		t.Errorf("Expected text/html, got %q", c.MediaType)
	}

	if _, err := FromURL(ctx, srv.URL+"/missing"); err == nil {
		t.Error("Expected error for 404, got nil")
	}
}

func TestFromMultipart(t *testing.T) {
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="sample.pdf"`)
	h.Set("Content-Type", "application/pdf")
	part, err := w.CreatePart(h)
	if err != nil {
		t.Fatal(err)
	}
	part.Write([]byte("%PDF-1.4 data"))
	w.Close()

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	if err := req.ParseMultipartForm(1 << 20); err != nil {
		t.Fatalf("ParseMultipartForm failed: %v", err)
	}

	c, err := FromMultipart(req.MultipartForm.File["file"][0])
	if err != nil {
		t.Fatalf("FromMultipart failed: %v", err)
	}
	if c.Name != "sample.pdf" || c.MediaType != "application/pdf" || c.Size != 13 {
		t.Errorf("Unexpected candidate %+v", c)
	}
	if string(c.Data) != "%PDF-1.4 data" {
		t.Errorf("Unexpected data %q", c.Data)
	}
}

func TestGetCandidate(t *testing.T) {
	ctx := context.Background()

	if _, err := GetCandidate(ctx, models.SourceInfo{}, ZoteroCredentials{}); err == nil {
		t.Error("Expected error for empty source, got nil")
	}

	if _, err := GetCandidate(ctx, models.SourceInfo{ZoteroID: "ABCD1234"}, ZoteroCredentials{}); err == nil {
		t.Error("Expected error for missing Zotero credentials, got nil")
	}

	path := filepath.Join(t.TempDir(), "local.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := GetCandidate(ctx, models.SourceInfo{Path: path}, ZoteroCredentials{})
	if err != nil {
		t.Fatalf("GetCandidate failed: %v", err)
	}
	if c.Name != "local.pdf" {
		t.Errorf("Expected local.pdf, got %q", c.Name)
	}
}

func TestFromZotero_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	creds := ZoteroCredentials{
		APIKey:    os.Getenv("ZOTERO_API_KEY"),
		LibraryID: os.Getenv("ZOTERO_LIBRARY_ID"),
	}
	itemID := os.Getenv("ZOTERO_TEST_ATTACHMENT_ID")
	if creds.APIKey == "" || creds.LibraryID == "" || itemID == "" {
		t.Skip("ZOTERO_API_KEY, ZOTERO_LIBRARY_ID and ZOTERO_TEST_ATTACHMENT_ID not set, skipping integration test")
	}

	c, err := FromZotero(context.Background(), itemID, creds)
	if err != nil {
		t.Fatalf("FromZotero failed: %v", err)
	}
	if c.Size == 0 {
		t.Error("Expected attachment data, got none")
	}
}
