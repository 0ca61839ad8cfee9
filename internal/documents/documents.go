// Package documents builds intake candidates from the places a PDF can come
// from: browser uploads, URLs, Zotero attachments and local files.
package documents

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"mime"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"

	"github.com/Epistemic-Technology/zotero/zotero"

	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// ZoteroCredentials selects the library attachments are fetched from
type ZoteroCredentials struct {
	APIKey    string
	LibraryID string
}

// SniffMediaType determines a media type from content, for sources that do
// not declare one.
func SniffMediaType(data []byte) string {
	if bytes.HasPrefix(data, []byte("%PDF")) {
		return models.PDFMediaType
	}
	mediaType, _, err := mime.ParseMediaType(http.DetectContentType(data))
	if err != nil {
		return "application/octet-stream"
	}
	return mediaType
}

// GetCandidate retrieves a candidate from a remote or local source
func GetCandidate(ctx context.Context, sourceInfo models.SourceInfo, creds ZoteroCredentials) (models.CandidateFile, error) {
	switch {
	case sourceInfo.ZoteroID != "":
		return FromZotero(ctx, sourceInfo.ZoteroID, creds)
	case sourceInfo.URL != "":
		return FromURL(ctx, sourceInfo.URL)
	case sourceInfo.Path != "":
		return FromPath(sourceInfo.Path)
	default:
		return models.CandidateFile{}, errors.New("no source provided")
	}
}

// FromMultipart reads an uploaded form file. The declared media type is the
// one the browser sent with the part.
func FromMultipart(fh *multipart.FileHeader) (models.CandidateFile, error) {
	f, err := fh.Open()
	if err != nil {
		return models.CandidateFile{}, fmt.Errorf("failed to open upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.CandidateFile{}, fmt.Errorf("failed to read upload: %w", err)
	}

	mediaType := fh.Header.Get("Content-Type")
	if mt, _, err := mime.ParseMediaType(mediaType); err == nil {
		mediaType = mt
	}

	return models.CandidateFile{
		Name:      filepath.Base(fh.Filename),
		MediaType: mediaType,
		Size:      fh.Size,
		Data:      data,
	}, nil
}

// FromPath reads a local file; its media type comes from the extension.
func FromPath(p string) (models.CandidateFile, error) {
	data, err := os.ReadFile(p)
	if err != nil {
		return models.CandidateFile{}, fmt.Errorf("failed to read %s: %w", p, err)
	}
	mediaType, _, _ := mime.ParseMediaType(mime.TypeByExtension(filepath.Ext(p)))
	return models.CandidateFile{
		Name:      filepath.Base(p),
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

// FromURL fetches a document; its media type comes from the response
// Content-Type.
func FromURL(ctx context.Context, rawURL string) (models.CandidateFile, error) {
	return rateLimitedFetch(ctx, func(ctx context.Context) (models.CandidateFile, error) {
		return fetchURL(ctx, rawURL)
	})
}

func fetchURL(ctx context.Context, rawURL string) (models.CandidateFile, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return models.CandidateFile{}, err
	}
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return models.CandidateFile{}, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return models.CandidateFile{}, &StatusError{URL: rawURL, StatusCode: resp.StatusCode, Status: resp.Status}
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return models.CandidateFile{}, err
	}

	mediaType, _, err := mime.ParseMediaType(resp.Header.Get("Content-Type"))
	if err != nil {
		mediaType = ""
	}

	return models.CandidateFile{
		Name:      nameFromURL(rawURL),
		MediaType: mediaType,
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

// FromZotero fetches an attachment from a Zotero library
func FromZotero(ctx context.Context, zoteroID string, creds ZoteroCredentials) (models.CandidateFile, error) {
	if creds.APIKey == "" || creds.LibraryID == "" {
		return models.CandidateFile{}, errors.New("zotero credentials not configured")
	}
	client := zotero.NewClient(creds.LibraryID, zotero.LibraryTypeUser, zotero.WithAPIKey(creds.APIKey))
	data, err := rateLimitedFetch(ctx, func(ctx context.Context) ([]byte, error) {
		return client.File(ctx, zoteroID)
	})
	if err != nil {
		return models.CandidateFile{}, err
	}
	return models.CandidateFile{
		Name:      zoteroID + ".pdf",
		MediaType: SniffMediaType(data),
		Size:      int64(len(data)),
		Data:      data,
	}, nil
}

func nameFromURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return "document.pdf"
	}
	name := path.Base(u.Path)
	if name == "." || name == "/" || name == "" {
		return "document.pdf"
	}
	return name
}
