// Package operations ties intake, gallery, renderer and exporter into the
// split workflow. A Splitter owns all application state; the HTTP, MCP and
// CLI surfaces only call into it.
package operations

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/Epistemic-Technology/pdf-splitter/internal/export"
	"github.com/Epistemic-Technology/pdf-splitter/internal/gallery"
	"github.com/Epistemic-Technology/pdf-splitter/internal/intake"
	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/internal/pdf"
	"github.com/Epistemic-Technology/pdf-splitter/internal/render"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

var (
	// ErrNoActiveFile is returned when a split is requested before any file
	// was accepted.
	ErrNoActiveFile = errors.New("please select a PDF file first")

	// ErrPageNotRendered is returned for export requests naming a page the
	// latest render pass did not produce.
	ErrPageNotRendered = errors.New("page has no rendered preview")
)

// State is a snapshot of what the user interface shows.
type State struct {
	Summary  string               `json:"summary"`
	CanSplit bool                 `json:"can_split"`
	Previews []models.PagePreview `json:"previews"`
	Failures []models.PageFailure `json:"failures,omitempty"`
}

type Splitter struct {
	intake   *intake.Intake
	gallery  *gallery.Gallery
	renderer *render.Renderer
	exporter *export.Exporter
	log      logger.Logger

	mu     sync.RWMutex
	report *models.RenderReport
}

func NewSplitter(renderer *render.Renderer, exporter *export.Exporter, log logger.Logger) *Splitter {
	s := &Splitter{
		intake:   intake.New(log),
		gallery:  gallery.New(),
		renderer: renderer,
		exporter: exporter,
		log:      log,
	}
	s.intake.OnAccept(s.gallery.Refresh)
	s.intake.OnAccept(func(models.InputFile) { s.clearPreviews() })
	return s
}

// Submit offers files to intake. Only the first file is considered.
func (s *Splitter) Submit(files ...models.CandidateFile) error {
	return s.intake.SubmitCandidate(files...)
}

// Split renders every page of the active input and replaces the previous
// previews with the result once the whole pass has finished.
func (s *Splitter) Split(ctx context.Context) (*models.RenderReport, error) {
	active, ok := s.intake.Active()
	if !ok {
		return nil, ErrNoActiveFile
	}

	s.log.Info("Splitting %q", active.Name)
	report, err := s.renderer.RenderAll(ctx, active.Data)
	if err != nil {
		s.log.Error("Split of %q failed: %v", active.Name, err)
		return nil, err
	}

	s.mu.Lock()
	s.report = report
	s.mu.Unlock()
	return report, nil
}

// ExportRequest returns the export request attached to a rendered page.
func (s *Splitter) ExportRequest(pageNumber int) (models.ExportRequest, error) {
	preview, err := s.Preview(pageNumber)
	if err != nil {
		return models.ExportRequest{}, err
	}
	return preview.Export, nil
}

// Preview returns a page of the latest render pass.
func (s *Splitter) Preview(pageNumber int) (models.PagePreview, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report != nil {
		for _, p := range s.report.Previews {
			if p.PageNumber == pageNumber {
				return p, nil
			}
		}
	}
	return models.PagePreview{}, fmt.Errorf("%w: %d", ErrPageNotRendered, pageNumber)
}

// Export is the single handler for every export request.
func (s *Splitter) Export(req models.ExportRequest) (*models.ExportArtifact, error) {
	artifact, err := s.exporter.ExportPage(req)
	if err != nil {
		s.log.Error("Export of page %d failed: %v", req.PageNumber, err)
		return nil, err
	}
	s.log.Info("Exported %s (%d bytes)", artifact.Filename, len(artifact.Data))
	return artifact, nil
}

// ExportPage exports a page of the latest render pass.
func (s *Splitter) ExportPage(pageNumber int) (*models.ExportArtifact, error) {
	req, err := s.ExportRequest(pageNumber)
	if err != nil {
		return nil, err
	}
	return s.Export(req)
}

func (s *Splitter) Active() (models.InputFile, bool) {
	return s.intake.Active()
}

func (s *Splitter) State() State {
	_, ok := s.intake.Active()
	state := State{
		Summary:  s.gallery.Line(),
		CanSplit: ok,
		Previews: []models.PagePreview{},
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.report != nil {
		state.Previews = s.report.Previews
		state.Failures = s.report.Failures
	}
	return state
}

func (s *Splitter) clearPreviews() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.report = nil
}

// Notice returns the text shown to a user for an expected workflow error,
// or "" when err is not one.
func Notice(err error) string {
	var parseErr *pdf.ParseError
	switch {
	case errors.Is(err, intake.ErrInvalidSelection):
		return "Please select a valid PDF file."
	case errors.Is(err, ErrNoActiveFile):
		return "Please select a PDF file first."
	case errors.As(err, &parseErr):
		return "The selected file could not be read as a PDF."
	default:
		return ""
	}
}
