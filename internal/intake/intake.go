// Package intake owns the active input file and the media type gate in
// front of it.
package intake

import (
	"errors"
	"sync"

	"github.com/Epistemic-Technology/pdf-splitter/internal/logger"
	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// ErrInvalidSelection is the notice for an empty or non-PDF selection.
var ErrInvalidSelection = errors.New("please select a valid PDF file")

// Listener is notified with the newly accepted file.
type Listener func(models.InputFile)

type Intake struct {
	mu        sync.RWMutex
	active    *models.InputFile
	listeners []Listener
	log       logger.Logger
}

func New(log logger.Logger) *Intake {
	return &Intake{log: log}
}

// Accepts reports whether a candidate passes the media type gate.
func Accepts(c models.CandidateFile) bool {
	return c.MediaType == models.PDFMediaType
}

// OnAccept registers a listener called after every accepted submission.
func (in *Intake) OnAccept(l Listener) {
	in.mu.Lock()
	defer in.mu.Unlock()
	in.listeners = append(in.listeners, l)
}

// SubmitCandidate considers the first of files. It becomes the active input
// when its declared media type is exactly application/pdf; otherwise
// ErrInvalidSelection is returned and the active input is left as it was.
func (in *Intake) SubmitCandidate(files ...models.CandidateFile) error {
	if len(files) == 0 {
		in.log.Warn("Rejected selection: no file")
		return ErrInvalidSelection
	}
	c := files[0]
	if !Accepts(c) {
		in.log.Warn("Rejected %q: media type %q", c.Name, c.MediaType)
		return ErrInvalidSelection
	}

	file := models.InputFile{Name: c.Name, Size: c.Size, Data: c.Data}

	in.mu.Lock()
	in.active = &file
	listeners := append([]Listener(nil), in.listeners...)
	in.mu.Unlock()

	in.log.Info("Accepted %q (%d bytes)", file.Name, file.Size)
	for _, l := range listeners {
		l(file)
	}
	return nil
}

// Active returns the active input file, if any.
func (in *Intake) Active() (models.InputFile, bool) {
	in.mu.RLock()
	defer in.mu.RUnlock()
	if in.active == nil {
		return models.InputFile{}, false
	}
	return *in.active, true
}
