package gallery

import (
	"fmt"
	"sync"

	"github.com/Epistemic-Technology/pdf-splitter/models"
)

// FormatSize renders a byte count as "<n> bytes", "<x.y> KB" or "<x.y> MB".
func FormatSize(bytes int64) string {
	switch {
	case bytes < 1024:
		return fmt.Sprintf("%d bytes", bytes)
	case bytes < 1048576:
		return fmt.Sprintf("%.1f KB", float64(bytes)/1024)
	default:
		return fmt.Sprintf("%.1f MB", float64(bytes)/1048576)
	}
}

// Summary is the one-line description of an input file.
func Summary(file models.InputFile) string {
	return fmt.Sprintf("File: %s (%s)", file.Name, FormatSize(file.Size))
}

// Gallery holds the summary line shown for the active input.
type Gallery struct {
	mu   sync.RWMutex
	line string
}

func New() *Gallery {
	return &Gallery{}
}

// Refresh replaces whatever was shown with the summary of file.
func (g *Gallery) Refresh(file models.InputFile) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.line = Summary(file)
}

// Line returns the current summary, empty before the first refresh.
func (g *Gallery) Line() string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return g.line
}
