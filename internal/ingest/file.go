package ingest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/verocta-ai/spendscore/internal/common"
	"github.com/verocta-ai/spendscore/internal/model"
)

// SupportedFile reports whether the path has a recognized transaction file
// extension.
func SupportedFile(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv", ".ofx", ".qfx":
		return true
	default:
		return false
	}
}

// ReadFile opens the given file and dispatches to the reader matching its
// extension.
func ReadFile(path string) ([]model.RawRecord, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer func() { _ = f.Close() }()

	switch strings.ToLower(filepath.Ext(path)) {
	case ".csv":
		return NewCSVReader().Read(f)
	case ".ofx", ".qfx":
		return NewOFXReader().Read(f)
	default:
		return nil, fmt.Errorf("%w: %s", common.ErrUnsupportedFormat, filepath.Ext(path))
	}
}
