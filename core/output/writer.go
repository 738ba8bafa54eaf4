// Package output handles file naming and writing for rendered documents.
// Filenames are derived from the source file (e.g. sprint-7.md rendered as
// JSON is written to sprint-7.json).
package output

import (
	"os"
	"path/filepath"
	"strings"

	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// Writer writes rendered output to disk.
type Writer struct {
	OutputDir string
}

// New creates a Writer targeting the given output directory.
// If outputDir is empty, it defaults to the current working directory.
func New(outputDir string) (*Writer, error) {
	if outputDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, ierr.IO(err, "getting working directory")
		}
		outputDir = wd
	}

	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, ierr.IO(err, "creating output directory %s", outputDir)
	}

	return &Writer{OutputDir: outputDir}, nil
}

// Write stores data under a name derived from sourcePath and ext.
func (w *Writer) Write(sourcePath string, data []byte, ext string) (string, error) {
	path := filepath.Join(w.OutputDir, filenameFromSource(sourcePath)+ext)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", ierr.IO(err, "writing file %s", path)
	}
	return path, nil
}

// filenameFromSource converts a source path into a flat base name.
// Example: ./plans/Sprint 7.md → Sprint_7
func filenameFromSource(sourcePath string) string {
	base := filepath.Base(sourcePath)
	base = strings.TrimSuffix(base, filepath.Ext(base))
	if base == "" || base == "." || base == string(filepath.Separator) {
		return "document"
	}
	return sanitize(base)
}

// sanitize replaces characters outside [A-Za-z0-9._-] with underscores.
func sanitize(s string) string {
	var b strings.Builder
	for _, ch := range s {
		switch {
		case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9',
			ch == '-', ch == '_', ch == '.':
			b.WriteRune(ch)
		default:
			b.WriteRune('_')
		}
	}
	return b.String()
}
