// Package core defines the shared document model and the pipeline interfaces
// for issueboss. Each stage of the pipeline is a clean, testable interface.
package core

import (
	"context"
	"sort"
)

// Metadata is a string-keyed, string-valued side table attached to a
// Document or an Issue. A nil Metadata means "absent".
type Metadata map[string]string

// Set inserts key, creating the map on first use.
func (m *Metadata) Set(key, value string) {
	if *m == nil {
		*m = make(Metadata)
	}
	(*m)[key] = value
}

// Keys returns the keys in sorted order for deterministic display.
func (m Metadata) Keys() []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Issue is a single record intended to become one ticket in a tracker.
type Issue struct {
	Title       string   `json:"title" yaml:"title"`
	Description string   `json:"description" yaml:"description"`
	Metadata    Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
}

// Document is the full parse result: optional document metadata plus the
// issues in source order.
type Document struct {
	Metadata Metadata `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Issues   []Issue  `json:"issues" yaml:"issues"`
}

// Parser turns raw source text into a Document.
type Parser interface {
	Parse(src []byte) (Document, error)
}

// Renderer converts a Document into a final output format.
type Renderer interface {
	Render(doc Document) ([]byte, error)
	// Extension returns the file extension for this renderer (e.g. ".md", ".pdf").
	Extension() string
}

// Submitter creates one remote ticket per call.
type Submitter interface {
	Submit(ctx context.Context, issue Issue) error
}
