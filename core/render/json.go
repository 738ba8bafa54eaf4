package render

import (
	"encoding/json"
	"fmt"

	"github.com/gaurav-prasanna/issueboss/core"
)

// JSONRenderer produces indented JSON.
type JSONRenderer struct{}

// NewJSONRenderer creates a JSONRenderer.
func NewJSONRenderer() *JSONRenderer {
	return &JSONRenderer{}
}

// Render marshals the Document. Issues is always an array, never null.
func (r *JSONRenderer) Render(doc core.Document) ([]byte, error) {
	if doc.Issues == nil {
		doc.Issues = []core.Issue{}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling JSON: %w", err)
	}
	return append(data, '\n'), nil
}

// Extension returns the file extension for JSON output.
func (r *JSONRenderer) Extension() string {
	return ".json"
}
