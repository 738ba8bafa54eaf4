// Package normalize converts cleaned HTML into Markdown, which the markdown
// tokenizer then consumes like any other markdown source.
package normalize

import (
	htmltomarkdown "github.com/JohannesKaufmann/html-to-markdown/v2"

	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// MarkdownNormalizer converts HTML to Markdown using html-to-markdown.
type MarkdownNormalizer struct{}

// New creates a MarkdownNormalizer.
func New() *MarkdownNormalizer {
	return &MarkdownNormalizer{}
}

// Normalize converts a cleaned HTML fragment into Markdown.
func (n *MarkdownNormalizer) Normalize(html string) (string, error) {
	markdown, err := htmltomarkdown.ConvertString(html)
	if err != nil {
		return "", ierr.Format(err, "converting HTML to markdown")
	}
	return markdown, nil
}
