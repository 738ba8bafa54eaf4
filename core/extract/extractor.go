// Package extract isolates the main content of an HTML issue list and
// harvests page-level metadata from its <head>:
//  1. Finding the best content container (<main>, <article>, or <body>)
//  2. Removing noise elements (nav, footer, scripts, forms, etc.)
//  3. Reading <title> and <meta name=... content=...> pairs
package extract

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// noiseSelectors are HTML elements removed before extraction.
var noiseSelectors = []string{
	"script", "style", "noscript",
	"nav", "footer", "header",
	"img", "picture", "figure", "figcaption",
	"iframe", "video", "audio",
	"svg", "canvas",
	"form", "button", "input", "select", "textarea",
	".sidebar", ".menu", ".navigation",
}

// Result is the cleaned content fragment plus head metadata.
type Result struct {
	HTML     string
	Metadata core.Metadata
}

// HTMLExtractor strips noise from HTML and returns the main content fragment.
type HTMLExtractor struct{}

// New creates an HTMLExtractor.
func New() *HTMLExtractor {
	return &HTMLExtractor{}
}

// Extract takes a full HTML page and returns its main content.
func (e *HTMLExtractor) Extract(html string) (Result, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return Result{}, ierr.Format(err, "parsing HTML")
	}

	meta := headMetadata(doc)

	// Remove noise elements first (operates on the whole document).
	for _, sel := range noiseSelectors {
		doc.Find(sel).Remove()
	}

	// <main> is the most semantically correct, then <article>, then <body>.
	var content *goquery.Selection
	for _, tag := range []string{"main", "article", "body"} {
		sel := doc.Find(tag)
		if sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		return Result{}, ierr.Format(nil, "no content container found in HTML")
	}

	out, err := goquery.OuterHtml(content)
	if err != nil {
		return Result{}, fmt.Errorf("serializing content: %w", err)
	}
	return Result{HTML: out, Metadata: meta}, nil
}

func headMetadata(doc *goquery.Document) core.Metadata {
	var meta core.Metadata
	if title := strings.TrimSpace(doc.Find("head > title").First().Text()); title != "" {
		meta.Set("title", title)
	}
	doc.Find("head > meta[name][content]").Each(func(_ int, s *goquery.Selection) {
		name, _ := s.Attr("name")
		content, _ := s.Attr("content")
		name = strings.TrimSpace(name)
		if name == "" || name == "viewport" {
			return
		}
		meta.Set(name, strings.TrimSpace(content))
	})
	return meta
}
