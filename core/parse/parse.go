// Package parse reads an issue source and runs it through the extraction
// pipeline for its input mode:
//
//	markdown: decode → tokenize → build
//	toml:     decode → table
//	html:     decode → extract → normalize → tokenize → build
//
// The whole pipeline completes before a Document is returned.
package parse

import (
	"fmt"
	"iter"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/unicode"

	"github.com/gaurav-prasanna/issueboss/core"
	"github.com/gaurav-prasanna/issueboss/core/build"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
	"github.com/gaurav-prasanna/issueboss/core/event"
	"github.com/gaurav-prasanna/issueboss/core/extract"
	"github.com/gaurav-prasanna/issueboss/core/logfields"
	"github.com/gaurav-prasanna/issueboss/core/normalize"
	"github.com/gaurav-prasanna/issueboss/core/table"
	"github.com/gaurav-prasanna/issueboss/core/tokenize"
)

// Format selects the input mode.
type Format string

const (
	FormatAuto     Format = "auto"
	FormatMarkdown Format = "markdown"
	FormatTOML     Format = "toml"
	FormatHTML     Format = "html"
)

// Formats lists the accepted --input values.
var Formats = []Format{FormatAuto, FormatMarkdown, FormatTOML, FormatHTML}

// ParseFormat checks an --input value against Formats.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	if !slices.Contains(Formats, f) {
		return "", ierr.Config(nil, "unknown input format %q", s)
	}
	return f, nil
}

// Detect resolves FormatAuto from the file extension.
func Detect(path string, f Format) Format {
	if f != FormatAuto && f != "" {
		return f
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".html", ".htm":
		return FormatHTML
	default:
		return FormatMarkdown
	}
}

// File reads path and parses it in the given mode.
func File(path string, f Format) (core.Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return core.Document{}, ierr.IO(err, "reading %s", path)
	}

	src, err := Decode(raw)
	if err != nil {
		return core.Document{}, fmt.Errorf("%s: %w", path, err)
	}

	mode := Detect(path, f)
	slog.Debug("Parsing source", logfields.Stage("parse"), logfields.Source(path), logfields.Format(string(mode)))

	p, err := ForFormat(mode)
	if err != nil {
		return core.Document{}, err
	}
	doc, err := p.Parse(src)
	if err != nil {
		return core.Document{}, fmt.Errorf("parse %s: %w", path, err)
	}

	slog.Debug("Parsed source", logfields.Source(path), logfields.Count(len(doc.Issues)))
	return doc, nil
}

// Decode strips a UTF-8 byte order mark and rejects sources that are not
// valid UTF-8 text.
func Decode(raw []byte) ([]byte, error) {
	if !utf8.Valid(raw) {
		return nil, ierr.IO(nil, "source is not valid UTF-8 text")
	}
	out, err := unicode.UTF8BOM.NewDecoder().Bytes(raw)
	if err != nil {
		return nil, ierr.IO(err, "decoding source")
	}
	return out, nil
}

// ForFormat returns the parser for a concrete input mode.
func ForFormat(f Format) (core.Parser, error) {
	switch f {
	case FormatMarkdown:
		return NewMarkdown(), nil
	case FormatTOML:
		return table.New(), nil
	case FormatHTML:
		return NewHTML(), nil
	default:
		return nil, ierr.Config(nil, "unknown input format %q", f)
	}
}

// Markdown implements core.Parser for markdown sources.
type Markdown struct {
	tokenizer *tokenize.Tokenizer
}

// NewMarkdown creates a markdown parser.
func NewMarkdown() *Markdown {
	return &Markdown{tokenizer: tokenize.New()}
}

// Parse tokenizes src and folds the events into a Document.
func (m *Markdown) Parse(src []byte) (core.Document, error) {
	events, err := m.tokenizer.Tokenize(src)
	if err != nil {
		return core.Document{}, err
	}
	return fold(events), nil
}

// HTML implements core.Parser for HTML sources.
type HTML struct {
	extractor  *extract.HTMLExtractor
	normalizer *normalize.MarkdownNormalizer
	tokenizer  *tokenize.Tokenizer
}

// NewHTML creates an HTML parser.
func NewHTML() *HTML {
	return &HTML{
		extractor:  extract.New(),
		normalizer: normalize.New(),
		tokenizer:  tokenize.New(),
	}
}

// Parse reduces the page to markdown and parses that. Head metadata is
// delivered to the builder as a leading metadata event.
func (h *HTML) Parse(src []byte) (core.Document, error) {
	res, err := h.extractor.Extract(string(src))
	if err != nil {
		return core.Document{}, fmt.Errorf("extract: %w", err)
	}
	md, err := h.normalizer.Normalize(res.HTML)
	if err != nil {
		return core.Document{}, fmt.Errorf("normalize: %w", err)
	}
	// Converted markdown has no front matter; a leading thematic break must
	// not be read as one.
	body := h.tokenizer.TokenizeBody([]byte(md))

	return fold(func(yield func(event.Event) bool) {
		if res.Metadata != nil && !yield(event.Metadata(res.Metadata)) {
			return
		}
		body(yield)
	}), nil
}

func fold(events iter.Seq[event.Event]) core.Document {
	b := build.New()
	for ev := range events {
		b.Apply(ev)
	}
	doc := b.Document()
	for _, title := range b.Dropped() {
		slog.Warn("Heading without description dropped", logfields.Stage("build"), logfields.Issue(title))
	}
	return doc
}
