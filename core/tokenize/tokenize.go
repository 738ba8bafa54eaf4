// Package tokenize turns markdown source into the lazy event stream consumed
// by the document builder. Parsing is done by goldmark; the AST walk is
// flattened into start/end/text events. A leading front-matter block (YAML,
// TOML or JSON) is reported as a single Metadata event before anything else.
package tokenize

import (
	"bytes"
	"fmt"
	"iter"

	"github.com/adrg/frontmatter"
	"github.com/spf13/cast"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
	"github.com/yuin/goldmark/util"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
	"github.com/gaurav-prasanna/issueboss/core/event"
)

// Tokenizer produces event streams from markdown.
type Tokenizer struct {
	md goldmark.Markdown
}

// New creates a Tokenizer with a CommonMark goldmark engine.
func New() *Tokenizer {
	return &Tokenizer{md: goldmark.New()}
}

// Tokenize splits off front matter and returns the event stream for the
// body. The markdown body itself is only parsed when the sequence is ranged
// over. Malformed front matter is a format error.
func (t *Tokenizer) Tokenize(src []byte) (iter.Seq[event.Event], error) {
	fields, body, err := splitFrontMatter(src)
	if err != nil {
		return nil, err
	}

	events := t.TokenizeBody(body)
	if fields == nil {
		return events, nil
	}
	return func(yield func(event.Event) bool) {
		if !yield(event.Metadata(fields)) {
			return
		}
		events(yield)
	}, nil
}

// TokenizeBody returns the event stream for markdown that carries no front
// matter.
func (t *Tokenizer) TokenizeBody(body []byte) iter.Seq[event.Event] {
	return func(yield func(event.Event) bool) {
		root := t.md.Parser().Parse(text.NewReader(body))
		_ = ast.Walk(root, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
			evs, status := nodeEvents(n, entering, body)
			for _, ev := range evs {
				if !yield(ev) {
					return ast.WalkStop, nil
				}
			}
			return status, nil
		})
	}
}

func nodeEvents(n ast.Node, entering bool, source []byte) ([]event.Event, ast.WalkStatus) {
	switch n.(type) {
	case *ast.Document:
		return nil, ast.WalkContinue
	case *ast.Heading:
		if entering {
			return []event.Event{event.HeadingStart()}, ast.WalkContinue
		}
		return []event.Event{event.HeadingEnd()}, ast.WalkContinue
	case *ast.Paragraph:
		if entering {
			return []event.Event{event.ParagraphStart()}, ast.WalkContinue
		}
		return []event.Event{event.ParagraphEnd()}, ast.WalkContinue
	}

	if !entering {
		return nil, ast.WalkContinue
	}

	switch node := n.(type) {
	case *ast.Text:
		evs := []event.Event{event.Text(resolve(node.Segment.Value(source)))}
		switch {
		case node.HardLineBreak():
			evs = append(evs, event.HardBreak())
		case node.SoftLineBreak():
			evs = append(evs, event.SoftBreak())
		}
		return evs, ast.WalkContinue
	case *ast.String:
		return []event.Event{event.Text(string(node.Value))}, ast.WalkContinue
	case *ast.CodeSpan:
		return []event.Event{event.Text(inlineText(node, source))}, ast.WalkSkipChildren
	case *ast.AutoLink:
		return []event.Event{event.Text(string(node.URL(source)))}, ast.WalkContinue
	default:
		return []event.Event{event.Other()}, ast.WalkContinue
	}
}

// resolve applies backslash escapes and entity references, which goldmark
// leaves in text segments for its renderer to handle. An escaped "&" does
// not start a reference.
func resolve(v []byte) string {
	var buf bytes.Buffer
	start := 0
	for i := 0; i+1 < len(v); i++ {
		if v[i] == '\\' && util.IsPunct(v[i+1]) {
			buf.Write(references(v[start:i]))
			buf.WriteByte(v[i+1])
			i++
			start = i + 1
		}
	}
	buf.Write(references(v[start:]))
	return buf.String()
}

func references(v []byte) []byte {
	return util.ResolveEntityNames(util.ResolveNumericReferences(v))
}

// inlineText is the literal content of a code span.
func inlineText(n ast.Node, source []byte) string {
	var buf bytes.Buffer
	for c := n.FirstChild(); c != nil; c = c.NextSibling() {
		switch child := c.(type) {
		case *ast.Text:
			buf.Write(child.Segment.Value(source))
		case *ast.String:
			buf.Write(child.Value)
		}
	}
	return buf.String()
}

// splitFrontMatter returns the scalar front-matter fields (nil when the
// source has no front matter) and the remaining body.
func splitFrontMatter(src []byte) (core.Metadata, []byte, error) {
	var raw map[string]any
	body, err := frontmatter.Parse(bytes.NewReader(src), &raw)
	if err != nil {
		return nil, nil, ierr.Format(err, "reading front matter")
	}
	if len(body) == len(src) {
		return nil, src, nil
	}

	var fields core.Metadata
	for key, value := range raw {
		switch value.(type) {
		case map[string]any, map[any]any, []any:
			continue
		}
		s, err := cast.ToStringE(value)
		if err != nil {
			return nil, nil, ierr.Value("front matter value for %q is not a string", key).With("type", fmt.Sprintf("%T", value))
		}
		fields.Set(key, s)
	}
	if fields == nil {
		fields = core.Metadata{}
	}
	return fields, body, nil
}
