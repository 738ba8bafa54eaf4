// Package table parses table documents (TOML) into a core.Document.
//
// Entries are visited in source order. Top-level scalars become document
// metadata; each top-level table becomes an issue titled by its key, whose
// `description` entry is the issue description and whose other scalars are
// issue metadata. Arrays, arrays of tables and nested tables are ignored.
package table

import (
	"errors"
	"fmt"

	"github.com/BurntSushi/toml"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// DescriptionKey is the reserved table entry holding the issue description.
const DescriptionKey = "description"

// Parser implements core.Parser for TOML sources.
type Parser struct{}

// New creates a Parser.
func New() *Parser {
	return &Parser{}
}

// Parse decodes src and folds its entries into a Document.
func (p *Parser) Parse(src []byte) (core.Document, error) {
	var raw map[string]any
	md, err := toml.Decode(string(src), &raw)
	if err != nil {
		return core.Document{}, formatError(err)
	}

	var doc core.Document
	order := entryOrder(md.Keys())
	for _, name := range order.top {
		switch value := raw[name].(type) {
		case map[string]any:
			issue, err := tableIssue(name, value, order.fields[name])
			if err != nil {
				return core.Document{}, err
			}
			doc.Issues = append(doc.Issues, issue)
		case []any, []map[string]any:
			continue
		default:
			s, err := scalarString(value, name)
			if err != nil {
				return core.Document{}, err
			}
			doc.Metadata.Set(name, s)
		}
	}
	return doc, nil
}

func tableIssue(name string, tbl map[string]any, fields []string) (core.Issue, error) {
	issue := core.Issue{Title: name}
	for _, key := range fields {
		switch value := tbl[key].(type) {
		case map[string]any, []any, []map[string]any:
			continue
		default:
			s, err := scalarString(value, name, key)
			if err != nil {
				return core.Issue{}, err
			}
			if key == DescriptionKey {
				issue.Description = s
				continue
			}
			issue.Metadata.Set(key, s)
		}
	}
	return issue, nil
}

func scalarString(value any, path ...string) (string, error) {
	s, ok := value.(string)
	if !ok {
		return "", ierr.Value("value for %s is not a string", toml.Key(path).String()).
			With("type", fmt.Sprintf("%T", value))
	}
	return s, nil
}

type order struct {
	top    []string
	fields map[string][]string
}

// entryOrder recovers source order from the decoder's key list. Implicit
// parent tables ([a.b] without [a]) are placed where their first key appears.
func entryOrder(keys []toml.Key) order {
	o := order{fields: make(map[string][]string)}
	seenTop := make(map[string]bool)
	seenField := make(map[string]bool)
	for _, key := range keys {
		if len(key) == 0 {
			continue
		}
		name := key[0]
		if !seenTop[name] {
			seenTop[name] = true
			o.top = append(o.top, name)
		}
		if len(key) == 2 {
			id := key.String()
			if !seenField[id] {
				seenField[id] = true
				o.fields[name] = append(o.fields[name], key[1])
			}
		}
	}
	return o
}

func formatError(err error) error {
	e := ierr.Format(err, "parsing table document")
	var perr toml.ParseError
	if errors.As(err, &perr) {
		e = e.With("line", perr.Position.Line)
	}
	return e
}
