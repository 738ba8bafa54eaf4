// Package render provides output renderers for parsed documents.
// This file implements the Markdown renderer, which writes the document back
// in the markdown input grammar: front matter, then one heading and one
// paragraph per issue.
package render

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/gaurav-prasanna/issueboss/core"
)

// MarkdownRenderer writes a Document as markdown that parses back to the
// same titles. Markup characters are backslash-escaped. A description comes
// back with its lines trimmed and blank lines removed, since only one
// paragraph belongs to a heading. Issue metadata has no markdown form and is
// left out, and an issue with a blank description is written as a bare
// heading.
type MarkdownRenderer struct{}

// NewMarkdownRenderer creates a MarkdownRenderer.
func NewMarkdownRenderer() *MarkdownRenderer {
	return &MarkdownRenderer{}
}

// Render emits front matter for document metadata and a heading/paragraph
// pair per issue.
func (r *MarkdownRenderer) Render(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if len(doc.Metadata) > 0 {
		fm, err := yaml.Marshal(map[string]string(doc.Metadata))
		if err != nil {
			return nil, fmt.Errorf("marshaling front matter: %w", err)
		}
		buf.WriteString("---\n")
		buf.Write(fm)
		buf.WriteString("---\n\n")
	}

	for i, issue := range doc.Issues {
		if i > 0 {
			buf.WriteString("\n")
		}
		fmt.Fprintf(&buf, "# %s\n", escapeLine(singleLine(issue.Title)))
		if desc := paragraph(issue.Description); desc != "" {
			buf.WriteString("\n")
			buf.WriteString(desc)
			buf.WriteString("\n")
		}
	}
	return buf.Bytes(), nil
}

// Extension returns the file extension for Markdown output.
func (r *MarkdownRenderer) Extension() string {
	return ".md"
}

func singleLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// inlineEscaper escapes characters that open inline markup, references or
// HTML. Any backslash-escaped ASCII punctuation is literal in CommonMark.
var inlineEscaper = strings.NewReplacer(
	`\`, `\\`,
	"`", "\\`",
	"*", `\*`,
	"_", `\_`,
	"[", `\[`,
	"]", `\]`,
	"<", `\<`,
	">", `\>`,
	"#", `\#`,
	"&", `\&`,
)

// escapeLine escapes inline markup and any block marker at the start of
// the line (list bullets, ordered list numbers, setext underlines, fences).
func escapeLine(line string) string {
	line = inlineEscaper.Replace(strings.TrimSpace(line))
	if line == "" {
		return line
	}
	switch line[0] {
	case '-', '+', '=', '~':
		return `\` + line
	}
	i := 0
	for i < len(line) && line[i] >= '0' && line[i] <= '9' {
		i++
	}
	if i > 0 && i < len(line) && (line[i] == '.' || line[i] == ')') {
		return line[:i] + `\` + line[i:]
	}
	return line
}

// paragraph folds a description into one paragraph of escaped lines.
func paragraph(desc string) string {
	var lines []string
	for _, line := range strings.Split(desc, "\n") {
		if line = escapeLine(line); line != "" {
			lines = append(lines, line)
		}
	}
	return strings.Join(lines, "\n")
}
