package render

import (
	"bytes"
	"fmt"

	"github.com/fatih/color"

	"github.com/gaurav-prasanna/issueboss/core"
)

// TextRenderer produces the operator preview shown before submission.
type TextRenderer struct {
	label *color.Color
	title *color.Color
	desc  *color.Color
	meta  *color.Color
}

// NewTextRenderer creates a TextRenderer. With colored false the output is
// plain text regardless of the terminal.
func NewTextRenderer(colored bool) *TextRenderer {
	r := &TextRenderer{
		label: color.New(color.FgWhite, color.Bold),
		title: color.New(color.FgYellow),
		desc:  color.New(color.FgGreen),
		meta:  color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{r.label, r.title, r.desc, r.meta} {
		if colored {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return r
}

// Render lists document metadata, then each issue's title, description and
// metadata.
func (r *TextRenderer) Render(doc core.Document) ([]byte, error) {
	var buf bytes.Buffer
	if len(doc.Metadata) > 0 {
		fmt.Fprintf(&buf, "%s:\n", r.label.Sprint("Document"))
		r.writeMetadata(&buf, doc.Metadata)
		buf.WriteString("\n")
	}
	for _, issue := range doc.Issues {
		fmt.Fprintf(&buf, "%s: %s\n", r.label.Sprint("Title"), r.title.Sprint(issue.Title))
		fmt.Fprintf(&buf, "%s:\n%s\n", r.label.Sprint("Description"), r.desc.Sprint(issue.Description))
		if len(issue.Metadata) > 0 {
			fmt.Fprintf(&buf, "%s:\n", r.label.Sprint("Metadata"))
			r.writeMetadata(&buf, issue.Metadata)
		}
		buf.WriteString("\n")
	}
	return buf.Bytes(), nil
}

func (r *TextRenderer) writeMetadata(buf *bytes.Buffer, m core.Metadata) {
	for _, k := range m.Keys() {
		fmt.Fprintf(buf, "  %s = %s\n", r.meta.Sprint(k), m[k])
	}
}

// Extension returns the file extension for text output.
func (r *TextRenderer) Extension() string {
	return ".txt"
}
