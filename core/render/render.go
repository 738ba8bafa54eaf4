package render

import (
	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// Names lists the accepted --format values.
var Names = []string{"text", "json", "yaml", "markdown", "pdf"}

// Options tune renderer construction.
type Options struct {
	Colored bool
	Heading string
}

// ByName selects a renderer for a --format value.
func ByName(name string, opts Options) (core.Renderer, error) {
	switch name {
	case "text", "":
		return NewTextRenderer(opts.Colored), nil
	case "json":
		return NewJSONRenderer(), nil
	case "yaml":
		return NewYAMLRenderer(), nil
	case "markdown", "md":
		return NewMarkdownRenderer(), nil
	case "pdf":
		return NewPDFRenderer(opts.Heading), nil
	default:
		return nil, ierr.Config(nil, "unknown output format %q", name)
	}
}
