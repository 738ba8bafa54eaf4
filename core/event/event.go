// Package event defines the structural events a tokenizer hands to the
// document builder. The set of kinds the builder acts on is closed; anything
// else is carried as KindOther and ignored downstream.
package event

import "github.com/gaurav-prasanna/issueboss/core"

// Kind identifies a structural event.
type Kind int

const (
	KindOther Kind = iota
	KindHeadingStart
	KindHeadingEnd
	KindParagraphStart
	KindParagraphEnd
	KindText
	KindSoftBreak
	KindHardBreak
	KindMetadata
)

var kindNames = map[Kind]string{
	KindOther:          "other",
	KindHeadingStart:   "heading_start",
	KindHeadingEnd:     "heading_end",
	KindParagraphStart: "paragraph_start",
	KindParagraphEnd:   "paragraph_end",
	KindText:           "text",
	KindSoftBreak:      "soft_break",
	KindHardBreak:      "hard_break",
	KindMetadata:       "metadata",
}

func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one item of the token stream. Text is set for KindText,
// Fields for KindMetadata.
type Event struct {
	Kind   Kind
	Text   string
	Fields core.Metadata
}

func HeadingStart() Event   { return Event{Kind: KindHeadingStart} }
func HeadingEnd() Event     { return Event{Kind: KindHeadingEnd} }
func ParagraphStart() Event { return Event{Kind: KindParagraphStart} }
func ParagraphEnd() Event   { return Event{Kind: KindParagraphEnd} }
func SoftBreak() Event      { return Event{Kind: KindSoftBreak} }
func HardBreak() Event      { return Event{Kind: KindHardBreak} }
func Text(s string) Event   { return Event{Kind: KindText, Text: s} }
func Other() Event          { return Event{Kind: KindOther} }

// Metadata carries a front-matter block.
func Metadata(fields core.Metadata) Event {
	return Event{Kind: KindMetadata, Fields: fields}
}
