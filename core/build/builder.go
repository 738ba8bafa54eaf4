// Package build folds a stream of structural events into a core.Document.
//
// The builder is a three-state machine. Headings open a pending issue and
// set its title; the first paragraph that follows sets the description and
// appends the issue. An issue is only appended when its paragraph ends, so a
// heading with no paragraph before the next heading (or end of input) is
// dropped; Dropped reports those titles.
package build

import (
	"iter"
	"strings"

	"github.com/gaurav-prasanna/issueboss/core"
	"github.com/gaurav-prasanna/issueboss/core/event"
)

// State is the builder's position in the event grammar.
type State int

const (
	StateIdle State = iota
	StateHeading
	StateParagraph
)

func (s State) String() string {
	switch s {
	case StateHeading:
		return "in_heading"
	case StateParagraph:
		return "in_paragraph"
	default:
		return "idle"
	}
}

// Action is the side effect a transition asks the builder to perform.
type Action int

const (
	ActionNone Action = iota
	ActionBeginIssue
	ActionCommitTitle
	ActionBeginParagraph
	ActionCommitDescription
	ActionAppendText
	ActionAppendNewline
	ActionMergeMetadata
)

// Transition is the pure transition function. Events that do not match an
// expected transition leave the state unchanged and yield ActionNone.
func Transition(s State, k event.Kind) (State, Action) {
	switch k {
	case event.KindHeadingStart:
		if s != StateParagraph {
			return StateHeading, ActionBeginIssue
		}
	case event.KindHeadingEnd:
		if s == StateHeading {
			return StateIdle, ActionCommitTitle
		}
	case event.KindParagraphStart:
		if s == StateIdle {
			return StateParagraph, ActionBeginParagraph
		}
	case event.KindParagraphEnd:
		if s == StateParagraph {
			return StateIdle, ActionCommitDescription
		}
	case event.KindText:
		if s != StateIdle {
			return s, ActionAppendText
		}
	case event.KindSoftBreak:
		if s != StateIdle {
			return s, ActionAppendNewline
		}
	case event.KindMetadata:
		if s == StateIdle {
			return s, ActionMergeMetadata
		}
	default:
	}
	return s, ActionNone
}

// Builder owns the accumulator and the document for one parse call.
type Builder struct {
	state   State
	acc     strings.Builder
	pending *core.Issue
	started bool
	doc     core.Document
	dropped []string
}

// New returns a builder in the idle state.
func New() *Builder {
	return &Builder{}
}

// State reports the current state.
func (b *Builder) State() State { return b.state }

// Apply feeds one event through the state machine.
func (b *Builder) Apply(ev event.Event) {
	next, action := Transition(b.state, ev.Kind)
	b.state = next

	switch action {
	case ActionBeginIssue:
		if b.pending != nil {
			b.drop()
		}
		b.acc.Reset()
		b.pending = &core.Issue{}
		b.started = true
	case ActionCommitTitle:
		b.pending.Title = b.acc.String()
		b.acc.Reset()
		if b.pending.Title == "" {
			b.pending = nil
		}
	case ActionBeginParagraph:
		b.acc.Reset()
	case ActionCommitDescription:
		if b.pending != nil {
			b.pending.Description = b.acc.String()
			b.doc.Issues = append(b.doc.Issues, *b.pending)
			b.pending = nil
		}
		b.acc.Reset()
	case ActionAppendText:
		b.acc.WriteString(ev.Text)
	case ActionAppendNewline:
		b.acc.WriteByte('\n')
	case ActionMergeMetadata:
		// Document metadata is closed once the first issue begins.
		if !b.started {
			for k, v := range ev.Fields {
				b.doc.Metadata.Set(k, v)
			}
		}
	case ActionNone:
	}
}

func (b *Builder) drop() {
	if b.pending.Title != "" {
		b.dropped = append(b.dropped, b.pending.Title)
	}
	b.pending = nil
}

// Document finishes the build and returns the result. A pending issue that
// never saw its paragraph end is dropped.
func (b *Builder) Document() core.Document {
	if b.pending != nil {
		b.drop()
	}
	b.acc.Reset()
	b.state = StateIdle
	return b.doc
}

// Dropped returns the titles of headings that never received a paragraph.
// Only complete once Document has been called.
func (b *Builder) Dropped() []string {
	return b.dropped
}

// Build drains events and returns the document.
func Build(events iter.Seq[event.Event]) core.Document {
	b := New()
	for ev := range events {
		b.Apply(ev)
	}
	return b.Document()
}
