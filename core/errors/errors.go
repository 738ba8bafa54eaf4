// Package errors provides the classified error type used across issueboss.
//
// Every failure the operator can see is an *Error with a Kind. Parse-time
// kinds (io, format, value) abort a run before anything is shown; submission
// errors are per issue and never abort a batch.
package errors

import (
	stderrors "errors"
	"fmt"
	"sort"
	"strings"
)

// Kind is the broad category of an error.
type Kind string

const (
	KindIO         Kind = "io"
	KindFormat     Kind = "format"
	KindValue      Kind = "value"
	KindSubmission Kind = "submission"
	KindConfig     Kind = "config"
	KindInternal   Kind = "internal"
)

// Sentinels for errors.Is matching by kind.
var (
	ErrIO         = &Error{kind: KindIO}
	ErrFormat     = &Error{kind: KindFormat}
	ErrValue      = &Error{kind: KindValue}
	ErrSubmission = &Error{kind: KindSubmission}
	ErrConfig     = &Error{kind: KindConfig}
)

// Error is a classified error with an optional cause and context.
type Error struct {
	kind    Kind
	message string
	cause   error
	context map[string]any
}

func newError(kind Kind, cause error, format string, args ...any) *Error {
	return &Error{kind: kind, message: fmt.Sprintf(format, args...), cause: cause}
}

// IO reports a source that cannot be opened, read, or decoded as text.
func IO(cause error, format string, args ...any) *Error {
	return newError(KindIO, cause, format, args...)
}

// Format reports source text that does not follow its grammar.
func Format(cause error, format string, args ...any) *Error {
	return newError(KindFormat, cause, format, args...)
}

// Value reports a scalar that is not a string where one is required.
func Value(format string, args ...any) *Error {
	return newError(KindValue, nil, format, args...)
}

// Submission reports a per-issue tracker failure.
func Submission(cause error, format string, args ...any) *Error {
	return newError(KindSubmission, cause, format, args...)
}

// Config reports invalid or missing configuration.
func Config(cause error, format string, args ...any) *Error {
	return newError(KindConfig, cause, format, args...)
}

func (e *Error) Error() string {
	var b strings.Builder
	b.WriteString(e.message)
	if len(e.context) > 0 {
		keys := make([]string, 0, len(e.context))
		for k := range e.context {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%v", k, e.context[k])
		}
		b.WriteString(")")
	}
	if e.cause != nil {
		b.WriteString(": ")
		b.WriteString(e.cause.Error())
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.cause }

// Kind returns the error category.
func (e *Error) Kind() Kind { return e.kind }

// Message returns the message without context or cause.
func (e *Error) Message() string { return e.message }

// Context returns the value stored under key.
func (e *Error) Context(key string) (any, bool) {
	v, ok := e.context[key]
	return v, ok
}

// With returns a copy of the error carrying an extra context value.
func (e *Error) With(key string, value any) *Error {
	ctx := make(map[string]any, len(e.context)+1)
	for k, v := range e.context {
		ctx[k] = v
	}
	ctx[key] = value
	return &Error{kind: e.kind, message: e.message, cause: e.cause, context: ctx}
}

// Is matches sentinels (empty message) by kind, and other errors by kind
// and message.
func (e *Error) Is(target error) bool {
	other, ok := target.(*Error)
	if !ok {
		return false
	}
	if other.message == "" {
		return e.kind == other.kind
	}
	return e.kind == other.kind && e.message == other.message
}

// KindOf returns the kind of the first *Error in err's chain, or
// KindInternal.
func KindOf(err error) Kind {
	var e *Error
	if stderrors.As(err, &e) {
		return e.kind
	}
	return KindInternal
}

// ExitCode maps an error to a process exit status.
func ExitCode(err error) int {
	if err == nil {
		return 0
	}
	switch KindOf(err) {
	case KindConfig:
		return 2
	case KindIO:
		return 3
	case KindFormat:
		return 4
	case KindValue:
		return 5
	case KindSubmission:
		return 6
	default:
		return 1
	}
}
