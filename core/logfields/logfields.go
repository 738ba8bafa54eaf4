package logfields

import "log/slog"

// Canonical log field name constants to avoid drift across packages.
const (
	KeySource = "source"
	KeyFormat = "format"
	KeyIssue  = "issue"
	KeyRunID  = "run_id"
	KeyStage  = "stage"
	KeyCount  = "count"
	KeyError  = "error"
)

func Source(path string) slog.Attr { return slog.String(KeySource, path) }
func Format(f string) slog.Attr    { return slog.String(KeyFormat, f) }
func Issue(title string) slog.Attr { return slog.String(KeyIssue, title) }
func RunID(id string) slog.Attr    { return slog.String(KeyRunID, id) }
func Stage(name string) slog.Attr  { return slog.String(KeyStage, name) }
func Count(n int) slog.Attr        { return slog.Int(KeyCount, n) }
func Error(err error) slog.Attr {
	if err == nil {
		return slog.String(KeyError, "")
	}
	return slog.String(KeyError, err.Error())
}
