package cmd

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/issueboss/core"
	"github.com/gaurav-prasanna/issueboss/core/confirm"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
	"github.com/gaurav-prasanna/issueboss/core/logfields"
	"github.com/gaurav-prasanna/issueboss/core/parse"
	"github.com/gaurav-prasanna/issueboss/core/render"
	"github.com/gaurav-prasanna/issueboss/core/submit"
)

// newRunner is swapped out in tests.
var newRunner = func() submit.Runner { return submit.ExecRunner{} }

// session carries the operator streams for one submission run.
type session struct {
	in      io.Reader
	out     io.Writer
	errOut  io.Writer
	colored bool
	yes     bool
}

func newSession(cmd *cobra.Command, yes bool) *session {
	return &session{
		in:      cmd.InOrStdin(),
		out:     cmd.OutOrStdout(),
		errOut:  cmd.ErrOrStderr(),
		colored: colored(),
		yes:     yes,
	}
}

// submitFile parses path and hands its issues to sub.
func submitFile(ctx context.Context, s *session, path string, sub core.Submitter) error {
	input, err := parse.ParseFormat(cfg.Input)
	if err != nil {
		return err
	}
	doc, err := parse.File(path, input)
	if err != nil {
		return err
	}
	_, err = s.run(ctx, doc, sub)
	return err
}

// run previews doc, asks for confirmation and submits every issue in order.
// Per-issue failures are reported and counted, never returned.
func (s *session) run(ctx context.Context, doc core.Document, sub core.Submitter) (submit.Report, error) {
	if len(doc.Issues) == 0 {
		fmt.Fprintln(s.out, "No issues found.")
		return submit.Report{}, nil
	}

	preview, err := render.NewTextRenderer(s.colored).Render(doc)
	if err != nil {
		return submit.Report{}, fmt.Errorf("render preview: %w", err)
	}
	if _, err := s.out.Write(preview); err != nil {
		return submit.Report{}, ierr.IO(err, "writing preview")
	}

	if !s.yes {
		ok, err := confirm.Ask(s.in, s.out, fmt.Sprintf("Submit %d issue(s)?", len(doc.Issues)))
		if err != nil {
			return submit.Report{}, err
		}
		if !ok {
			fmt.Fprintln(s.out, "Aborted.")
			return submit.Report{}, nil
		}
	}

	runID := uuid.NewString()
	log := slog.With(logfields.RunID(runID))
	log.Info("Submitting issues", logfields.Count(len(doc.Issues)))

	failed := color.New(color.FgRed, color.Bold)
	ok := color.New(color.FgGreen)
	if s.colored {
		failed.EnableColor()
		ok.EnableColor()
	} else {
		failed.DisableColor()
		ok.DisableColor()
	}

	rep := submit.Batch(ctx, sub, doc.Issues, func(res submit.Result) {
		if res.Err == nil {
			fmt.Fprintf(s.out, "%s %s\n", ok.Sprint("✓ Created:"), res.Issue.Title)
			return
		}
		fmt.Fprintf(s.errOut, "%s %s\n", failed.Sprint("✗ Error:"), res.Issue.Title)
		fmt.Fprintln(s.errOut, failureText(res.Err))
	})

	log.Info("Submission finished",
		slog.Int("attempted", rep.Attempted),
		slog.Int("failed", rep.Failed))
	fmt.Fprintf(s.out, "\n%d submitted, %d failed\n", rep.Attempted-rep.Failed, rep.Failed)
	return rep, nil
}

// failureText is the client's own stderr when it wrote any, otherwise the
// full error chain.
func failureText(err error) string {
	if out, ok := submit.ClientOutput(err); ok {
		return out
	}
	return err.Error()
}
