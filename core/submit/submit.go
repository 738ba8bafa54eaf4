// Package submit creates tracker tickets by shelling out to the tracker's
// command-line client, one subprocess per issue.
//
// Arguments are always passed as separate argv entries; nothing is joined or
// run through a shell. Any output on standard error is a failure for that
// issue, standard output is discarded.
package submit

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
	"github.com/gaurav-prasanna/issueboss/core/logfields"
)

// Runner executes an external program and returns what it wrote to stderr.
type Runner interface {
	Run(ctx context.Context, name string, args ...string) (stderr []byte, err error)
}

// ExecRunner runs programs with os/exec.
type ExecRunner struct{}

// Run starts name with args and waits for it. Stdout goes to the null device.
func (ExecRunner) Run(ctx context.Context, name string, args ...string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	err := cmd.Run()
	return stderr.Bytes(), err
}

// run invokes the client and classifies the outcome for one issue.
func run(ctx context.Context, r Runner, issue core.Issue, name string, args []string) error {
	slog.Debug("Submitting issue", logfields.Issue(issue.Title), slog.String("command", name))

	stderr, err := r.Run(ctx, name, args...)
	switch {
	case len(stderr) > 0:
		return ierr.Submission(err, "%s", strings.TrimRight(string(stderr), "\r\n")).
			With("title", issue.Title).
			With("source", "stderr")
	case err != nil:
		return ierr.Submission(err, "running %s", name).With("title", issue.Title)
	default:
		return nil
	}
}

// ClientOutput returns what the tracker client wrote to stderr when that is
// why the submission failed.
func ClientOutput(err error) (string, bool) {
	var e *ierr.Error
	if !errors.As(err, &e) {
		return "", false
	}
	if src, _ := e.Context("source"); src != "stderr" {
		return "", false
	}
	return e.Message(), true
}

// Result is the outcome of one submission.
type Result struct {
	Issue core.Issue
	Err   error
}

// Report summarizes a batch.
type Report struct {
	Attempted int
	Failed    int
}

// Batch submits issues in order, one at a time. A failed issue is reported
// through onResult and the batch moves on; there is no rollback. The batch
// only stops early when ctx is done.
func Batch(ctx context.Context, s core.Submitter, issues []core.Issue, onResult func(Result)) Report {
	var rep Report
	for _, issue := range issues {
		if ctx.Err() != nil {
			break
		}
		err := s.Submit(ctx, issue)
		rep.Attempted++
		if err != nil {
			rep.Failed++
			slog.Debug("Issue submission failed", logfields.Issue(issue.Title), logfields.Error(err))
		}
		if onResult != nil {
			onResult(Result{Issue: issue, Err: err})
		}
	}
	return rep
}
