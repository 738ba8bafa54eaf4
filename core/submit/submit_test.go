package submit

import (
	"context"
	"errors"
	"os/exec"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/gaurav-prasanna/issueboss/core"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

var issues = []core.Issue{
	{Title: "One", Description: "first"},
	{Title: "Two", Description: "second"},
	{Title: "Three", Description: "third"},
}

func TestTrello_ArgsAreSeparateEntries(t *testing.T) {
	r := &recordingRunner{}
	tr := NewTrello(r, "", "Roadmap", "Backlog", "")

	err := tr.Submit(context.Background(), core.Issue{Title: "Fix bug; rm -rf /", Description: "multi\nline"})
	require.NoError(t, err)
	require.Equal(t, []call{{
		Name: "trello",
		Args: []string{"add-card", "-b", "Roadmap", "-l", "Backlog", "-p", "bottom", "Fix bug; rm -rf /", "multi\nline"},
	}}, r.calls)
}

func TestGitlab_Args(t *testing.T) {
	g := NewGitlab(&recordingRunner{}, "", "acme/web", "labels")

	require.Equal(t,
		[]string{"issue", "create", "-R", "acme/web", "--title", "T", "--description", "D", "--label", "bug,ui", "--yes"},
		g.Args(core.Issue{Title: "T", Description: "D", Metadata: core.Metadata{"labels": "bug,ui"}}))
	require.Equal(t,
		[]string{"issue", "create", "--title", "T", "--description", "", "--yes"},
		NewGitlab(nil, "", "", "labels").Args(core.Issue{Title: "T"}))
}

func TestSubmit_StderrIsFailure(t *testing.T) {
	r := &recordingRunner{stderrFor: map[string]string{"One": "board not found\n"}}

	err := NewTrello(r, "", "b", "l", "").Submit(context.Background(), issues[0])
	require.Error(t, err)
	require.True(t, errors.Is(err, ierr.ErrSubmission))

	var e *ierr.Error
	require.True(t, errors.As(err, &e))
	require.Equal(t, "board not found", e.Message())
	title, _ := e.Context("title")
	require.Equal(t, "One", title)

	out, ok := ClientOutput(err)
	require.True(t, ok)
	require.Equal(t, "board not found", out)
}

func TestSubmit_StartFailureWithoutStderrIsFailure(t *testing.T) {
	r := &recordingRunner{errFor: map[string]error{"One": exec.ErrNotFound}}

	err := NewTrello(r, "", "b", "l", "").Submit(context.Background(), issues[0])
	require.True(t, errors.Is(err, ierr.ErrSubmission))
	require.True(t, errors.Is(err, exec.ErrNotFound))

	_, ok := ClientOutput(err)
	require.False(t, ok)
}

func TestBatch_OneFailureDoesNotStopTheRest(t *testing.T) {
	r := &recordingRunner{stderrFor: map[string]string{"Two": "rate limited"}}
	tr := NewTrello(r, "", "b", "l", "")

	var failed []string
	rep := Batch(context.Background(), tr, issues, func(res Result) {
		if res.Err != nil {
			failed = append(failed, res.Issue.Title)
		}
	})

	require.Len(t, r.calls, 3)
	require.Equal(t, []string{"Two"}, failed)
	require.Equal(t, Report{Attempted: 3, Failed: 1}, rep)
}

func TestBatch_StopsWhenContextDone(t *testing.T) {
	r := &recordingRunner{}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	rep := Batch(ctx, NewTrello(r, "", "b", "l", ""), issues, nil)
	require.Empty(t, r.calls)
	require.Equal(t, Report{}, rep)
}

func TestExecRunner_CapturesStderr(t *testing.T) {
	if _, err := exec.LookPath("sh"); err != nil {
		t.Skip("sh not available")
	}

	stderr, err := ExecRunner{}.Run(context.Background(), "sh", "-c", "echo out; echo oops >&2")
	require.NoError(t, err)
	require.Equal(t, "oops\n", string(stderr))
}
