package errors

import (
	stderrors "errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestIs_MatchesSentinelByKind(t *testing.T) {
	err := IO(fs.ErrNotExist, "opening %s", "issues.md")

	require.True(t, stderrors.Is(err, ErrIO))
	require.False(t, stderrors.Is(err, ErrFormat))
	require.True(t, stderrors.Is(err, fs.ErrNotExist))
}

func TestIs_ThroughFmtWrap(t *testing.T) {
	err := fmt.Errorf("parse: %w", Value("value for %q is not a string", "owner"))

	require.True(t, stderrors.Is(err, ErrValue))
	require.Equal(t, KindValue, KindOf(err))
}

func TestError_RendersContextAndCause(t *testing.T) {
	err := Submission(stderrors.New("boom"), "submitting issue").With("title", "Fix bug")

	require.Equal(t, "submitting issue (title=Fix bug): boom", err.Error())
	v, ok := err.Context("title")
	require.True(t, ok)
	require.Equal(t, "Fix bug", v)
}

func TestWith_DoesNotMutateOriginal(t *testing.T) {
	base := Format(nil, "bad table")
	_ = base.With("line", 3)

	_, ok := base.Context("line")
	require.False(t, ok)
}

func TestExitCode(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{nil, 0},
		{Config(nil, "missing board"), 2},
		{IO(nil, "read"), 3},
		{Format(nil, "toml"), 4},
		{fmt.Errorf("wrapped: %w", Value("x")), 5},
		{Submission(nil, "x"), 6},
		{stderrors.New("plain"), 1},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, ExitCode(tc.err), "%v", tc.err)
	}
}
