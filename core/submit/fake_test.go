package submit

import (
	"context"
	"errors"
	"slices"
)

type call struct {
	Name string
	Args []string
}

// recordingRunner records invocations and fails those whose args contain a
// title listed in stderrFor.
type recordingRunner struct {
	calls     []call
	stderrFor map[string]string
	errFor    map[string]error
}

func (r *recordingRunner) Run(_ context.Context, name string, args ...string) ([]byte, error) {
	r.calls = append(r.calls, call{Name: name, Args: slices.Clone(args)})
	for title, msg := range r.stderrFor {
		if slices.Contains(args, title) {
			return []byte(msg), errors.New("exit status 1")
		}
	}
	for title, err := range r.errFor {
		if slices.Contains(args, title) {
			return nil, err
		}
	}
	return nil, nil
}
