package submit

import (
	"context"

	"github.com/gaurav-prasanna/issueboss/core"
)

// Gitlab creates issues with the glab CLI:
//
//	glab issue create [-R PROJECT] --title TITLE --description DESCRIPTION [--label LABELS] --yes
type Gitlab struct {
	Runner    Runner
	Command   string
	Project   string
	LabelsKey string
}

// NewGitlab creates a Gitlab submitter. An empty project lets glab use the
// repository of the working directory.
func NewGitlab(r Runner, command, project, labelsKey string) *Gitlab {
	if command == "" {
		command = "glab"
	}
	return &Gitlab{Runner: r, Command: command, Project: project, LabelsKey: labelsKey}
}

// Args returns the argv (without the program name) for one issue.
func (g *Gitlab) Args(issue core.Issue) []string {
	args := []string{"issue", "create"}
	if g.Project != "" {
		args = append(args, "-R", g.Project)
	}
	args = append(args, "--title", issue.Title, "--description", issue.Description)
	if g.LabelsKey != "" {
		if labels, ok := issue.Metadata[g.LabelsKey]; ok && labels != "" {
			args = append(args, "--label", labels)
		}
	}
	return append(args, "--yes")
}

// Submit creates one issue.
func (g *Gitlab) Submit(ctx context.Context, issue core.Issue) error {
	return run(ctx, g.Runner, issue, g.Command, g.Args(issue))
}
