package submit

import (
	"context"

	"github.com/gaurav-prasanna/issueboss/core"
)

// Trello creates cards with the trello CLI:
//
//	trello add-card -b BOARD -l LIST -p POSITION TITLE DESCRIPTION
type Trello struct {
	Runner   Runner
	Command  string
	Board    string
	List     string
	Position string
}

// NewTrello creates a Trello submitter bound to one board and list.
func NewTrello(r Runner, command, board, list, position string) *Trello {
	if command == "" {
		command = "trello"
	}
	if position == "" {
		position = "bottom"
	}
	return &Trello{Runner: r, Command: command, Board: board, List: list, Position: position}
}

// Args returns the argv (without the program name) for one issue.
func (t *Trello) Args(issue core.Issue) []string {
	return []string{
		"add-card",
		"-b", t.Board,
		"-l", t.List,
		"-p", t.Position,
		issue.Title,
		issue.Description,
	}
}

// Submit creates one card.
func (t *Trello) Submit(ctx context.Context, issue core.Issue) error {
	return run(ctx, t.Runner, issue, t.Command, t.Args(issue))
}
