package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/issueboss/core/config"
	"github.com/gaurav-prasanna/issueboss/core/submit"
)

var flagTrelloYes bool

var trelloCmd = &cobra.Command{
	Use:   "trello <file>",
	Short: "Create trello cards from the issues in a file",
	Long: `Trello previews the issues found in the file, asks for confirmation and
then runs "trello add-card" once per issue.

Examples:
  issueboss trello -l Backlog -b Roadmap sprint.md
  issueboss trello -l Backlog -b Roadmap --yes backlog.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runTrello,
}

func init() {
	rootCmd.AddCommand(trelloCmd)

	trelloCmd.Flags().StringP("list", "l", "", "Name of the trello list")
	trelloCmd.Flags().StringP("board", "b", "", "Name of the trello board")
	trelloCmd.Flags().String("position", "", "Card position in the list: top or bottom")
	trelloCmd.Flags().BoolVarP(&flagTrelloYes, "yes", "y", false, "Submit without asking for confirmation")

	cobra.CheckErr(config.BindFlags(v, trelloCmd.Flags(), map[string]string{
		"list":     "trello.list",
		"board":    "trello.board",
		"position": "trello.position",
	}))
}

func runTrello(cmd *cobra.Command, args []string) error {
	if err := cfg.ValidateTrello(); err != nil {
		return err
	}
	t := cfg.Trello
	sub := submit.NewTrello(newRunner(), t.Command, t.Board, t.List, t.Position)
	return submitFile(cmd.Context(), newSession(cmd, flagTrelloYes), args[0], sub)
}
