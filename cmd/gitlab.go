package cmd

import (
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/issueboss/core/config"
	"github.com/gaurav-prasanna/issueboss/core/submit"
)

var flagGitlabYes bool

var gitlabCmd = &cobra.Command{
	Use:   "gitlab <file>",
	Short: "Create gitlab issues from the issues in a file",
	Long: `Gitlab previews the issues found in the file, asks for confirmation and
then runs "glab issue create" once per issue. Without --project glab uses
the repository of the working directory. An issue metadata entry named by
gitlab.labels_key (default "labels") is passed as --label.

Examples:
  issueboss gitlab sprint.md
  issueboss gitlab -R acme/web backlog.toml`,
	Args: cobra.ExactArgs(1),
	RunE: runGitlab,
}

func init() {
	rootCmd.AddCommand(gitlabCmd)

	gitlabCmd.Flags().StringP("project", "R", "", "GitLab project (group/name)")
	gitlabCmd.Flags().BoolVarP(&flagGitlabYes, "yes", "y", false, "Submit without asking for confirmation")

	cobra.CheckErr(config.BindFlags(v, gitlabCmd.Flags(), map[string]string{
		"project": "gitlab.project",
	}))
}

func runGitlab(cmd *cobra.Command, args []string) error {
	g := cfg.Gitlab
	sub := submit.NewGitlab(newRunner(), g.Command, g.Project, g.LabelsKey)
	return submitFile(cmd.Context(), newSession(cmd, flagGitlabYes), args[0], sub)
}
