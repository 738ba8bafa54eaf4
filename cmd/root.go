// Package cmd implements the CLI commands for issueboss using Cobra.
package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/gaurav-prasanna/issueboss/core/config"
	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
)

// Flag variables shared by every subcommand.
var (
	flagConfig  string
	flagVerbose bool
)

// v collects defaults, config file, environment and bound flags.
var v = config.New()

// cfg is resolved in PersistentPreRunE before any subcommand runs.
var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "issueboss",
	Short: "issueboss: post issues from a markdown or TOML file to a tracker",
	Long: `issueboss turns a structured document into issues and posts them to an
issue tracker through its command-line client.

Markdown: every heading starts an issue, the first paragraph after it is the
description, and front matter becomes document metadata.
TOML: top-level keys are document metadata, every table is an issue and its
"description" key is the description.

Usage:
  issueboss trello -l <list> -b <board> <file>
  issueboss gitlab <file>
  issueboss parse <file>`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&flagConfig, "config", "c", "", "Config file (default: ./.issueboss.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().String("input", "auto", "Input format: auto, markdown, toml or html")
	rootCmd.PersistentFlags().String("color", "auto", "Colored output: auto, always or never")

	cobra.CheckErr(config.BindFlags(v, rootCmd.PersistentFlags(), map[string]string{
		"input": "input",
		"color": "color",
	}))
}

// Execute runs the root command.
// An interrupt cancels the submission batch between issues.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(ierr.ExitCode(err))
	}
}

func setup(cmd *cobra.Command, _ []string) error {
	c, err := config.Load(v, flagConfig)
	if err != nil {
		return err
	}
	cfg = c

	level := slog.LevelInfo
	if err := level.UnmarshalText([]byte(cfg.LogLevel)); err != nil {
		return ierr.Config(err, "invalid log level %q", cfg.LogLevel)
	}
	if flagVerbose {
		level = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level})))
	return nil
}

// colored reports whether operator output should carry ANSI colors.
func colored() bool {
	switch cfg.Color {
	case "always":
		return true
	case "never":
		return false
	default:
		return !color.NoColor
	}
}
