// Package cmd: parse command.
// Dry run of the extraction pipeline: the document is printed (or written
// to --output_dir) and nothing is submitted.
package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	ierr "github.com/gaurav-prasanna/issueboss/core/errors"
	"github.com/gaurav-prasanna/issueboss/core/output"
	"github.com/gaurav-prasanna/issueboss/core/parse"
	"github.com/gaurav-prasanna/issueboss/core/render"
)

var (
	flagFormat    string
	flagOutputDir string
)

var parseCmd = &cobra.Command{
	Use:   "parse <file>",
	Short: "Parse a file and print the issues it contains",
	Long: `Parse runs the extraction pipeline without submitting anything and prints
the resulting document.

Examples:
  issueboss parse sprint.md
  issueboss parse backlog.toml --format json
  issueboss parse sprint.md --format pdf --output_dir ./out`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)

	parseCmd.Flags().StringVarP(&flagFormat, "format", "f", "text", "Output format: text, json, yaml, markdown or pdf")
	parseCmd.Flags().StringVar(&flagOutputDir, "output_dir", "", "Write the output to this directory instead of stdout")
}

func runParse(cmd *cobra.Command, args []string) error {
	path := args[0]

	renderer, err := render.ByName(flagFormat, render.Options{
		Colored: flagOutputDir == "" && colored(),
		Heading: filepath.Base(path),
	})
	if err != nil {
		return err
	}
	if flagFormat == "pdf" && flagOutputDir == "" {
		return ierr.Config(nil, "--format pdf needs --output_dir")
	}

	input, err := parse.ParseFormat(cfg.Input)
	if err != nil {
		return err
	}
	doc, err := parse.File(path, input)
	if err != nil {
		return err
	}

	data, err := renderer.Render(doc)
	if err != nil {
		return fmt.Errorf("render: %w", err)
	}

	if flagOutputDir == "" {
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	writer, err := output.New(flagOutputDir)
	if err != nil {
		return err
	}
	written, err := writer.Write(path, data, renderer.Extension())
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Written: %s\n", written)
	return nil
}
