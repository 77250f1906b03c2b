package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/verdict/internal/format"
	"github.com/roach88/verdict/internal/report"
)

// ShowOptions holds flags for the show command.
type ShowOptions struct {
	*RootOptions
	FileFormat string
	Strict     bool
	Tests      bool
}

// ShowSummary is the JSON payload for a displayed result set.
type ShowSummary struct {
	Tool     string  `json:"tool"`
	Tests    int     `json:"tests"`
	Passed   int     `json:"passed"`
	Failed   int     `json:"failed"`
	Score    float64 `json:"score"`
	MaxScore float64 `json:"max_score"`
}

// NewShowCommand creates the show command.
func NewShowCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ShowOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "show RESULTS",
		Short: "Print one result document",
		Long: `Normalize a single result document into the canonical model and print its
per-test verdicts, counts, score, and grading notes.

Examples:
  verdict show results.json
  verdict show results.json --file-format legacy --tests`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runShow(opts, cmd, args[0])
		},
	}

	cmd.Flags().StringVar(&opts.FileFormat, "file-format", format.FormatAuto, "format of the result file (auto|native|legacy)")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "validate CTRF documents against the schema before decoding")
	cmd.Flags().BoolVar(&opts.Tests, "tests", false, "print per-test lines")

	return cmd
}

func runShow(opts *ShowOptions, cmd *cobra.Command, path string) error {
	set, err := format.LoadFile(path, format.Options{Format: opts.FileFormat, Strict: opts.Strict})
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load results from %s", path), err)
	}

	if opts.Format == "json" {
		sum := set.Summarize()
		return writeJSONResponse(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data: ShowSummary{
				Tool:     set.Tool.Name,
				Tests:    sum.Tests,
				Passed:   sum.Passed,
				Failed:   sum.Failed,
				Score:    set.Score(),
				MaxScore: set.MaxScore(),
			},
		})
	}

	printOpts := report.DefaultPrintOptions()
	printOpts.DescrOnPass = opts.Verbose
	report.PrintSet(cmd.OutOrStdout(), set, opts.Tests, printOpts)

	if !set.IsPassing() {
		return NewExitError(ExitFailure, "result set has failing tests")
	}
	return nil
}
