package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/format"
	"github.com/roach88/verdict/internal/report"
	"github.com/roach88/verdict/internal/store"
)

// CompareOptions holds flags for the compare command.
type CompareOptions struct {
	*RootOptions
	ActualFormat   string
	ExpectedFormat string
	Suite          string
	Out            string
	Database       string
	Strict         bool
	SummaryOnly    bool
	PrintPassing   bool
}

// CompareSummary is the JSON payload for a completed comparison.
type CompareSummary struct {
	RunID  string `json:"run_id,omitempty"`
	Suite  string `json:"suite,omitempty"`
	Status string `json:"status"`
	Tests  int    `json:"tests"`
	Passed int    `json:"passed"`
	Failed int    `json:"failed"`
}

// NewCompareCommand creates the compare command.
func NewCompareCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CompareOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "compare ACTUAL EXPECTED",
		Short: "Reconcile an actual result file against an expected one",
		Long: `Reconcile an actual test-result document against an expected (reference)
document and classify every test as ok, result mismatch, missing, or extra.

Both inputs may be in the native format, the legacy format, or the canonical
CTRF wire format; by default the format is auto-detected per file.

Exit codes:
  0 - All tests reconciled cleanly
  1 - Comparison failed (mismatched, missing, or extra tests)
  2 - Command error (unreadable or malformed input)

Examples:
  verdict compare actual.json expected.json
  verdict compare actual.json expected.json --expected-format legacy
  verdict compare actual.json expected.json --out comparison.json --db runs.db`,
		Args:          cobra.ExactArgs(2),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runCompare(opts, cmd, args[0], args[1])
		},
	}

	cmd.Flags().StringVar(&opts.ActualFormat, "actual-format", format.FormatAuto, "format of the actual results (auto|native|legacy)")
	cmd.Flags().StringVar(&opts.ExpectedFormat, "expected-format", format.FormatAuto, "format of the expected results (auto|native|legacy)")
	cmd.Flags().StringVar(&opts.Suite, "suite", "", "suite label stamped on every comparison entry")
	cmd.Flags().StringVar(&opts.Out, "out", "", "write the comparison document to this path")
	cmd.Flags().StringVar(&opts.Database, "db", "", "persist the comparison run to this SQLite database")
	cmd.Flags().BoolVar(&opts.Strict, "strict", false, "validate CTRF documents against the schema before decoding")
	cmd.Flags().BoolVar(&opts.SummaryOnly, "summary-only", false, "suppress per-test lines")
	cmd.Flags().BoolVar(&opts.PrintPassing, "print-passing", false, "include passing tests in per-test lines")

	return cmd
}

func runCompare(opts *CompareOptions, cmd *cobra.Command, actualPath, expectedPath string) error {
	actual, err := format.LoadFile(actualPath, format.Options{Format: opts.ActualFormat, Strict: opts.Strict})
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load actual results from %s", actualPath), err)
	}
	expected, err := format.LoadFile(expectedPath, format.Options{Format: opts.ExpectedFormat, Strict: opts.Strict})
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load expected results from %s", expectedPath), err)
	}

	result, err := compare.Build(actual, expected, opts.Suite)
	if err != nil {
		return WrapExitError(ExitCommandError, "comparison failed", err)
	}

	if opts.Out != "" {
		if err := result.WriteJSON(opts.Out); err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to write comparison to %s", opts.Out), err)
		}
	}

	runID := ""
	if opts.Database != "" {
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		runID, err = st.SaveComparison(context.Background(), result)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to save comparison run", err)
		}
	}

	sum := result.Summarize()
	if opts.Format == "json" {
		resp := CLIResponse{
			Status: "ok",
			Data: CompareSummary{
				RunID:  runID,
				Suite:  opts.Suite,
				Status: string(result.Status()),
				Tests:  sum.Tests,
				Passed: sum.Passed,
				Failed: sum.Failed,
			},
		}
		if err := writeJSONResponse(cmd.OutOrStdout(), resp); err != nil {
			return err
		}
	} else {
		report.PrintComparison(cmd.OutOrStdout(), result, report.PrintOptions{
			SummaryOnly:  opts.SummaryOnly,
			PrintPassing: opts.PrintPassing,
			DescrOnFail:  true,
			DescrOnPass:  opts.Verbose,
		})
		if runID != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "Saved run %s\n", runID)
		}
	}

	if !result.IsPassing() {
		return NewExitError(ExitFailure, "comparison failed")
	}
	return nil
}
