package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/verdict/internal/compare"
	"github.com/roach88/verdict/internal/report"
	"github.com/roach88/verdict/internal/store"
)

// ReportOptions holds flags for the report command.
type ReportOptions struct {
	*RootOptions
	Database string
	RunID    string
	Out      string
}

// NewReportCommand creates the report command.
func NewReportCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ReportOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "report [COMPARISON.json]",
		Short: "Render an HTML report for a comparison",
		Long: `Render a standalone HTML report for a comparison, either from a comparison
document on disk or from a run saved in the database.

Examples:
  verdict report comparison.json --out report.html
  verdict report --db runs.db --run 018f3c... --out report.html`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			path := ""
			if len(args) == 1 {
				path = args[0]
			}
			return runReport(opts, cmd, path)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "SQLite database holding saved runs")
	cmd.Flags().StringVar(&opts.RunID, "run", "", "run id to render (requires --db)")
	cmd.Flags().StringVar(&opts.Out, "out", "", "output HTML path (required)")
	_ = cmd.MarkFlagRequired("out")

	return cmd
}

func runReport(opts *ReportOptions, cmd *cobra.Command, path string) error {
	var (
		cmp   *compare.Result
		runID string
		err   error
	)
	switch {
	case path != "" && opts.RunID != "":
		return NewExitError(ExitCommandError, "pass either a comparison file or --run, not both")
	case path != "":
		runID = path
		cmp, err = compare.LoadFile(path)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load comparison from %s", path), err)
		}
	case opts.RunID != "":
		if opts.Database == "" {
			return NewExitError(ExitCommandError, "--run requires --db")
		}
		st, err := store.Open(opts.Database)
		if err != nil {
			return WrapExitError(ExitCommandError, "failed to open database", err)
		}
		defer st.Close()
		runID = opts.RunID
		cmp, err = st.GetComparison(context.Background(), opts.RunID)
		if err != nil {
			return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load run %s", opts.RunID), err)
		}
	default:
		return NewExitError(ExitCommandError, "pass a comparison file or --run with --db")
	}

	f, err := os.Create(opts.Out)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to create %s", opts.Out), err)
	}
	defer f.Close()

	if err := report.RenderHTML(f, cmp, runID); err != nil {
		return WrapExitError(ExitCommandError, "failed to render report", err)
	}

	if opts.Format == "json" {
		return writeJSONResponse(cmd.OutOrStdout(), CLIResponse{
			Status: "ok",
			Data:   map[string]any{"out": opts.Out},
		})
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", opts.Out)
	return nil
}
