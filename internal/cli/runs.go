package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/roach88/verdict/internal/report"
	"github.com/roach88/verdict/internal/store"
)

// RunsOptions holds flags for the runs command.
type RunsOptions struct {
	*RootOptions
	Database string
}

// NewRunsCommand creates the runs command group.
func NewRunsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Inspect saved comparison runs",
	}
	cmd.PersistentFlags().StringVar(&opts.Database, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkPersistentFlagRequired("db")

	cmd.AddCommand(newRunsListCommand(opts))
	cmd.AddCommand(newRunsShowCommand(opts))
	return cmd
}

func newRunsListCommand(opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "list",
		Short:         "List saved comparison runs, newest first",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsList(opts, cmd)
		},
	}
}

func newRunsShowCommand(opts *RunsOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "show RUN_ID",
		Short:         "Print one saved comparison run",
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runRunsShow(opts, cmd, args[0])
		},
	}
}

func runRunsList(opts *RunsOptions, cmd *cobra.Command) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	runs, err := st.ListRuns(context.Background())
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return writeJSONResponse(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: runs})
	}

	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No runs found in database.")
		return nil
	}
	for _, r := range runs {
		suite := r.Suite
		if suite == "" {
			suite = "-"
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s  %s  %-8s  %d/%d passed  suite=%s\n",
			r.ID, r.CreatedAt.Format(time.RFC3339), r.Status, r.Passed, r.Tests, suite)
	}
	return nil
}

func runRunsShow(opts *RunsOptions, cmd *cobra.Command, runID string) error {
	st, err := store.Open(opts.Database)
	if err != nil {
		return WrapExitError(ExitCommandError, "failed to open database", err)
	}
	defer st.Close()

	cmp, err := st.GetComparison(context.Background(), runID)
	if err != nil {
		return WrapExitError(ExitCommandError, fmt.Sprintf("failed to load run %s", runID), err)
	}

	if opts.Format == "json" {
		return writeJSONResponse(cmd.OutOrStdout(), CLIResponse{Status: "ok", Data: cmp.Encode()})
	}

	printOpts := report.DefaultPrintOptions()
	printOpts.PrintPassing = opts.Verbose
	report.PrintComparison(cmd.OutOrStdout(), cmp, printOpts)

	if !cmp.IsPassing() {
		return NewExitError(ExitFailure, "comparison failed")
	}
	return nil
}
