package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnneKitsune/game-engine-core/internal/trace"
)

// TraceOptions holds flags for the trace command.
type TraceOptions struct {
	*RootOptions
	Database string
}

// NewTraceCommand creates the trace command.
func NewTraceCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &TraceOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "trace [run-token]",
		Short: "Inspect persisted traces",
		Long: `List persisted runs, or print the full hook trace of one run.

Without a run token, lists all runs in the database. With a run token,
prints that run's events in sequence order.

Example:
  gec trace --db traces.db
  gec trace --db traces.db 0190cafe-1234-7000-8000-000000000000`,
		Args:          cobra.MaximumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return listRuns(opts, cmd)
			}
			return showRun(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func openTraceStore(opts *TraceOptions, out *OutputFormatter) (*trace.Store, error) {
	store, err := trace.Open(opts.Database)
	if err != nil {
		out.Failure(err.Error())
		return nil, WrapExitError(ExitCommandError, "failed to open trace database", err)
	}
	return store, nil
}

func listRuns(opts *TraceOptions, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	store, err := openTraceStore(opts, out)
	if err != nil {
		return err
	}
	defer store.Close()

	runs, err := store.ListRuns(context.Background())
	if err != nil {
		out.Failure(err.Error())
		return WrapExitError(ExitCommandError, "failed to list runs", err)
	}

	if opts.Format == "json" {
		return out.Success(runs)
	}
	if len(runs) == 0 {
		fmt.Fprintln(out.Writer, "no runs recorded")
		return nil
	}
	for _, r := range runs {
		fmt.Fprintf(out.Writer, "%s  %s  %d events  %s\n", r.Token, r.CreatedAt, r.Events, r.Scenario)
	}
	return nil
}

func showRun(opts *TraceOptions, token string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	store, err := openTraceStore(opts, out)
	if err != nil {
		return err
	}
	defer store.Close()

	events, err := store.ReadRun(context.Background(), token)
	if err != nil {
		out.Failure(err.Error())
		return WrapExitError(ExitCommandError, "failed to read run", err)
	}

	if opts.Format == "json" {
		return out.Success(events)
	}
	for _, ev := range events {
		fmt.Fprintf(out.Writer, "[%d] %s %s (depth %d)\n", ev.Seq, ev.Op, ev.State, ev.Depth)
	}
	return nil
}
