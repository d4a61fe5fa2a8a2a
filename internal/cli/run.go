package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/AnneKitsune/game-engine-core/internal/harness"
	"github.com/AnneKitsune/game-engine-core/internal/trace"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Database string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <scenario.yaml>",
		Short: "Run a scenario and report the result",
		Long: `Run a scenario against the engine and report the hook trace,
per-state update counts, and assertion results.

The run is deterministic: scripted states step under a fake clock, so
the same scenario always produces the same trace. With --db the trace
is persisted to a SQLite database keyed by the run token, for later
inspection with "gec trace".

Example:
  gec run scenarios/push-pop.yaml
  gec run scenarios/push-pop.yaml --db traces.db --format json`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScenario(opts, args[0], cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Database, "db", "", "path to SQLite trace database (optional)")

	return cmd
}

func runScenario(opts *RunOptions, path string, cmd *cobra.Command) error {
	logLevel := slog.LevelWarn
	if opts.Verbose {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: logLevel,
	})))

	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	sc, err := harness.LoadScenario(path)
	if err != nil {
		out.Failure(err.Error())
		return WrapExitError(ExitCommandError, "failed to load scenario", err)
	}

	slog.Debug("running scenario", "name", sc.Name, "states", len(sc.States))
	result, err := harness.Run(sc)
	if err != nil {
		out.Failure(err.Error())
		return WrapExitError(ExitCommandError, "failed to run scenario", err)
	}

	if opts.Database != "" {
		if err := persistTrace(opts.Database, sc.Name, result); err != nil {
			out.Failure(err.Error())
			return WrapExitError(ExitCommandError, "failed to persist trace", err)
		}
		slog.Debug("trace persisted", "db", opts.Database, "run", result.RunToken)
	}

	if opts.Format == "json" {
		if err := out.Success(result); err != nil {
			return err
		}
	} else {
		printResultText(out, sc, result)
	}

	if !result.Pass {
		return NewExitError(ExitFailure, "scenario failed")
	}
	return nil
}

func persistTrace(path, scenario string, result *harness.Result) error {
	store, err := trace.Open(path)
	if err != nil {
		return err
	}
	defer store.Close()
	return store.WriteRun(context.Background(), result.RunToken, scenario, result.Trace)
}

func printResultText(out *OutputFormatter, sc *harness.Scenario, result *harness.Result) {
	status := "PASS"
	if !result.Pass {
		status = "FAIL"
	}
	fmt.Fprintf(out.Writer, "%s %s (%d steps, %d events, run %s)\n",
		status, sc.Name, result.Steps, len(result.Trace), result.RunToken)

	if out.Verbose {
		for _, ev := range result.Trace {
			fmt.Fprintf(out.Writer, "  [%d] %s %s (depth %d)\n", ev.Seq, ev.Op, ev.State, ev.Depth)
		}
	}
	for _, errMsg := range result.Errors {
		fmt.Fprintf(out.Writer, "  %s\n", strings.ReplaceAll(errMsg, "\n", "\n  "))
	}
}
