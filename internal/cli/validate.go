package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/AnneKitsune/game-engine-core/internal/harness"
)

// ValidateOptions holds flags for the validate command.
type ValidateOptions struct {
	*RootOptions
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ValidateOptions{RootOptions: rootOpts}

	return &cobra.Command{
		Use:   "validate <scenario.yaml>",
		Short: "Validate a scenario file",
		Long: `Validate a scenario file against the scenario schema and
semantic rules (defined states, resolvable push/switch targets).

Example:
  gec validate scenarios/push-pop.yaml`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(opts, args[0], cmd)
		},
	}
}

func runValidate(opts *ValidateOptions, path string, cmd *cobra.Command) error {
	out := &OutputFormatter{Format: opts.Format, Writer: cmd.OutOrStdout(), Verbose: opts.Verbose}

	sc, err := harness.LoadScenario(path)
	if err != nil {
		out.Failure(err.Error())
		return WrapExitError(ExitFailure, "scenario is invalid", err)
	}

	return out.Success(fmt.Sprintf("scenario %q is valid (%d states)", sc.Name, len(sc.States)))
}
