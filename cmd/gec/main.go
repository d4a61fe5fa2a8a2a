// Command gec runs, validates, and inspects state-stack engine
// scenarios.
package main

import (
	"fmt"
	"os"

	"github.com/AnneKitsune/game-engine-core/internal/cli"
)

func main() {
	cmd := cli.NewRootCommand()
	if err := cmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(cli.GetExitCode(err))
	}
}
