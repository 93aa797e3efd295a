// Command iamctl is the admin CLI for the IAM web service.
//
// Purpose:
//
//	Perform administrative operations against the IAM backend: look up
//	persons, manage users and their services, rotate service passwords and
//	maintain group memberships. Destructive operations are gated behind
//	interactive confirmation; batch steps report per-item outcomes.
//
// Dependencies:
//   - internal/commands: cobra command implementations
//   - internal/config: settings and admin-account list loading
//   - internal/client/iam: IAM backend client
package main

import (
	"fmt"
	"os"

	"github.com/ethz-iam/iamctl/internal/commands"
	"github.com/ethz-iam/iamctl/internal/errors"
)

var version = "dev"

func main() {
	rootCmd := commands.Root(version)

	if err := rootCmd.Execute(); err != nil {
		// Structured CLI errors carry their own exit codes.
		if cliErr, ok := err.(*errors.CLIError); ok {
			fmt.Fprintf(os.Stderr, "%v\n", cliErr)
			os.Exit(cliErr.ExitCode)
		}

		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
