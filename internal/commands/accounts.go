// Admin-account listing command.
package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/ethz-iam/iamctl/internal/config"
	cerrors "github.com/ethz-iam/iamctl/internal/errors"
	"github.com/ethz-iam/iamctl/internal/output"
)

// AccountsCommand creates the accounts command. It lists the admin
// accounts discovered in the configured search paths and never talks to
// the backend.
func AccountsCommand(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "accounts",
		Short: "List configured admin accounts",
		Long:  "List the admin accounts found in the account files of the configured search paths, in discovery order.",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runAccounts(cmd, opts)
		},
	}
}

func runAccounts(cmd *cobra.Command, opts *rootOptions) error {
	cfg, err := config.Load()
	if err != nil {
		return cerrors.NewOperationError(
			"failed to load configuration: "+err.Error(),
			"Check your config file or IAMCTL_* environment variables.",
		)
	}

	format, err := resolveFormat(opts.format, cfg)
	if err != nil {
		return err
	}

	accounts, err := config.LoadAdminAccounts(cfg.AccountPaths, cfg.AccountFile)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if format == "json" {
		if accounts == nil {
			accounts = []config.AdminAccount{}
		}
		return output.PrintJSON(out, accounts)
	}

	if len(accounts) == 0 {
		fmt.Fprintln(out, "No admin accounts configured.")
		return nil
	}
	rows := make([][]string, 0, len(accounts))
	for _, a := range accounts {
		rows = append(rows, []string{a.Username})
	}
	return output.PrintTable(out, []string{"Username"}, rows)
}
