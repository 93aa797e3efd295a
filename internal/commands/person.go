// Person lookup command. Persons are read-only in this tool.
package commands

import (
	"github.com/spf13/cobra"
)

// PersonCommand creates the person command.
func PersonCommand(opts *rootOptions) *cobra.Command {
	var flagInfo bool

	cmd := &cobra.Command{
		Use:   "person <id>",
		Short: "Look up a person",
		Long:  "Look up a person record by identifier. Persons cannot be modified.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPerson(cmd, opts, args[0], flagInfo)
		},
	}

	cmd.Flags().BoolVarP(&flagInfo, "info", "i", false, "all information about the person")

	return cmd
}

func runPerson(cmd *cobra.Command, opts *rootOptions, id string, flagInfo bool) error {
	rt, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	person, err := rt.client.GetPerson(cmd.Context(), id)
	if err != nil {
		return mapClientError(err, rt.sess.Host)
	}

	if flagInfo {
		return rt.printData(cmd.OutOrStdout(), person.Raw)
	}
	return nil
}
