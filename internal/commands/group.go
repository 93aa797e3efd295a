// Group management command.
//
// Fixed step order: add members, remove members, show membership, show
// info, delete (confirmation gate). Adds run before removes, so an id
// listed in both ends up removed.
package commands

import (
	"time"

	"github.com/spf13/cobra"

	cerrors "github.com/ethz-iam/iamctl/internal/errors"
	"github.com/ethz-iam/iamctl/internal/output"
)

// GroupCommand creates the group command.
func GroupCommand(opts *rootOptions) *cobra.Command {
	var flagDelete bool
	var flagMembers bool
	var flagInfo bool
	var flagAdd []string
	var flagRemove []string

	cmd := &cobra.Command{
		Use:   "group <name>",
		Short: "Manage a group",
		Long:  "Inspect a group, add or remove members, or delete the group.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runGroup(cmd, opts, args[0], groupFlags{
				delete:  flagDelete,
				members: flagMembers,
				info:    flagInfo,
				add:     flagAdd,
				remove:  flagRemove,
			})
		},
	}

	cmd.Flags().BoolVarP(&flagDelete, "delete", "d", false, "delete this group")
	cmd.Flags().BoolVarP(&flagMembers, "members", "m", false, "show members of the group")
	cmd.Flags().BoolVarP(&flagInfo, "info", "i", false, "all information about the group")
	cmd.Flags().StringArrayVarP(&flagAdd, "add", "a", nil, "username to add to the group (repeatable)")
	cmd.Flags().StringArrayVarP(&flagRemove, "remove", "r", nil, "username to remove from the group (repeatable)")

	return cmd
}

type groupFlags struct {
	delete  bool
	members bool
	info    bool
	add     []string
	remove  []string
}

func runGroup(cmd *cobra.Command, opts *rootOptions, name string, flags groupFlags) error {
	rt, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	group, err := rt.client.GetGroup(cmd.Context(), name)
	if err != nil {
		return mapClientError(err, rt.sess.Host)
	}

	out := cmd.OutOrStdout()

	if len(flags.add) > 0 {
		start := time.Now()
		err := group.AddMembers(cmd.Context(), flags.add...)
		rt.audit("member_add", group.Name, map[string]interface{}{"users": flags.add}, start, err)
		if err != nil {
			return mapClientError(err, rt.sess.Host)
		}
	}

	if len(flags.remove) > 0 {
		start := time.Now()
		err := group.DelMembers(cmd.Context(), flags.remove...)
		rt.audit("member_remove", group.Name, map[string]interface{}{"users": flags.remove}, start, err)
		if err != nil {
			return mapClientError(err, rt.sess.Host)
		}
	}

	if len(flags.add) > 0 || len(flags.remove) > 0 || flags.members {
		if err := output.PrintMembers(out, group.Members()); err != nil {
			return err
		}
	}

	if flags.info {
		if err := rt.printData(out, group.Raw); err != nil {
			return err
		}
	}

	if flags.delete {
		confirmed, err := rt.prompter.Confirm("Do you really want to delete this group?")
		if err != nil {
			return err
		}
		if !confirmed {
			return cerrors.NewAbortedError("group deletion")
		}

		start := time.Now()
		if err := group.Delete(cmd.Context()); err != nil {
			rt.audit("group_delete", group.Name, nil, start, err)
			return mapClientError(err, rt.sess.Host)
		}
		rt.audit("group_delete", group.Name, nil, start, nil)
		rt.infof(out, "deleted group %s\n", group.Name)
	}

	return nil
}
