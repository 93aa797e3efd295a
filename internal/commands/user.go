// User management command.
//
// The mutation steps run in a fixed order, each guarded only by its own
// flag: info, delete (confirmation gate), service grants, service
// revocations, password rotation. Deletion aborts the whole command when
// declined; the multi-target steps continue past individual failures and
// are summarized at the end.
package commands

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	cerrors "github.com/ethz-iam/iamctl/internal/errors"
)

// UserCommand creates the user command.
func UserCommand(opts *rootOptions) *cobra.Command {
	var flagDelete bool
	var flagInfo bool
	var flagGrantService []string
	var flagRevokeService []string
	var flagSetPassword bool
	var flagServicePassword string
	var flagService []string

	cmd := &cobra.Command{
		Use:   "user <id>",
		Short: "Manage a user",
		Long:  "Inspect a user, grant or revoke services, rotate service passwords, or delete the user.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUser(cmd, opts, args[0], userFlags{
				delete:          flagDelete,
				info:            flagInfo,
				grantService:    flagGrantService,
				revokeService:   flagRevokeService,
				setPassword:     flagSetPassword,
				servicePassword: flagServicePassword,
				service:         flagService,
			})
		},
	}

	cmd.Flags().BoolVarP(&flagDelete, "delete", "d", false, "delete this user")
	cmd.Flags().BoolVarP(&flagInfo, "info", "i", false, "all information about the user")
	cmd.Flags().StringArrayVarP(&flagGrantService, "grant-service", "g", nil, "grant a service to this user (repeatable)")
	cmd.Flags().StringArrayVarP(&flagRevokeService, "revoke-service", "r", nil, "revoke a service from this user (repeatable)")
	cmd.Flags().BoolVar(&flagSetPassword, "set-password", false, "set a service password, prompting for the value")
	cmd.Flags().StringVar(&flagServicePassword, "service-password", "", "password to set for the targeted services")
	cmd.Flags().StringArrayVarP(&flagService, "service", "s", nil, "service to set the password for (repeatable; default: all of the user's services)")

	return cmd
}

type userFlags struct {
	delete          bool
	info            bool
	grantService    []string
	revokeService   []string
	setPassword     bool
	servicePassword string
	service         []string
}

func runUser(cmd *cobra.Command, opts *rootOptions, id string, flags userFlags) error {
	rt, err := setup(cmd, opts)
	if err != nil {
		return err
	}

	user, err := rt.client.GetUser(cmd.Context(), id)
	if err != nil {
		return mapClientError(err, rt.sess.Host)
	}

	out := cmd.OutOrStdout()
	report := newMutationReport(out, rt.auditor, rt.sess.Username, rt.quiet)

	if flags.info {
		if err := rt.printData(out, user.Raw); err != nil {
			return err
		}
	}

	if flags.delete {
		confirmed, err := rt.prompter.Confirm("Do you really want to delete this user?")
		if err != nil {
			return err
		}
		if !confirmed {
			// Declined confirmation aborts the whole command before any
			// backend mutation.
			return cerrors.NewAbortedError("user deletion")
		}

		start := time.Now()
		if err := user.Delete(cmd.Context()); err != nil {
			rt.audit("user_delete", user.Username, nil, start, err)
			return mapClientError(err, rt.sess.Host)
		}
		rt.audit("user_delete", user.Username, nil, start, nil)
		rt.infof(out, "deleted user %s\n", user.Username)
	}

	for _, name := range flags.grantService {
		start := time.Now()
		err := user.GrantService(cmd.Context(), name)
		report.record("service_grant", user.Username,
			map[string]interface{}{"service": name}, start,
			fmt.Sprintf("granted service %s to user %s", name, user.Username), err)
	}

	for _, name := range flags.revokeService {
		start := time.Now()
		err := user.RevokeService(cmd.Context(), name)
		report.record("service_revoke", user.Username,
			map[string]interface{}{"service": name}, start,
			fmt.Sprintf("revoked service %s from user %s", name, user.Username), err)
	}

	if flags.servicePassword != "" || flags.setPassword {
		password := flags.servicePassword
		if password == "" {
			password, err = rt.prompter.Password("Service Password")
			if err != nil {
				return err
			}
		}

		// Explicit --service targets win; otherwise every service bound to
		// the user is rotated.
		targets := flags.service
		if len(targets) == 0 {
			for _, binding := range user.Services {
				targets = append(targets, binding.Name)
			}
		}
		if len(targets) == 0 {
			rt.infof(out, "user %s has no services, no password set\n", user.Username)
		}

		for _, name := range targets {
			start := time.Now()
			err := user.SetPassword(cmd.Context(), password, name)
			report.record("password_set", user.Username,
				map[string]interface{}{"service": name, "password": password}, start,
				fmt.Sprintf("successfully set password for service %s", name), err)
		}
	}

	return report.err()
}
