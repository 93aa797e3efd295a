// Package commands provides the cobra command tree for the IAM CLI.
//
// Purpose:
//
//	Build the root command with the global session flags (--username,
//	--password, --host), the output flags (--format, --quiet, --verbose)
//	and wire the person/user/group/accounts subcommands. Each subcommand resolves credentials through the shared
//	session context exactly once, authenticates, fetches its entity and
//	applies the requested mutations in a fixed order, reporting every
//	outcome.
//
// Dependencies:
//   - github.com/spf13/cobra: command tree and flag parsing
//   - internal/session: per-invocation credential state
//   - internal/client/iam: IAM backend client
package commands

import (
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/ethz-iam/iamctl/internal/audit"
	"github.com/ethz-iam/iamctl/internal/client/iam"
	"github.com/ethz-iam/iamctl/internal/config"
	cerrors "github.com/ethz-iam/iamctl/internal/errors"
	"github.com/ethz-iam/iamctl/internal/output"
	"github.com/ethz-iam/iamctl/internal/prompt"
	"github.com/ethz-iam/iamctl/internal/session"
)

// rootOptions carries the global flag state shared by all subcommands.
type rootOptions struct {
	session session.Context
	format  string
	verbose bool
	quiet   bool
}

// Root builds the iamctl root command.
func Root(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "iamctl",
		Short: "Admin CLI for the IAM web service",
		Long: `iamctl performs administrative operations against the IAM backend:
look up persons, manage users and their services, and maintain groups.

Credentials are resolved once per invocation: explicit flags win, then the
IAM_USERNAME and IAM_PASSWORD environment variables, then an interactive
prompt (the password prompt never echoes).`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVarP(&opts.session.Username, "username", "u", "", "username of your IAM admin account (prompt defaults to the first configured admin account, then $USER)")
	cmd.PersistentFlags().StringVar(&opts.session.Password, "password", "", "password of your IAM admin account (prompted if absent)")
	cmd.PersistentFlags().StringVar(&opts.session.Host, "host", "", "IAM endpoint (default "+config.DefaultHost+")")
	cmd.PersistentFlags().StringVar(&opts.format, "format", "", "output format: table or json (default from config, json)")
	cmd.PersistentFlags().BoolVar(&opts.verbose, "verbose", false, "enable debug logging of backend requests")
	cmd.PersistentFlags().BoolVar(&opts.quiet, "quiet", false, "suppress per-mutation success lines")

	cmd.AddCommand(PersonCommand(opts))
	cmd.AddCommand(UserCommand(opts))
	cmd.AddCommand(GroupCommand(opts))
	cmd.AddCommand(AccountsCommand(opts))

	return cmd
}

// runtime is the per-invocation wiring shared by the entity subcommands:
// loaded settings, resolved session, authenticated client and audit log.
type runtime struct {
	cfg      *config.Config
	sess     *session.Context
	prompter *prompt.Prompter
	client   *iam.Client
	auditor  *audit.Logger
	format   string
	quiet    bool
}

// setup loads configuration, resolves credentials into the shared session
// context and authenticates against the backend. It is called at the top
// of every entity subcommand; repeated calls within one invocation reuse
// the already-resolved credentials and never prompt twice.
func setup(cmd *cobra.Command, opts *rootOptions) (*runtime, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, cerrors.NewOperationError(
			"failed to load configuration: "+err.Error(),
			"Check your config file or IAMCTL_* environment variables.",
		)
	}

	sess := &opts.session
	if sess.Host == "" {
		sess.Host = cfg.Host
	}

	format, err := resolveFormat(opts.format, cfg)
	if err != nil {
		return nil, err
	}

	prompter := prompt.New(cmd.InOrStdin(), cmd.OutOrStdout())

	// The admin-account list contributes the username prompt default. A
	// malformed account file aborts the command rather than silently
	// offering a shorter list.
	accounts, err := config.LoadAdminAccounts(cfg.AccountPaths, cfg.AccountFile)
	if err != nil {
		return nil, err
	}

	resolver := session.NewResolver(prompter)
	if len(accounts) > 0 {
		resolver.DefaultUsername = accounts[0].Username
	}
	if err := resolver.Resolve(sess); err != nil {
		return nil, err
	}

	logger := zap.NewNop()
	if opts.verbose || cfg.Verbose {
		logger, err = zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
	}

	client, err := iam.Authenticate(cmd.Context(), sess.Username, sess.Password, sess.Host, cfg.APIBasePath, iam.Options{
		Timeout: time.Duration(cfg.Timeout) * time.Second,
		Logger:  logger,
	})
	if err != nil {
		return nil, mapClientError(err, sess.Host)
	}

	return &runtime{
		cfg:      cfg,
		sess:     sess,
		prompter: prompter,
		client:   client,
		auditor:  audit.NewLogger(cmd.ErrOrStderr()),
		format:   format,
		quiet:    opts.quiet || cfg.Quiet,
	}, nil
}

// resolveFormat picks the effective output format: the --format flag wins,
// then the configured default.
func resolveFormat(flagFormat string, cfg *config.Config) (string, error) {
	format := flagFormat
	if format == "" {
		format = cfg.OutputFormat
	}
	switch format {
	case "table", "json":
		return format, nil
	}
	return "", cerrors.NewValidationError(
		fmt.Sprintf("unknown format %q", format),
		"Use --format table or --format json.",
	)
}

// printData renders an entity attribute map in the effective output format.
func (rt *runtime) printData(w io.Writer, data map[string]interface{}) error {
	if rt.format == "table" {
		return output.PrintAttributeTable(w, data)
	}
	return output.PrintData(w, data)
}

// infof writes an informational success line, unless quiet output was
// requested.
func (rt *runtime) infof(w io.Writer, format string, args ...interface{}) {
	if rt.quiet {
		return
	}
	fmt.Fprintf(w, format, args...)
}

// audit writes one audit entry for a single (non-batch) mutation.
func (rt *runtime) audit(opType, entity string, params map[string]interface{}, start time.Time, err error) {
	outcome := "success"
	if err != nil {
		outcome = "failure"
	}
	_ = rt.auditor.LogOperation(audit.Operation{
		Type:       opType,
		Admin:      rt.sess.Username,
		Entity:     entity,
		Parameters: params,
		Outcome:    outcome,
		Duration:   time.Since(start),
		Error:      err,
	})
}

// mapClientError translates client error kinds to CLI errors with stable
// exit codes. CLI errors pass through untouched.
func mapClientError(err error, host string) error {
	if err == nil {
		return nil
	}
	switch e := err.(type) {
	case *cerrors.CLIError:
		return e
	case *iam.UnsupportedConfigError:
		return cerrors.NewUnsupportedConfigError(e.Path)
	case *iam.AuthError:
		return cerrors.NewAuthenticationError(host, e.Err)
	case *iam.UnavailableError:
		return cerrors.NewUnavailableError(host, e.Err)
	case *iam.NotFoundError:
		return cerrors.NewNotFoundError(e.Kind, e.ID)
	}
	return cerrors.NewOperationError(err.Error(), "")
}
