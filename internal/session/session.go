// Package session holds per-invocation state for the IAM CLI.
//
// Purpose:
//
//	Carry the host and the admin credentials through one command
//	invocation and resolve missing credentials exactly once, with clear
//	precedence: explicit flag value > environment variable > interactive
//	prompt. Once a field is set it is never overwritten, so repeated
//	resolution calls are no-ops and nothing prompts twice.
package session

import (
	"os"

	"github.com/ethz-iam/iamctl/internal/prompt"
)

// Environment variables consulted during credential resolution.
const (
	EnvUsername = "IAM_USERNAME"
	EnvPassword = "IAM_PASSWORD"
)

// Context is the mutable per-invocation session state. It is created once
// at command entry and passed by pointer into every subcommand.
type Context struct {
	Host     string
	Username string
	Password string
}

// Resolver fills the credential fields of a Context.
type Resolver struct {
	prompter *prompt.Prompter

	// DefaultUsername is offered as the prompt default. When empty, the
	// USER environment variable is offered instead.
	DefaultUsername string
}

// NewResolver creates a Resolver prompting through p.
func NewResolver(p *prompt.Prompter) *Resolver {
	return &Resolver{prompter: p}
}

// Resolve fills ctx.Username and ctx.Password, each independently:
// an already-set field is left untouched, otherwise the environment is
// consulted, otherwise the operator is prompted. The password prompt never
// echoes. After a successful call both fields are non-empty.
func (r *Resolver) Resolve(ctx *Context) error {
	if ctx.Username == "" {
		if env := os.Getenv(EnvUsername); env != "" {
			ctx.Username = env
		} else {
			def := r.DefaultUsername
			if def == "" {
				def = os.Getenv("USER")
			}
			username, err := r.prompter.Input("Username", def)
			if err != nil {
				return err
			}
			ctx.Username = username
		}
	}

	if ctx.Password == "" {
		if env := os.Getenv(EnvPassword); env != "" {
			ctx.Password = env
		} else {
			password, err := r.prompter.Password("Password")
			if err != nil {
				return err
			}
			ctx.Password = password
		}
	}

	return nil
}
