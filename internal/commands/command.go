// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	log "github.com/sirupsen/logrus"

	"taskboard/internal/config"
	"taskboard/internal/exitcode"
	"taskboard/internal/service"
	"taskboard/internal/session"
)

// Env carries the per-run dependencies handed to a command.
type Env struct {
	// Config is always provided (config dir, API URL, flags).
	Config *config.Config

	// Service talks to the task API.
	Service service.Service

	// Session is the loaded session store. Protected commands only run
	// when it holds a session.
	Session *session.Store

	// Log receives debug detail for failures shown to the user generically.
	Log *log.Logger
}

// Command defines the interface for CLI commands.
type Command interface {
	// Name returns the primary command name.
	Name() string

	// Aliases returns alternative names for the command.
	Aliases() []string

	// Synopsis returns a short description for help output.
	Synopsis() string

	// Usage returns the usage string for help output.
	Usage() string

	// NeedsAuth returns true if the command requires a session.
	// Commands like help, version, login, register, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, env *Env, args []string, out, errOut io.Writer) int
}

// ok prints the confirmation line unless --quiet is set.
func ok(env *Env, out io.Writer) {
	if !env.Config.Quiet {
		fmt.Fprintln(out, "ok")
	}
}

// userError prints a validation or usage error.
func userError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return exitcode.UserError
}

// backendError prints the generic message for a failed action and logs the
// underlying error at debug level.
func backendError(env *Env, errOut io.Writer, msg string, err error) int {
	env.Log.WithError(err).Debug(msg)
	fmt.Fprintf(errOut, "error: %s\n", msg)
	return exitcode.BackendError
}

// currentSession returns the active session. The dispatcher guarantees one
// exists for protected commands.
func currentSession(env *Env) session.Session {
	sess, _ := env.Session.Current()
	return sess
}
