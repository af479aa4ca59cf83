// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, failed local validation).
	UserError = 1

	// AuthError indicates a missing session or a rejected login.
	AuthError = 2

	// BackendError indicates any API or network failure.
	BackendError = 3
)
