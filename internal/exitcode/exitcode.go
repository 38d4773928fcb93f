// Package exitcode defines exit codes for the CLI.
package exitcode

const (
	// Success indicates successful completion.
	Success = 0

	// UserError indicates a user error (bad args, unknown or ambiguous task reference).
	UserError = 1

	// AuthError indicates a missing or unwritable configuration.
	AuthError = 2

	// BackendError indicates a transport, service or protocol error.
	BackendError = 3
)
