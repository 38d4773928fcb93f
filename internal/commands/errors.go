package commands

import (
	"errors"
	"fmt"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/service"
)

// errTooManyArgs is returned when a command gets more than one task reference.
var errTooManyArgs = errors.New("too many arguments")

// ExitCode maps an error to the process exit code.
func ExitCode(err error) int {
	var werr *config.WriteError
	switch {
	case err == nil:
		return exitcode.Success
	case errors.Is(err, service.ErrEmptyReference),
		errors.Is(err, service.ErrNotFound),
		errors.Is(err, service.ErrAmbiguousReference),
		errors.Is(err, errTooManyArgs):
		return exitcode.UserError
	case errors.Is(err, config.ErrConfigMissing), errors.As(err, &werr):
		return exitcode.AuthError
	default:
		return exitcode.BackendError
	}
}

// reportError prints err to errOut and returns its exit code.
func reportError(errOut io.Writer, err error) int {
	fmt.Fprintf(errOut, "error: %v\n", err)
	return ExitCode(err)
}

// userError prints a usage problem and returns exitcode.UserError.
func userError(errOut io.Writer, format string, args ...any) int {
	fmt.Fprintf(errOut, "error: "+format+"\n", args...)
	return exitcode.UserError
}

// parseRef extracts the single task reference from args.
func parseRef(args []string) (string, error) {
	switch len(args) {
	case 0:
		return "", service.ErrEmptyReference
	case 1:
		if args[0] == "" {
			return "", service.ErrEmptyReference
		}
		return args[0], nil
	default:
		return "", fmt.Errorf("%w: expected one task reference, got %d", errTooManyArgs, len(args))
	}
}
