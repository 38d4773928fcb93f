// Package commands provides the command interface and implementations.
package commands

import (
	"context"
	"flag"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/prompt"
	"checkmate/internal/service"
)

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

	// NeedsAuth returns true if the command talks to the service and so
	// needs complete connection settings.
	// Commands like help, version, login, logout return false.
	NeedsAuth() bool

	// RegisterFlags registers command-specific flags. It is called before
	// every run and resets flag state left by a previous run.
	RegisterFlags(fs *flag.FlagSet)

	// Run executes the command.
	// cfg is always provided (config dir, overrides).
	// svc is nil if NeedsAuth() returns false.
	// args contains positional arguments after flag parsing.
	// Returns exit code.
	Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int
}

// Interactive is implemented by commands that ask the user questions.
// The dispatcher hands them a Prompter before Run.
type Interactive interface {
	SetPrompter(p prompt.Prompter)
}
