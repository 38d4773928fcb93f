package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/prompt"
	"checkmate/internal/service"
)

func init() {
	Register(&CleanupCmd{})
}

// CleanupCmd implements the cleanup command, which removes every completed
// task on the service.
type CleanupCmd struct {
	force    bool
	prompter prompt.Prompter
}

// SetForce sets the force flag (for testing).
func (c *CleanupCmd) SetForce(force bool) {
	c.force = force
}

// SetPrompter implements Interactive.
func (c *CleanupCmd) SetPrompter(p prompt.Prompter) {
	c.prompter = p
}

func (c *CleanupCmd) Name() string      { return "cleanup" }
func (c *CleanupCmd) Aliases() []string { return []string{"clear"} }
func (c *CleanupCmd) Synopsis() string  { return "Remove all completed tasks" }
func (c *CleanupCmd) Usage() string     { return "checkmate cleanup [-f|--force]" }
func (c *CleanupCmd) NeedsAuth() bool   { return true }

func (c *CleanupCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *CleanupCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return userError(errOut, "unexpected argument: %s", args[0])
	}

	if !c.force {
		ok, code := confirm(c.prompter, "Remove all completed tasks?", errOut)
		if code != exitcode.Success {
			return code
		}
		if !ok {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
	}

	remaining, err := svc.Cleanup(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "Completed tasks removed (%d remaining)\n", len(remaining))
	}
	return exitcode.Success
}
