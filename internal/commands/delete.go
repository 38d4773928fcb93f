package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/output"
	"checkmate/internal/prompt"
	"checkmate/internal/service"
)

func init() {
	Register(&DeleteCmd{})
}

// DeleteCmd implements the delete command.
type DeleteCmd struct {
	force    bool
	prompter prompt.Prompter
}

// SetForce sets the force flag (for testing).
func (c *DeleteCmd) SetForce(force bool) {
	c.force = force
}

// SetPrompter implements Interactive.
func (c *DeleteCmd) SetPrompter(p prompt.Prompter) {
	c.prompter = p
}

func (c *DeleteCmd) Name() string      { return "delete" }
func (c *DeleteCmd) Aliases() []string { return []string{"rm"} }
func (c *DeleteCmd) Synopsis() string  { return "Delete a task" }
func (c *DeleteCmd) Usage() string     { return "checkmate delete [-f|--force] <ref>" }
func (c *DeleteCmd) NeedsAuth() bool   { return true }

func (c *DeleteCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.force, "force", false, "")
	fs.BoolVar(&c.force, "f", false, "")
}

func (c *DeleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := parseRef(args)
	if err != nil {
		return reportError(errOut, err)
	}

	facade := service.NewFacade(svc)

	if !c.force {
		task, err := facade.Lookup(ctx, ref)
		if err != nil {
			return reportError(errOut, err)
		}

		question := fmt.Sprintf("Delete task [%s] %s?", output.ShortID(task.ID), task.Title)
		ok, code := confirm(c.prompter, question, errOut)
		if code != exitcode.Success {
			return code
		}
		if !ok {
			if !cfg.Quiet {
				fmt.Fprintln(out, "cancelled")
			}
			return exitcode.Success
		}
		// The full identifier resolves exactly even if new tasks share its prefix.
		ref = task.ID
	}

	id, err := facade.Delete(ctx, ref)
	if err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "Deleted [%s]\n", output.ShortID(id))
	}
	return exitcode.Success
}

// confirm asks question through p. A missing prompter is a usage error since
// the caller must then pass --force.
func confirm(p prompt.Prompter, question string, errOut io.Writer) (bool, int) {
	if p == nil {
		return false, userError(errOut, "confirmation required (use --force)")
	}
	ok, err := p.Confirm(question)
	if errors.Is(err, prompt.ErrAborted) {
		return false, exitcode.Success
	}
	if err != nil {
		return false, userError(errOut, "%v", err)
	}
	return ok, exitcode.Success
}
