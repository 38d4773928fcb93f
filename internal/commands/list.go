package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/output"
	"checkmate/internal/service"
)

func init() {
	Register(&ListCmd{})
}

// ListCmd implements the list command.
// Handles both `checkmate` (no args) and `checkmate list`.
type ListCmd struct {
	verbose       bool
	hideCompleted bool
}

// SetOptions sets the display options (for testing).
func (c *ListCmd) SetOptions(verbose, hideCompleted bool) {
	c.verbose = verbose
	c.hideCompleted = hideCompleted
}

func (c *ListCmd) Name() string      { return "list" }
func (c *ListCmd) Aliases() []string { return []string{"ls"} }
func (c *ListCmd) Synopsis() string  { return "List tasks" }
func (c *ListCmd) Usage() string     { return "checkmate list [-v|--verbose] [--hide-completed]" }
func (c *ListCmd) NeedsAuth() bool   { return true }

func (c *ListCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.BoolVar(&c.verbose, "verbose", false, "")
	fs.BoolVar(&c.verbose, "v", false, "")
	fs.BoolVar(&c.hideCompleted, "hide-completed", false, "")
}

func (c *ListCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return userError(errOut, "unexpected argument: %s", args[0])
	}

	tasks, err := svc.ListTasks(ctx)
	if err != nil {
		return reportError(errOut, err)
	}

	if len(tasks) == 0 && cfg.Quiet {
		return exitcode.Success
	}

	output.RenderTasks(out, tasks, output.Options{
		Verbose:       c.verbose,
		HideCompleted: c.hideCompleted,
	})
	return exitcode.Success
}

// printTask prints a one-line confirmation for task unless quiet.
func printTask(cfg *config.Config, out io.Writer, verb string, task service.Task) {
	if cfg.Quiet {
		return
	}
	fmt.Fprintf(out, "%s [%s] %s\n", verb, output.ShortID(task.ID), task.Title)
}
