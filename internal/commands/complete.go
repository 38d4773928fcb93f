package commands

import (
	"context"
	"flag"
	"io"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/service"
)

func init() {
	Register(&CompleteCmd{})
	Register(&UncompleteCmd{})
}

// CompleteCmd implements the complete command.
type CompleteCmd struct{}

func (c *CompleteCmd) Name() string                   { return "complete" }
func (c *CompleteCmd) Aliases() []string              { return []string{"check", "done"} }
func (c *CompleteCmd) Synopsis() string               { return "Mark a task as completed" }
func (c *CompleteCmd) Usage() string                  { return "checkmate complete <ref>" }
func (c *CompleteCmd) NeedsAuth() bool                { return true }
func (c *CompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *CompleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, true, args, out, errOut)
}

// UncompleteCmd implements the uncomplete command.
type UncompleteCmd struct{}

func (c *UncompleteCmd) Name() string                   { return "uncomplete" }
func (c *UncompleteCmd) Aliases() []string              { return []string{"uncheck", "undo"} }
func (c *UncompleteCmd) Synopsis() string               { return "Mark a task as not completed" }
func (c *UncompleteCmd) Usage() string                  { return "checkmate uncomplete <ref>" }
func (c *UncompleteCmd) NeedsAuth() bool                { return true }
func (c *UncompleteCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *UncompleteCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	return runSetCompleted(ctx, cfg, svc, false, args, out, errOut)
}

// runSetCompleted is the shared implementation for complete and uncomplete.
func runSetCompleted(ctx context.Context, cfg *config.Config, svc service.Service, completed bool, args []string, out, errOut io.Writer) int {
	ref, err := parseRef(args)
	if err != nil {
		return reportError(errOut, err)
	}

	facade := service.NewFacade(svc)
	var task service.Task
	if completed {
		task, err = facade.Complete(ctx, ref)
	} else {
		task, err = facade.Uncomplete(ctx, ref)
	}
	if err != nil {
		return reportError(errOut, err)
	}

	if completed {
		printTask(cfg, out, "Completed", task)
	} else {
		printTask(cfg, out, "Reopened", task)
	}
	return exitcode.Success
}
