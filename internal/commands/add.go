package commands

import (
	"context"
	"flag"
	"io"
	"strings"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/service"
)

func init() {
	Register(&AddCmd{})
}

// AddCmd implements the add command.
type AddCmd struct {
	notes string
}

// SetNotes sets the task notes (for testing).
func (c *AddCmd) SetNotes(notes string) {
	c.notes = notes
}

func (c *AddCmd) Name() string      { return "add" }
func (c *AddCmd) Aliases() []string { return []string{"create"} }
func (c *AddCmd) Synopsis() string  { return "Create a task" }
func (c *AddCmd) Usage() string     { return "checkmate add [-n|--notes <text>] <title...>" }
func (c *AddCmd) NeedsAuth() bool   { return true }

func (c *AddCmd) RegisterFlags(fs *flag.FlagSet) {
	fs.StringVar(&c.notes, "notes", "", "")
	fs.StringVar(&c.notes, "n", "", "")
}

func (c *AddCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	title := strings.Join(args, " ")
	if strings.TrimSpace(title) == "" {
		return userError(errOut, "title required")
	}

	task, err := svc.CreateTask(ctx, title, c.notes)
	if err != nil {
		return reportError(errOut, err)
	}

	printTask(cfg, out, "Task created:", task)
	return exitcode.Success
}
