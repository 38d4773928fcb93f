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
	Register(&UpdateCmd{})
}

// UpdateCmd implements the update command.
// Only the flags given on the command line are sent; --notes "" clears notes.
type UpdateCmd struct {
	title *string
	notes *string
}

// SetTitle sets the new title (for testing).
func (c *UpdateCmd) SetTitle(title string) {
	c.title = &title
}

// SetNotes sets the new notes (for testing).
func (c *UpdateCmd) SetNotes(notes string) {
	c.notes = &notes
}

func (c *UpdateCmd) Name() string      { return "update" }
func (c *UpdateCmd) Aliases() []string { return []string{"edit"} }
func (c *UpdateCmd) Synopsis() string  { return "Change a task's title or notes" }
func (c *UpdateCmd) Usage() string {
	return "checkmate update [-t|--title <title>] [-n|--notes <text>] <ref>"
}
func (c *UpdateCmd) NeedsAuth() bool { return true }

func (c *UpdateCmd) RegisterFlags(fs *flag.FlagSet) {
	c.title, c.notes = nil, nil

	setTitle := func(s string) error { c.title = &s; return nil }
	setNotes := func(s string) error { c.notes = &s; return nil }
	fs.Func("title", "", setTitle)
	fs.Func("t", "", setTitle)
	fs.Func("notes", "", setNotes)
	fs.Func("n", "", setNotes)
}

func (c *UpdateCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	ref, err := parseRef(args)
	if err != nil {
		return reportError(errOut, err)
	}

	upd := service.TaskUpdate{Title: c.title, Notes: c.notes}
	if upd.IsEmpty() {
		return userError(errOut, "nothing to update (use --title and/or --notes)")
	}
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return userError(errOut, "title cannot be empty")
	}

	task, err := service.NewFacade(svc).Update(ctx, ref, upd)
	if err != nil {
		return reportError(errOut, err)
	}

	printTask(cfg, out, "Updated", task)
	return exitcode.Success
}
