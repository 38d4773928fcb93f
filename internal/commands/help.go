package commands

import (
	"context"
	"flag"
	"fmt"
	"io"
	"strings"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/service"
)

func init() {
	Register(&HelpCmd{})
}

// HelpCmd implements the help command.
type HelpCmd struct{}

func (c *HelpCmd) Name() string      { return "help" }
func (c *HelpCmd) Aliases() []string { return nil }
func (c *HelpCmd) Synopsis() string  { return "Print usage" }
func (c *HelpCmd) Usage() string     { return "checkmate help [command]" }
func (c *HelpCmd) NeedsAuth() bool   { return false }

func (c *HelpCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *HelpCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		cmd, ok := DefaultRegistry.Find(args[0])
		if !ok {
			return userError(errOut, "unknown command: %s", args[0])
		}
		fmt.Fprintf(out, "%s\n\nUsage:\n  %s\n", cmd.Synopsis(), cmd.Usage())
		if aliases := cmd.Aliases(); len(aliases) > 0 {
			fmt.Fprintf(out, "\nAliases: %s\n", strings.Join(aliases, ", "))
		}
		fmt.Fprint(out, commonFlagsText)
		return exitcode.Success
	}

	fmt.Fprint(out, helpText)
	fmt.Fprint(out, commonFlagsText)
	return exitcode.Success
}

const helpText = `Usage:
  checkmate                                     List tasks
  checkmate list [-v] [--hide-completed]        List tasks
  checkmate add [-n <notes>] <title...>         Create a task
  checkmate complete <ref>                      Mark a task as completed
  checkmate uncomplete <ref>                    Mark a task as not completed
  checkmate update [-t <title>] [-n <notes>] <ref>
  checkmate delete [-f] <ref>                   Delete a task
  checkmate cleanup [-f]                        Remove all completed tasks
  checkmate login                               Save service URL and credentials
  checkmate logout                              Remove the saved configuration
  checkmate help [command]
  checkmate version

A <ref> is a task identifier or any unique prefix of one.
`

const commonFlagsText = `
Common flags:
  --config <dir>         Override config directory
  --url <url>            Service base URL (env CHECKMATE_URL)
  --move <move>          Move credential (env CHECKMATE_MOVE)
  --grandmaster <name>   Grandmaster credential (env CHECKMATE_GRANDMASTER)
  --quiet                Suppress informational output
  --debug                Print debug logs to stderr
`
