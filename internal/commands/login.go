package commands

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/url"
	"strings"

	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/prompt"
	"checkmate/internal/service"
)

func init() {
	Register(&LoginCmd{})
}

// LoginCmd implements the login command. Values given by --url, --move and
// --grandmaster (or the environment) are used as is; the rest are asked for.
type LoginCmd struct {
	prompter prompt.Prompter
}

// SetPrompter implements Interactive.
func (c *LoginCmd) SetPrompter(p prompt.Prompter) {
	c.prompter = p
}

func (c *LoginCmd) Name() string      { return "login" }
func (c *LoginCmd) Aliases() []string { return []string{"setup"} }
func (c *LoginCmd) Synopsis() string  { return "Save service URL and credentials" }
func (c *LoginCmd) Usage() string {
	return "checkmate login [--url <url>] [--move <move>] [--grandmaster <name>]"
}
func (c *LoginCmd) NeedsAuth() bool { return false }

func (c *LoginCmd) RegisterFlags(fs *flag.FlagSet) {}

func (c *LoginCmd) Run(ctx context.Context, cfg *config.Config, svc service.Service, args []string, out, errOut io.Writer) int {
	if len(args) > 0 {
		return userError(errOut, "unexpected argument: %s", args[0])
	}

	s := config.Merge(config.EnvOverrides(), cfg.Overrides)

	fields := []struct {
		label  string
		secret bool
		value  *string
	}{
		{"Service URL", false, &s.URL},
		{"Move notation", true, &s.Move},
		{"Grandmaster name", false, &s.Grandmaster},
	}

	for _, f := range fields {
		if *f.value != "" {
			continue
		}
		if c.prompter == nil {
			return userError(errOut, "%s required (no prompt available)", strings.ToLower(f.label))
		}
		answer, err := c.prompter.Ask(f.label, f.secret)
		if errors.Is(err, prompt.ErrAborted) {
			fmt.Fprintln(errOut, "error: login cancelled")
			return exitcode.UserError
		}
		if err != nil {
			return userError(errOut, "%v", err)
		}
		answer = strings.TrimSpace(answer)
		if answer == "" {
			return userError(errOut, "%s required", strings.ToLower(f.label))
		}
		*f.value = answer
	}

	if u, err := url.Parse(s.URL); err != nil || !u.IsAbs() || u.Host == "" {
		return userError(errOut, "invalid service URL: %s", s.URL)
	}

	path := cfg.SettingsPath()
	if err := config.Save(path, s); err != nil {
		return reportError(errOut, err)
	}

	if !cfg.Quiet {
		fmt.Fprintf(out, "Configuration saved to %s\n", path)
	}
	return exitcode.Success
}
