package commands_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"checkmate/internal/commands"
	"checkmate/internal/config"
	"checkmate/internal/exitcode"
	"checkmate/internal/prompt"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(config.EnvURL, "")
	t.Setenv(config.EnvMove, "")
	t.Setenv(config.EnvGrandmaster, "")
}

func runLogin(t *testing.T, cfg *config.Config, p prompt.Prompter) (stdout, stderr string, code int) {
	t.Helper()
	cmd := &commands.LoginCmd{}
	if p != nil {
		cmd.SetPrompter(p)
	}
	var outBuf, errBuf bytes.Buffer
	code = cmd.Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)
	return outBuf.String(), errBuf.String(), code
}

func TestLoginCommand_PromptsForEverything(t *testing.T) {
	clearEnv(t)
	cfg := &config.Config{Dir: filepath.Join(t.TempDir(), "checkmate")}
	p := &stubPrompter{answers: []string{"https://example.com/api", " e2e4 ", "magnus"}}

	stdout, stderr, code := runLogin(t, cfg, p)

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Equal(t, []string{"Service URL", "Move notation", "Grandmaster name"}, p.asked)
	assert.Equal(t, "Configuration saved to "+cfg.SettingsPath()+"\n", stdout)

	s, err := config.Load(cfg.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, config.Settings{URL: "https://example.com/api", Move: "e2e4", Grandmaster: "magnus"}, s)

	info, err := os.Stat(cfg.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestLoginCommand_FlagsSkipPrompts(t *testing.T) {
	clearEnv(t)
	t.Setenv(config.EnvGrandmaster, "judit")
	cfg := &config.Config{
		Dir:       t.TempDir(),
		Quiet:     true,
		Overrides: config.Settings{URL: "http://localhost:8080"},
	}
	p := &stubPrompter{answers: []string{"d4"}}

	stdout, stderr, code := runLogin(t, cfg, p)

	require.Equal(t, exitcode.Success, code, stderr)
	assert.Empty(t, stdout)
	assert.Equal(t, []string{"Move notation"}, p.asked)

	s, err := config.Load(cfg.SettingsPath())
	require.NoError(t, err)
	assert.Equal(t, config.Settings{URL: "http://localhost:8080", Move: "d4", Grandmaster: "judit"}, s)
}

func TestLoginCommand_Failures(t *testing.T) {
	tests := []struct {
		name     string
		prompter prompt.Prompter
		stderr   string
	}{
		{"empty answer", &stubPrompter{answers: []string{"http://x", "", "g"}}, "error: move notation required\n"},
		{"aborted", &stubPrompter{answers: []string{"http://x"}}, "error: login cancelled\n"},
		{"bad url", &stubPrompter{answers: []string{"not a url", "m", "g"}}, "error: invalid service URL: not a url\n"},
		{"no prompter", nil, "error: service url required (no prompt available)\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			cfg := &config.Config{Dir: t.TempDir()}

			_, stderr, code := runLogin(t, cfg, tt.prompter)

			assert.Equal(t, exitcode.UserError, code)
			assert.Equal(t, tt.stderr, stderr)
			assert.False(t, cfg.HasSettings())
		})
	}
}

func TestLoginCommand_WriteError(t *testing.T) {
	clearEnv(t)
	parent := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(parent, []byte("x"), 0600))

	cfg := &config.Config{
		Dir:       filepath.Join(parent, "checkmate"),
		Overrides: config.Settings{URL: "http://x", Move: "m", Grandmaster: "g"},
	}

	_, stderr, code := runLogin(t, cfg, nil)

	assert.Equal(t, exitcode.AuthError, code)
	assert.Contains(t, stderr, "error: ")
}

func TestLogoutCommand(t *testing.T) {
	clearEnv(t)
	cfg := &config.Config{Dir: t.TempDir()}
	require.NoError(t, config.Save(cfg.SettingsPath(), config.Settings{URL: "http://x", Move: "m", Grandmaster: "g"}))

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "ok\n", outBuf.String())
	assert.False(t, cfg.HasSettings())
}

func TestLogoutCommand_NotLoggedIn(t *testing.T) {
	cfg := &config.Config{Dir: t.TempDir()}

	var outBuf, errBuf bytes.Buffer
	code := (&commands.LogoutCmd{}).Run(context.Background(), cfg, nil, nil, &outBuf, &errBuf)

	assert.Equal(t, exitcode.Success, code)
	assert.Equal(t, "not logged in\n", outBuf.String())
	assert.Empty(t, errBuf.String())
}
