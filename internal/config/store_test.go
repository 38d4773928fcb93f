package config

import (
	"errors"
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Helper()
	t.Setenv(EnvURL, "")
	t.Setenv(EnvMove, "")
	t.Setenv(EnvGrandmaster, "")
}

func TestLoad_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), SettingsFile))
	assert.ErrorIs(t, err, ErrConfigMissing)
}

func TestLoad_Verbatim(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	data := "base_url = \"not a url\"\nmove = \" e4 \"\ngrandmaster = \"Kasparov\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0600))

	s, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, Settings{URL: "not a url", Move: " e4 ", Grandmaster: "Kasparov"}, s)
}

func TestLoad_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("base_url = = ="), 0600))

	_, err := Load(path)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrConfigMissing))
}

func TestMerge(t *testing.T) {
	base := Settings{URL: "https://a.example", Move: "e4", Grandmaster: "Tal"}

	tests := []struct {
		name      string
		overrides Settings
		want      Settings
	}{
		{"empty overrides", Settings{}, base},
		{"url only", Settings{URL: "https://b.example"}, Settings{URL: "https://b.example", Move: "e4", Grandmaster: "Tal"}},
		{"move only", Settings{Move: "d4"}, Settings{URL: "https://a.example", Move: "d4", Grandmaster: "Tal"}},
		{"grandmaster only", Settings{Grandmaster: "Carlsen"}, Settings{URL: "https://a.example", Move: "e4", Grandmaster: "Carlsen"}},
		{"all", Settings{URL: "u", Move: "m", Grandmaster: "g"}, Settings{URL: "u", Move: "m", Grandmaster: "g"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Merge(base, tt.overrides))
		})
	}
}

func TestMerge_EmptyBase(t *testing.T) {
	assert.Equal(t, Settings{Move: "c4"}, Merge(Settings{}, Settings{Move: "c4"}))
}

func TestSaveLoad_RoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", SettingsFile)
	want := Settings{URL: "https://checkmate.example/api", Move: "Nf3 \"quoted\"", Grandmaster: "Polgár"}

	require.NoError(t, Save(path, want))

	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_OwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), SettingsFile)

	require.NoError(t, Save(path, Settings{URL: "u", Move: "m", Grandmaster: "g"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestSave_TightensExistingFile(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on windows")
	}
	path := filepath.Join(t.TempDir(), SettingsFile)
	require.NoError(t, os.WriteFile(path, []byte("old = \"content\"\nextra = 1\n"), 0644))

	require.NoError(t, Save(path, Settings{URL: "u", Move: "m", Grandmaster: "g"}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.NotContains(t, string(data), "old")
}

func TestSave_WriteError(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0600))

	// Parent "directory" is a regular file.
	err := Save(filepath.Join(blocker, SettingsFile), Settings{URL: "u"})

	var werr *WriteError
	require.ErrorAs(t, err, &werr)
	assert.Equal(t, filepath.Join(blocker, SettingsFile), werr.Path)
}

func TestConfigSettings_Precedence(t *testing.T) {
	clearEnv(t)
	cfg := &Config{Dir: t.TempDir()}
	require.NoError(t, Save(cfg.SettingsPath(), Settings{URL: "file-url", Move: "file-move", Grandmaster: "file-gm"}))

	t.Setenv(EnvMove, "env-move")
	t.Setenv(EnvGrandmaster, "env-gm")
	cfg.Overrides = Settings{Grandmaster: "flag-gm"}

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, Settings{URL: "file-url", Move: "env-move", Grandmaster: "flag-gm"}, s)
}

func TestConfigSettings_NoFileCompleteOverrides(t *testing.T) {
	clearEnv(t)
	cfg := &Config{
		Dir:       t.TempDir(),
		Overrides: Settings{URL: "u", Move: "m", Grandmaster: "g"},
	}

	s, err := cfg.Settings()
	require.NoError(t, err)
	assert.Equal(t, cfg.Overrides, s)
	assert.False(t, cfg.HasSettings())
}

func TestConfigSettings_Incomplete(t *testing.T) {
	clearEnv(t)
	cfg := &Config{Dir: t.TempDir(), Overrides: Settings{URL: "u"}}

	_, err := cfg.Settings()
	require.ErrorIs(t, err, ErrConfigMissing)
	assert.Contains(t, err.Error(), "missing move, grandmaster")
}

func TestConfig_RemoveSettings(t *testing.T) {
	cfg := &Config{Dir: t.TempDir()}
	require.NoError(t, Save(cfg.SettingsPath(), Settings{URL: "u", Move: "m", Grandmaster: "g"}))
	require.True(t, cfg.HasSettings())

	require.NoError(t, cfg.RemoveSettings())
	assert.False(t, cfg.HasSettings())
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")
	assert.Equal(t, filepath.Join("/tmp/xdg", AppName), DefaultConfigDir())
}
