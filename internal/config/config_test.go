package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestWriteDefaultConfigLoadsBack(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deskos", "config.toml")
	_, err := WriteDefaultConfig(path)
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "# DeskOS Configuration File")

	cfg, validation, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.False(t, validation.HasErrors())
	assert.False(t, validation.HasWarnings(), "%v", validation.Warnings)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadConfigFileFillsMissing(t *testing.T) {
	path := writeConfig(t, `
[appearance]
dark_theme = "dracula"
dark_mode = true

[keybindings]
quit = ["Ctrl+X"]
`)
	cfg, _, err := LoadConfigFile(path)
	require.NoError(t, err)

	assert.Equal(t, "dracula", cfg.Appearance.DarkTheme)
	require.NotNil(t, cfg.Appearance.DarkMode)
	assert.True(t, *cfg.Appearance.DarkMode)
	assert.Equal(t, "default", cfg.Appearance.Wallpaper)
	assert.Equal(t, "rounded", cfg.Appearance.BorderStyle)
	assert.Equal(t, DefaultDragThreshold, cfg.Input.DragThreshold)
	assert.Equal(t, 400, cfg.Input.DoubleClickMS)
	assert.Equal(t, []string{"ctrl+x"}, cfg.Keybindings[ActionQuit])
	assert.Equal(t, []string{"ctrl+w"}, cfg.Keybindings[ActionCloseWindow])
	assert.Equal(t, "deskos-storage", cfg.Storage.Key)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, DefaultSSHPort, cfg.SSH.Port)
}

func TestLoadConfigFileErrors(t *testing.T) {
	_, _, err := LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.Error(t, err)

	_, _, err = LoadConfigFile(writeConfig(t, "[appearance\n"))
	assert.Error(t, err)

	_, validation, err := LoadConfigFile(writeConfig(t, "[input]\ndrag_threshold = 500\n"))
	require.ErrorIs(t, err, ErrInvalid)
	require.Len(t, validation.Errors, 1)
	assert.Equal(t, "drag_threshold", validation.Errors[0].Key)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name         string
		mutate       func(*UserConfig)
		wantErrors   []string
		wantWarnings []string
	}{
		{"defaults", func(*UserConfig) {}, nil, nil},
		{"unknown wallpaper", func(c *UserConfig) { c.Appearance.Wallpaper = "nebula" }, nil, []string{"wallpaper"}},
		{"bad border", func(c *UserConfig) { c.Appearance.BorderStyle = "wavy" }, []string{"border_style"}, nil},
		{"clock without fields", func(c *UserConfig) { c.Appearance.ClockFormat = "noon" }, nil, []string{"clock_format"}},
		{"double click too short", func(c *UserConfig) { c.Input.DoubleClickMS = 10 }, []string{"double_click_ms"}, nil},
		{"unknown action", func(c *UserConfig) { c.Keybindings["launch_rockets"] = []string{"r"} }, nil, []string{"launch_rockets"}},
		{"empty key", func(c *UserConfig) { c.Keybindings[ActionQuit] = []string{""} }, []string{ActionQuit}, nil},
		{"duplicate key", func(c *UserConfig) { c.Keybindings[ActionToggleSearch] = []string{"ctrl+w"} }, nil, []string{ActionToggleSearch}},
		{"bad level", func(c *UserConfig) { c.Logging.Level = "loud" }, []string{"level"}, nil},
	}

	keys := func(issues []ValidationIssue) []string {
		var out []string
		for _, i := range issues {
			out = append(out, i.Key)
		}
		return out
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			v := ValidateConfig(cfg)
			assert.Equal(t, tt.wantErrors, keys(v.Errors))
			assert.Equal(t, tt.wantWarnings, keys(v.Warnings))
		})
	}
}

func TestOverridesPrecedence(t *testing.T) {
	t.Setenv("DESKOS_THEME_DARK", "nord")
	t.Setenv("DESKOS_LOG_LEVEL", "debug")
	t.Setenv("DESKOS_SSH_PORT", "2323")

	env, err := LoadEnv()
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.Appearance.DarkTheme = "from-file"
	cfg.Appearance.LightTheme = "paper"

	ApplyEnv(env, cfg)
	ApplyOverrides(Overrides{LogLevel: "warn", ASCIIOnly: true, StateKey: "guest"}, cfg)

	assert.Equal(t, "nord", cfg.Appearance.DarkTheme, "env beats file")
	assert.Equal(t, "paper", cfg.Appearance.LightTheme, "unset env keeps file")
	assert.Equal(t, "warn", cfg.Logging.Level, "flag beats env")
	assert.Equal(t, "2323", cfg.SSH.Port)
	assert.Equal(t, "guest", cfg.Storage.Key)
	assert.True(t, cfg.Appearance.ASCIIOnly)
}

func TestLoadEnvRejectsBadBool(t *testing.T) {
	t.Setenv("DESKOS_ASCII_ONLY", "maybe")
	_, err := LoadEnv()
	assert.Error(t, err)
}

func TestGetKeybindings(t *testing.T) {
	sections := GetKeybindings(DefaultKeybindings())
	require.Len(t, sections, 3)

	seen := map[string]bool{}
	for _, s := range sections {
		for _, b := range s.Bindings {
			assert.NotEmpty(t, b.Keys, b.Action)
			assert.NotEmpty(t, b.Description, b.Action)
			seen[b.Action] = true
		}
	}
	for action := range DefaultKeybindings() {
		assert.True(t, seen[action], action)
		assert.True(t, IsAction(action))
	}
}

func TestGlyphsAndBorders(t *testing.T) {
	assert.Equal(t, "[x]", GlyphsFor(true).Close)
	assert.NotEqual(t, GlyphsFor(true).Close, GlyphsFor(false).Close)
	assert.Equal(t, "+", BorderFor("rounded", true).TopLeft)
	assert.Equal(t, "╭", BorderFor("nope", false).TopLeft)
	assert.Equal(t, "═", BorderFor("double", false).Top)
}
