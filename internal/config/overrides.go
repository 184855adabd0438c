package config

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is the prefix of environment overrides, e.g. DESKOS_LOG_LEVEL.
const EnvPrefix = "DESKOS"

// Env holds settings read from DESKOS_* environment variables. Empty values
// leave the config file untouched.
type Env struct {
	DarkTheme  string `envconfig:"THEME_DARK"`
	LightTheme string `envconfig:"THEME_LIGHT"`
	Wallpaper  string `envconfig:"WALLPAPER"`
	ASCIIOnly  bool   `envconfig:"ASCII_ONLY"`
	LogLevel   string `envconfig:"LOG_LEVEL"`
	LogFile    string `envconfig:"LOG_FILE"`
	StateKey   string `envconfig:"STATE_KEY"`
	StateDir   string `envconfig:"STATE_DIR"`
	SSHHost    string `envconfig:"SSH_HOST"`
	SSHPort    string `envconfig:"SSH_PORT"`
	SSHKeyPath string `envconfig:"SSH_KEY_PATH"`
}

// LoadEnv reads the DESKOS_* environment.
func LoadEnv() (Env, error) {
	var env Env
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return Env{}, fmt.Errorf("failed to read environment: %w", err)
	}
	return env, nil
}

// Overrides contains CLI flag values that can override user config.
// Zero values indicate the flag was not set and should use the user config default.
type Overrides struct {
	// DarkTheme and LightTheme are bubbletint ids
	DarkTheme  string
	LightTheme string

	// Wallpaper is the first-run wallpaper
	Wallpaper string

	// ASCIIOnly uses ASCII characters instead of unicode glyphs
	ASCIIOnly bool

	// LogLevel overrides the log level
	LogLevel string

	// StateKey selects the state file
	StateKey string
}

// ApplyEnv layers environment values over cfg.
func ApplyEnv(env Env, cfg *UserConfig) {
	ApplyOverrides(Overrides{
		DarkTheme:  env.DarkTheme,
		LightTheme: env.LightTheme,
		Wallpaper:  env.Wallpaper,
		ASCIIOnly:  env.ASCIIOnly,
		LogLevel:   env.LogLevel,
		StateKey:   env.StateKey,
	}, cfg)
	setIf(&cfg.Logging.File, env.LogFile)
	setIf(&cfg.Storage.Dir, env.StateDir)
	setIf(&cfg.SSH.Host, env.SSHHost)
	setIf(&cfg.SSH.Port, env.SSHPort)
	setIf(&cfg.SSH.KeyPath, env.SSHKeyPath)
}

// ApplyOverrides layers CLI flag values over cfg. Call it after ApplyEnv so
// flags beat the environment.
func ApplyOverrides(overrides Overrides, cfg *UserConfig) {
	// ASCII Only - OR of flag and config
	cfg.Appearance.ASCIIOnly = cfg.Appearance.ASCIIOnly || overrides.ASCIIOnly

	setIf(&cfg.Appearance.DarkTheme, overrides.DarkTheme)
	setIf(&cfg.Appearance.LightTheme, overrides.LightTheme)
	setIf(&cfg.Appearance.Wallpaper, overrides.Wallpaper)
	setIf(&cfg.Logging.Level, overrides.LogLevel)
	setIf(&cfg.Storage.Key, overrides.StateKey)
}

func setIf(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
