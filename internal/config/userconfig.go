package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
)

// ConfigFileName is the config file relative to the XDG config home.
const ConfigFileName = "deskos/config.toml"

// UserConfig represents the user's custom configuration
type UserConfig struct {
	Appearance  AppearanceConfig    `toml:"appearance"`
	Input       InputConfig         `toml:"input"`
	Keybindings map[string][]string `toml:"keybindings"`
	Storage     StorageConfig       `toml:"storage"`
	Logging     LoggingConfig       `toml:"logging"`
	SSH         SSHConfig           `toml:"ssh"`
}

// AppearanceConfig holds appearance-related settings
type AppearanceConfig struct {
	DarkTheme   string `toml:"dark_theme"`   // bubbletint id used in dark mode (empty: built-in palette)
	LightTheme  string `toml:"light_theme"`  // bubbletint id used in light mode (empty: built-in palette)
	Wallpaper   string `toml:"wallpaper"`    // Wallpaper for first run: default, mechanical, circuit, ocean, sunset, dark
	DarkMode    *bool  `toml:"dark_mode"`    // Dark mode for first run (default: false)
	ASCIIOnly   bool   `toml:"ascii_only"`   // Use ASCII glyphs only
	BorderStyle string `toml:"border_style"` // Window border style
	ClockFormat string `toml:"clock_format"` // Go time layout for the taskbar clock
}

// InputConfig holds pointer settings
type InputConfig struct {
	DragThreshold float64 `toml:"drag_threshold"`  // Pixels of cumulative movement before a press becomes a drag
	DoubleClickMS int     `toml:"double_click_ms"` // Double click window in milliseconds
}

// StorageConfig holds where desktop state is persisted
type StorageConfig struct {
	Key string `toml:"key"` // State file name without extension (default: deskos-storage)
	Dir string `toml:"dir"` // Directory for state files (default: $XDG_STATE_HOME/deskos)
}

// LoggingConfig holds log settings
type LoggingConfig struct {
	Level string `toml:"level"` // debug, info, warn, error
	File  string `toml:"file"`  // Log file in local mode (default: $XDG_STATE_HOME/deskos/deskos.log)
}

// SSHConfig holds SSH server settings
type SSHConfig struct {
	Host    string `toml:"host"`
	Port    string `toml:"port"`
	KeyPath string `toml:"key_path"` // Host key (default: $XDG_DATA_HOME/deskos/ssh_host_ed25519)
}

// DefaultConfig returns the default configuration
func DefaultConfig() *UserConfig {
	dark := false
	return &UserConfig{
		Appearance: AppearanceConfig{
			Wallpaper:   "default",
			DarkMode:    &dark,
			BorderStyle: "rounded",
			ClockFormat: "15:04",
		},
		Input: InputConfig{
			DragThreshold: DefaultDragThreshold,
			DoubleClickMS: int(DefaultDoubleClick.Milliseconds()),
		},
		Keybindings: DefaultKeybindings(),
		Storage: StorageConfig{
			Key: "deskos-storage",
		},
		Logging: LoggingConfig{
			Level: "info",
		},
		SSH: SSHConfig{
			Host: DefaultSSHHost,
			Port: DefaultSSHPort,
		},
	}
}

// LoadUserConfig loads the user configuration from the XDG config directory,
// creating it with defaults on first run.
func LoadUserConfig() (*UserConfig, *ValidationResult, error) {
	configPath, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		path, err := xdg.ConfigFile(ConfigFileName)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to get config path: %w", err)
		}
		cfg, err := WriteDefaultConfig(path)
		return cfg, &ValidationResult{}, err
	}
	return LoadConfigFile(configPath)
}

// LoadConfigFile reads, fills and validates a config file.
func LoadConfigFile(path string) (*UserConfig, *ValidationResult, error) {
	// #nosec G304 - path is the user's config file
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg UserConfig
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	defaultCfg := DefaultConfig()
	fillMissingAppearance(&cfg, defaultCfg)
	fillMissingInput(&cfg, defaultCfg)
	fillMissingKeybinds(&cfg, defaultCfg)
	fillMissingStorage(&cfg, defaultCfg)
	fillMissingLogging(&cfg, defaultCfg)
	fillMissingSSH(&cfg, defaultCfg)

	validation := ValidateConfig(&cfg)
	if validation.HasErrors() {
		return nil, validation, fmt.Errorf("%w: %d error(s) in %s", ErrInvalid, len(validation.Errors), path)
	}
	return &cfg, validation, nil
}

// WriteDefaultConfig writes the default config with a commented header.
func WriteDefaultConfig(configPath string) (*UserConfig, error) {
	cfg := DefaultConfig()

	if err := os.MkdirAll(filepath.Dir(configPath), 0o750); err != nil {
		return nil, fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := toml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}

	var sb strings.Builder
	sb.WriteString("# DeskOS Configuration File\n")
	sb.WriteString("#\n")
	sb.WriteString("# Configuration location: " + configPath + "\n")
	sb.WriteString("# Environment variables (DESKOS_*) and command line flags override this file.\n\n")

	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# APPEARANCE SETTINGS\n")
	sb.WriteString("# ============================================================================\n")
	sb.WriteString("# dark_theme / light_theme: bubbletint theme ids (run: deskos themes)\n")
	sb.WriteString("#   Custom themes: " + filepath.Join(filepath.Dir(configPath), "themes") + "/*.json\n")
	sb.WriteString("#   Default: (empty - built-in palette)\n")
	sb.WriteString("#\n")
	sb.WriteString("# wallpaper, dark_mode: used until the desktop has saved state\n")
	sb.WriteString("#   Wallpapers: default, mechanical, circuit, ocean, sunset, dark\n")
	sb.WriteString("#\n")
	sb.WriteString("# border_style: " + strings.Join(BorderStyles, ", ") + "\n")
	sb.WriteString("#\n")
	sb.WriteString("# [input] drag_threshold: pixels moved before a press becomes a drag (1 to 50)\n")
	sb.WriteString("# [keybindings] action = [\"key\", ...] (run: deskos keys)\n")
	sb.WriteString("# [logging] level: debug, info, warn, error\n")
	sb.WriteString("# ============================================================================\n\n")

	sb.Write(data)

	if err := os.WriteFile(configPath, []byte(sb.String()), 0o600); err != nil {
		return nil, fmt.Errorf("failed to write config file: %w", err)
	}
	return cfg, nil
}

func fillMissingAppearance(cfg, defaultCfg *UserConfig) {
	if cfg.Appearance.Wallpaper == "" {
		cfg.Appearance.Wallpaper = defaultCfg.Appearance.Wallpaper
	}
	if cfg.Appearance.DarkMode == nil {
		cfg.Appearance.DarkMode = defaultCfg.Appearance.DarkMode
	}
	if cfg.Appearance.BorderStyle == "" {
		cfg.Appearance.BorderStyle = defaultCfg.Appearance.BorderStyle
	}
	if cfg.Appearance.ClockFormat == "" {
		cfg.Appearance.ClockFormat = defaultCfg.Appearance.ClockFormat
	}
}

func fillMissingInput(cfg, defaultCfg *UserConfig) {
	if cfg.Input.DragThreshold == 0 {
		cfg.Input.DragThreshold = defaultCfg.Input.DragThreshold
	}
	if cfg.Input.DoubleClickMS == 0 {
		cfg.Input.DoubleClickMS = defaultCfg.Input.DoubleClickMS
	}
}

// fillMissingKeybinds adds default keys for actions the file leaves out.
func fillMissingKeybinds(cfg, defaultCfg *UserConfig) {
	if cfg.Keybindings == nil {
		cfg.Keybindings = make(map[string][]string)
	}
	for action, keys := range cfg.Keybindings {
		for i, k := range keys {
			keys[i] = normalizeKey(k)
		}
		cfg.Keybindings[action] = keys
	}
	for k, v := range defaultCfg.Keybindings {
		if _, exists := cfg.Keybindings[k]; !exists {
			cfg.Keybindings[k] = v
		}
	}
}

func fillMissingStorage(cfg, defaultCfg *UserConfig) {
	if cfg.Storage.Key == "" {
		cfg.Storage.Key = defaultCfg.Storage.Key
	}
}

func fillMissingLogging(cfg, defaultCfg *UserConfig) {
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = defaultCfg.Logging.Level
	}
}

func fillMissingSSH(cfg, defaultCfg *UserConfig) {
	if cfg.SSH.Host == "" {
		cfg.SSH.Host = defaultCfg.SSH.Host
	}
	if cfg.SSH.Port == "" {
		cfg.SSH.Port = defaultCfg.SSH.Port
	}
}

// GetConfigPath returns the path to the config file
func GetConfigPath() (string, error) {
	path, err := xdg.SearchConfigFile(ConfigFileName)
	if err != nil {
		return xdg.ConfigFile(ConfigFileName)
	}
	return path, nil
}

// ResetConfig overwrites the config file with defaults.
func ResetConfig() (string, error) {
	path, err := GetConfigPath()
	if err != nil {
		return "", err
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return "", fmt.Errorf("failed to remove config file: %w", err)
	}
	_, err = WriteDefaultConfig(path)
	return path, err
}
