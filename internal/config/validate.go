package config

import (
	"errors"
	"fmt"
	"maps"
	"slices"
	"time"

	"charm.land/log/v2"

	"github.com/deskos/deskos/internal/theme"
)

// ErrInvalid is returned when a config file has validation errors.
var ErrInvalid = errors.New("invalid configuration")

// ValidationIssue is one problem found in a config.
type ValidationIssue struct {
	Field   string
	Key     string
	Message string
}

func (i ValidationIssue) String() string {
	return fmt.Sprintf("[%s] %s: %s", i.Field, i.Key, i.Message)
}

// ValidationResult collects errors, which stop startup, and warnings, which don't.
type ValidationResult struct {
	Errors   []ValidationIssue
	Warnings []ValidationIssue
}

func (v *ValidationResult) HasErrors() bool   { return v != nil && len(v.Errors) > 0 }
func (v *ValidationResult) HasWarnings() bool { return v != nil && len(v.Warnings) > 0 }

func (v *ValidationResult) addError(field, key, format string, args ...any) {
	v.Errors = append(v.Errors, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

func (v *ValidationResult) addWarning(field, key, format string, args ...any) {
	v.Warnings = append(v.Warnings, ValidationIssue{field, key, fmt.Sprintf(format, args...)})
}

// Log reports every issue at the matching level.
func (v *ValidationResult) Log(logger *log.Logger) {
	if v == nil {
		return
	}
	for _, e := range v.Errors {
		logger.Error("config error", "issue", e.String())
	}
	for _, w := range v.Warnings {
		logger.Warn("config warning", "issue", w.String())
	}
}

// ValidateConfig checks a filled config.
func ValidateConfig(cfg *UserConfig) *ValidationResult {
	v := &ValidationResult{}

	if !theme.IsWallpaper(cfg.Appearance.Wallpaper) {
		v.addWarning("appearance", "wallpaper", "unknown wallpaper %q, default is used", cfg.Appearance.Wallpaper)
	}
	if !slices.Contains(BorderStyles, cfg.Appearance.BorderStyle) {
		v.addError("appearance", "border_style", "must be one of %v", BorderStyles)
	}
	if ts := time.Date(2024, 1, 2, 9, 7, 8, 0, time.UTC).Format(cfg.Appearance.ClockFormat); ts == cfg.Appearance.ClockFormat {
		v.addWarning("appearance", "clock_format", "%q contains no time fields", cfg.Appearance.ClockFormat)
	}

	if t := cfg.Input.DragThreshold; t < 1 || t > 50 {
		v.addError("input", "drag_threshold", "must be between 1 and 50, got %v", t)
	}
	if ms := cfg.Input.DoubleClickMS; ms < 100 || ms > 2000 {
		v.addError("input", "double_click_ms", "must be between 100 and 2000, got %d", ms)
	}

	owner := map[string]string{}
	for _, action := range slices.Sorted(maps.Keys(cfg.Keybindings)) {
		if !IsAction(action) {
			v.addWarning("keybindings", action, "unknown action is ignored")
			continue
		}
		for _, key := range cfg.Keybindings[action] {
			if key == "" {
				v.addError("keybindings", action, "empty key")
				continue
			}
			if prev, ok := owner[key]; ok {
				v.addWarning("keybindings", action, "key %q is already bound to %s", key, prev)
				continue
			}
			owner[key] = action
		}
	}

	if _, err := log.ParseLevel(cfg.Logging.Level); err != nil {
		v.addError("logging", "level", "unknown level %q", cfg.Logging.Level)
	}

	return v
}
