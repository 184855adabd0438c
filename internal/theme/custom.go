package theme

import (
	"encoding/json"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"charm.land/log/v2"
	"github.com/adrg/xdg"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// ThemesDirName is the themes directory relative to the XDG config home.
const ThemesDirName = "deskos/themes"

// GetThemesDir returns the custom theme directory, creating it if needed.
func GetThemesDir() (string, error) {
	keepFile, err := xdg.ConfigFile(ThemesDirName + "/.keep")
	if err != nil {
		return "", fmt.Errorf("failed to get themes directory: %w", err)
	}
	return filepath.Dir(keepFile), nil
}

// CustomTheme is a theme file from the themes directory: a bubbletint tint
// plus optional desktop roles that bypass the tint mapping.
//
//	{
//	  "fg": "#d8dee9", "bg": "#2e3440",
//	  "desktop": {"taskbar": "#3b4252", "title_bar_active": "#5e81ac"}
//	}
type CustomTheme struct {
	tint.Tint
	Desktop map[string]string `json:"desktop,omitempty"`
}

// paletteRoles maps desktop role names to palette fields.
var paletteRoles = map[string]func(*Palette) *color.Color{
	"text":             func(p *Palette) *color.Color { return &p.Text },
	"muted":            func(p *Palette) *color.Color { return &p.Muted },
	"accent":           func(p *Palette) *color.Color { return &p.Accent },
	"danger":           func(p *Palette) *color.Color { return &p.Danger },
	"border":           func(p *Palette) *color.Color { return &p.Border },
	"border_active":    func(p *Palette) *color.Color { return &p.BorderActive },
	"title_bar":        func(p *Palette) *color.Color { return &p.TitleBar },
	"title_bar_active": func(p *Palette) *color.Color { return &p.TitleBarActive },
	"window":           func(p *Palette) *color.Color { return &p.Window },
	"panel":            func(p *Palette) *color.Color { return &p.Panel },
	"taskbar":          func(p *Palette) *color.Color { return &p.Taskbar },
	"taskbar_text":     func(p *Palette) *color.Color { return &p.TaskbarText },
	"highlight":        func(p *Palette) *color.Color { return &p.Highlight },
}

// RoleNames lists the desktop roles a theme file may set.
func RoleNames() []string {
	names := lo.Keys(paletteRoles)
	slices.Sort(names)
	return names
}

// apply overrides p with the theme's desktop roles. A nil theme changes
// nothing.
func (ct *CustomTheme) apply(p Palette) Palette {
	if ct == nil {
		return p
	}
	for role, hex := range ct.Desktop {
		field, ok := paletteRoles[role]
		if !ok {
			continue
		}
		if c, err := colorful.Hex(hex); err == nil {
			*field(&p) = c
		}
	}
	return p
}

// LoadCustomThemes registers every *.json theme in themesDir with bubbletint.
// Bad files are logged and skipped.
func LoadCustomThemes(themesDir string, logger *log.Logger) ([]*CustomTheme, error) {
	entries, err := os.ReadDir(themesDir)
	if err != nil {
		return nil, fmt.Errorf("failed to read themes directory: %w", err)
	}

	var loaded []*CustomTheme
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".json") {
			continue
		}
		ct, err := LoadCustomThemeFile(filepath.Join(themesDir, entry.Name()))
		if err != nil {
			if logger != nil {
				logger.Warn("skipping custom theme", "file", entry.Name(), "err", err)
			}
			continue
		}
		tint.Register(&ct.Tint)
		loaded = append(loaded, ct)
	}
	return loaded, nil
}

// LoadCustomThemeFile parses one theme file. The id defaults to the file
// name. Tint colors left out stay unset and fall back to the built-in
// palette when the theme is resolved.
func LoadCustomThemeFile(path string) (*CustomTheme, error) {
	// #nosec G304 - path comes from the user's themes directory
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read theme file: %w", err)
	}
	if err := checkTintColors(data); err != nil {
		return nil, err
	}

	var ct CustomTheme
	if err := json.Unmarshal(data, &ct); err != nil {
		return nil, fmt.Errorf("failed to parse theme JSON: %w", err)
	}

	if ct.ID == "" {
		base := filepath.Base(path)
		ct.ID = strings.ToLower(strings.TrimSuffix(base, filepath.Ext(base)))
	}
	if ct.DisplayName == "" {
		ct.DisplayName = ct.ID
	}

	for role, hex := range ct.Desktop {
		if _, ok := paletteRoles[role]; !ok {
			return nil, fmt.Errorf("unknown desktop role %q (valid: %s)", role, strings.Join(RoleNames(), ", "))
		}
		if _, err := colorful.Hex(hex); err != nil {
			return nil, fmt.Errorf("desktop role %s: invalid color %q", role, hex)
		}
	}
	return &ct, nil
}

// nonColorKeys are the tint fields that do not hold a color.
var nonColorKeys = []string{"id", "display_name", "dark", "credit_sources", "desktop"}

// checkTintColors rejects tint colors written as strings that are not hex
// colors. bubbletint cannot decode those.
func checkTintColors(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to parse theme JSON: %w", err)
	}
	for key, raw := range fields {
		if lo.Contains(nonColorKeys, key) {
			continue
		}
		var hex string
		if json.Unmarshal(raw, &hex) != nil {
			continue
		}
		if _, err := colorful.Hex(hex); err != nil {
			return fmt.Errorf("%s: invalid color %q", key, hex)
		}
	}
	return nil
}
