// Package theme provides the light and dark palettes, the wallpaper catalog
// and the styles the desktop is drawn with.
package theme

import (
	"fmt"
	"image/color"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	tint "github.com/lrstanley/bubbletint/v2"
	"github.com/samber/lo"
)

// Palette is every color the desktop draws with.
type Palette struct {
	Text           color.Color
	Muted          color.Color
	Accent         color.Color
	Danger         color.Color
	Border         color.Color
	BorderActive   color.Color
	TitleBar       color.Color
	TitleBarActive color.Color
	Window         color.Color
	Panel          color.Color
	Taskbar        color.Color
	TaskbarText    color.Color
	Highlight      color.Color
}

func builtinDark() Palette {
	return Palette{
		Text:           lipgloss.Color("#e5e5e5"),
		Muted:          lipgloss.Color("#8a8a9a"),
		Accent:         lipgloss.Color("#60a5fa"),
		Danger:         lipgloss.Color("#ef4444"),
		Border:         lipgloss.Color("#3f3f50"),
		BorderActive:   lipgloss.Color("#60a5fa"),
		TitleBar:       lipgloss.Color("#25253a"),
		TitleBarActive: lipgloss.Color("#2f2f4a"),
		Window:         lipgloss.Color("#1c1c28"),
		Panel:          lipgloss.Color("#202030"),
		Taskbar:        lipgloss.Color("#14141f"),
		TaskbarText:    lipgloss.Color("#e5e5e5"),
		Highlight:      lipgloss.Color("#334155"),
	}
}

func builtinLight() Palette {
	return Palette{
		Text:           lipgloss.Color("#1f2937"),
		Muted:          lipgloss.Color("#6b7280"),
		Accent:         lipgloss.Color("#2563eb"),
		Danger:         lipgloss.Color("#dc2626"),
		Border:         lipgloss.Color("#cbd5e1"),
		BorderActive:   lipgloss.Color("#2563eb"),
		TitleBar:       lipgloss.Color("#e5e7eb"),
		TitleBarActive: lipgloss.Color("#dbeafe"),
		Window:         lipgloss.Color("#f9fafb"),
		Panel:          lipgloss.Color("#f3f4f6"),
		Taskbar:        lipgloss.Color("#e2e8f0"),
		TaskbarText:    lipgloss.Color("#111827"),
		Highlight:      lipgloss.Color("#bfdbfe"),
	}
}

// fromTint maps a bubbletint tint onto the desktop roles. Missing tint
// colors keep the base palette's value.
func fromTint(t *tint.Tint, base Palette) Palette {
	pick := func(c *tint.Color, fallback color.Color) color.Color {
		if c == nil {
			return fallback
		}
		return c
	}
	return Palette{
		Text:           pick(t.Fg, base.Text),
		Muted:          pick(t.BrightBlack, base.Muted),
		Accent:         pick(t.BrightBlue, base.Accent),
		Danger:         pick(t.Red, base.Danger),
		Border:         pick(t.BrightBlack, base.Border),
		BorderActive:   pick(t.BrightCyan, base.BorderActive),
		TitleBar:       pick(t.Black, base.TitleBar),
		TitleBarActive: pick(t.Blue, base.TitleBarActive),
		Window:         pick(t.Bg, base.Window),
		Panel:          pick(t.Black, base.Panel),
		Taskbar:        pick(t.Black, base.Taskbar),
		TaskbarText:    pick(t.Fg, base.TaskbarText),
		Highlight:      pick(t.Blue, base.Highlight),
	}
}

// Theme holds the resolved light and dark palettes and which one is active.
// Sessions share one resolved Theme through Clone.
type Theme struct {
	DarkID  string
	LightID string
	dark    Palette
	light   Palette
	isDark  bool
}

// Default returns a theme using the built-in palettes.
func Default() *Theme {
	return &Theme{dark: builtinDark(), light: builtinLight(), isDark: true}
}

// Initialize resolves darkID and lightID against the bubbletint registry,
// including custom themes from the themes directory. An empty or unknown id
// keeps the built-in palette for that mode.
func Initialize(darkID, lightID string, logger *log.Logger) *Theme {
	themesDir, err := GetThemesDir()
	if err != nil {
		logger.Debug("no themes directory", "err", err)
	}
	return initialize(darkID, lightID, themesDir, logger)
}

func initialize(darkID, lightID, themesDir string, logger *log.Logger) *Theme {
	t := Default()
	if darkID == "" && lightID == "" {
		return t
	}

	tint.NewDefaultRegistry()

	custom := map[string]*CustomTheme{}
	if themesDir != "" {
		if loaded, err := LoadCustomThemes(themesDir, logger); err != nil {
			logger.Warn("error loading custom themes", "err", err)
		} else if len(loaded) > 0 {
			custom = lo.KeyBy(loaded, func(ct *CustomTheme) string { return ct.ID })
			logger.Debug("loaded custom themes", "themes", lo.Keys(custom))
		}
	}

	if darkID != "" {
		if tt := resolve(darkID); tt != nil {
			t.DarkID, t.dark = tt.ID, custom[tt.ID].apply(fromTint(tt, t.dark))
		} else {
			logger.Warn("unknown theme, using built-in dark palette", "theme", darkID)
		}
	}
	if lightID != "" {
		if tt := resolve(lightID); tt != nil {
			t.LightID, t.light = tt.ID, custom[tt.ID].apply(fromTint(tt, t.light))
		} else {
			logger.Warn("unknown theme, using built-in light palette", "theme", lightID)
		}
	}
	return t
}

func resolve(id string) *tint.Tint {
	if !tint.SetTintID(id) {
		return nil
	}
	return tint.Current()
}

// Clone returns a copy whose mode can change independently.
func (t *Theme) Clone() *Theme {
	dup := *t
	return &dup
}

// SetDark selects the dark or light palette.
func (t *Theme) SetDark(dark bool) {
	t.isDark = dark
}

// IsDark reports whether the dark palette is active.
func (t *Theme) IsDark() bool {
	return t.isDark
}

// Palette returns the active palette.
func (t *Theme) Palette() Palette {
	if t.isDark {
		return t.dark
	}
	return t.light
}

// Text returns the default foreground.
func (t *Theme) Text() color.Color {
	return t.Palette().Text
}

// Muted returns the color for secondary text.
func (t *Theme) Muted() color.Color {
	return t.Palette().Muted
}

// Accent returns the highlight color for selections and the start button.
func (t *Theme) Accent() color.Color {
	return t.Palette().Accent
}

// Desktop returns the window body background.
func (t *Theme) Desktop() color.Color {
	return t.Palette().Window
}

// WindowBorder returns the border color for a window.
func (t *Theme) WindowBorder(active bool) color.Color {
	if active {
		return t.Palette().BorderActive
	}
	return t.Palette().Border
}

// TitleBar returns the title bar background for a window.
func (t *Theme) TitleBar(active bool) color.Color {
	if active {
		return t.Palette().TitleBarActive
	}
	return t.Palette().TitleBar
}

// Taskbar returns the taskbar background and foreground.
func (t *Theme) Taskbar() (bg, fg color.Color) {
	p := t.Palette()
	return p.Taskbar, p.TaskbarText
}

// IDs lists every tint id known to bubbletint, including custom ones.
func IDs(logger *log.Logger) []string {
	tint.NewDefaultRegistry()
	if themesDir, err := GetThemesDir(); err == nil {
		_, _ = LoadCustomThemes(themesDir, logger)
	}
	return tint.TintIDs()
}

// CLITableHeader returns the color for CLI table headers.
func CLITableHeader() color.Color {
	return lipgloss.Color("12")
}

// CLITableBorder returns the color for CLI table borders.
func CLITableBorder() color.Color {
	return lipgloss.Color("14")
}

// CLITableDim returns the dimmed color for CLI table elements.
func CLITableDim() color.Color {
	return lipgloss.Color("8")
}

// ColorToString converts a color.Color to a hex string.
func ColorToString(c color.Color) string {
	if c == nil {
		return "#000000"
	}
	r, g, b, _ := c.RGBA()
	return fmt.Sprintf("#%02x%02x%02x", uint8(r>>8), uint8(g>>8), uint8(b>>8))
}
