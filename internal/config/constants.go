// Package config provides configuration constants, keybinding management, and user settings.
package config

import (
	"time"

	"charm.land/lipgloss/v2"
)

// =============================================================================
// Window Chrome
// =============================================================================

const (
	// TitleBarRows is the height of a window title bar in cells
	TitleBarRows = 1

	// TitleButtonWidth is the width of one title bar button in cells
	TitleButtonWidth = 3

	// MinWindowCols is the smallest window width that is still drawn
	MinWindowCols = 12

	// MinWindowRows is the smallest window height that is still drawn
	MinWindowRows = 3
)

// =============================================================================
// Timeouts and Intervals
// =============================================================================

const (
	// DefaultDoubleClick is the window for two clicks on one target to count as a double click
	DefaultDoubleClick = 400 * time.Millisecond

	// TrayInterval is the interval between CPU and memory samples
	TrayInterval = 2 * time.Second

	// ClockInterval is the interval between clock redraws
	ClockInterval = time.Second

	// BootTick is the interval between boot screen frames
	BootTick = 120 * time.Millisecond

	// BootFrames is the number of boot frames shown on first run
	BootFrames = 15

	// ShutdownTimeout bounds how long the SSH server waits for sessions on exit
	ShutdownTimeout = 30 * time.Second
)

// =============================================================================
// FPS and Refresh Rates
// =============================================================================

const (
	// NormalFPS caps the renderer frame rate
	NormalFPS = 60
)

// =============================================================================
// Input
// =============================================================================

const (
	// DefaultDragThreshold is the cumulative movement in pixels that turns a press into a drag
	DefaultDragThreshold = 5.0
)

// =============================================================================
// UI Layout Dimensions
// =============================================================================

const (
	// TaskbarRows is the height of the taskbar at the bottom
	TaskbarRows = 1

	// StartMenuCols is the width of the start menu
	StartMenuCols = 34

	// SearchCols is the width of the search panel
	SearchCols = 44

	// SearchRows is the height of the search panel
	SearchRows = 12

	// NotificationCols is the width of the notification center
	NotificationCols = 36

	// MaxTaskbarTitle is the longest window title shown on a taskbar button
	MaxTaskbarTitle = 14

	// IconLabelCols is the width an icon label is truncated to
	IconLabelCols = 9
)

// =============================================================================
// Z-Index Layers
// =============================================================================

const (
	// ZIndexWallpaper is the desktop background
	ZIndexWallpaper = 0

	// ZIndexIcons is where desktop icons are drawn
	ZIndexIcons = 10

	// ZIndexWindows is the base for windows; each window adds its paint order
	ZIndexWindows = 100

	// ZIndexDragGhost is the icon preview while dragging
	ZIndexDragGhost = 900

	// ZIndexOverlay is the start menu, search and notification center
	ZIndexOverlay = 1000

	// ZIndexTaskbar keeps the taskbar above everything on the desktop
	ZIndexTaskbar = 1001

	// ZIndexBoot covers the whole screen during boot
	ZIndexBoot = 2000
)

// =============================================================================
// SSH Defaults
// =============================================================================

const (
	DefaultSSHHost = "localhost"
	DefaultSSHPort = "2222"
)

// =============================================================================
// Glyphs
// =============================================================================

// Glyphs are the characters used for window and taskbar chrome.
type Glyphs struct {
	Close    string
	Minimize string
	Maximize string
	Restore  string
	Start    string
	Search   string
	Bell     string
	Power    string
	Moon     string
	Sun      string
	Cursor   string
	Selected string
}

var unicodeGlyphs = Glyphs{
	Close:    " ✕ ",
	Minimize: " ─ ",
	Maximize: " □ ",
	Restore:  " ❐ ",
	Start:    " ⊞ ",
	Search:   " ⌕ ",
	Bell:     " 🔔",
	Power:    "⏻",
	Moon:     "☾",
	Sun:      "☀",
	Cursor:   "█",
	Selected: "▸",
}

var asciiGlyphs = Glyphs{
	Close:    "[x]",
	Minimize: "[_]",
	Maximize: "[ ]",
	Restore:  "[=]",
	Start:    "[#]",
	Search:   "[/]",
	Bell:     "[!]",
	Power:    "O",
	Moon:     "D",
	Sun:      "L",
	Cursor:   "_",
	Selected: ">",
}

// GlyphsFor returns the glyph set for the ascii-only setting.
func GlyphsFor(asciiOnly bool) Glyphs {
	if asciiOnly {
		return asciiGlyphs
	}
	return unicodeGlyphs
}

// BorderStyles lists the accepted appearance.border_style values.
var BorderStyles = []string{"rounded", "normal", "thick", "double", "hidden", "block", "ascii", "outer-half-block", "inner-half-block"}

// BorderFor returns the lipgloss Border for a style name
func BorderFor(style string, asciiOnly bool) lipgloss.Border {
	if asciiOnly || style == "ascii" {
		return lipgloss.ASCIIBorder()
	}
	switch style {
	case "normal":
		return lipgloss.NormalBorder()
	case "thick":
		return lipgloss.ThickBorder()
	case "double":
		return lipgloss.DoubleBorder()
	case "hidden":
		return lipgloss.HiddenBorder()
	case "block":
		return lipgloss.BlockBorder()
	case "outer-half-block":
		return lipgloss.OuterHalfBlockBorder()
	case "inner-half-block":
		return lipgloss.InnerHalfBlockBorder()
	case "rounded":
		fallthrough
	default:
		return lipgloss.RoundedBorder()
	}
}
