// Package desktop is the Bubble Tea model that draws a session store as a
// desktop: wallpaper, icons, windows, overlays and the taskbar. It turns
// mouse and keyboard input into store intents and never mutates session
// state on its own.
package desktop

import (
	"time"

	"charm.land/lipgloss/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/input"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/session"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/internal/tray"
	"github.com/deskos/deskos/internal/window"
)

// Options configures a Model. Zero values fall back to defaults.
type Options struct {
	Config  *config.UserConfig
	Theme   *theme.Theme
	Logger  *log.Logger
	Sampler tray.Sampler
	Profile colorprofile.Profile
	Now     func() time.Time
}

// targetKind is what a pointer press landed on.
type targetKind int

const (
	targetNone targetKind = iota
	targetIcon
	targetTitleBar
)

// dragTarget is the object an armed drag moves.
type dragTarget struct {
	kind   targetKind
	id     string
	origin layout.Point
}

// Model is the desktop of one session.
type Model struct {
	store  *session.Store
	theme  *theme.Theme
	logger *log.Logger

	keys        input.KeyMap
	glyphs      config.Glyphs
	border      lipgloss.Border
	ascii       bool
	clockFormat string

	drag   *input.Drag
	target dragTarget
	ghost  *layout.Point
	clicks *input.ClickCounter

	selectedIcon string

	width, height int
	profile       colorprofile.Profile

	views  map[string]content.View
	scroll map[string]int

	sampler tray.Sampler
	cpu     tray.History
	reading tray.Reading
	trayErr error

	booting   bool
	bootFrame int

	now         func() time.Time
	unsubscribe func()
}

// New builds a desktop over store.
func New(store *session.Store, opts Options) *Model {
	cfg := opts.Config
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	th := opts.Theme
	if th == nil {
		th = theme.Default()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	sampler := opts.Sampler
	if sampler == nil {
		sampler = tray.System
	}
	now := opts.Now
	if now == nil {
		now = time.Now
	}
	profile := opts.Profile
	if profile == colorprofile.NoTTY {
		profile = colorprofile.TrueColor
	}

	m := &Model{
		store:       store,
		theme:       th.Clone(),
		logger:      logger.WithPrefix("desktop").With("session", store.ID()[:8]),
		keys:        input.NewKeyMap(cfg.Keybindings),
		glyphs:      config.GlyphsFor(cfg.Appearance.ASCIIOnly),
		border:      config.BorderFor(cfg.Appearance.BorderStyle, cfg.Appearance.ASCIIOnly),
		ascii:       cfg.Appearance.ASCIIOnly,
		clockFormat: cfg.Appearance.ClockFormat,
		drag:        input.NewDrag(cfg.Input.DragThreshold),
		clicks:      input.NewClickCounter(time.Duration(cfg.Input.DoubleClickMS) * time.Millisecond),
		profile:     profile,
		views:       make(map[string]content.View),
		scroll:      make(map[string]int),
		sampler:     sampler,
		booting:     !store.HasBooted(),
		now:         now,
	}
	m.theme.SetDark(store.IsDarkMode())
	m.unsubscribe = store.Subscribe(m.onStoreEvent)
	return m
}

// Store returns the session the model draws.
func (m *Model) Store() *session.Store {
	return m.store
}

// Close detaches the model from its store.
func (m *Model) Close() {
	if m.unsubscribe != nil {
		m.unsubscribe()
		m.unsubscribe = nil
	}
}

// Booting reports whether the boot screen is showing.
func (m *Model) Booting() bool {
	return m.booting
}

// Dragging reports whether a pointer press is armed. Motion events only
// matter while it is.
func (m *Model) Dragging() bool {
	return m.drag.Active()
}

func (m *Model) onStoreEvent(e session.Event) {
	switch e.Kind {
	case session.EventTheme:
		m.theme.SetDark(m.store.IsDarkMode())
	case session.EventWindows:
		if _, ok := m.store.Window(e.WindowID); !ok {
			delete(m.views, e.WindowID)
			delete(m.scroll, e.WindowID)
		}
	}
}

// view returns the app content for a window, creating it on first use.
func (m *Model) view(w window.Window) content.View {
	v, ok := m.views[w.ID]
	if !ok {
		v = content.New(w.AppID)
		m.views[w.ID] = v
	}
	return v
}

func (m *Model) env() content.Env {
	return content.Env{
		DarkMode:  m.store.IsDarkMode(),
		Wallpaper: m.store.Wallpaper(),
		ASCIIOnly: m.ascii,
	}
}

// =============================================================================
// Screen Geometry
// =============================================================================

// desktopRows is the number of rows above the taskbar.
func (m *Model) desktopRows() int {
	return max(0, m.height-config.TaskbarRows)
}

// desktopSize is the desktop area in logical pixels.
func (m *Model) desktopSize() layout.Size {
	return layout.Size{
		Width:  m.width * layout.CellWidthPx,
		Height: m.desktopRows() * layout.CellHeightPx,
	}
}

// cellRect is a rectangle in terminal cells.
type cellRect struct {
	x, y, w, h int
}

func (r cellRect) contains(x, y int) bool {
	return x >= r.x && x < r.x+r.w && y >= r.y && y < r.y+r.h
}

// windowRect maps a window's bounds to cells.
func (m *Model) windowRect(w window.Window) cellRect {
	b := w.Bounds(m.desktopSize())
	col, row := layout.PixelsToCells(b.Point)
	cols, rows := layout.SizeToCells(b.Size)
	return cellRect{col, row, max(cols, config.MinWindowCols), max(rows, config.MinWindowRows)}
}

// iconRect maps the icon at index to cells.
func (m *Model) iconRect(id string, index int) cellRect {
	return m.iconRectAt(m.store.IconPosition(id, index, m.desktopSize().Height))
}

func (m *Model) iconRectAt(p layout.Point) cellRect {
	col, row := layout.PixelsToCells(p)
	cols, rows := layout.SizeToCells(layout.Size{Width: layout.IconWidth, Height: layout.IconHeight})
	return cellRect{col, row, cols, rows}
}

// pointAt converts a cell to the logical pixel at its center.
func pointAt(x, y int) layout.Point {
	return layout.CellsToPixels(x, y).Add(layout.Pt(layout.CellWidthPx/2, layout.CellHeightPx/2))
}
