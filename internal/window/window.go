// Package window holds the window registry: every open application window,
// its geometry and flags, the active window and the stacking counter.
package window

import (
	"crypto/rand"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/deskos/deskos/internal/layout"
	"github.com/oklog/ulid/v2"
)

// =============================================================================
// Window Defaults
// =============================================================================

const (
	// DefaultWidth is the width of a newly opened window.
	DefaultWidth = 900

	// DefaultHeight is the height of a newly opened window.
	DefaultHeight = 600

	// CascadeOriginX is where the first window opens horizontally.
	CascadeOriginX = 100

	// CascadeOriginY is where the first window opens vertically.
	CascadeOriginY = 50

	// CascadeStep offsets each additional window so they do not overlap exactly.
	CascadeStep = 30

	// IDPrefix starts every window id.
	IDPrefix = "window-"
)

// State is the visible state of a window.
type State int

const (
	// Normal windows are drawn at their own geometry.
	Normal State = iota
	// Minimized windows are hidden and only appear in the taskbar.
	Minimized
	// Maximized windows fill the desktop.
	Maximized
)

func (s State) String() string {
	switch s {
	case Minimized:
		return "minimized"
	case Maximized:
		return "maximized"
	default:
		return "normal"
	}
}

// Window is one open application instance.
type Window struct {
	ID          string
	AppID       string
	Title       string
	Icon        string
	IsMinimized bool
	IsMaximized bool
	ZIndex      int64
	Position    layout.Point
	Size        layout.Size
}

// State reports how the window is drawn. Minimized wins over maximized.
func (w *Window) State() State {
	switch {
	case w.IsMinimized:
		return Minimized
	case w.IsMaximized:
		return Maximized
	default:
		return Normal
	}
}

// Bounds returns the window frame, or the desktop when maximized.
func (w *Window) Bounds(desktop layout.Size) layout.Rect {
	if w.IsMaximized {
		return layout.Rect{Size: desktop}
	}
	return layout.Rect{Point: w.Position, Size: w.Size}
}

// IDGenerator produces window ids.
type IDGenerator func() string

// NewULIDGenerator returns a generator of "window-" prefixed lowercase ULIDs
// drawing entropy from r. Safe for concurrent use.
func NewULIDGenerator(r io.Reader) IDGenerator {
	var mu sync.Mutex
	entropy := ulid.Monotonic(r, 0)
	return func() string {
		mu.Lock()
		defer mu.Unlock()
		id := ulid.MustNew(ulid.Timestamp(time.Now()), entropy)
		return IDPrefix + strings.ToLower(id.String())
	}
}

var defaultGenerator = NewULIDGenerator(rand.Reader)

// NewID returns a fresh window id from the default generator.
func NewID() string {
	return defaultGenerator()
}
