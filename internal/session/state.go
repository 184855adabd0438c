// Package session is the single owner of a desktop session: the window
// registry, the icon tracker, overlay flags and theme selection. UI code
// reads snapshots and sends intents; only the Store mutates.
package session

import (
	"maps"

	"github.com/deskos/deskos/internal/layout"
)

// DefaultWallpaper is used when nothing has been chosen yet.
const DefaultWallpaper = "default"

// PersistedState is the part of a session that survives a restart.
type PersistedState struct {
	IsDarkMode       bool                    `json:"isDarkMode"`
	CurrentWallpaper string                  `json:"currentWallpaper"`
	HasBooted        bool                    `json:"hasBooted"`
	IconPositions    map[string]layout.Point `json:"iconPositions"`
}

// DefaultPersistedState returns the state of a first run: light theme,
// the default wallpaper, no boot yet and every icon in its default slot.
func DefaultPersistedState() PersistedState {
	return PersistedState{
		IsDarkMode:       false,
		CurrentWallpaper: DefaultWallpaper,
		IconPositions:    map[string]layout.Point{},
	}
}

// DefaultsFor returns first-run state with the given theme and wallpaper.
// An empty wallpaper keeps DefaultWallpaper.
func DefaultsFor(dark bool, wallpaper string) PersistedState {
	p := DefaultPersistedState()
	p.IsDarkMode = dark
	if wallpaper != "" {
		p.CurrentWallpaper = wallpaper
	}
	return p
}

func (p PersistedState) clone() PersistedState {
	p.IconPositions = maps.Clone(p.IconPositions)
	if p.IconPositions == nil {
		p.IconPositions = map[string]layout.Point{}
	}
	return p
}

// TransientState is the part of a session that starts fresh every run. The
// window list, active window and stacking counter live in the registry.
type TransientState struct {
	IsStartMenuOpen          bool
	IsNotificationCenterOpen bool
	IsSearchOpen             bool
	SearchQuery              string
}

// Overlay names the open overlay, if any.
type Overlay int

const (
	OverlayNone Overlay = iota
	OverlayStartMenu
	OverlayNotificationCenter
	OverlaySearch
)

func (o Overlay) String() string {
	switch o {
	case OverlayStartMenu:
		return "start-menu"
	case OverlayNotificationCenter:
		return "notification-center"
	case OverlaySearch:
		return "search"
	default:
		return "none"
	}
}

// Overlay reports which overlay is open. At most one flag is ever set.
func (t TransientState) Overlay() Overlay {
	switch {
	case t.IsStartMenuOpen:
		return OverlayStartMenu
	case t.IsNotificationCenterOpen:
		return OverlayNotificationCenter
	case t.IsSearchOpen:
		return OverlaySearch
	default:
		return OverlayNone
	}
}

// EventKind classifies a store mutation for subscribers.
type EventKind int

const (
	EventWindows EventKind = iota
	EventOverlay
	EventTheme
	EventIcons
	EventBoot
)

func (k EventKind) String() string {
	switch k {
	case EventWindows:
		return "windows"
	case EventOverlay:
		return "overlay"
	case EventTheme:
		return "theme"
	case EventIcons:
		return "icons"
	case EventBoot:
		return "boot"
	default:
		return "unknown"
	}
}

// Event is delivered to subscribers after every mutation.
type Event struct {
	Kind     EventKind
	WindowID string
}
