package session

import (
	"context"
	"errors"
	"time"

	"charm.land/log/v2"
	"github.com/deskos/deskos/internal/icons"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/storage"
	"github.com/deskos/deskos/internal/window"
	"github.com/google/uuid"
)

// persistTimeout bounds a single write of the persisted record.
const persistTimeout = 2 * time.Second

// Store owns one desktop session. It is built once at startup, seeded from
// storage, and handed to whatever renders the session.
//
// No method returns an error: unknown ids are ignored and storage failures
// are logged. A Store is not safe for concurrent use.
type Store struct {
	id        string
	persisted PersistedState
	transient TransientState
	windows   *window.Registry
	icons     *icons.Tracker
	storage   storage.Storage
	logger    *log.Logger

	listeners  map[int]func(Event)
	listenerID int
}

// Option configures a Store.
type Option func(*options)

type options struct {
	storage  storage.Storage
	logger   *log.Logger
	defaults *PersistedState
	newID    window.IDGenerator
}

// WithStorage sets where persisted state is loaded from and saved to.
// Without it the session lives in memory only.
func WithStorage(s storage.Storage) Option {
	return func(o *options) { o.storage = s }
}

// WithLogger sets the logger. Without it nothing is logged.
func WithLogger(l *log.Logger) Option {
	return func(o *options) { o.logger = l }
}

// WithDefaults sets the persisted state used when storage holds nothing.
func WithDefaults(p PersistedState) Option {
	return func(o *options) { o.defaults = &p }
}

// WithIDGenerator replaces the window id generator.
func WithIDGenerator(g window.IDGenerator) Option {
	return func(o *options) { o.newID = g }
}

// New builds a store and loads persisted state once.
func New(opts ...Option) *Store {
	o := options{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.storage == nil {
		o.storage = storage.NewMemoryStorage(nil)
	}
	if o.logger == nil {
		o.logger = logging.Discard()
	}

	defaults := DefaultPersistedState()
	if o.defaults != nil {
		defaults = o.defaults.clone()
	}

	s := &Store{
		id:        uuid.NewString(),
		windows:   window.NewRegistry(o.newID),
		storage:   o.storage,
		listeners: make(map[int]func(Event)),
	}
	s.logger = o.logger.WithPrefix("session").With("session", s.id[:8])
	s.persisted = s.load(defaults)
	s.icons = icons.NewTracker(s.persisted.IconPositions)
	s.persisted.IconPositions = nil
	return s
}

func (s *Store) load(defaults PersistedState) PersistedState {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := s.storage.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		s.logger.Debug("no persisted state, using defaults", "path", s.storage.Path())
		return defaults
	}
	if err != nil {
		s.logger.Warn("failed to load persisted state", "path", s.storage.Path(), "err", err)
		return defaults
	}

	loaded := defaults.clone()
	if err := storage.Decode(data, &loaded); err != nil {
		s.logger.Warn("ignoring unreadable persisted state", "path", s.storage.Path(), "err", err)
		return defaults
	}
	if loaded.CurrentWallpaper == "" {
		loaded.CurrentWallpaper = defaults.CurrentWallpaper
	}
	s.logger.Debug("loaded persisted state",
		"dark", loaded.IsDarkMode, "wallpaper", loaded.CurrentWallpaper, "icons", len(loaded.IconPositions))
	return loaded.clone()
}

func (s *Store) persist() {
	ctx, cancel := context.WithTimeout(context.Background(), persistTimeout)
	defer cancel()

	data, err := storage.Encode(s.Persisted())
	if err != nil {
		s.logger.Error("failed to encode persisted state", "err", err)
		return
	}
	if err := s.storage.Save(ctx, data); err != nil {
		s.logger.Warn("failed to save persisted state", "path", s.storage.Path(), "err", err)
	}
}

// ID identifies this session in logs.
func (s *Store) ID() string {
	return s.id
}

// Subscribe registers fn to run after every mutation. The returned func
// removes it.
func (s *Store) Subscribe(fn func(Event)) (unsubscribe func()) {
	id := s.listenerID
	s.listenerID++
	s.listeners[id] = fn
	return func() { delete(s.listeners, id) }
}

func (s *Store) emit(kind EventKind, windowID string) {
	ev := Event{Kind: kind, WindowID: windowID}
	for _, fn := range s.listeners {
		fn(ev)
	}
}

// =============================================================================
// Windows
// =============================================================================

// OpenWindow focuses the window already hosting appID or opens a new one.
// Opening a new window closes the start menu.
func (s *Store) OpenWindow(appID, title, icon string) string {
	w, created := s.windows.Open(appID, title, icon)
	if created {
		s.transient.IsStartMenuOpen = false
		s.logger.Info("window opened", "app", appID, "id", w.ID, "z", w.ZIndex)
	} else {
		s.logger.Debug("window refocused", "app", appID, "id", w.ID, "z", w.ZIndex)
	}
	s.emit(EventWindows, w.ID)
	return w.ID
}

// CloseWindow removes the window.
func (s *Store) CloseWindow(id string) {
	if !s.windows.Close(id) {
		return
	}
	s.logger.Info("window closed", "id", id, "active", s.windows.ActiveID())
	s.emit(EventWindows, id)
}

// MinimizeWindow hides the window in the taskbar.
func (s *Store) MinimizeWindow(id string) {
	if s.windows.Minimize(id) {
		s.emit(EventWindows, id)
	}
}

// MaximizeWindow makes the window fill the desktop.
func (s *Store) MaximizeWindow(id string) {
	if s.windows.Maximize(id) {
		s.emit(EventWindows, id)
	}
}

// ToggleMaximizeWindow maximizes or restores the window.
func (s *Store) ToggleMaximizeWindow(id string) {
	if s.windows.ToggleMaximize(id) {
		s.emit(EventWindows, id)
	}
}

// RestoreWindow clears the minimized and maximized flags.
func (s *Store) RestoreWindow(id string) {
	if s.windows.Restore(id) {
		s.emit(EventWindows, id)
	}
}

// FocusWindow raises the window and makes it active.
func (s *Store) FocusWindow(id string) {
	if s.windows.Focus(id) {
		s.emit(EventWindows, id)
	}
}

// UpdateWindowPosition moves the window.
func (s *Store) UpdateWindowPosition(id string, p layout.Point) {
	if s.windows.UpdatePosition(id, p) {
		s.emit(EventWindows, id)
	}
}

// UpdateWindowSize resizes the window.
func (s *Store) UpdateWindowSize(id string, size layout.Size) {
	if s.windows.UpdateSize(id, size) {
		s.emit(EventWindows, id)
	}
}

// ActivateFromTaskbar handles a click on a taskbar button: a minimized or
// background window is brought forward, the active one is minimized.
func (s *Store) ActivateFromTaskbar(id string) {
	w := s.windows.Get(id)
	if w == nil {
		return
	}
	if w.IsMinimized || s.windows.ActiveID() != id {
		s.FocusWindow(id)
		return
	}
	s.MinimizeWindow(id)
}

// Windows returns copies of every window in paint order.
func (s *Store) Windows() []window.Window {
	return s.windows.Snapshot()
}

// OpenOrder returns copies of every window in the order they were opened,
// which is taskbar order.
func (s *Store) OpenOrder() []window.Window {
	return s.windows.Ordered()
}

// Window returns a copy of the window with id.
func (s *Store) Window(id string) (window.Window, bool) {
	w := s.windows.Get(id)
	if w == nil {
		return window.Window{}, false
	}
	return *w, true
}

// WindowAt returns the topmost visible window containing p.
func (s *Store) WindowAt(p layout.Point, desktop layout.Size) (window.Window, bool) {
	w := s.windows.TopmostAt(p, desktop)
	if w == nil {
		return window.Window{}, false
	}
	return *w, true
}

// ActiveWindowID returns the active window id, or "" when none is.
func (s *Store) ActiveWindowID() string {
	return s.windows.ActiveID()
}

// NextZIndex returns the next stacking value.
func (s *Store) NextZIndex() int64 {
	return s.windows.NextZIndex()
}

// =============================================================================
// Overlays
// =============================================================================

// ToggleStartMenu opens or closes the start menu, closing the other overlays.
func (s *Store) ToggleStartMenu() {
	s.setOverlay(OverlayStartMenu, !s.transient.IsStartMenuOpen)
}

// CloseStartMenu closes the start menu.
func (s *Store) CloseStartMenu() {
	if s.transient.IsStartMenuOpen {
		s.setOverlay(OverlayStartMenu, false)
	}
}

// ToggleNotificationCenter opens or closes the notification center, closing
// the other overlays.
func (s *Store) ToggleNotificationCenter() {
	s.setOverlay(OverlayNotificationCenter, !s.transient.IsNotificationCenterOpen)
}

// CloseNotificationCenter closes the notification center.
func (s *Store) CloseNotificationCenter() {
	if s.transient.IsNotificationCenterOpen {
		s.setOverlay(OverlayNotificationCenter, false)
	}
}

// ToggleSearch opens or closes search, closing the other overlays.
func (s *Store) ToggleSearch() {
	s.setOverlay(OverlaySearch, !s.transient.IsSearchOpen)
}

// CloseSearch closes search.
func (s *Store) CloseSearch() {
	if s.transient.IsSearchOpen {
		s.setOverlay(OverlaySearch, false)
	}
}

// CloseOverlays closes whichever overlay is open.
func (s *Store) CloseOverlays() {
	if s.transient.Overlay() == OverlayNone {
		return
	}
	s.setOverlay(OverlayNone, false)
}

// SetSearchQuery replaces the search text.
func (s *Store) SetSearchQuery(q string) {
	s.transient.SearchQuery = q
	s.emit(EventOverlay, "")
}

// Overlay reports the open overlay.
func (s *Store) Overlay() Overlay {
	return s.transient.Overlay()
}

func (s *Store) setOverlay(which Overlay, open bool) {
	s.transient.IsStartMenuOpen = open && which == OverlayStartMenu
	s.transient.IsNotificationCenterOpen = open && which == OverlayNotificationCenter
	s.transient.IsSearchOpen = open && which == OverlaySearch
	if !s.transient.IsSearchOpen {
		s.transient.SearchQuery = ""
	}
	s.emit(EventOverlay, "")
}

// Transient returns a copy of the transient flags.
func (s *Store) Transient() TransientState {
	return s.transient
}

// =============================================================================
// Theme and Boot
// =============================================================================

// ToggleDarkMode flips between the light and dark themes.
func (s *Store) ToggleDarkMode() {
	s.SetDarkMode(!s.persisted.IsDarkMode)
}

// SetDarkMode selects the dark or light theme.
func (s *Store) SetDarkMode(dark bool) {
	s.persisted.IsDarkMode = dark
	s.logger.Debug("theme changed", "dark", dark)
	s.persist()
	s.emit(EventTheme, "")
}

// IsDarkMode reports whether the dark theme is selected.
func (s *Store) IsDarkMode() bool {
	return s.persisted.IsDarkMode
}

// SetWallpaper stores any wallpaper id. Unknown ids are kept as given and
// resolved to the default when drawn.
func (s *Store) SetWallpaper(id string) {
	s.persisted.CurrentWallpaper = id
	s.logger.Debug("wallpaper changed", "wallpaper", id)
	s.persist()
	s.emit(EventTheme, "")
}

// Wallpaper returns the stored wallpaper id.
func (s *Store) Wallpaper() string {
	return s.persisted.CurrentWallpaper
}

// SetHasBooted records that the boot sequence has been shown.
func (s *Store) SetHasBooted(booted bool) {
	s.persisted.HasBooted = booted
	s.persist()
	s.emit(EventBoot, "")
}

// HasBooted reports whether the boot sequence has already been shown.
func (s *Store) HasBooted() bool {
	return s.persisted.HasBooted
}

// =============================================================================
// Icons
// =============================================================================

// IconPosition returns where the icon at index is drawn: its stored
// position, or its default slot for the current desktop height.
func (s *Store) IconPosition(id string, index, containerHeight int) layout.Point {
	return s.icons.PositionFor(id, index, containerHeight)
}

// IsIconSpotOccupied reports whether an icon other than excludeID sits at p.
func (s *Store) IsIconSpotOccupied(p layout.Point, excludeID string) bool {
	return s.icons.IsOccupied(p, excludeID)
}

// FindNearestIconSpot returns the closest free icon slot to target.
func (s *Store) FindNearestIconSpot(target layout.Point, excludeID string) layout.Point {
	return s.icons.FindNearestAvailable(target, excludeID)
}

// UpdateIconPosition stores p for the icon as given.
func (s *Store) UpdateIconPosition(id string, p layout.Point) {
	s.icons.Update(id, p)
	s.persist()
	s.emit(EventIcons, "")
}

// SeedIconDefaults pins every icon in ids that was never moved to its
// default slot for containerHeight. ids must be in desktop order. Nothing is
// saved until the next icon mutation.
func (s *Store) SeedIconDefaults(ids []string, containerHeight int) {
	if n := s.icons.SeedDefaults(ids, containerHeight); n > 0 {
		s.logger.Debug("seeded icon slots", "count", n, "height", containerHeight)
	}
}

// MoveIcon drops the icon at the nearest free slot to target and returns
// where it landed. Icons never seeded or moved are invisible to the check;
// call SeedIconDefaults first.
func (s *Store) MoveIcon(id string, target layout.Point) layout.Point {
	p := s.icons.FindNearestAvailable(target, id)
	s.UpdateIconPosition(id, p)
	return p
}

// ResetIcons returns every icon to its default slot.
func (s *Store) ResetIcons() {
	s.icons.Reset()
	s.persist()
	s.emit(EventIcons, "")
}

// Persisted returns a copy of the state that survives restarts.
func (s *Store) Persisted() PersistedState {
	p := s.persisted
	p.IconPositions = s.icons.Positions()
	return p
}
