package window

import (
	"cmp"
	"slices"

	"github.com/deskos/deskos/internal/layout"
	"github.com/samber/lo"
)

// Registry is the authoritative list of open windows. Windows keep their
// insertion order; paint order comes from ZIndex. Every operation that
// raises a window takes the next value of a counter that only grows, so
// raising never renumbers other windows.
//
// Operations on unknown ids are no-ops. A Registry is not safe for
// concurrent use.
type Registry struct {
	windows    []*Window
	activeID   string
	nextZIndex int64
	newID      IDGenerator
}

// NewRegistry creates an empty registry. A nil generator uses NewID.
func NewRegistry(newID IDGenerator) *Registry {
	if newID == nil {
		newID = NewID
	}
	return &Registry{nextZIndex: 1, newID: newID}
}

// Open focuses the window already hosting appID, restoring it if it was
// minimized, or creates a new cascaded window for it. The second result is
// true when a window was created.
func (r *Registry) Open(appID, title, icon string) (*Window, bool) {
	if existing := r.FindByApp(appID); existing != nil {
		if existing.IsMinimized {
			existing.IsMinimized = false
			existing.ZIndex = r.takeZIndex()
			r.activeID = existing.ID
		} else {
			r.Focus(existing.ID)
		}
		return existing, false
	}

	offset := len(r.windows) * CascadeStep
	w := &Window{
		ID:       r.newID(),
		AppID:    appID,
		Title:    title,
		Icon:     icon,
		ZIndex:   r.takeZIndex(),
		Position: layout.Pt(CascadeOriginX+offset, CascadeOriginY+offset),
		Size:     layout.Size{Width: DefaultWidth, Height: DefaultHeight},
	}
	r.windows = append(r.windows, w)
	r.activeID = w.ID
	return w, true
}

// Close removes the window. When it was active, the highest remaining
// visible window becomes active.
func (r *Registry) Close(id string) bool {
	idx := slices.IndexFunc(r.windows, func(w *Window) bool { return w.ID == id })
	if idx < 0 {
		return false
	}
	r.windows = slices.Delete(r.windows, idx, idx+1)
	if r.activeID == id {
		r.activeID = r.topVisibleID()
	}
	return true
}

// Minimize hides the window. When it was active, the highest remaining
// visible window becomes active.
func (r *Registry) Minimize(id string) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.IsMinimized = true
	if r.activeID == id {
		r.activeID = r.topVisibleID()
	}
	return true
}

// Maximize sets the maximized flag and keeps the geometry for Restore.
func (r *Registry) Maximize(id string) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.IsMaximized = true
	return true
}

// ToggleMaximize maximizes a normal window and restores a maximized one.
func (r *Registry) ToggleMaximize(id string) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	if w.IsMaximized {
		return r.Restore(id)
	}
	return r.Maximize(id)
}

// Restore clears both the minimized and maximized flags.
func (r *Registry) Restore(id string) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.IsMinimized = false
	w.IsMaximized = false
	return true
}

// Focus raises the window above every other, un-minimizes it and makes it
// active. Focusing the active window still raises it.
func (r *Registry) Focus(id string) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.ZIndex = r.takeZIndex()
	w.IsMinimized = false
	r.activeID = id
	return true
}

// UpdatePosition moves the window without touching focus or order.
func (r *Registry) UpdatePosition(id string, p layout.Point) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.Position = p
	return true
}

// UpdateSize resizes the window without touching focus or order.
func (r *Registry) UpdateSize(id string, s layout.Size) bool {
	w := r.Get(id)
	if w == nil {
		return false
	}
	w.Size = s
	return true
}

// Get returns the live window record, or nil.
func (r *Registry) Get(id string) *Window {
	w, _ := lo.Find(r.windows, func(w *Window) bool { return w.ID == id })
	return w
}

// FindByApp returns the window hosting appID, or nil.
func (r *Registry) FindByApp(appID string) *Window {
	w, _ := lo.Find(r.windows, func(w *Window) bool { return w.AppID == appID })
	return w
}

// Len returns the number of open windows.
func (r *Registry) Len() int {
	return len(r.windows)
}

// ActiveID returns the active window id, or "" when none is active.
func (r *Registry) ActiveID() string {
	return r.activeID
}

// NextZIndex returns the value the next raised window will receive.
func (r *Registry) NextZIndex() int64 {
	return r.nextZIndex
}

// Snapshot returns copies of all windows ordered by ZIndex ascending, which
// is paint order.
func (r *Registry) Snapshot() []Window {
	out := lo.Map(r.windows, func(w *Window, _ int) Window { return *w })
	slices.SortFunc(out, func(a, b Window) int { return cmp.Compare(a.ZIndex, b.ZIndex) })
	return out
}

// Ordered returns copies of all windows in the order they were opened.
func (r *Registry) Ordered() []Window {
	return lo.Map(r.windows, func(w *Window, _ int) Window { return *w })
}

// TopmostAt returns the highest visible window whose frame contains p.
// Maximized windows cover the whole desktop.
func (r *Registry) TopmostAt(p layout.Point, desktop layout.Size) *Window {
	hits := lo.Filter(r.windows, func(w *Window, _ int) bool {
		return !w.IsMinimized && w.Bounds(desktop).Contains(p)
	})
	if len(hits) == 0 {
		return nil
	}
	return lo.MaxBy(hits, func(a, b *Window) bool { return a.ZIndex > b.ZIndex })
}

func (r *Registry) takeZIndex() int64 {
	z := r.nextZIndex
	r.nextZIndex++
	return z
}

func (r *Registry) topVisibleID() string {
	visible := lo.Filter(r.windows, func(w *Window, _ int) bool { return !w.IsMinimized })
	if len(visible) == 0 {
		return ""
	}
	return lo.MaxBy(visible, func(a, b *Window) bool { return a.ZIndex > b.ZIndex }).ID
}
