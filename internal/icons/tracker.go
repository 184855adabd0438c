// Package icons tracks where desktop icons sit and keeps dragged icons from
// landing on top of each other.
package icons

import (
	"maps"

	"github.com/deskos/deskos/internal/layout"
)

// Tracker maps icon ids to their top-left corner on the desktop.
type Tracker struct {
	positions map[string]layout.Point
}

// NewTracker returns a tracker seeded with a copy of positions.
func NewTracker(positions map[string]layout.Point) *Tracker {
	t := &Tracker{positions: make(map[string]layout.Point, len(positions))}
	maps.Copy(t.positions, positions)
	return t
}

// DefaultPositionFor returns the grid slot for the icon at index. It is
// recomputed from the container height every time and never cached.
func (t *Tracker) DefaultPositionFor(index, containerHeight int) layout.Point {
	return layout.DefaultIconPosition(index, containerHeight)
}

// Position returns the stored position for id.
func (t *Tracker) Position(id string) (layout.Point, bool) {
	p, ok := t.positions[id]
	return p, ok
}

// PositionFor returns the stored position for id, or its default slot.
func (t *Tracker) PositionFor(id string, index, containerHeight int) layout.Point {
	if p, ok := t.positions[id]; ok {
		return p
	}
	return t.DefaultPositionFor(index, containerHeight)
}

// IsOccupied reports whether any tracked icon other than excludeID has its
// center closer than layout.IconMinDistance to the center of an icon at p.
func (t *Tracker) IsOccupied(p layout.Point, excludeID string) bool {
	center := layout.IconCenter(p)
	for id, other := range t.positions {
		if id == excludeID {
			continue
		}
		if layout.Distance(center, layout.IconCenter(other)) < layout.IconMinDistance {
			return true
		}
	}
	return false
}

// FindNearestAvailable snaps target to the icon grid and returns it when
// free. Otherwise it walks square rings of grid cells around it, radius 1 up
// to layout.IconSearchRadius, and returns the first free cell with
// non-negative coordinates. When every cell is taken the snapped target is
// returned even though it overlaps.
func (t *Tracker) FindNearestAvailable(target layout.Point, excludeID string) layout.Point {
	snapped := layout.SnapToIconGrid(target)
	if !t.IsOccupied(snapped, excludeID) {
		return snapped
	}

	for radius := 1; radius <= layout.IconSearchRadius; radius++ {
		for dx := -radius; dx <= radius; dx++ {
			for dy := -radius; dy <= radius; dy++ {
				if max(abs(dx), abs(dy)) != radius {
					continue
				}
				candidate := layout.Pt(snapped.X+dx*layout.IconWidth, snapped.Y+dy*layout.IconHeight)
				if candidate.X < 0 || candidate.Y < 0 {
					continue
				}
				if !t.IsOccupied(candidate, excludeID) {
					return candidate
				}
			}
		}
	}

	return snapped
}

// SeedDefaults records the default slot of every id in ids that has no
// stored position, so collision checks see icons that were never moved. ids
// must be in desktop order. It returns how many slots were recorded.
func (t *Tracker) SeedDefaults(ids []string, containerHeight int) int {
	n := 0
	for i, id := range ids {
		if _, ok := t.positions[id]; ok {
			continue
		}
		t.positions[id] = t.DefaultPositionFor(i, containerHeight)
		n++
	}
	return n
}

// Update stores p for id without checking for collisions.
func (t *Tracker) Update(id string, p layout.Point) {
	t.positions[id] = p
}

// Remove forgets the stored position for id.
func (t *Tracker) Remove(id string) {
	delete(t.positions, id)
}

// Positions returns a copy of every stored position.
func (t *Tracker) Positions() map[string]layout.Point {
	return maps.Clone(t.positions)
}

// Len returns the number of icons with a stored position.
func (t *Tracker) Len() int {
	return len(t.positions)
}

// Reset forgets every stored position so icons return to their default slots.
func (t *Tracker) Reset() {
	clear(t.positions)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
