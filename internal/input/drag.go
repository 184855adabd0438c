// Package input turns raw pointer and key events into desktop gestures and
// actions.
package input

import (
	"github.com/deskos/deskos/internal/layout"
)

// DragState is the phase of a press-move-release sequence.
type DragState int

const (
	DragIdle DragState = iota
	DragPressed
	DragDragging
)

func (s DragState) String() string {
	switch s {
	case DragPressed:
		return "pressed"
	case DragDragging:
		return "dragging"
	}
	return "idle"
}

// Gesture is what a completed press turned out to be.
type Gesture int

const (
	GestureNone Gesture = iota
	GestureClick
	GestureDrag
)

func (g Gesture) String() string {
	switch g {
	case GestureClick:
		return "click"
	case GestureDrag:
		return "drag"
	}
	return "none"
}

// Drag tracks one pointer press. A press becomes a drag once the summed
// absolute movement exceeds Threshold; until then releasing is a click.
type Drag struct {
	Threshold float64

	state  DragState
	origin layout.Point
	last   layout.Point
	moved  int
}

// NewDrag returns an idle drag with the given threshold in pixels.
func NewDrag(threshold float64) *Drag {
	return &Drag{Threshold: threshold}
}

// Press arms the drag at p, discarding any previous press.
func (d *Drag) Press(p layout.Point) {
	d.state = DragPressed
	d.origin = p
	d.last = p
	d.moved = 0
}

// Move records pointer movement. It returns the movement since the last
// call and whether the press is now a drag. Moves while idle are ignored.
func (d *Drag) Move(p layout.Point) (layout.Point, bool) {
	if d.state == DragIdle {
		return layout.Point{}, false
	}
	delta := p.Sub(d.last)
	d.last = p
	d.moved += abs(delta.X) + abs(delta.Y)
	if d.state == DragPressed && float64(d.moved) > d.Threshold {
		d.state = DragDragging
	}
	return delta, d.state == DragDragging
}

// Release ends the press at p and reports what it was.
func (d *Drag) Release(p layout.Point) Gesture {
	if d.state == DragIdle {
		return GestureNone
	}
	d.Move(p)
	g := GestureClick
	if d.state == DragDragging {
		g = GestureDrag
	}
	d.state = DragIdle
	return g
}

// Cancel drops the press without producing a gesture.
func (d *Drag) Cancel() {
	d.state = DragIdle
	d.moved = 0
}

func (d *Drag) State() DragState     { return d.state }
func (d *Drag) Active() bool         { return d.state != DragIdle }
func (d *Drag) Dragging() bool       { return d.state == DragDragging }
func (d *Drag) Origin() layout.Point { return d.origin }

// Offset is the pointer position relative to where the press started.
func (d *Drag) Offset() layout.Point {
	return d.last.Sub(d.origin)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
