package input

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/deskos/deskos/internal/layout"
)

func TestDragGestures(t *testing.T) {
	tests := []struct {
		name  string
		moves []layout.Point
		up    layout.Point
		want  Gesture
	}{
		{"release in place", nil, layout.Pt(100, 100), GestureClick},
		{"jitter under threshold", []layout.Point{layout.Pt(101, 100), layout.Pt(101, 101)}, layout.Pt(100, 100), GestureClick},
		{"exactly at threshold", []layout.Point{layout.Pt(103, 102)}, layout.Pt(103, 102), GestureClick},
		{"cumulative movement counts", []layout.Point{layout.Pt(103, 100), layout.Pt(100, 100)}, layout.Pt(100, 100), GestureDrag},
		{"long move", []layout.Point{layout.Pt(150, 180)}, layout.Pt(150, 180), GestureDrag},
		{"release far away", nil, layout.Pt(130, 100), GestureDrag},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := NewDrag(5)
			d.Press(layout.Pt(100, 100))
			assert.Equal(t, DragPressed, d.State())
			for _, p := range tt.moves {
				d.Move(p)
			}
			assert.Equal(t, tt.want, d.Release(tt.up))
			assert.Equal(t, DragIdle, d.State())
		})
	}
}

func TestDragMoveReportsDelta(t *testing.T) {
	d := NewDrag(5)

	delta, dragging := d.Move(layout.Pt(10, 10))
	assert.Equal(t, layout.Point{}, delta, "idle moves are ignored")
	assert.False(t, dragging)

	d.Press(layout.Pt(0, 0))
	delta, dragging = d.Move(layout.Pt(2, 1))
	assert.Equal(t, layout.Pt(2, 1), delta)
	assert.False(t, dragging)

	delta, dragging = d.Move(layout.Pt(8, 1))
	assert.Equal(t, layout.Pt(6, 0), delta)
	assert.True(t, dragging)
	assert.True(t, d.Dragging())
	assert.Equal(t, layout.Pt(8, 1), d.Offset())
	assert.Equal(t, layout.Pt(0, 0), d.Origin())

	// Once dragging, moving back does not revert to a click.
	d.Move(layout.Pt(0, 0))
	assert.Equal(t, GestureDrag, d.Release(layout.Pt(0, 0)))
}

func TestDragCancelAndIdleRelease(t *testing.T) {
	d := NewDrag(5)
	assert.Equal(t, GestureNone, d.Release(layout.Pt(1, 1)))

	d.Press(layout.Pt(0, 0))
	d.Move(layout.Pt(50, 0))
	d.Cancel()
	assert.False(t, d.Active())
	assert.Equal(t, GestureNone, d.Release(layout.Pt(50, 0)))

	d.Press(layout.Pt(0, 0))
	assert.Equal(t, GestureClick, d.Release(layout.Pt(0, 0)), "press after cancel starts fresh")
}

func TestStateStrings(t *testing.T) {
	assert.Equal(t, "idle", DragIdle.String())
	assert.Equal(t, "dragging", DragDragging.String())
	assert.Equal(t, "click", GestureClick.String())
	assert.Equal(t, "none", GestureNone.String())
}
