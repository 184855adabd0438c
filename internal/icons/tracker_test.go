package icons

import (
	"testing"

	"github.com/deskos/deskos/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIsOccupied(t *testing.T) {
	tr := NewTracker(map[string]layout.Point{
		"notepad": layout.Pt(0, 0),
	})

	tests := []struct {
		name    string
		at      layout.Point
		exclude string
		want    bool
	}{
		{"same spot", layout.Pt(0, 0), "", true},
		{"within min distance", layout.Pt(30, 30), "", true},
		{"exactly min distance is free", layout.Pt(45, 0), "", false},
		{"neighbour cell", layout.Pt(90, 0), "", false},
		{"excluded icon ignored", layout.Pt(0, 0), "notepad", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tr.IsOccupied(tt.at, tt.exclude))
		})
	}
}

func TestFindNearestAvailableFreeTarget(t *testing.T) {
	tr := NewTracker(nil)

	assert.Equal(t, layout.Pt(180, 200), tr.FindNearestAvailable(layout.Pt(170, 230), "x"))
}

func TestFindNearestAvailableSkipsOccupiedOrigin(t *testing.T) {
	tr := NewTracker(map[string]layout.Point{
		"icon1": layout.Pt(0, 10),
		"icon2": layout.Pt(0, 0),
	})

	got := tr.FindNearestAvailable(layout.Pt(0, 0), "icon1")

	assert.NotEqual(t, layout.Pt(0, 0), got)
	assert.Contains(t, []layout.Point{layout.Pt(90, 0), layout.Pt(0, 100)}, got)
	assert.Equal(t, layout.Pt(0, 100), got, "dx outer, dy inner ordering")
}

func TestFindNearestAvailableReturnsNonNegativeCells(t *testing.T) {
	tr := NewTracker(map[string]layout.Point{
		"a": layout.Pt(0, 0),
		"b": layout.Pt(0, 100),
		"c": layout.Pt(90, 0),
	})

	got := tr.FindNearestAvailable(layout.Pt(10, 10), "dragged")

	assert.Equal(t, layout.Pt(90, 100), got)
}

func TestFindNearestAvailableFallsBackWhenFull(t *testing.T) {
	positions := make(map[string]layout.Point)
	for col := range 12 {
		for row := range 12 {
			positions[string(rune('a'+col))+string(rune('a'+row))] = layout.Pt(col*layout.IconWidth, row*layout.IconHeight)
		}
	}
	tr := NewTracker(positions)

	got := tr.FindNearestAvailable(layout.Pt(0, 0), "dragged")

	assert.Equal(t, layout.Pt(0, 0), got)
}

func TestFindNearestAvailableTerminatesForFarTargets(t *testing.T) {
	tr := NewTracker(map[string]layout.Point{"a": layout.Pt(9000, 9000)})

	for _, target := range []layout.Point{
		layout.Pt(-100000, -100000),
		layout.Pt(1<<30, 1<<30),
		layout.Pt(9000, 9000),
	} {
		got := tr.FindNearestAvailable(target, "b")
		assert.GreaterOrEqual(t, got.X, 0)
		assert.GreaterOrEqual(t, got.Y, 0)
	}
}

func TestPositionForAndUpdate(t *testing.T) {
	tr := NewTracker(nil)

	assert.Equal(t, layout.Pt(10, 110), tr.PositionFor("terminal", 1, 500))

	tr.Update("terminal", layout.Pt(400, 300))
	assert.Equal(t, layout.Pt(400, 300), tr.PositionFor("terminal", 1, 500))

	tr.Update("other", layout.Pt(400, 300))
	assert.True(t, tr.IsOccupied(layout.Pt(400, 300), "terminal"), "update does not resolve collisions")

	tr.Remove("other")
	_, ok := tr.Position("other")
	assert.False(t, ok)
}

func TestSeedDefaults(t *testing.T) {
	tr := NewTracker(map[string]layout.Point{"vscode": layout.Pt(450, 200)})

	n := tr.SeedDefaults([]string{"explorer", "vscode", "notepad"}, 500)

	assert.Equal(t, 2, n)
	p, ok := tr.Position("explorer")
	require.True(t, ok)
	assert.Equal(t, layout.DefaultIconPosition(0, 500), p)
	p, _ = tr.Position("notepad")
	assert.Equal(t, layout.DefaultIconPosition(2, 500), p)
	p, _ = tr.Position("vscode")
	assert.Equal(t, layout.Pt(450, 200), p, "moved icons keep their position")

	assert.True(t, tr.IsOccupied(layout.Pt(0, 0), "notepad"))
	assert.Zero(t, tr.SeedDefaults([]string{"explorer", "vscode", "notepad"}, 900))
}

func TestPositionsIsACopy(t *testing.T) {
	seed := map[string]layout.Point{"a": layout.Pt(1, 2)}
	tr := NewTracker(seed)
	seed["a"] = layout.Pt(9, 9)

	got := tr.Positions()
	got["a"] = layout.Pt(5, 5)

	p, _ := tr.Position("a")
	assert.Equal(t, layout.Pt(1, 2), p)

	tr.Reset()
	require.Equal(t, 0, tr.Len())
}
