package window

import (
	"fmt"
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/deskos/deskos/internal/layout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sequentialIDs() IDGenerator {
	n := 0
	return func() string {
		n++
		return fmt.Sprintf("%s%d", IDPrefix, n)
	}
}

func newTestRegistry() *Registry {
	return NewRegistry(sequentialIDs())
}

func TestOpenCreatesCascadedWindow(t *testing.T) {
	r := newTestRegistry()

	first, created := r.Open("notepad", "Notepad", "file-text")
	require.True(t, created)
	assert.Equal(t, layout.Pt(100, 50), first.Position)
	assert.Equal(t, layout.Size{Width: 900, Height: 600}, first.Size)
	assert.Equal(t, int64(1), first.ZIndex)
	assert.Equal(t, first.ID, r.ActiveID())

	second, created := r.Open("terminal", "Terminal", "terminal")
	require.True(t, created)
	assert.Equal(t, layout.Pt(130, 80), second.Position)
	assert.Equal(t, int64(2), second.ZIndex)
	assert.Equal(t, second.ID, r.ActiveID())
	assert.Equal(t, int64(3), r.NextZIndex())
}

func TestOpenSameAppTwiceKeepsSingleInstance(t *testing.T) {
	r := newTestRegistry()

	w, _ := r.Open("notepad", "Resume", "file-text")
	other, _ := r.Open("terminal", "Terminal", "terminal")
	require.Equal(t, other.ID, r.ActiveID())

	again, created := r.Open("notepad", "Resume", "file-text")
	assert.False(t, created)
	assert.Same(t, w, again)
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, int64(3), w.ZIndex)
	assert.Equal(t, w.ID, r.ActiveID())
}

func TestOpenRestoresMinimizedInstance(t *testing.T) {
	r := newTestRegistry()

	w, _ := r.Open("notepad", "Notepad", "file-text")
	w.IsMaximized = true
	r.Minimize(w.ID)
	require.Equal(t, "", r.ActiveID())

	again, created := r.Open("notepad", "Notepad", "file-text")
	assert.False(t, created)
	assert.False(t, again.IsMinimized)
	assert.True(t, again.IsMaximized)
	assert.Equal(t, int64(2), again.ZIndex)
	assert.Equal(t, w.ID, r.ActiveID())
}

func TestFocusRaisesWithoutTouchingOthers(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")

	require.True(t, r.Focus(a.ID))

	assert.Equal(t, int64(3), a.ZIndex)
	assert.Equal(t, int64(2), b.ZIndex)
	assert.Equal(t, a.ID, r.ActiveID())

	r.Focus(a.ID)
	assert.Equal(t, int64(4), a.ZIndex, "focusing the active window still raises it")
}

func TestFocusUnknownIsNoop(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")

	assert.False(t, r.Focus("window-missing"))
	assert.Equal(t, a.ID, r.ActiveID())
	assert.Equal(t, int64(2), r.NextZIndex())
}

func TestCloseSelectsHighestVisible(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")
	c, _ := r.Open("c", "C", "")
	r.Minimize(b.ID)
	r.Focus(c.ID)

	require.True(t, r.Close(c.ID))
	assert.Equal(t, 2, r.Len())
	assert.Equal(t, a.ID, r.ActiveID(), "minimized windows are never made active")

	r.Close(a.ID)
	assert.Equal(t, "", r.ActiveID())
}

func TestCloseInactiveKeepsActive(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")

	r.Close(a.ID)
	assert.Equal(t, b.ID, r.ActiveID())
}

func TestCloseUnknownRemovesNothing(t *testing.T) {
	r := newTestRegistry()
	r.Open("a", "A", "")

	assert.False(t, r.Close("nope"))
	assert.Equal(t, 1, r.Len())
}

func TestMinimizeActive(t *testing.T) {
	tests := []struct {
		name       string
		apps       []string
		minimize   int
		wantActive int
	}{
		{"falls back to next highest", []string{"a", "b", "c"}, 2, 1},
		{"single window leaves none", []string{"a"}, 0, -1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newTestRegistry()
			var ids []string
			for _, app := range tt.apps {
				w, _ := r.Open(app, strings.ToUpper(app), "")
				ids = append(ids, w.ID)
			}

			r.Minimize(ids[tt.minimize])

			if tt.wantActive < 0 {
				assert.Equal(t, "", r.ActiveID())
			} else {
				assert.Equal(t, ids[tt.wantActive], r.ActiveID())
			}
		})
	}
}

func TestMinimizeRestoreKeepsMaximized(t *testing.T) {
	for _, maximized := range []bool{false, true} {
		r := newTestRegistry()
		w, _ := r.Open("a", "A", "")
		if maximized {
			r.Maximize(w.ID)
		}

		r.Minimize(w.ID)
		assert.Equal(t, Minimized, w.State())

		r.Focus(w.ID)
		assert.False(t, w.IsMinimized)
		assert.Equal(t, maximized, w.IsMaximized)
	}
}

func TestMaximizeKeepsGeometry(t *testing.T) {
	r := newTestRegistry()
	w, _ := r.Open("a", "A", "")
	r.UpdatePosition(w.ID, layout.Pt(12, 34))
	r.UpdateSize(w.ID, layout.Size{Width: 400, Height: 300})

	r.Maximize(w.ID)
	assert.Equal(t, Maximized, w.State())
	assert.Equal(t, layout.Rect{Size: layout.Size{Width: 1000, Height: 700}}, w.Bounds(layout.Size{Width: 1000, Height: 700}))

	r.Restore(w.ID)
	assert.Equal(t, Normal, w.State())
	assert.Equal(t, layout.Pt(12, 34), w.Position)
	assert.Equal(t, layout.Size{Width: 400, Height: 300}, w.Size)
}

func TestToggleMaximize(t *testing.T) {
	r := newTestRegistry()
	w, _ := r.Open("a", "A", "")

	r.ToggleMaximize(w.ID)
	assert.True(t, w.IsMaximized)
	r.ToggleMaximize(w.ID)
	assert.False(t, w.IsMaximized)
	assert.False(t, r.ToggleMaximize("missing"))
}

func TestGeometryUpdatesDoNotRaise(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")

	r.UpdatePosition(a.ID, layout.Pt(0, 0))
	r.UpdateSize(a.ID, layout.Size{Width: 10, Height: 10})

	assert.Equal(t, int64(1), a.ZIndex)
	assert.Equal(t, b.ID, r.ActiveID())
	assert.False(t, r.UpdatePosition("missing", layout.Pt(1, 1)))
}

func TestSnapshotIsPaintOrder(t *testing.T) {
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")
	c, _ := r.Open("c", "C", "")
	r.Focus(a.ID)

	snap := r.Snapshot()
	require.Len(t, snap, 3)
	assert.Equal(t, []string{b.ID, c.ID, a.ID}, []string{snap[0].ID, snap[1].ID, snap[2].ID})

	snap[0].Title = "changed"
	assert.Equal(t, "B", b.Title, "snapshot returns copies")

	ordered := r.Ordered()
	assert.Equal(t, a.ID, ordered[0].ID)
}

func TestTopmostAt(t *testing.T) {
	desktop := layout.Size{Width: 2000, Height: 1000}
	r := newTestRegistry()
	a, _ := r.Open("a", "A", "")
	b, _ := r.Open("b", "B", "")

	assert.Equal(t, b.ID, r.TopmostAt(layout.Pt(200, 100), desktop).ID)

	r.Focus(a.ID)
	assert.Equal(t, a.ID, r.TopmostAt(layout.Pt(200, 100), desktop).ID)

	assert.Nil(t, r.TopmostAt(layout.Pt(5, 5), desktop))

	r.Maximize(b.ID)
	r.Minimize(a.ID)
	assert.Equal(t, b.ID, r.TopmostAt(layout.Pt(5, 5), desktop).ID)
}

func TestULIDGeneratorIsUniqueAndPrefixed(t *testing.T) {
	seen := make(map[string]bool)
	for range 1000 {
		id := NewID()
		require.True(t, strings.HasPrefix(id, IDPrefix))
		require.False(t, seen[id], "duplicate id %s", id)
		assert.Equal(t, strings.ToLower(id), id)
		seen[id] = true
	}
}

// TestRandomOperationsHoldInvariants drives the registry through random
// operation sequences and checks single-instance, active validity, z-order
// growth and close arithmetic after every step.
func TestRandomOperationsHoldInvariants(t *testing.T) {
	apps := []string{"notepad", "terminal", "browser", "settings"}
	rng := rand.New(rand.NewPCG(1, 2))

	for run := range 50 {
		r := newTestRegistry()
		var maxSeen int64

		for step := range 200 {
			var id string
			if snap := r.Snapshot(); len(snap) > 0 && rng.IntN(5) > 0 {
				id = snap[rng.IntN(len(snap))].ID
			} else {
				id = "window-unknown"
			}

			before := r.Len()
			switch op := rng.IntN(7); op {
			case 0:
				w, _ := r.Open(apps[rng.IntN(len(apps))], "t", "i")
				require.Greater(t, w.ZIndex, maxSeen)
			case 1:
				existed := r.Get(id) != nil
				r.Close(id)
				if existed {
					require.Equal(t, before-1, r.Len())
				} else {
					require.Equal(t, before, r.Len())
				}
			case 2:
				r.Minimize(id)
			case 3:
				r.Maximize(id)
			case 4:
				r.Restore(id)
			case 5:
				if r.Focus(id) {
					require.Greater(t, r.Get(id).ZIndex, maxSeen)
				}
			case 6:
				r.UpdatePosition(id, layout.Pt(rng.IntN(500), rng.IntN(500)))
			}

			counts := map[string]int{}
			for _, w := range r.Snapshot() {
				counts[w.AppID]++
				require.LessOrEqual(t, counts[w.AppID], 1, "run %d step %d", run, step)
				maxSeen = max(maxSeen, w.ZIndex)
			}

			if active := r.ActiveID(); active != "" {
				w := r.Get(active)
				require.NotNil(t, w, "run %d step %d", run, step)
				require.False(t, w.IsMinimized, "run %d step %d", run, step)
			}
		}
	}
}
