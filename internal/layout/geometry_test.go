package layout

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDefaultIconPosition(t *testing.T) {
	tests := []struct {
		name   string
		index  int
		height int
		want   Point
	}{
		{"first slot", 0, 700, Pt(10, 10)},
		{"second row", 1, 700, Pt(10, 110)},
		{"last row of first column", 6, 700, Pt(10, 610)},
		{"wraps to second column", 7, 700, Pt(100, 10)},
		{"short container keeps one per column", 2, 50, Pt(190, 10)},
		{"zero height", 3, 0, Pt(280, 10)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, DefaultIconPosition(tt.index, tt.height))
		})
	}
}

func TestDefaultIconPositionIsPure(t *testing.T) {
	for i := range 20 {
		assert.Equal(t, DefaultIconPosition(i, 480), DefaultIconPosition(i, 480))
	}
}

func TestSnapToIconGrid(t *testing.T) {
	tests := []struct {
		in   Point
		want Point
	}{
		{Pt(0, 0), Pt(0, 0)},
		{Pt(44, 49), Pt(0, 0)},
		{Pt(46, 51), Pt(90, 100)},
		{Pt(200, 260), Pt(180, 300)},
		{Pt(-80, -120), Pt(0, 0)},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, SnapToIconGrid(tt.in), "snap %v", tt.in)
	}
}

func TestSnapToDragGrid(t *testing.T) {
	assert.Equal(t, Pt(20, 30), SnapToDragGrid(Pt(17, 26)))
	assert.Equal(t, Pt(-10, 0), SnapToDragGrid(Pt(-12, 4)))
}

func TestRectContains(t *testing.T) {
	r := Rect{Point: Pt(10, 10), Size: Size{Width: 20, Height: 10}}

	assert.True(t, r.Contains(Pt(10, 10)))
	assert.True(t, r.Contains(Pt(29, 19)))
	assert.False(t, r.Contains(Pt(30, 10)))
	assert.False(t, r.Contains(Pt(10, 20)))
	assert.False(t, r.Contains(Pt(9, 15)))
}

func TestDistance(t *testing.T) {
	assert.InDelta(t, 5.0, Distance(Pt(0, 0), Pt(3, 4)), 1e-9)
	assert.InDelta(t, 0.0, Distance(Pt(7, 7), Pt(7, 7)), 1e-9)
}

func TestCellMapping(t *testing.T) {
	assert.Equal(t, Pt(30, 40), CellsToPixels(3, 2))

	col, row := PixelsToCells(Pt(35, 59))
	assert.Equal(t, 3, col)
	assert.Equal(t, 2, row)

	col, row = PixelsToCells(Pt(-1, -1))
	assert.Equal(t, -1, col)
	assert.Equal(t, -1, row)

	cols, rows := SizeToCells(Size{Width: 900, Height: 600})
	assert.Equal(t, 90, cols)
	assert.Equal(t, 30, rows)
}
