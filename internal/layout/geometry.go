// Package layout provides the geometry shared by windows, desktop icons and
// the terminal renderer: points, sizes, rectangles, the icon grid and the
// pixel to cell mapping.
package layout

import "math"

// =============================================================================
// Icon Grid
// =============================================================================

const (
	// IconWidth is the width of one desktop icon slot.
	IconWidth = 90

	// IconHeight is the height of one desktop icon slot.
	IconHeight = 100

	// IconPadding offsets the default icon grid from the desktop edge.
	IconPadding = 10

	// IconMinDistance is how close two icon centers may get before the
	// spot counts as occupied.
	IconMinDistance = IconWidth / 2

	// IconSearchRadius bounds the ring search for a free icon slot.
	IconSearchRadius = 10

	// DragGrid is the step icons snap to while being dragged.
	DragGrid = 10
)

// =============================================================================
// Terminal Mapping
// =============================================================================

const (
	// CellWidthPx is the number of logical pixels covered by one column.
	CellWidthPx = 10

	// CellHeightPx is the number of logical pixels covered by one row.
	CellHeightPx = 20
)

// Point is a position in logical pixels.
type Point struct {
	X int `json:"x" toml:"x"`
	Y int `json:"y" toml:"y"`
}

// Size is a width/height pair in logical pixels.
type Size struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// Rect is an axis-aligned rectangle.
type Rect struct {
	Point
	Size
}

// Pt is shorthand for Point{x, y}.
func Pt(x, y int) Point {
	return Point{X: x, Y: y}
}

// Add returns p translated by q.
func (p Point) Add(q Point) Point {
	return Point{X: p.X + q.X, Y: p.Y + q.Y}
}

// Sub returns p - q.
func (p Point) Sub(q Point) Point {
	return Point{X: p.X - q.X, Y: p.Y - q.Y}
}

// Contains reports whether p lies inside r. The right and bottom edges are
// exclusive.
func (r Rect) Contains(p Point) bool {
	return p.X >= r.X && p.X < r.X+r.Width &&
		p.Y >= r.Y && p.Y < r.Y+r.Height
}

// Center returns the center of r, rounded down.
func (r Rect) Center() Point {
	return Point{X: r.X + r.Width/2, Y: r.Y + r.Height/2}
}

// Distance returns the Euclidean distance between a and b.
func Distance(a, b Point) float64 {
	return math.Hypot(float64(a.X-b.X), float64(a.Y-b.Y))
}

// IconCenter returns the center of an icon whose slot starts at p.
func IconCenter(p Point) Point {
	return Rect{Point: p, Size: Size{Width: IconWidth, Height: IconHeight}}.Center()
}

// DefaultIconPosition computes the column-major grid slot for the icon at
// index when the desktop is containerHeight pixels tall. Icons fill a column
// top to bottom before starting the next one.
func DefaultIconPosition(index, containerHeight int) Point {
	iconsPerColumn := max(1, containerHeight/IconHeight)
	column := index / iconsPerColumn
	row := index % iconsPerColumn
	return Point{
		X: column*IconWidth + IconPadding,
		Y: row*IconHeight + IconPadding,
	}
}

// SnapToIconGrid rounds p to the nearest icon grid cell, clamped to the
// top-left quadrant of the desktop.
func SnapToIconGrid(p Point) Point {
	return Point{
		X: max(0, roundTo(p.X, IconWidth)),
		Y: max(0, roundTo(p.Y, IconHeight)),
	}
}

// SnapToDragGrid rounds p to the nearest multiple of DragGrid.
func SnapToDragGrid(p Point) Point {
	return Point{X: roundTo(p.X, DragGrid), Y: roundTo(p.Y, DragGrid)}
}

func roundTo(v, step int) int {
	return int(math.Round(float64(v)/float64(step))) * step
}

// CellsToPixels converts a terminal cell coordinate to logical pixels.
func CellsToPixels(col, row int) Point {
	return Point{X: col * CellWidthPx, Y: row * CellHeightPx}
}

// PixelsToCells converts logical pixels to the terminal cell containing them.
func PixelsToCells(p Point) (col, row int) {
	return floorDiv(p.X, CellWidthPx), floorDiv(p.Y, CellHeightPx)
}

// SizeToCells converts a pixel size to whole cells, never below one.
func SizeToCells(s Size) (cols, rows int) {
	return max(1, s.Width/CellWidthPx), max(1, s.Height/CellHeightPx)
}

func floorDiv(a, b int) int {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
