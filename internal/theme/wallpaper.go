package theme

import (
	"image/color"
	"math"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/colorprofile"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/samber/lo"
)

// DefaultWallpaperID is used for unknown or empty wallpaper ids.
const DefaultWallpaperID = "default"

// WallpaperKind says how a wallpaper is painted.
type WallpaperKind string

const (
	WallpaperGradient WallpaperKind = "gradient"
	WallpaperSolid    WallpaperKind = "solid"
)

// Wallpaper is a desktop background. Gradients run top to bottom.
type Wallpaper struct {
	ID    string
	Name  string
	Kind  WallpaperKind
	Stops []string
}

var wallpapers = []Wallpaper{
	{ID: "default", Name: "Windows Default", Kind: WallpaperGradient, Stops: []string{"#667eea", "#764ba2"}},
	{ID: "mechanical", Name: "Mechanical Blueprint", Kind: WallpaperGradient, Stops: []string{"#1a1a2e", "#16213e", "#0f3460"}},
	{ID: "circuit", Name: "Circuit Board", Kind: WallpaperGradient, Stops: []string{"#0c0c0c", "#1a472a", "#2d5a27"}},
	{ID: "ocean", Name: "Deep Ocean", Kind: WallpaperGradient, Stops: []string{"#141e30", "#243b55"}},
	{ID: "sunset", Name: "Sunset", Kind: WallpaperGradient, Stops: []string{"#ff6b6b", "#feca57", "#48dbfb"}},
	{ID: "dark", Name: "Pure Dark", Kind: WallpaperSolid, Stops: []string{"#0a0a0a"}},
}

// Wallpapers returns the catalog in display order.
func Wallpapers() []Wallpaper {
	return append([]Wallpaper(nil), wallpapers...)
}

// LookupWallpaper returns the wallpaper with id, or the default one.
func LookupWallpaper(id string) Wallpaper {
	if w, ok := lo.Find(wallpapers, func(w Wallpaper) bool { return w.ID == id }); ok {
		return w
	}
	return wallpapers[0]
}

// IsWallpaper reports whether id names a catalog wallpaper.
func IsWallpaper(id string) bool {
	return lo.ContainsBy(wallpapers, func(w Wallpaper) bool { return w.ID == id })
}

// WallpaperColor returns the background for one row of the desktop.
// TrueColor terminals get a Lab blend between stops, ANSI256 gets the
// nearest stop, and anything poorer gets the first stop.
func WallpaperColor(id string, row, rows int, profile colorprofile.Profile) color.Color {
	w := LookupWallpaper(id)
	if len(w.Stops) == 1 || w.Kind == WallpaperSolid || profile < colorprofile.ANSI256 || rows <= 1 {
		return lipgloss.Color(w.Stops[0])
	}

	t := float64(max(0, min(row, rows-1))) / float64(rows-1)
	segs := len(w.Stops) - 1
	pos := t * float64(segs)

	if profile < colorprofile.TrueColor {
		return lipgloss.Color(w.Stops[int(math.Round(pos))])
	}

	i := min(int(pos), segs-1)
	from, err1 := colorful.Hex(w.Stops[i])
	to, err2 := colorful.Hex(w.Stops[i+1])
	if err1 != nil || err2 != nil {
		return lipgloss.Color(w.Stops[0])
	}
	return lipgloss.Color(from.BlendLab(to, pos-float64(i)).Clamped().Hex())
}
