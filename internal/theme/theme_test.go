package theme

import (
	"testing"

	"github.com/charmbracelet/colorprofile"
	"github.com/stretchr/testify/assert"
)

func TestThemeModes(t *testing.T) {
	th := Default()
	assert.True(t, th.IsDark())
	dark := ColorToString(th.Text())

	light := th.Clone()
	light.SetDark(false)
	assert.False(t, light.IsDark())
	assert.True(t, th.IsDark(), "clone must not share mode")
	assert.NotEqual(t, dark, ColorToString(light.Text()))

	assert.NotEqual(t, ColorToString(th.WindowBorder(true)), ColorToString(th.WindowBorder(false)))
	assert.NotEqual(t, ColorToString(th.TitleBar(true)), ColorToString(th.TitleBar(false)))
	bg, fg := th.Taskbar()
	assert.NotEqual(t, ColorToString(bg), ColorToString(fg))
}

func TestColorToString(t *testing.T) {
	assert.Equal(t, "#000000", ColorToString(nil))
	assert.Equal(t, "#667eea", ColorToString(WallpaperColor("default", 0, 10, colorprofile.TrueColor)))
}

func TestLookupWallpaper(t *testing.T) {
	assert.Len(t, Wallpapers(), 6)
	assert.Equal(t, "Deep Ocean", LookupWallpaper("ocean").Name)
	assert.Equal(t, DefaultWallpaperID, LookupWallpaper("nebula").ID)
	assert.Equal(t, DefaultWallpaperID, LookupWallpaper("").ID)
	assert.True(t, IsWallpaper("sunset"))
	assert.False(t, IsWallpaper("nebula"))
}

func TestWallpaperColor(t *testing.T) {
	tests := []struct {
		name    string
		id      string
		row     int
		rows    int
		profile colorprofile.Profile
		want    string
	}{
		{"first row", "sunset", 0, 11, colorprofile.TrueColor, "#ff6b6b"},
		{"middle stop", "sunset", 5, 11, colorprofile.TrueColor, "#feca57"},
		{"last row", "sunset", 10, 11, colorprofile.TrueColor, "#48dbfb"},
		{"row past end clamps", "sunset", 40, 11, colorprofile.TrueColor, "#48dbfb"},
		{"ansi256 snaps to nearest stop", "ocean", 9, 10, colorprofile.ANSI256, "#243b55"},
		{"ansi uses first stop", "sunset", 10, 11, colorprofile.ANSI, "#ff6b6b"},
		{"solid", "dark", 7, 11, colorprofile.TrueColor, "#0a0a0a"},
		{"unknown falls back", "nebula", 0, 11, colorprofile.TrueColor, "#667eea"},
		{"single row", "sunset", 0, 1, colorprofile.TrueColor, "#ff6b6b"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := WallpaperColor(tt.id, tt.row, tt.rows, tt.profile)
			assert.Equal(t, tt.want, ColorToString(got))
		})
	}

	mid := ColorToString(WallpaperColor("ocean", 5, 11, colorprofile.TrueColor))
	assert.NotEqual(t, "#141e30", mid)
	assert.NotEqual(t, "#243b55", mid)
}
