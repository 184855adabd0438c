package content

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deskos/deskos/internal/apps"
)

func TestEveryAppHasAView(t *testing.T) {
	for _, a := range apps.All() {
		v := New(a.ID)
		_, isPlaceholder := v.(placeholder)
		assert.False(t, isPlaceholder, a.ID)
		assert.NotEmpty(t, v.Lines(Env{DarkMode: true, Wallpaper: "default"}, 40), a.ID)
	}
	assert.IsType(t, placeholder(""), New("solitaire"))
}

func TestFileExplorerTree(t *testing.T) {
	lines := FileExplorer{}.Lines(Env{ASCIIOnly: true}, 20)
	joined := strings.Join(lines, "\n")
	assert.Contains(t, joined, "[=] Local Disk (C:)")
	assert.Contains(t, joined, "      [*] gearbox-assembly  (mechanical)")
	assert.Contains(t, joined, "        [ ] Resume.pdf")
	assert.Equal(t, strings.Repeat("-", 20), lines[1])
}

func TestSettingsMarksCurrent(t *testing.T) {
	lines := Settings{}.Lines(Env{DarkMode: false, Wallpaper: "ocean", ASCIIOnly: true}, 10)
	assert.Equal(t, "  ( ) Dark mode", lines[settingsDarkLine])

	var marked []string
	for _, l := range lines {
		if strings.HasPrefix(l, "  (*) ") {
			marked = append(marked, strings.TrimPrefix(l, "  (*) "))
		}
	}
	assert.Equal(t, []string{"Deep Ocean"}, marked)
}

func TestSettingsHit(t *testing.T) {
	action, _ := SettingsHit(settingsDarkLine)
	assert.Equal(t, SettingsToggleDarkMode, action)

	action, id := SettingsHit(settingsWallpaperStart + 3)
	require.Equal(t, SettingsSetWallpaper, action)
	assert.Equal(t, "ocean", id)

	lines := Settings{}.Lines(Env{Wallpaper: "ocean", ASCIIOnly: true}, 10)
	assert.Equal(t, "  (*) Deep Ocean", lines[settingsWallpaperStart+3])

	action, _ = SettingsHit(0)
	assert.Equal(t, SettingsNone, action)
	action, _ = SettingsHit(100)
	assert.Equal(t, SettingsNone, action)
}

func TestEditorNext(t *testing.T) {
	e := &Editor{Project: "portfolio-os"}
	e.Next()
	assert.Equal(t, "automation-dashboard", e.Project)
	e.Next()
	assert.Equal(t, "portfolio-os", e.Project)

	e.Project = "missing"
	e.Next()
	assert.Equal(t, "portfolio-os", e.Project)
	assert.Contains(t, e.Lines(Env{}, 10)[0], "registry.go")
}

func TestNotificationLines(t *testing.T) {
	lines := NotificationLines()
	assert.Equal(t, "Notifications", lines[0])
	assert.Contains(t, lines, "New commit pushed")
}
