package desktop

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"
	"github.com/samber/lo"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/session"
)

// Geometry of the taskbar and overlays, shared by the renderer and the
// pointer hit tests so both always agree.

// =============================================================================
// Taskbar
// =============================================================================

type segmentKind int

const (
	segStart segmentKind = iota
	segSearch
	segWindow
	segTray
	segTheme
	segClock
	segBell
)

// segment is one clickable run of taskbar cells.
type segment struct {
	kind segmentKind
	id   string
	x    int
	text string
}

func (s segment) width() int { return lipgloss.Width(s.text) }

// taskbarSegments lays out the taskbar left to right: start and search
// buttons, one button per window in open order, then the tray on the right.
// Window buttons that do not fit are dropped.
func (m *Model) taskbarSegments() []segment {
	left := []segment{
		{kind: segStart, text: m.glyphs.Start},
		{kind: segSearch, text: m.glyphs.Search},
	}
	x := 0
	for i := range left {
		left[i].x = x
		x += left[i].width()
	}

	themeGlyph := m.glyphs.Moon
	if !m.store.IsDarkMode() {
		themeGlyph = m.glyphs.Sun
	}
	right := []segment{
		{kind: segTray, text: m.trayText()},
		{kind: segTheme, text: " " + themeGlyph + " "},
		{kind: segClock, text: " " + m.now().Format(m.clockFormat) + " "},
		{kind: segBell, text: m.glyphs.Bell},
	}
	rightWidth := lo.SumBy(right, func(s segment) int { return s.width() })
	rx := m.width - rightWidth
	for i := range right {
		right[i].x = rx
		rx += right[i].width()
	}

	limit := m.width - rightWidth - 1
	x++
	for _, w := range m.store.OpenOrder() {
		text := " " + apps.Glyph(w.Icon, m.ascii) + " " + ansi.Truncate(w.Title, config.MaxTaskbarTitle, "…") + " "
		s := segment{kind: segWindow, id: w.ID, x: x, text: text}
		if x+s.width() > limit {
			break
		}
		left = append(left, s)
		x += s.width() + 1
	}
	return append(left, right...)
}

// segmentAt returns the taskbar segment under column x.
func (m *Model) segmentAt(x int) (segment, bool) {
	return lo.Find(m.taskbarSegments(), func(s segment) bool {
		return s.x >= 0 && x >= s.x && x < s.x+s.width()
	})
}

func (m *Model) trayText() string {
	if m.trayErr != nil || m.cpu.Len() == 0 {
		return " CPU --% "
	}
	return fmt.Sprintf(" %s %3.0f%% MEM %2.0f%% ", m.cpu.Graph(m.ascii), m.reading.CPU, m.reading.Memory)
}

// =============================================================================
// Overlays
// =============================================================================

// overlayRect is where the open overlay is drawn, border included.
func (m *Model) overlayRect() (cellRect, bool) {
	rows := m.desktopRows()
	switch m.store.Overlay() {
	case session.OverlayStartMenu:
		h := min(len(m.startMenuEntries())+2, rows)
		return cellRect{0, rows - h, min(config.StartMenuCols, m.width), h}, true
	case session.OverlaySearch:
		w, h := min(config.SearchCols, m.width), min(config.SearchRows, rows)
		return cellRect{(m.width - w) / 2, rows - h, w, h}, true
	case session.OverlayNotificationCenter:
		w := min(config.NotificationCols, m.width)
		return cellRect{m.width - w, 0, w, rows}, true
	}
	return cellRect{}, false
}

type menuAction int

const (
	menuNone menuAction = iota
	menuApp
	menuDarkMode
	menuPower
)

// menuEntry is one line of the start menu.
type menuEntry struct {
	text   string
	action menuAction
	appID  string
	header bool
}

func (m *Model) startMenuEntries() []menuEntry {
	entries := []menuEntry{{text: " DeskOS", header: true}, {}}
	listed := apps.StartMenu()
	for _, c := range apps.Categories() {
		items := lo.Filter(listed, func(a apps.App, _ int) bool { return a.Category == c })
		if len(items) == 0 {
			continue
		}
		entries = append(entries, menuEntry{text: " " + strings.ToUpper(string(c)), header: true})
		for _, a := range items {
			entries = append(entries, menuEntry{
				text:   "  " + apps.Glyph(a.Icon, m.ascii) + " " + a.Name,
				action: menuApp,
				appID:  a.ID,
			})
		}
	}

	mode := "Light mode"
	glyph := m.glyphs.Sun
	if m.store.IsDarkMode() {
		mode, glyph = "Dark mode", m.glyphs.Moon
	}
	firstName, _, _ := strings.Cut(content.Owner.Name, " ")
	return append(entries,
		menuEntry{},
		menuEntry{text: " " + firstName, header: true},
		menuEntry{text: "  " + glyph + " " + mode, action: menuDarkMode},
		menuEntry{text: "  " + m.glyphs.Power + " Shut down", action: menuPower},
	)
}

// searchResults is what fits in the search panel for the current query.
func (m *Model) searchResults() []apps.App {
	results := apps.Search(m.store.Transient().SearchQuery)
	return lo.Slice(results, 0, max(0, config.SearchRows-4))
}

// searchResultLine is the first panel line that lists a result.
const searchResultLine = 2
