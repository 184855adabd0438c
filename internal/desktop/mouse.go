package desktop

import (
	tea "charm.land/bubbletea/v2"
	"github.com/samber/lo"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/input"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/session"
	"github.com/deskos/deskos/internal/window"
)

// wheelStep is how many lines one wheel notch scrolls a window.
const wheelStep = 3

// handleMouseClick routes a button press to the topmost thing under the
// pointer: overlay, taskbar, window, icon, then the bare desktop.
func (m *Model) handleMouseClick(mouse tea.Mouse) tea.Cmd {
	if m.booting || mouse.Button != tea.MouseLeft {
		return nil
	}
	x, y := mouse.X, mouse.Y

	if r, ok := m.overlayRect(); ok && r.contains(x, y) {
		return m.clickOverlay(r, y)
	}
	if y >= m.desktopRows() {
		return m.clickTaskbar(x)
	}

	m.store.CloseOverlays()

	if w, ok := m.windowAt(x, y); ok {
		m.selectedIcon = ""
		m.pressWindow(w, x, y)
		return nil
	}
	if id, origin, ok := m.iconAt(x, y); ok {
		m.selectedIcon = id
		m.drag.Press(pointAt(x, y))
		m.target = dragTarget{kind: targetIcon, id: id, origin: origin}
		return nil
	}

	m.selectedIcon = ""
	m.clicks.Reset()
	return nil
}

// handleMouseMotion moves the armed drag target once the press has turned
// into a drag. Icons show a ghost on the drag grid; windows move live.
func (m *Model) handleMouseMotion(mouse tea.Mouse) tea.Cmd {
	if !m.drag.Active() {
		return nil
	}
	if _, dragging := m.drag.Move(pointAt(mouse.X, mouse.Y)); dragging {
		m.applyDrag()
	}
	return nil
}

// handleMouseRelease ends the press: drags are committed, clicks count
// toward a double click.
func (m *Model) handleMouseRelease(mouse tea.Mouse) tea.Cmd {
	if !m.drag.Active() {
		return nil
	}
	gesture := m.drag.Release(pointAt(mouse.X, mouse.Y))
	t := m.target

	switch t.kind {
	case targetIcon:
		switch gesture {
		case input.GestureDrag:
			m.store.SeedIconDefaults(desktopIconIDs(), m.desktopSize().Height)
			landed := m.store.MoveIcon(t.id, m.iconDropTarget())
			m.logger.Debug("icon moved", "app", t.id, "x", landed.X, "y", landed.Y)
			m.clicks.Reset()
		case input.GestureClick:
			if m.clicks.Click("icon:"+t.id, m.now()) {
				m.openApp(t.id)
			}
		}
	case targetTitleBar:
		switch gesture {
		case input.GestureDrag:
			m.applyDrag()
			m.clicks.Reset()
		case input.GestureClick:
			if m.clicks.Click("title:"+t.id, m.now()) {
				m.store.ToggleMaximizeWindow(t.id)
			}
		}
	}

	m.target = dragTarget{}
	m.ghost = nil
	return nil
}

func (m *Model) handleMouseWheel(mouse tea.Mouse) tea.Cmd {
	if m.booting {
		return nil
	}
	w, ok := m.windowAt(mouse.X, mouse.Y)
	if !ok {
		return nil
	}
	switch mouse.Button {
	case tea.MouseWheelUp:
		m.scroll[w.ID] = max(0, m.scroll[w.ID]-wheelStep)
	case tea.MouseWheelDown:
		// bodyLines clamps to the content length on the next render.
		m.scroll[w.ID] += wheelStep
	}
	return nil
}

func (m *Model) cancelDrag() {
	m.drag.Cancel()
	m.target = dragTarget{}
	m.ghost = nil
}

// applyDrag moves the target by the current drag offset.
func (m *Model) applyDrag() {
	pos := m.target.origin.Add(m.drag.Offset())
	switch m.target.kind {
	case targetIcon:
		g := m.iconDropTarget()
		m.ghost = &g
	case targetTitleBar:
		w, ok := m.store.Window(m.target.id)
		if !ok || w.IsMaximized {
			return
		}
		m.store.UpdateWindowPosition(w.ID, m.clampWindow(w, pos))
	}
}

// desktopIconIDs lists the desktop icons in slot order.
func desktopIconIDs() []string {
	return lo.Map(apps.Desktop(), func(a apps.App, _ int) string { return a.ID })
}

// iconDropTarget is the drag-grid position under the pointer.
func (m *Model) iconDropTarget() layout.Point {
	p := layout.SnapToDragGrid(m.target.origin.Add(m.drag.Offset()))
	return layout.Pt(max(0, p.X), max(0, p.Y))
}

// clampWindow keeps part of the title bar on screen so a window can always
// be dragged back.
func (m *Model) clampWindow(w window.Window, p layout.Point) layout.Point {
	desk := m.desktopSize()
	grip := config.MinWindowCols * layout.CellWidthPx
	p.X = max(grip-w.Size.Width, min(p.X, desk.Width-grip))
	p.Y = max(0, min(p.Y, desk.Height-layout.CellHeightPx))
	return p
}

// =============================================================================
// Hit Testing
// =============================================================================

// windowAt returns the topmost visible window covering the cell.
func (m *Model) windowAt(x, y int) (window.Window, bool) {
	ws := m.store.Windows()
	for i := len(ws) - 1; i >= 0; i-- {
		if ws[i].IsMinimized {
			continue
		}
		if m.windowRect(ws[i]).contains(x, y) {
			return ws[i], true
		}
	}
	return window.Window{}, false
}

// iconAt returns the desktop icon covering the cell and its position.
func (m *Model) iconAt(x, y int) (string, layout.Point, bool) {
	h := m.desktopSize().Height
	icons := apps.Desktop()
	for i := len(icons) - 1; i >= 0; i-- {
		p := m.store.IconPosition(icons[i].ID, i, h)
		if m.iconRectAt(p).contains(x, y) {
			return icons[i].ID, p, true
		}
	}
	return "", layout.Point{}, false
}

// =============================================================================
// Click Targets
// =============================================================================

func (m *Model) pressWindow(w window.Window, x, y int) {
	m.store.FocusWindow(w.ID)
	r := m.windowRect(w)

	if y-r.y >= config.TitleBarRows {
		m.clickBody(w, r, y)
		return
	}

	switch col := x - r.x; {
	case col >= r.w-config.TitleButtonWidth:
		m.store.CloseWindow(w.ID)
	case col >= r.w-2*config.TitleButtonWidth:
		m.store.ToggleMaximizeWindow(w.ID)
	case col >= r.w-3*config.TitleButtonWidth:
		m.store.MinimizeWindow(w.ID)
	default:
		m.drag.Press(pointAt(x, y))
		m.target = dragTarget{kind: targetTitleBar, id: w.ID, origin: w.Position}
	}
}

// clickBody handles a press inside a window's content area.
func (m *Model) clickBody(w window.Window, r cellRect, y int) {
	line := y - r.y - config.TitleBarRows + m.scroll[w.ID]
	switch v := m.view(w).(type) {
	case content.Settings:
		switch action, wallpaper := content.SettingsHit(line); action {
		case content.SettingsToggleDarkMode:
			m.store.ToggleDarkMode()
		case content.SettingsSetWallpaper:
			m.store.SetWallpaper(wallpaper)
		}
	case *content.Editor:
		if line == 0 {
			v.Next()
		}
	}
}

func (m *Model) clickTaskbar(x int) tea.Cmd {
	s, ok := m.segmentAt(x)
	if !ok {
		return nil
	}
	switch s.kind {
	case segStart:
		m.store.ToggleStartMenu()
	case segSearch:
		m.store.ToggleSearch()
	case segWindow:
		m.store.CloseOverlays()
		m.store.ActivateFromTaskbar(s.id)
	case segTheme:
		m.store.ToggleDarkMode()
	case segTray, segClock, segBell:
		m.store.ToggleNotificationCenter()
	}
	return nil
}

// clickOverlay handles a press inside the open overlay at screen row y.
func (m *Model) clickOverlay(r cellRect, y int) tea.Cmd {
	line := y - r.y - 1
	switch m.store.Overlay() {
	case session.OverlayStartMenu:
		entries := m.startMenuEntries()
		if line < 0 || line >= len(entries) {
			return nil
		}
		switch e := entries[line]; e.action {
		case menuApp:
			m.openApp(e.appID)
		case menuDarkMode:
			m.store.ToggleDarkMode()
		case menuPower:
			m.store.CloseOverlays()
			return m.quit()
		}
	case session.OverlaySearch:
		results := m.searchResults()
		if i := line - searchResultLine; i >= 0 && i < len(results) {
			m.openApp(results[i].ID)
		}
	}
	return nil
}

// openApp opens or refocuses the app's window and closes overlays.
func (m *Model) openApp(id string) {
	a, ok := apps.Get(id)
	if !ok {
		m.logger.Warn("unknown app", "app", id)
		return
	}
	m.store.OpenWindow(a.ID, a.Name, a.Icon)
	m.store.CloseOverlays()
	m.selectedIcon = ""
}
