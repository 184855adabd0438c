package desktop

import (
	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/input"
	"github.com/deskos/deskos/internal/session"
)

// handleKey processes a key press. Text goes to the search box or the
// focused terminal first; everything else is looked up in the key map.
func (m *Model) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	if m.booting {
		m.finishBoot()
		return nil
	}

	action := m.keys.Match(msg)
	switch {
	case m.store.Overlay() == session.OverlaySearch:
		if m.searchKey(msg.Key(), action) {
			return nil
		}
	case m.store.Overlay() == session.OverlayNone:
		if m.windowKey(msg.Key(), action) {
			return nil
		}
	}
	return m.runAction(action)
}

// searchKey edits the search query. Enter opens the best match.
func (m *Model) searchKey(k tea.Key, action input.Action) bool {
	if action != input.ActionNone {
		return false
	}
	query := m.store.Transient().SearchQuery
	switch {
	case k.Code == tea.KeyEnter:
		if results := m.searchResults(); len(results) > 0 {
			m.openApp(results[0].ID)
		}
	case k.Code == tea.KeyBackspace:
		if r := []rune(query); len(r) > 0 {
			m.store.SetSearchQuery(string(r[:len(r)-1]))
		}
	case k.Text != "":
		m.store.SetSearchQuery(query + k.Text)
	default:
		return false
	}
	return true
}

// windowKey feeds keys to the active window's content.
func (m *Model) windowKey(k tea.Key, action input.Action) bool {
	if action != input.ActionNone {
		return false
	}
	id := m.store.ActiveWindowID()
	w, ok := m.store.Window(id)
	if !ok || w.IsMinimized {
		return false
	}

	switch v := m.view(w).(type) {
	case *content.Terminal:
		switch {
		case k.Code == tea.KeyEnter:
			v.Submit()
		case k.Code == tea.KeyBackspace:
			v.Backspace()
		case k.Code == tea.KeyUp:
			v.Previous()
		case k.Code == tea.KeyDown:
			v.Next()
		case k.Text != "":
			v.Type(k.Text)
		default:
			return false
		}
		return true
	case *content.Editor:
		if k.Code == tea.KeyTab {
			v.Next()
			m.scroll[id] = 0
			return true
		}
	}
	return false
}

func (m *Model) runAction(action input.Action) tea.Cmd {
	active := m.store.ActiveWindowID()
	switch action {
	case input.ActionQuit:
		return m.quit()
	case input.ActionCloseWindow:
		m.store.CloseWindow(active)
	case input.ActionMinimizeWindow:
		m.store.MinimizeWindow(active)
	case input.ActionToggleMaximize:
		m.store.ToggleMaximizeWindow(active)
	case input.ActionCycleWindows:
		m.cycleWindows()
	case input.ActionToggleStartMenu:
		m.store.ToggleStartMenu()
	case input.ActionToggleSearch:
		m.store.ToggleSearch()
	case input.ActionToggleNotifications:
		m.store.ToggleNotificationCenter()
	case input.ActionToggleDarkMode:
		m.store.ToggleDarkMode()
	case input.ActionEscape:
		m.cancelDrag()
		m.store.CloseOverlays()
		m.selectedIcon = ""
	}
	return nil
}

// cycleWindows focuses the window after the active one in taskbar order,
// restoring it if minimized.
func (m *Model) cycleWindows() {
	order := m.store.OpenOrder()
	if len(order) == 0 {
		return
	}
	next := 0
	active := m.store.ActiveWindowID()
	for i, w := range order {
		if w.ID == active {
			next = (i + 1) % len(order)
			break
		}
	}
	m.store.FocusWindow(order[next].ID)
}
