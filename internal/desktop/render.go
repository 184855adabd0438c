package desktop

import (
	"image/color"
	"slices"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/internal/window"
)

// GetCanvas composes every visible layer for the current frame.
func (m *Model) GetCanvas() *lipgloss.Canvas {
	canvas := lipgloss.NewCanvas(m.width, m.height)

	var layers []*lipgloss.Layer
	if m.booting {
		layers = append(layers, m.renderBoot())
	} else {
		layers = append(layers, m.renderWallpaper())
		layers = append(layers, m.renderIcons()...)
		layers = append(layers, m.renderWindows()...)
		layers = append(layers, m.renderOverlays()...)
		layers = append(layers, m.renderTaskbar())
	}

	slices.SortStableFunc(layers, func(a, b *lipgloss.Layer) int {
		return a.GetZ() - b.GetZ()
	})
	for _, layer := range layers {
		canvas.Compose(layer)
	}
	return canvas
}

// View renders the desktop.
func (m *Model) View() tea.View {
	var view tea.View
	if m.width > 0 && m.height > 0 {
		view.SetContent(lipgloss.Sprint(m.GetCanvas().Render()))
	}
	view.AltScreen = true
	view.MouseMode = tea.MouseModeCellMotion
	view.ReportFocus = true
	view.WindowTitle = "DeskOS"
	return view
}

// =============================================================================
// Wallpaper and Icons
// =============================================================================

func (m *Model) renderWallpaper() *lipgloss.Layer {
	rows := m.desktopRows()
	id := m.store.Wallpaper()
	blank := strings.Repeat(" ", m.width)
	lines := make([]string, rows)
	for r := range rows {
		lines[r] = lipgloss.NewStyle().Background(theme.WallpaperColor(id, r, rows, m.profile)).Render(blank)
	}
	return lipgloss.NewLayer(strings.Join(lines, "\n")).X(0).Y(0).Z(config.ZIndexWallpaper).ID("wallpaper")
}

func (m *Model) renderIcons() []*lipgloss.Layer {
	var layers []*lipgloss.Layer
	for i, a := range apps.Desktop() {
		r := m.iconRect(a.ID, i)
		style := lipgloss.NewStyle()
		if a.ID == m.selectedIcon {
			style = style.Background(m.theme.Palette().Highlight)
		}
		if m.ghost != nil && m.target.kind == targetIcon && m.target.id == a.ID {
			style = style.Faint(true)
		}
		if l := m.iconLayer(a, r, style, config.ZIndexIcons); l != nil {
			layers = append(layers, l)
		}
	}

	if m.ghost != nil && m.target.kind == targetIcon {
		if a, ok := apps.Get(m.target.id); ok {
			style := lipgloss.NewStyle().Background(m.theme.Palette().Highlight)
			if l := m.iconLayer(a, m.iconRectAt(*m.ghost), style, config.ZIndexDragGhost); l != nil {
				layers = append(layers, l)
			}
		}
	}
	return layers
}

func (m *Model) iconLayer(a apps.App, r cellRect, style lipgloss.Style, z int) *lipgloss.Layer {
	label := ansi.Truncate(a.Name, config.IconLabelCols, "…")
	block := style.
		Width(r.w).
		Height(r.h).
		Align(lipgloss.Center).
		Foreground(lipgloss.Color("#ffffff")).
		Render(strings.Join([]string{"", apps.Glyph(a.Icon, m.ascii), "", label}, "\n"))

	clipped, x, y := clipContent(block, r.x, r.y, m.width, m.desktopRows())
	if clipped == "" {
		return nil
	}
	return lipgloss.NewLayer(clipped).X(x).Y(y).Z(z).ID("icon:" + a.ID)
}

// =============================================================================
// Windows
// =============================================================================

func (m *Model) renderWindows() []*lipgloss.Layer {
	active := m.store.ActiveWindowID()
	env := m.env()

	var layers []*lipgloss.Layer
	for i, w := range m.store.Windows() {
		if w.IsMinimized {
			continue
		}
		r := m.windowRect(w)
		frame := m.renderWindow(w, r, w.ID == active, env)
		clipped, x, y := clipContent(frame, r.x, r.y, m.width, m.desktopRows())
		if clipped == "" {
			continue
		}
		layers = append(layers, lipgloss.NewLayer(clipped).X(x).Y(y).Z(config.ZIndexWindows+i).ID(w.ID))
	}
	return layers
}

func (m *Model) renderWindow(w window.Window, r cellRect, active bool, env content.Env) string {
	p := m.theme.Palette()
	border := m.theme.WindowBorder(active)

	innerW := max(0, r.w-2)
	innerH := max(0, r.h-config.TitleBarRows-1)
	lines := m.bodyLines(w, env, innerW, innerH)

	body := lipgloss.NewStyle().
		Border(m.border).
		BorderTop(false).
		BorderForeground(border).
		Background(p.Window).
		Foreground(p.Text).
		Width(r.w).
		Height(r.h - config.TitleBarRows).
		Render(strings.Join(lines, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, m.renderTitleBar(w, r.w, active), body)
}

// bodyLines returns the visible slice of a window's content. Terminals
// follow their prompt; other views scroll from the top.
func (m *Model) bodyLines(w window.Window, env content.Env, width, height int) []string {
	all := m.view(w).Lines(env, width)
	maxScroll := max(0, len(all)-height)

	offset := min(m.scroll[w.ID], maxScroll)
	if _, ok := m.views[w.ID].(*content.Terminal); ok {
		offset = maxScroll
	}
	m.scroll[w.ID] = offset

	visible := all[offset:min(len(all), offset+height)]
	out := make([]string, len(visible))
	for i, l := range visible {
		out[i] = ansi.Truncate(l, width, "")
	}
	return out
}

// titleButtons returns the title bar buttons right to left.
func (m *Model) titleButtons(w window.Window) (minimize, maximize, closeBtn string) {
	maximize = m.glyphs.Maximize
	if w.IsMaximized {
		maximize = m.glyphs.Restore
	}
	return m.glyphs.Minimize, maximize, m.glyphs.Close
}

func (m *Model) renderTitleBar(w window.Window, width int, active bool) string {
	p := m.theme.Palette()
	bg := m.theme.TitleBar(active)
	fg := p.Muted
	if active {
		fg = p.Text
	}
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)

	minimize, maximize, closeBtn := m.titleButtons(w)
	buttons := base.Render(minimize+maximize) + base.Foreground(p.Danger).Render(closeBtn)

	avail := max(0, width-3*config.TitleButtonWidth)
	title := ansi.Truncate(" "+apps.Glyph(w.Icon, m.ascii)+" "+w.Title, avail, "…")
	return base.Width(avail).Bold(active).Render(title) + buttons
}

// =============================================================================
// Taskbar
// =============================================================================

func (m *Model) renderTaskbar() *lipgloss.Layer {
	bg, fg := m.theme.Taskbar()
	p := m.theme.Palette()
	base := lipgloss.NewStyle().Background(bg).Foreground(fg)
	active := m.store.ActiveWindowID()
	overlay := m.store.Transient()

	var sb strings.Builder
	col := 0
	for _, s := range m.taskbarSegments() {
		if s.x < col || s.x+s.width() > m.width {
			continue
		}
		sb.WriteString(base.Render(strings.Repeat(" ", s.x-col)))

		style := base
		switch s.kind {
		case segStart:
			style = style.Foreground(p.Accent).Bold(true)
			if overlay.IsStartMenuOpen {
				style = style.Background(p.Highlight)
			}
		case segSearch:
			if overlay.IsSearchOpen {
				style = style.Background(p.Highlight)
			}
		case segBell:
			if overlay.IsNotificationCenterOpen {
				style = style.Background(p.Highlight)
			}
		case segWindow:
			w, _ := m.store.Window(s.id)
			switch {
			case w.IsMinimized:
				style = style.Foreground(p.Muted)
			case s.id == active:
				style = style.Background(p.Highlight).Underline(true)
			}
		case segTray:
			style = style.Foreground(p.Muted)
		}
		sb.WriteString(style.Render(s.text))
		col = s.x + s.width()
	}
	if col < m.width {
		sb.WriteString(base.Render(strings.Repeat(" ", m.width-col)))
	}
	return lipgloss.NewLayer(sb.String()).X(0).Y(m.desktopRows()).Z(config.ZIndexTaskbar).ID("taskbar")
}

// =============================================================================
// Clipping
// =============================================================================

// clipContent cuts a block to the viewport and returns it with its new
// origin. An empty string means nothing is visible.
func clipContent(content string, x, y, viewportWidth, viewportHeight int) (string, int, int) {
	lines := strings.Split(content, "\n")
	width := 0
	if len(lines) > 0 {
		width = ansi.StringWidth(lines[0])
	}
	if x+width <= 0 || x >= viewportWidth || y+len(lines) <= 0 || y >= viewportHeight {
		return "", max(x, 0), max(y, 0)
	}

	clipTop, clipLeft := 0, 0
	finalX, finalY := x, y
	if y < 0 {
		clipTop, finalY = -y, 0
	}
	if x < 0 {
		clipLeft, finalX = -x, 0
	}

	visible := lines[clipTop:]
	if maxLines := viewportHeight - finalY; maxLines < len(visible) {
		visible = visible[:maxLines]
	}

	if clipLeft > 0 || finalX+width > viewportWidth {
		right := clipLeft + viewportWidth - finalX
		clipped := make([]string, len(visible))
		for i, line := range visible {
			clipped[i] = ansi.Cut(line, clipLeft, right)
		}
		visible = clipped
	}
	return strings.Join(visible, "\n"), finalX, finalY
}

// fill pads text with background to width cells.
func fill(text string, width int, bg, fg color.Color) string {
	return lipgloss.NewStyle().Background(bg).Foreground(fg).Width(width).Render(ansi.Truncate(text, width, ""))
}
