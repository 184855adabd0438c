package desktop

import (
	"fmt"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"github.com/charmbracelet/x/ansi"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/content"
	"github.com/deskos/deskos/internal/session"
)

// renderOverlays draws whichever of the start menu, search panel or
// notification center is open.
func (m *Model) renderOverlays() []*lipgloss.Layer {
	r, ok := m.overlayRect()
	if !ok || r.w < 4 || r.h < 3 {
		return nil
	}

	var lines []string
	switch m.store.Overlay() {
	case session.OverlayStartMenu:
		lines = m.startMenuLines(r.w - 2)
	case session.OverlaySearch:
		lines = m.searchLines(r.w - 2)
	case session.OverlayNotificationCenter:
		lines = m.notificationLines(r.w - 2)
	}
	if len(lines) > r.h-2 {
		lines = lines[:r.h-2]
	}

	p := m.theme.Palette()
	box := lipgloss.NewStyle().
		Border(m.border).
		BorderForeground(p.BorderActive).
		BorderBackground(p.Panel).
		Background(p.Panel).
		Foreground(p.Text).
		Width(r.w).
		Height(r.h).
		Render(strings.Join(lines, "\n"))

	return []*lipgloss.Layer{
		lipgloss.NewLayer(box).X(r.x).Y(r.y).Z(config.ZIndexOverlay).ID(m.store.Overlay().String()),
	}
}

func (m *Model) startMenuLines(width int) []string {
	p := m.theme.Palette()
	var lines []string
	for _, e := range m.startMenuEntries() {
		switch {
		case e.header:
			lines = append(lines, fill(e.text, width, p.Panel, p.Muted))
		case e.action == menuPower:
			lines = append(lines, fill(e.text, width, p.Panel, p.Danger))
		default:
			lines = append(lines, fill(e.text, width, p.Panel, p.Text))
		}
	}
	return lines
}

func (m *Model) searchLines(width int) []string {
	p := m.theme.Palette()
	query := m.store.Transient().SearchQuery
	lines := []string{
		fill(m.glyphs.Search+query+m.glyphs.Cursor, width, p.Panel, p.Text),
		fill(strings.Repeat("-", width), width, p.Panel, p.Border),
	}
	results := m.searchResults()
	if len(results) == 0 {
		return append(lines, fill(fmt.Sprintf("  No results for %q", query), width, p.Panel, p.Muted))
	}
	for i, a := range results {
		text := "  " + apps.Glyph(a.Icon, m.ascii) + " " + a.Name
		if i == 0 {
			text = m.glyphs.Selected + " " + apps.Glyph(a.Icon, m.ascii) + " " + a.Name
		}
		cat := string(a.Category)
		pad := max(1, width-ansi.StringWidth(text)-len(cat)-1)
		line := text + strings.Repeat(" ", pad) + cat
		bg := p.Panel
		if i == 0 {
			bg = p.Highlight
		}
		lines = append(lines, fill(line, width, bg, p.Text))
	}
	return lines
}

func (m *Model) notificationLines(width int) []string {
	p := m.theme.Palette()
	var lines []string
	for i, l := range content.NotificationLines() {
		fg := p.Text
		if i == 0 {
			fg = p.Accent
		} else if strings.HasPrefix(l, "  ") {
			fg = p.Muted
		}
		lines = append(lines, fill(" "+l, width, p.Panel, fg))
	}
	return lines
}

// =============================================================================
// Boot Screen
// =============================================================================

var bootLogo = []string{
	"██████╗ ███████╗███████╗██╗  ██╗ ██████╗ ███████╗",
	"██╔══██╗██╔════╝██╔════╝██║ ██╔╝██╔═══██╗██╔════╝",
	"██║  ██║█████╗  ███████╗█████╔╝ ██║   ██║███████╗",
	"██║  ██║██╔══╝  ╚════██║██╔═██╗ ██║   ██║╚════██║",
	"██████╔╝███████╗███████║██║  ██╗╚██████╔╝███████║",
	"╚═════╝ ╚══════╝╚══════╝╚═╝  ╚═╝ ╚═════╝ ╚══════╝",
}

const (
	bootBIOSFrames    = 4
	bootWelcomeFrames = 3
	bootBarWidth      = 30
)

// bootSkills are announced one per frame while loading.
func bootSkills() []string {
	return slices.Concat(content.Skills.Engineering, content.Skills.Programming)
}

// bootLines returns the boot screen text for a frame: a BIOS banner, then a
// loading bar walking through the skills, then a welcome.
func (m *Model) bootLines(frame int) []string {
	loading := config.BootFrames - bootBIOSFrames - bootWelcomeFrames
	switch {
	case frame < bootBIOSFrames:
		logo := bootLogo
		if m.ascii {
			logo = []string{"D E S K O S"}
		}
		return slices.Concat(logo, []string{
			"",
			"DeskOS BIOS v1.0",
			"Copyright (C) 2024 " + content.Owner.Name,
			"",
			"Initializing system...",
		})
	case frame < bootBIOSFrames+loading:
		step := frame - bootBIOSFrames + 1
		skills := bootSkills()
		current := skills[min(len(skills)-1, (step-1)*len(skills)/loading)]
		filled := step * bootBarWidth / loading
		full, empty := "█", "░"
		if m.ascii {
			full, empty = "#", "."
		}
		return []string{
			"DeskOS",
			"",
			"Loading: " + current,
			"",
			strings.Repeat(full, filled) + strings.Repeat(empty, bootBarWidth-filled),
		}
	default:
		return []string{"Welcome", "", content.Owner.Name}
	}
}

func (m *Model) renderBoot() *lipgloss.Layer {
	bg, fg := lipgloss.Color("#000000"), lipgloss.Color("#22c55e")
	if m.bootFrame >= bootBIOSFrames {
		bg, fg = lipgloss.Color("#0078d4"), lipgloss.Color("#ffffff")
	}
	text := lipgloss.NewStyle().
		Foreground(fg).
		Background(bg).
		Align(lipgloss.Center).
		Render(strings.Join(m.bootLines(m.bootFrame), "\n"))

	screen := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, text,
		lipgloss.WithWhitespaceStyle(lipgloss.NewStyle().Background(bg)))
	return lipgloss.NewLayer(screen).X(0).Y(0).Z(config.ZIndexBoot).ID("boot")
}
