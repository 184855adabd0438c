package desktop

import (
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/tray"
)

// BootMsg advances the boot screen by one frame.
type BootMsg struct{}

// ClockMsg redraws the taskbar clock.
type ClockMsg time.Time

// BootCmd schedules the next boot frame.
func BootCmd() tea.Cmd {
	return tea.Tick(config.BootTick, func(time.Time) tea.Msg {
		return BootMsg{}
	})
}

// ClockCmd schedules the next clock redraw.
func ClockCmd() tea.Cmd {
	return tea.Tick(config.ClockInterval, func(t time.Time) tea.Msg {
		return ClockMsg(t)
	})
}

// Init starts the boot screen, the clock and the tray sampler.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		ClockCmd(),
		tray.Tick(0, m.sampler),
	}
	if m.booting {
		cmds = append(cmds, BootCmd())
	}
	return tea.Batch(cmds...)
}

// Update handles all incoming messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil

	case tea.ColorProfileMsg:
		m.profile = msg.Profile
		return m, nil

	case BootMsg:
		return m, m.advanceBoot()

	case ClockMsg:
		return m, ClockCmd()

	case tray.Msg:
		if msg.Err != nil {
			if m.trayErr == nil {
				m.logger.Warn("tray sample failed", "err", msg.Err)
			}
			m.trayErr = msg.Err
		} else {
			m.trayErr = nil
			m.reading = msg.Reading
			m.cpu.Push(msg.CPU)
		}
		return m, tray.Tick(config.TrayInterval, m.sampler)

	case tea.KeyPressMsg:
		return m, m.handleKey(msg)

	case tea.MouseClickMsg:
		return m, m.handleMouseClick(msg.Mouse())

	case tea.MouseMotionMsg:
		return m, m.handleMouseMotion(msg.Mouse())

	case tea.MouseReleaseMsg:
		return m, m.handleMouseRelease(msg.Mouse())

	case tea.MouseWheelMsg:
		return m, m.handleMouseWheel(msg.Mouse())

	case tea.FocusMsg, tea.BlurMsg:
		// A drag cannot survive the terminal losing focus.
		m.cancelDrag()
		return m, nil
	}
	return m, nil
}

// advanceBoot shows the next boot frame and marks the session booted after
// the last one.
func (m *Model) advanceBoot() tea.Cmd {
	if !m.booting {
		return nil
	}
	m.bootFrame++
	if m.bootFrame < config.BootFrames {
		return BootCmd()
	}
	m.finishBoot()
	return nil
}

func (m *Model) finishBoot() {
	m.booting = false
	m.bootFrame = 0
	m.store.SetHasBooted(true)
	m.logger.Debug("boot finished")
}

func (m *Model) quit() tea.Cmd {
	m.logger.Info("quit requested")
	return tea.Quit
}
