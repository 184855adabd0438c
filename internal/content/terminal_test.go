package content

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTerminal() *Terminal {
	term := NewTerminal()
	term.now = func() time.Time { return time.Date(2024, 3, 9, 12, 0, 0, 0, time.UTC) }
	return term
}

func TestTerminalCommands(t *testing.T) {
	tests := []struct {
		line      string
		wantFirst string
		wantErr   bool
	}{
		{"help", "Available commands:", false},
		{"whoami", "User: " + Owner.Name, false},
		{"  WHOAMI  ", "User: " + Owner.Name, false},
		{"skills", "╭─────────────────────────────────────╮", false},
		{"education", "Education History:", false},
		{"git log education", "Education History:", false},
		{"projects", "Projects:", false},
		{"experience", "Work Experience:", false},
		{"contact", "Contact Information:", false},
		{"npm run contact", "Contact Information:", false},
		{"date", "Sat, 09 Mar 2024 12:00:00 UTC", false},
		{"git log", "commit a3f2e1d (HEAD -> main, origin/main)", false},
		{"echo hello there", "hello there", false},
		{"sudo rm -rf /", "'sudo rm -rf /' is not recognized as a command.", true},
	}

	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			term := newTestTerminal()
			term.Execute(tt.line)
			last := term.History[len(term.History)-1]
			require.NotEmpty(t, last.Output)
			assert.Equal(t, tt.wantFirst, last.Output[0])
			assert.Equal(t, tt.wantErr, last.IsError)
			assert.Equal(t, tt.line, last.Command)
		})
	}
}

func TestTerminalUnknownCommandHint(t *testing.T) {
	term := newTestTerminal()
	term.Execute("foo")
	last := term.History[len(term.History)-1]
	assert.Equal(t, []string{
		"'foo' is not recognized as a command.",
		"Type 'help' for available commands.",
	}, last.Output)
}

func TestTerminalClear(t *testing.T) {
	term := newTestTerminal()
	term.Execute("whoami")
	term.Execute("clear")
	assert.Empty(t, term.History)
	assert.Equal(t, []string{prompt + "█"}, term.Lines(Env{}, 80))
}

func TestTerminalInputAndRecall(t *testing.T) {
	term := newTestTerminal()
	term.Type("whoam")
	term.Type("ix")
	term.Backspace()
	assert.Equal(t, "whoami", term.Input)
	term.Submit()
	assert.Empty(t, term.Input)

	term.Type("date")
	term.Submit()

	term.Previous()
	assert.Equal(t, "date", term.Input)
	term.Previous()
	assert.Equal(t, "whoami", term.Input)
	term.Previous()
	assert.Equal(t, "whoami", term.Input, "stops at oldest")
	term.Next()
	assert.Equal(t, "date", term.Input)
	term.Next()
	assert.Empty(t, term.Input)

	term.Backspace()
	assert.Empty(t, term.Input)
}

func TestTerminalLines(t *testing.T) {
	term := newTestTerminal()
	term.Execute("echo hi")
	term.Type("he")
	lines := term.Lines(Env{}, 80)
	assert.Equal(t, "DeskOS Terminal v1.0", lines[0])
	assert.Contains(t, lines, prompt+"echo hi")
	assert.Contains(t, lines, "hi")
	assert.Equal(t, prompt+"he█", lines[len(lines)-1])
}
