package input

import (
	"testing"

	tea "charm.land/bubbletea/v2"
	"github.com/stretchr/testify/assert"

	"github.com/deskos/deskos/internal/config"
)

func TestDefaultKeyMap(t *testing.T) {
	km := DefaultKeyMap()

	tests := []struct {
		key  tea.KeyPressMsg
		want Action
	}{
		{tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl}, ActionQuit},
		{tea.KeyPressMsg{Code: 'w', Mod: tea.ModCtrl}, ActionCloseWindow},
		{tea.KeyPressMsg{Code: 'd', Mod: tea.ModAlt}, ActionToggleDarkMode},
		{tea.KeyPressMsg{Code: tea.KeyEscape}, ActionEscape},
		{tea.KeyPressMsg{Code: tea.KeyF1}, ActionToggleStartMenu},
		{tea.KeyPressMsg{Code: 'x', Text: "x"}, ActionNone},
	}
	for _, tt := range tests {
		t.Run(tt.key.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, km.Match(tt.key))
		})
	}

	assert.Equal(t, []string{"ctrl+c", "ctrl+q"}, km.Keys(ActionQuit))
}

func TestNewKeyMapFromConfig(t *testing.T) {
	km := NewKeyMap(map[string][]string{
		config.ActionToggleSearch:    {"ctrl+k", "ctrl+p"},
		config.ActionToggleStartMenu: {"ctrl+p"},
		"launch_rockets":             {"ctrl+r"},
		config.ActionQuit:            {""},
	})

	assert.Equal(t, ActionToggleSearch, km.Lookup("ctrl+k"))
	assert.Equal(t, ActionToggleSearch, km.Lookup("ctrl+p"), "toggle_search sorts before toggle_start_menu")
	assert.Equal(t, ActionNone, km.Lookup("ctrl+r"))
	assert.Equal(t, ActionNone, km.Lookup(""))
	assert.Empty(t, km.Keys(ActionQuit))
}

func TestActionNames(t *testing.T) {
	for name := range config.DefaultKeybindings() {
		a, ok := ParseAction(name)
		assert.True(t, ok, name)
		assert.Equal(t, name, a.String())
	}
	_, ok := ParseAction("nope")
	assert.False(t, ok)
	assert.Equal(t, "none", ActionNone.String())
}
