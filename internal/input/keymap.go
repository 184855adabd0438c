package input

import (
	"maps"
	"slices"

	tea "charm.land/bubbletea/v2"

	"github.com/deskos/deskos/internal/config"
)

// Action is a desktop command bound to keys.
type Action int

const (
	ActionNone Action = iota
	ActionQuit
	ActionCloseWindow
	ActionMinimizeWindow
	ActionToggleMaximize
	ActionCycleWindows
	ActionToggleStartMenu
	ActionToggleSearch
	ActionToggleNotifications
	ActionToggleDarkMode
	ActionEscape
)

var actionNames = map[Action]string{
	ActionQuit:                config.ActionQuit,
	ActionCloseWindow:         config.ActionCloseWindow,
	ActionMinimizeWindow:      config.ActionMinimizeWindow,
	ActionToggleMaximize:      config.ActionToggleMaximize,
	ActionCycleWindows:        config.ActionCycleWindows,
	ActionToggleStartMenu:     config.ActionToggleStartMenu,
	ActionToggleSearch:        config.ActionToggleSearch,
	ActionToggleNotifications: config.ActionToggleNotifications,
	ActionToggleDarkMode:      config.ActionToggleDarkMode,
	ActionEscape:              config.ActionEscape,
}

func (a Action) String() string {
	if n, ok := actionNames[a]; ok {
		return n
	}
	return "none"
}

// ParseAction looks an action up by its config name.
func ParseAction(name string) (Action, bool) {
	for a, n := range actionNames {
		if n == name {
			return a, true
		}
	}
	return ActionNone, false
}

// KeyMap resolves key strings, as produced by tea.KeyPressMsg.String, to actions.
type KeyMap struct {
	keys map[string]Action
}

// NewKeyMap builds a key map from config bindings. Unknown actions are
// skipped; when two actions share a key the one whose name sorts first wins.
func NewKeyMap(bindings map[string][]string) KeyMap {
	km := KeyMap{keys: make(map[string]Action)}
	for _, name := range slices.Sorted(maps.Keys(bindings)) {
		a, ok := ParseAction(name)
		if !ok {
			continue
		}
		for _, k := range bindings[name] {
			if _, taken := km.keys[k]; !taken && k != "" {
				km.keys[k] = a
			}
		}
	}
	return km
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return NewKeyMap(config.DefaultKeybindings())
}

// Lookup returns the action bound to key.
func (k KeyMap) Lookup(key string) Action {
	return k.keys[key]
}

// Match returns the action bound to a key press.
func (k KeyMap) Match(msg tea.KeyPressMsg) Action {
	return k.Lookup(msg.String())
}

// Keys returns the keys bound to a, sorted.
func (k KeyMap) Keys(a Action) []string {
	var out []string
	for key, bound := range k.keys {
		if bound == a {
			out = append(out, key)
		}
	}
	slices.Sort(out)
	return out
}
