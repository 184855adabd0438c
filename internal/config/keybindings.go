package config

import (
	"slices"
	"strings"
)

// Action names accepted in the [keybindings] section.
const (
	ActionQuit                = "quit"
	ActionCloseWindow         = "close_window"
	ActionMinimizeWindow      = "minimize_window"
	ActionToggleMaximize      = "toggle_maximize"
	ActionCycleWindows        = "cycle_windows"
	ActionToggleStartMenu     = "toggle_start_menu"
	ActionToggleSearch        = "toggle_search"
	ActionToggleNotifications = "toggle_notifications"
	ActionToggleDarkMode      = "toggle_dark_mode"
	ActionEscape              = "escape"
)

// Keybinding represents a single keybinding with its key and description
type Keybinding struct {
	Action      string
	Keys        []string
	Description string
}

// KeybindingSection groups related keybindings
type KeybindingSection struct {
	Title    string
	Bindings []Keybinding
}

var actionDescriptions = map[string]string{
	ActionQuit:                "Quit",
	ActionCloseWindow:         "Close the active window",
	ActionMinimizeWindow:      "Minimize the active window",
	ActionToggleMaximize:      "Maximize or restore the active window",
	ActionCycleWindows:        "Focus the next window",
	ActionToggleStartMenu:     "Open or close the start menu",
	ActionToggleSearch:        "Open or close search",
	ActionToggleNotifications: "Open or close notifications",
	ActionToggleDarkMode:      "Switch between dark and light mode",
	ActionEscape:              "Close overlays",
}

var sections = []struct {
	title   string
	actions []string
}{
	{"Windows", []string{ActionCloseWindow, ActionMinimizeWindow, ActionToggleMaximize, ActionCycleWindows}},
	{"Shell", []string{ActionToggleStartMenu, ActionToggleSearch, ActionToggleNotifications, ActionEscape}},
	{"System", []string{ActionToggleDarkMode, ActionQuit}},
}

// DefaultKeybindings returns the built-in action to keys map.
func DefaultKeybindings() map[string][]string {
	return map[string][]string{
		ActionQuit:                {"ctrl+c", "ctrl+q"},
		ActionCloseWindow:         {"ctrl+w"},
		ActionMinimizeWindow:      {"alt+m"},
		ActionToggleMaximize:      {"alt+enter", "f11"},
		ActionCycleWindows:        {"ctrl+tab", "f6"},
		ActionToggleStartMenu:     {"alt+space", "f1"},
		ActionToggleSearch:        {"ctrl+f"},
		ActionToggleNotifications: {"alt+n"},
		ActionToggleDarkMode:      {"alt+d"},
		ActionEscape:              {"esc"},
	}
}

// IsAction reports whether name is a known action.
func IsAction(name string) bool {
	_, ok := actionDescriptions[name]
	return ok
}

// GetKeybindings returns the help sections for a resolved keybinding map.
func GetKeybindings(bindings map[string][]string) []KeybindingSection {
	out := make([]KeybindingSection, 0, len(sections))
	for _, s := range sections {
		sec := KeybindingSection{Title: s.title}
		for _, action := range s.actions {
			keys := slices.Clone(bindings[action])
			sec.Bindings = append(sec.Bindings, Keybinding{
				Action:      action,
				Keys:        keys,
				Description: actionDescriptions[action],
			})
		}
		out = append(out, sec)
	}
	return out
}

// normalizeKey lowercases a key and folds common aliases.
func normalizeKey(k string) string {
	k = strings.ToLower(strings.TrimSpace(k))
	switch k {
	case "escape":
		return "esc"
	case "return":
		return "enter"
	}
	k = strings.ReplaceAll(k, "opt+", "alt+")
	return k
}
