// Package apps is the static catalog of applications the desktop can open.
package apps

import (
	"strings"

	"github.com/samber/lo"
	"github.com/sahilm/fuzzy"
)

// Category groups apps in the start menu.
type Category string

const (
	CategorySystem       Category = "system"
	CategoryDevelopment  Category = "development"
	CategoryProductivity Category = "productivity"
)

// App describes one launchable application.
type App struct {
	ID              string
	Name            string
	Icon            string
	Category        Category
	ShowOnDesktop   bool
	ShowInStartMenu bool
}

var registry = []App{
	{ID: "file-explorer", Name: "File Explorer", Icon: "folder", Category: CategorySystem, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "vscode", Name: "VS Code", Icon: "code", Category: CategoryDevelopment, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "cad-viewer", Name: "3D Viewer", Icon: "box", Category: CategoryDevelopment, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "notepad", Name: "Notepad", Icon: "file-text", Category: CategoryProductivity, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "terminal", Name: "Terminal", Icon: "terminal", Category: CategoryDevelopment, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "browser", Name: "Edge", Icon: "globe", Category: CategoryProductivity, ShowOnDesktop: true, ShowInStartMenu: true},
	{ID: "settings", Name: "Settings", Icon: "settings", Category: CategorySystem, ShowOnDesktop: true, ShowInStartMenu: true},
}

// All returns every app in catalog order.
func All() []App {
	return append([]App(nil), registry...)
}

// Get looks an app up by id.
func Get(id string) (App, bool) {
	return lo.Find(registry, func(a App) bool { return a.ID == id })
}

// Desktop returns the apps that get a desktop icon.
func Desktop() []App {
	return lo.Filter(registry, func(a App, _ int) bool { return a.ShowOnDesktop })
}

// StartMenu returns the apps listed in the start menu.
func StartMenu() []App {
	return lo.Filter(registry, func(a App, _ int) bool { return a.ShowInStartMenu })
}

// ByCategory returns the apps in category.
func ByCategory(c Category) []App {
	return lo.Filter(registry, func(a App, _ int) bool { return a.Category == c })
}

// Categories returns every category in use, in catalog order.
func Categories() []Category {
	return lo.Uniq(lo.Map(registry, func(a App, _ int) Category { return a.Category }))
}

type searchSource []App

func (s searchSource) String(i int) string {
	return s[i].Name + " " + s[i].ID
}

func (s searchSource) Len() int {
	return len(s)
}

// Search fuzzy-matches query against start menu app names and ids, best
// match first. An empty query returns every start menu app.
func Search(query string) []App {
	candidates := StartMenu()
	query = strings.TrimSpace(query)
	if query == "" {
		return candidates
	}
	matches := fuzzy.FindFrom(query, searchSource(candidates))
	return lo.Map(matches, func(m fuzzy.Match, _ int) App { return candidates[m.Index] })
}

var glyphs = map[string]string{
	"folder":    "📁",
	"code":      "⌨",
	"box":       "⬢",
	"file-text": "📄",
	"terminal":  "▶",
	"globe":     "🌐",
	"settings":  "⚙",
}

var asciiGlyphs = map[string]string{
	"folder":    "[D]",
	"code":      "</>",
	"box":       "[#]",
	"file-text": "[=]",
	"terminal":  ">_",
	"globe":     "(@)",
	"settings":  "{*}",
}

// Glyph returns the symbol drawn for an icon name.
func Glyph(icon string, asciiOnly bool) string {
	table := glyphs
	if asciiOnly {
		table = asciiGlyphs
	}
	if g, ok := table[icon]; ok {
		return g
	}
	if asciiOnly {
		return "[?]"
	}
	return "▪"
}
