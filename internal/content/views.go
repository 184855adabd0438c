package content

import (
	"fmt"
	"strings"

	"github.com/deskos/deskos/internal/theme"
)

// Env is the session state a view may depend on.
type Env struct {
	DarkMode  bool
	Wallpaper string
	ASCIIOnly bool
}

// View renders the body of an application window.
type View interface {
	Lines(env Env, width int) []string
}

// New returns the view for an app id. Unknown ids get a placeholder.
func New(appID string) View {
	switch appID {
	case "terminal":
		return NewTerminal()
	case "notepad":
		return Notepad{}
	case "file-explorer":
		return FileExplorer{}
	case "settings":
		return Settings{}
	case "vscode":
		return &Editor{Project: CodeSnippets[0].Project}
	case "cad-viewer":
		return CADViewer{}
	case "browser":
		return Browser{}
	}
	return placeholder(appID)
}

type placeholder string

func (p placeholder) Lines(Env, int) []string {
	return []string{"", fmt.Sprintf("  %s is not available.", string(p))}
}

func rule(width int, ascii bool) string {
	ch := "─"
	if ascii {
		ch = "-"
	}
	return strings.Repeat(ch, max(0, width))
}

// Notepad shows the resume.
type Notepad struct{}

func (Notepad) Lines(env Env, width int) []string {
	out := []string{" File  Edit  View      Resume.txt", rule(width, env.ASCIIOnly)}
	return append(out, strings.Split(Resume, "\n")...)
}

// Resume is the document opened by Notepad.
var Resume = strings.TrimSpace(`
═══════════════════════════════════════════════════
              GAZI FAYSAL JUBAYER
         Mechanical Engineer & Developer
═══════════════════════════════════════════════════

CONTACT
───────────────────────────────────────────────────
Email: gazi@example.com
GitHub: github.com/gazifaysaljubayer
LinkedIn: linkedin.com/in/gazifaysaljubayer
Location: Dhaka, Bangladesh

PROFESSIONAL SUMMARY
───────────────────────────────────────────────────
Mechanical Engineering graduate with a strong
foundation in CAD design, thermal analysis, and
programming. Experienced in creating automation
tools and web applications that solve real
engineering problems.

EDUCATION
───────────────────────────────────────────────────
Bachelor of Science in Mechanical Engineering
Bangladesh University of Engineering & Technology
2020 - 2024 | GPA: 3.75/4.00

TECHNICAL SKILLS
───────────────────────────────────────────────────
Engineering:  SolidWorks, AutoCAD, ANSYS, Matlab
              Thermodynamics, Fluid Mechanics, FEA
Programming:  Python, JavaScript/TypeScript, C++
              React, Next.js, Three.js, Node.js
Tools:        Git, Docker, Linux, VS Code

EXPERIENCE
───────────────────────────────────────────────────
Mechanical Design Intern | Example Engineering Ltd.
June 2023 - August 2023
  - Assisted in CAD modeling of industrial components
  - Performed FEA analysis for structural optimization
  - Created technical documentation and drawings

CERTIFICATIONS
───────────────────────────────────────────────────
- Certified SolidWorks Associate (CSWA)
- React Developer Certificate - Meta
`)

// NodeKind classifies file tree entries.
type NodeKind string

const (
	NodeDrive   NodeKind = "drive"
	NodeFolder  NodeKind = "folder"
	NodeFile    NodeKind = "file"
	NodeProject NodeKind = "project"
)

// Node is an entry of the read-only file tree.
type Node struct {
	Name      string
	Kind      NodeKind
	ProjectID string
	Children  []Node
}

// FileSystem is the tree shown by the File Explorer.
var FileSystem = []Node{
	{Name: "Local Disk (C:)", Kind: NodeDrive, Children: []Node{
		{Name: "Projects", Kind: NodeFolder, Children: []Node{
			{Name: "Code", Kind: NodeFolder, Children: []Node{
				{Name: "portfolio-os", Kind: NodeProject, ProjectID: "proj_1"},
				{Name: "automation-dashboard", Kind: NodeProject, ProjectID: "proj_3"},
			}},
		}},
		{Name: "Users", Kind: NodeFolder, Children: []Node{
			{Name: "Gazi", Kind: NodeFolder, Children: []Node{
				{Name: "Documents", Kind: NodeFolder, Children: []Node{
					{Name: "Resume.pdf", Kind: NodeFile},
				}},
			}},
		}},
	}},
	{Name: "Data (D:)", Kind: NodeDrive, Children: []Node{
		{Name: "Projects", Kind: NodeFolder, Children: []Node{
			{Name: "CAD", Kind: NodeFolder, Children: []Node{
				{Name: "gearbox-assembly", Kind: NodeProject, ProjectID: "proj_2"},
				{Name: "heat-exchanger", Kind: NodeProject, ProjectID: "proj_4"},
			}},
		}},
	}},
}

// FileExplorer lists the file tree fully expanded.
type FileExplorer struct{}

func (FileExplorer) Lines(env Env, width int) []string {
	out := []string{" ← →  This PC", rule(width, env.ASCIIOnly)}
	for _, n := range FileSystem {
		out = walkTree(out, n, "", env.ASCIIOnly)
	}
	return out
}

func walkTree(out []string, n Node, indent string, ascii bool) []string {
	line := indent + nodeGlyph(n.Kind, ascii) + " " + n.Name
	if n.Kind == NodeProject {
		if p, ok := ProjectByID(n.ProjectID); ok {
			line += "  (" + p.Kind + ")"
		}
	}
	out = append(out, line)
	for _, c := range n.Children {
		out = walkTree(out, c, indent+"  ", ascii)
	}
	return out
}

func nodeGlyph(k NodeKind, ascii bool) string {
	if ascii {
		switch k {
		case NodeDrive:
			return "[=]"
		case NodeFolder:
			return "[+]"
		case NodeProject:
			return "[*]"
		}
		return "[ ]"
	}
	switch k {
	case NodeDrive:
		return "🖴"
	case NodeFolder:
		return "▸"
	case NodeProject:
		return "◆"
	}
	return "·"
}

// ProjectByID finds a portfolio project.
func ProjectByID(id string) (Project, bool) {
	for _, p := range Projects {
		if p.ID == id {
			return p, true
		}
	}
	return Project{}, false
}

// SettingsAction is what a click on a Settings line does.
type SettingsAction int

const (
	SettingsNone SettingsAction = iota
	SettingsToggleDarkMode
	SettingsSetWallpaper
)

// Settings shows the appearance options. Line numbers are stable so the
// desktop can map clicks through SettingsHit.
type Settings struct{}

const (
	settingsDarkLine       = 3
	settingsWallpaperStart = 6
)

func (Settings) Lines(env Env, width int) []string {
	mark := func(on bool) string {
		switch {
		case on && env.ASCIIOnly:
			return "(*)"
		case on:
			return "●"
		case env.ASCIIOnly:
			return "( )"
		}
		return "○"
	}
	out := []string{
		" Settings",
		rule(width, env.ASCIIOnly),
		" Personalization",
		fmt.Sprintf("  %s Dark mode", mark(env.DarkMode)),
		"",
		" Wallpaper",
	}
	for _, w := range theme.Wallpapers() {
		out = append(out, fmt.Sprintf("  %s %s", mark(w.ID == theme.LookupWallpaper(env.Wallpaper).ID), w.Name))
	}
	return append(out, "", " About", "  DeskOS v1.0 · "+Owner.Name)
}

// SettingsHit maps a clicked body line to an action.
func SettingsHit(line int) (SettingsAction, string) {
	if line == settingsDarkLine {
		return SettingsToggleDarkMode, ""
	}
	ws := theme.Wallpapers()
	if i := line - settingsWallpaperStart; i >= 0 && i < len(ws) {
		return SettingsSetWallpaper, ws[i].ID
	}
	return SettingsNone, ""
}

// Snippet is a source file shown in the editor.
type Snippet struct {
	Project  string
	Language string
	Filename string
	Code     string
}

// CodeSnippets are the files the editor can show.
var CodeSnippets = []Snippet{
	{Project: "portfolio-os", Language: "go", Filename: "registry.go", Code: `type Registry struct {
	windows    map[string]*Window
	activeID   string
	nextZIndex int64
}

func (r *Registry) Focus(id string) {
	w, ok := r.windows[id]
	if !ok {
		return
	}
	w.ZIndex = r.takeZIndex()
	r.activeID = id
}`},
	{Project: "automation-dashboard", Language: "python", Filename: "sensor_monitor.py", Code: `class SensorMonitor:
    def __init__(self, broker: str, port: int = 1883):
        self.client = mqtt.Client()
        self.client.on_message = self.on_message
        self.client.connect(broker, port)

    def process_reading(self, reading: dict):
        if reading['temperature'] > 85:
            self.trigger_alert('HIGH_TEMP', reading)
        if reading['pressure'] > 150:
            self.trigger_alert('HIGH_PRESSURE', reading)`},
}

// Editor shows one project's snippet with line numbers.
type Editor struct {
	Project string
}

// Next switches to the following project.
func (e *Editor) Next() {
	for i, s := range CodeSnippets {
		if s.Project == e.Project {
			e.Project = CodeSnippets[(i+1)%len(CodeSnippets)].Project
			return
		}
	}
	e.Project = CodeSnippets[0].Project
}

func (e *Editor) Lines(env Env, width int) []string {
	snip := CodeSnippets[0]
	for _, s := range CodeSnippets {
		if s.Project == e.Project {
			snip = s
		}
	}
	out := []string{
		fmt.Sprintf(" EXPLORER: %s   %s", snip.Project, snip.Filename),
		rule(width, env.ASCIIOnly),
	}
	for i, l := range strings.Split(snip.Code, "\n") {
		out = append(out, fmt.Sprintf("%3d  %s", i+1, strings.ReplaceAll(l, "\t", "    ")))
	}
	return append(out, "", fmt.Sprintf(" %s · UTF-8 · Tab to switch project", snip.Language))
}

// CADViewer shows a wireframe of the gearbox model.
type CADViewer struct{}

func (CADViewer) Lines(env Env, width int) []string {
	out := []string{" Gearbox Assembly   Reset  Zoom  Grid  Wireframe", rule(width, env.ASCIIOnly)}
	return append(out,
		"",
		"        +----------+",
		"       /|         /|        Parts:  12",
		"      +----------+ |        Mass:   4.2 kg",
		"      | |  (o)   | |        Material: AISI 4140",
		"      | +--(O)---|-+        Stages: 3",
		"      |/   (o)   |/",
		"      +----------+",
		"",
		" SolidWorks 2023 · Stress analysis in ANSYS",
	)
}

// Bookmark is a link in the browser's new tab page.
type Bookmark struct {
	Name        string
	URL         string
	Description string
}

// QuickLinks are shown on the browser's new tab page.
var QuickLinks = []Bookmark{
	{Name: "GitHub Profile", URL: Owner.GitHub, Description: "View my repositories and contributions"},
	{Name: "LinkedIn", URL: Owner.LinkedIn, Description: "Connect with me professionally"},
	{Name: "Portfolio OS", URL: "deskos://home", Description: "You are here!"},
}

// Browser shows the new tab page.
type Browser struct{}

func (Browser) Lines(env Env, width int) []string {
	out := []string{" ← → ⟳  edge://newtab", rule(width, env.ASCIIOnly), "", "   Quick links", ""}
	for _, b := range QuickLinks {
		out = append(out, "   "+b.Name, "     "+b.URL, "     "+b.Description, "")
	}
	return out
}

// NotificationLines renders the notification center.
func NotificationLines() []string {
	out := []string{"Notifications", ""}
	for _, n := range Notifications {
		out = append(out, n.Title, "  "+n.Message, "  "+n.Time, "")
	}
	return out
}
