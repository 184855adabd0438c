package content

import (
	"fmt"
	"strings"
	"time"
)

// Entry is one executed command and what it printed.
type Entry struct {
	Command string
	Output  []string
	IsError bool
}

// Terminal is the scripted shell shown in the Terminal app. It only knows a
// fixed table of commands.
type Terminal struct {
	History []Entry
	Input   string

	recall    []string
	recallIdx int
	now       func() time.Time
}

// NewTerminal returns a terminal showing the welcome banner.
func NewTerminal() *Terminal {
	return &Terminal{
		History: []Entry{{Output: []string{
			"DeskOS Terminal v1.0",
			"Welcome, visitor! Type 'help' for available commands.",
			"",
		}}},
		recallIdx: -1,
		now:       time.Now,
	}
}

type command func(now time.Time) []string

var commands = map[string]command{
	"help":              func(time.Time) []string { return helpText },
	"whoami":            func(time.Time) []string { return whoami() },
	"skills":            func(time.Time) []string { return skills() },
	"education":         func(time.Time) []string { return education() },
	"projects":          func(time.Time) []string { return projects() },
	"experience":        func(time.Time) []string { return experience() },
	"contact":           func(time.Time) []string { return contact() },
	"neofetch":          neofetch,
	"date":              func(now time.Time) []string { return []string{now.Format(time.RFC1123)} },
	"npm run contact":   func(time.Time) []string { return contact() },
	"git log":           gitLog,
	"git log education": func(time.Time) []string { return education() },
}

var helpText = []string{
	"Available commands:",
	"",
	"  whoami          - Display user information",
	"  skills          - List all skills",
	"  education       - Show education history",
	"  projects        - List all projects",
	"  experience      - Show work experience",
	"  contact         - Display contact information",
	"  clear           - Clear the terminal",
	"  neofetch        - System information",
	"  echo <text>     - Print text to terminal",
	"  date            - Display current date/time",
	"  npm run contact - Open contact info",
	"  git log         - Show recent commits (simulated)",
	"",
	"Type 'help' for this message.",
}

// Execute runs line and appends the result to the history.
func (t *Terminal) Execute(line string) {
	cmd := strings.ToLower(strings.TrimSpace(line))
	if cmd != "" {
		t.recall = append([]string{line}, t.recall...)
	}
	t.recallIdx = -1

	switch {
	case cmd == "":
		t.History = append(t.History, Entry{})
	case cmd == "clear":
		t.History = nil
	case strings.HasPrefix(cmd, "echo "):
		t.History = append(t.History, Entry{Command: line, Output: []string{strings.TrimSpace(line)[5:]}})
	default:
		fn, ok := commands[cmd]
		if !ok {
			t.History = append(t.History, Entry{
				Command: line,
				Output: []string{
					fmt.Sprintf("'%s' is not recognized as a command.", line),
					"Type 'help' for available commands.",
				},
				IsError: true,
			})
			return
		}
		t.History = append(t.History, Entry{Command: line, Output: fn(t.now())})
	}
}

// Submit executes the pending input and clears it.
func (t *Terminal) Submit() {
	t.Execute(t.Input)
	t.Input = ""
}

// Type appends text to the pending input.
func (t *Terminal) Type(s string) {
	t.Input += s
}

// Backspace removes the last rune of the pending input.
func (t *Terminal) Backspace() {
	if r := []rune(t.Input); len(r) > 0 {
		t.Input = string(r[:len(r)-1])
	}
}

// Previous recalls an older command into the input.
func (t *Terminal) Previous() {
	if t.recallIdx+1 < len(t.recall) {
		t.recallIdx++
		t.Input = t.recall[t.recallIdx]
	}
}

// Next recalls a newer command, ending at an empty line.
func (t *Terminal) Next() {
	switch {
	case t.recallIdx > 0:
		t.recallIdx--
		t.Input = t.recall[t.recallIdx]
	case t.recallIdx == 0:
		t.recallIdx = -1
		t.Input = ""
	}
}

// Lines renders the history and prompt.
func (t *Terminal) Lines(Env, int) []string {
	var out []string
	for _, e := range t.History {
		if e.Command != "" {
			out = append(out, prompt+e.Command)
		}
		out = append(out, e.Output...)
	}
	return append(out, prompt+t.Input+"█")
}

const prompt = "visitor@deskos:~$ "

func whoami() []string {
	return []string{
		"User: " + Owner.Name,
		"Role: " + Owner.Role,
		"Location: " + Owner.Location,
		"",
		Owner.Bio,
	}
}

func skills() []string {
	out := []string{
		"╭─────────────────────────────────────╮",
		"│           SKILLS MATRIX             │",
		"╰─────────────────────────────────────╯",
		"",
		"Engineering:",
	}
	for _, s := range Skills.Engineering {
		out = append(out, "  ▸ "+s)
	}
	out = append(out, "", "Programming:")
	for _, s := range Skills.Programming {
		out = append(out, "  ▸ "+s)
	}
	return out
}

func education() []string {
	out := []string{"Education History:", ""}
	for _, e := range EducationHistory {
		out = append(out,
			"┌─ "+e.Degree,
			"│  "+e.Institution,
			"│  "+e.Year,
			"└─ Location: "+e.Location,
			"",
		)
	}
	return out
}

func projects() []string {
	out := []string{"Projects:", ""}
	for i, p := range Projects {
		out = append(out,
			fmt.Sprintf("[%d] %s", i+1, p.Title),
			"    Type: "+p.Kind,
			"    "+p.Description,
			"    Tech: "+strings.Join(p.Tech, ", "),
			"",
		)
	}
	return out
}

func experience() []string {
	out := []string{"Work Experience:", ""}
	for _, e := range WorkHistory {
		out = append(out,
			"╔═══════════════════════════════════════",
			"║ "+e.Title,
			"║ "+e.Company+" | "+e.Period,
			"╟───────────────────────────────────────",
			"║ "+e.Description,
			"╚═══════════════════════════════════════",
			"",
		)
	}
	return out
}

func contact() []string {
	return []string{
		"Contact Information:",
		"",
		"  Email:    " + Owner.Email,
		"  GitHub:   " + Owner.GitHub,
		"  LinkedIn: " + Owner.LinkedIn,
		"",
		"Feel free to reach out!",
	}
}

func neofetch(now time.Time) []string {
	return []string{
		"",
		"   ┌────────┐    visitor@deskos",
		"   │ ▓▓  ▓▓ │    ──────────────",
		"   │ ▓▓  ▓▓ │    OS: DeskOS v1.0",
		"   └────────┘    Shell: deskterm",
		"    ▀▀▀▀▀▀▀▀     Host: " + Owner.Name,
		"                 Date: " + now.Format(time.DateOnly),
		"",
	}
}

func gitLog(now time.Time) []string {
	day := 24 * time.Hour
	return []string{
		"commit a3f2e1d (HEAD -> main, origin/main)",
		"Author: " + Owner.Name + " <" + Owner.Email + ">",
		"Date:   " + now.Format(time.DateOnly),
		"",
		"    feat: Added desktop style portfolio",
		"",
		"commit b4c3d2e",
		"Author: " + Owner.Name + " <" + Owner.Email + ">",
		"Date:   " + now.Add(-day).Format(time.DateOnly),
		"",
		"    feat: Implemented 3D CAD viewer",
		"",
		"commit c5d4e3f",
		"Author: " + Owner.Name + " <" + Owner.Email + ">",
		"Date:   " + now.Add(-2*day).Format(time.DateOnly),
		"",
		"    init: Initial commit",
	}
}
