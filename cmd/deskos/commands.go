package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"slices"
	"strings"

	"charm.land/lipgloss/v2"
	"charm.land/lipgloss/v2/table"
	"github.com/charmbracelet/colorprofile"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/deskos/deskos/internal/apps"
	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/layout"
	"github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/session"
	"github.com/deskos/deskos/internal/storage"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/internal/tray"
)

// newTable returns a table in the CLI style.
func newTable(headers ...string) *table.Table {
	headerStyle := lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Padding(0, 1)
	cellStyle := lipgloss.NewStyle().Padding(0, 1)
	return table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(lipgloss.NewStyle().Foreground(theme.CLITableBorder())).
		Headers(headers...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

// =============================================================================
// config
// =============================================================================

func printConfigPath() error {
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	fmt.Println(path)
	return nil
}

// findEditor returns the user's editor command.
func findEditor() (string, error) {
	for _, env := range []string{"EDITOR", "VISUAL"} {
		if e := strings.TrimSpace(os.Getenv(env)); e != "" {
			return e, nil
		}
	}
	for _, e := range []string{"vim", "vi", "nano", "emacs"} {
		if _, err := exec.LookPath(e); err == nil {
			return e, nil
		}
	}
	return "", errors.New("no editor found: set $EDITOR")
}

func editConfigFile(ctx context.Context) error {
	// Loading creates the file on first run.
	if _, _, err := config.LoadUserConfig(); err != nil && !errors.Is(err, config.ErrInvalid) {
		return err
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return err
	}
	editor, err := findEditor()
	if err != nil {
		return err
	}

	fields := strings.Fields(editor)
	// #nosec G204 - the editor is chosen by the user
	cmd := exec.CommandContext(ctx, fields[0], append(fields[1:], path)...)
	cmd.Stdin, cmd.Stdout, cmd.Stderr = os.Stdin, os.Stdout, os.Stderr
	if err := cmd.Run(); err != nil {
		return fmt.Errorf("editor failed: %w", err)
	}

	if _, validation, err := config.LoadConfigFile(path); err != nil {
		validation.Log(logging.New(os.Stderr, "warn"))
		return err
	} else if validation.HasWarnings() {
		validation.Log(logging.New(os.Stderr, "warn"))
	}
	return nil
}

// confirm asks a yes/no question on in. Anything but y or yes is a no.
func confirm(in io.Reader, question string) bool {
	fmt.Printf("%s [y/N] ", question)
	answer, _ := bufio.NewReader(in).ReadString('\n')
	switch strings.ToLower(strings.TrimSpace(answer)) {
	case "y", "yes":
		return true
	}
	return false
}

func resetConfigToDefaults(in io.Reader, yes bool) error {
	if !yes && !confirm(in, "Overwrite your configuration with defaults?") {
		fmt.Println("Aborted.")
		return nil
	}
	path, err := config.ResetConfig()
	if err != nil {
		return err
	}
	fmt.Printf("Configuration reset: %s\n", path)
	return nil
}

// =============================================================================
// state
// =============================================================================

func openState() (storage.Storage, error) {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return nil, err
	}
	return storage.Open(cfg.Storage.Dir, cfg.Storage.Key)
}

func printStatePath() error {
	st, err := openState()
	if err != nil {
		return err
	}
	fmt.Println(st.Path())
	return nil
}

func showState(ctx context.Context) error {
	st, err := openState()
	if err != nil {
		return err
	}
	data, err := st.Load(ctx)
	if errors.Is(err, storage.ErrNotFound) {
		fmt.Printf("No saved state at %s\n", st.Path())
		return nil
	}
	if err != nil {
		return err
	}
	var p session.PersistedState
	if err := storage.Decode(data, &p); err != nil {
		return fmt.Errorf("%s: %w", st.Path(), err)
	}

	summary := newTable("Setting", "Value").Rows(
		[]string{"Dark mode", yesNo(p.IsDarkMode)},
		[]string{"Wallpaper", p.CurrentWallpaper},
		[]string{"Booted", yesNo(p.HasBooted)},
		[]string{"File", st.Path()},
	)
	lipgloss.Println(summary)

	if len(p.IconPositions) == 0 {
		fmt.Println("All icons are in their default slots.")
		return nil
	}
	icons := newTable("Icon", "X", "Y")
	ids := lo.Keys(p.IconPositions)
	slices.Sort(ids)
	for _, id := range ids {
		pos := p.IconPositions[id]
		icons.Row(id, fmt.Sprint(pos.X), fmt.Sprint(pos.Y))
	}
	lipgloss.Println(icons)
	return nil
}

func resetState(ctx context.Context) error {
	st, err := openState()
	if err != nil {
		return err
	}
	if err := st.Clear(ctx); err != nil {
		return err
	}
	fmt.Printf("Saved state removed: %s\n", st.Path())
	return nil
}

// =============================================================================
// catalogs
// =============================================================================

func completeCategories(_ *cobra.Command, _ []string, _ string) ([]string, cobra.ShellCompDirective) {
	return lo.Map(apps.Categories(), func(c apps.Category, _ int) string {
		return string(c)
	}), cobra.ShellCompDirectiveNoFileComp
}

// appsIn returns the catalog, optionally limited to one category.
func appsIn(category string) ([]apps.App, error) {
	if category == "" {
		return apps.All(), nil
	}
	c := apps.Category(strings.ToLower(category))
	if !lo.Contains(apps.Categories(), c) {
		return nil, fmt.Errorf("unknown category %q", category)
	}
	return apps.ByCategory(c), nil
}

func listApps(category string) error {
	list, err := appsIn(category)
	if err != nil {
		return err
	}
	t := newTable("ID", "Name", "Category", "Desktop", "Start menu")
	for _, a := range list {
		t.Row(a.ID, apps.Glyph(a.Icon, asciiOnly)+" "+a.Name, string(a.Category), yesNo(a.ShowOnDesktop), yesNo(a.ShowInStartMenu))
	}
	lipgloss.Println(t)
	return nil
}

func listWallpapers() error {
	t := newTable("ID", "Name", "Kind", "Colors")
	for _, w := range theme.Wallpapers() {
		swatch := lo.Map(w.Stops, func(hex string, _ int) string {
			return lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render("██ " + hex)
		})
		t.Row(w.ID, w.Name, string(w.Kind), strings.Join(swatch, " "))
	}
	lipgloss.Println(t)
	return nil
}

func listThemes() error {
	for _, id := range theme.IDs(logging.New(os.Stderr, "warn")) {
		fmt.Println(id)
	}
	return nil
}

func printIconSlots(height int) error {
	if height < layout.IconHeight {
		return fmt.Errorf("height must be at least %d", layout.IconHeight)
	}
	t := newTable("Icon", "X", "Y")
	for i, a := range apps.Desktop() {
		p := layout.DefaultIconPosition(i, height)
		t.Row(a.ID, fmt.Sprint(p.X), fmt.Sprint(p.Y))
	}
	lipgloss.Println(t)
	return nil
}

func listKeybindings() error {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}
	for _, section := range config.GetKeybindings(cfg.Keybindings) {
		fmt.Println(lipgloss.NewStyle().Foreground(theme.CLITableHeader()).Bold(true).Render(section.Title))
		t := newTable("Action", "Keys", "Description")
		for _, b := range section.Bindings {
			keys := strings.Join(b.Keys, ", ")
			if keys == "" {
				keys = lipgloss.NewStyle().Foreground(theme.CLITableDim()).Render("unbound")
			}
			t.Row(b.Action, keys, b.Description)
		}
		lipgloss.Println(t)
	}
	return nil
}

// =============================================================================
// info
// =============================================================================

func printInfo(ctx context.Context) error {
	t := newTable("", "")

	t.Row("Version", version)
	t.Row("Color profile", colorprofile.Detect(os.Stdout, os.Environ()).String())
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		t.Row("Terminal", fmt.Sprintf("%dx%d cells (%dx%d px)", w, h, w*layout.CellWidthPx, h*layout.CellHeightPx))
	} else {
		t.Row("Terminal", "not a terminal")
	}

	if info, err := tray.Host(ctx); err == nil {
		t.Row("Host", info.Hostname)
		t.Row("Platform", info.Platform)
		t.Row("CPUs", fmt.Sprint(info.CPUs))
		t.Row("Uptime", info.Uptime.String())
	} else {
		t.Row("Host", err.Error())
	}
	if r, err := tray.Sample(ctx); err == nil {
		t.Row("Load", fmt.Sprintf("CPU %.0f%%  MEM %.0f%%", r.CPU, r.Memory))
	}

	if path, err := config.GetConfigPath(); err == nil {
		t.Row("Config", path)
	}
	if st, err := openState(); err == nil {
		t.Row("State", st.Path())
	}
	if path, err := logging.DefaultFilePath(); err == nil {
		t.Row("Log", path)
	}
	lipgloss.Println(t)
	return nil
}
