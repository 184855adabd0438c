// Package main implements DeskOS, a desktop-style portfolio shell for the
// terminal. It runs locally or as an SSH server with one desktop per
// connection.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/spf13/cobra"
)

// Version information (set by goreleaser)
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
	builtBy = "unknown"
)

// Global flags
var (
	darkTheme  string
	lightTheme string
	wallpaper  string
	asciiOnly  bool
	logLevel   string
	stateKey   string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "deskos",
		Short: "Desktop shell for the terminal",
		Long: `DeskOS - a desktop in your terminal

Double-click icons to open apps, drag windows by their title bar, and use
the taskbar to switch between them. Theme, wallpaper and icon positions
are remembered between runs.`,
		Example: `  # Run DeskOS
  deskos

  # Use bubbletint themes for dark and light mode
  deskos --theme-dark dracula --theme-light catppuccin_latte

  # Run with ASCII glyphs only
  deskos --ascii-only

  # Keep a separate desktop
  deskos --state-key work

  # Serve DeskOS over SSH
  deskos ssh --port 2222

  # Edit configuration
  deskos config edit`,
		Version: version,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runLocal(cmd.Context())
		},
		SilenceUsage: true,
	}

	rootCmd.PersistentFlags().StringVar(&darkTheme, "theme-dark", "", "bubbletint theme used in dark mode (run: deskos themes)")
	rootCmd.PersistentFlags().StringVar(&lightTheme, "theme-light", "", "bubbletint theme used in light mode")
	rootCmd.PersistentFlags().StringVar(&wallpaper, "wallpaper", "", "Wallpaper for a first run (run: deskos wallpapers)")
	rootCmd.PersistentFlags().BoolVar(&asciiOnly, "ascii-only", false, "Use ASCII characters instead of unicode glyphs")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&stateKey, "state-key", "", "Name of the saved desktop state (default: deskos-storage)")

	var sshHost, sshPort, sshKeyPath string
	var sshEphemeral bool

	sshCmd := &cobra.Command{
		Use:   "ssh",
		Short: "Run DeskOS as SSH server",
		Long: `Run DeskOS as an SSH server

Every connection gets its own desktop. Unless --ephemeral is set, each
SSH user's theme, wallpaper and icon positions are saved in a state file
named after the user. A host key is generated on first start.`,
		Example: `  # Start SSH server on default port
  deskos ssh

  # Listen on all interfaces
  deskos ssh --host 0.0.0.0 --port 2222

  # Do not save anything between connections
  deskos ssh --ephemeral`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runSSHServer(cmd.Context(), sshHost, sshPort, sshKeyPath, sshEphemeral)
		},
	}

	sshCmd.Flags().StringVar(&sshHost, "host", "", "SSH server host (default: from config or localhost)")
	sshCmd.Flags().StringVar(&sshPort, "port", "", "SSH server port (default: from config or 2222)")
	sshCmd.Flags().StringVar(&sshKeyPath, "key", "", "Path to SSH host key (auto-generated if missing)")
	sshCmd.Flags().BoolVar(&sshEphemeral, "ephemeral", false, "Keep every session in memory")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "Manage DeskOS configuration",
		Long:  `Manage DeskOS configuration file and settings`,
	}

	configPathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print configuration file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printConfigPath()
		},
	}

	configEditCmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit configuration in $EDITOR",
		Long: `Open the DeskOS configuration file in your default editor

The editor is determined by checking $EDITOR, $VISUAL, or common editors
like vim, vi, nano, and emacs in that order.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return editConfigFile(cmd.Context())
		},
	}

	var configYes bool
	configResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Reset configuration to defaults",
		Long: `Reset the DeskOS configuration file to default settings

This will overwrite your existing configuration after confirmation.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetConfigToDefaults(cmd.InOrStdin(), configYes)
		},
	}
	configResetCmd.Flags().BoolVarP(&configYes, "yes", "y", false, "Do not ask for confirmation")

	configCmd.AddCommand(configPathCmd, configEditCmd, configResetCmd)

	stateCmd := &cobra.Command{
		Use:   "state",
		Short: "Inspect the saved desktop state",
		Long: `Inspect the saved desktop state

The state file holds dark mode, wallpaper, the boot flag and icon
positions. Use --state-key to pick another desktop.`,
	}

	statePathCmd := &cobra.Command{
		Use:   "path",
		Short: "Print the state file path",
		RunE: func(_ *cobra.Command, _ []string) error {
			return printStatePath()
		},
	}

	stateShowCmd := &cobra.Command{
		Use:   "show",
		Short: "Print the saved state",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return showState(cmd.Context())
		},
	}

	stateResetCmd := &cobra.Command{
		Use:   "reset",
		Short: "Forget the saved state",
		Long: `Delete the saved state. The next run shows the boot screen again and
puts every icon back in its default slot.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return resetState(cmd.Context())
		},
	}

	stateCmd.AddCommand(statePathCmd, stateShowCmd, stateResetCmd)

	var appsCategory string
	appsCmd := &cobra.Command{
		Use:   "apps",
		Short: "List the app catalog",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listApps(appsCategory)
		},
	}
	appsCmd.Flags().StringVar(&appsCategory, "category", "", "Only list one category: system, development, productivity")
	_ = appsCmd.RegisterFlagCompletionFunc("category", completeCategories)

	wallpapersCmd := &cobra.Command{
		Use:   "wallpapers",
		Short: "List available wallpapers",
		RunE: func(_ *cobra.Command, _ []string) error {
			return listWallpapers()
		},
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "List available bubbletint themes",
		Example: `  # Pick a theme with fzf
  deskos --theme-dark $(deskos themes | fzf)`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listThemes()
		},
	}

	var iconsHeight int
	iconsCmd := &cobra.Command{
		Use:   "icons",
		Short: "Print default desktop icon slots",
		Long: `Print where each desktop icon sits before it is moved, for a desktop
area of the given height in logical pixels.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return printIconSlots(iconsHeight)
		},
	}
	iconsCmd.Flags().IntVar(&iconsHeight, "height", 600, "Desktop height in logical pixels")

	keysCmd := &cobra.Command{
		Use:     "keys",
		Aliases: []string{"keybinds", "kb"},
		Short:   "List all keybindings",
		Long:    `Display all configured keybindings in a formatted table`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return listKeybindings()
		},
	}

	infoCmd := &cobra.Command{
		Use:   "info",
		Short: "Show terminal and host details",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return printInfo(cmd.Context())
		},
	}

	rootCmd.AddCommand(sshCmd, configCmd, stateCmd)
	rootCmd.AddCommand(appsCmd, wallpapersCmd, themesCmd, iconsCmd, keysCmd, infoCmd)

	if err := fang.Execute(
		context.Background(),
		rootCmd,
		fang.WithVersion(fmt.Sprintf("%s\nCommit: %s\nBuilt: %s\nBy: %s", version, commit, date, builtBy)),
	); err != nil {
		os.Exit(1)
	}
}
