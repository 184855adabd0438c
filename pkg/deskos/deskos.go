// Package deskos provides the DeskOS desktop as a Bubble Tea model that can
// be embedded in other programs or run standalone.
//
// # Basic Usage
//
//	model, err := deskos.New()
//	if err != nil {
//		log.Fatal(err)
//	}
//	p := tea.NewProgram(model, deskos.ProgramOptions()...)
//	if _, err := p.Run(); err != nil {
//		log.Fatal(err)
//	}
//
// # Custom Configuration
//
//	model, err := deskos.New(
//		deskos.WithDarkTheme("dracula"),
//		deskos.WithASCIIOnly(true),
//		deskos.WithStorage(storage.NewMemoryStorage(nil)),
//	)
//
// Every model owns its own session. State is only shared between runs
// through the configured storage.
package deskos

import (
	"context"
	"errors"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"github.com/charmbracelet/colorprofile"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/desktop"
	"github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/session"
	"github.com/deskos/deskos/internal/storage"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/internal/tray"
)

// Model is the desktop model. It implements tea.Model.
type Model = desktop.Model

// Storage persists the session record between runs.
type Storage = storage.Storage

// Options configures a DeskOS instance.
type Options struct {
	// Storage persists theme, wallpaper, boot flag and icon positions.
	// If nil, the configured state file under $XDG_STATE_HOME is used.
	Storage Storage

	// DarkTheme and LightTheme are bubbletint ids. Empty keeps the
	// built-in palettes.
	DarkTheme  string
	LightTheme string

	// Theme is an already initialized theme. It wins over DarkTheme and
	// LightTheme and lets many models share one theme registry.
	Theme *theme.Theme

	// ASCIIOnly replaces unicode glyphs with ASCII.
	ASCIIOnly bool

	// Logger receives diagnostics. If nil, logs are dropped.
	Logger *log.Logger

	// UserConfig is a custom configuration. If nil, defaults are used.
	UserConfig *config.UserConfig

	// Profile is the color profile of the output, when known up front.
	Profile colorprofile.Profile

	// Sampler feeds the system tray. If nil, the host is sampled.
	Sampler tray.Sampler
}

// Option is a functional option for configuring DeskOS.
type Option func(*Options)

// WithStorage sets where the session is persisted.
func WithStorage(s Storage) Option {
	return func(o *Options) {
		o.Storage = s
	}
}

// WithDarkTheme sets the bubbletint id used in dark mode.
func WithDarkTheme(id string) Option {
	return func(o *Options) {
		o.DarkTheme = id
	}
}

// WithLightTheme sets the bubbletint id used in light mode.
func WithLightTheme(id string) Option {
	return func(o *Options) {
		o.LightTheme = id
	}
}

// WithTheme uses an initialized theme.
func WithTheme(t *theme.Theme) Option {
	return func(o *Options) {
		o.Theme = t
	}
}

// WithASCIIOnly enables ASCII-only glyphs.
func WithASCIIOnly(enabled bool) Option {
	return func(o *Options) {
		o.ASCIIOnly = enabled
	}
}

// WithLogger sets the logger.
func WithLogger(l *log.Logger) Option {
	return func(o *Options) {
		o.Logger = l
	}
}

// WithUserConfig sets a custom user configuration.
func WithUserConfig(cfg *config.UserConfig) Option {
	return func(o *Options) {
		o.UserConfig = cfg
	}
}

// WithProfile sets the output color profile.
func WithProfile(p colorprofile.Profile) Option {
	return func(o *Options) {
		o.Profile = p
	}
}

// WithSampler replaces the system tray sampler.
func WithSampler(s tray.Sampler) Option {
	return func(o *Options) {
		o.Sampler = s
	}
}

// New creates a desktop model with its own session.
func New(opts ...Option) (*Model, error) {
	var options Options
	for _, opt := range opts {
		opt(&options)
	}

	cfg := config.DefaultConfig()
	if options.UserConfig != nil {
		c := *options.UserConfig
		cfg = &c
	}
	cfg.Appearance.ASCIIOnly = cfg.Appearance.ASCIIOnly || options.ASCIIOnly

	logger := options.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	store := options.Storage
	if store == nil {
		fs, err := storage.Open(cfg.Storage.Dir, cfg.Storage.Key)
		if err != nil {
			return nil, fmt.Errorf("failed to open state storage: %w", err)
		}
		store = fs
	}

	th := options.Theme
	if th == nil {
		dark, light := cfg.Appearance.DarkTheme, cfg.Appearance.LightTheme
		if options.DarkTheme != "" {
			dark = options.DarkTheme
		}
		if options.LightTheme != "" {
			light = options.LightTheme
		}
		th = theme.Initialize(dark, light, logger)
	}

	darkMode := false
	if cfg.Appearance.DarkMode != nil {
		darkMode = *cfg.Appearance.DarkMode
	}
	sess := session.New(
		session.WithStorage(store),
		session.WithLogger(logger),
		session.WithDefaults(session.DefaultsFor(darkMode, cfg.Appearance.Wallpaper)),
	)

	return desktop.New(sess, desktop.Options{
		Config:  cfg,
		Theme:   th,
		Logger:  logger,
		Sampler: options.Sampler,
		Profile: options.Profile,
	}), nil
}

// ProgramOptions returns recommended tea.ProgramOption values for running
// DeskOS:
//
//	p := tea.NewProgram(model, deskos.ProgramOptions()...)
func ProgramOptions() []tea.ProgramOption {
	return []tea.ProgramOption{
		tea.WithFPS(config.NormalFPS),
		tea.WithFilter(FilterMouseMotion),
	}
}

// FilterMouseMotion is a tea.WithFilter function that drops mouse motion
// while nothing is being dragged.
func FilterMouseMotion(model tea.Model, msg tea.Msg) tea.Msg {
	if _, ok := msg.(tea.MouseMotionMsg); !ok {
		return msg
	}
	m, ok := model.(*Model)
	if !ok || m.Dragging() {
		return msg
	}
	return nil
}

// Run creates a desktop and runs it on the current terminal until the user
// quits or ctx is cancelled.
func Run(ctx context.Context, opts ...Option) error {
	model, err := New(opts...)
	if err != nil {
		return err
	}
	defer model.Close()

	programOpts := append(ProgramOptions(), tea.WithContext(ctx))
	if _, err := tea.NewProgram(model, programOpts...).Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}
