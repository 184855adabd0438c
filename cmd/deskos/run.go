package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"golang.org/x/term"

	"github.com/deskos/deskos/internal/config"
	"github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/server"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/pkg/deskos"
)

// errNoTTY is returned when the local desktop is started without a terminal.
var errNoTTY = errors.New("deskos needs an interactive terminal (use 'deskos ssh' to serve it instead)")

// loadConfig reads the config file and layers DESKOS_* variables and the
// global flags over it. Problems in the file are reported on w.
func loadConfig(w io.Writer) (*config.UserConfig, error) {
	cfg, validation, err := config.LoadUserConfig()
	if err != nil {
		if errors.Is(err, config.ErrInvalid) {
			validation.Log(logging.New(w, "warn"))
			return nil, err
		}
		logging.New(w, "warn").Warn("failed to load config, using defaults", "err", err)
		cfg = config.DefaultConfig()
	}

	env, err := config.LoadEnv()
	if err != nil {
		return nil, err
	}
	config.ApplyEnv(env, cfg)
	config.ApplyOverrides(config.Overrides{
		DarkTheme:  darkTheme,
		LightTheme: lightTheme,
		Wallpaper:  wallpaper,
		ASCIIOnly:  asciiOnly,
		LogLevel:   logLevel,
		StateKey:   stateKey,
	}, cfg)

	validation.Log(logging.New(w, cfg.Logging.Level))
	return cfg, nil
}

// signalContext cancels on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	if parent == nil {
		parent = context.Background()
	}
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

func runLocal(ctx context.Context) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) || !term.IsTerminal(int(os.Stdout.Fd())) {
		return errNoTTY
	}

	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}

	// The screen belongs to the desktop, so logs go to a file.
	logger := logging.Discard()
	if f, err := logging.OpenFile(cfg.Logging.File); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: logging disabled: %v\n", err)
	} else {
		defer func() {
			if closeErr := f.Close(); closeErr != nil {
				fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", closeErr)
			}
		}()
		logger = logging.New(f, cfg.Logging.Level)
	}
	logger.Info("starting", "version", version, "state_key", cfg.Storage.Key)

	ctx, cancel := signalContext(ctx)
	defer cancel()

	if err := deskos.Run(ctx,
		deskos.WithUserConfig(cfg),
		deskos.WithLogger(logger),
	); err != nil {
		logger.Error("desktop stopped", "err", err)
		return err
	}
	logger.Info("stopped")
	return nil
}

func runSSHServer(ctx context.Context, host, port, keyPath string, ephemeral bool) error {
	cfg, err := loadConfig(os.Stderr)
	if err != nil {
		return err
	}
	if host == "" {
		host = cfg.SSH.Host
	}
	if port == "" {
		port = cfg.SSH.Port
	}
	if keyPath == "" {
		keyPath = cfg.SSH.KeyPath
	}

	logger := logging.New(os.Stderr, cfg.Logging.Level)

	// SSH users get their own files next to the local desktop's state.
	stateDir := cfg.Storage.Dir
	if stateDir != "" {
		stateDir = filepath.Join(stateDir, "ssh")
	}

	srv, err := server.New(server.Config{
		Host:       host,
		Port:       port,
		KeyPath:    keyPath,
		Ephemeral:  ephemeral,
		StateDir:   stateDir,
		UserConfig: cfg,
		Theme:      theme.Initialize(cfg.Appearance.DarkTheme, cfg.Appearance.LightTheme, logger),
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	ctx, cancel := signalContext(ctx)
	defer cancel()

	if err := srv.Run(ctx); err != nil {
		logger.Error("server stopped", "err", err)
		return err
	}
	logger.Info("server stopped")
	return nil
}
