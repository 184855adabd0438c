// Package server serves DeskOS over SSH. Every connection gets its own
// session store; nothing is shared between connections except the state
// file of the SSH user.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"path/filepath"
	"sync/atomic"

	tea "charm.land/bubbletea/v2"
	"charm.land/log/v2"
	"charm.land/wish/v2"
	"charm.land/wish/v2/activeterm"
	"charm.land/wish/v2/bubbletea"
	"charm.land/wish/v2/logging"
	"github.com/adrg/xdg"
	"github.com/charmbracelet/ssh"

	"github.com/deskos/deskos/internal/config"
	deskoslog "github.com/deskos/deskos/internal/logging"
	"github.com/deskos/deskos/internal/storage"
	"github.com/deskos/deskos/internal/theme"
	"github.com/deskos/deskos/internal/tray"
	"github.com/deskos/deskos/pkg/deskos"
)

// Config holds SSH server settings.
type Config struct {
	Host    string
	Port    string
	KeyPath string // host key, generated on first start

	// Ephemeral keeps every session in memory instead of a per-user file.
	Ephemeral bool

	// StateDir holds one state file per SSH user. Empty uses
	// $XDG_STATE_HOME/deskos/ssh.
	StateDir string

	UserConfig *config.UserConfig
	Theme      *theme.Theme
	Logger     *log.Logger
	Sampler    tray.Sampler
}

// Server is a wish SSH server running one desktop per connection.
type Server struct {
	cfg    Config
	logger *log.Logger
	srv    *ssh.Server
	active atomic.Int64
}

// DefaultKeyPath is where the host key lives when none is configured.
func DefaultKeyPath() (string, error) {
	path, err := xdg.DataFile(filepath.Join("deskos", "ssh_host_ed25519"))
	if err != nil {
		return "", fmt.Errorf("failed to get host key path: %w", err)
	}
	return path, nil
}

// New builds the server. It does not listen until Run.
func New(cfg Config) (*Server, error) {
	if cfg.Host == "" {
		cfg.Host = config.DefaultSSHHost
	}
	if cfg.Port == "" {
		cfg.Port = config.DefaultSSHPort
	}
	if cfg.UserConfig == nil {
		cfg.UserConfig = config.DefaultConfig()
	}
	if cfg.Logger == nil {
		cfg.Logger = deskoslog.Discard()
	}
	if cfg.Theme == nil {
		cfg.Theme = theme.Initialize(cfg.UserConfig.Appearance.DarkTheme, cfg.UserConfig.Appearance.LightTheme, cfg.Logger)
	}
	if cfg.KeyPath == "" {
		path, err := DefaultKeyPath()
		if err != nil {
			return nil, err
		}
		cfg.KeyPath = path
	}

	s := &Server{
		cfg:    cfg,
		logger: cfg.Logger.WithPrefix("ssh"),
	}

	srv, err := wish.NewServer(
		wish.WithAddress(net.JoinHostPort(cfg.Host, cfg.Port)),
		wish.WithHostKeyPath(cfg.KeyPath),
		wish.WithMiddleware(
			bubbletea.Middleware(s.handler),
			activeterm.Middleware(),
			logging.MiddlewareWithLogger(s.logger),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create SSH server: %w", err)
	}
	s.srv = srv
	return s, nil
}

// Addr is the address the server listens on.
func (s *Server) Addr() string {
	return s.srv.Addr
}

// Active returns the number of connected desktops.
func (s *Server) Active() int {
	return int(s.active.Load())
}

// Run serves until ctx is cancelled, then gives open sessions
// config.ShutdownTimeout to finish.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("starting SSH server", "addr", s.Addr(), "ephemeral", s.cfg.Ephemeral)
		errCh <- s.srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, ssh.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("SSH server error: %w", err)
	case <-ctx.Done():
	}

	s.logger.Info("stopping SSH server", "sessions", s.Active())
	shutdownCtx, cancel := context.WithTimeout(context.Background(), config.ShutdownTimeout)
	defer cancel()
	if err := s.srv.Shutdown(shutdownCtx); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
		return fmt.Errorf("failed to stop SSH server: %w", err)
	}
	return nil
}

// handler builds the desktop for one connection.
func (s *Server) handler(sess ssh.Session) (tea.Model, []tea.ProgramOption) {
	logger := s.logger.With("user", sess.User(), "remote", sess.RemoteAddr().String())

	st, err := s.storageFor(sess.User())
	if err != nil {
		logger.Warn("falling back to memory storage", "err", err)
		st = storage.NewMemoryStorage(nil)
	}

	m, err := deskos.New(
		deskos.WithUserConfig(s.cfg.UserConfig),
		deskos.WithTheme(s.cfg.Theme),
		deskos.WithStorage(st),
		deskos.WithLogger(logger),
		deskos.WithSampler(s.cfg.Sampler),
	)
	if err != nil {
		logger.Error("failed to create desktop", "err", err)
		return nil, nil
	}

	n := s.active.Add(1)
	logger.Info("desktop opened", "session", m.Store().ID(), "active", n)
	go func() {
		<-sess.Context().Done()
		m.Close()
		logger.Info("desktop closed", "session", m.Store().ID(), "active", s.active.Add(-1))
	}()

	return m, deskos.ProgramOptions()
}

// storageFor returns the store backing user's desktop.
func (s *Server) storageFor(user string) (storage.Storage, error) {
	if s.cfg.Ephemeral {
		return storage.NewMemoryStorage(nil), nil
	}
	dir := s.cfg.StateDir
	if dir == "" {
		path, err := storage.StatePath(filepath.Join("ssh", storage.DefaultKey))
		if err != nil {
			return nil, err
		}
		dir = filepath.Dir(path)
	}
	return storage.Open(dir, storage.SanitizeKey(user))
}
