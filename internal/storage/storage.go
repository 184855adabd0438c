// Package storage persists the small keyed record that survives a restart.
// Records are wrapped in a versioned envelope so older builds can refuse
// data written by newer ones.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode"

	"github.com/adrg/xdg"
)

// DefaultKey names the persisted record when none is configured.
const DefaultKey = "deskos-storage"

// Version is the envelope version written by this build.
const Version = 0

var (
	// ErrNotFound is returned by Load when nothing has been saved yet.
	ErrNotFound = errors.New("storage: record not found")

	// ErrVersion is returned by Decode for envelopes from a newer build.
	ErrVersion = errors.New("storage: unsupported record version")
)

// Storage loads and saves one opaque record.
type Storage interface {
	Load(ctx context.Context) ([]byte, error)
	Save(ctx context.Context, data []byte) error
	Clear(ctx context.Context) error
	Path() string
}

type envelope struct {
	State   json.RawMessage `json:"state"`
	Version int             `json:"version"`
}

// Encode wraps v in a versioned envelope.
func Encode(v any) ([]byte, error) {
	state, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal state: %w", err)
	}
	return json.Marshal(envelope{State: state, Version: Version})
}

// Decode unwraps an envelope produced by Encode into v.
func Decode(data []byte, v any) error {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return fmt.Errorf("failed to parse envelope: %w", err)
	}
	if env.Version > Version {
		return fmt.Errorf("%w: %d", ErrVersion, env.Version)
	}
	if len(env.State) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.State, v); err != nil {
		return fmt.Errorf("failed to parse state: %w", err)
	}
	return nil
}

// FileStorage keeps the record in a JSON file.
type FileStorage struct {
	path string
	mu   sync.Mutex
}

// NewFileStorage stores the record at path.
func NewFileStorage(path string) *FileStorage {
	return &FileStorage{path: path}
}

// StatePath returns the XDG state file used for key, creating parent
// directories.
func StatePath(key string) (string, error) {
	if key == "" {
		key = DefaultKey
	}
	path, err := xdg.StateFile(filepath.Join("deskos", key+".json"))
	if err != nil {
		return "", fmt.Errorf("failed to get state path: %w", err)
	}
	return path, nil
}

// Open returns file storage for key inside dir. An empty dir uses the XDG
// state directory.
func Open(dir, key string) (*FileStorage, error) {
	if dir == "" {
		return NewXDGStorage(key)
	}
	if key == "" {
		key = DefaultKey
	}
	return NewFileStorage(filepath.Join(dir, key+".json")), nil
}

// SanitizeKey turns an arbitrary name, such as an SSH user, into a key that
// is safe to use as a file name.
func SanitizeKey(name string) string {
	key := strings.Map(func(r rune) rune {
		switch {
		case r == '-' || r == '_' || r == '.':
			return r
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			return r
		}
		return '_'
	}, name)
	key = strings.Trim(key, ".")
	if key == "" {
		return DefaultKey
	}
	return key
}

// NewXDGStorage returns file storage for key under $XDG_STATE_HOME/deskos.
func NewXDGStorage(key string) (*FileStorage, error) {
	path, err := StatePath(key)
	if err != nil {
		return nil, err
	}
	return NewFileStorage(path), nil
}

// Path returns the file backing the record.
func (s *FileStorage) Path() string {
	return s.path
}

// Load reads the record. It returns ErrNotFound when the file is missing.
func (s *FileStorage) Load(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	// #nosec G304 - path comes from xdg or the user's own flag
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.path, err)
	}
	return data, nil
}

// Save writes the record atomically through a temp file in the same
// directory.
func (s *FileStorage) Save(ctx context.Context, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("failed to write state: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the record. Clearing a missing record is not an error.
func (s *FileStorage) Clear(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("failed to remove %s: %w", s.path, err)
	}
	return nil
}

// MemoryStorage keeps the record in memory. The zero value is ready to use.
type MemoryStorage struct {
	mu    sync.Mutex
	data  []byte
	saves int
}

// NewMemoryStorage returns storage preloaded with data, which may be nil.
func NewMemoryStorage(data []byte) *MemoryStorage {
	return &MemoryStorage{data: data}
}

func (m *MemoryStorage) Load(context.Context) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.data == nil {
		return nil, ErrNotFound
	}
	return append([]byte(nil), m.data...), nil
}

func (m *MemoryStorage) Save(_ context.Context, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = append([]byte(nil), data...)
	m.saves++
	return nil
}

func (m *MemoryStorage) Clear(context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = nil
	return nil
}

func (m *MemoryStorage) Path() string {
	return ":memory:"
}

// Saves returns how many times Save has been called.
func (m *MemoryStorage) Saves() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}
