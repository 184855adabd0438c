package storage

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type record struct {
	Dark      bool   `json:"isDarkMode"`
	Wallpaper string `json:"currentWallpaper"`
}

func TestEnvelopeFormat(t *testing.T) {
	data, err := Encode(record{Dark: true, Wallpaper: "ocean"})
	require.NoError(t, err)

	assert.JSONEq(t, `{"state":{"isDarkMode":true,"currentWallpaper":"ocean"},"version":0}`, string(data))

	var got record
	require.NoError(t, Decode(data, &got))
	assert.Equal(t, record{Dark: true, Wallpaper: "ocean"}, got)
}

func TestDecodeRejectsNewerVersion(t *testing.T) {
	var got record
	err := Decode([]byte(`{"state":{},"version":7}`), &got)
	assert.ErrorIs(t, err, ErrVersion)
}

func TestDecodeErrors(t *testing.T) {
	var got record
	assert.Error(t, Decode([]byte(`not json`), &got))
	assert.Error(t, Decode([]byte(`{"state":"nope","version":0}`), &got))
	assert.NoError(t, Decode([]byte(`{"version":0}`), &got))
}

func TestFileStorageRoundTrip(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	s := NewFileStorage(path)

	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, s.Save(ctx, []byte(`{"a":1}`)))
	require.NoError(t, s.Save(ctx, []byte(`{"a":2}`)))

	data, err := s.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"a":2}`, string(data))

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp files are cleaned up")

	require.NoError(t, s.Clear(ctx))
	require.NoError(t, s.Clear(ctx))
	_, err = s.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFileStorageHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	s := NewFileStorage(filepath.Join(t.TempDir(), "state.json"))
	assert.ErrorIs(t, s.Save(ctx, []byte("{}")), context.Canceled)
	_, err := s.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestStatePathUsesXDG(t *testing.T) {
	dir := t.TempDir()
	t.Cleanup(xdg.Reload)
	t.Setenv("XDG_STATE_HOME", dir)
	xdg.Reload()

	path, err := StatePath("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deskos", DefaultKey+".json"), path)

	path, err = StatePath("alice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "deskos", "alice.json"), path)
}

func TestMemoryStorage(t *testing.T) {
	ctx := context.Background()
	var m MemoryStorage

	_, err := m.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)

	buf := []byte("x")
	require.NoError(t, m.Save(ctx, buf))
	buf[0] = 'y'

	data, err := m.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "x", string(data))
	assert.Equal(t, 1, m.Saves())

	require.NoError(t, m.Clear(ctx))
	_, err = m.Load(ctx)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestOpenInDirectory(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(dir, "alice")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "alice.json"), s.Path())

	s, err = Open(dir, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, DefaultKey+".json"), s.Path())
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		name, want string
	}{
		{"alice", "alice"},
		{"bob.smith-2", "bob.smith-2"},
		{"../../etc/passwd", "_.._etc_passwd"},
		{"a b/c", "a_b_c"},
		{"", DefaultKey},
		{"..", DefaultKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SanitizeKey(tt.name))
		})
	}
}
