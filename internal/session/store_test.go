package session

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStoreRoundTrip(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "state", "session.json"))

	s := New()
	s.SetLocal(LocalFile{Name: "cat.png", Size: 1024, Path: "/tmp/cat.png"})
	s.Uploaded = "cat_1.png"
	s.Watermarked = "cat_1_wm.png"
	s.Displayed = "cat_1_wm.png"
	s.Stats = Stats{Tests: 1, Found: 1, LastScore: "0.842"}

	require.NoError(t, st.Save(s))

	loaded, err := st.Load()
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}

func TestStoreLoadMissingFile(t *testing.T) {
	st := NewStore(filepath.Join(t.TempDir(), "nonexistent.json"))

	s, err := st.Load()

	require.NoError(t, err)
	assert.Equal(t, New(), s)
}

func TestStoreLoadCorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o644))

	s, err := NewStore(path).Load()

	require.NoError(t, err)
	assert.Equal(t, New(), s)
}

func TestStoreReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	st := NewStore(path)

	require.NoError(t, st.Save(New()))
	require.NoError(t, st.Reset())

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// Resetting again is a no-op, not an error.
	assert.NoError(t, st.Reset())
}
