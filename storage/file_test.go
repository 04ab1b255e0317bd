package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFileRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")

	st, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, st.Set(KeyAuthToken, []byte("abc123")))
	require.NoError(t, st.Set(KeyUser, []byte(`{"id":1,"email":"a@b.c"}`)))

	reopened, err := OpenFile(path)
	require.NoError(t, err)

	token, ok := reopened.Get(KeyAuthToken)
	require.True(t, ok)
	assert.Equal(t, "abc123", string(token))

	user, ok := reopened.Get(KeyUser)
	require.True(t, ok)
	assert.JSONEq(t, `{"id":1,"email":"a@b.c"}`, string(user))
}

func TestFileDeleteAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	st, err := OpenFile(path)
	require.NoError(t, err)

	require.NoError(t, st.Set("a", []byte("1")))
	require.NoError(t, st.Set("b", []byte("2")))

	require.NoError(t, st.Delete("a"))
	_, ok := st.Get("a")
	assert.False(t, ok)

	// Deleting twice is fine.
	require.NoError(t, st.Delete("a"))

	require.NoError(t, st.Clear())
	_, ok = st.Get("b")
	assert.False(t, ok)

	reopened, err := OpenFile(path)
	require.NoError(t, err)
	_, ok = reopened.Get("b")
	assert.False(t, ok)
}

func TestFileCorruptStartsEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	require.NoError(t, os.WriteFile(path, []byte("{{{{"), 0o600))

	st, err := OpenFile(path)
	require.NoError(t, err)
	_, ok := st.Get(KeyAuthToken)
	assert.False(t, ok)

	// Writes still work after recovery.
	require.NoError(t, st.Set("k", []byte("v")))
	v, ok := st.Get("k")
	require.True(t, ok)
	assert.Equal(t, "v", string(v))
}

func TestFileCreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "dir", "state.json")
	st, err := OpenFile(path)
	require.NoError(t, err)
	require.NoError(t, st.Set("k", []byte("v")))

	_, err = os.Stat(path)
	assert.NoError(t, err)
}

func TestMemoryIsolation(t *testing.T) {
	st := NewMemory()
	require.NoError(t, st.Set("k", []byte("v")))

	v, _ := st.Get("k")
	v[0] = 'x'

	fresh, _ := st.Get("k")
	assert.Equal(t, "v", string(fresh))
}
