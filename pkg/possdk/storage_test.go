package possdk

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStorage(t *testing.T) {
	t.Parallel()
	m := NewMemoryStorage()

	_, ok, err := m.Load("missing")
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, m.Save("k", []byte(`{"a":1}`)))

	data, ok, err := m.Load("k")
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"a":1}`, string(data))

	require.NoError(t, m.Delete("k"))
	_, ok, _ = m.Load("k")
	require.False(t, ok)

	require.NoError(t, m.Delete("never-existed"))
}

func TestFileStorage(t *testing.T) {
	t.Parallel()

	f, err := NewFileStorage(t.TempDir())
	require.NoError(t, err)

	_, ok, err := f.Load(StorageKey)
	require.NoError(t, err)
	require.False(t, ok)

	require.NoError(t, f.Save(StorageKey, []byte(`{"user":null}`)))

	data, ok, err := f.Load(StorageKey)
	require.NoError(t, err)
	require.True(t, ok)
	require.JSONEq(t, `{"user":null}`, string(data))

	require.NoError(t, f.Delete(StorageKey))
	require.NoError(t, f.Delete(StorageKey))
}
