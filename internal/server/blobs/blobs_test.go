package blobs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSave_WritesContentUnderRoot(t *testing.T) {
	s, err := NewStore(filepath.Join(t.TempDir(), "uploads"))
	require.NoError(t, err)

	name, path, size, err := s.Save("users/1", "notes.txt", strings.NewReader("hello"))
	require.NoError(t, err)

	assert.Equal(t, int64(5), size)
	assert.True(t, strings.HasSuffix(name, "-notes.txt"))
	assert.True(t, strings.HasPrefix(path, s.Root()))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))
}

func TestSave_UniqueNamesForSameOriginal(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	name1, _, _, err := s.Save("users/1", "a.txt", strings.NewReader("x"))
	require.NoError(t, err)
	name2, _, _, err := s.Save("users/1", "a.txt", strings.NewReader("y"))
	require.NoError(t, err)

	assert.NotEqual(t, name1, name2)
}

func TestSave_StripsPathFromOriginalName(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, path, _, err := s.Save("users/1", "../../etc/passwd", strings.NewReader("x"))
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(path, filepath.Join(s.Root(), "users/1")))
	assert.True(t, strings.HasSuffix(path, "-passwd"))
}

func TestRemove(t *testing.T) {
	s, err := NewStore(t.TempDir())
	require.NoError(t, err)

	_, path, _, err := s.Save("apps", "tool.zip", strings.NewReader("zip"))
	require.NoError(t, err)

	require.NoError(t, s.Remove(path))
	_, err = os.Stat(path)
	assert.True(t, os.IsNotExist(err))

	// removing a missing blob is not an error
	assert.NoError(t, s.Remove(path))
}
