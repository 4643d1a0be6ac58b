package fileutils

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteFileAtomic(t *testing.T) {
	t.Run("creates the file with the given mode", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "requirements.txt")

		err := WriteFileAtomic(path, []byte("openai>=1.0.0\n"), 0644)
		require.NoError(t, err)

		out, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "openai>=1.0.0\n", string(out))

		fi, err := os.Stat(path)
		require.NoError(t, err)

		assert.Equal(t, os.FileMode(0644), fi.Mode().Perm())
	})

	t.Run("replaces existing content", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "requirements.txt")

		require.NoError(t, os.WriteFile(path, []byte("old\n"), 0644))

		err := WriteFileAtomic(path, []byte("new\n"), 0644)
		require.NoError(t, err)

		out, err := os.ReadFile(path)
		require.NoError(t, err)

		assert.Equal(t, "new\n", string(out))
	})

	t.Run("leaves no temp files behind", func(t *testing.T) {
		dir := t.TempDir()
		path := filepath.Join(dir, "requirements.txt")

		err := WriteFileAtomic(path, []byte("x\n"), 0644)
		require.NoError(t, err)

		entries, err := os.ReadDir(dir)
		require.NoError(t, err)

		require.Len(t, entries, 1)
		assert.Equal(t, "requirements.txt", entries[0].Name())
	})
}
