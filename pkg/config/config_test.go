package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Run("loads an explicit config file", func(t *testing.T) {
		dir := t.TempDir()

		path := filepath.Join(dir, "config.json")

		err := os.WriteFile(path, []byte(`{"index-url": "https://mirror.example.com", "manifest-name": "reqs.txt"}`), 0644)
		require.NoError(t, err)

		t.Setenv("REQWIRE_CONFIG", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://mirror.example.com", cfg.IndexURL)
		assert.Equal(t, "reqs.txt", cfg.ManifestName)

		// unset fields pick up defaults
		assert.Equal(t, DefaultLockName, cfg.LockName)
		assert.Equal(t, DefaultSumName, cfg.SumName)
		assert.Equal(t, dir, cfg.ConfigDir())
	})

	t.Run("env vars override file values", func(t *testing.T) {
		dir := t.TempDir()

		path := filepath.Join(dir, "config.json")

		err := os.WriteFile(path, []byte(`{"index-url": "https://mirror.example.com"}`), 0644)
		require.NoError(t, err)

		t.Setenv("REQWIRE_CONFIG", path)
		t.Setenv("REQWIRE_INDEX_URL", "https://other.example.com")
		t.Setenv("REQWIRE_MANIFEST", "alt.txt")

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://other.example.com", cfg.IndexURL)
		assert.Equal(t, "alt.txt", cfg.ManifestName)
	})

	t.Run("rejects a cache dir that is a file", func(t *testing.T) {
		dir := t.TempDir()

		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

		bogus := filepath.Join(dir, "not-a-dir")
		require.NoError(t, os.WriteFile(bogus, []byte("x"), 0644))

		t.Setenv("REQWIRE_CONFIG", path)
		t.Setenv("REQWIRE_CACHE_DIR", bogus)

		_, err := LoadConfig()
		require.Error(t, err)
	})

	t.Run("index cache is scoped to the machine", func(t *testing.T) {
		dir := t.TempDir()

		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

		t.Setenv("REQWIRE_CONFIG", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, filepath.Join(cfg.CacheDir, "index", MachineID()), cfg.IndexCacheDir())
	})

	t.Run("save round trips", func(t *testing.T) {
		dir := t.TempDir()

		path := filepath.Join(dir, "config.json")
		require.NoError(t, os.WriteFile(path, []byte(`{}`), 0644))

		t.Setenv("REQWIRE_CONFIG", path)

		cfg, err := LoadConfig()
		require.NoError(t, err)

		cfg.IndexURL = "https://mirror.example.com"

		require.NoError(t, cfg.Save())

		cfg2, err := LoadConfig()
		require.NoError(t, err)

		assert.Equal(t, "https://mirror.example.com", cfg2.IndexURL)
	})
}
