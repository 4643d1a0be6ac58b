package index

import (
	"os"
	"path/filepath"
	"time"
)

// CacheTTL bounds how long a cached index response is trusted.
const CacheTTL = time.Hour

func (c *Client) cachePath(norm string) string {
	return filepath.Join(c.CacheDir, norm+".json")
}

func (c *Client) cached(norm string) ([]byte, bool) {
	if c.CacheDir == "" {
		return nil, false
	}

	path := c.cachePath(norm)

	fi, err := os.Stat(path)
	if err != nil {
		return nil, false
	}

	if time.Since(fi.ModTime()) > CacheTTL {
		return nil, false
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, false
	}

	return raw, true
}

func (c *Client) store(norm string, raw []byte) {
	if c.CacheDir == "" {
		return
	}

	err := os.MkdirAll(c.CacheDir, 0755)
	if err != nil {
		c.L().Debug("unable to create cache dir", "error", err)
		return
	}

	err = os.WriteFile(c.cachePath(norm), raw, 0644)
	if err != nil {
		c.L().Debug("unable to write cache entry", "error", err)
	}
}
