package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/mitchellh/go-homedir"
	"github.com/shirou/gopsutil/v3/host"
)

type Config struct {
	path      string
	configDir string

	// Actual Config
	ManifestName string `json:"manifest-name"`
	LockName     string `json:"lock-name"`
	SumName      string `json:"sum-name"`
	IndexURL     string `json:"index-url"`
	CacheDir     string `json:"cache-dir"`
}

const (
	DefaultConfigPath   = "~/.config/reqwire/config.json"
	DefaultCacheDir     = "~/.cache/reqwire"
	DefaultManifestName = "requirements.txt"
	DefaultLockName     = "requirements.lock"
	DefaultSumName      = "requirements.sum"
	DefaultIndexURL     = "https://pypi.org"
)

func LoadConfig() (*Config, error) {
	if loc := os.Getenv("REQWIRE_CONFIG"); loc != "" {
		return loadFile(loc)
	}

	path, err := homedir.Expand(DefaultConfigPath)
	if err != nil {
		return nil, err
	}

	if _, err := os.Stat(path); err == nil {
		return loadFile(path)
	}

	dir := filepath.Dir(path)

	err = os.MkdirAll(dir, 0755)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		path:      path,
		configDir: dir,
	}

	return updateFromEnv(withDefaults(cfg))
}

func loadFile(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	var cfg Config

	err = json.NewDecoder(f).Decode(&cfg)
	if err != nil {
		return nil, err
	}

	cfg.path = path
	cfg.configDir = filepath.Dir(path)

	return updateFromEnv(withDefaults(&cfg))
}

func withDefaults(cfg *Config) *Config {
	if cfg.ManifestName == "" {
		cfg.ManifestName = DefaultManifestName
	}

	if cfg.LockName == "" {
		cfg.LockName = DefaultLockName
	}

	if cfg.SumName == "" {
		cfg.SumName = DefaultSumName
	}

	if cfg.IndexURL == "" {
		cfg.IndexURL = DefaultIndexURL
	}

	if cfg.CacheDir == "" {
		dir, err := homedir.Expand(DefaultCacheDir)
		if err == nil {
			cfg.CacheDir = dir
		}
	}

	return cfg
}

func updateFromEnv(cfg *Config) (*Config, error) {
	if url := os.Getenv("REQWIRE_INDEX_URL"); url != "" {
		cfg.IndexURL = url
	}

	if name := os.Getenv("REQWIRE_MANIFEST"); name != "" {
		cfg.ManifestName = name
	}

	if dir := os.Getenv("REQWIRE_CACHE_DIR"); dir != "" {
		fi, err := os.Stat(dir)
		if err == nil && !fi.IsDir() {
			return nil, fmt.Errorf("path is not a directory: %s", dir)
		}

		cfg.CacheDir = dir
	}

	return cfg, nil
}

func (c *Config) ConfigDir() string {
	return c.configDir
}

// IndexCacheDir scopes cached index responses to this host, so a
// cache dir shared between machines never mixes entries.
func (c *Config) IndexCacheDir() string {
	return filepath.Join(c.CacheDir, "index", MachineID())
}

// Save writes the configuration back to the path it was loaded from.
func (c *Config) Save() error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(c.path, append(data, '\n'), 0644)
}

func Platform() (string, string, string) {
	osName, _, osVersion, err := host.PlatformInformation()
	if err != nil {
		panic(err)
	}

	arch, err := host.KernelArch()
	if err != nil {
		panic(err)
	}

	return osName, osVersion, arch
}

// MachineID identifies the host for cache scoping, falling back to
// the hostname when the host id is unavailable.
func MachineID() string {
	id, err := host.HostID()
	if err == nil && id != "" {
		return id
	}

	name, err := os.Hostname()
	if err != nil {
		return "unknown"
	}

	return name
}
