package ops

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter"
	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/config"
	"github.com/reqwire/reqwire/pkg/manifest"
)

type ManifestLoad struct {
	common
}

func remoteSource(path string) bool {
	return strings.Contains(path, "://")
}

// Fetch resolves a manifest reference to a local file. Remote
// references are downloaded to a temp dir; the cleanup func removes
// it.
func (m *ManifestLoad) Fetch(ctx context.Context, cfg *config.Config, path string) (string, func(), error) {
	if path == "" {
		path = cfg.ManifestName
	}

	if !remoteSource(path) {
		return path, func() {}, nil
	}

	dir, err := os.MkdirTemp("", "reqwire")
	if err != nil {
		return "", nil, track(err)
	}

	dst := filepath.Join(dir, "manifest.txt")

	m.L().Debug("fetching remote manifest", "src", path, "dst", dst)

	GetUI(ctx).FetchManifest(path)

	cl := &getter.Client{
		Ctx:  ctx,
		Src:  path,
		Dst:  dst,
		Mode: getter.ClientModeFile,
	}

	err = cl.Get()
	if err != nil {
		os.RemoveAll(dir)
		return "", nil, errors.Wrapf(err, "fetching manifest from %s", path)
	}

	return dst, func() {
		os.RemoveAll(dir)
	}, nil
}

// Load parses a manifest reference, local or remote.
func (m *ManifestLoad) Load(ctx context.Context, cfg *config.Config, path string) (*manifest.Manifest, string, error) {
	local, cleanup, err := m.Fetch(ctx, cfg, path)
	if err != nil {
		return nil, "", err
	}

	defer cleanup()

	if path == "" {
		path = cfg.ManifestName
	}

	f, err := os.Open(local)
	if err != nil {
		return nil, "", errors.Wrapf(err, "opening manifest %s", path)
	}

	defer f.Close()

	mf, err := manifest.Load(f)
	if err != nil {
		return nil, "", errors.Wrapf(err, "parsing manifest %s", path)
	}

	return mf, path, nil
}
