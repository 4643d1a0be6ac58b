package ops

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/fileutils"
	"github.com/reqwire/reqwire/pkg/manifest"
)

type ManifestFmt struct {
	common
}

// Fmt renders a manifest in canonical form, reporting whether that
// differs from what is on disk.
func (f *ManifestFmt) Fmt(ctx context.Context, path string) (bool, []byte, error) {
	if remoteSource(path) {
		return false, nil, errors.Errorf("cannot format a remote manifest: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, nil, track(err)
	}

	m, err := manifest.Load(bytes.NewReader(raw))
	if err != nil {
		return false, nil, errors.Wrapf(err, "parsing manifest %s", path)
	}

	var buf bytes.Buffer

	err = m.Save(&buf)
	if err != nil {
		return false, nil, track(err)
	}

	return !bytes.Equal(raw, buf.Bytes()), buf.Bytes(), nil
}

func (f *ManifestFmt) Write(path string, formatted []byte) error {
	f.L().Info("rewriting manifest", "path", path)

	return fileutils.WriteFileAtomic(path, formatted, 0644)
}
