package ops

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/fileutils"
	"github.com/reqwire/reqwire/pkg/manifest"
)

type DepRemove struct {
	common
}

func (d *DepRemove) Remove(ctx context.Context, path, name string) (bool, error) {
	if remoteSource(path) {
		return false, errors.Errorf("cannot edit a remote manifest: %s", path)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return false, track(err)
	}

	m, err := manifest.Load(bytes.NewReader(raw))
	if err != nil {
		return false, errors.Wrapf(err, "parsing manifest %s", path)
	}

	if !m.Remove(name) {
		return false, nil
	}

	var buf bytes.Buffer

	err = m.Save(&buf)
	if err != nil {
		return false, track(err)
	}

	err = fileutils.WriteFileAtomic(path, buf.Bytes(), 0644)
	if err != nil {
		return false, err
	}

	d.L().Info("removed dependency", "name", name)

	GetUI(ctx).DepRemoved(name)

	return true, nil
}
