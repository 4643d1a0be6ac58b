package ops

import (
	"bytes"
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/fileutils"
	"github.com/reqwire/reqwire/pkg/manifest"
)

type DepAdd struct {
	common
}

// Add inserts or updates one directive, given in manifest syntax
// ("name>=1.0  # purpose"), and rewrites the file.
func (d *DepAdd) Add(ctx context.Context, path, spec, section string) (*manifest.Dependency, error) {
	if remoteSource(path) {
		return nil, errors.Errorf("cannot edit a remote manifest: %s", path)
	}

	dep, err := manifest.ParseLine(spec)
	if err != nil {
		return nil, errors.Wrapf(err, "parsing directive %q", spec)
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, track(err)
	}

	m, err := manifest.Load(bytes.NewReader(raw))
	if err != nil {
		return nil, errors.Wrapf(err, "parsing manifest %s", path)
	}

	m.Add(dep, section)

	var buf bytes.Buffer

	err = m.Save(&buf)
	if err != nil {
		return nil, track(err)
	}

	err = fileutils.WriteFileAtomic(path, buf.Bytes(), 0644)
	if err != nil {
		return nil, err
	}

	d.L().Info("added dependency", "name", dep.Name, "requirement", dep.Requirement().String())

	GetUI(ctx).DepAdded(dep.String())

	return dep, nil
}
