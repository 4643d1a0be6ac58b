package ops

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/config"
	"github.com/reqwire/reqwire/pkg/lint"
)

type ManifestCheck struct {
	common

	// Strict reports floating version floors as warnings.
	Strict bool
}

func (c *ManifestCheck) Check(ctx context.Context, cfg *config.Config, path string) (string, []lint.Diagnostic, error) {
	var ml ManifestLoad
	ml.SetLogger(c.L())

	local, cleanup, err := ml.Fetch(ctx, cfg, path)
	if err != nil {
		return "", nil, err
	}

	defer cleanup()

	if path == "" {
		path = cfg.ManifestName
	}

	f, err := os.Open(local)
	if err != nil {
		return "", nil, errors.Wrapf(err, "opening manifest %s", path)
	}

	defer f.Close()

	checker := lint.Checker{Strict: c.Strict}

	diags, err := checker.CheckReader(f)
	if err != nil {
		return "", nil, track(err)
	}

	return path, diags, nil
}
