package ops

import (
	"context"
	"encoding/json"
	"os"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/data"
	"github.com/reqwire/reqwire/pkg/fileutils"
	"github.com/reqwire/reqwire/pkg/lockfile"
)

type LockWrite struct {
	common
}

// Write persists the lock file, holding an advisory lock so two
// resolutions cannot interleave their writes.
func (l *LockWrite) Write(ctx context.Context, lf *data.LockFile, path string) error {
	ui := GetUI(ctx)

	var shown bool

	cleanup, err := lockfile.Take(ctx, path+".lock", func() {
		if !shown {
			ui.LockWaiting()
			shown = true
		}
	})
	if err != nil {
		return track(err)
	}

	defer cleanup()

	out, err := json.MarshalIndent(lf, "", "  ")
	if err != nil {
		return track(err)
	}

	l.L().Info("writing lock file", "path", path, "entries", len(lf.Resolved))

	return fileutils.WriteFileAtomic(path, append(out, '\n'), 0644)
}

type LockRead struct {
	common
}

func (l *LockRead) Read(path string) (*data.LockFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "opening lock file %s", path)
	}

	defer f.Close()

	var lf data.LockFile

	err = json.NewDecoder(f).Decode(&lf)
	if err != nil {
		return nil, errors.Wrapf(err, "decoding lock file %s", path)
	}

	return &lf, nil
}
