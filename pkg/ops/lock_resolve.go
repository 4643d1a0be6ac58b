package ops

import (
	"context"
	"sort"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/data"
	"github.com/reqwire/reqwire/pkg/index"
	"github.com/reqwire/reqwire/pkg/manifest"
	"github.com/reqwire/reqwire/pkg/progress"
)

type LockResolve struct {
	common

	Client *index.Client
}

// Resolve pins every requirement to the newest release on the index
// that satisfies it.
func (l *LockResolve) Resolve(ctx context.Context, m *manifest.Manifest) (*data.LockFile, error) {
	deps := m.Dependencies()

	pr := progress.Count(ctx, int64(len(deps)), "resolving")
	defer pr.Close()

	ui := GetUI(ctx)

	lf := &data.LockFile{
		CreatedAt: time.Now().UTC(),
	}

	for _, dep := range deps {
		pr.On(dep.Name)

		picked, err := l.resolveOne(ctx, dep)
		if err != nil {
			return nil, err
		}

		ui.Resolved(dep.Name, dep.Requirement().String(), picked.Original())

		lf.Resolved = append(lf.Resolved, &data.LockEntry{
			Name:             dep.Name,
			Comparator:       string(dep.Comparator),
			RequestedVersion: dep.Version,
			ResolvedVersion:  picked.Original(),
		})

		pr.Tick()
	}

	sort.Slice(lf.Resolved, func(i, j int) bool {
		return lf.Resolved[i].Name < lf.Resolved[j].Name
	})

	return lf, nil
}

func (l *LockResolve) resolveOne(ctx context.Context, dep *manifest.Dependency) (*semver.Version, error) {
	vers, err := l.Client.Versions(ctx, dep.Name)
	if err != nil {
		return nil, err
	}

	req := dep.Requirement()

	for i := len(vers) - 1; i >= 0; i-- {
		ok, err := req.Match(vers[i])
		if err != nil {
			return nil, errors.Wrapf(err, "matching %s against %s", dep.Name, req)
		}

		if ok {
			return vers[i], nil
		}
	}

	return nil, errors.Errorf("no release of %s satisfies %s", dep.Name, req)
}
