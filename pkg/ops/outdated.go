package ops

import (
	"context"

	"github.com/reqwire/reqwire/pkg/data"
	"github.com/reqwire/reqwire/pkg/index"
	"github.com/reqwire/reqwire/pkg/manifest"
	"github.com/reqwire/reqwire/pkg/progress"
)

type OutdatedEntry struct {
	Name    string `json:"name"`
	Current string `json:"current"`
	Latest  string `json:"latest"`
	Size    int64  `json:"size"`

	// Satisfied reports whether the latest release still satisfies
	// the manifest requirement.
	Satisfied bool `json:"satisfied"`
}

type Outdated struct {
	common

	Client *index.Client
}

// Report compares every dependency against the newest index release.
// current comes from the lock file when one is given, otherwise the
// manifest floor stands in.
func (o *Outdated) Report(ctx context.Context, m *manifest.Manifest, lock *data.LockFile) ([]*OutdatedEntry, error) {
	deps := m.Dependencies()

	pr := progress.Count(ctx, int64(len(deps)), "checking index")
	defer pr.Close()

	var out []*OutdatedEntry

	for _, dep := range deps {
		pr.On(dep.Name)

		pi, err := o.Client.Project(ctx, dep.Name)
		if err != nil {
			return nil, err
		}

		latest := pi.Info.Version

		current := dep.Version
		if lock != nil {
			if ent, ok := lock.Lookup(dep.Name); ok {
				current = ent.ResolvedVersion
			}
		}

		sat, err := dep.Requirement().MatchString(latest)
		if err != nil {
			o.L().Debug("unparseable latest version", "package", dep.Name, "version", latest)
			sat = false
		}

		out = append(out, &OutdatedEntry{
			Name:      dep.Name,
			Current:   current,
			Latest:    latest,
			Size:      pi.ReleaseSize(latest),
			Satisfied: sat,
		})

		pr.Tick()
	}

	return out, nil
}
