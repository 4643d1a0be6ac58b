package ops

import (
	"context"

	"github.com/pkg/errors"
	"github.com/reqwire/reqwire/pkg/repo"
)

type ManifestHistory struct {
	common
}

func (m *ManifestHistory) Entries(ctx context.Context, path string) (string, []repo.HistoryEntry, error) {
	if remoteSource(path) {
		return "", nil, errors.Errorf("history requires a local manifest: %s", path)
	}

	id, entries, err := repo.History(path)
	if err != nil {
		return "", nil, err
	}

	m.L().Debug("manifest history", "repo", id, "commits", len(entries))

	return id, entries, nil
}
