package repo

import (
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/pkg/errors"
)

type HistoryEntry struct {
	Hash    string
	Author  string
	When    time.Time
	Summary string
}

// History walks the git repository enclosing path and returns the
// commits that touched it, newest first, along with an id for the
// repository derived from its origin remote.
func History(path string) (string, []HistoryEntry, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", nil, err
	}

	r, err := git.PlainOpenWithOptions(filepath.Dir(abs), &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return "", nil, errors.Wrapf(err, "no git repository around %s", path)
	}

	wt, err := r.Worktree()
	if err != nil {
		return "", nil, err
	}

	rel, err := filepath.Rel(wt.Filesystem.Root(), abs)
	if err != nil {
		return "", nil, err
	}

	rel = filepath.ToSlash(rel)

	iter, err := r.Log(&git.LogOptions{FileName: &rel})
	if err != nil {
		return "", nil, err
	}

	defer iter.Close()

	var entries []HistoryEntry

	err = iter.ForEach(func(c *object.Commit) error {
		summary := c.Message
		if i := strings.IndexByte(summary, '\n'); i >= 0 {
			summary = summary[:i]
		}

		entries = append(entries, HistoryEntry{
			Hash:    c.Hash.String()[:8],
			Author:  c.Author.Name,
			When:    c.Author.When,
			Summary: strings.TrimSpace(summary),
		})

		return nil
	})
	if err != nil {
		return "", nil, err
	}

	return repoId(r, wt.Filesystem.Root()), entries, nil
}

var scpSyntaxRe = regexp.MustCompile(`^([a-zA-Z0-9_]+)@([a-zA-Z0-9._-]+):(.*)$`)

func repoId(r *git.Repository, root string) string {
	remote, err := r.Remote("origin")
	if err != nil {
		return filepath.Base(root)
	}

	urls := remote.Config().URLs
	if len(urls) == 0 {
		return filepath.Base(root)
	}

	id, err := remoteRepoId(urls[0])
	if err != nil {
		return filepath.Base(root)
	}

	return id
}

func remoteRepoId(configUrl string) (string, error) {
	var id string

	if m := scpSyntaxRe.FindStringSubmatch(configUrl); m != nil {
		id = fmt.Sprintf("%s/%s", m[2], m[3])
	} else {
		repoURL, err := url.Parse(configUrl)
		if err != nil {
			return "", err
		}

		id = fmt.Sprintf("%s/%s", repoURL.Host, strings.TrimPrefix(repoURL.Path, "/"))
	}

	return strings.TrimSuffix(id, ".git"), nil
}
