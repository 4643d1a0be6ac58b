package repo

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func commitFile(t *testing.T, wt *git.Worktree, dir, name, content, msg string) {
	t.Helper()

	err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644)
	require.NoError(t, err)

	_, err = wt.Add(name)
	require.NoError(t, err)

	_, err = wt.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  "Dev",
			Email: "dev@example.com",
			When:  time.Now(),
		},
	})
	require.NoError(t, err)
}

func TestHistory(t *testing.T) {
	dir := t.TempDir()

	r, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	wt, err := r.Worktree()
	require.NoError(t, err)

	commitFile(t, wt, dir, "requirements.txt", "openai>=1.0.0\n", "add requirements")
	commitFile(t, wt, dir, "README.md", "hi\n", "add readme")
	commitFile(t, wt, dir, "requirements.txt", "openai>=2.0.0\n", "bump openai\n\nlonger body")

	t.Run("lists only commits touching the manifest, newest first", func(t *testing.T) {
		id, entries, err := History(filepath.Join(dir, "requirements.txt"))
		require.NoError(t, err)

		assert.Equal(t, filepath.Base(dir), id)

		require.Len(t, entries, 2)

		assert.Equal(t, "bump openai", entries[0].Summary)
		assert.Equal(t, "add requirements", entries[1].Summary)
		assert.Equal(t, "Dev", entries[0].Author)
		assert.Len(t, entries[0].Hash, 8)
	})

	t.Run("uses the origin remote for the repo id", func(t *testing.T) {
		_, err := r.CreateRemote(&config.RemoteConfig{
			Name: "origin",
			URLs: []string{"git@github.com:acme/app.git"},
		})
		require.NoError(t, err)

		id, _, err := History(filepath.Join(dir, "requirements.txt"))
		require.NoError(t, err)

		assert.Equal(t, "github.com/acme/app", id)
	})

	t.Run("errors outside a repository", func(t *testing.T) {
		outside := t.TempDir()

		err := os.WriteFile(filepath.Join(outside, "requirements.txt"), []byte("a>=1\n"), 0644)
		require.NoError(t, err)

		_, _, err = History(filepath.Join(outside, "requirements.txt"))
		require.Error(t, err)
	})
}

func TestRemoteRepoId(t *testing.T) {
	id, err := remoteRepoId("https://github.com/acme/app.git")
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/app", id)

	id, err = remoteRepoId("git@github.com:acme/app.git")
	require.NoError(t, err)
	assert.Equal(t, "github.com/acme/app", id)
}
