package runlog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/require"
)

func TestRevisionOutsideRepository(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o600))

	_, ok := Revision(path)
	require.False(t, ok)
}

func TestRevisionUnbornHead(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	path := filepath.Join(dir, "setup.yaml")
	require.NoError(t, os.WriteFile(path, []byte("version: \"1.0\"\n"), 0o600))

	_, ok := Revision(path)
	require.False(t, ok)
}

func TestRevisionReturnsShortHash(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	relPath := filepath.Join("configs", "setup.yaml")
	require.NoError(t, os.WriteFile(filepath.Join(dir, relPath), []byte("version: \"1.0\"\n"), 0o600))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(relPath)
	require.NoError(t, err)

	hash, err := wt.Commit("add setup config", &git.CommitOptions{
		Author: &object.Signature{Name: "Tester", Email: "tester@example.org", When: time.Now()},
	})
	require.NoError(t, err)

	// DetectDotGit walks up from the config's directory to the repo root.
	got, ok := Revision(filepath.Join(dir, relPath))
	require.True(t, ok)
	require.Equal(t, hash.String()[:7], got)
}
