package harvest

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ariel-frischer/ronlog/internal/errors"
)

// initRepo creates a throwaway repository with a local username configured.
func initRepo(t *testing.T) (string, *git.Worktree) {
	t.Helper()

	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	cfg, err := repo.Config()
	require.NoError(t, err)
	cfg.User.Name = "tester"
	cfg.User.Email = "tester@example.com"
	require.NoError(t, repo.SetConfig(cfg))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	return dir, wt
}

// commit records an empty commit with a fixed identity and timestamp.
func commit(t *testing.T, wt *git.Worktree, message string, when time.Time) plumbing.Hash {
	t.Helper()

	sig := &object.Signature{Name: "tester", Email: "tester@example.com", When: when}
	hash, err := wt.Commit(message, &git.CommitOptions{
		Author:            sig,
		Committer:         sig,
		AllowEmptyCommits: true,
	})
	require.NoError(t, err)
	return hash
}

func TestOpen_NotARepository(t *testing.T) {
	_, err := Open(t.TempDir())
	require.Error(t, err)
	assert.True(t, errors.IsRepositoryAccess(err))
}

func TestOpen_DetectsDotGitInParent(t *testing.T) {
	dir, wt := initRepo(t)
	commit(t, wt, "Added: something", time.Now())

	nested := filepath.Join(dir, "deeply", "nested")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	repo, err := Open(nested)
	require.NoError(t, err)

	commits, err := repo.Commits(StopNever())
	require.NoError(t, err)
	assert.Len(t, commits, 1)
}

func TestCommits_NewestFirst(t *testing.T) {
	dir, wt := initRepo(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	commit(t, wt, "first", base)
	commit(t, wt, "second", base.Add(time.Minute))
	commit(t, wt, "third", base.Add(2*time.Minute))

	repo, err := Open(dir)
	require.NoError(t, err)

	commits, err := repo.Commits(StopNever())
	require.NoError(t, err)

	require.Len(t, commits, 3)
	assert.Equal(t, "third", commits[0].Summary)
	assert.Equal(t, "second", commits[1].Summary)
	assert.Equal(t, "first", commits[2].Summary)
}

func TestCommits_StopAfter(t *testing.T) {
	dir, wt := initRepo(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	for i, msg := range []string{"one", "two", "three", "four"} {
		commit(t, wt, msg, base.Add(time.Duration(i)*time.Minute))
	}

	repo, err := Open(dir)
	require.NoError(t, err)

	commits, err := repo.Commits(StopAfter(2))
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "four", commits[0].Summary)
	assert.Equal(t, "three", commits[1].Summary)
}

func TestCommits_StopAtExcludesBoundary(t *testing.T) {
	dir, wt := initRepo(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	commit(t, wt, "first", base)
	boundary := commit(t, wt, "second", base.Add(time.Minute))
	commit(t, wt, "third", base.Add(2*time.Minute))

	repo, err := Open(dir)
	require.NoError(t, err)

	commits, err := repo.Commits(StopAt(boundary.String()))
	require.NoError(t, err)

	require.Len(t, commits, 1)
	assert.Equal(t, "third", commits[0].Summary)
}

func TestCommits_StopAtAbbreviatedHash(t *testing.T) {
	dir, wt := initRepo(t)
	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	boundary := commit(t, wt, "first", base)
	commit(t, wt, "second", base.Add(time.Minute))

	repo, err := Open(dir)
	require.NoError(t, err)

	commits, err := repo.Commits(StopAt(boundary.String()[:8]))
	require.NoError(t, err)

	require.Len(t, commits, 1)
	assert.Equal(t, "second", commits[0].Summary)
}

func TestCommits_NoHead(t *testing.T) {
	dir := t.TempDir()
	_, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	repo, err := Open(dir)
	require.NoError(t, err)

	_, err = repo.Commits(StopNever())
	require.Error(t, err)
	assert.True(t, errors.IsRepositoryAccess(err))
}

func TestBranch(t *testing.T) {
	dir, wt := initRepo(t)
	commit(t, wt, "initial", time.Now())

	repo, err := Open(dir)
	require.NoError(t, err)

	branch, err := repo.Branch()
	require.NoError(t, err)
	assert.Contains(t, []string{"master", "main"}, branch)
}

func TestUser(t *testing.T) {
	dir, wt := initRepo(t)
	commit(t, wt, "initial", time.Now())

	repo, err := Open(dir)
	require.NoError(t, err)

	user, err := repo.User()
	require.NoError(t, err)
	assert.Equal(t, "tester", user)
}

func TestCommits_InMemoryRepository(t *testing.T) {
	gitrepo, err := git.Init(memory.NewStorage(), memfs.New())
	require.NoError(t, err)

	wt, err := gitrepo.Worktree()
	require.NoError(t, err)

	base := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	commit(t, wt, "Added: in-memory support", base)
	commit(t, wt, "Fixed: walker ordering", base.Add(time.Minute))

	repo := &Repository{repo: gitrepo, path: "in-memory"}
	commits, err := repo.Commits(StopNever())
	require.NoError(t, err)

	require.Len(t, commits, 2)
	assert.Equal(t, "Fixed: walker ordering", commits[0].Summary)
	assert.Equal(t, "Added: in-memory support", commits[1].Summary)
}

func TestSplitMessage(t *testing.T) {
	tests := map[string]struct {
		message     string
		wantSummary string
		wantBody    string
	}{
		"summary only":        {"Added: x", "Added: x", ""},
		"summary and body":    {"Added: x\n\nlong body\nsecond line", "Added: x", "long body\nsecond line"},
		"crlf normalised":     {"Added: x\r\n\r\nbody", "Added: x", "body"},
		"trailing newline":    {"Added: x\n", "Added: x", ""},
		"whitespace trimmed":  {"  Added: x  \n\n  body  ", "Added: x", "body"},
		"empty message":       {"", "", ""},
		"body without summary": {"\nbody only", "", "body only"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			summary, body := splitMessage(tc.message)
			assert.Equal(t, tc.wantSummary, summary)
			assert.Equal(t, tc.wantBody, body)
		})
	}
}
