// Package harvest walks a git repository's history and turns commit
// messages into changelog fragments. It uses the go-git library so the
// pipeline works without a git CLI installation.
package harvest

import (
	"strings"

	"github.com/go-git/go-git/v5"
	gitconfig "github.com/go-git/go-git/v5/config"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/plumbing/storer"
	logger "github.com/sirupsen/logrus"

	"github.com/ariel-frischer/ronlog/internal/errors"
)

// Commit is one harvested commit message, split into its summary line and
// the remaining body. Commits are read-only and discarded after splitting.
type Commit struct {
	Summary string
	Body    string
}

// stopKind discriminates the walk's stop condition.
type stopKind int

const (
	stopNever stopKind = iota
	stopAfter
	stopAt
)

// Stop bounds a history walk. Construct values with StopAfter, StopAt, or
// StopNever.
type Stop struct {
	kind  stopKind
	count int
	hash  string
}

// StopAfter stops the walk after n commits, n >= 1.
func StopAfter(n int) Stop { return Stop{kind: stopAfter, count: n} }

// StopAt stops the walk when the commit with the given identifier is
// reached; that commit itself is excluded. Abbreviated hashes match by
// prefix.
func StopAt(hash string) Stop { return Stop{kind: stopAt, hash: hash} }

// StopNever walks the entire reachable history from the start point.
func StopNever() Stop { return Stop{} }

// Repository wraps an opened git repository for harvesting.
type Repository struct {
	repo *git.Repository
	path string
}

// Open opens the repository containing path, traversing parent
// directories to find the .git directory. A missing repository is a
// RepositoryAccessError: harvesting from nothing would silently
// under-report changes.
func Open(path string) (*Repository, error) {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{
		DetectDotGit: true,
	})
	if err != nil {
		return nil, &errors.RepositoryAccessError{
			Path:   path,
			Reason: "this is not a git repository",
			Err:    err,
		}
	}
	return &Repository{repo: repo, path: path}, nil
}

// Branch returns the short name of the current branch, or "HEAD" in a
// detached state.
func (r *Repository) Branch() (string, error) {
	head, err := r.repo.Head()
	if err != nil {
		return "", &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "cannot resolve HEAD",
			Err:    err,
		}
	}
	if !head.Name().IsBranch() {
		return "HEAD", nil
	}
	return head.Name().Short(), nil
}

// User returns the configured git username. Configuration is read with
// system scope so global identities are found.
func (r *Repository) User() (string, error) {
	cfg, err := r.repo.ConfigScoped(gitconfig.SystemScope)
	if err != nil {
		return "", &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "cannot read repository configuration",
			Err:    err,
		}
	}
	if cfg.User.Name == "" {
		return "", &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "there is no git username configured, yet",
		}
	}
	return cfg.User.Name, nil
}

// Commits walks the history from HEAD in reverse chronological order
// until the stop condition is met or history is exhausted. The walk
// restarts from scratch on every call. An unresolvable start point fails
// with a RepositoryAccessError.
func (r *Repository) Commits(stop Stop) ([]Commit, error) {
	head, err := r.repo.Head()
	if err != nil {
		return nil, &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "cannot resolve HEAD",
			Err:    err,
		}
	}

	iter, err := r.repo.Log(&git.LogOptions{
		From:  head.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "cannot walk the commit history",
			Err:    err,
		}
	}
	defer iter.Close()

	var commits []Commit
	err = iter.ForEach(func(c *object.Commit) error {
		if stop.kind == stopAt && strings.HasPrefix(c.Hash.String(), stop.hash) {
			return storer.ErrStop
		}

		summary, body := splitMessage(c.Message)
		commits = append(commits, Commit{Summary: summary, Body: body})

		if stop.kind == stopAfter && len(commits) >= stop.count {
			return storer.ErrStop
		}
		return nil
	})
	if err != nil {
		return nil, &errors.RepositoryAccessError{
			Path:   r.path,
			Reason: "commit walk failed",
			Err:    err,
		}
	}

	logger.Debugf("harvested %d commits from %s", len(commits), r.path)
	return commits, nil
}

// splitMessage separates a raw commit message into its summary line and
// the body following the first blank line.
func splitMessage(message string) (summary, body string) {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	summary, rest, found := strings.Cut(message, "\n")
	summary = strings.TrimSpace(summary)
	if !found {
		return summary, ""
	}
	return summary, strings.TrimSpace(rest)
}
