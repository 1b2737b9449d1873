// Package gitstore adapts a git repository to the scan engine's Store
// contract using go-git.
package gitstore

import (
	"errors"
	"fmt"
	"strings"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"

	"lastgood/internal/scan"
)

// ErrNotRepository is returned by Open when the location is not a
// readable git repository.
var ErrNotRepository = errors.New("not a git repository")

// Store is a scan.Store backed by an on-disk git repository.
type Store struct {
	repo *git.Repository
	wt   *git.Worktree
}

// Open opens the repository at path.
func Open(path string) (*Store, error) {
	repo, err := git.PlainOpen(path)
	if err != nil {
		if errors.Is(err, git.ErrRepositoryNotExists) {
			return nil, fmt.Errorf("%w: %s", ErrNotRepository, path)
		}
		return nil, fmt.Errorf("open repository %s: %w", path, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("open worktree: %w", err)
	}

	return &Store{repo: repo, wt: wt}, nil
}

// Head resolves the current workspace pointer to a revision.
func (s *Store) Head() (scan.Revision, error) {
	ref, err := s.repo.Head()
	if err != nil {
		return scan.Revision{}, fmt.Errorf("resolve HEAD: %w", err)
	}
	commit, err := s.repo.CommitObject(ref.Hash())
	if err != nil {
		return scan.Revision{}, fmt.Errorf("resolve HEAD commit %s: %w", ref.Hash(), err)
	}
	return toRevision(commit), nil
}

// Log returns the newest-first revision stream reachable from HEAD.
// The stream is consumed in place and cannot be rewound; callers that
// need a second pass must call Log again.
func (s *Store) Log() (scan.RevisionIter, error) {
	ref, err := s.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("resolve HEAD: %w", err)
	}
	inner, err := s.repo.Log(&git.LogOptions{
		From:  ref.Hash(),
		Order: git.LogOrderCommitterTime,
	})
	if err != nil {
		return nil, fmt.Errorf("walk history from %s: %w", ref.Hash(), err)
	}
	return &revisionIter{inner: inner}, nil
}

// Exists reports whether path is present in the revision's tree. The
// lookup reads the object store only; the workspace is untouched.
func (s *Store) Exists(rev scan.Revision, path string) (bool, error) {
	commit, err := s.commit(rev)
	if err != nil {
		return false, err
	}
	_, err = commit.File(path)
	if errors.Is(err, object.ErrFileNotFound) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("lookup %s at %s: %w", path, rev.ID, err)
	}
	return true, nil
}

// Checkout materializes the revision into the worktree and detaches HEAD
// at it. The checkout is forced: uncommitted local modifications are
// overwritten, which is the caller's precondition to uphold.
func (s *Store) Checkout(rev scan.Revision) error {
	err := s.wt.Checkout(&git.CheckoutOptions{
		Hash:  plumbing.NewHash(rev.ID),
		Force: true,
	})
	if err != nil {
		return fmt.Errorf("checkout %s: %w", rev.ID, err)
	}
	return nil
}

func (s *Store) commit(rev scan.Revision) (*object.Commit, error) {
	commit, err := s.repo.CommitObject(plumbing.NewHash(rev.ID))
	if err != nil {
		return nil, fmt.Errorf("resolve commit %s: %w", rev.ID, err)
	}
	return commit, nil
}

type revisionIter struct {
	inner object.CommitIter
}

// Next yields the next revision, or io.EOF when the history is
// exhausted.
func (it *revisionIter) Next() (scan.Revision, error) {
	commit, err := it.inner.Next()
	if err != nil {
		return scan.Revision{}, err
	}
	return toRevision(commit), nil
}

func (it *revisionIter) Close() {
	it.inner.Close()
}

func toRevision(c *object.Commit) scan.Revision {
	summary, _, _ := strings.Cut(c.Message, "\n")
	return scan.Revision{
		ID:      c.Hash.String(),
		Summary: strings.TrimSpace(summary),
		Message: c.Message,
		When:    c.Committer.When,
	}
}
