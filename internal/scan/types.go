// Package scan implements the history-traversal engine: an ordered walk
// over revisions, a presence filter for the target file, a
// materialize/verify loop, and a restoration step that runs no matter how
// the walk ends.
package scan

import "time"

// Revision is one snapshot in the repository's history. It is produced
// by the Store and read-only to the engine.
type Revision struct {
	ID      string    // backend-assigned stable identity
	Summary string    // first line of the message
	Message string    // full message
	When    time.Time // commit timestamp
}

// Outcome is the terminal result of a scan. Revision is meaningful only
// when Found is true.
type Outcome struct {
	Found    bool
	Revision Revision
}

// Store is the engine's view of the version-control backend. The
// workspace and its current pointer are owned exclusively by the engine
// for the duration of a run; nothing else may mutate them concurrently.
type Store interface {
	// Head resolves the current workspace pointer to a revision.
	Head() (Revision, error)

	// Log returns the finite, newest-first sequence of revisions
	// reachable from the current pointer. The iterator cannot be
	// restarted mid-stream; a fresh scan must call Log again.
	Log() (RevisionIter, error)

	// Exists reports whether path is present at the given revision,
	// without mutating the workspace.
	Exists(rev Revision, path string) (bool, error)

	// Checkout materializes the revision's full content into the
	// workspace and moves the pointer to it. This overwrites any
	// uncommitted local modifications; the caller is responsible for
	// ensuring the workspace is safe to clobber.
	Checkout(rev Revision) error
}

// RevisionIter yields revisions in order. Next returns io.EOF after the
// last revision.
type RevisionIter interface {
	Next() (Revision, error)
	Close()
}

// Short returns an abbreviated revision identity for log output.
func (r Revision) Short() string {
	if len(r.ID) > 8 {
		return r.ID[:8]
	}
	return r.ID
}
