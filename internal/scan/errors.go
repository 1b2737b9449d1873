package scan

import "errors"

// Fatal error classes. Each aborts the scan; all of them still route
// through restoration before the run terminates. A failing verification
// is deliberately absent here: it is a scan result, not an error.
var (
	// ErrHistory wraps failures to enumerate or resolve revisions.
	ErrHistory = errors.New("cannot walk revision history")

	// ErrCheckout wraps failures to materialize a revision.
	ErrCheckout = errors.New("cannot materialize revision")

	// ErrVerifier wraps launch failures of the verifier process.
	// A nonzero exit from a launched verifier never produces this.
	ErrVerifier = errors.New("cannot run verifier")

	// ErrRestore wraps failures of the final restoration step. It is
	// always reported alongside, never instead of, whatever result or
	// error preceded it.
	ErrRestore = errors.New("cannot restore original revision")
)

// IsRestoreFailure checks if the error includes a restoration failure.
func IsRestoreFailure(err error) bool {
	return errors.Is(err, ErrRestore)
}
