// Package target parses user-supplied target identifiers of the form
// "path" or "path::selector" (pytest-style node IDs).
package target

import "strings"

// Separator introduces the sub-selector portion of a target identifier.
const Separator = "::"

// Target is the parsed form of a target identifier.
// Path identifies the file in the repository and is used for existence
// checks and checkout validation. Selector, when present, narrows the
// verification command (e.g. a test class or test function) and is used
// for command construction only.
type Target struct {
	Path     string
	Selector string
}

// Parse splits a raw identifier on the first occurrence of Separator.
// Without a separator the whole string is the path and the selector is
// empty. A path that itself contains "::" before the intended split point
// will be mis-parsed; callers with such paths should pass the bare path
// and supply the selector separately.
func Parse(raw string) Target {
	path, selector, found := strings.Cut(raw, Separator)
	if !found {
		return Target{Path: raw}
	}
	return Target{Path: path, Selector: selector}
}

// String reassembles the identifier.
func (t Target) String() string {
	if t.Selector == "" {
		return t.Path
	}
	return t.Path + Separator + t.Selector
}
