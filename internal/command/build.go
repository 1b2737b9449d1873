// Package command constructs the effective verification command line for
// a revision. Construction is a pure function of its inputs: no hidden
// state, no I/O.
package command

import (
	"strings"

	"lastgood/internal/target"
)

// pytestRunner is the fixed runner used in pytest mode.
const pytestRunner = "pytest"

// Build returns the command line to execute for the given target.
//
// In pytest mode the template is ignored entirely and a pytest invocation
// is synthesized from the target, including its selector when present.
//
// Otherwise the template is used as-is when it already contains the target
// path as a substring, so that re-deriving the command for every revision
// never injects the path twice; when it does not, the path is appended
// after a single space.
func Build(template string, t target.Target, pytestMode bool) string {
	if pytestMode {
		if t.Selector != "" {
			return pytestRunner + " " + t.Path + target.Separator + t.Selector
		}
		return pytestRunner + " " + t.Path
	}

	if strings.Contains(template, t.Path) {
		return template
	}
	return template + " " + t.Path
}
