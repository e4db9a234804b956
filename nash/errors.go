// Package nash computes Nash equilibria of finite games. Each solver
// is a pure function from a read-only game, a numeric kernel and a
// parameter struct to an ordered, deduplicated result set. Iterative
// solvers (liap, simpdiv, ipa, gnm) are budgeted: an exhausted budget
// yields an empty result set and a nil error, which means "not found",
// never "proven absent" — every finite game has at least one mixed
// equilibrium.
package nash

import (
	"errors"
	"fmt"
)

// ErrUnsupported is wrapped by every solver invocation that cannot
// handle the given game's player count or form. It is returned before
// any computation starts.
var ErrUnsupported = errors.New("unsupported solver configuration")

func unsupportedf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrUnsupported, fmt.Sprintf(format, args...))
}
