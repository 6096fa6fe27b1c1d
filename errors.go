package hugecache

import "github.com/pkg/errors"

// InvariantError reports a broken invariant. Cache.Validate returns one when
// the cached size and the address map's total disagree, which is a
// programmer error in the caller rather than a recoverable runtime
// condition; memutils.DebugValidate turns it into a panic under the
// debug_hugecache build tag. NewCache also returns one, as an ordinary
// error, for an invalid Config.
type InvariantError struct {
	msg string
}

func (e *InvariantError) Error() string { return e.msg }

func newInvariantError(format string, args ...any) *InvariantError {
	return &InvariantError{msg: errors.Errorf(format, args...).Error()}
}
