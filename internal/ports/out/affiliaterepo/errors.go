package affiliaterepo

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates the requested affiliate does not exist.
var ErrNotFound = errors.New("affiliate not found")

// UniqueViolationError is the raw uniqueness-constraint signal produced by a
// storage adapter. Field names the violated column/key. Interpretation into a
// domain conflict happens once, at the application boundary; repositories
// never decide which violations are business conflicts.
type UniqueViolationError struct {
	Field string
	Err   error
}

func (e *UniqueViolationError) Error() string {
	return fmt.Sprintf("unique violation on %q", e.Field)
}

func (e *UniqueViolationError) Unwrap() error { return e.Err }
