package plan

import (
	"errors"
	"fmt"
)

// Error codes surfaced to callers. InvalidPlacement is not in this list on
// purpose: a rejected placement is a normal outcome carried in Placement,
// not an error value.
const (
	CodeWallNotFound = "WALL_NOT_FOUND"
	CodeInvariant    = "INVARIANT_VIOLATION"
)

// Error represents an engine failure with a stable code.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func wallNotFound(id WallID) *Error {
	return &Error{Code: CodeWallNotFound, Message: fmt.Sprintf("wall %d not found", id)}
}

func invariantViolation(format string, v ...any) *Error {
	return &Error{Code: CodeInvariant, Message: fmt.Sprintf(format, v...)}
}

// IsWallNotFound reports whether err is a failed identity resolution.
// Callers must treat this as recoverable (e.g. drop the dangling fixture
// reference), never as fatal.
func IsWallNotFound(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeWallNotFound
}

// IsInvariantViolation reports whether err signals corrupted input state,
// which points at a bug in an upstream mutation rather than a user error.
func IsInvariantViolation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == CodeInvariant
}
