package errmsg

import (
	"errors"
	"fmt"
)

var (
	IO              = errors.New("i/o error")
	NotOpen         = errors.New("disk is not open")
	NotFound        = errors.New("disk not found")
	AlreadyOpen     = errors.New("disk is already open")
	ExclusiveLock   = errors.New("disk is locked by another owner")
	OversizedData   = errors.New("data exceeds cluster size")
	IndexOutOfRange = errors.New("cluster index out of range")
	TruncatedMedium = errors.New("medium is shorter than its geometry")
	InvalidGeometry = errors.New("invalid geometry")
)

// IOError wraps a failure of the underlying medium. errors.Is(err, IO)
// holds for every IOError.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

func (e *IOError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

func (e *IOError) Is(target error) bool {
	return target == IO
}
