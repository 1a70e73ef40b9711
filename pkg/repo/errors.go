package repo

import (
	"errors"
	"fmt"
	"io/fs"

	"github.com/odvcencio/gitstorage/pkg/object"
)

var (
	// ErrNotFound reports a path or commit that does not exist in the index
	// or commit graph.
	ErrNotFound = errors.New("not found")
	// ErrIO reports a failed filesystem or object-store operation.
	ErrIO = errors.New("i/o failure")
	// ErrInvalidArgument reports missing or malformed caller input. It is
	// always returned before any state changes.
	ErrInvalidArgument = errors.New("invalid argument")
	// ErrNoCommits reports an unborn HEAD.
	ErrNoCommits = errors.New("no commits yet")
)

// Classify attaches ErrNotFound or ErrIO to err so callers can match on the
// taxonomy while the underlying cause stays reachable through errors.Is. A
// missing file and an object of the wrong type are both ErrNotFound.
// Already classified errors are returned unchanged.
func Classify(err error) error {
	if err == nil || isClassified(err) {
		return err
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, object.ErrTypeMismatch) {
		return fmt.Errorf("%w: %w", ErrNotFound, err)
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

// ioError attaches ErrIO regardless of the cause. Used where a missing file
// means the working tree itself is broken rather than a lookup miss.
func ioError(err error) error {
	if err == nil || isClassified(err) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrIO, err)
}

func isClassified(err error) bool {
	return errors.Is(err, ErrNotFound) || errors.Is(err, ErrIO) || errors.Is(err, ErrInvalidArgument)
}

func invalidArgument(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidArgument, fmt.Sprintf(format, args...))
}
