// Package geoerr defines the error taxonomy shared by the dataset, analysis,
// buffer, and export packages.
package geoerr

import (
	"errors"

	"github.com/rotisserie/eris"
)

// Sentinel errors. Callers match them with eris.Is or errors.Is after any
// amount of wrapping.
var (
	ErrMalformedInput    = eris.New("malformed input")
	ErrUnsupportedCRS    = eris.New("unsupported crs")
	ErrReferenceNotFound = eris.New("reference not found")
	ErrAttributeNotFound = eris.New("attribute not found")
	ErrInvalidParameter  = eris.New("invalid parameter")
	ErrUnsupportedFormat = eris.New("unsupported format")
)

// IOError reports a failed filesystem operation during export or rendering.
// It is surfaced as-is and never retried.
type IOError struct {
	Op   string
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return e.Op + " " + e.Path + ": " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// NewIOError wraps err as an IOError for the given operation and path.
func NewIOError(op, path string, err error) *IOError {
	return &IOError{Op: op, Path: path, Err: err}
}

// IsIO returns true if err (or any error in its chain) is an IOError.
func IsIO(err error) bool {
	if err == nil {
		return false
	}
	var ioe *IOError
	return errors.As(err, &ioe)
}
