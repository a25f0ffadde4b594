package volume

import (
	"errors"
	"fmt"
)

// Sentinel errors for broad classification of load failures.
var (
	ErrUnsupportedFormat = errors.New("unsupported volume format")
	ErrEmptyStack        = errors.New("no slice images found")
	ErrDimensionMismatch = errors.New("slice dimensions differ")
	ErrShortData         = errors.New("raw data shorter than declared size")
	ErrInvalidHeader     = errors.New("invalid raw volume header")
)

// LoadError wraps a failure to turn a path into a volume.
type LoadError struct {
	Op   string
	Path string
	Err  error
}

func (e *LoadError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("%s %s: %v", e.Op, e.Path, e.Err)
}

func (e *LoadError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
