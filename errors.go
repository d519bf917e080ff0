package figcon

import (
	"errors"
	"fmt"
)

var (
	// ErrMissingOption matches every *MissingOptionError.
	ErrMissingOption = errors.New("figcon: missing option")
	// ErrNotCallable indicates Call targeted a value that is not a Callable.
	ErrNotCallable = errors.New("figcon: option is not callable")
)

// MissingOptionError reports a lookup of a name the options do not define. It
// carries the configured locations so callers know where to add it.
type MissingOptionError struct {
	Name       string
	ConfigName string
	Locations  Locations
}

func (e *MissingOptionError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf(
		"figcon: options contain no item %q; set it in a %q file in either %s, %s or %s",
		e.Name, e.ConfigName, e.Locations.Default, e.Locations.Primary, e.Locations.Secondary,
	)
}

// Is reports ErrMissingOption as a match.
func (e *MissingOptionError) Is(target error) bool {
	return target == ErrMissingOption
}

// ParseError reports a definition file that could not be decoded.
type ParseError struct {
	Path   string
	Format string
	Err    error
}

func (e *ParseError) Error() string {
	if e == nil {
		return "<nil>"
	}
	return fmt.Sprintf("figcon: parse %s file %s: %v", e.Format, e.Path, e.Err)
}

func (e *ParseError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}
