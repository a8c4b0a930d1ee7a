// Package cacheerr defines the typed error kinds the path cache reports.
// Query outcomes that are not errors - no route, disconnected goals, an
// empty goal set - are never surfaced through this package; they come
// back as nil or an empty map.
package cacheerr

import (
	"errors"
	"fmt"
)

// Kind classifies a CacheError.
type Kind int

const (
	OutOfBounds Kind = iota
	InvalidConfig
	InvalidGrid
)

func (k Kind) String() string {
	switch k {
	case OutOfBounds:
		return "out of bounds"
	case InvalidConfig:
		return "invalid config"
	case InvalidGrid:
		return "invalid grid"
	default:
		return "unknown"
	}
}

// CacheError is returned for every failure the path cache can detect
// ahead of running a search: bad coordinates, bad config, a grid adapter
// that lies about its own dimensions.
type CacheError struct {
	Kind Kind
	Msg  string
	Err  error // wrapped cause, if any
}

func New(kind Kind, msg string) *CacheError {
	return &CacheError{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...any) *CacheError {
	return &CacheError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

func (e *CacheError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("pathcache: %s: %s: %v", e.Kind, e.Msg, e.Err)
	}
	return fmt.Sprintf("pathcache: %s: %s", e.Kind, e.Msg)
}

func (e *CacheError) Unwrap() error { return e.Err }

// Is reports whether err is a CacheError of the given kind.
func Is(err error, kind Kind) bool {
	var ce *CacheError
	return errors.As(err, &ce) && ce.Kind == kind
}
