package pathcache

import (
	"log"
	"os"
)

// Logger receives progress events once it is attached to a PathCache
// with SetLogger. It is deliberately the same shape as the
// standard library's *log.Logger so that one can be passed directly.
type Logger interface {
	Printf(format string, args ...any)
}

// NewStdLogger returns a Logger that writes to stderr via the standard
// library's log package, prefixed to distinguish it from other output.
func NewStdLogger() Logger {
	return log.New(os.Stderr, "pathcache: ", log.LstdFlags)
}

type noopLogger struct{}

func (noopLogger) Printf(string, ...any) {}
