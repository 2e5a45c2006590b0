// Package logx sets up the slog loggers shared by the physics packages and
// the command line tools.
package logx

import (
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/pkg/errors"
)

// EnvLevel is the environment variable read for the initial level.
const EnvLevel = "COLLIDE_LOG_LEVEL"

// UserLevel is the verbosity the user has selected. Messages at or above
// it are shown. The default is [slog.LevelWarn].
var UserLevel = new(slog.LevelVar)

var (
	mu      sync.Mutex
	output  io.Writer = os.Stderr
	current *slog.Logger
)

// LevelFromFlags returns the level matching the usual verbosity flags:
//   - vv: [slog.LevelDebug]
//   - v: [slog.LevelInfo]
//   - q: [slog.LevelError]
//   - (default: [slog.LevelWarn])
func LevelFromFlags(vv, v, q bool) slog.Level {
	switch {
	case vv:
		return slog.LevelDebug
	case v:
		return slog.LevelInfo
	case q:
		return slog.LevelError
	default:
		return slog.LevelWarn
	}
}

// ParseLevel accepts the slog level names (debug, info, warn, error) in
// any case, with optional offsets such as "warn+2".
func ParseLevel(s string) (slog.Level, error) {
	var l slog.Level
	if err := l.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, errors.Wrapf(err, "invalid log level %q", s)
	}
	return l, nil
}

// SetLevel changes the level of every logger created by this package.
func SetLevel(l slog.Level) {
	UserLevel.Set(l)
}

// SetOutput redirects every logger created afterwards.
func SetOutput(w io.Writer) {
	mu.Lock()
	defer mu.Unlock()
	output = w
	current = New(w)
}

// New creates a text logger writing to w, filtered by UserLevel.
func New(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: UserLevel}))
}

func init() {
	UserLevel.Set(slog.LevelWarn)
	if s := os.Getenv(EnvLevel); s != "" {
		if l, err := ParseLevel(s); err == nil {
			UserLevel.Set(l)
		}
	}
}

// Default returns the shared logger.
func Default() *slog.Logger {
	mu.Lock()
	defer mu.Unlock()
	if current == nil {
		current = New(output)
	}
	return current
}

// For returns the shared logger tagged with a component attribute.
func For(component string) *slog.Logger {
	return Default().With("component", component)
}
