// Package applog configures the process-wide structured logger.
package applog

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
)

var (
	level slog.LevelVar
	root  = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: &level}))
)

// Init sets the minimum level for every logger handed out by this package,
// including ones created before the call.
func Init(name string) error {
	l, err := ParseLevel(name)
	if err != nil {
		return err
	}
	level.Set(l)
	slog.SetDefault(root)
	return nil
}

// ParseLevel maps debug, info, warn and error to slog levels.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", name)
}

// WithComponent returns a logger tagged with the component name.
func WithComponent(name string) *slog.Logger {
	return root.With(slog.String("component", name))
}
