package lib

import (
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"
)

func ParseSLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	err := level.UnmarshalText([]byte(s))
	return level, err
}

// NewLogger builds the logger every binary uses. format is "text" (the default when
// empty) or "json". Source locations are trimmed to the file name.
func NewLogger(w io.Writer, level, format string) (*slog.Logger, error) {
	lvl, err := ParseSLogLevel(level)
	if err != nil {
		return nil, err
	}
	opts := &slog.HandlerOptions{
		AddSource:   true,
		Level:       lvl,
		ReplaceAttr: shortSource,
	}
	switch strings.ToLower(format) {
	case "", "text":
		return slog.New(slog.NewTextHandler(w, opts)), nil
	case "json":
		return slog.New(slog.NewJSONHandler(w, opts)), nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}

// https://www.reddit.com/r/golang/comments/15nwnkl/achieve_lshortfile_with_slog/jy8emik/
func shortSource(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.SourceKey {
		if source, _ := a.Value.Any().(*slog.Source); source != nil {
			source.File = filepath.Base(source.File)
		}
	}
	return a
}

// DiscardLogger drops everything, handy for tests and library defaults.
func DiscardLogger() *slog.Logger {
	return slog.New(slog.DiscardHandler)
}
