package logging

import (
	"fmt"
	"io"
	"strings"
)

const (
	FormatSlog = "slog"
	FormatZap  = "zap"
)

// New builds a JSON logger writing to w. format selects the backend
// ("slog" or "zap"); level is one of debug, info, warn, error.
func New(format, level string, w io.Writer) (Logger, error) {
	switch strings.ToLower(format) {
	case "", FormatSlog:
		l, err := NewSlogJSON(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil
	case FormatZap:
		l, err := NewZapJSON(w, level)
		if err != nil {
			return nil, err
		}
		return l, nil
	default:
		return nil, fmt.Errorf("unknown log format %q", format)
	}
}
