package logging

import (
	"io"
	"log/slog"
	"os"
	"strings"
)

// levels maps the names accepted by LLM911_LOG_LEVEL to slog levels.
// "warning" is an alias for hand-written yaml configs.
var levels = map[string]slog.Level{
	"debug":   slog.LevelDebug,
	"info":    slog.LevelInfo,
	"warn":    slog.LevelWarn,
	"warning": slog.LevelWarn,
	"error":   slog.LevelError,
}

// ValidLevel reports whether s names a known log level.
func ValidLevel(s string) bool {
	_, ok := levels[strings.ToLower(s)]
	return ok
}

// Init installs the process-wide default slog logger at the named level.
// Unknown level names fall back to info.
func Init(stdoutReserved bool, level string) {
	slog.SetDefault(slog.New(newHandler(os.Stderr, stdoutReserved, level)))
}

// newHandler builds the slog handler for w. When stdoutReserved is true
// (the stdout report sink is active) log lines are JSON so they never
// mix with NDJSON reports; otherwise the text handler is used for
// human readability.
func newHandler(w io.Writer, stdoutReserved bool, level string) slog.Handler {
	lvl, ok := levels[strings.ToLower(level)]
	if !ok {
		lvl = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: lvl}
	if stdoutReserved {
		return slog.NewJSONHandler(w, opts)
	}
	return slog.NewTextHandler(w, opts)
}
