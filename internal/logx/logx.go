// Package logx provides a minimal tagged logger in the style the rest of
// the pack uses for component-scoped diagnostics ("[Component] message"),
// without the interactive-progress decoration a request-driven service
// would want — this tool's user-facing surface is the §6 stdout report,
// not a log stream.
package logx

import (
	"log"
	"os"
)

// Logger writes tag-prefixed lines to an underlying *log.Logger.
type Logger struct {
	tag string
	std *log.Logger
}

// New returns a Logger that prefixes every line with "[tag] ".
func New(tag string) *Logger {
	return &Logger{
		tag: tag,
		std: log.New(os.Stderr, "", log.LstdFlags),
	}
}

func (l *Logger) Printf(format string, args ...any) {
	l.std.Printf("[%s] "+format, append([]any{l.tag}, args...)...)
}

func (l *Logger) Println(args ...any) {
	l.std.Println(append([]any{"[" + l.tag + "]"}, args...)...)
}
