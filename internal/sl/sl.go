// Package sl holds slog attribute helpers shared by the module's loggers.
package sl

import (
	"log/slog"
	"unicode/utf8"
)

func Err(err error) slog.Attr {
	if err == nil {
		return slog.String("error", "")
	}
	return slog.Attr{
		Key:   "error",
		Value: slog.StringValue(err.Error()),
	}
}

// Secret returns the first 5 characters of the input followed by "***",
// used to hide credentials in logs.
func Secret(some string) slog.Attr {
	r := "***"
	if len(some) > 5 {
		r = some[0:5] + "***"
	}
	if some == "" {
		r = "?"
	}
	return slog.Attr{
		Key:   "secret",
		Value: slog.StringValue(r),
	}
}

func Module(mod string) slog.Attr {
	return slog.Attr{
		Key:   "mod",
		Value: slog.StringValue(mod),
	}
}

// Truncate shortens s to at most n runes, appending "..." when it was cut.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	r := []rune(s)
	return string(r[:n]) + "..."
}
