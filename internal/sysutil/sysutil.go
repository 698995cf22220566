// Package sysutil holds process-level helpers used by the server entrypoint:
// log level wiring and small environment-string utilities.
package sysutil

import (
	"strings"

	"github.com/rs/zerolog"
)

// SetLogLevel sets the global zerolog level from a config string. Unknown or
// empty values fall back to info; "warning" is accepted as an alias of warn.
func SetLogLevel(lvl string) {
	s := strings.ToLower(strings.TrimSpace(lvl))
	if s == "warning" {
		s = "warn"
	}
	l, err := zerolog.ParseLevel(s)
	if err != nil || l == zerolog.NoLevel {
		l = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(l)
}

// IsTruthy reports whether an environment value means "enabled". Accepted
// (case-insensitive): 1, true, yes, y, on.
func IsTruthy(v string) bool {
	switch strings.ToLower(strings.TrimSpace(v)) {
	case "1", "true", "yes", "y", "on":
		return true
	}
	return false
}

// FirstNonEmpty returns the first value that is not blank after trimming,
// keeping its original spacing. Empty string when none qualifies.
func FirstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}
