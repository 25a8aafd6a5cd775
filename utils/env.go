package utils

import (
	"os"
	"strings"
	"time"
)

// EnvOrDefault returns the trimmed value of an environment variable,
// or def when it is unset or blank.
func EnvOrDefault(key, def string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return def
	}
	return value
}

// SplitList parses a comma-separated env value into a trimmed list,
// dropping empty entries.
func SplitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, part := range parts {
		item := strings.TrimSpace(part)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

// AppLocation resolves the TIMEZONE env var into a *time.Location,
// falling back to the server's local zone when unset or invalid.
func AppLocation() *time.Location {
	name := strings.TrimSpace(os.Getenv("TIMEZONE"))
	if name == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return time.Local
	}
	return loc
}
