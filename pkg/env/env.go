// Package env provides small helpers for reading process environment
// variables with defaults, used where full envconfig structs are overkill.
package env

import (
	"os"
	"strings"
)

// Get returns the trimmed value of the named environment variable, or
// fallback when the variable is unset or blank.
func Get(key, fallback string) string {
	val, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	if val = strings.TrimSpace(val); val == "" {
		return fallback
	}
	return val
}
