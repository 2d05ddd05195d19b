// Package config provides environment configuration helpers for go-parley commands.
package config

import (
	"os"
	"strconv"
)

// Env returns the value of the named environment variable,
// falling back to def when unset or empty.
func Env(name, def string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return def
}

// EnvBool returns the boolean value of the named environment variable.
// Accepts the strconv.ParseBool forms; falls back to def otherwise.
func EnvBool(name string, def bool) bool {
	v := os.Getenv(name)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}
