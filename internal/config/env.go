// Package config provides environment-driven settings shared by the entry points.
package config

import (
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/charmbracelet/log"
)

// Environment variables.
const (
	EnvDataDir  = "INVERTERS_DATA_DIR"
	EnvLogFile  = "INVERTERS_LOG_FILE"
	EnvLogLevel = "INVERTERS_LOG_LEVEL"
)

// Defaults.
const (
	DefaultDataDir  = "data"
	DefaultLogLevel = "info"
	anonymousUser   = "anonymous"
)

// GetEnv returns the value of the environment variable named by the key,
// or fallback if the variable is not set.
func GetEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

// DataDir returns the directory holding the record files.
func DataDir() string {
	return GetEnv(EnvDataDir, DefaultDataDir)
}

// UserDataDir returns the per-user record directory under root. The user name is
// reduced to characters that are safe in a single path element.
func UserDataDir(root, user string) string {
	var b strings.Builder
	for _, r := range user {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteByte('_')
		}
	}
	name := strings.Trim(b.String(), "_")
	if name == "" {
		name = anonymousUser
	}
	return filepath.Join(root, name)
}

// NewLogger returns a logger writing to w at the level named by INVERTERS_LOG_LEVEL.
// Unknown levels fall back to info.
func NewLogger(w io.Writer, prefix string) *log.Logger {
	level, err := log.ParseLevel(GetEnv(EnvLogLevel, DefaultLogLevel))
	if err != nil {
		level = log.InfoLevel
	}
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		Prefix:          prefix,
		ReportTimestamp: true,
	})
}
