// Package config defines service configuration structures and loading
// hooks.
//
// Conventions:
// - Provide New() to build a Config with defaults.
// - External errors are wrapped via this package's error helpers.
package config

// Config contains process configuration. The upstream feed location is
// fixed for the Games and deliberately not configurable.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// Addr configures the HTTP listen address, e.g. ":3000".
	Addr string `koanf:"addr"`

	// DBPath points at the reference SQLite database produced by the
	// one-time ODF import.
	DBPath string `koanf:"db_path"`
}

// New creates a Config with defaults.
func New() *Config {
	return &Config{
		LogLevel: "info",
		Addr:     ":3000",
		DBPath:   "ref.db",
	}
}
