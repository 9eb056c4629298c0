// Package config loads and validates the application configuration.
//
// Values are layered lowest priority first: built-in defaults, an
// optional TOML config file, TODOPUSH_-prefixed environment variables
// (double underscore nests, e.g. TODOPUSH_KEEP__EMAIL -> keep.email),
// and command-line flags.
package config
