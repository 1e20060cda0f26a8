// Package config holds the server configuration schema, its built-in
// defaults, and validation. Flag, environment, and file binding live in
// the CLI layer; this package only defines what a resolved configuration
// looks like and which values are acceptable.
//
// Example:
//
//	cfg := config.Default()
//	cfg.DataDir = config.DefaultDataDir()
//	if err := cfg.Validate(); err != nil {
//	    return err
//	}
package config
