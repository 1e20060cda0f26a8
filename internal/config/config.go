package config

import (
	"fmt"
	"time"
)

// Long-standing deployment defaults. The listen address and store
// directory name are kept stable so existing data dirs and clients
// keep working across upgrades.
const (
	DefaultListenAddr   = "tcp://127.0.0.1:31337"
	DefaultStoreDirName = "wx_store"

	DefaultEventThreshold        = time.Hour
	DefaultFetchFailureThreshold = 3 * time.Minute
)

// Config is the resolved server configuration after flags, environment
// variables, and an optional config file have been merged.
type Config struct {
	DataDir               string        `mapstructure:"data-dir"`
	ListenAddr            string        `mapstructure:"listen"`
	MetricsAddr           string        `mapstructure:"metrics"`
	EventThreshold        time.Duration `mapstructure:"event-threshold"`
	FetchFailureThreshold time.Duration `mapstructure:"fetch-failure-threshold"`
	Fsync                 string        `mapstructure:"fsync"`
	FsyncInterval         time.Duration `mapstructure:"fsync-interval"`
	LogLevel              string        `mapstructure:"log-level"`
	LogFormat             string        `mapstructure:"log-format"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		ListenAddr:            DefaultListenAddr,
		EventThreshold:        DefaultEventThreshold,
		FetchFailureThreshold: DefaultFetchFailureThreshold,
		Fsync:                 "always",
		FsyncInterval:         5 * time.Millisecond,
		LogLevel:              "info",
		LogFormat:             "text",
	}
}

// Validate rejects configurations the server cannot run with. DataDir
// and MetricsAddr may be empty: the data dir falls back to the OS
// default and an empty metrics address disables the metrics listener.
func (c Config) Validate() error {
	if c.ListenAddr == "" {
		return fmt.Errorf("listen address must not be empty")
	}
	if c.EventThreshold <= 0 {
		return fmt.Errorf("event threshold must be positive, got %s", c.EventThreshold)
	}
	if c.FetchFailureThreshold <= 0 {
		return fmt.Errorf("fetch failure threshold must be positive, got %s", c.FetchFailureThreshold)
	}
	switch c.Fsync {
	case "always", "interval", "never":
	default:
		return fmt.Errorf("invalid fsync mode %q; use always|interval|never", c.Fsync)
	}
	if c.Fsync == "interval" && c.FsyncInterval <= 0 {
		return fmt.Errorf("fsync interval must be positive, got %s", c.FsyncInterval)
	}
	return nil
}
