package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	clientcmd "github.com/rhurkes/wx-storage/internal/cmd/client"
	serverrun "github.com/rhurkes/wx-storage/internal/cmd/server"
	cfgpkg "github.com/rhurkes/wx-storage/internal/config"
)

func main() {
	cobra.OnInitialize(initConfig)

	rootCmd := &cobra.Command{
		Use:   "wx-storage",
		Short: "Durable key/value and event storage for weather data",
		Long:  "wx-storage is a single-binary store for weather data pipelines. This CLI manages the server and basic operations.",
	}
	rootCmd.PersistentFlags().String("addr", "", "Server endpoint for client commands (default "+cfgpkg.DefaultListenAddr+")")
	_ = viper.BindPFlag("addr", rootCmd.PersistentFlags().Lookup("addr"))

	rootCmd.AddCommand(newServeCommand())
	rootCmd.AddCommand(clientcmd.NewKVCommand(serverAddr))
	rootCmd.AddCommand(clientcmd.NewEventsCommand(serverAddr))
	rootCmd.AddCommand(clientcmd.NewFailuresCommand(serverAddr))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// serverAddr resolves the client endpoint from --addr or WX_ADDR.
func serverAddr() string {
	if v := viper.GetString("addr"); v != "" {
		return v
	}
	return cfgpkg.DefaultListenAddr
}

func newServeCommand() *cobra.Command {
	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the wx-storage server",
		Long: "Start the wx-storage server with the specified configuration. Flags can also be set " +
			"via environment variables with the WX_ prefix (e.g. WX_LISTEN, WX_DATA_DIR) or a config " +
			"file passed with --config.",
		RunE: runServe,
	}

	defaults := cfgpkg.Default()
	serveCmd.Flags().String("config", "", "Config file (JSON, TOML, or YAML)")
	serveCmd.Flags().String("data-dir", "", "Data directory (if not specified, uses OS-specific application data directory)")
	serveCmd.Flags().String("listen", defaults.ListenAddr, "ZeroMQ listen endpoint")
	serveCmd.Flags().String("metrics", "", "Prometheus metrics listen address (empty = disabled)")
	serveCmd.Flags().Duration("event-threshold", defaults.EventThreshold, "Event retention window applied at query time")
	serveCmd.Flags().Duration("fetch-failure-threshold", defaults.FetchFailureThreshold, "Fetch failure retention window applied at query time")
	serveCmd.Flags().String("fsync", defaults.Fsync, "Fsync mode: always|interval|never")
	serveCmd.Flags().Duration("fsync-interval", defaults.FsyncInterval, "When --fsync=interval, group-commit window")
	serveCmd.Flags().String("log-level", defaults.LogLevel, "Log level: debug|info|warn|error")
	serveCmd.Flags().String("log-format", defaults.LogFormat, "Log format: text|json")
	return serveCmd
}

// runServe merges flags, environment, and an optional config file into
// the server configuration and runs the server until interrupted.
func runServe(cmd *cobra.Command, _ []string) error {
	if err := viper.BindPFlags(cmd.Flags()); err != nil {
		return err
	}
	if cfgFile := viper.GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
		if err := viper.ReadInConfig(); err != nil {
			return fmt.Errorf("read config: %w", err)
		}
	}

	cfg := cfgpkg.Config{
		DataDir:               viper.GetString("data-dir"),
		ListenAddr:            viper.GetString("listen"),
		MetricsAddr:           viper.GetString("metrics"),
		EventThreshold:        viper.GetDuration("event-threshold"),
		FetchFailureThreshold: viper.GetDuration("fetch-failure-threshold"),
		Fsync:                 viper.GetString("fsync"),
		FsyncInterval:         viper.GetDuration("fsync-interval"),
		LogLevel:              viper.GetString("log-level"),
		LogFormat:             viper.GetString("log-format"),
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()
	if err := serverrun.Run(ctx, cfg); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// initConfig reads in env files and environment variables if set.
func initConfig() {
	// load env files
	_ = godotenv.Load(".env")
	_ = godotenv.Load(".env.local")

	// initialize viper
	viper.SetEnvPrefix("wx")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv() // read in environment variables that match
}
