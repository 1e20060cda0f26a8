package serverrun

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/rhurkes/wx-storage/internal/config"
	"github.com/rhurkes/wx-storage/internal/server"
	pebblestore "github.com/rhurkes/wx-storage/internal/storage/pebble"
	"github.com/rhurkes/wx-storage/internal/store"
	logpkg "github.com/rhurkes/wx-storage/pkg/log"
)

// Run opens the store, starts the request socket and the optional
// metrics listener, and blocks until ctx is cancelled or the listener
// fails.
func Run(ctx context.Context, cfg cfgpkg.Config) error {
	// Layer a local signal context over the provided one so callers that
	// don't pass a signal-aware context still shut down cleanly.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := cfg.Validate(); err != nil {
		return err
	}
	if cfg.DataDir == "" {
		cfg.DataDir = cfgpkg.DefaultDataDir()
	}
	fsync, err := pebblestore.ParseFsyncMode(cfg.Fsync)
	if err != nil {
		return err
	}

	logger := buildLogger(cfg)
	// Redirect standard library logs (used by Pebble) to our logger.
	logpkg.RedirectStdLog(logger)

	storeDir := filepath.Join(cfg.DataDir, cfgpkg.DefaultStoreDirName)
	st, err := store.Open(store.Options{
		Path:                  storeDir,
		EventThreshold:        cfg.EventThreshold,
		FetchFailureThreshold: cfg.FetchFailureThreshold,
		Fsync:                 fsync,
		FsyncInterval:         cfg.FsyncInterval,
		Metrics:               storeMetrics{},
	})
	if err != nil {
		return err
	}
	defer st.Close()

	logger.Info("starting wx-storage server",
		logpkg.Str("listen", cfg.ListenAddr),
		logpkg.Str("data_dir", storeDir),
		logpkg.Str("fsync", cfg.Fsync),
		logpkg.Dur("event_threshold", cfg.EventThreshold),
		logpkg.Dur("fetch_failure_threshold", cfg.FetchFailureThreshold),
	)

	var wg sync.WaitGroup
	var msrv *http.Server
	if cfg.MetricsAddr != "" {
		msrv = newMetricsServer(cfg.MetricsAddr)
		logger.Info("metrics listening", logpkg.Str("addr", cfg.MetricsAddr))
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := msrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
				logger.Error("metrics server stopped", logpkg.Err(err))
			}
		}()
	}

	srv := server.New(st, logger)
	done := make(chan error, 1)
	go func() { done <- srv.ListenAndServe(sctx, cfg.ListenAddr) }()

	select {
	case err := <-done:
		// The socket failed before a shutdown was requested.
		shutdownMetrics(msrv, &wg)
		return err
	case <-sctx.Done():
	}

	// Close the socket before the store so in-flight replies drain
	// against a live database.
	srv.Close()
	serveErr := <-done
	shutdownMetrics(msrv, &wg)
	return serveErr
}

func shutdownMetrics(msrv *http.Server, wg *sync.WaitGroup) {
	if msrv != nil {
		shutCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		_ = msrv.Shutdown(shutCtx)
		cancel()
	}
	wg.Wait()
}

// buildLogger falls back to info/text when the configured level or
// format does not parse.
func buildLogger(cfg cfgpkg.Config) logpkg.Logger {
	level := logpkg.InfoLevel
	if l, err := logpkg.ParseLevel(cfg.LogLevel); err == nil {
		level = l
	}
	format := logpkg.FormatText
	if cfg.LogFormat == string(logpkg.FormatJSON) {
		format = logpkg.FormatJSON
	}
	return logpkg.NewLogger(logpkg.WithLevel(level), logpkg.WithFormat(format))
}
