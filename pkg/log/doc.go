// Package log provides wx-storage's structured logging facade.
//
// # Overview
//
// The package exposes a small Logger interface with leveled methods and a
// simple Field type for structured context. Internally it is backed by the
// standard library slog with text or JSON handlers, so output stays
// consistent across the codebase while the facade keeps call sites terse.
//
// Quick start
//
//	l := log.NewLogger(
//	    log.WithLevel(log.InfoLevel),
//	    log.WithFormat(log.FormatText),
//	)
//	l = l.With(log.Component("listener"), log.Str("endpoint", addr))
//	l.Info("listening", log.Int("port", 31337))
//
// # Interop
//
// RedirectStdLog routes standard library log output (used by the storage
// engine) through a Logger so every line shares one format.
package log
