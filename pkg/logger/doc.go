// Package logger provides a thin factory around Go's slog package with
// functional options for format, level, output and default attributes.
//
// The package standardises structured logging across the library by exposing
// a single factory - New - that creates a *slog.Logger configured by a set of
// Option functions. Components accept a *slog.Logger through their own
// options and fall back to a discard logger when none is supplied, so logging
// is always optional for the host application.
//
// # Usage
//
//	log := logger.New(
//	    logger.WithTextFormatter(),
//	    logger.WithLevel(slog.LevelDebug),
//	    logger.WithAttr(slog.String("app", "shell")),
//	)
//	log.Info("configuration resolved", "auth_mode", cfg.AuthMode)
package logger
