// Package log builds the slog loggers used by iso3166gen.
//
// Every logger is wrapped in a RedactingHandler. A Chrome DevTools
// WebSocket URL grants full control of the browser it points to, so the
// session identifier in such URLs is masked wherever it appears: in
// attributes named like control_url, in any string or error value, and in
// the log message itself.
//
// # Usage
//
//	logger := log.NewLogger(os.Stderr, verbose)
//	logger.Debug("connecting to browser", "control_url", u)
//	// control_url=ws://127.0.0.1:9222/devtools/browser/***REDACTED***
package log
