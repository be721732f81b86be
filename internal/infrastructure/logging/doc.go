// Package logging provides structured logging for USB Gatekeeper on top of
// log/slog.
//
// Output format, level, and destination come from the logging section of the
// application config. Because the binary's stdout belongs to the caller
// (exit codes and `list` output are the interface), logs default to stderr.
package logging
