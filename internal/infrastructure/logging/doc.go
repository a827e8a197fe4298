// Package logging provides structured logging for Hostwarden on top of
// log/slog: level filtering, JSON or text output, and default service
// attributes on every record.
package logging
