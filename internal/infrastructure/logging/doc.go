// Package logging provides structured logging for WardCall Core.
//
// It wraps log/slog with service-wide default fields and optional
// size-based file rotation.
package logging
