// Package logging declares the structured logger the rest of the code logs
// through. Callers never depend on a concrete logging backend; they hold a
// Logger and pass alternating key/value attributes.
package logging

import "context"

// Logger is the logging surface used by services, repositories and handlers.
// Attributes are passed as alternating keys and values:
//
//	log.Warn(ctx, "refresh rejected", "account_id", id, "reason", err)
type Logger interface {
	// Debug logs fine-grained diagnostics, usually disabled in production.
	Debug(ctx context.Context, msg string, args ...any)

	// Info logs normal operational events.
	Info(ctx context.Context, msg string, args ...any)

	// Warn logs recoverable or expected failures worth noticing.
	Warn(ctx context.Context, msg string, args ...any)

	// Error logs failures that need attention.
	Error(ctx context.Context, msg string, args ...any)

	// With returns a derived logger carrying the given attributes on every record.
	With(args ...any) Logger
}
