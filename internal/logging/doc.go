// Package logging provides structured logging utilities for todopush.
//
// It centralizes logging patterns to ensure consistent, structured logging
// throughout the codebase using the standard library's slog package.
//
// Security considerations:
//   - User emails are hashed to prevent PII leakage while allowing correlation
//   - Tokens and todo titles are never logged directly
package logging
