// Package logging provides structured logging utilities for oneonone.
//
// Diagnostic logs go through log/slog to stderr and stay separate from the
// operator-facing output printed by the commands. Collaborator addresses are
// personal data: log them with UserHash or Domain, never in clear.
//
// # Usage Patterns
//
//	logger := logging.WithOperation(slog.Default(), "docs.create")
//	logger.Debug("document created",
//	    logging.Status(logging.StatusSuccess),
//	    logging.UserHash(email))
package logging
