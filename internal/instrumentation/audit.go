package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"github.com/teemow/oneonone/internal/logging"
)

// Mutation captures one write against a Google service for audit logging:
// a document created, a permission granted, or an orphan deleted.
//
// # Privacy Considerations
//
// Collaborator contains PII. Unless IncludePII is configured, audit lines
// carry only the anonymized hash and the domain.
type Mutation struct {
	Service      string
	Operation    string
	DocumentID   string
	Collaborator string

	StartTime time.Time
	Duration  time.Duration
	Err       error

	TraceID string
}

// NewMutation starts timing a mutation against the given service.
func NewMutation(ctx context.Context, service, operation string) *Mutation {
	return &Mutation{
		Service:   service,
		Operation: operation,
		StartTime: time.Now(),
		TraceID:   GetTraceID(ctx),
	}
}

// Complete stops the timer and records the outcome.
func (m *Mutation) Complete(err error) *Mutation {
	m.Duration = time.Since(m.StartTime)
	m.Err = err
	return m
}

// Status returns "success" or "error".
func (m *Mutation) Status() string {
	if m.Err == nil {
		return StatusSuccess
	}
	return StatusError
}

func (m *Mutation) attrs(includePII bool) []any {
	args := []any{
		slog.String("service", m.Service),
		slog.String("operation", m.Operation),
		slog.String("status", m.Status()),
		slog.Duration("duration", m.Duration),
	}
	if m.DocumentID != "" {
		args = append(args, slog.String(logging.KeyDocument, m.DocumentID))
	}
	if m.Collaborator != "" {
		if includePII {
			args = append(args, slog.String("collaborator", m.Collaborator))
		} else {
			args = append(args,
				logging.UserHash(m.Collaborator),
				slog.String("user_domain", ExtractUserDomain(m.Collaborator)),
			)
		}
	}
	if m.TraceID != "" {
		args = append(args, slog.String("trace_id", m.TraceID))
	}
	if m.Err != nil {
		args = append(args, slog.String("error", m.Err.Error()))
	}
	return args
}

// AuditLogger writes one structured line per mutation.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates an AuditLogger from the given configuration.
// A nil *AuditLogger is a valid no-op logger.
func NewAuditLogger(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// LogMutation logs a completed mutation. Failures log at warn level.
func (al *AuditLogger) LogMutation(m *Mutation) {
	if al == nil || !al.enabled || m == nil {
		return
	}

	args := m.attrs(al.includePII)
	if m.Err == nil {
		al.logger.Info("google_mutation", args...)
	} else {
		al.logger.Warn("google_mutation_failed", args...)
	}
}
