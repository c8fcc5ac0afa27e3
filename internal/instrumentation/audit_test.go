package instrumentation

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"strings"
	"testing"
)

func newTestAuditLogger(config AuditLoggingConfig) (*AuditLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	return NewAuditLogger(logger, config), &buf
}

func TestAuditLogger_LogMutation_Anonymized(t *testing.T) {
	al, buf := newTestAuditLogger(AuditLoggingConfig{Enabled: true})

	m := NewMutation(context.Background(), ServiceDrive, OperationShare)
	m.DocumentID = "doc-123"
	m.Collaborator = "jane.doe@example.com"
	al.LogMutation(m.Complete(nil))

	out := buf.String()
	if !strings.Contains(out, "msg=google_mutation") {
		t.Errorf("expected google_mutation message, got %q", out)
	}
	if strings.Contains(out, "jane.doe@example.com") {
		t.Error("expected collaborator email to be anonymized")
	}
	for _, want := range []string{"user_hash=user:", "user_domain=example.com", "document_id=doc-123", "status=success"} {
		if !strings.Contains(out, want) {
			t.Errorf("expected %q in %q", want, out)
		}
	}
}

func TestAuditLogger_LogMutation_IncludePII(t *testing.T) {
	al, buf := newTestAuditLogger(AuditLoggingConfig{Enabled: true, IncludePII: true})

	m := NewMutation(context.Background(), ServiceDrive, OperationShare)
	m.Collaborator = "jane.doe@example.com"
	al.LogMutation(m.Complete(nil))

	if !strings.Contains(buf.String(), "collaborator=jane.doe@example.com") {
		t.Errorf("expected full collaborator email, got %q", buf.String())
	}
}

func TestAuditLogger_LogMutation_Failure(t *testing.T) {
	al, buf := newTestAuditLogger(AuditLoggingConfig{Enabled: true})

	m := NewMutation(context.Background(), ServiceDocs, OperationCreate)
	al.LogMutation(m.Complete(errors.New("quota exceeded")))

	out := buf.String()
	if !strings.Contains(out, "level=WARN") {
		t.Errorf("expected warn level, got %q", out)
	}
	if !strings.Contains(out, "google_mutation_failed") {
		t.Errorf("expected failure message, got %q", out)
	}
	if !strings.Contains(out, "quota exceeded") {
		t.Errorf("expected error text, got %q", out)
	}
}

func TestAuditLogger_Disabled(t *testing.T) {
	al, buf := newTestAuditLogger(AuditLoggingConfig{Enabled: false})
	al.LogMutation(NewMutation(context.Background(), ServiceDocs, OperationCreate).Complete(nil))

	if buf.Len() != 0 {
		t.Errorf("expected no output, got %q", buf.String())
	}

	var nilLogger *AuditLogger
	nilLogger.LogMutation(NewMutation(context.Background(), ServiceDocs, OperationCreate))
}

func TestMutation_Status(t *testing.T) {
	m := NewMutation(context.Background(), ServiceDocs, OperationCreate)
	if m.Complete(nil).Status() != StatusSuccess {
		t.Error("expected success status")
	}
	if m.Complete(errors.New("x")).Status() != StatusError {
		t.Error("expected error status")
	}
}
