package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrDomain    = "user_domain"
)

// Metrics provides methods for recording observability metrics.
// The zero value and a nil *Metrics are valid no-op recorders.
type Metrics struct {
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	oauthAuthTotal metric.Int64Counter

	workflowRunsTotal metric.Int64Counter
	workflowDuration  metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	m.googleAPIOperationsTotal, err = meter.Int64Counter(
		"google_api_operations_total",
		metric.WithDescription("Total number of Google API operations"),
		metric.WithUnit("{operation}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operations_total counter: %w", err)
	}

	m.googleAPIOperationDuration, err = meter.Float64Histogram(
		"google_api_operation_duration_seconds",
		metric.WithDescription("Google API operation duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.01, 0.05, 0.1, 0.25, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create google_api_operation_duration_seconds histogram: %w", err)
	}

	m.oauthAuthTotal, err = meter.Int64Counter(
		"oauth_auth_total",
		metric.WithDescription("Total number of OAuth authorization attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_auth_total counter: %w", err)
	}

	m.workflowRunsTotal, err = meter.Int64Counter(
		"workflow_runs_total",
		metric.WithDescription("Total number of document workflow runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow_runs_total counter: %w", err)
	}

	// Runs include operator think time, hence the wide buckets.
	m.workflowDuration, err = meter.Float64Histogram(
		"workflow_duration_seconds",
		metric.WithDescription("Document workflow duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(1, 5, 10, 30, 60, 120, 300, 600),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create workflow_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordGoogleAPIOperation records a Google API operation with service,
// operation, status, and duration.
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m == nil || m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthAuth records an authorization attempt.
// Result should be one of: "cached", "success", "failure"
func (m *Metrics) RecordOAuthAuth(ctx context.Context, result string) {
	if m == nil || m.oauthAuthTotal == nil {
		return
	}

	m.oauthAuthTotal.Add(ctx, 1, metric.WithAttributes(attribute.String(attrResult, result)))
}

// RecordWorkflowRun records the outcome of one document workflow run.
// The collaborator's domain is only attached when detailed labels are on.
func (m *Metrics) RecordWorkflowRun(ctx context.Context, result, collaboratorEmail string, duration time.Duration) {
	if m == nil || m.workflowRunsTotal == nil || m.workflowDuration == nil {
		return
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrResult, result),
	}
	if m.detailedLabels && collaboratorEmail != "" {
		attrs = append(attrs, attribute.String(attrDomain, ExtractUserDomain(collaboratorEmail)))
	}

	m.workflowRunsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.workflowDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// TrackGoogleAPI runs fn inside a google.<service>.<operation> span and
// records its duration and status.
func TrackGoogleAPI(ctx context.Context, m *Metrics, service, operation string, fn func(ctx context.Context) error) error {
	ctx, span := StartGoogleAPISpan(ctx, service, operation)
	defer span.End()

	start := time.Now()
	err := fn(ctx)

	status := StatusSuccess
	if err != nil {
		status = StatusError
		SetSpanError(span, err)
	} else {
		SetSpanSuccess(span)
	}
	m.RecordGoogleAPIOperation(ctx, service, operation, status, time.Since(start))

	return err
}
