// Package instrumentation provides OpenTelemetry instrumentation for oneonone.
//
// A single run of the tool is a short-lived batch job, so instrumentation is
// disabled unless INSTRUMENTATION_ENABLED=true. When enabled it records:
//   - Metrics for every Google API call, authorization and workflow run
//   - Trace spans around the workflow and each remote call
//   - Audit log entries for every remote mutation
//
// # Metrics
//
//   - google_api_operations_total: Counter by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API call durations
//   - oauth_auth_total: Counter of authorizations by result (cached, success, failure)
//   - workflow_runs_total: Counter of runs by result (created, cancelled, failed)
//   - workflow_duration_seconds: Histogram of run durations
//
// # Configuration
//
// Instrumentation is configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: false)
//   - METRICS_EXPORTER: none, stdout, otlp or prometheus (default: none)
//   - TRACING_EXPORTER: none, stdout or otlp (default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 1.0)
//   - PROMETHEUS_PUSHGATEWAY_URL: Pushgateway receiving metrics at shutdown
//
// The prometheus exporter gathers into a private registry which is pushed to
// the Pushgateway when the provider shuts down, the usual pattern for batch
// jobs that do not live long enough to be scraped.
//
// # Example Usage
//
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.DefaultConfig())
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	err = instrumentation.TrackGoogleAPI(ctx, provider.Metrics(), ServiceDocs, OperationCreate,
//		func(ctx context.Context) error { ... })
package instrumentation
