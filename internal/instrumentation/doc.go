// Package instrumentation provides comprehensive OpenTelemetry instrumentation
// for the checkinsync pipeline.
//
// This package enables production-grade observability through:
//   - OpenTelemetry metrics for record ingestion, resolution, and Google API calls
//   - Distributed tracing for pipeline stages and API calls
//   - Prometheus metrics export support
//   - OTLP export support for modern observability platforms
//
// # Metrics
//
// The package exposes the following metric categories:
//
// Ingestion Metrics:
//   - records_ingested_total: Counter of raw records collected by source
//
// Google API Metrics:
//   - google_api_operations_total: Counter of Google API operations by service, operation, status
//   - google_api_operation_duration_seconds: Histogram of Google API operation durations
//
// OAuth Authentication Metrics:
//   - oauth_token_refresh_total: Counter of token refresh attempts by result
//
// Resolution Metrics:
//   - meetings_resolved_total: Counter of meeting instances produced by resolution
//   - records_unresolved_total: Counter of records left unresolved
//   - coverage_gaps_total: Counter of coverage gaps detected
//
// Pipeline Metrics:
//   - pipeline_runs_total: Counter of pipeline runs by status
//   - pipeline_duration_seconds: Histogram of full pipeline run durations
//
// # Tracing
//
// Distributed tracing spans are created for:
//   - Pipeline stages (pipeline.<stage>)
//   - Google API calls (google.<service>.<operation>)
//   - OAuth token operations
//
// # Configuration
//
// Instrumentation can be configured via environment variables:
//   - INSTRUMENTATION_ENABLED: Enable/disable instrumentation (default: true)
//   - METRICS_EXPORTER: Metrics exporter type (prometheus, otlp, stdout, default: prometheus)
//   - TRACING_EXPORTER: Tracing exporter type (otlp, stdout, none, default: none)
//   - OTEL_EXPORTER_OTLP_ENDPOINT: OTLP endpoint for traces/metrics
//   - OTEL_TRACES_SAMPLER_ARG: Sampling rate (0.0 to 1.0, default: 0.1)
//   - OTEL_SERVICE_NAME: Service name (default: checkinsync)
//
// # Example Usage
//
//	// Initialize instrumentation
//	provider, err := instrumentation.NewProvider(ctx, instrumentation.Config{
//		ServiceName:    "checkinsync",
//		ServiceVersion: "0.1.0",
//		Enabled:        true,
//	})
//	if err != nil {
//		return err
//	}
//	defer provider.Shutdown(ctx)
//
//	// Get metrics recorder
//	recorder := provider.Metrics()
//
//	// Record collected records
//	recorder.RecordRecordsIngested(ctx, "calendar", 42)
//
//	// Record a Google API operation
//	recorder.RecordGoogleAPIOperation(ctx, "calendar", "list", "success", time.Since(start))
//
//	// Record a full pipeline run
//	recorder.RecordPipelineRun(ctx, "success", time.Since(start))
package instrumentation
