package instrumentation

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// Metric attribute keys - using constants for consistency
const (
	attrStatus    = "status"
	attrOperation = "operation"
	attrService   = "service"
	attrResult    = "result"
	attrSource    = "source"
	attrAccount   = "account"
)

// Metrics provides methods for recording observability metrics.
type Metrics struct {
	// Ingestion metrics
	recordsIngestedTotal metric.Int64Counter

	// Google API metrics
	googleAPIOperationsTotal   metric.Int64Counter
	googleAPIOperationDuration metric.Float64Histogram

	// OAuth metrics
	oauthTokenRefreshTotal metric.Int64Counter

	// Resolution metrics
	meetingsResolvedTotal  metric.Int64Counter
	recordsUnresolvedTotal metric.Int64Counter
	coverageGapsTotal      metric.Int64Counter

	// Pipeline metrics
	pipelineRunsTotal metric.Int64Counter
	pipelineDuration  metric.Float64Histogram

	// detailedLabels controls whether high-cardinality labels are included
	detailedLabels bool
}

// NewMetrics creates a new Metrics instance with all metrics initialized.
// The detailedLabels parameter controls whether high-cardinality labels are included.
func NewMetrics(meter metric.Meter, detailedLabels bool) (*Metrics, error) {
	m := &Metrics{
		detailedLabels: detailedLabels,
	}

	var err error

	// Ingestion Metrics
	m.recordsIngestedTotal, err = meter.Int64Counter(
		"records_ingested_total",
		metric.WithDescription("Total number of raw records ingested, by source"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create records_ingested_total counter: %w", err)
	}

	// Google API Metrics
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

	// OAuth Metrics
	m.oauthTokenRefreshTotal, err = meter.Int64Counter(
		"oauth_token_refresh_total",
		metric.WithDescription("Total number of OAuth token refresh attempts"),
		metric.WithUnit("{attempt}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create oauth_token_refresh_total counter: %w", err)
	}

	// Resolution Metrics
	m.meetingsResolvedTotal, err = meter.Int64Counter(
		"meetings_resolved_total",
		metric.WithDescription("Total number of meeting instances resolved"),
		metric.WithUnit("{meeting}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create meetings_resolved_total counter: %w", err)
	}

	m.recordsUnresolvedTotal, err = meter.Int64Counter(
		"records_unresolved_total",
		metric.WithDescription("Total number of records that could not be resolved to a meeting"),
		metric.WithUnit("{record}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create records_unresolved_total counter: %w", err)
	}

	m.coverageGapsTotal, err = meter.Int64Counter(
		"coverage_gaps_total",
		metric.WithDescription("Total number of coverage gaps found"),
		metric.WithUnit("{gap}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create coverage_gaps_total counter: %w", err)
	}

	// Pipeline Metrics
	m.pipelineRunsTotal, err = meter.Int64Counter(
		"pipeline_runs_total",
		metric.WithDescription("Total number of pipeline runs"),
		metric.WithUnit("{run}"),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_runs_total counter: %w", err)
	}

	m.pipelineDuration, err = meter.Float64Histogram(
		"pipeline_duration_seconds",
		metric.WithDescription("Full pipeline run duration in seconds"),
		metric.WithUnit("s"),
		metric.WithExplicitBucketBoundaries(0.1, 0.5, 1.0, 2.5, 5.0, 10.0, 30.0, 60.0, 120.0),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create pipeline_duration_seconds histogram: %w", err)
	}

	return m, nil
}

// RecordRecordsIngested records raw records arriving from one source.
//
// Parameters:
//   - source: adapter source name (calendar, cloud-listing, local-file, spreadsheet)
//   - n: number of records ingested
func (m *Metrics) RecordRecordsIngested(ctx context.Context, source string, n int) {
	if m.recordsIngestedTotal == nil {
		return // Instrumentation not initialized
	}

	m.recordsIngestedTotal.Add(ctx, int64(n), metric.WithAttributes(
		attribute.String(attrSource, source),
	))
}

// RecordGoogleAPIOperation records a Google API operation with service, operation,
// status, and duration.
//
// Parameters:
//   - service: Google service name (calendar, drive)
//   - operation: Operation type (list, get, download, search)
//   - status: Result status ("success" or "error")
//   - duration: Time taken for the operation
func (m *Metrics) RecordGoogleAPIOperation(ctx context.Context, service, operation, status string, duration time.Duration) {
	if m.googleAPIOperationsTotal == nil || m.googleAPIOperationDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrService, service),
		attribute.String(attrOperation, operation),
		attribute.String(attrStatus, status),
	}

	m.googleAPIOperationsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.googleAPIOperationDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordOAuthTokenRefresh records an OAuth token refresh attempt with result.
// Result should be one of: "success", "failure", "expired"
func (m *Metrics) RecordOAuthTokenRefresh(ctx context.Context, result string) {
	if m.oauthTokenRefreshTotal == nil {
		return // Instrumentation not initialized
	}

	m.oauthTokenRefreshTotal.Add(ctx, 1, metric.WithAttributes(
		attribute.String(attrResult, result),
	))
}

// RecordResolution records the outcome of one entity-resolution pass.
func (m *Metrics) RecordResolution(ctx context.Context, instances, unresolved int) {
	if m.meetingsResolvedTotal == nil || m.recordsUnresolvedTotal == nil {
		return // Instrumentation not initialized
	}

	m.meetingsResolvedTotal.Add(ctx, int64(instances))
	m.recordsUnresolvedTotal.Add(ctx, int64(unresolved))
}

// RecordGaps records the number of coverage gaps one analysis found.
func (m *Metrics) RecordGaps(ctx context.Context, n int) {
	if m.coverageGapsTotal == nil {
		return // Instrumentation not initialized
	}

	m.coverageGapsTotal.Add(ctx, int64(n))
}

// RecordPipelineRun records a full pipeline run with status and duration.
func (m *Metrics) RecordPipelineRun(ctx context.Context, status string, duration time.Duration) {
	if m.pipelineRunsTotal == nil || m.pipelineDuration == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrStatus, status),
	}

	m.pipelineRunsTotal.Add(ctx, 1, metric.WithAttributes(attrs...))
	m.pipelineDuration.Record(ctx, duration.Seconds(), metric.WithAttributes(attrs...))
}

// RecordRecordsIngestedWithAccount records ingestion with account info.
// The account label is only added when detailedLabels is enabled.
func (m *Metrics) RecordRecordsIngestedWithAccount(ctx context.Context, source, account string, n int) {
	if m.recordsIngestedTotal == nil {
		return // Instrumentation not initialized
	}

	attrs := []attribute.KeyValue{
		attribute.String(attrSource, source),
	}

	// Only add high-cardinality labels if explicitly enabled
	if m.detailedLabels && account != "" {
		attrs = append(attrs, attribute.String(attrAccount, account))
	}

	m.recordsIngestedTotal.Add(ctx, int64(n), metric.WithAttributes(attrs...))
}
