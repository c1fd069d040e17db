package instrumentation

import (
	"context"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"
)

// SourceScan captures all information about a source scan for audit logging.
// This provides an audit trail for every pass over a record source
// (calendar, cloud listing, local files, spreadsheet).
//
// # Privacy Considerations
//
// The UserEmail field contains PII. When logging, consider:
//   - Using UserDomain() to get only the domain for metrics/general logs
//   - Only logging full email in audit-specific log streams
//   - Ensuring audit logs have appropriate access controls
type SourceScan struct {
	// Source name (calendar, cloud-listing, local-file, spreadsheet)
	Source string

	// User identity (from OAuth)
	UserEmail string

	// Target information for Google-backed sources
	Account     string // Account name (default, work, personal)
	ServiceName string // Google service (calendar, drive)
	Operation   string // Operation type (list, get, search, download)

	// Execution details
	StartTime time.Time
	Duration  time.Duration
	Records   int
	Success   bool
	Error     string

	// Tracing context
	TraceID string
	SpanID  string
}

// UserDomain returns the domain portion of the user's email for lower-cardinality logging.
func (ss *SourceScan) UserDomain() string {
	return ExtractUserDomain(ss.UserEmail)
}

// Status returns "success" or "error" based on the Success field.
func (ss *SourceScan) Status() string {
	if ss.Success {
		return StatusSuccess
	}
	return StatusError
}

// LogAttrs returns slog attributes for structured logging.
// This provides a consistent set of fields for all source scan logs.
//
// # Cardinality
//
// This function uses cardinality-controlled values (user_domain)
// for metrics-compatible logging. For full audit logging, use LogAuditAttrs.
func (ss *SourceScan) LogAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("source", ss.Source),
		slog.String("user_domain", ss.UserDomain()),
		slog.Duration("duration", ss.Duration),
		slog.Int("records", ss.Records),
		slog.Bool("success", ss.Success),
	}

	// Add optional fields only if present
	if ss.Account != "" && ss.Account != "default" {
		attrs = append(attrs, slog.String("account", ss.Account))
	}
	if ss.ServiceName != "" {
		attrs = append(attrs, slog.String("service", ss.ServiceName))
	}
	if ss.Operation != "" {
		attrs = append(attrs, slog.String("operation", ss.Operation))
	}
	if ss.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ss.TraceID))
	}
	if ss.Error != "" {
		attrs = append(attrs, slog.String("error", ss.Error))
	}

	return attrs
}

// LogAuditAttrs returns slog attributes for full audit logging.
// This includes the full user email for compliance/audit purposes.
//
// # Security Warning
//
// This method includes PII (full email). Ensure audit logs are:
//   - Stored securely with appropriate access controls
//   - Not exposed to general monitoring dashboards
//   - Retained according to compliance requirements
func (ss *SourceScan) LogAuditAttrs() []slog.Attr {
	attrs := []slog.Attr{
		slog.String("source", ss.Source),
		slog.String("user", ss.UserEmail),
		slog.Duration("duration", ss.Duration),
		slog.Int("records", ss.Records),
		slog.Bool("success", ss.Success),
	}

	// Add all optional fields
	if ss.Account != "" {
		attrs = append(attrs, slog.String("account", ss.Account))
	}
	if ss.ServiceName != "" {
		attrs = append(attrs, slog.String("service", ss.ServiceName))
	}
	if ss.Operation != "" {
		attrs = append(attrs, slog.String("operation", ss.Operation))
	}
	if ss.TraceID != "" {
		attrs = append(attrs, slog.String("trace_id", ss.TraceID))
	}
	if ss.SpanID != "" {
		attrs = append(attrs, slog.String("span_id", ss.SpanID))
	}
	if ss.Error != "" {
		attrs = append(attrs, slog.String("error", ss.Error))
	}

	return attrs
}

// NewSourceScan creates a new SourceScan with timing started.
// Call Complete() when the scan finishes.
func NewSourceScan(source string) *SourceScan {
	return &SourceScan{
		Source:    source,
		StartTime: time.Now(),
	}
}

// WithUser sets the user identity information.
func (ss *SourceScan) WithUser(email string) *SourceScan {
	ss.UserEmail = email
	return ss
}

// WithAccount sets the Google account name.
func (ss *SourceScan) WithAccount(account string) *SourceScan {
	ss.Account = account
	return ss
}

// WithService sets the Google service and operation.
func (ss *SourceScan) WithService(serviceName, operation string) *SourceScan {
	ss.ServiceName = serviceName
	ss.Operation = operation
	return ss
}

// WithRecords sets the number of records collected by the scan.
func (ss *SourceScan) WithRecords(n int) *SourceScan {
	ss.Records = n
	return ss
}

// WithSpanContext extracts trace context from the current span.
func (ss *SourceScan) WithSpanContext(ctx context.Context) *SourceScan {
	span := trace.SpanFromContext(ctx)
	if span.SpanContext().IsValid() {
		ss.TraceID = span.SpanContext().TraceID().String()
		ss.SpanID = span.SpanContext().SpanID().String()
	}
	return ss
}

// Complete marks the scan as completed and calculates duration.
// Returns the same SourceScan for method chaining.
func (ss *SourceScan) Complete(success bool, err error) *SourceScan {
	ss.Duration = time.Since(ss.StartTime)
	ss.Success = success
	if err != nil {
		ss.Error = err.Error()
	}
	return ss
}

// CompleteWithError marks the scan as failed with the given error.
func (ss *SourceScan) CompleteWithError(err error) *SourceScan {
	return ss.Complete(false, err)
}

// CompleteSuccess marks the scan as successful.
func (ss *SourceScan) CompleteSuccess() *SourceScan {
	return ss.Complete(true, nil)
}

// AuditLogger provides structured audit logging for source scans.
// It wraps slog.Logger with convenience methods for logging scan operations.
type AuditLogger struct {
	logger     *slog.Logger
	includePII bool
	enabled    bool
}

// NewAuditLogger creates a new AuditLogger with the given slog.Logger.
// By default, PII is not included in logs (anonymized identifiers are used instead).
func NewAuditLogger(logger *slog.Logger) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: false,
		enabled:    true,
	}
}

// NewAuditLoggerWithConfig creates a new AuditLogger with the given configuration.
func NewAuditLoggerWithConfig(logger *slog.Logger, config AuditLoggingConfig) *AuditLogger {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuditLogger{
		logger:     logger,
		includePII: config.IncludePII,
		enabled:    config.Enabled,
	}
}

// SetIncludePII sets whether to include full email addresses in audit logs.
func (al *AuditLogger) SetIncludePII(include bool) {
	al.includePII = include
}

// SetEnabled sets whether audit logging is enabled.
func (al *AuditLogger) SetEnabled(enabled bool) {
	al.enabled = enabled
}

// LogSourceScan logs a source scan using the standard log attributes.
// This is suitable for general operational logging with cardinality controls.
// If the logger is configured with IncludePII, full user emails are logged;
// otherwise, only domain-based anonymized identifiers are used.
func (al *AuditLogger) LogSourceScan(ss *SourceScan) {
	if !al.enabled {
		return
	}

	// Choose between PII and anonymized logging based on configuration
	var attrs []slog.Attr
	if al.includePII {
		attrs = ss.LogAuditAttrs()
	} else {
		attrs = ss.LogAttrs()
	}

	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	if ss.Success {
		al.logger.Info("source_scanned", args...)
	} else {
		al.logger.Warn("source_scan_failed", args...)
	}
}

// LogScanAudit logs a source scan with full audit details.
// This includes PII (full email addresses) for compliance/audit purposes.
// SECURITY: Ensure audit logs are routed to secure storage with appropriate access controls.
//
// Note: This method respects the enabled flag but always includes PII when called,
// regardless of the IncludePII configuration. Use LogSourceScan for
// configuration-aware logging.
func (al *AuditLogger) LogScanAudit(ss *SourceScan) {
	if !al.enabled {
		return
	}

	attrs := ss.LogAuditAttrs()
	args := make([]any, len(attrs))
	for i, attr := range attrs {
		args[i] = attr
	}

	al.logger.Info("scan_audit", args...)
}
