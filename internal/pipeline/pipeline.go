package pipeline

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ourassistants/checkinsync/internal/calendar"
	"github.com/ourassistants/checkinsync/internal/config"
	"github.com/ourassistants/checkinsync/internal/drive"
	"github.com/ourassistants/checkinsync/internal/engine"
	"github.com/ourassistants/checkinsync/internal/instrumentation"
	"github.com/ourassistants/checkinsync/internal/localscan"
	"github.com/ourassistants/checkinsync/internal/logging"
	"github.com/ourassistants/checkinsync/internal/report"
	"github.com/ourassistants/checkinsync/internal/seen"
	"github.com/ourassistants/checkinsync/internal/sheet"
)

// Pipeline runs the full scan: collect records from every enabled
// source, resolve them into meeting instances, analyze coverage gaps,
// and hand the result to the reporting layer.
type Pipeline struct {
	cfg     config.Config
	logger  *slog.Logger
	metrics *instrumentation.Metrics
	audit   *instrumentation.AuditLogger
	seen    *seen.Store
}

// Options carries the pipeline's optional collaborators. Zero values are
// fine: logging falls back to slog.Default, metrics and audit become
// no-ops, and without a seen store every local file is collected.
type Options struct {
	Logger  *slog.Logger
	Metrics *instrumentation.Metrics
	Audit   *instrumentation.AuditLogger
	Seen    *seen.Store
}

// New builds a pipeline from the application configuration.
func New(cfg config.Config, opts Options) *Pipeline {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	metrics := opts.Metrics
	if metrics == nil {
		metrics = &instrumentation.Metrics{}
	}
	return &Pipeline{
		cfg:     cfg,
		logger:  logging.WithOperation(logger, "scan"),
		metrics: metrics,
		audit:   opts.Audit,
		seen:    opts.Seen,
	}
}

// Result is the outcome of one pipeline run.
type Result struct {
	Report     *report.Report
	ReportPath string
	Records    int
	Instances  int
	Unresolved int
	Gaps       int
}

// Run executes the pipeline over the [timeMin, timeMax) window. When
// dryRun is set, nothing is written: no report file, no seen-store
// marks. A failing source aborts the whole run rather than silently
// understating coverage.
func (p *Pipeline) Run(ctx context.Context, timeMin, timeMax time.Time, dryRun bool) (*Result, error) {
	start := time.Now()
	ctx, span := instrumentation.StartStageSpan(ctx, "run")
	defer span.End()

	res, err := p.run(ctx, timeMin, timeMax, dryRun)
	if err != nil {
		p.metrics.RecordPipelineRun(ctx, instrumentation.StatusError, time.Since(start))
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	p.metrics.RecordPipelineRun(ctx, instrumentation.StatusSuccess, time.Since(start))
	instrumentation.SetSpanSuccess(span)
	return res, nil
}

func (p *Pipeline) run(ctx context.Context, timeMin, timeMax time.Time, dryRun bool) (*Result, error) {
	records, err := p.collect(ctx, timeMin, timeMax)
	if err != nil {
		return nil, err
	}
	p.logger.Info("collection complete", logging.Records(len(records)))

	ec, err := p.cfg.EngineConfig()
	if err != nil {
		return nil, err
	}
	eng, err := engine.New(ec)
	if err != nil {
		return nil, err
	}

	_, resolveSpan := instrumentation.StartStageSpan(ctx, "resolve",
		instrumentation.NewSpanAttributeBuilder().WithRecords(len(records)).Build()...)
	resolution, err := eng.Resolve(records)
	if err != nil {
		instrumentation.SetSpanError(resolveSpan, err)
		resolveSpan.End()
		return nil, fmt.Errorf("failed to resolve records: %w", err)
	}
	instrumentation.SetSpanSuccess(resolveSpan)
	resolveSpan.End()

	p.metrics.RecordResolution(ctx, len(resolution.Instances), len(resolution.Unresolved))
	p.logger.Info("resolution complete",
		slog.Int("instances", len(resolution.Instances)),
		slog.Int("unresolved", len(resolution.Unresolved)))

	generated := time.Now().UTC()
	gaps := eng.Analyze(resolution, engine.DateOf(generated))
	p.metrics.RecordGaps(ctx, len(gaps.Entries))
	p.logger.Info("gap analysis complete", logging.Gaps(len(gaps.Entries)))

	period := report.Period{
		Start: timeMin.UTC().Format("2006-01-02"),
		End:   timeMax.UTC().Format("2006-01-02"),
	}
	rep := report.Build(resolution, gaps, period, generated)

	result := &Result{
		Report:     rep,
		Records:    len(records),
		Instances:  len(resolution.Instances),
		Unresolved: len(resolution.Unresolved),
		Gaps:       len(gaps.Entries),
	}

	if dryRun {
		return result, nil
	}

	path, err := report.SaveJSON(rep, p.cfg.Storage.OutputDir)
	if err != nil {
		return nil, err
	}
	result.ReportPath = path
	p.logger.Info("report written", slog.String("path", path))

	if p.seen != nil {
		if err := p.seen.Mark(ctx, localRecordIDs(records)...); err != nil {
			return nil, fmt.Errorf("failed to mark seen records: %w", err)
		}
	}

	return result, nil
}

// collect fans out to the enabled sources and joins before resolution.
// Slots keep each source's records in a fixed position so the combined
// order never depends on goroutine scheduling.
func (p *Pipeline) collect(ctx context.Context, timeMin, timeMax time.Time) ([]engine.RawRecord, error) {
	ctx, span := instrumentation.StartStageSpan(ctx, "collect")
	defer span.End()

	var slots [4][]engine.RawRecord
	g, ctx := errgroup.WithContext(ctx)

	if p.cfg.Sources.Calendar.Enabled {
		g.Go(func() error {
			recs, err := p.collectCalendar(ctx, timeMin, timeMax)
			if err != nil {
				return err
			}
			slots[0] = recs
			return nil
		})
	}
	if p.cfg.Sources.Drive.Enabled {
		g.Go(func() error {
			recs, err := p.collectDrive(ctx)
			if err != nil {
				return err
			}
			slots[1] = recs
			return nil
		})
	}
	if p.cfg.Sources.Local.Enabled {
		g.Go(func() error {
			recs, err := p.collectLocal(ctx)
			if err != nil {
				return err
			}
			slots[2] = recs
			return nil
		})
	}
	if p.cfg.Sources.Sheet.Enabled {
		g.Go(func() error {
			recs, err := p.collectSheet(ctx)
			if err != nil {
				return err
			}
			slots[3] = recs
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		instrumentation.SetSpanError(span, err)
		return nil, err
	}

	var records []engine.RawRecord
	for _, slot := range slots {
		records = append(records, slot...)
	}
	instrumentation.SetSpanSuccess(span)
	return records, nil
}

func (p *Pipeline) collectCalendar(ctx context.Context, timeMin, timeMax time.Time) ([]engine.RawRecord, error) {
	scan := instrumentation.NewSourceScan(engine.SourceCalendar.String()).
		WithAccount(p.cfg.Account).
		WithService(instrumentation.ServiceCalendar, instrumentation.OperationList).
		WithSpanContext(ctx)

	client, err := calendar.NewClientForAccount(ctx, p.cfg.Account)
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, fmt.Errorf("failed to create calendar client: %w", err)
	}

	filter := calendar.ScanFilter{
		Keywords: p.cfg.People.Keywords,
		People:   p.cfg.People.HRNames,
	}
	recs, err := client.CollectRecords(p.cfg.Sources.Calendar.CalendarID, timeMin, timeMax, filter)
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, err
	}

	p.logAudit(scan.WithRecords(len(recs)).CompleteSuccess())
	p.metrics.RecordRecordsIngestedWithAccount(ctx, scan.Source, p.cfg.Account, len(recs))
	p.logger.Info("source collected", logging.Source(scan.Source), logging.Records(len(recs)))
	return recs, nil
}

func (p *Pipeline) collectDrive(ctx context.Context) ([]engine.RawRecord, error) {
	scan := instrumentation.NewSourceScan(engine.SourceCloudListing.String()).
		WithAccount(p.cfg.Account).
		WithService(instrumentation.ServiceDrive, instrumentation.OperationList).
		WithSpanContext(ctx)

	client, err := drive.NewClientForAccount(ctx, p.cfg.Account)
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, fmt.Errorf("failed to create drive client: %w", err)
	}

	recs, err := client.CollectRecords(ctx, p.cfg.Sources.Drive.FolderID)
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, err
	}

	p.logAudit(scan.WithRecords(len(recs)).CompleteSuccess())
	p.metrics.RecordRecordsIngestedWithAccount(ctx, scan.Source, p.cfg.Account, len(recs))
	p.logger.Info("source collected", logging.Source(scan.Source), logging.Records(len(recs)))
	return recs, nil
}

func (p *Pipeline) collectLocal(ctx context.Context) ([]engine.RawRecord, error) {
	scan := instrumentation.NewSourceScan(engine.SourceLocalFile.String()).WithSpanContext(ctx)

	scanner := localscan.New(p.cfg.Sources.Local.RecordingsDir, p.cfg.Sources.Local.TranscriptsDir)
	var seenSet localscan.SeenSet
	if p.seen != nil {
		seenSet = p.seen
	}
	recs, err := scanner.CollectRecords(seenSet)
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, err
	}

	p.logAudit(scan.WithRecords(len(recs)).CompleteSuccess())
	p.metrics.RecordRecordsIngested(ctx, scan.Source, len(recs))
	p.logger.Info("source collected", logging.Source(scan.Source), logging.Records(len(recs)))
	return recs, nil
}

func (p *Pipeline) collectSheet(ctx context.Context) ([]engine.RawRecord, error) {
	scan := instrumentation.NewSourceScan(engine.SourceSpreadsheet.String()).WithSpanContext(ctx)

	reader := sheet.New(p.cfg.Sources.Sheet.Path, p.logger)
	recs, err := reader.CollectRecords()
	if err != nil {
		p.logAudit(scan.CompleteWithError(err))
		return nil, err
	}

	p.logAudit(scan.WithRecords(len(recs)).CompleteSuccess())
	p.metrics.RecordRecordsIngested(ctx, scan.Source, len(recs))
	p.logger.Info("source collected", logging.Source(scan.Source), logging.Records(len(recs)))
	return recs, nil
}

func (p *Pipeline) logAudit(scan *instrumentation.SourceScan) {
	if p.audit != nil {
		p.audit.LogSourceScan(scan)
	}
}

// localRecordIDs extracts the identifiers the seen store tracks. Only
// local files are marked: the remote sources re-list on every run by
// design.
func localRecordIDs(records []engine.RawRecord) []string {
	var ids []string
	for _, rec := range records {
		if rec.Source == engine.SourceLocalFile {
			ids = append(ids, rec.ID)
		}
	}
	return ids
}
