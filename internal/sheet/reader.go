package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/ourassistants/checkinsync/internal/engine"
	"github.com/ourassistants/checkinsync/internal/logging"
)

// Reader ingests a CSV export of the check-in tracking spreadsheet.
// Rows that carry a non-empty summary represent completed analysis work
// and become analysis-row records.
type Reader struct {
	path   string
	logger *slog.Logger
}

// New creates a reader for the given CSV file
func New(path string, logger *slog.Logger) *Reader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Reader{
		path:   path,
		logger: logging.WithSource(logger, "sheet"),
	}
}

// Column headers recognized in the export, matched case-insensitively.
const (
	colSubject = "subject"
	colDate    = "date"
	colVA      = "va name"
	colHR      = "hr person"
	colSummary = "summary"
)

var dateLayouts = []string{
	"2006-01-02",
	"2006/01/02",
	"01/02/2006",
	"Jan 2, 2006",
}

// CollectRecords reads the CSV file and maps analyzed rows to raw meeting
// records. Malformed rows are logged and skipped, never fatal.
func (r *Reader) CollectRecords() ([]engine.RawRecord, error) {
	f, err := os.Open(r.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open spreadsheet export: %w", err)
	}
	defer f.Close()

	return r.collect(f)
}

func (r *Reader) collect(src io.Reader) ([]engine.RawRecord, error) {
	cr := csv.NewReader(src)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read spreadsheet header: %w", err)
	}

	cols := headerIndex(header)
	if _, ok := cols[colSubject]; !ok {
		return nil, fmt.Errorf("spreadsheet export has no %q column", colSubject)
	}

	var records []engine.RawRecord
	line := 1
	for {
		line++
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			r.logger.Warn("skipping malformed row",
				slog.Int("line", line),
				logging.Err(err))
			continue
		}

		rec, ok := r.rowRecord(cols, row, line)
		if ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func (r *Reader) rowRecord(cols map[string]int, row []string, line int) (engine.RawRecord, bool) {
	summary := field(cols, row, colSummary)
	if summary == "" {
		// Not yet analyzed; nothing to reconcile.
		return engine.RawRecord{}, false
	}

	subject := field(cols, row, colSubject)
	if subject == "" {
		hr := field(cols, row, colHR)
		va := field(cols, row, colVA)
		if hr == "" || va == "" {
			r.logger.Warn("skipping row without subject",
				slog.Int("line", line))
			return engine.RawRecord{}, false
		}
		subject = hr + " x " + va
	}

	rec := engine.RawRecord{
		ID:           fmt.Sprintf("sheet:%d", line),
		Source:       engine.SourceSpreadsheet,
		ArtifactKind: engine.ArtifactAnalysisRow,
		RawText:      subject,
	}

	if raw := field(cols, row, colDate); raw != "" {
		d, ok := parseDate(raw)
		if !ok {
			r.logger.Warn("skipping row with unparsable date",
				slog.Int("line", line),
				slog.String("date", raw))
			return engine.RawRecord{}, false
		}
		rec.ObservedDate = d
		rec.SourceTimestamp = d.Time()
	}

	return rec, true
}

func headerIndex(header []string) map[string]int {
	cols := make(map[string]int, len(header))
	for i, h := range header {
		cols[strings.ToLower(strings.TrimSpace(h))] = i
	}
	return cols
}

func field(cols map[string]int, row []string, name string) string {
	i, ok := cols[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

func parseDate(raw string) (engine.Date, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			d := engine.DateOf(t)
			if d.Valid() {
				return d, true
			}
		}
	}
	return engine.Date{}, false
}
