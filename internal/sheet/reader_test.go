package sheet

import (
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourassistants/checkinsync/internal/engine"
)

func newTestReader(t *testing.T, csvData string) *Reader {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tracking.csv")
	require.NoError(t, os.WriteFile(path, []byte(csvData), 0644))
	return New(path, slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})))
}

func TestCollectRecords(t *testing.T) {
	r := newTestReader(t, strings.Join([]string{
		"Subject,Date,VA Name,HR Person,Summary",
		"Louise x Joanne,2025-12-04,Joanne,Louise,Discussed onboarding progress",
		"Louise x Irvy,2025-12-05,Irvy,Louise,",
		"Shey x Ben,2025-11-20,Ben,Shey,Follow-up on guidelines",
	}, "\n"))

	records, err := r.CollectRecords()
	require.NoError(t, err)
	require.Len(t, records, 2, "row without summary must be skipped")

	first := records[0]
	assert.Equal(t, engine.SourceSpreadsheet, first.Source)
	assert.Equal(t, engine.ArtifactAnalysisRow, first.ArtifactKind)
	assert.Equal(t, "Louise x Joanne", first.RawText)
	assert.Equal(t, engine.NewDate(2025, time.December, 4), first.ObservedDate)
	assert.Equal(t, first.ObservedDate.Time(), first.SourceTimestamp)

	assert.Equal(t, "Shey x Ben", records[1].RawText)
}

func TestCollectRecordsSubjectFallback(t *testing.T) {
	r := newTestReader(t, strings.Join([]string{
		"Subject,Date,VA Name,HR Person,Summary",
		",2025-12-04,Joanne,Louise,Reviewed checklist",
	}, "\n"))

	records, err := r.CollectRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Louise x Joanne", records[0].RawText)
}

func TestCollectRecordsMalformedRowsSkipped(t *testing.T) {
	r := newTestReader(t, strings.Join([]string{
		"Subject,Date,VA Name,HR Person,Summary",
		"Louise x Joanne,not-a-date,Joanne,Louise,Something",
		",2025-12-04,,,Orphan summary",
		"Louise x Irvy,2025-12-05,Irvy,Louise,Valid row",
	}, "\n"))

	records, err := r.CollectRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "Louise x Irvy", records[0].RawText)
}

func TestCollectRecordsEmptyFile(t *testing.T) {
	r := newTestReader(t, "")
	records, err := r.CollectRecords()
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectRecordsMissingSubjectColumn(t *testing.T) {
	r := newTestReader(t, "Date,Summary\n2025-12-04,Something\n")
	_, err := r.CollectRecords()
	assert.Error(t, err)
}

func TestCollectRecordsDatelessRow(t *testing.T) {
	r := newTestReader(t, strings.Join([]string{
		"Subject,Date,VA Name,HR Person,Summary",
		"Louise x Joanne,,Joanne,Louise,Analyzed without a date",
	}, "\n"))

	records, err := r.CollectRecords()
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.True(t, records[0].ObservedDate.IsZero())
	assert.True(t, records[0].SourceTimestamp.IsZero())
}
