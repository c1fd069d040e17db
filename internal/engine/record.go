package engine

import (
	"errors"
	"fmt"
	"time"
)

// Source identifies the system a RawRecord was observed from.
type Source int

const (
	SourceCalendar Source = iota
	SourceCloudListing
	SourceLocalFile
	SourceSpreadsheet
	numSources
)

// String returns the source name used in reports and logs.
func (s Source) String() string {
	switch s {
	case SourceCalendar:
		return "calendar"
	case SourceCloudListing:
		return "cloud-listing"
	case SourceLocalFile:
		return "local-file"
	case SourceSpreadsheet:
		return "spreadsheet"
	default:
		return fmt.Sprintf("source(%d)", int(s))
	}
}

// Valid reports whether s is one of the defined source values.
func (s Source) Valid() bool {
	return s >= SourceCalendar && s < numSources
}

// ArtifactKind is a type of evidence about a meeting.
type ArtifactKind int

const (
	ArtifactCalendarEvent ArtifactKind = iota
	ArtifactRecording
	ArtifactTranscript
	ArtifactAnalysisRow
	numArtifactKinds
)

// String returns the artifact kind name used in reports and logs.
func (k ArtifactKind) String() string {
	switch k {
	case ArtifactCalendarEvent:
		return "calendar-event"
	case ArtifactRecording:
		return "recording"
	case ArtifactTranscript:
		return "transcript"
	case ArtifactAnalysisRow:
		return "analysis-row"
	default:
		return fmt.Sprintf("artifact(%d)", int(k))
	}
}

// Valid reports whether k is one of the defined artifact kinds.
func (k ArtifactKind) Valid() bool {
	return k >= ArtifactCalendarEvent && k < numArtifactKinds
}

// AllArtifactKinds returns every defined artifact kind in declaration order.
func AllArtifactKinds() []ArtifactKind {
	return []ArtifactKind{ArtifactCalendarEvent, ArtifactRecording, ArtifactTranscript, ArtifactAnalysisRow}
}

// Date is a calendar date without time-of-day or location. The zero value
// means "unknown".
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// DateOf returns the calendar date of t in UTC.
func DateOf(t time.Time) Date {
	t = t.UTC()
	return Date{Year: t.Year(), Month: t.Month(), Day: t.Day()}
}

// NewDate builds a Date from its components.
func NewDate(year int, month time.Month, day int) Date {
	return Date{Year: year, Month: month, Day: day}
}

// IsZero reports whether the date is unknown.
func (d Date) IsZero() bool {
	return d == Date{}
}

// Valid reports whether d is a real calendar date within the range the
// engine accepts. Dates outside 1990–2100 are treated as structural
// garbage rather than plausible meeting dates.
func (d Date) Valid() bool {
	if d.Year < 1990 || d.Year > 2100 {
		return false
	}
	if d.Month < time.January || d.Month > time.December {
		return false
	}
	t := time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
	return t.Year() == d.Year && t.Month() == d.Month && t.Day() == d.Day
}

// Time returns the date as midnight UTC.
func (d Date) Time() time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, time.UTC)
}

// Before reports whether d is before other.
func (d Date) Before(other Date) bool {
	if d.Year != other.Year {
		return d.Year < other.Year
	}
	if d.Month != other.Month {
		return d.Month < other.Month
	}
	return d.Day < other.Day
}

// String formats the date as YYYY-MM-DD, or "unknown" for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return "unknown"
	}
	return d.Time().Format("2006-01-02")
}

// MonthKey returns the YYYY-MM grouping key for the date, or "unknown".
func (d Date) MonthKey() string {
	if d.IsZero() {
		return "unknown"
	}
	return d.Time().Format("2006-01")
}

// RawRecord is one observation of a meeting-related artifact from exactly
// one source system. Records are immutable once created by an adapter.
type RawRecord struct {
	// ID is the adapter-assigned identifier used for provenance tracking
	// (calendar event ID, drive file ID, file path, spreadsheet row key).
	ID string

	Source       Source
	ArtifactKind ArtifactKind

	// RawText is the subject line or filename exactly as observed.
	RawText string

	// ObservedDate is the date the source itself attributes to the record
	// (event start date, file creation date). Zero when the source has no
	// date of its own.
	ObservedDate Date

	// SizeBytes and SourceTimestamp are optional, source-specific.
	SizeBytes       int64
	SourceTimestamp time.Time
}

// Structural validation errors. Malformed text never errors; malformed
// structure always does.
var (
	ErrInvalidSource       = errors.New("invalid record source")
	ErrInvalidArtifactKind = errors.New("invalid artifact kind")
	ErrInvalidDate         = errors.New("invalid observed date")
)

// validate checks the record's structural fields. Textual content is never
// validated here; unparsable text flows to the unresolved bucket instead.
func (r RawRecord) validate() error {
	if !r.Source.Valid() {
		return fmt.Errorf("record %q: %w: %d", r.ID, ErrInvalidSource, int(r.Source))
	}
	if !r.ArtifactKind.Valid() {
		return fmt.Errorf("record %q: %w: %d", r.ID, ErrInvalidArtifactKind, int(r.ArtifactKind))
	}
	if !r.ObservedDate.IsZero() && !r.ObservedDate.Valid() {
		return fmt.Errorf("record %q: %w: %s", r.ID, ErrInvalidDate, r.ObservedDate)
	}
	return nil
}
