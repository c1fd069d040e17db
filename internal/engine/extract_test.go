package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	tests := []struct {
		name     string
		rawText  string
		hint     Date
		expected Identity
	}{
		{
			name:    "calendar subject with participant pair",
			rawText: "Integration Team Check-in Louise x Irvy",
			expected: Identity{
				PrimaryPerson:     "louise",
				CounterpartPerson: "irvy",
				Kind:              KindCheckIn,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "transcript filename with leading stamp",
			rawText: "20251204_220053_Integration Team Check-in  Louise x Irvy.vtt",
			expected: Identity{
				Date:              NewDate(2025, time.December, 4),
				PrimaryPerson:     "louise",
				CounterpartPerson: "irvy",
				Kind:              KindCheckIn,
				Confidence:        ConfidenceExact,
			},
		},
		{
			name:    "catch up subject falls back to hint date",
			rawText: "Catch Up with Jep",
			hint:    NewDate(2025, time.December, 12),
			expected: Identity{
				Date:              NewDate(2025, time.December, 12),
				CounterpartPerson: "jep",
				Kind:              KindOther,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "duplicated date stamp stripped from name",
			rawText: "Integration Team Check-in  Louise x Joanne-20251204",
			expected: Identity{
				PrimaryPerson:     "louise",
				CounterpartPerson: "joanne",
				Kind:              KindCheckIn,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "date stamp with counter stripped from name",
			rawText: "Louise x Joanne-20251204_001",
			expected: Identity{
				PrimaryPerson:     "louise",
				CounterpartPerson: "joanne",
				Kind:              KindUnknown,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "inline ISO date",
			rawText: "Check-in 2025-12-04 Louise x Irvy",
			expected: Identity{
				Date:              NewDate(2025, time.December, 4),
				PrimaryPerson:     "louise",
				CounterpartPerson: "irvy",
				Kind:              KindCheckIn,
				Confidence:        ConfidenceExact,
			},
		},
		{
			name:    "interview with single name",
			rawText: "VA Interview with Sam",
			expected: Identity{
				CounterpartPerson: "sam",
				Kind:              KindInterview,
				Confidence:        ConfidenceUnresolved,
			},
		},
		{
			name:    "check-in with single name and hint",
			rawText: "EA Check-in with Mara",
			hint:    NewDate(2025, time.November, 20),
			expected: Identity{
				Date:              NewDate(2025, time.November, 20),
				CounterpartPerson: "mara",
				Kind:              KindCheckIn,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "onboarding keyword only",
			rawText: "New VA Orientation",
			expected: Identity{
				Kind:       KindOnboarding,
				Confidence: ConfidenceUnresolved,
			},
		},
		{
			name:    "collapsed pair in check-in context",
			rawText: "Check-in Louisex Irvy",
			expected: Identity{
				PrimaryPerson:     "louise",
				CounterpartPerson: "irvy",
				Kind:              KindCheckIn,
				Confidence:        ConfidencePartial,
			},
		},
		{
			name:    "word ending in x is not a participant pair",
			rawText: "Inbox sync",
			expected: Identity{
				Kind:       KindOther,
				Confidence: ConfidenceUnresolved,
			},
		},
		{
			name:    "unparsable text",
			rawText: "0001 ???",
			expected: Identity{
				Kind:       KindUnknown,
				Confidence: ConfidenceUnresolved,
			},
		},
		{
			name:    "empty text",
			rawText: "",
			expected: Identity{
				Kind:       KindUnknown,
				Confidence: ConfidenceUnresolved,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Extract(tt.rawText, tt.hint)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestExtractDateTokenNotMistakenForName(t *testing.T) {
	// The stamp must be consumed before name parsing so the digits can
	// never leak into a name field.
	id := Extract("20251204_220053_Catch up with Jep.mp4", Date{})
	assert.Equal(t, NewDate(2025, time.December, 4), id.Date)
	assert.Equal(t, "jep", id.CounterpartPerson)
}

func TestExtractInvalidStampIgnored(t *testing.T) {
	// 99999999 is not a date; the text should fall through untouched and
	// the hint should win.
	id := Extract("99999999_000000_Louise x Irvy", NewDate(2025, time.December, 1))
	assert.Equal(t, NewDate(2025, time.December, 1), id.Date)
}

func TestExtractIsPure(t *testing.T) {
	a := Extract("20251204_220053_Louise x Irvy.vtt", Date{})
	b := Extract("20251204_220053_Louise x Irvy.vtt", Date{})
	assert.Equal(t, a, b)
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		in, out string
	}{
		{"Joanne-20251204", "joanne"},
		{"Joanne-20251204_001", "joanne"},
		{"Joanne-20251204-20251204", "joanne"},
		{"  Irvy  ", "irvy"},
		{"20251204", ""},
		{"", ""},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.out, cleanName(tt.in), "cleanName(%q)", tt.in)
	}
}

func TestClassifyKind(t *testing.T) {
	tests := []struct {
		text string
		kind MeetingKind
	}{
		{"Weekly Check-in", KindCheckIn},
		{"checkin louise", KindCheckIn},
		{"Final interview round", KindInterview},
		{"VA onboarding session", KindOnboarding},
		{"Team orientation", KindOnboarding},
		{"Quarterly sync", KindOther},
		{"random text", KindUnknown},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.kind, classifyKind(tt.text), "classifyKind(%q)", tt.text)
	}
}
