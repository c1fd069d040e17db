package engine

import "fmt"

// MeetingKind classifies what sort of meeting a record describes.
type MeetingKind int

const (
	KindUnknown MeetingKind = iota
	KindCheckIn
	KindInterview
	KindOnboarding
	KindOther
)

// String returns the meeting kind name used in reports.
func (k MeetingKind) String() string {
	switch k {
	case KindCheckIn:
		return "check-in"
	case KindInterview:
		return "interview"
	case KindOnboarding:
		return "onboarding"
	case KindOther:
		return "other"
	default:
		return "unknown"
	}
}

// Confidence grades how much identifying information an extraction
// recovered from a record's raw text.
type Confidence int

const (
	// ConfidenceUnresolved means neither a usable date+name combination
	// nor a usable name pair was found.
	ConfidenceUnresolved Confidence = iota

	// ConfidencePartial means a date plus one name, or both names without
	// a date.
	ConfidencePartial

	// ConfidenceExact means a date plus both participant names.
	ConfidenceExact
)

// String returns the confidence level name.
func (c Confidence) String() string {
	switch c {
	case ConfidenceExact:
		return "exact"
	case ConfidencePartial:
		return "partial"
	case ConfidenceUnresolved:
		return "unresolved"
	default:
		return fmt.Sprintf("confidence(%d)", int(c))
	}
}

// minConfidence returns the weaker of two confidence levels.
func minConfidence(a, b Confidence) Confidence {
	if a < b {
		return a
	}
	return b
}

// Identity is the best-effort structured guess derived from a record's
// raw text. It is non-authoritative: every field may be empty.
type Identity struct {
	Date Date

	// PrimaryPerson is the staff-side participant (left of the "x"
	// separator); CounterpartPerson is the person the meeting is about.
	// Both are normalized: case-folded, trimmed, corruption suffixes
	// stripped.
	PrimaryPerson     string
	CounterpartPerson string

	Kind       MeetingKind
	Confidence Confidence
}

// hasName reports whether at least one participant name was extracted.
func (id Identity) hasName() bool {
	return id.PrimaryPerson != "" || id.CounterpartPerson != ""
}

// bestName returns the name used for matching: the counterpart when
// known, otherwise the primary person.
func (id Identity) bestName() string {
	if id.CounterpartPerson != "" {
		return id.CounterpartPerson
	}
	return id.PrimaryPerson
}

// gradeConfidence derives the confidence level from which fields were
// populated.
func gradeConfidence(id Identity) Confidence {
	hasDate := !id.Date.IsZero()
	bothNames := id.PrimaryPerson != "" && id.CounterpartPerson != ""
	switch {
	case hasDate && bothNames:
		return ConfidenceExact
	case hasDate && id.hasName():
		return ConfidencePartial
	case bothNames:
		return ConfidencePartial
	default:
		return ConfidenceUnresolved
	}
}
