package engine

import "sort"

// Priority weights. Recency dominates, a recording sitting without a
// transcript is directly actionable (it can be queued for transcription),
// and higher-confidence identities are safer to spend transcription cost
// on.
const (
	recencyWeight      = 2.0
	actionableWeight   = 1.5
	confidenceWeight   = 0.5
	recencyHorizonDays = 180
)

// GapEntry is one instance missing required artifacts.
type GapEntry struct {
	Instance *MeetingInstance
	Missing  []ArtifactKind
	Priority float64
}

// GapReport lists instances with missing artifacts, prioritized and
// grouped the two ways the reporting layer consumes: by calendar month
// and by counterpart person. Unresolved instances are reported separately
// and never mixed into the prioritized entries.
type GapReport struct {
	Entries       []GapEntry
	ByMonth       map[string][]GapEntry
	ByCounterpart map[string][]GapEntry
	Unresolved    []*MeetingInstance
}

// Analyze scans the resolution for coverage gaps against the engine's
// required artifact kinds. asOf anchors the recency component of the
// priority score so the analysis itself stays deterministic.
func (e *Engine) Analyze(res *Resolution, asOf Date) *GapReport {
	report := &GapReport{
		ByMonth:       make(map[string][]GapEntry),
		ByCounterpart: make(map[string][]GapEntry),
	}

	for _, inst := range res.Instances {
		if inst.ResolutionConfidence == ConfidenceUnresolved {
			report.Unresolved = append(report.Unresolved, inst)
			continue
		}
		missing := e.missingArtifacts(inst)
		if len(missing) == 0 {
			continue
		}
		entry := GapEntry{
			Instance: inst,
			Missing:  missing,
			Priority: e.priorityScore(inst, asOf),
		}
		report.Entries = append(report.Entries, entry)
	}
	report.Unresolved = append(report.Unresolved, res.Unresolved...)

	sort.SliceStable(report.Entries, func(i, j int) bool {
		a, b := report.Entries[i], report.Entries[j]
		if a.Priority != b.Priority {
			return a.Priority > b.Priority
		}
		if a.Instance.Date != b.Instance.Date {
			return b.Instance.Date.Before(a.Instance.Date)
		}
		if a.Instance.CounterpartPerson != b.Instance.CounterpartPerson {
			return a.Instance.CounterpartPerson < b.Instance.CounterpartPerson
		}
		return a.Instance.ID < b.Instance.ID
	})

	for _, entry := range report.Entries {
		month := entry.Instance.Date.MonthKey()
		report.ByMonth[month] = append(report.ByMonth[month], entry)
		counterpart := entry.Instance.CounterpartPerson
		if counterpart == "" {
			counterpart = "unknown"
		}
		report.ByCounterpart[counterpart] = append(report.ByCounterpart[counterpart], entry)
	}

	return report
}

// missingArtifacts returns the required kinds the instance lacks, in
// declaration order.
func (e *Engine) missingArtifacts(inst *MeetingInstance) []ArtifactKind {
	var missing []ArtifactKind
	for _, kind := range e.cfg.RequiredArtifacts {
		if !inst.HasArtifact(kind) {
			missing = append(missing, kind)
		}
	}
	return missing
}

// priorityScore weights recency, transcription actionability, and
// resolution confidence into a single ordering value.
func (e *Engine) priorityScore(inst *MeetingInstance, asOf Date) float64 {
	recency := 0.0
	if !inst.Date.IsZero() {
		ageDays := asOf.Time().Sub(inst.Date.Time()).Hours() / 24
		if ageDays < 0 {
			ageDays = 0
		}
		recency = 1 - ageDays/recencyHorizonDays
		if recency < 0 {
			recency = 0
		}
	}

	actionable := 0.0
	if inst.HasArtifact(ArtifactRecording) && !inst.HasArtifact(ArtifactTranscript) {
		actionable = 1.0
	}

	confidence := float64(inst.ResolutionConfidence) / float64(ConfidenceExact)

	return recencyWeight*recency + actionableWeight*actionable + confidenceWeight*confidence
}
