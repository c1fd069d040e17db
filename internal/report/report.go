package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"github.com/ourassistants/checkinsync/internal/engine"
)

// Period is the scan window a report covers.
type Period struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// Summary holds the coverage counts the report leads with.
type Summary struct {
	Total         int            `json:"total"`
	ByCounterpart map[string]int `json:"by_counterpart"`
	HasCalendar   int            `json:"has_calendar"`
	HasRecording  int            `json:"has_recording"`
	HasTranscript int            `json:"has_transcript"`
	HasAnalysis   int            `json:"has_analysis"`
	Gaps          int            `json:"gaps"`
	Unresolved    int            `json:"unresolved"`
}

// Meeting is the JSON rendering of one resolved meeting instance.
type Meeting struct {
	ID          string              `json:"id"`
	Date        string              `json:"date"`
	Primary     string              `json:"primary,omitempty"`
	Counterpart string              `json:"counterpart,omitempty"`
	Kind        string              `json:"kind"`
	Confidence  string              `json:"confidence"`
	Artifacts   map[string][]string `json:"artifacts"`
	Records     []string            `json:"records"`
}

// Gap is the JSON rendering of one coverage gap.
type Gap struct {
	ID          string   `json:"id"`
	Date        string   `json:"date"`
	Counterpart string   `json:"counterpart,omitempty"`
	Missing     []string `json:"missing"`
	Priority    float64  `json:"priority"`
}

// Report is the persisted output of one scan.
type Report struct {
	Generated  time.Time `json:"generated"`
	Period     Period    `json:"period"`
	Summary    Summary   `json:"summary"`
	Meetings   []Meeting `json:"meetings"`
	Gaps       []Gap     `json:"gaps"`
	Unresolved []Meeting `json:"unresolved,omitempty"`
}

// Build assembles a report from the resolution and its gap analysis.
func Build(res *engine.Resolution, gaps *engine.GapReport, period Period, generated time.Time) *Report {
	rep := &Report{
		Generated: generated,
		Period:    period,
		Summary: Summary{
			ByCounterpart: make(map[string]int),
		},
	}

	unresolved := make(map[string]bool, len(gaps.Unresolved))
	for _, inst := range gaps.Unresolved {
		unresolved[inst.ID] = true
		rep.Unresolved = append(rep.Unresolved, toMeeting(inst))
	}

	for _, inst := range res.Instances {
		if unresolved[inst.ID] {
			continue
		}
		rep.Meetings = append(rep.Meetings, toMeeting(inst))

		rep.Summary.Total++
		counterpart := inst.CounterpartPerson
		if counterpart == "" {
			counterpart = "unknown"
		}
		rep.Summary.ByCounterpart[counterpart]++
		if inst.HasArtifact(engine.ArtifactCalendarEvent) {
			rep.Summary.HasCalendar++
		}
		if inst.HasArtifact(engine.ArtifactRecording) {
			rep.Summary.HasRecording++
		}
		if inst.HasArtifact(engine.ArtifactTranscript) {
			rep.Summary.HasTranscript++
		}
		if inst.HasArtifact(engine.ArtifactAnalysisRow) {
			rep.Summary.HasAnalysis++
		}
	}

	sort.SliceStable(rep.Meetings, func(i, j int) bool {
		if rep.Meetings[i].Date != rep.Meetings[j].Date {
			return rep.Meetings[i].Date < rep.Meetings[j].Date
		}
		return rep.Meetings[i].ID < rep.Meetings[j].ID
	})

	for _, entry := range gaps.Entries {
		rep.Gaps = append(rep.Gaps, toGap(entry))
	}
	rep.Summary.Gaps = len(rep.Gaps)
	rep.Summary.Unresolved = len(rep.Unresolved)

	return rep
}

func toMeeting(inst *engine.MeetingInstance) Meeting {
	m := Meeting{
		ID:          inst.ID,
		Date:        inst.Date.String(),
		Primary:     inst.PrimaryPerson,
		Counterpart: inst.CounterpartPerson,
		Kind:        inst.Kind.String(),
		Confidence:  inst.ResolutionConfidence.String(),
		Artifacts:   make(map[string][]string),
		Records:     inst.MemberRecordIDs,
	}
	for _, kind := range engine.AllArtifactKinds() {
		if !inst.HasArtifact(kind) {
			continue
		}
		var sources []string
		for _, s := range inst.ArtifactSources(kind) {
			sources = append(sources, s.String())
		}
		m.Artifacts[kind.String()] = sources
	}
	return m
}

func toGap(entry engine.GapEntry) Gap {
	g := Gap{
		ID:          entry.Instance.ID,
		Date:        entry.Instance.Date.String(),
		Counterpart: entry.Instance.CounterpartPerson,
		Priority:    entry.Priority,
	}
	for _, kind := range entry.Missing {
		g.Missing = append(g.Missing, kind.String())
	}
	return g
}

const filePrefix = "checkin_report_"

// SaveJSON writes the report to a timestamped file in dir and returns the
// written path.
func SaveJSON(rep *Report, dir string) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filePrefix+rep.Generated.UTC().Format("20060102_150405")+".json")
	data, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write report: %w", err)
	}
	return path, nil
}

// LoadLatest reads the most recent saved report from dir. Report file
// names embed a sortable timestamp, so the lexicographically greatest
// name is the newest.
func LoadLatest(dir string) (*Report, error) {
	matches, err := filepath.Glob(filepath.Join(dir, filePrefix+"*.json"))
	if err != nil {
		return nil, fmt.Errorf("failed to list reports: %w", err)
	}
	if len(matches) == 0 {
		return nil, fmt.Errorf("no saved reports in %s", dir)
	}
	sort.Strings(matches)

	return Load(matches[len(matches)-1])
}

// Load reads a saved report from path.
func Load(path string) (*Report, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read report: %w", err)
	}
	var rep Report
	if err := json.Unmarshal(data, &rep); err != nil {
		return nil, fmt.Errorf("failed to parse report %s: %w", path, err)
	}
	return &rep, nil
}
