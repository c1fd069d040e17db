package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestEngine(t *testing.T) *Engine {
	t.Helper()
	e, err := New(DefaultConfig())
	require.NoError(t, err)
	return e
}

func ts(day, hour int) time.Time {
	return time.Date(2025, time.December, day, hour, 0, 0, 0, time.UTC)
}

func TestResolveMergesAcrossSources(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{
			ID:              "cal-1",
			Source:          SourceCalendar,
			ArtifactKind:    ArtifactCalendarEvent,
			RawText:         "Integration Team Check-in Louise x Irvy",
			ObservedDate:    NewDate(2025, time.December, 4),
			SourceTimestamp: ts(4, 22),
		},
		{
			ID:              "vtt-1",
			Source:          SourceLocalFile,
			ArtifactKind:    ArtifactTranscript,
			RawText:         "20251204_220053_Integration Team Check-in  Louise x Irvy.vtt",
			SourceTimestamp: ts(4, 23),
		},
	}

	res, err := e.Resolve(records)
	require.NoError(t, err)
	require.Len(t, res.Instances, 1)
	assert.Empty(t, res.Unresolved)

	inst := res.Instances[0]
	assert.Equal(t, NewDate(2025, time.December, 4), inst.Date)
	assert.Equal(t, "irvy", inst.CounterpartPerson)
	assert.Equal(t, "louise", inst.PrimaryPerson)
	assert.Equal(t, KindCheckIn, inst.Kind)
	assert.True(t, inst.HasArtifact(ArtifactCalendarEvent))
	assert.True(t, inst.HasArtifact(ArtifactTranscript))
	assert.False(t, inst.HasArtifact(ArtifactRecording))
	assert.Equal(t, []Source{SourceCalendar}, inst.ArtifactSources(ArtifactCalendarEvent))
	assert.Equal(t, []Source{SourceLocalFile}, inst.ArtifactSources(ArtifactTranscript))
	assert.ElementsMatch(t, []string{"cal-1", "vtt-1"}, inst.MemberRecordIDs)
}

func TestResolveEarliestWinsConflictPolicy(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{
			ID:              "cal-1",
			Source:          SourceCalendar,
			ArtifactKind:    ArtifactCalendarEvent,
			RawText:         "Check-in Louise x Irvy",
			ObservedDate:    NewDate(2025, time.December, 4),
			SourceTimestamp: ts(4, 9),
		},
		{
			// Later observation with a conflicting primary person; it may
			// not overwrite what the first record established.
			ID:              "rec-1",
			Source:          SourceCloudListing,
			ArtifactKind:    ArtifactRecording,
			RawText:         "20251204_090000_Check-in Shey x Irvy.mp4",
			SourceTimestamp: ts(4, 10),
		},
	}

	res, err := e.Resolve(records)
	require.NoError(t, err)
	require.Len(t, res.Instances, 1)
	assert.Equal(t, "louise", res.Instances[0].PrimaryPerson)
	assert.True(t, res.Instances[0].HasArtifact(ArtifactRecording))
}

func TestResolveDeterministicIDs(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{ID: "a", Source: SourceCalendar, ArtifactKind: ArtifactCalendarEvent, RawText: "Check-in Louise x Irvy", ObservedDate: NewDate(2025, time.December, 4), SourceTimestamp: ts(4, 9)},
		{ID: "b", Source: SourceLocalFile, ArtifactKind: ArtifactRecording, RawText: "20251205_090000_Check-in Louise x Jep.mp4", SourceTimestamp: ts(5, 9)},
		{ID: "c", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript, RawText: "no recognizable pattern", SourceTimestamp: ts(6, 9)},
	}

	first, err := e.Resolve(records)
	require.NoError(t, err)
	second, err := e.Resolve(records)
	require.NoError(t, err)

	require.Len(t, second.Instances, len(first.Instances))
	for i := range first.Instances {
		assert.Equal(t, first.Instances[i].ID, second.Instances[i].ID)
		assert.Equal(t, first.Instances[i].Artifacts, second.Instances[i].Artifacts)
	}
	require.Len(t, second.Unresolved, len(first.Unresolved))
	for i := range first.Unresolved {
		assert.Equal(t, first.Unresolved[i].ID, second.Unresolved[i].ID)
	}
}

func TestResolveOrderIndependentContent(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{ID: "a", Source: SourceCalendar, ArtifactKind: ArtifactCalendarEvent, RawText: "Check-in Louise x Irvy", ObservedDate: NewDate(2025, time.December, 4), SourceTimestamp: ts(4, 9)},
		{ID: "b", Source: SourceCloudListing, ArtifactKind: ArtifactRecording, RawText: "20251204_090000_Check-in Louise x Irvy.mp4", SourceTimestamp: ts(4, 10)},
		{ID: "c", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript, RawText: "20251204_090000_Check-in Louise x Irvy.vtt", SourceTimestamp: ts(4, 11)},
		{ID: "d", Source: SourceSpreadsheet, ArtifactKind: ArtifactAnalysisRow, RawText: "Check-in Louise x Jep", ObservedDate: NewDate(2025, time.December, 5), SourceTimestamp: ts(5, 9)},
	}

	shuffled := []RawRecord{records[3], records[1], records[0], records[2]}

	fromOriginal, err := e.Resolve(records)
	require.NoError(t, err)
	fromShuffled, err := e.Resolve(shuffled)
	require.NoError(t, err)

	require.Len(t, fromShuffled.Instances, len(fromOriginal.Instances))
	for i := range fromOriginal.Instances {
		assert.Equal(t, fromOriginal.Instances[i].ID, fromShuffled.Instances[i].ID)
		assert.Equal(t, fromOriginal.Instances[i].CounterpartPerson, fromShuffled.Instances[i].CounterpartPerson)
		assert.Equal(t, fromOriginal.Instances[i].Artifacts, fromShuffled.Instances[i].Artifacts)
	}
}

func TestResolveFuzzyHighConfidenceBoundary(t *testing.T) {
	e := newTestEngine(t)

	seed := RawRecord{
		ID:              "rec-1",
		Source:          SourceCloudListing,
		ArtifactKind:    ArtifactRecording,
		RawText:         "20251101_090000_Check-in Louise x Abcdef.mp4",
		SourceTimestamp: ts(1, 9),
	}

	t.Run("similarity exactly at threshold joins", func(t *testing.T) {
		// nameSimilarity("abcd", "abcdef") is exactly 0.8.
		candidate := RawRecord{
			ID:              "vtt-1",
			Source:          SourceLocalFile,
			ArtifactKind:    ArtifactTranscript,
			RawText:         "Catch up with Abcd",
			SourceTimestamp: ts(2, 9),
		}
		res, err := e.Resolve([]RawRecord{seed, candidate})
		require.NoError(t, err)
		require.Len(t, res.Instances, 1)
		assert.True(t, res.Instances[0].HasArtifact(ArtifactTranscript))
	})

	t.Run("similarity below threshold must not join on name alone", func(t *testing.T) {
		// nameSimilarity("abcd", "abcdefg") ~= 0.73, and the raw texts
		// share no tokens, so the combined score cannot rescue it.
		seven := RawRecord{
			ID:              "rec-2",
			Source:          SourceCloudListing,
			ArtifactKind:    ArtifactRecording,
			RawText:         "20251101_090000_Standup Louise x Abcdefg.mp4",
			SourceTimestamp: ts(1, 9),
		}
		candidate := RawRecord{
			ID:              "vtt-2",
			Source:          SourceLocalFile,
			ArtifactKind:    ArtifactTranscript,
			RawText:         "Catch up with Abcd",
			SourceTimestamp: ts(2, 9),
		}
		res, err := e.Resolve([]RawRecord{seven, candidate})
		require.NoError(t, err)
		assert.Len(t, res.Instances, 2)
	})
}

func TestResolveFuzzyCombinedScorePath(t *testing.T) {
	e := newTestEngine(t)

	seed := RawRecord{
		ID:              "rec-1",
		Source:          SourceCloudListing,
		ArtifactKind:    ArtifactRecording,
		RawText:         "Weekly Check-in Louise x Abcdefg",
		ObservedDate:    NewDate(2025, time.November, 1),
		SourceTimestamp: ts(1, 9),
	}
	// Name similarity ~0.73 is under the high threshold, but the shared
	// subject tokens push the combined score over the low threshold.
	candidate := RawRecord{
		ID:              "vtt-1",
		Source:          SourceLocalFile,
		ArtifactKind:    ArtifactTranscript,
		RawText:         "Weekly Check-in Louise x Abcd extra",
		SourceTimestamp: ts(2, 9),
	}

	res, err := e.Resolve([]RawRecord{seed, candidate})
	require.NoError(t, err)
	require.Len(t, res.Instances, 1)
	assert.True(t, res.Instances[0].HasArtifact(ArtifactTranscript))
	assert.Equal(t, "abcdefg", res.Instances[0].CounterpartPerson)
}

func TestResolveFuzzyBelowBothThresholdsSeedsNewInstance(t *testing.T) {
	e := newTestEngine(t)

	seed := RawRecord{
		ID:              "rec-1",
		Source:          SourceCloudListing,
		ArtifactKind:    ArtifactRecording,
		RawText:         "20251101_090000_Standup Louise x Abcdefg.mp4",
		SourceTimestamp: ts(1, 9),
	}
	candidate := RawRecord{
		ID:              "vtt-1",
		Source:          SourceLocalFile,
		ArtifactKind:    ArtifactTranscript,
		RawText:         "Catch up with Abcd",
		SourceTimestamp: ts(2, 9),
	}

	res, err := e.Resolve([]RawRecord{seed, candidate})
	require.NoError(t, err)
	assert.Len(t, res.Instances, 2)
}

func TestResolveSameNameDifferentDateStaysSeparate(t *testing.T) {
	e := newTestEngine(t)

	seed := RawRecord{
		ID:              "cal-1",
		Source:          SourceCalendar,
		ArtifactKind:    ArtifactCalendarEvent,
		RawText:         "Check-in Louise x Irvy",
		ObservedDate:    NewDate(2025, time.December, 4),
		SourceTimestamp: ts(4, 9),
	}
	// Identical counterpart, different date: different canonical key,
	// never merged.
	other := RawRecord{
		ID:              "vtt-1",
		Source:          SourceLocalFile,
		ArtifactKind:    ArtifactTranscript,
		RawText:         "20251205_090000_Catch up with Irvy.vtt",
		SourceTimestamp: ts(5, 9),
	}

	res, err := e.Resolve([]RawRecord{seed, other})
	require.NoError(t, err)
	assert.Len(t, res.Instances, 2)
}

func TestResolveUnresolvedBucket(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{ID: "junk-1", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript, RawText: "0001 ???", SourceTimestamp: ts(1, 9)},
		{ID: "cal-1", Source: SourceCalendar, ArtifactKind: ArtifactCalendarEvent, RawText: "Check-in Louise x Irvy", ObservedDate: NewDate(2025, time.December, 4), SourceTimestamp: ts(4, 9)},
	}

	res, err := e.Resolve(records)
	require.NoError(t, err)
	require.Len(t, res.Unresolved, 1)
	assert.Equal(t, []string{"junk-1"}, res.Unresolved[0].MemberRecordIDs)
	assert.Equal(t, ConfidenceUnresolved, res.Unresolved[0].ResolutionConfidence)
	// Never merged into the resolved instance.
	require.Len(t, res.Instances, 1)
	assert.Equal(t, []string{"cal-1"}, res.Instances[0].MemberRecordIDs)
}

func TestResolveNoDataLoss(t *testing.T) {
	e := newTestEngine(t)

	records := []RawRecord{
		{ID: "a", Source: SourceCalendar, ArtifactKind: ArtifactCalendarEvent, RawText: "Check-in Louise x Irvy", ObservedDate: NewDate(2025, time.December, 4), SourceTimestamp: ts(4, 9)},
		{ID: "b", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript, RawText: "20251204_090000_Check-in Louise x Irvy.vtt", SourceTimestamp: ts(4, 10)},
		{ID: "c", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript, RawText: "garbage ???", SourceTimestamp: ts(4, 11)},
		{ID: "d", Source: SourceSpreadsheet, ArtifactKind: ArtifactAnalysisRow, RawText: "Check-in Shey x Jep", ObservedDate: NewDate(2025, time.December, 5), SourceTimestamp: ts(5, 9)},
		{ID: "e", Source: SourceCloudListing, ArtifactKind: ArtifactRecording, RawText: "20251206_090000", SourceTimestamp: ts(6, 9)},
	}

	res, err := e.Resolve(records)
	require.NoError(t, err)
	assert.Equal(t, len(records), res.MemberCount())
}

func TestResolveIdempotentArtifactMerge(t *testing.T) {
	e := newTestEngine(t)

	rec := RawRecord{
		ID:              "vtt-1",
		Source:          SourceLocalFile,
		ArtifactKind:    ArtifactTranscript,
		RawText:         "20251204_090000_Check-in Louise x Irvy.vtt",
		SourceTimestamp: ts(4, 9),
	}

	res, err := e.Resolve([]RawRecord{rec, rec})
	require.NoError(t, err)
	require.Len(t, res.Instances, 1)
	inst := res.Instances[0]
	assert.Equal(t, []string{"vtt-1"}, inst.MemberRecordIDs)
	assert.Equal(t, []Source{SourceLocalFile}, inst.ArtifactSources(ArtifactTranscript))
}

func TestResolveContractViolations(t *testing.T) {
	e := newTestEngine(t)

	t.Run("invalid source", func(t *testing.T) {
		_, err := e.Resolve([]RawRecord{{ID: "x", Source: Source(99), ArtifactKind: ArtifactRecording}})
		assert.ErrorIs(t, err, ErrInvalidSource)
	})

	t.Run("invalid artifact kind", func(t *testing.T) {
		_, err := e.Resolve([]RawRecord{{ID: "x", Source: SourceCalendar, ArtifactKind: ArtifactKind(99)}})
		assert.ErrorIs(t, err, ErrInvalidArtifactKind)
	})

	t.Run("impossible date", func(t *testing.T) {
		_, err := e.Resolve([]RawRecord{{
			ID:           "x",
			Source:       SourceCalendar,
			ArtifactKind: ArtifactCalendarEvent,
			ObservedDate: Date{Year: 2025, Month: time.February, Day: 31},
		}})
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestMergeArtifactAccumulatesSources(t *testing.T) {
	inst := newInstance("seed", Identity{}, RawRecord{ID: "a"})

	MergeArtifact(inst, RawRecord{ID: "a", Source: SourceLocalFile, ArtifactKind: ArtifactTranscript})
	MergeArtifact(inst, RawRecord{ID: "b", Source: SourceCloudListing, ArtifactKind: ArtifactTranscript})
	MergeArtifact(inst, RawRecord{ID: "b", Source: SourceCloudListing, ArtifactKind: ArtifactTranscript})

	assert.True(t, inst.HasArtifact(ArtifactTranscript))
	assert.Equal(t, []Source{SourceCloudListing, SourceLocalFile}, inst.ArtifactSources(ArtifactTranscript))
}
