package engine

import (
	"fmt"
	"sort"

	"github.com/google/uuid"
)

// instanceNamespace seeds the deterministic instance IDs. Changing it
// changes every ID, so it is fixed for the life of the data set.
var instanceNamespace = uuid.MustParse("9f2c1717-3a84-4d0b-9c61-57cbb84cf2ee")

// ArtifactPresence records whether an artifact kind was observed for an
// instance and which sources observed it.
type ArtifactPresence struct {
	Present bool
	Sources map[Source]struct{}
}

// MeetingInstance is the resolved, de-duplicated real-world meeting
// entity. Instances are built fresh per Resolve call and handed to the
// caller by ownership transfer.
type MeetingInstance struct {
	// ID is derived from the first-seen canonical key (or from the
	// seeding record for unkeyed instances), so re-running the engine on
	// the same inputs yields the same IDs.
	ID string

	Date              Date
	PrimaryPerson     string
	CounterpartPerson string
	Kind              MeetingKind

	Artifacts map[ArtifactKind]*ArtifactPresence

	// MemberRecordIDs is the provenance: every raw record merged into
	// this instance.
	MemberRecordIDs []string

	// ResolutionConfidence is the weakest confidence among the
	// contributing extractions.
	ResolutionConfidence Confidence

	// firstRawText belongs to the earliest record; fuzzy joins compare
	// candidate raw text against it.
	firstRawText string
}

// HasArtifact reports whether the instance has the given artifact kind.
func (mi *MeetingInstance) HasArtifact(kind ArtifactKind) bool {
	p, ok := mi.Artifacts[kind]
	return ok && p.Present
}

// ArtifactSources returns the sources that observed kind, in enum order.
func (mi *MeetingInstance) ArtifactSources(kind ArtifactKind) []Source {
	p, ok := mi.Artifacts[kind]
	if !ok {
		return nil
	}
	sources := make([]Source, 0, len(p.Sources))
	for s := range p.Sources {
		sources = append(sources, s)
	}
	sort.Slice(sources, func(i, j int) bool { return sources[i] < sources[j] })
	return sources
}

// hasMember reports whether the record ID was already merged.
func (mi *MeetingInstance) hasMember(recordID string) bool {
	for _, id := range mi.MemberRecordIDs {
		if id == recordID {
			return true
		}
	}
	return false
}

// absorb merges a later record's identity into the instance. Identity
// fields follow the earliest-source-wins policy: later records only fill
// fields the earlier ones left empty, never overwrite them.
func (mi *MeetingInstance) absorb(id Identity, rec RawRecord) {
	if mi.Date.IsZero() {
		mi.Date = id.Date
	}
	if mi.PrimaryPerson == "" {
		mi.PrimaryPerson = id.PrimaryPerson
	}
	if mi.CounterpartPerson == "" {
		mi.CounterpartPerson = id.CounterpartPerson
	}
	if mi.Kind == KindUnknown {
		mi.Kind = id.Kind
	}
	mi.ResolutionConfidence = minConfidence(mi.ResolutionConfidence, id.Confidence)
	if !mi.hasMember(rec.ID) {
		mi.MemberRecordIDs = append(mi.MemberRecordIDs, rec.ID)
	}
}

// matchName returns the name fuzzy candidates are compared against.
func (mi *MeetingInstance) matchName() string {
	if mi.CounterpartPerson != "" {
		return mi.CounterpartPerson
	}
	return mi.PrimaryPerson
}

func newInstance(seed string, id Identity, rec RawRecord) *MeetingInstance {
	return &MeetingInstance{
		ID:                   uuid.NewSHA1(instanceNamespace, []byte(seed)).String(),
		Date:                 id.Date,
		PrimaryPerson:        id.PrimaryPerson,
		CounterpartPerson:    id.CounterpartPerson,
		Kind:                 id.Kind,
		Artifacts:            make(map[ArtifactKind]*ArtifactPresence),
		MemberRecordIDs:      []string{rec.ID},
		ResolutionConfidence: id.Confidence,
		firstRawText:         rec.RawText,
	}
}

// Resolution is the outcome of one engine pass: the resolved instances
// plus the permanent unresolved bucket. No input record is ever dropped;
// every record is a member of exactly one instance in one of the two
// lists.
type Resolution struct {
	Instances  []*MeetingInstance
	Unresolved []*MeetingInstance
}

// MemberCount returns the total number of records absorbed across both
// lists.
func (r *Resolution) MemberCount() int {
	n := 0
	for _, inst := range r.Instances {
		n += len(inst.MemberRecordIDs)
	}
	for _, inst := range r.Unresolved {
		n += len(inst.MemberRecordIDs)
	}
	return n
}

// Resolve merges raw records into meeting instances. The pass is
// deterministic: records are sorted by (source timestamp, source enum
// order, artifact kind, record ID) before resolution, so identical
// inputs always produce identical instances and IDs regardless of the
// order adapters delivered them in.
//
// Structural problems (undefined source or artifact kind, impossible
// dates) return an error; textual problems never do.
func (e *Engine) Resolve(records []RawRecord) (*Resolution, error) {
	for _, rec := range records {
		if err := rec.validate(); err != nil {
			return nil, err
		}
	}

	sorted := make([]RawRecord, len(records))
	copy(sorted, records)
	sort.SliceStable(sorted, func(i, j int) bool {
		a, b := sorted[i], sorted[j]
		if !a.SourceTimestamp.Equal(b.SourceTimestamp) {
			return a.SourceTimestamp.Before(b.SourceTimestamp)
		}
		if a.Source != b.Source {
			return a.Source < b.Source
		}
		if a.ArtifactKind != b.ArtifactKind {
			return a.ArtifactKind < b.ArtifactKind
		}
		return a.ID < b.ID
	})

	res := &Resolution{}
	byKey := make(map[CanonicalKey]*MeetingInstance)

	for _, rec := range sorted {
		id := Extract(rec.RawText, rec.ObservedDate)

		if key, ok := e.buildKey(id); ok {
			inst := byKey[key]
			if inst == nil {
				inst = newInstance("key/"+key.String(), id, rec)
				byKey[key] = inst
				res.Instances = append(res.Instances, inst)
			} else {
				inst.absorb(id, rec)
			}
			MergeArtifact(inst, rec)
			continue
		}

		if id.hasName() {
			if inst := e.bestFuzzyMatch(res.Instances, id, rec); inst != nil {
				inst.absorb(id, rec)
				MergeArtifact(inst, rec)
				continue
			}
			inst := newInstance(seedFor(id, rec), id, rec)
			res.Instances = append(res.Instances, inst)
			MergeArtifact(inst, rec)
			continue
		}

		if !id.Date.IsZero() {
			// Dated but nameless: it is a real meeting observation, just
			// one nothing else can join by name.
			inst := newInstance(seedFor(id, rec), id, rec)
			res.Instances = append(res.Instances, inst)
			MergeArtifact(inst, rec)
			continue
		}

		// No date, no usable name: unresolved, with provenance retained.
		inst := newInstance("unresolved/"+rec.ID+"/"+rec.RawText, id, rec)
		res.Unresolved = append(res.Unresolved, inst)
		MergeArtifact(inst, rec)
	}

	return res, nil
}

// seedFor derives the ID seed for instances that never had a canonical
// key. The raw text plus date keeps the seed stable across runs without
// colliding with keyed seeds.
func seedFor(id Identity, rec RawRecord) string {
	return fmt.Sprintf("seed/%s/%s", id.Date, rec.RawText)
}

// bestFuzzyMatch finds the instance a keyless record should join, or nil.
// Candidates carrying a date are only compared against instances with
// that same date; undated candidates are compared against every instance.
// The best name-similarity score wins outright at the high-confidence
// threshold; below it, the mean of name similarity and raw-text token
// overlap must clear the low-confidence threshold. Ties keep the
// earliest-seen instance.
func (e *Engine) bestFuzzyMatch(instances []*MeetingInstance, id Identity, rec RawRecord) *MeetingInstance {
	name := normalizeName(id.bestName())
	if name == "" {
		return nil
	}

	var best *MeetingInstance
	bestSim := 0.0
	for _, inst := range instances {
		if !id.Date.IsZero() && inst.Date != id.Date {
			continue
		}
		target := inst.matchName()
		if target == "" {
			continue
		}
		sim := nameSimilarity(name, target)
		if sim > bestSim {
			bestSim = sim
			best = inst
		}
	}
	if best == nil {
		return nil
	}

	if bestSim >= e.cfg.HighConfidenceSimilarity {
		return best
	}
	combined := (bestSim + tokenOverlap(rec.RawText, best.firstRawText)) / 2
	if combined >= e.cfg.LowConfidenceSimilarity {
		return best
	}
	return nil
}
