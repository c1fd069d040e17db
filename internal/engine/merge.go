package engine

// MergeArtifact records the artifact a raw record evidences into the
// instance: the kind is marked present and the record's source is added
// to the kind's provenance set. Merging the same record twice is a no-op
// beyond the first merge; sources are a set, not a counter.
func MergeArtifact(inst *MeetingInstance, rec RawRecord) {
	p, ok := inst.Artifacts[rec.ArtifactKind]
	if !ok {
		p = &ArtifactPresence{Sources: make(map[Source]struct{})}
		inst.Artifacts[rec.ArtifactKind] = p
	}
	p.Present = true
	p.Sources[rec.Source] = struct{}{}
}
