package localscan

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ourassistants/checkinsync/internal/engine"
)

type mapSeen map[string]bool

func (m mapSeen) Seen(id string) bool { return m[id] }

func writeFile(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte("data"), 0644))
}

func TestCollectRecordsFlatAndNested(t *testing.T) {
	recDir := t.TempDir()
	transDir := t.TempDir()

	writeFile(t, filepath.Join(recDir, "Louise x Joanne-20251204_123456.mp4"))
	writeFile(t, filepath.Join(recDir, "session1", "20251204_101500_Irvy.m4a"))
	writeFile(t, filepath.Join(recDir, "notes.pdf")) // not a recording
	writeFile(t, filepath.Join(transDir, "Louise x Joanne.vtt"))

	s := New(recDir, transDir)
	records, err := s.CollectRecords(nil)
	require.NoError(t, err)
	require.Len(t, records, 3)

	byID := map[string]engine.RawRecord{}
	for _, r := range records {
		byID[r.ID] = r
	}

	flat, ok := byID["local:"+filepath.Join(recDir, "Louise x Joanne-20251204_123456.mp4")]
	require.True(t, ok, "flat recording not found")
	assert.Equal(t, engine.SourceLocalFile, flat.Source)
	assert.Equal(t, engine.ArtifactRecording, flat.ArtifactKind)
	assert.Equal(t, int64(4), flat.SizeBytes)
	assert.False(t, flat.SourceTimestamp.IsZero())

	nested, ok := byID["local:"+filepath.Join(recDir, "session1", "20251204_101500_Irvy.m4a")]
	require.True(t, ok, "nested recording not found")
	assert.Equal(t, engine.NewDate(2025, time.December, 4), nested.ObservedDate)

	trans, ok := byID["local:"+filepath.Join(transDir, "Louise x Joanne.vtt")]
	require.True(t, ok, "transcript not found")
	assert.Equal(t, engine.ArtifactTranscript, trans.ArtifactKind)
	assert.True(t, trans.ObservedDate.IsZero())
}

func TestCollectRecordsHonorsSeenSet(t *testing.T) {
	recDir := t.TempDir()
	path := filepath.Join(recDir, "20251204_101500_Irvy.m4a")
	writeFile(t, path)

	s := New(recDir, "")

	records, err := s.CollectRecords(nil)
	require.NoError(t, err)
	require.Len(t, records, 1)

	seen := mapSeen{"local:" + path: true}
	records, err = s.CollectRecords(seen)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCollectRecordsMissingDirsSkipped(t *testing.T) {
	s := New(filepath.Join(t.TempDir(), "nope"), "")
	records, err := s.CollectRecords(nil)
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestHintDate(t *testing.T) {
	tests := []struct {
		name string
		want engine.Date
	}{
		{"20251204_101500_Irvy.m4a", engine.NewDate(2025, time.December, 4)},
		{"20251204_101500-Irvy.m4a", engine.NewDate(2025, time.December, 4)},
		{"Louise x Joanne.mp4", engine.Date{}},
		{"99999999_101500_Irvy.m4a", engine.Date{}},
		{"20251204_1015_Irvy.m4a", engine.Date{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, hintDate(tt.name), "hintDate(%q)", tt.name)
	}
}
