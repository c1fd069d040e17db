package localscan

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/ourassistants/checkinsync/internal/engine"
)

// SeenSet reports whether a record identifier was already ingested in a
// previous run. Passing nil means nothing has been seen.
type SeenSet interface {
	Seen(id string) bool
}

// Scanner walks local recording and transcript directories and maps their
// files to raw meeting records. Either directory may be empty to skip it.
type Scanner struct {
	recordingsDir  string
	transcriptsDir string
}

// New creates a scanner over the given directories
func New(recordingsDir, transcriptsDir string) *Scanner {
	return &Scanner{
		recordingsDir:  recordingsDir,
		transcriptsDir: transcriptsDir,
	}
}

var recordingExts = map[string]bool{
	".mp4": true,
	".m4a": true,
	".wav": true,
}

var transcriptExts = map[string]bool{
	".vtt":  true,
	".txt":  true,
	".docx": true,
}

var hintStampRe = regexp.MustCompile(`^(\d{4})(\d{2})(\d{2})_\d{6}[_-]`)

// CollectRecords scans both directories. Recording files may sit one
// directory level below the recordings root, matching how meeting tools
// drop one folder per session. Records whose identifier is in the seen
// set are skipped.
func (s *Scanner) CollectRecords(seen SeenSet) ([]engine.RawRecord, error) {
	var records []engine.RawRecord

	recs, err := s.scanDir(s.recordingsDir, recordingExts, engine.ArtifactRecording, seen)
	if err != nil {
		return nil, err
	}
	records = append(records, recs...)

	trans, err := s.scanDir(s.transcriptsDir, transcriptExts, engine.ArtifactTranscript, seen)
	if err != nil {
		return nil, err
	}
	records = append(records, trans...)

	return records, nil
}

func (s *Scanner) scanDir(dir string, exts map[string]bool, kind engine.ArtifactKind, seen SeenSet) ([]engine.RawRecord, error) {
	if dir == "" {
		return nil, nil
	}

	entries, err := os.ReadDir(dir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read directory %s: %w", dir, err)
	}

	var records []engine.RawRecord
	for _, entry := range entries {
		if entry.IsDir() {
			// Session folders hold their files one level down.
			subdir := filepath.Join(dir, entry.Name())
			subEntries, err := os.ReadDir(subdir)
			if err != nil {
				return nil, fmt.Errorf("failed to read directory %s: %w", subdir, err)
			}
			for _, sub := range subEntries {
				if sub.IsDir() {
					continue
				}
				rec, ok, err := s.fileRecord(subdir, sub, exts, kind, seen)
				if err != nil {
					return nil, err
				}
				if ok {
					records = append(records, rec)
				}
			}
			continue
		}

		rec, ok, err := s.fileRecord(dir, entry, exts, kind, seen)
		if err != nil {
			return nil, err
		}
		if ok {
			records = append(records, rec)
		}
	}

	return records, nil
}

func (s *Scanner) fileRecord(dir string, entry os.DirEntry, exts map[string]bool, kind engine.ArtifactKind, seen SeenSet) (engine.RawRecord, bool, error) {
	name := entry.Name()
	if !exts[strings.ToLower(filepath.Ext(name))] {
		return engine.RawRecord{}, false, nil
	}

	id := "local:" + filepath.Join(dir, name)
	if seen != nil && seen.Seen(id) {
		return engine.RawRecord{}, false, nil
	}

	info, err := entry.Info()
	if err != nil {
		return engine.RawRecord{}, false, fmt.Errorf("failed to stat %s: %w", name, err)
	}

	return engine.RawRecord{
		ID:              id,
		Source:          engine.SourceLocalFile,
		ArtifactKind:    kind,
		RawText:         name,
		ObservedDate:    hintDate(name),
		SizeBytes:       info.Size(),
		SourceTimestamp: info.ModTime().UTC(),
	}, true, nil
}

// hintDate parses a leading YYYYMMDD_HHMMSS_ stamp into a date hint.
// Returns the zero date when the name carries no valid stamp.
func hintDate(name string) engine.Date {
	m := hintStampRe.FindStringSubmatch(name)
	if m == nil {
		return engine.Date{}
	}
	year, _ := strconv.Atoi(m[1])
	month, _ := strconv.Atoi(m[2])
	day, _ := strconv.Atoi(m[3])
	d := engine.NewDate(year, time.Month(month), day)
	if !d.Valid() {
		return engine.Date{}
	}
	return d
}
