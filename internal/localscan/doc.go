// Package localscan walks local recording and transcript directories and
// maps their files to raw meeting records.
//
// The layout mirrors how meeting tools export sessions: recordings either
// sit directly in the recordings directory or one folder deep, transcripts
// sit flat. File names prefixed with a YYYYMMDD_HHMMSS_ stamp supply a
// date hint; the file modification time becomes the source timestamp.
//
// A caller-supplied SeenSet filters out files from previous runs, so
// repeated scans stay incremental.
package localscan
