package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ourassistants/checkinsync/internal/engine"
)

// Config is the full application configuration: which sources to scan,
// who the meetings are with, engine tuning, and where state and reports
// live. Values resolve in order: defaults, then the YAML file, then
// CHECKINSYNC_* environment variables.
type Config struct {
	// Account is the Google account name used for token lookup.
	Account string `yaml:"account"`

	Sources SourcesConfig `yaml:"sources"`
	People  PeopleConfig  `yaml:"people"`
	Engine  EngineConfig  `yaml:"engine"`
	Storage StorageConfig `yaml:"storage"`
}

// SourcesConfig toggles and targets the four record sources.
type SourcesConfig struct {
	Calendar CalendarSource `yaml:"calendar"`
	Drive    DriveSource    `yaml:"drive"`
	Local    LocalSource    `yaml:"local"`
	Sheet    SheetSource    `yaml:"sheet"`
}

// CalendarSource configures the Google Calendar adapter.
type CalendarSource struct {
	Enabled    bool   `yaml:"enabled"`
	CalendarID string `yaml:"calendar_id"`
}

// DriveSource configures the Google Drive recordings-folder adapter.
type DriveSource struct {
	Enabled  bool   `yaml:"enabled"`
	FolderID string `yaml:"folder_id"`
}

// LocalSource configures the local filesystem scan.
type LocalSource struct {
	Enabled        bool   `yaml:"enabled"`
	RecordingsDir  string `yaml:"recordings_dir"`
	TranscriptsDir string `yaml:"transcripts_dir"`
}

// SheetSource configures the tracking-spreadsheet CSV reader.
type SheetSource struct {
	Enabled bool   `yaml:"enabled"`
	Path    string `yaml:"path"`
}

// PeopleConfig carries the names and keywords used to filter calendar
// events down to check-in meetings.
type PeopleConfig struct {
	HRNames  []string `yaml:"hr_names"`
	Keywords []string `yaml:"keywords"`
}

// EngineConfig mirrors engine.Config with YAML-friendly artifact names.
type EngineConfig struct {
	ExactDateRequired        bool     `yaml:"exact_date_required"`
	HighConfidenceSimilarity float64  `yaml:"high_confidence_similarity"`
	LowConfidenceSimilarity  float64  `yaml:"low_confidence_similarity"`
	RequiredArtifacts        []string `yaml:"required_artifacts"`
}

// StorageConfig locates the seen-record database and the report output
// directory.
type StorageConfig struct {
	SeenDBPath string `yaml:"seen_db_path"`
	OutputDir  string `yaml:"output_dir"`
}

// DefaultConfigPath returns the conventional config file location.
func DefaultConfigPath() string {
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".checkinsync", "config.yaml")
}

// Default returns the built-in configuration: calendar and local scan
// enabled, drive and spreadsheet off until pointed at a target.
func Default() Config {
	ec := engine.DefaultConfig()
	home, _ := os.UserHomeDir()
	return Config{
		Account: "default",
		Sources: SourcesConfig{
			Calendar: CalendarSource{Enabled: true, CalendarID: "primary"},
			Drive:    DriveSource{Enabled: false},
			Local: LocalSource{
				Enabled:        true,
				RecordingsDir:  "recordings",
				TranscriptsDir: "transcripts",
			},
			Sheet: SheetSource{Enabled: false},
		},
		People: PeopleConfig{
			Keywords: []string{"check-in", "checkin", "check in", "catch up", "1:1"},
		},
		Engine: EngineConfig{
			ExactDateRequired:        ec.ExactDateRequired,
			HighConfidenceSimilarity: ec.HighConfidenceSimilarity,
			LowConfidenceSimilarity:  ec.LowConfidenceSimilarity,
			RequiredArtifacts:        artifactNames(ec.RequiredArtifacts),
		},
		Storage: StorageConfig{
			SeenDBPath: filepath.Join(home, ".checkinsync", "seen.db"),
			OutputDir:  "reports",
		},
	}
}

// Load resolves the configuration from path. A missing file is not an
// error: defaults plus environment overrides apply. An unreadable or
// malformed file is.
func Load(path string) (Config, error) {
	cfg := Default()

	path = strings.TrimSpace(path)
	if path == "" {
		path = DefaultConfigPath()
	}

	b, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			return cfg, fmt.Errorf("reading %s: %w", path, err)
		}
	} else if err := yaml.Unmarshal(b, &cfg); err != nil {
		return cfg, fmt.Errorf("parsing %s: %w", path, err)
	}

	applyEnv(&cfg.Account, "CHECKINSYNC_ACCOUNT")
	applyEnv(&cfg.Sources.Calendar.CalendarID, "CHECKINSYNC_CALENDAR_ID")
	applyEnv(&cfg.Sources.Drive.FolderID, "CHECKINSYNC_DRIVE_FOLDER_ID")
	applyEnv(&cfg.Sources.Local.RecordingsDir, "CHECKINSYNC_RECORDINGS_DIR")
	applyEnv(&cfg.Sources.Local.TranscriptsDir, "CHECKINSYNC_TRANSCRIPTS_DIR")
	applyEnv(&cfg.Sources.Sheet.Path, "CHECKINSYNC_SHEET_PATH")
	applyEnv(&cfg.Storage.SeenDBPath, "CHECKINSYNC_SEEN_DB")
	applyEnv(&cfg.Storage.OutputDir, "CHECKINSYNC_OUTPUT_DIR")

	cfg.Sources.Local.RecordingsDir = expandUserPath(cfg.Sources.Local.RecordingsDir)
	cfg.Sources.Local.TranscriptsDir = expandUserPath(cfg.Sources.Local.TranscriptsDir)
	cfg.Sources.Sheet.Path = expandUserPath(cfg.Sources.Sheet.Path)
	cfg.Storage.SeenDBPath = expandUserPath(cfg.Storage.SeenDBPath)
	cfg.Storage.OutputDir = expandUserPath(cfg.Storage.OutputDir)

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}

	return cfg, nil
}

// Validate checks that every enabled source has its target set and that
// the engine section translates cleanly.
func (c Config) Validate() error {
	if c.Sources.Calendar.Enabled && strings.TrimSpace(c.Sources.Calendar.CalendarID) == "" {
		return fmt.Errorf("sources.calendar.calendar_id is required when the calendar source is enabled")
	}
	if c.Sources.Drive.Enabled && strings.TrimSpace(c.Sources.Drive.FolderID) == "" {
		return fmt.Errorf("sources.drive.folder_id is required when the drive source is enabled")
	}
	if c.Sources.Local.Enabled &&
		strings.TrimSpace(c.Sources.Local.RecordingsDir) == "" &&
		strings.TrimSpace(c.Sources.Local.TranscriptsDir) == "" {
		return fmt.Errorf("sources.local needs recordings_dir or transcripts_dir when enabled")
	}
	if c.Sources.Sheet.Enabled && strings.TrimSpace(c.Sources.Sheet.Path) == "" {
		return fmt.Errorf("sources.sheet.path is required when the spreadsheet source is enabled")
	}

	ec, err := c.EngineConfig()
	if err != nil {
		return err
	}
	return ec.Validate()
}

// EngineConfig translates the YAML engine section into engine.Config.
func (c Config) EngineConfig() (engine.Config, error) {
	kinds, err := parseArtifactKinds(c.Engine.RequiredArtifacts)
	if err != nil {
		return engine.Config{}, err
	}
	return engine.Config{
		ExactDateRequired:        c.Engine.ExactDateRequired,
		HighConfidenceSimilarity: c.Engine.HighConfidenceSimilarity,
		LowConfidenceSimilarity:  c.Engine.LowConfidenceSimilarity,
		RequiredArtifacts:        kinds,
	}, nil
}

func parseArtifactKinds(names []string) ([]engine.ArtifactKind, error) {
	kinds := make([]engine.ArtifactKind, 0, len(names))
	for _, name := range names {
		kind, err := parseArtifactKind(name)
		if err != nil {
			return nil, err
		}
		kinds = append(kinds, kind)
	}
	return kinds, nil
}

func parseArtifactKind(name string) (engine.ArtifactKind, error) {
	for _, k := range engine.AllArtifactKinds() {
		if strings.EqualFold(strings.TrimSpace(name), k.String()) {
			return k, nil
		}
	}
	return 0, fmt.Errorf("unknown artifact kind %q", name)
}

func artifactNames(kinds []engine.ArtifactKind) []string {
	names := make([]string, 0, len(kinds))
	for _, k := range kinds {
		names = append(names, k.String())
	}
	return names
}

func applyEnv(dst *string, envKey string) {
	if v := strings.TrimSpace(os.Getenv(envKey)); v != "" {
		*dst = v
	}
}

func expandUserPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err == nil {
			return filepath.Join(home, path[2:])
		}
	}
	return path
}
