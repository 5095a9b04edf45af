package config

import (
	"fmt"
	"time"

	"github.com/seekjob/desktophost/logger"
)

// DefaultBinaryName is the file name of the bundled backend executable.
const DefaultBinaryName = "seekjob-backend"

// Settings is the root configuration for the desktop host.
type Settings struct {
	Name        string `yaml:"name" mapstructure:"name"`
	Environment string `yaml:"environment" mapstructure:"environment" validate:"oneof=development staging production"`
	Version     string `yaml:"version" mapstructure:"version"`
	Debug       bool   `yaml:"debug" mapstructure:"debug"`

	Logging   logger.Config   `yaml:"logging" mapstructure:"logging"`
	Backend   BackendConfig   `yaml:"backend" mapstructure:"backend"`
	Telemetry TelemetryConfig `yaml:"telemetry" mapstructure:"telemetry"`
}

// BackendConfig configures how the supervised backend is located, launched,
// and probed.
type BackendConfig struct {
	// BinaryName is the expected file name of the bundled backend executable.
	BinaryName string `yaml:"binary_name" mapstructure:"binary_name" validate:"required"`
	// BinOverride points directly at a backend executable (SEEKJOB_BACKEND_BIN).
	BinOverride string `yaml:"bin_override" mapstructure:"bin_override"`
	// DevInterpreter and DevScript name an interpreter and entry script used
	// together in development mode (SEEKJOB_BACKEND_DEV_PYTHON/_SCRIPT).
	DevInterpreter string `yaml:"dev_interpreter" mapstructure:"dev_interpreter"`
	DevScript      string `yaml:"dev_script" mapstructure:"dev_script"`
	// DataDirOverride replaces the host-resolved data directory
	// (SEEKJOB_DATA_DIR_OVERRIDE).
	DataDirOverride string `yaml:"data_dir_override" mapstructure:"data_dir_override"`
	// LegacyDBPath is an optional hint at a pre-existing database file
	// (SEEKJOB_LEGACY_DB_PATH). Passed to the child only if the file exists.
	LegacyDBPath string `yaml:"legacy_db_path" mapstructure:"legacy_db_path"`
	// LegacyDBCandidates are additional known locations of legacy databases,
	// checked in order when no hint resolves.
	LegacyDBCandidates []string `yaml:"legacy_db_candidates" mapstructure:"legacy_db_candidates"`
	// ProbeInterval is the delay between health probe attempts.
	ProbeInterval time.Duration `yaml:"probe_interval" mapstructure:"probe_interval" validate:"gt=0"`
	// ReadyTimeout is the ceiling on how long the host blocks waiting for
	// the backend to become healthy.
	ReadyTimeout time.Duration `yaml:"ready_timeout" mapstructure:"ready_timeout" validate:"gt=0"`
}

// TelemetryConfig configures optional OTLP export of host telemetry.
type TelemetryConfig struct {
	Enabled  bool          `yaml:"enabled" mapstructure:"enabled"`
	Endpoint string        `yaml:"endpoint" mapstructure:"endpoint"`
	Insecure bool          `yaml:"insecure" mapstructure:"insecure"`
	Interval time.Duration `yaml:"interval" mapstructure:"interval"`
}

// ApplyDefaults applies default values to the settings.
func (s *Settings) ApplyDefaults() {
	if s.Name == "" {
		s.Name = "seekjob-desktop-host"
	}
	if s.Environment == "" {
		s.Environment = "development"
	}
	if s.Environment == "development" {
		s.Debug = true
	}
	if s.Backend.BinaryName == "" {
		s.Backend.BinaryName = DefaultBinaryName
	}
	if s.Backend.ProbeInterval == 0 {
		s.Backend.ProbeInterval = 300 * time.Millisecond
	}
	if s.Backend.ReadyTimeout == 0 {
		s.Backend.ReadyTimeout = 70 * time.Second
	}
	if s.Telemetry.Endpoint == "" {
		s.Telemetry.Endpoint = "localhost:4318"
		s.Telemetry.Insecure = true
	}
	if s.Telemetry.Interval == 0 {
		s.Telemetry.Interval = 15 * time.Second
	}
	s.Logging.ApplyDefaults()
}

// Validate validates the settings.
func (s *Settings) Validate() error {
	if err := validateStruct(s); err != nil {
		return err
	}
	if err := s.Logging.Validate(); err != nil {
		return fmt.Errorf("config.logging: %w", err)
	}
	// The dev pair is all-or-nothing: a lone interpreter or script is a
	// misconfiguration, not a fallback.
	if (s.Backend.DevInterpreter == "") != (s.Backend.DevScript == "") {
		return fmt.Errorf("config.backend: dev_interpreter and dev_script must be set together")
	}
	return nil
}

// DevMode reports whether development-only resolution strategies are allowed.
func (s *Settings) DevMode() bool {
	return s.Environment == "development"
}
