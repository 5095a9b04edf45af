package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// envBindings maps the documented SEEKJOB_* environment variables onto
// config keys. These always win over file values.
var envBindings = map[string]string{
	"environment":               "SEEKJOB_ENVIRONMENT",
	"backend.binary_name":       "SEEKJOB_BACKEND_NAME",
	"backend.bin_override":      "SEEKJOB_BACKEND_BIN",
	"backend.dev_interpreter":   "SEEKJOB_BACKEND_DEV_PYTHON",
	"backend.dev_script":        "SEEKJOB_BACKEND_DEV_SCRIPT",
	"backend.data_dir_override": "SEEKJOB_DATA_DIR_OVERRIDE",
	"backend.legacy_db_path":    "SEEKJOB_LEGACY_DB_PATH",
	"backend.probe_interval":    "SEEKJOB_PROBE_INTERVAL",
	"backend.ready_timeout":     "SEEKJOB_READY_TIMEOUT",
	"telemetry.enabled":         "SEEKJOB_TELEMETRY_ENABLED",
	"telemetry.endpoint":        "SEEKJOB_TELEMETRY_ENDPOINT",
	"logging.level":             "SEEKJOB_LOG_LEVEL",
	"logging.format":            "SEEKJOB_LOG_FORMAT",
}

// LoaderOption customizes Load.
type LoaderOption func(*loaderConfig)

type loaderConfig struct {
	configFile string
	envFile    string
}

// WithConfigFile sets an explicit config file path.
func WithConfigFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.configFile = path }
}

// WithEnvFile sets an explicit .env file path.
func WithEnvFile(path string) LoaderOption {
	return func(lc *loaderConfig) { lc.envFile = path }
}

// Load builds Settings from (in increasing precedence) defaults, an optional
// config.yml, an optional .env file, and SEEKJOB_* environment variables.
// The returned Settings have defaults applied and are validated.
func Load(opts ...LoaderOption) (*Settings, error) {
	var lc loaderConfig
	for _, opt := range opts {
		opt(&lc)
	}

	if lc.envFile == "" {
		lc.envFile = findFirst(".env.seekjob", ".env")
	}
	if lc.envFile != "" {
		if err := godotenv.Load(lc.envFile); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load env file %s: %v\n", lc.envFile, err)
		}
	}

	v := viper.New()

	if lc.configFile == "" {
		lc.configFile = findFirst("./config.yml", "./config/config.yml")
	}
	if lc.configFile != "" {
		v.SetConfigFile(lc.configFile)
		if err := v.ReadInConfig(); err != nil {
			fmt.Fprintf(os.Stderr, "[config] warning: failed to load config file %s: %v\n", lc.configFile, err)
		}
	}

	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("binding %s: %w", env, err)
		}
	}

	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}

	s.ApplyDefaults()
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// findFirst returns the first existing path, or "".
func findFirst(paths ...string) string {
	for _, p := range paths {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}
