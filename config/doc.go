// Package config provides configuration loading and validation for the
// desktop host.
//
// It uses Viper to load an optional config.yml plus environment variables,
// and godotenv to pick up a local .env file. The SEEKJOB_* environment
// variables documented in the README always win over file values, matching
// the contract the packaged application ships with.
package config
