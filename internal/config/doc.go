// Package config loads the checkinsync configuration from a YAML file
// with environment-variable overrides.
//
// Resolution order is: built-in defaults, then the config file
// (~/.checkinsync/config.yaml unless a path is given), then
// CHECKINSYNC_* environment variables. A missing config file is fine;
// a malformed one is an error.
package config
