// Package config loads, normalizes, and validates tgrid configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), and reads TOML files. Praat preferences (tool path, launch
// script, companion sound extensions) and the state directory for the
// project database live here so downstream code receives sanitized paths
// and canonical values in one pass.
package config
