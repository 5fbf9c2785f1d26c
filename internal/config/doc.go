// Package config loads, normalizes, and validates crunchlist configuration.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, loads a local .env file, and honours
// environment overrides such as CRUNCHLIST_DATA_DIR. The Config type gathers
// every knob the CLI needs so the store, backup, and logging layers discover
// their directories in one pass.
//
// Always obtain settings through this package so downstream code receives
// expanded paths, canonical sort and status values, and clear validation
// errors.
package config
