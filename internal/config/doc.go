// Package config loads, normalizes, and validates foxcap configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the FOXCAP_USER_AGENT environment
// fallback. The Config type centralizes every knob the CLI and pipelines need
// so the output tree, catalog database, and caption host are discovered in one
// pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
