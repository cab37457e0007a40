// Package config loads, normalizes, and validates relink configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// RELINK_CATALOG. The Config type centralizes every knob the CLI needs:
// catalog location, record database path, report and plan directories, and
// the matching thresholds.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
