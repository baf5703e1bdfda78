// Package config loads, normalizes, and validates pigeonhole configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// PIGEONHOLE_SOURCE. The Config type centralizes every knob the CLI needs,
// so the default source directory, log routing, and scan filters are
// discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
