// Package config loads, normalizes, and validates prewarm configuration
// data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and keeps every preload budget in one
// place: blocking and total deadlines, per-asset timeouts, worker counts,
// critical-set caps, and the discovery allow-list.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths and clear validation errors.
package config
