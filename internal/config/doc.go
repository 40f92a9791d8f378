// Package config loads, normalizes, and validates judgeboot configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// JUDGEBOOT_VOCABULARY. The Config type centralizes every knob the pipeline
// and CLI need, so input/output roots, the vocabulary list, and bootstrap
// parameters are discovered in one pass.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical log formats, and clear validation errors.
package config
