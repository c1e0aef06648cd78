// Package config loads, normalizes, and validates shodan configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours environment fallbacks such as
// OMDB_API_KEY. The Config type centralizes every knob the CLI needs: where
// the canon document and archive live, how the metadata lookup client
// behaves, which weighting policies are active, and how logs are written.
//
// Always obtain settings through this package so downstream code receives
// sanitized paths, canonical policy names, and clear validation errors.
package config
