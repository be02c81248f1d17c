// Package config loads, normalizes, and validates subtrans configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files (or YAML when the file ends in .yaml/.yml),
// and honours environment fallbacks such as SUBTRANS_LLM_API_KEY. Always
// obtain settings through this package so the CLI receives sanitized paths,
// canonical language codes, and clear validation errors.
package config
