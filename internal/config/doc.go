// Package config loads, normalizes, and validates mkvtrack configuration data.
//
// It supplies repository defaults, expands user paths (including tilde
// shortcuts), reads TOML files, and honours the MKVTRACK_MKVMERGE environment
// fallback for the mkvmerge binary. The core track package never reads
// configuration directly; the CLI translates Config values into options.
package config
