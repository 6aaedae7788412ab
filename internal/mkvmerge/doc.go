// Package mkvmerge provides a typed wrapper around mkvmerge's JSON
// identification output (`mkvmerge -J <file>`).
//
// Key types:
//   - Identification: parsed identification payload (container, tracks, errors)
//   - Track: one entry of the track inventory with codec, type and properties
//   - Client: runs the mkvmerge binary through an injectable Executor
//
// Primary entry points:
//   - Client.Identify: full track inventory for a file
//   - Client.Supported: lightweight "can mkvmerge read this" check
//   - Parse: decode raw identification JSON
package mkvmerge
