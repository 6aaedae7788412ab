// Package track models one media track headed for an mkvmerge mux.
//
// A Track is either a standalone track file or one track inside a
// multi-track container. Identity (file path and track id) is always backed
// by a successful mkvmerge identification: constructing a Track, changing its
// file or changing its track id re-probes the file and re-derives the codec
// and track type. User metadata (name, language, tags file) is validated at
// assignment time, and the mux flags are plain fields consumed by whatever
// assembles the final mkvmerge command.
//
// Every rejected mutation leaves the Track exactly as it was and returns a
// *ValidationError that matches one of the exported sentinels with
// errors.Is. A Track holds no open resources and is not safe for concurrent
// mutation.
package track
