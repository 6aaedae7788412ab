// Package testsupport provides helpers shared by package tests: temp-rooted
// configs, fixture media files, and a shell stub standing in for mkvmerge.
//
// The stub is a POSIX shell script, so callers skip on Windows.
package testsupport
