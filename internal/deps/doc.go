// Package deps reports whether the external binaries mkvtrack shells out to
// are installed, and which version they identify as.
package deps
