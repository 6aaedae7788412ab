// Package fileutil holds the path helpers shared by the track descriptor,
// the mkvmerge prober and configuration loading.
package fileutil

import (
	"fmt"
	"os"
	"os/user"
	"path/filepath"
	"strings"
)

// ExpandUser replaces a leading "~" or "~name" with the matching home
// directory. Paths without a tilde prefix are returned unchanged, and so is
// "~name" when the user does not exist.
func ExpandUser(path string) (string, error) {
	if !strings.HasPrefix(path, "~") {
		return path, nil
	}
	rest := path[1:]
	name := rest
	tail := ""
	if idx := strings.IndexAny(rest, `/\`); idx >= 0 {
		name = rest[:idx]
		tail = rest[idx+1:]
	}

	var home string
	if name == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home directory: %w", err)
		}
		home = dir
	} else {
		u, err := user.Lookup(name)
		if err != nil {
			return path, nil
		}
		home = u.HomeDir
	}
	if tail == "" {
		return home, nil
	}
	return filepath.Join(home, tail), nil
}

// ExpandAbs expands a tilde prefix and returns the cleaned absolute path.
func ExpandAbs(path string) (string, error) {
	if path == "" {
		return path, nil
	}
	expanded, err := ExpandUser(path)
	if err != nil {
		return "", err
	}
	cleaned := filepath.Clean(expanded)
	absolute, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path for %q: %w", cleaned, err)
	}
	return absolute, nil
}

// IsRegularFile reports whether path names an existing regular file,
// following symlinks. It never opens the file.
func IsRegularFile(path string) bool {
	if path == "" {
		return false
	}
	info, err := os.Stat(path)
	if err != nil {
		return false
	}
	return info.Mode().IsRegular()
}
