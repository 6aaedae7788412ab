package track

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
)

var (
	ErrUnsupportedFile      = errors.New("unsupported file")
	ErrTrackIndexOutOfRange = errors.New("track index out of range")
	ErrInvalidLanguage      = errors.New("invalid language code")
	ErrInvalidType          = errors.New("invalid value")
	ErrFileNotFound         = errors.New("file not found")
)

// ValidationError reports a rejected construction or mutation. Kind is one
// of the exported sentinels; Value holds the offending path, index or code.
type ValidationError struct {
	Kind   error
	Field  string
	Value  string
	Detail string
	Err    error
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, 4)
	if field := strings.TrimSpace(e.Field); field != "" {
		parts = append(parts, fmt.Sprintf("track %s %q", field, e.Value))
	}
	if e.Kind != nil {
		parts = append(parts, e.Kind.Error())
	}
	if detail := strings.TrimSpace(e.Detail); detail != "" {
		parts = append(parts, detail)
	}
	if e.Err != nil {
		parts = append(parts, e.Err.Error())
	}
	if len(parts) == 0 {
		return "track validation failed"
	}
	return strings.Join(parts, ": ")
}

// Is matches the sentinel Kind. ErrFileNotFound also matches fs.ErrNotExist.
func (e *ValidationError) Is(target error) bool {
	if e.Kind != nil && target == e.Kind {
		return true
	}
	return e.Kind == ErrFileNotFound && target == fs.ErrNotExist
}

func (e *ValidationError) Unwrap() error { return e.Err }

func reject(kind error, field, value, detail string, err error) error {
	return &ValidationError{Kind: kind, Field: field, Value: value, Detail: detail, Err: err}
}
