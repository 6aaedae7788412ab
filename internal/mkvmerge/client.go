package mkvmerge

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"mkvtrack/internal/fileutil"
)

// DefaultBinary is the mkvmerge executable resolved from PATH.
const DefaultBinary = "mkvmerge"

// exitWarnings is mkvmerge's exit status for "completed with warnings".
const exitWarnings = 1

// Executor abstracts command execution for testability. Implementations
// return the captured standard output; a non-zero exit is reported as a
// *RunError carrying the exit code.
type Executor interface {
	Run(ctx context.Context, binary string, args []string) ([]byte, error)
}

// RunError describes a command that ran but exited non-zero.
type RunError struct {
	ExitCode int
	Stderr   string
	Err      error
}

func (e *RunError) Error() string {
	msg := fmt.Sprintf("exit status %d", e.ExitCode)
	if e.Stderr != "" {
		msg += ": " + e.Stderr
	}
	return msg
}

func (e *RunError) Unwrap() error { return e.Err }

// Option configures the client.
type Option func(*Client)

// WithExecutor injects a custom executor (primarily for tests).
func WithExecutor(exec Executor) Option {
	return func(c *Client) {
		if exec != nil {
			c.exec = exec
		}
	}
}

// WithTimeout bounds every mkvmerge invocation. Zero disables the bound.
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		if timeout > 0 {
			c.timeout = timeout
		}
	}
}

// Client wraps mkvmerge identification calls.
type Client struct {
	binary  string
	timeout time.Duration
	exec    Executor
}

// New constructs a client for the given binary. An empty binary selects
// DefaultBinary.
func New(binary string, opts ...Option) *Client {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		binary = DefaultBinary
	}
	client := &Client{
		binary: binary,
		exec:   commandExecutor{},
	}
	for _, opt := range opts {
		opt(client)
	}
	return client
}

// Binary returns the executable this client invokes.
func (c *Client) Binary() string {
	return c.binary
}

// Identify runs `mkvmerge -J path` and decodes the track inventory.
func (c *Client) Identify(ctx context.Context, path string) (Identification, error) {
	if strings.TrimSpace(path) == "" {
		return Identification{}, fmt.Errorf("%w: empty path", ErrProbeFailed)
	}
	output, runErr := c.run(ctx, path)
	info, err := Parse(output)
	if runErr != nil && !isWarningExit(runErr) {
		if err != nil && len(info.Errors) > 0 {
			return Identification{}, fmt.Errorf("mkvmerge identify %s: %w", path, err)
		}
		return Identification{}, fmt.Errorf("%w: mkvmerge identify %s: %w", ErrProbeFailed, path, runErr)
	}
	if err != nil {
		return Identification{}, fmt.Errorf("mkvmerge identify %s: %w", path, err)
	}
	return info, nil
}

func isWarningExit(err error) bool {
	var runErr *RunError
	return errors.As(err, &runErr) && runErr.ExitCode == exitWarnings
}

// Supported reports whether mkvmerge can open path as a container or track
// source. A path that is not a regular file is rejected without running
// mkvmerge. An error is returned only when mkvmerge itself could not be run
// or produced no identification at all.
func (c *Client) Supported(ctx context.Context, path string) (bool, error) {
	if !fileutil.IsRegularFile(path) {
		return false, nil
	}
	output, runErr := c.run(ctx, path)
	var info Identification
	if err := json.Unmarshal(output, &info); err != nil {
		if runErr != nil {
			return false, fmt.Errorf("%w: mkvmerge identify %s: %w", ErrProbeFailed, path, runErr)
		}
		return false, fmt.Errorf("%w: parse identification: %w", ErrProbeFailed, err)
	}
	return info.Usable(), nil
}

func (c *Client) run(ctx context.Context, path string) ([]byte, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}
	return c.exec.Run(ctx, c.binary, []string{"-J", path})
}

type commandExecutor struct{}

func (commandExecutor) Run(ctx context.Context, binary string, args []string) ([]byte, error) {
	cmd := exec.CommandContext(ctx, binary, args...) //nolint:gosec
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			return stdout.Bytes(), &RunError{
				ExitCode: exitErr.ExitCode(),
				Stderr:   strings.TrimSpace(stderr.String()),
				Err:      err,
			}
		}
		return stdout.Bytes(), err
	}
	return stdout.Bytes(), nil
}
