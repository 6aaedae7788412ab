package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pelletier/go-toml/v2"

	"mkvtrack/internal/config"
)

func TestLoadDefaultConfigWhenAbsent(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvMkvmergeBinary, "")
	t.Chdir(t.TempDir())

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}
	want := filepath.Join(tempHome, ".config", "mkvtrack", "config.toml")
	if resolved != want {
		t.Fatalf("unexpected resolved path: got %q want %q", resolved, want)
	}
	if cfg.MkvmergeBinary() != "mkvmerge" {
		t.Fatalf("unexpected binary: %q", cfg.MkvmergeBinary())
	}
	if cfg.ProbeTimeout() != 30*time.Second {
		t.Fatalf("unexpected probe timeout: %s", cfg.ProbeTimeout())
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Defaults.Language != "" {
		t.Fatalf("expected no default language, got %q", cfg.Defaults.Language)
	}
}

func TestLoadProjectConfig(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv(config.EnvMkvmergeBinary, "")
	dir := t.TempDir()
	t.Chdir(dir)

	if err := os.WriteFile("mkvtrack.toml", []byte("[defaults]\nlanguage = \"fre\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected project config to be found")
	}
	if filepath.Base(resolved) != "mkvtrack.toml" {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.Defaults.Language != "fre" {
		t.Fatalf("unexpected default language %q", cfg.Defaults.Language)
	}
}

func TestLoadCustomPath(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv(config.EnvMkvmergeBinary, "")

	configPath := filepath.Join(t.TempDir(), "custom.toml")
	content := `[mkvmerge]
binary = "  /opt/mkvtoolnix/mkvmerge  "
timeout_seconds = 0

[logging]
format = "JSON"
level = "Warning"
dir = "~/logs"
`
	if err := os.WriteFile(configPath, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != configPath {
		t.Fatalf("unexpected resolution: %q exists=%v", resolved, exists)
	}
	if cfg.Mkvmerge.Binary != "/opt/mkvtoolnix/mkvmerge" {
		t.Fatalf("expected trimmed binary, got %q", cfg.Mkvmerge.Binary)
	}
	if cfg.ProbeTimeout() != 0 {
		t.Fatalf("expected disabled timeout, got %s", cfg.ProbeTimeout())
	}
	if cfg.Logging.Format != "json" {
		t.Fatalf("expected json format, got %q", cfg.Logging.Format)
	}
	if cfg.Logging.Level != "warn" {
		t.Fatalf("expected warn level, got %q", cfg.Logging.Level)
	}
	if cfg.Logging.Dir != filepath.Join(tempHome, "logs") {
		t.Fatalf("expected expanded log dir, got %q", cfg.Logging.Dir)
	}
}

func TestLoadMissingCustomPathUsesDefaults(t *testing.T) {
	t.Setenv(config.EnvMkvmergeBinary, "")
	missing := filepath.Join(t.TempDir(), "nope.toml")

	cfg, resolved, exists, err := config.Load(missing)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if exists {
		t.Fatal("expected missing config")
	}
	if resolved != missing {
		t.Fatalf("unexpected resolved path %q", resolved)
	}
	if cfg.MkvmergeBinary() != "mkvmerge" {
		t.Fatalf("unexpected binary %q", cfg.MkvmergeBinary())
	}
}

func TestEnvOverridesConfiguredBinary(t *testing.T) {
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[mkvmerge]\nbinary = \"from-file\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	t.Setenv(config.EnvMkvmergeBinary, "from-env")

	cfg, _, _, err := config.Load(configPath)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MkvmergeBinary() != "from-env" {
		t.Fatalf("expected env override, got %q", cfg.MkvmergeBinary())
	}
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	t.Setenv(config.EnvMkvmergeBinary, "")
	configPath := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(configPath, []byte("[mkvmerge]\nbinray = \"x\"\n"), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, _, _, err := config.Load(configPath); err == nil {
		t.Fatal("expected unknown key to be rejected")
	}
}

func TestCreateSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "sample.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample failed: %v", err)
	}

	contents, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(contents), "[mkvmerge]") {
		t.Fatalf("sample config missing mkvmerge section: %s", contents)
	}

	var cfg config.Config
	if err := toml.Unmarshal(contents, &cfg); err != nil {
		t.Fatalf("unmarshal sample: %v", err)
	}
	if cfg.Mkvmerge.Binary != "mkvmerge" {
		t.Fatalf("unexpected sample binary %q", cfg.Mkvmerge.Binary)
	}
	if cfg.Mkvmerge.TimeoutSeconds != config.Default().Mkvmerge.TimeoutSeconds {
		t.Fatalf("sample timeout %d differs from default", cfg.Mkvmerge.TimeoutSeconds)
	}
}

func TestValidateDetectsInvalidValues(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*config.Config)
		want   string
	}{
		{
			name:   "negative timeout",
			mutate: func(c *config.Config) { c.Mkvmerge.TimeoutSeconds = -1 },
			want:   "timeout_seconds",
		},
		{
			name:   "empty binary",
			mutate: func(c *config.Config) { c.Mkvmerge.Binary = "" },
			want:   "mkvmerge.binary",
		},
		{
			name:   "unknown format",
			mutate: func(c *config.Config) { c.Logging.Format = "xml" },
			want:   "logging.format",
		},
		{
			name:   "unknown level",
			mutate: func(c *config.Config) { c.Logging.Level = "trace" },
			want:   "logging.level",
		},
		{
			name:   "invalid default language",
			mutate: func(c *config.Config) { c.Defaults.Language = "xyz" },
			want:   "defaults.language",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Fatalf("expected error mentioning %q, got %v", tt.want, err)
			}
		})
	}
}

func TestDefaultValidates(t *testing.T) {
	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config invalid: %v", err)
	}
}
