package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"pigeonhole/internal/config"
)

func TestLoadDefaultsWithoutConfigFile(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cfg, resolved, exists, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if resolved == "" {
		t.Fatal("expected resolved path")
	}
	if exists {
		t.Fatal("expected config file to be absent in temp HOME")
	}

	wantLogs := filepath.Join(tempHome, ".local", "share", "pigeonhole", "logs")
	if cfg.Paths.LogDir != wantLogs {
		t.Fatalf("unexpected log dir: got %q want %q", cfg.Paths.LogDir, wantLogs)
	}
	wantState := filepath.Join(tempHome, ".local", "share", "pigeonhole", "state")
	if cfg.Paths.StateDir != wantState {
		t.Fatalf("unexpected state dir: got %q want %q", cfg.Paths.StateDir, wantState)
	}
	if cfg.Paths.DefaultSource != "" {
		t.Fatalf("expected no default source, got %q", cfg.Paths.DefaultSource)
	}
	if !cfg.Scan.IncludeHidden {
		t.Fatal("expected hidden files included by default")
	}
	if cfg.Preview.Sample != 3 {
		t.Fatalf("unexpected preview sample: %d", cfg.Preview.Sample)
	}
	if cfg.Organize.AssumeYes {
		t.Fatal("expected confirmation required by default")
	}
	if !cfg.Organize.VerifyCopies {
		t.Fatal("expected copy verification enabled by default")
	}
	if cfg.Logging.Format != "console" || cfg.Logging.Level != "info" {
		t.Fatalf("unexpected logging defaults: %+v", cfg.Logging)
	}
	if cfg.Logging.RetentionDays != 60 {
		t.Fatalf("unexpected retention: %d", cfg.Logging.RetentionDays)
	}
}

func TestLoadReadsFileAndExpandsPaths(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[paths]
log_dir = "~/logs"
default_source = "~/incoming"

[scan]
exclude = ["*.tmp", "  "]
include_hidden = false

[preview]
sample = 5

[organize]
assume_yes = true

[logging]
level = "debug"
format = "json"
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected config file to exist")
	}
	if resolved != path {
		t.Fatalf("resolved path = %q, want %q", resolved, path)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, "logs") {
		t.Fatalf("log dir not expanded: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.DefaultSource != filepath.Join(tempHome, "incoming") {
		t.Fatalf("default source not expanded: %q", cfg.Paths.DefaultSource)
	}
	if len(cfg.Scan.Exclude) != 1 || cfg.Scan.Exclude[0] != "*.tmp" {
		t.Fatalf("expected blank exclude entries dropped, got %v", cfg.Scan.Exclude)
	}
	if cfg.Scan.IncludeHidden {
		t.Fatal("expected include_hidden false from file")
	}
	if cfg.Preview.Sample != 5 {
		t.Fatalf("unexpected sample: %d", cfg.Preview.Sample)
	}
	if !cfg.Organize.AssumeYes {
		t.Fatal("expected assume_yes true from file")
	}
	if cfg.Logging.Level != "debug" || cfg.Logging.Format != "json" {
		t.Fatalf("unexpected logging: %+v", cfg.Logging)
	}
}

func TestLoadDefaultSourceFromEnv(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)
	t.Setenv("PIGEONHOLE_SOURCE", "~/from-env")

	cfg, _, _, err := config.Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Paths.DefaultSource != filepath.Join(tempHome, "from-env") {
		t.Fatalf("expected env default source, got %q", cfg.Paths.DefaultSource)
	}
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	cases := []struct {
		name string
		body string
		want string
	}{
		{
			name: "bad level",
			body: "[logging]\nlevel = \"loud\"\n",
			want: "logging.level",
		},
		{
			name: "bad format",
			body: "[logging]\nformat = \"yaml\"\n",
			want: "logging.format",
		},
		{
			name: "negative sample",
			body: "[preview]\nsample = -1\n",
			want: "preview.sample",
		},
		{
			name: "bad exclude pattern",
			body: "[scan]\nexclude = [\"[\"]\n",
			want: "scan.exclude",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			if err := os.WriteFile(path, []byte(tc.body), 0o644); err != nil {
				t.Fatalf("write config: %v", err)
			}
			_, _, _, err := config.Load(path)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("error %q does not mention %q", err, tc.want)
			}
		})
	}
}

func TestCreateSampleRoundTrips(t *testing.T) {
	tempHome := t.TempDir()
	t.Setenv("HOME", tempHome)

	path := filepath.Join(t.TempDir(), "nested", "config.toml")
	if err := config.CreateSample(path); err != nil {
		t.Fatalf("CreateSample returned error: %v", err)
	}

	cfg, _, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load of sample returned error: %v", err)
	}
	if !exists {
		t.Fatal("expected sample config to exist")
	}
	if cfg.Preview.Sample != config.Default().Preview.Sample {
		t.Fatalf("sample config changed defaults: %+v", cfg.Preview)
	}
}

func TestEnsureDirectories(t *testing.T) {
	base := t.TempDir()
	cfg := config.Default()
	cfg.Paths.LogDir = filepath.Join(base, "logs")
	cfg.Paths.StateDir = filepath.Join(base, "state")

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories returned error: %v", err)
	}
	for _, dir := range []string{cfg.Paths.LogDir, cfg.Paths.StateDir} {
		info, err := os.Stat(dir)
		if err != nil || !info.IsDir() {
			t.Fatalf("expected directory %s, err=%v", dir, err)
		}
	}
}
