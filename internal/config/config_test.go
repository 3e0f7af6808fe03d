package config_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"slaved/internal/config"
)

func TestLoadDefaultsAndExpandsPaths(t *testing.T) {
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

	wantWork := filepath.Join(tempHome, ".local", "share", "slaved", "work")
	if cfg.Paths.WorkDir != wantWork {
		t.Fatalf("unexpected work dir: got %q want %q", cfg.Paths.WorkDir, wantWork)
	}
	if cfg.Paths.LogDir != filepath.Join(tempHome, ".local", "share", "slaved", "logs") {
		t.Fatalf("unexpected log dir: %q", cfg.Paths.LogDir)
	}
	if cfg.Paths.WebBind != "0.0.0.0:8081" {
		t.Fatalf("unexpected web bind: %q", cfg.Paths.WebBind)
	}
	if cfg.Paths.TemplateDir != "" {
		t.Fatalf("expected empty template dir by default, got %q", cfg.Paths.TemplateDir)
	}
	if cfg.Web.DevMode {
		t.Fatal("expected dev mode off by default")
	}
	if cfg.Web.TailDefaultLines != 50 {
		t.Fatalf("unexpected tail default: %d", cfg.Web.TailDefaultLines)
	}

	if err := cfg.EnsureDirectories(); err != nil {
		t.Fatalf("EnsureDirectories failed: %v", err)
	}
	for _, dir := range []string{cfg.Paths.WorkDir, cfg.Paths.LogDir} {
		if _, err := os.Stat(dir); err != nil {
			t.Fatalf("expected directory %q to exist: %v", dir, err)
		}
	}
}

func TestLoadReadsFileAndNormalizes(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := strings.Join([]string{
		"[paths]",
		`work_dir = "` + filepath.Join(dir, "work") + `"`,
		`log_dir = "` + filepath.Join(dir, "logs") + `"`,
		`web_bind = "127.0.0.1:9001"`,
		"[web]",
		"dev_mode = true",
		"tail_default_lines = 10",
		"[logging]",
		`format = "JSON"`,
		`level = "Debug"`,
	}, "\n")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, resolved, exists, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !exists || resolved != path {
		t.Fatalf("expected %q to resolve as existing, got %q (%v)", path, resolved, exists)
	}
	if cfg.Paths.WebBind != "127.0.0.1:9001" {
		t.Fatalf("unexpected web bind: %q", cfg.Paths.WebBind)
	}
	if !cfg.Web.DevMode || cfg.Web.TailDefaultLines != 10 {
		t.Fatalf("web section not applied: %+v", cfg.Web)
	}
	if cfg.Logging.Format != "json" || cfg.Logging.Level != "debug" {
		t.Fatalf("logging section not normalized: %+v", cfg.Logging)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{"bad bind", func(c *config.Config) { c.Paths.WebBind = "not-an-address" }},
		{"bad format", func(c *config.Config) { c.Logging.Format = "xml" }},
		{"bad level", func(c *config.Config) { c.Logging.Level = "loud" }},
		{"negative tail", func(c *config.Config) { c.Web.TailDefaultLines = -1 }},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := config.Default()
			cfg.Paths.WorkDir = "/tmp/work"
			cfg.Paths.LogDir = "/tmp/logs"
			tc.mutate(&cfg)
			if err := cfg.Validate(); err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestWriteSampleRefusesOverwrite(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := config.WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[paths]") {
		t.Fatal("sample config missing paths section")
	}
	if err := config.WriteSample(path); err == nil {
		t.Fatal("expected error when sample already exists")
	}
}
