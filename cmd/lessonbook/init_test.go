package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alnah/go-lessonbook/internal/config"
)

func TestRunInit(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	env := newTestEnv(t)

	if code := runMain([]string{"lessonbook", "init", dir}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain() = %d, stderr: %s", code, env.stderr)
	}

	cfgPath := filepath.Join(dir, "lessonbook.yaml")
	themePath := filepath.Join(dir, "themes", "burgundy.yaml")
	for _, p := range []string{cfgPath, themePath} {
		if !strings.Contains(env.stdout.String(), "Created "+p) {
			t.Errorf("stdout = %q, want Created %s", env.stdout, p)
		}
	}

	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		t.Fatalf("generated config does not load: %v", err)
	}
	if cfg.Year != 2025 || cfg.Quarter != "q1" {
		t.Errorf("Year/Quarter = %d/%s, want 2025/q1", cfg.Year, cfg.Quarter)
	}
	if cfg.Reproduce == nil || cfg.Reproduce.QuarterStartDate != "2025-01-01" {
		t.Errorf("Reproduce = %+v", cfg.Reproduce)
	}
	if cfg.ColorThemePath != "./themes/burgundy.yaml" {
		t.Errorf("ColorThemePath = %q", cfg.ColorThemePath)
	}

	theme, err := os.ReadFile(themePath)
	if err != nil {
		t.Fatalf("reading theme: %v", err)
	}
	if !strings.Contains(string(theme), "primary: '#3c1815'") {
		t.Errorf("theme = %s", theme)
	}
}

func TestRunInit_Existing(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	cfgPath := filepath.Join(dir, "lessonbook.yaml")
	if err := os.WriteFile(cfgPath, []byte("year: 1905\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	env := newTestEnv(t)
	if code := runMain([]string{"lessonbook", "init", dir}, env.Environment); code != ExitIO {
		t.Errorf("runMain() = %d, want %d", code, ExitIO)
	}
	if !strings.Contains(env.stderr.String(), "--force") {
		t.Errorf("stderr = %q, want --force advice", env.stderr)
	}
	if _, err := os.Stat(filepath.Join(dir, "themes")); !os.IsNotExist(err) {
		t.Error("nothing should be written when a file exists")
	}

	env = newTestEnv(t)
	if code := runMain([]string{"lessonbook", "init", dir, "--force", "-q"}, env.Environment); code != ExitSuccess {
		t.Fatalf("runMain(--force) = %d, stderr: %s", code, env.stderr)
	}
	data, _ := os.ReadFile(cfgPath)
	if !strings.Contains(string(data), "reproduce:") {
		t.Errorf("config not overwritten: %s", data)
	}
	if env.stdout.Len() != 0 {
		t.Errorf("quiet stdout = %q", env.stdout)
	}
}

func TestRunInit_TooManyArgs(t *testing.T) {
	t.Parallel()

	env := newTestEnv(t)
	if code := runMain([]string{"lessonbook", "init", "a", "b"}, env.Environment); code != ExitUsage {
		t.Errorf("runMain() = %d, want %d", code, ExitUsage)
	}
}
