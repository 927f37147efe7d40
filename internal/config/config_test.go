package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	// Isolate from any real user/project config.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Events.BufferSize != 256 {
		t.Errorf("Events.BufferSize = %d, want 256", cfg.Events.BufferSize)
	}
	if cfg.Lifecycle.CompleteResetDelay != 10*time.Second {
		t.Errorf("CompleteResetDelay = %v, want 10s", cfg.Lifecycle.CompleteResetDelay)
	}
	if cfg.Lifecycle.FailResetDelay != 15*time.Second {
		t.Errorf("FailResetDelay = %v, want 15s", cfg.Lifecycle.FailResetDelay)
	}
	if cfg.Tree.DefaultTemplate != "standard" {
		t.Errorf("DefaultTemplate = %q, want standard", cfg.Tree.DefaultTemplate)
	}
	if cfg.Events.KafkaTopic != "arbor-events" {
		t.Errorf("KafkaTopic = %q, want arbor-events", cfg.Events.KafkaTopic)
	}
	if len(cfg.Events.KafkaBrokers) != 0 {
		t.Errorf("KafkaBrokers = %v, want empty", cfg.Events.KafkaBrokers)
	}
}

func TestLoad_ProjectOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	override := []byte("lifecycle:\n  complete_reset_delay: 1s\ntree:\n  default_template: custom\n")
	if err := os.WriteFile(filepath.Join(tmp, ".arbor.yaml"), override, 0644); err != nil {
		t.Fatalf("write project config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Lifecycle.CompleteResetDelay != time.Second {
		t.Errorf("CompleteResetDelay = %v, want 1s from project override", cfg.Lifecycle.CompleteResetDelay)
	}
	if cfg.Tree.DefaultTemplate != "custom" {
		t.Errorf("DefaultTemplate = %q, want custom", cfg.Tree.DefaultTemplate)
	}
	// Untouched keys keep defaults.
	if cfg.Lifecycle.FailResetDelay != 15*time.Second {
		t.Errorf("FailResetDelay = %v, want default 15s", cfg.Lifecycle.FailResetDelay)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("ARBOR_DB_PATH", "/tmp/custom.db")
	cwd, _ := os.Getwd()
	tmp := t.TempDir()
	if err := os.Chdir(tmp); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	defer os.Chdir(cwd)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Store.Path != "/tmp/custom.db" {
		t.Errorf("Store.Path = %q, want env override", cfg.Store.Path)
	}
}
