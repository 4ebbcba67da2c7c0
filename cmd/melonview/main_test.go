package main

import (
	"flag"
	"os"
	"path/filepath"
	"testing"

	"github.com/Faultbox/melonview/internal/config"
)

func setFlag(t *testing.T, name, value string) {
	t.Helper()
	old := flag.Lookup(name).Value.String()
	if err := flag.Set(name, value); err != nil {
		t.Fatalf("set --%s: %v", name, err)
	}
	t.Cleanup(func() { flag.Set(name, old) })
}

func TestRunWriteConfig(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	path := filepath.Join(t.TempDir(), "out", "config.yaml")
	setFlag(t, "write-config", path)
	setFlag(t, "width", "640")

	if code := run(); code != 0 {
		t.Fatalf("run() = %d, want 0", code)
	}

	loaded, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("config not written: %v", err)
	}
	if len(loaded) == 0 {
		t.Fatal("written config is empty")
	}

	setFlag(t, "write-config", "")
	setFlag(t, "config", path)
	cfg, err := config.Load()
	if err != nil {
		t.Fatalf("reload written config: %v", err)
	}
	if cfg.Window.Width != 640 {
		t.Errorf("width = %d, want 640", cfg.Window.Width)
	}
}

func TestRunBadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("window: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	setFlag(t, "config", path)

	if code := run(); code != 1 {
		t.Errorf("run() = %d, want 1", code)
	}
}
