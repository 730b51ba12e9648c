package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeEnv(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, EnvFile), []byte(content), 0600); err != nil {
		t.Fatalf("failed to write .env: %v", err)
	}
}

func TestNew_NoEnvFile(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	os.Unsetenv(BackendURLEnv)
	t.Setenv(TimeoutEnv, "")
	os.Unsetenv(TimeoutEnv)

	dir := t.TempDir()
	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Dir != dir {
		t.Errorf("expected dir %q, got %q", dir, cfg.Dir)
	}
	if cfg.BaseURL != "" {
		t.Errorf("expected empty base URL, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 0 {
		t.Errorf("expected no timeout, got %v", cfg.Timeout)
	}
	if cfg.HasEnvFile() {
		t.Error("expected HasEnvFile to be false")
	}
}

func TestNew_EnvFile(t *testing.T) {
	t.Setenv(BackendURLEnv, "")
	os.Unsetenv(BackendURLEnv)
	t.Setenv(TimeoutEnv, "")
	os.Unsetenv(TimeoutEnv)

	dir := t.TempDir()
	writeEnv(t, dir, "TASKLIST_BACKEND_URL=http://file.example:5000\nTASKLIST_TIMEOUT=3s\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://file.example:5000" {
		t.Errorf("expected base URL from file, got %q", cfg.BaseURL)
	}
	if cfg.Timeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %v", cfg.Timeout)
	}
}

func TestNew_EnvironmentWinsOverFile(t *testing.T) {
	t.Setenv(BackendURLEnv, "http://env.example")

	dir := t.TempDir()
	writeEnv(t, dir, "TASKLIST_BACKEND_URL=http://file.example\n")

	cfg, err := New(dir)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.BaseURL != "http://env.example" {
		t.Errorf("expected environment value, got %q", cfg.BaseURL)
	}
}

func TestNew_InvalidTimeout(t *testing.T) {
	t.Setenv(TimeoutEnv, "soon")

	_, err := New(t.TempDir())
	if err == nil {
		t.Fatal("expected error for invalid timeout")
	}
	expected := `invalid TASKLIST_TIMEOUT: "soon"`
	if err.Error() != expected {
		t.Errorf("expected %q, got %q", expected, err.Error())
	}
}

func TestDefaultConfigDir_XDG(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/tmp/xdg")

	expected := filepath.Join("/tmp/xdg", AppName)
	if got := DefaultConfigDir(); got != expected {
		t.Errorf("expected %q, got %q", expected, got)
	}
}
