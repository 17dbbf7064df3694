package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/deevus/ticket-tui/config"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	path := writeConfig(t, `
[servers.local]
base_url = "http://localhost:8000"

[servers.remote]
base_url = "https://tickets.example.com"
refresh_interval = "1m"
request_timeout = "15s"
drop_window_hours = 48
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(cfg.Servers) != 2 {
		t.Fatalf("expected 2 servers, got %d", len(cfg.Servers))
	}

	local := cfg.Servers["local"]
	if local.BaseURL != "http://localhost:8000" {
		t.Errorf("expected base_url http://localhost:8000, got %s", local.BaseURL)
	}
	if local.RefreshInterval != config.DefaultRefreshInterval {
		t.Errorf("expected default refresh interval, got %v", local.RefreshInterval)
	}
	if local.RequestTimeout != 0 {
		t.Errorf("expected no request timeout by default, got %v", local.RequestTimeout)
	}
	if local.DropWindowHours != 24 {
		t.Errorf("expected default drop window 24, got %d", local.DropWindowHours)
	}

	remote := cfg.Servers["remote"]
	if remote.RefreshInterval != time.Minute {
		t.Errorf("expected refresh interval 1m, got %v", remote.RefreshInterval)
	}
	if remote.RequestTimeout != 15*time.Second {
		t.Errorf("expected request timeout 15s, got %v", remote.RequestTimeout)
	}
	if remote.DropWindowHours != 48 {
		t.Errorf("expected drop window 48, got %d", remote.DropWindowHours)
	}
}

func TestLoad_MissingBaseURL(t *testing.T) {
	path := writeConfig(t, `
[servers.local]
refresh_interval = "30s"
`)

	if _, err := config.LoadFrom(path); err == nil {
		t.Fatal("expected error for missing base_url")
	}
}

func TestLoad_NegativeInterval(t *testing.T) {
	path := writeConfig(t, `
[servers.local]
base_url = "http://localhost:8000"
refresh_interval = "-5s"
`)

	if _, err := config.LoadFrom(path); err == nil {
		t.Fatal("expected error for negative refresh interval")
	}
}

func TestLoad_WithSSH(t *testing.T) {
	path := writeConfig(t, `
[servers.home]
base_url = "http://127.0.0.1:8000"

[servers.home.ssh]
host = "nas.local"
port = 2222
username = "root"
private_key_path = "/home/test/.ssh/id_ed25519"
host_key_fingerprint = "SHA256:abc123"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ssh := cfg.Servers["home"].SSH
	if ssh == nil {
		t.Fatal("expected SSH config")
	}
	if ssh.Host != "nas.local" {
		t.Errorf("expected ssh host nas.local, got %s", ssh.Host)
	}
	if ssh.Port != 2222 {
		t.Errorf("expected ssh port 2222, got %d", ssh.Port)
	}
	if ssh.Username != "root" {
		t.Errorf("expected ssh username root, got %s", ssh.Username)
	}
	if ssh.HostKeyFingerprint != "SHA256:abc123" {
		t.Errorf("expected fingerprint, got %s", ssh.HostKeyFingerprint)
	}
}

func TestLoad_SSHDefaults(t *testing.T) {
	t.Setenv("USER", "tracker")
	path := writeConfig(t, `
[servers.home]
base_url = "http://127.0.0.1:8000"

[servers.home.ssh]
host = "nas.local"
private_key_path = "/home/test/.ssh/id_ed25519"
host_key_fingerprint = "SHA256:abc123"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ssh := cfg.Servers["home"].SSH
	if ssh.Port != 22 {
		t.Errorf("expected default ssh port 22, got %d", ssh.Port)
	}
	if ssh.Username != "tracker" {
		t.Errorf("expected ssh username to default to $USER, got %s", ssh.Username)
	}
}

func TestLoad_ExpandTilde(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("cannot determine home dir")
	}

	path := writeConfig(t, `
[servers.home]
base_url = "http://127.0.0.1:8000"

[servers.home.ssh]
host = "nas.local"
private_key_path = "~/.ssh/id_ed25519"
host_key_fingerprint = "SHA256:abc123"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join(home, ".ssh", "id_ed25519")
	if cfg.Servers["home"].SSH.PrivateKeyPath != expected {
		t.Errorf("expected expanded path %s, got %s", expected, cfg.Servers["home"].SSH.PrivateKeyPath)
	}
}

func TestLoad_ExpandEnvVarLogFile(t *testing.T) {
	t.Setenv("TEST_LOG_DIR", "/custom/logs")

	path := writeConfig(t, `
log_file = "$TEST_LOG_DIR/tickets.log"

[servers.local]
base_url = "http://localhost:8000"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.LogFile != "/custom/logs/tickets.log" {
		t.Errorf("expected expanded log path, got %s", cfg.LogFile)
	}
}

func TestLoad_DefaultLogFile(t *testing.T) {
	t.Setenv("XDG_STATE_HOME", "/state")

	path := writeConfig(t, `
[servers.local]
base_url = "http://localhost:8000"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := filepath.Join("/state", "ticket-tui", "ticket-tui.log")
	if cfg.LogFile != expected {
		t.Errorf("expected %s, got %s", expected, cfg.LogFile)
	}
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.LoadFrom("/nonexistent/config.toml")
	if err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestLoad_EmptyServers(t *testing.T) {
	path := writeConfig(t, ``)

	_, err := config.LoadFrom(path)
	if err == nil {
		t.Fatal("expected error for empty config")
	}
}

func TestConfig_ServerNames(t *testing.T) {
	path := writeConfig(t, `
[servers.beta]
base_url = "http://b.local:8000"

[servers.alpha]
base_url = "http://a.local:8000"
`)

	cfg, err := config.LoadFrom(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	names := cfg.ServerNames()
	if len(names) != 2 {
		t.Fatalf("expected 2 names, got %d", len(names))
	}
	if names[0] != "alpha" || names[1] != "beta" {
		t.Errorf("expected [alpha beta], got %v", names)
	}
}

func TestDefaultPath(t *testing.T) {
	path := config.DefaultPath()
	if path == "" {
		t.Fatal("expected non-empty default path")
	}
}
