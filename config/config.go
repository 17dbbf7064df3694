package config

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

const (
	// DefaultRefreshInterval is the auto-refresh period.
	DefaultRefreshInterval = 30 * time.Second
	// DefaultDropWindowHours is the trailing window for recent price drops.
	DefaultDropWindowHours = 24
)

// Config is the top-level configuration.
type Config struct {
	LogFile string                  `toml:"log_file"`
	Servers map[string]ServerConfig `toml:"servers"`
}

// ServerConfig holds connection details for one tracker API.
type ServerConfig struct {
	BaseURL         string        `toml:"base_url"`
	RefreshInterval time.Duration `toml:"refresh_interval"`
	RequestTimeout  time.Duration `toml:"request_timeout"`
	DropWindowHours int           `toml:"drop_window_hours"`
	SSH             *SSHConfig    `toml:"ssh"`
}

// SSHConfig holds optional SSH tunnel details for reaching the API.
type SSHConfig struct {
	Host               string `toml:"host"`
	Port               int    `toml:"port"`
	Username           string `toml:"username"`
	PrivateKeyPath     string `toml:"private_key_path"`
	HostKeyFingerprint string `toml:"host_key_fingerprint"`
}

// DefaultPath returns the default config file path using XDG conventions.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".config")
	}
	return filepath.Join(dir, "ticket-tui", "config.toml")
}

// DefaultLogPath returns the log file used when log_file is not set.
func DefaultLogPath() string {
	dir := os.Getenv("XDG_STATE_HOME")
	if dir == "" {
		dir = filepath.Join(os.Getenv("HOME"), ".local", "state")
	}
	return filepath.Join(dir, "ticket-tui", "ticket-tui.log")
}

// LoadFrom reads and parses the config file at the given path.
// It applies defaults for server and SSH fields after parsing.
func LoadFrom(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("loading config from %s: %w", path, err)
	}
	if len(cfg.Servers) == 0 {
		return nil, fmt.Errorf("config has no servers defined")
	}
	for name, server := range cfg.Servers {
		if server.BaseURL == "" {
			return nil, fmt.Errorf("server %q: base_url is required", name)
		}
		if server.RefreshInterval < 0 || server.RequestTimeout < 0 || server.DropWindowHours < 0 {
			return nil, fmt.Errorf("server %q: durations and drop_window_hours must not be negative", name)
		}
		if server.RefreshInterval == 0 {
			server.RefreshInterval = DefaultRefreshInterval
		}
		if server.DropWindowHours == 0 {
			server.DropWindowHours = DefaultDropWindowHours
		}
		if server.SSH != nil {
			if server.SSH.Port == 0 {
				server.SSH.Port = 22
			}
			if server.SSH.Username == "" {
				server.SSH.Username = os.Getenv("USER")
			}
			server.SSH.PrivateKeyPath = expandPath(server.SSH.PrivateKeyPath)
		}
		cfg.Servers[name] = server
	}
	if cfg.LogFile == "" {
		cfg.LogFile = DefaultLogPath()
	} else {
		cfg.LogFile = expandPath(cfg.LogFile)
	}
	return &cfg, nil
}

// expandPath expands ~ to $HOME and then expands all environment variables.
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		path = "$HOME" + path[1:]
	}
	return os.ExpandEnv(path)
}

// ServerNames returns the sorted list of server profile names.
func (c *Config) ServerNames() []string {
	names := make([]string, 0, len(c.Servers))
	for name := range c.Servers {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
