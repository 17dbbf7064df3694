package internal

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"

	"github.com/deevus/ticket-tui/config"
	"github.com/deevus/ticket-tui/tracker"
	"github.com/deevus/ticket-tui/tunnel"
)

// Services holds the initialized tracker API for one server.
type Services struct {
	Tracker tracker.ServiceAPI

	closer io.Closer
}

// NewServices creates a Services container from the given service interface.
func NewServices(svc tracker.ServiceAPI) *Services {
	return &Services{Tracker: svc}
}

// Connect builds the tracker client for a server profile, opening an SSH
// tunnel first when one is configured. Cancelling ctx aborts the tunnel dial.
func Connect(ctx context.Context, cfg config.ServerConfig) (*Services, error) {
	httpClient := &http.Client{Timeout: cfg.RequestTimeout}

	var tun *tunnel.Tunnel
	if cfg.SSH != nil {
		tunCfg, err := tunnelConfig(cfg)
		if err != nil {
			return nil, err
		}
		tun, err = tunnel.Dial(ctx, tunCfg)
		if err != nil {
			return nil, err
		}
		httpClient = tun.HTTPClient(cfg.RequestTimeout)
	}

	client, err := tracker.NewClient(tracker.ClientParams{
		BaseURL:    cfg.BaseURL,
		HTTPClient: httpClient,
	})
	if err != nil {
		if tun != nil {
			tun.Close()
		}
		return nil, err
	}

	svc := NewServices(client)
	if tun != nil {
		svc.closer = tun
	}
	return svc, nil
}

// tunnelConfig resolves the SSH settings, defaulting the jump host to the
// API's host.
func tunnelConfig(cfg config.ServerConfig) (tunnel.Config, error) {
	host := SSHHost(cfg)
	if host == "" {
		return tunnel.Config{}, fmt.Errorf("ssh: no host and base_url %q has none", cfg.BaseURL)
	}

	key, err := os.ReadFile(cfg.SSH.PrivateKeyPath)
	if err != nil {
		return tunnel.Config{}, fmt.Errorf("reading SSH private key %s: %w", cfg.SSH.PrivateKeyPath, err)
	}

	return tunnel.Config{
		Host:               host,
		Port:               cfg.SSH.Port,
		User:               cfg.SSH.Username,
		PrivateKey:         key,
		HostKeyFingerprint: cfg.SSH.HostKeyFingerprint,
	}, nil
}

// SSHHost returns the jump host a server profile tunnels through, or "" when
// it connects directly.
func SSHHost(cfg config.ServerConfig) string {
	if cfg.SSH == nil {
		return ""
	}
	if cfg.SSH.Host != "" {
		return cfg.SSH.Host
	}
	if u, err := url.Parse(cfg.BaseURL); err == nil {
		return u.Hostname()
	}
	return ""
}

// Close releases the tunnel, if any.
func (s *Services) Close() error {
	if s.closer == nil {
		return nil
	}
	return s.closer.Close()
}
