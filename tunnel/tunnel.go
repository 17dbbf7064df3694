// Package tunnel reaches the tracker API through an SSH jump host.
package tunnel

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"strconv"
	"time"

	"golang.org/x/crypto/ssh"
)

// Config holds the SSH connection details for the jump host.
type Config struct {
	Host               string
	Port               int
	User               string
	PrivateKey         []byte
	HostKeyFingerprint string
	Timeout            time.Duration
}

// Tunnel forwards TCP connections through an established SSH client.
type Tunnel struct {
	client *ssh.Client
}

// Dial connects to the jump host, verifying its key against the configured
// SHA256 fingerprint. Cancelling ctx aborts the dial and the handshake.
func Dial(ctx context.Context, cfg Config) (*Tunnel, error) {
	if cfg.HostKeyFingerprint == "" {
		return nil, fmt.Errorf("ssh %s: host key fingerprint is required", cfg.Host)
	}
	signer, err := ssh.ParsePrivateKey(cfg.PrivateKey)
	if err != nil {
		return nil, fmt.Errorf("ssh %s: parsing private key: %w", cfg.Host, err)
	}
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 10 * time.Second
	}
	clientCfg := &ssh.ClientConfig{
		User:            cfg.User,
		Auth:            []ssh.AuthMethod{ssh.PublicKeys(signer)},
		HostKeyCallback: FingerprintCallback(cfg.HostKeyFingerprint),
		Timeout:         timeout,
	}
	addr := net.JoinHostPort(cfg.Host, strconv.Itoa(cfg.Port))
	dialer := net.Dialer{Timeout: timeout}
	conn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("ssh %s: %w", addr, err)
	}

	// The handshake does not take a context; closing conn unblocks it.
	stop := context.AfterFunc(ctx, func() { conn.Close() })
	sshConn, chans, reqs, err := ssh.NewClientConn(conn, addr, clientCfg)
	if !stop() {
		if err == nil {
			sshConn.Close()
		}
		return nil, fmt.Errorf("ssh %s: %w", addr, ctx.Err())
	}
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("ssh %s: %w", addr, err)
	}
	return &Tunnel{client: ssh.NewClient(sshConn, chans, reqs)}, nil
}

// DialContext opens a connection to addr from the jump host's side.
func (t *Tunnel) DialContext(ctx context.Context, network, addr string) (net.Conn, error) {
	return t.client.DialContext(ctx, network, addr)
}

// HTTPClient returns an http.Client whose connections go through the tunnel.
func (t *Tunnel) HTTPClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Timeout: timeout,
		Transport: &http.Transport{
			DialContext:       t.DialContext,
			ForceAttemptHTTP2: true,
			MaxIdleConns:      4,
			IdleConnTimeout:   90 * time.Second,
		},
	}
}

// Close tears down the SSH connection.
func (t *Tunnel) Close() error {
	return t.client.Close()
}

// FingerprintCallback accepts only a host key whose SHA256 fingerprint
// matches want.
func FingerprintCallback(want string) ssh.HostKeyCallback {
	return func(hostname string, _ net.Addr, key ssh.PublicKey) error {
		got := ssh.FingerprintSHA256(key)
		if got != want {
			return fmt.Errorf("host key mismatch for %s: got %s, want %s", hostname, got, want)
		}
		return nil
	}
}

// ScanHostKey connects to an SSH server and returns the host key fingerprint.
func ScanHostKey(host string, port int) (string, error) {
	addr := net.JoinHostPort(host, strconv.Itoa(port))
	var fingerprint string
	cfg := &ssh.ClientConfig{
		User: "keyscan",
		HostKeyCallback: func(_ string, _ net.Addr, key ssh.PublicKey) error {
			fingerprint = ssh.FingerprintSHA256(key)
			return nil
		},
		Timeout: 5 * time.Second,
	}
	conn, err := ssh.Dial("tcp", addr, cfg)
	if conn != nil {
		conn.Close()
	}
	if fingerprint != "" {
		return fingerprint, nil
	}
	return "", fmt.Errorf("could not connect to %s: %v", addr, err)
}
