package tunnel_test

import (
	"context"
	"crypto/ed25519"
	"crypto/rand"
	"encoding/pem"
	"errors"
	"net"
	"testing"
	"time"

	"github.com/deevus/ticket-tui/tunnel"
	"golang.org/x/crypto/ssh"
)

func testPublicKey(t *testing.T) ssh.PublicKey {
	t.Helper()
	pub, _, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	key, err := ssh.NewPublicKey(pub)
	if err != nil {
		t.Fatal(err)
	}
	return key
}

func TestFingerprintCallback_Match(t *testing.T) {
	key := testPublicKey(t)
	cb := tunnel.FingerprintCallback(ssh.FingerprintSHA256(key))

	if err := cb("nas.local:22", &net.TCPAddr{}, key); err != nil {
		t.Fatalf("expected matching key to be accepted, got %v", err)
	}
}

func TestFingerprintCallback_Mismatch(t *testing.T) {
	key := testPublicKey(t)
	other := testPublicKey(t)
	cb := tunnel.FingerprintCallback(ssh.FingerprintSHA256(other))

	if err := cb("nas.local:22", &net.TCPAddr{}, key); err == nil {
		t.Fatal("expected mismatched key to be rejected")
	}
}

func TestDial_RequiresFingerprint(t *testing.T) {
	_, err := tunnel.Dial(context.Background(), tunnel.Config{Host: "nas.local", Port: 22, User: "root"})
	if err == nil {
		t.Fatal("expected error without fingerprint")
	}
}

func TestDial_InvalidPrivateKey(t *testing.T) {
	_, err := tunnel.Dial(context.Background(), tunnel.Config{
		Host:               "nas.local",
		Port:               22,
		User:               "root",
		PrivateKey:         []byte("not a key"),
		HostKeyFingerprint: "SHA256:abc",
	})
	if err == nil {
		t.Fatal("expected error for invalid private key")
	}
}

func TestDial_CancelDuringHandshake(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	defer ln.Close()
	// Accept but never answer, so the handshake blocks.
	go func() {
		for {
			conn, err := ln.Accept()
			if err != nil {
				return
			}
			defer conn.Close()
		}
	}()

	_, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		t.Fatal(err)
	}
	block, err := ssh.MarshalPrivateKey(priv, "")
	if err != nil {
		t.Fatal(err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	time.AfterFunc(100*time.Millisecond, cancel)

	done := make(chan error, 1)
	go func() {
		_, err := tunnel.Dial(ctx, tunnel.Config{
			Host:               "127.0.0.1",
			Port:               ln.Addr().(*net.TCPAddr).Port,
			User:               "tickets",
			PrivateKey:         pem.EncodeToMemory(block),
			HostKeyFingerprint: "SHA256:abc",
			Timeout:            time.Minute,
		})
		done <- err
	}()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("expected context.Canceled, got %v", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("dial was not aborted by cancellation")
	}
}

func TestScanHostKey_Unreachable(t *testing.T) {
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	port := ln.Addr().(*net.TCPAddr).Port
	ln.Close()

	if _, err := tunnel.ScanHostKey("127.0.0.1", port); err == nil {
		t.Fatal("expected error for closed port")
	}
}
