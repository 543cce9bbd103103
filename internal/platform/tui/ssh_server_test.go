package tui

import (
	"context"
	"io"
	"net"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/helixfall/internal/registry"
)

const sshTestGame = "scripted_ssh"

func init() {
	registry.Register(sshTestGame, func() registry.Game { return &scriptedGame{} })
}

func testServerConfig(t *testing.T, addr string) SSHServerConfig {
	t.Helper()
	cfg := DefaultSSHServerConfig()
	cfg.Address = addr
	cfg.GameID = sshTestGame
	cfg.HostKeyPath = filepath.Join(t.TempDir(), "keys", "host_key")
	cfg.Logger = log.New(io.Discard)
	return cfg
}

func TestNewSSHServerUnknownGame(t *testing.T) {
	cfg := testServerConfig(t, "127.0.0.1:0")
	cfg.GameID = "no_such_game"

	if _, err := NewSSHServer(cfg); err == nil {
		t.Fatal("expected error for unregistered game")
	}
}

func TestNewSSHServerHostKeyDirError(t *testing.T) {
	blocker := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(blocker, []byte("x"), 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg := testServerConfig(t, "127.0.0.1:0")
	cfg.HostKeyPath = filepath.Join(blocker, "sub", "host_key")

	if _, err := NewSSHServer(cfg); err == nil {
		t.Fatal("expected error when the host key directory cannot be created")
	}
}

func TestServeReturnsListenError(t *testing.T) {
	busy, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatalf("Listen failed: %v", err)
	}
	defer busy.Close()

	srv, err := NewSSHServer(testServerConfig(t, busy.Addr().String()))
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	select {
	case err := <-done:
		if err == nil {
			t.Error("expected an error for a port already in use")
		}
		if ctx.Err() != nil {
			t.Error("Serve waited for the context instead of failing fast")
		}
	case <-time.After(10 * time.Second):
		t.Fatal("Serve hung after the listener failed")
	}
}

func TestServeStopsWhenContextDone(t *testing.T) {
	srv, err := NewSSHServer(testServerConfig(t, "127.0.0.1:0"))
	if err != nil {
		t.Fatalf("NewSSHServer failed: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx) }()

	time.Sleep(100 * time.Millisecond)
	cancel()

	select {
	case <-done:
	case <-time.After(15 * time.Second):
		t.Fatal("Serve did not return after cancel")
	}
}
