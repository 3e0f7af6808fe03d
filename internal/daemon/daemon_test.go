package daemon_test

import (
	"context"
	"path/filepath"
	"testing"

	"slaved/internal/config"
	"slaved/internal/daemon"
	"slaved/internal/identity"
	"slaved/internal/logging"
	"slaved/internal/registry"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	cfg := config.Default()
	cfg.Paths.WorkDir = filepath.Join(dir, "work")
	cfg.Paths.LogDir = filepath.Join(dir, "logs")
	cfg.Paths.StaticDir = filepath.Join(dir, "static")
	cfg.Paths.WebBind = "127.0.0.1:0"
	return &cfg
}

func newTestDaemon(t *testing.T, cfg *config.Config) *daemon.Daemon {
	t.Helper()
	store, err := registry.Open(cfg)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	d, err := daemon.New(cfg, identity.NewStore(), store, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	t.Cleanup(func() { _ = d.Close() })
	return d
}

func TestDaemonStartStop(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDaemon(t, cfg)

	ctx := context.Background()
	if err := d.Start(ctx); err != nil {
		t.Fatalf("Start: %v", err)
	}
	if err := d.Start(ctx); err == nil {
		t.Fatal("second Start should fail while running")
	}
	d.Stop()

	// Stop released the lock, so a restart succeeds.
	if err := d.Start(ctx); err != nil {
		t.Fatalf("restart: %v", err)
	}
	d.Stop()
}

func TestDaemonLockExcludesSecondInstance(t *testing.T) {
	cfg := testConfig(t)
	first := newTestDaemon(t, cfg)
	second := newTestDaemon(t, cfg)

	ctx := context.Background()
	if err := first.Start(ctx); err != nil {
		t.Fatalf("Start first: %v", err)
	}
	defer first.Stop()

	if err := second.Start(ctx); err == nil {
		second.Stop()
		t.Fatal("second instance should fail to acquire the lock")
	}
}

func TestDaemonRegisterOnce(t *testing.T) {
	cfg := testConfig(t)
	d := newTestDaemon(t, cfg)

	status := d.Status(context.Background())
	if status.Registered {
		t.Fatal("daemon should start unregistered")
	}

	if !d.Register(12) {
		t.Fatal("first registration should succeed")
	}
	if d.Register(13) {
		t.Fatal("second registration should be rejected")
	}
	if d.Register(-5) {
		t.Fatal("negative ids are invalid")
	}

	status = d.Status(context.Background())
	if !status.Registered || status.SlaveID != 12 {
		t.Fatalf("unexpected status after registration: %+v", status)
	}
}

func TestDaemonStatusCountsFrameworks(t *testing.T) {
	cfg := testConfig(t)
	store, err := registry.Open(cfg)
	if err != nil {
		t.Fatalf("open registry: %v", err)
	}
	d, err := daemon.New(cfg, identity.NewStore(), store, logging.NewNop())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer d.Close()

	ctx := context.Background()
	if _, err := store.Upsert(ctx, registry.Framework{ID: 1, Name: "alpha", Status: registry.StatusActive}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}
	if _, err := store.Upsert(ctx, registry.Framework{ID: 2, Name: "beta", Status: registry.StatusTerminated}); err != nil {
		t.Fatalf("Upsert: %v", err)
	}

	status := d.Status(ctx)
	if status.Frameworks != 2 || status.ActiveCount != 1 {
		t.Fatalf("unexpected framework counts: %+v", status)
	}
	if status.SessionID != d.SessionID() {
		t.Fatal("status should carry the daemon session id")
	}
	if status.RegistryDBPath != store.Path() {
		t.Fatalf("unexpected registry path: %s", status.RegistryDBPath)
	}
	if status.LockFilePath == "" {
		t.Fatal("status should include the lock file path")
	}
}
