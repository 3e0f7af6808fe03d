package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"golang.org/x/sys/unix"

	"slaved/internal/api"
	"slaved/internal/config"
	"slaved/internal/identity"
	"slaved/internal/logging"
	"slaved/internal/registry"
	"slaved/internal/webui"
)

// Daemon owns the slave's long-running services and enforces
// single-instance execution via a lock file.
type Daemon struct {
	cfg      *config.Config
	logger   *slog.Logger
	identity *identity.Store
	registry *registry.Store
	web      *webui.Server

	sessionID string
	startedAt time.Time

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	ctx     context.Context
	cancel  context.CancelFunc
}

// New constructs a daemon with initialized dependencies. The web UI server is
// created here so it can report daemon status.
func New(cfg *config.Config, ident *identity.Store, store *registry.Store, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil || ident == nil || store == nil || logger == nil {
		return nil, errors.New("daemon requires config, identity store, registry store, and logger")
	}

	lockPath := filepath.Join(cfg.Paths.LogDir, "slaved.lock")
	d := &Daemon{
		cfg:       cfg,
		logger:    logger,
		identity:  ident,
		registry:  store,
		sessionID: uuid.NewString(),
		startedAt: time.Now().UTC(),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}

	web, err := webui.New(cfg, ident, store, d, logger)
	if err != nil {
		return nil, fmt.Errorf("create web ui: %w", err)
	}
	d.web = web
	return d, nil
}

// Start acquires the daemon lock, verifies directory access, and launches the
// web UI listener.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	if err := d.checkDirectories(); err != nil {
		return err
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another slaved instance is already running")
	}

	d.ctx, d.cancel = context.WithCancel(ctx)
	if err := d.web.Start(d.ctx); err != nil {
		_ = d.lock.Unlock()
		d.cancel()
		d.ctx = nil
		d.cancel = nil
		return fmt.Errorf("start web ui: %w", err)
	}

	d.running.Store(true)
	d.log().Info("slaved started",
		logging.String("session_id", d.sessionID),
		logging.String("lock", d.lockPath),
		logging.String("bind", d.cfg.Paths.WebBind))
	return nil
}

// Stop shuts down the web UI and releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}

	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	d.web.Stop()
	if err := d.lock.Unlock(); err != nil {
		d.log().Warn("failed to release daemon lock", logging.Error(err))
	}
	d.ctx = nil
	d.running.Store(false)
	d.log().Info("slaved stopped")
}

// Close releases resources held by the daemon.
func (d *Daemon) Close() error {
	d.Stop()
	if d.registry != nil {
		return d.registry.Close()
	}
	return nil
}

// Register records the slave id handed out by the master. It returns false
// when the id is invalid or an id was already assigned.
func (d *Daemon) Register(id int64) bool {
	if !d.identity.Assign(id) {
		return false
	}
	d.log().Info("registered with master", logging.Int64("slave_id", id))
	return true
}

// Web exposes the daemon's web UI server, mainly for tests.
func (d *Daemon) Web() *webui.Server {
	return d.web
}

// SessionID returns the identifier minted for this daemon run.
func (d *Daemon) SessionID() string {
	return d.sessionID
}

// Status reports the current daemon state. It satisfies the web UI's status
// provider contract.
func (d *Daemon) Status(ctx context.Context) api.SlaveStatus {
	status := api.SlaveStatus{
		SlaveID:        d.identity.Current(),
		Registered:     d.identity.Registered(),
		SessionID:      d.sessionID,
		StartedAt:      d.startedAt.Format(time.RFC3339),
		WorkDir:        d.cfg.Paths.WorkDir,
		LogDir:         d.cfg.Paths.LogDir,
		RegistryDBPath: d.registry.Path(),
		LockFilePath:   d.lockPath,
	}
	stats, err := d.registry.Stats(ctx)
	if err != nil {
		d.log().Warn("failed to gather framework stats", logging.Error(err))
		return status
	}
	status.Frameworks = stats.Total()
	status.ActiveCount = stats.Active
	return status
}

// checkDirectories verifies the work and log directories exist and are
// readable before the daemon starts serving from them.
func (d *Daemon) checkDirectories() error {
	for _, dir := range []string{d.cfg.Paths.WorkDir, d.cfg.Paths.LogDir} {
		if err := unix.Access(dir, unix.R_OK|unix.X_OK); err != nil {
			return fmt.Errorf("directory %s not accessible: %w", dir, err)
		}
	}
	return nil
}

func (d *Daemon) log() *slog.Logger {
	return logging.WithComponent(d.logger, "daemon")
}
