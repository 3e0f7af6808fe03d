package registry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"

	"slaved/internal/config"
)

// Store persists the set of frameworks assigned to this slave, backed by
// SQLite. The executor layer writes rows as frameworks come and go; the web
// UI and CLI only read them.
type Store struct {
	db   *sql.DB
	path string
}

// Open initializes or connects to the registry database.
func Open(cfg *config.Config) (*Store, error) {
	if err := cfg.EnsureDirectories(); err != nil {
		return nil, fmt.Errorf("ensure directories: %w", err)
	}

	dbPath := filepath.Join(cfg.Paths.WorkDir, "registry.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}

	pragmas := []string{
		"PRAGMA journal_mode=WAL",
		"PRAGMA foreign_keys = ON",
		"PRAGMA busy_timeout = 5000",
	}
	for _, pragma := range pragmas {
		if _, execErr := db.Exec(pragma); execErr != nil {
			_ = db.Close()
			return nil, fmt.Errorf("apply pragma %q: %w", pragma, execErr)
		}
	}

	store := &Store{db: db, path: dbPath}
	if err := store.initSchema(context.Background()); err != nil {
		_ = db.Close()
		return nil, err
	}
	return store, nil
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	if s == nil || s.db == nil {
		return nil
	}
	return s.db.Close()
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.path
}

const frameworkColumns = "id, name, executor, status, registered_at, updated_at"

// Upsert records a framework, inserting it or refreshing its name, executor,
// and status. RegisteredAt is preserved on update.
func (s *Store) Upsert(ctx context.Context, fw Framework) (*Framework, error) {
	if fw.ID < 0 {
		return nil, fmt.Errorf("framework id %d is negative", fw.ID)
	}
	if fw.Status == "" {
		fw.Status = StatusActive
	}
	now := time.Now().UTC().Format(time.RFC3339Nano)

	_, err := s.db.ExecContext(
		ctx,
		`INSERT INTO frameworks (id, name, executor, status, registered_at, updated_at)
         VALUES (?, ?, ?, ?, ?, ?)
         ON CONFLICT(id) DO UPDATE SET
             name = excluded.name,
             executor = excluded.executor,
             status = excluded.status,
             updated_at = excluded.updated_at`,
		fw.ID, fw.Name, fw.Executor, fw.Status, now, now,
	)
	if err != nil {
		return nil, fmt.Errorf("upsert framework: %w", err)
	}
	return s.GetByID(ctx, fw.ID)
}

// GetByID fetches a framework by identifier. A missing framework yields
// (nil, nil).
func (s *Store) GetByID(ctx context.Context, id int64) (*Framework, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+frameworkColumns+` FROM frameworks WHERE id = ?`, id)
	fw, err := scanFramework(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get framework: %w", err)
	}
	return fw, nil
}

// List returns frameworks ordered by id, optionally filtered by status.
func (s *Store) List(ctx context.Context, statuses ...Status) ([]*Framework, error) {
	query := `SELECT ` + frameworkColumns + ` FROM frameworks`
	args := make([]any, 0, len(statuses))
	if len(statuses) > 0 {
		query += ` WHERE status IN (?` + repeatPlaceholder(len(statuses)-1) + `)`
		for _, status := range statuses {
			args = append(args, status)
		}
	}
	query += ` ORDER BY id`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list frameworks: %w", err)
	}
	defer rows.Close()

	var frameworks []*Framework
	for rows.Next() {
		fw, err := scanFramework(rows)
		if err != nil {
			return nil, fmt.Errorf("scan framework: %w", err)
		}
		frameworks = append(frameworks, fw)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate frameworks: %w", err)
	}
	return frameworks, nil
}

// Remove deletes a framework row, returning whether it existed.
func (s *Store) Remove(ctx context.Context, id int64) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM frameworks WHERE id = ?`, id)
	if err != nil {
		return false, fmt.Errorf("remove framework: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("rows affected: %w", err)
	}
	return affected > 0, nil
}

// Stats aggregates framework counts by status.
func (s *Store) Stats(ctx context.Context) (Stats, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT status, COUNT(1) FROM frameworks GROUP BY status`)
	if err != nil {
		return Stats{}, fmt.Errorf("framework stats: %w", err)
	}
	defer rows.Close()

	var stats Stats
	for rows.Next() {
		var status Status
		var count int
		if err := rows.Scan(&status, &count); err != nil {
			return Stats{}, fmt.Errorf("scan stats: %w", err)
		}
		switch status {
		case StatusActive:
			stats.Active = count
		case StatusTerminated:
			stats.Terminated = count
		}
	}
	if err := rows.Err(); err != nil {
		return Stats{}, fmt.Errorf("iterate stats: %w", err)
	}
	return stats, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanFramework(row rowScanner) (*Framework, error) {
	var (
		fw                      Framework
		registeredAt, updatedAt string
	)
	if err := row.Scan(&fw.ID, &fw.Name, &fw.Executor, &fw.Status, &registeredAt, &updatedAt); err != nil {
		return nil, err
	}
	var err error
	if fw.RegisteredAt, err = time.Parse(time.RFC3339Nano, registeredAt); err != nil {
		return nil, fmt.Errorf("parse registered_at: %w", err)
	}
	if fw.UpdatedAt, err = time.Parse(time.RFC3339Nano, updatedAt); err != nil {
		return nil, fmt.Errorf("parse updated_at: %w", err)
	}
	return &fw, nil
}

func repeatPlaceholder(n int) string {
	out := ""
	for i := 0; i < n; i++ {
		out += ", ?"
	}
	return out
}
