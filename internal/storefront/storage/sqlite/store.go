// Package sqlite provides a SQLite-backed storefront session storage
// implementation.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	sqlitemigrate "github.com/tidegoods/storefront/internal/platform/storage/sqlitemigrate"
	"github.com/tidegoods/storefront/internal/storefront/storage"
	"github.com/tidegoods/storefront/internal/storefront/storage/sqlite/migrations"
	_ "modernc.org/sqlite"
)

// Store persists session cart identifiers in SQLite.
type Store struct {
	sqlDB *sql.DB
}

func toMillis(value time.Time) int64 {
	return value.UTC().UnixMilli()
}

// Open opens a SQLite session store and applies embedded migrations.
func Open(path string) (*Store, error) {
	if strings.TrimSpace(path) == "" {
		return nil, fmt.Errorf("storage path is required")
	}
	cleanPath := filepath.Clean(path)
	dsn := cleanPath + "?_journal_mode=WAL&_foreign_keys=ON&_busy_timeout=5000&_synchronous=NORMAL"
	sqlDB, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	if err := sqlDB.Ping(); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping sqlite db: %w", err)
	}
	if err := sqlitemigrate.ApplyMigrations(sqlDB, migrations.FS); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("run migrations: %w", err)
	}
	return &Store{sqlDB: sqlDB}, nil
}

// Close closes the SQLite handle.
func (s *Store) Close() error {
	if s == nil || s.sqlDB == nil {
		return nil
	}
	return s.sqlDB.Close()
}

// GetCartID returns the cart identifier stored for the session.
func (s *Store) GetCartID(ctx context.Context, sessionID string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if s == nil || s.sqlDB == nil {
		return "", fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", fmt.Errorf("session id is required")
	}

	var cartID string
	row := s.sqlDB.QueryRowContext(ctx, "SELECT cart_id FROM cart_sessions WHERE session_id = ?", sessionID)
	if err := row.Scan(&cartID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", storage.ErrNotFound
		}
		return "", fmt.Errorf("query cart session: %w", err)
	}
	return cartID, nil
}

// SetCartID stores the cart identifier for the session.
func (s *Store) SetCartID(ctx context.Context, sessionID, cartID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	cartID = strings.TrimSpace(cartID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}
	if cartID == "" {
		return fmt.Errorf("cart id is required")
	}

	now := toMillis(time.Now())
	_, err := s.sqlDB.ExecContext(ctx, `
INSERT INTO cart_sessions (session_id, cart_id, created_at, updated_at)
VALUES (?, ?, ?, ?)
ON CONFLICT(session_id) DO UPDATE SET cart_id = excluded.cart_id, updated_at = excluded.updated_at
`, sessionID, cartID, now, now)
	if err != nil {
		return fmt.Errorf("upsert cart session: %w", err)
	}
	return nil
}

// DeleteStale removes cart identifiers whose sessions have not been updated
// since the cutoff and reports how many rows were removed.
func (s *Store) DeleteStale(ctx context.Context, cutoff time.Time) (int64, error) {
	if err := ctx.Err(); err != nil {
		return 0, err
	}
	if s == nil || s.sqlDB == nil {
		return 0, fmt.Errorf("storage is not configured")
	}

	result, err := s.sqlDB.ExecContext(ctx, "DELETE FROM cart_sessions WHERE updated_at < ?", toMillis(cutoff))
	if err != nil {
		return 0, fmt.Errorf("delete stale cart sessions: %w", err)
	}
	pruned, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count stale cart sessions: %w", err)
	}
	return pruned, nil
}

// DeleteCartID removes the stored cart identifier for the session.
func (s *Store) DeleteCartID(ctx context.Context, sessionID string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s == nil || s.sqlDB == nil {
		return fmt.Errorf("storage is not configured")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return fmt.Errorf("session id is required")
	}

	if _, err := s.sqlDB.ExecContext(ctx, "DELETE FROM cart_sessions WHERE session_id = ?", sessionID); err != nil {
		return fmt.Errorf("delete cart session: %w", err)
	}
	return nil
}
