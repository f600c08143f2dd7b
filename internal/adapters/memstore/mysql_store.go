package memstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/go-sql-driver/mysql"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// MySQLStore persists trait memory in a MySQL table, one row per trait.
type MySQLStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewMySQLStore opens and verifies a MySQL trait store.
func NewMySQLStore(dsn string, logger *zap.Logger) (*MySQLStore, error) {
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open MySQL database: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to MySQL database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_traits (
			trait VARCHAR(64) PRIMARY KEY,
			active BOOLEAN NOT NULL,
			first_seen TIMESTAMP NULL
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &MySQLStore{db: db, logger: logger}, nil
}

// Load reads all trait rows into a TraitMemory.
func (s *MySQLStore) Load(ctx context.Context) (*core.TraitMemory, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT trait, active, first_seen FROM user_traits
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to query traits: %w", err)
	}
	defer rows.Close()

	mem := core.NewTraitMemory()
	found := false
	for rows.Next() {
		var trait string
		var active bool
		var firstSeen sql.NullTime
		if err := rows.Scan(&trait, &active, &firstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan trait row: %w", err)
		}
		found = true
		mem.UserTraits[trait] = active
		if firstSeen.Valid {
			mem.Timestamps[trait] = firstSeen.Time
		}
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate trait rows: %w", err)
	}
	if !found {
		return nil, core.ErrNotFound
	}
	return mem, nil
}

// Save replaces all trait rows in a single transaction.
func (s *MySQLStore) Save(ctx context.Context, mem *core.TraitMemory) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM user_traits`); err != nil {
		return fmt.Errorf("failed to clear traits: %w", err)
	}

	for trait, active := range mem.UserTraits {
		var firstSeen any
		if ts, ok := mem.Timestamps[trait]; ok {
			firstSeen = ts.UTC().Format("2006-01-02 15:04:05")
		}
		_, err := tx.ExecContext(ctx, `
			INSERT INTO user_traits (trait, active, first_seen)
			VALUES (?, ?, ?)
		`, trait, active, firstSeen)
		if err != nil {
			return fmt.Errorf("failed to insert trait %q: %w", trait, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit traits: %w", err)
	}
	return nil
}

// Close closes the underlying database.
func (s *MySQLStore) Close() error {
	return s.db.Close()
}
