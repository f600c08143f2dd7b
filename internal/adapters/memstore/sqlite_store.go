package memstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// SQLiteStore persists trait memory in a SQLite table, one row per trait.
// Save rewrites the whole table in a transaction to keep whole-document
// semantics.
type SQLiteStore struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewSQLiteStore opens (and if needed initializes) a SQLite trait store.
func NewSQLiteStore(dbPath string, logger *zap.Logger) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS user_traits (
			trait TEXT PRIMARY KEY,
			active BOOLEAN NOT NULL,
			first_seen TIMESTAMP
		)
	`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create table: %w", err)
	}

	return &SQLiteStore{db: db, logger: logger}, nil
}

// Load reads all trait rows into a TraitMemory.
func (s *SQLiteStore) Load(ctx context.Context) (*core.TraitMemory, error) {
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
		var firstSeen sql.NullString
		if err := rows.Scan(&trait, &active, &firstSeen); err != nil {
			return nil, fmt.Errorf("failed to scan trait row: %w", err)
		}
		found = true
		mem.UserTraits[trait] = active
		if firstSeen.Valid {
			ts, err := time.Parse(time.RFC3339, firstSeen.String)
			if err != nil {
				s.logger.Warn("Skipping unparseable trait timestamp",
					zap.String("trait", trait),
					zap.String("first_seen", firstSeen.String))
				continue
			}
			mem.Timestamps[trait] = ts
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
func (s *SQLiteStore) Save(ctx context.Context, mem *core.TraitMemory) error {
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
			firstSeen = ts.Format(time.RFC3339)
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
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}
