// Package memstore provides MemoryStore implementations for the long-term
// trait memory: a JSON file document, SQLite, MySQL, and an in-memory
// store. All implement atomic whole-document read/write semantics.
package memstore

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/core"
)

// FileStore persists trait memory as a single JSON document. Writes go
// through a temp file and rename so readers never observe a partial
// document.
type FileStore struct {
	path   string
	logger *zap.Logger
}

// NewFileStore creates a file store at the given path, creating the
// parent directory if needed.
func NewFileStore(path string, logger *zap.Logger) (*FileStore, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create memory directory: %w", err)
	}
	return &FileStore{path: path, logger: logger}, nil
}

// Load reads the stored trait memory.
func (s *FileStore) Load(_ context.Context) (*core.TraitMemory, error) {
	data, err := os.ReadFile(s.path)
	if os.IsNotExist(err) {
		return nil, core.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read memory file: %w", err)
	}

	mem := core.NewTraitMemory()
	if err := json.Unmarshal(data, mem); err != nil {
		return nil, fmt.Errorf("failed to parse memory file: %w", err)
	}
	return mem, nil
}

// Save replaces the stored trait memory atomically.
func (s *FileStore) Save(_ context.Context, mem *core.TraitMemory) error {
	data, err := json.MarshalIndent(mem, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal memory: %w", err)
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("failed to write memory file: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace memory file: %w", err)
	}

	s.logger.Debug("Persisted long-term memory",
		zap.String("path", s.path),
		zap.Int("traits", len(mem.UserTraits)))
	return nil
}
