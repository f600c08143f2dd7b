package factory

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/mikey/email-triage/internal/adapters/memstore"
	"github.com/mikey/email-triage/internal/config"
	"github.com/mikey/email-triage/internal/core"
)

// StoreFactory creates trait memory stores
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{
		cfg:    cfg,
		logger: logger,
	}
}

// CreateMemoryStore creates a trait memory store based on the configuration
func (f *StoreFactory) CreateMemoryStore() (core.MemoryStore, error) {
	memCfg := f.cfg.GetMemory()

	switch memCfg.Type {
	case "memory":
		return memstore.NewInMemoryStore(), nil
	case "file":
		store, err := memstore.NewFileStore(memCfg.FilePath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create file memory store: %w", err)
		}
		return store, nil
	case "sqlite":
		store, err := memstore.NewSQLiteStore(memCfg.SQLitePath, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create SQLite memory store: %w", err)
		}
		return store, nil
	case "mysql":
		store, err := memstore.NewMySQLStore(memCfg.MySQLDSN, f.logger)
		if err != nil {
			return nil, fmt.Errorf("failed to create MySQL memory store: %w", err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("unsupported memory store type: %s", memCfg.Type)
	}
}
