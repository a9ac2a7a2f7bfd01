package factory

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/mikey/llm-scam-detector/internal/config"
	"github.com/mikey/llm-scam-detector/internal/core"
	"github.com/mikey/llm-scam-detector/internal/store"
)

// StoreFactory creates pattern stores based on configuration
type StoreFactory struct {
	cfg    *config.Config
	logger *zap.Logger
}

// NewStoreFactory creates a new store factory
func NewStoreFactory(cfg *config.Config, logger *zap.Logger) *StoreFactory {
	return &StoreFactory{cfg: cfg, logger: logger}
}

// CreatePatternStore creates a pattern store based on the configuration
func (f *StoreFactory) CreatePatternStore() (core.PatternStore, error) {
	storeType := f.cfg.GetString("store.type")

	switch storeType {
	case "memory":
		return store.NewMemoryStore(f.logger), nil
	case "sqlite":
		sqlitePath := f.cfg.GetString("store.sqlite_path")
		if err := os.MkdirAll(filepath.Dir(sqlitePath), 0755); err != nil {
			return nil, fmt.Errorf("failed to create SQLite directory: %w", err)
		}
		return store.NewSQLiteStore(sqlitePath, f.logger)
	case "mysql":
		return store.NewMySQLStore(f.cfg.GetString("store.mysql_dsn"), f.logger)
	default:
		return nil, fmt.Errorf("unsupported store type: %s", storeType)
	}
}

// ShouldLoadDefaults reports whether the built-in pattern library should seed
// an empty store at startup.
func (f *StoreFactory) ShouldLoadDefaults() bool {
	return f.cfg.GetBool("store.load_defaults")
}
