// config/config.go
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"time"
)

// Config is the top-level node configuration.
type Config struct {
	Keys     KeysConfig
	Database DatabaseConfig
	Ledger   LedgerConfig
}

// KeysConfig controls the signing keypair file.
type KeysConfig struct {
	KeyFile string // "ledger_keypair"
}

// DatabaseConfig controls the BadgerDB block store and the JSON file store.
type DatabaseConfig struct {
	// BadgerDB
	Path             string        // "ledger_db"
	ValueLogFileSize int64         // 64 << 20 (64MB)
	MaxBatchSize     int           // 100
	FlushInterval    time.Duration // 200 * time.Millisecond
	WriteQueueSize   int           // 10000

	// read cache
	BlockCacheSize int // 128

	// JSON file store, one document per block
	BlockFileDir string // "blocks"
}

// LedgerConfig controls the orchestrator.
type LedgerConfig struct {
	PersistWorkers   int           // 2
	PersistQueueSize int           // 1024
	CommitInterval   time.Duration // 500 * time.Millisecond
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() *Config {
	return &Config{
		Keys: KeysConfig{
			KeyFile: "ledger_keypair",
		},
		Database: DatabaseConfig{
			Path:             "ledger_db",
			ValueLogFileSize: 64 << 20,
			MaxBatchSize:     100,
			FlushInterval:    200 * time.Millisecond,
			WriteQueueSize:   10000,
			BlockCacheSize:   128,
			BlockFileDir:     "blocks",
		},
		Ledger: LedgerConfig{
			PersistWorkers:   2,
			PersistQueueSize: 1024,
			CommitInterval:   500 * time.Millisecond,
		},
	}
}

// LoadFromFile reads a JSON config. Missing file falls back to defaults;
// fields absent from the file keep their default values.
func LoadFromFile(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := json.Unmarshal(data, cfg); err != nil {
		return DefaultConfig(), fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return DefaultConfig(), err
	}
	return cfg, nil
}

// Validate rejects values the runtime cannot work with.
func (c *Config) Validate() error {
	if c.Database.MaxBatchSize <= 0 {
		return fmt.Errorf("config: MaxBatchSize must be positive, got %d", c.Database.MaxBatchSize)
	}
	if c.Database.FlushInterval <= 0 {
		return fmt.Errorf("config: FlushInterval must be positive, got %v", c.Database.FlushInterval)
	}
	if c.Database.WriteQueueSize <= 0 {
		return fmt.Errorf("config: WriteQueueSize must be positive, got %d", c.Database.WriteQueueSize)
	}
	if c.Ledger.PersistWorkers <= 0 {
		return fmt.Errorf("config: PersistWorkers must be positive, got %d", c.Ledger.PersistWorkers)
	}
	if c.Ledger.PersistQueueSize <= 0 {
		return fmt.Errorf("config: PersistQueueSize must be positive, got %d", c.Ledger.PersistQueueSize)
	}
	return nil
}
