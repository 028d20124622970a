// Package store persists scan results so that later reports and
// incremental scans can reuse them.
package store

import (
	"fmt"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// MemoryPath selects the in-memory backend.
const MemoryPath = ":memory:"

// Store provides persistence for scan results.
type Store interface {
	// AddBlob records a scanned snapshot.
	AddBlob(id types.ContentID, size int64) error

	// AddProvenance associates a source with a snapshot.
	AddProvenance(id types.ContentID, prov types.Provenance) error

	// AddComponent stores a record. Storing the same component of the same
	// snapshot twice is a no-op.
	AddComponent(r *types.Record) error

	// GetComponents retrieves the records of one snapshot in source order.
	GetComponents(id types.ContentID) ([]*types.Record, error)

	// GetAllComponents retrieves every record, ordered by path then offset.
	GetAllComponents() ([]*types.Record, error)

	// BlobExists checks if a snapshot has already been scanned.
	BlobExists(id types.ContentID) (bool, error)

	// Close closes the database connection.
	Close() error
}

// Config for store initialization.
type Config struct {
	// Path is the database file path, or MemoryPath.
	Path string
}

// New creates a Store: a MemoryStore for MemoryPath, SQLite otherwise.
func New(cfg Config) (Store, error) {
	if cfg.Path == "" {
		return nil, fmt.Errorf("path is required")
	}
	if cfg.Path == MemoryPath {
		return NewMemory(), nil
	}
	return NewSQLite(cfg.Path)
}
