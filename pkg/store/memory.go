package store

import (
	"cmp"
	"slices"
	"sync"

	"github.com/praetorian-inc/tsce/pkg/types"
)

// componentKey mirrors the UNIQUE constraint of the components table.
type componentKey struct {
	blob     types.ContentID
	path     string
	tagStart int
}

// MemoryStore implements Store using in-memory data structures.
// No CGO dependency required.
type MemoryStore struct {
	mu         sync.RWMutex
	blobs      map[types.ContentID]int64
	provenance map[types.ContentID][]types.Provenance
	components map[componentKey]*types.Record
}

// NewMemory creates a new in-memory store.
func NewMemory() *MemoryStore {
	return &MemoryStore{
		blobs:      make(map[types.ContentID]int64),
		provenance: make(map[types.ContentID][]types.Provenance),
		components: make(map[componentKey]*types.Record),
	}
}

// AddBlob stores a blob record.
func (m *MemoryStore) AddBlob(id types.ContentID, size int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, exists := m.blobs[id]; !exists {
		m.blobs[id] = size
	}
	return nil
}

// AddProvenance associates provenance with a blob.
func (m *MemoryStore) AddProvenance(id types.ContentID, prov types.Provenance) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, p := range m.provenance[id] {
		if p.Kind() == prov.Kind() && p.Path() == prov.Path() {
			return nil
		}
	}
	m.provenance[id] = append(m.provenance[id], prov)
	return nil
}

// GetProvenance retrieves every provenance record of a blob.
func (m *MemoryStore) GetProvenance(id types.ContentID) []types.Provenance {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return slices.Clone(m.provenance[id])
}

// AddComponent stores a component record.
func (m *MemoryStore) AddComponent(r *types.Record) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := componentKey{blob: r.ContentID, path: r.Path, tagStart: r.Component.TagOffsets.Start}
	if _, exists := m.components[key]; !exists {
		m.components[key] = r
	}
	return nil
}

// GetComponents retrieves the records of one blob.
func (m *MemoryStore) GetComponents(id types.ContentID) ([]*types.Record, error) {
	return m.collect(func(r *types.Record) bool { return r.ContentID == id }), nil
}

// GetAllComponents retrieves every record.
func (m *MemoryStore) GetAllComponents() ([]*types.Record, error) {
	return m.collect(func(*types.Record) bool { return true }), nil
}

func (m *MemoryStore) collect(keep func(*types.Record) bool) []*types.Record {
	m.mu.RLock()
	defer m.mu.RUnlock()

	result := []*types.Record{}
	for _, r := range m.components {
		if keep(r) {
			result = append(result, r)
		}
	}
	slices.SortFunc(result, func(a, b *types.Record) int {
		return cmp.Or(
			cmp.Compare(a.Path, b.Path),
			cmp.Compare(a.Component.TagOffsets.Start, b.Component.TagOffsets.Start),
		)
	})
	return result
}

// BlobExists checks if a blob has already been scanned.
func (m *MemoryStore) BlobExists(id types.ContentID) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	_, exists := m.blobs[id]
	return exists, nil
}

// Close is a no-op for the in-memory store.
func (m *MemoryStore) Close() error {
	return nil
}
