// Package store provides an in-memory store implementation.
package store

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"buildwatch/src/contracts"
)

// MemoryStore is an in-memory implementation of Store.
// Useful for testing and single-process runs without Postgres.
type MemoryStore struct {
	mu     sync.RWMutex
	builds map[string]map[string]contracts.BuildRecord // adapterKey -> buildID -> record
}

// NewMemoryStore creates a new in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		builds: make(map[string]map[string]contracts.BuildRecord),
	}
}

// RecordBuild inserts or replaces one build record.
func (s *MemoryStore) RecordBuild(ctx context.Context, record *contracts.BuildRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	byID, exists := s.builds[record.AdapterKey]
	if !exists {
		byID = make(map[string]contracts.BuildRecord)
		s.builds[record.AdapterKey] = byID
	}
	byID[record.BuildID] = *record
	return nil
}

// RecentBuilds returns up to limit records, most recently emitted first.
func (s *MemoryStore) RecentBuilds(ctx context.Context, adapterKey string, limit int) ([]contracts.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	byID := s.builds[adapterKey]
	records := make([]contracts.BuildRecord, 0, len(byID))
	for _, r := range byID {
		records = append(records, r)
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].EmittedAt.After(records[j].EmittedAt)
	})

	if limit > 0 && len(records) > limit {
		records = records[:limit]
	}
	return records, nil
}

// GetBuild returns one record by adapter key and build id.
func (s *MemoryStore) GetBuild(ctx context.Context, adapterKey, buildID string) (*contracts.BuildRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	record, exists := s.builds[adapterKey][buildID]
	if !exists {
		return nil, fmt.Errorf("%w: %s/%s", ErrBuildNotFound, adapterKey, buildID)
	}

	// Return a copy
	recordCopy := record
	return &recordCopy, nil
}

// Close closes the store (no-op for memory store).
func (s *MemoryStore) Close() error {
	return nil
}
