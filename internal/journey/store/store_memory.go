package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"addressfinder/internal/journey"
	"addressfinder/pkg/platform/sentinel"
)

// InMemoryStore keeps journey records in a map. Used in tests and local
// development; it never expires records.
type InMemoryStore struct {
	mu      sync.RWMutex
	records map[journey.ID][]byte
}

// NewInMemoryStore constructs an empty in-memory keystore.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{records: make(map[journey.ID][]byte)}
}

func (s *InMemoryStore) Get(_ context.Context, id journey.ID) (*journey.Record, error) {
	s.mu.RLock()
	raw, ok := s.records[id]
	s.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("journey %s: %w", id, sentinel.ErrNotFound)
	}
	var record journey.Record
	if err := json.Unmarshal(raw, &record); err != nil {
		return nil, fmt.Errorf("decode journey %s: %w", id, err)
	}
	return &record, nil
}

func (s *InMemoryStore) Put(_ context.Context, id journey.ID, record *journey.Record) error {
	raw, err := json.Marshal(record)
	if err != nil {
		return fmt.Errorf("encode journey %s: %w", id, err)
	}
	s.mu.Lock()
	s.records[id] = raw
	s.mu.Unlock()
	return nil
}
