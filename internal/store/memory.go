package store

import (
	"context"
	"reflect"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
)

// MemoryStore is an in-memory RecordStore for tests and credential-free
// development runs.
type MemoryStore struct {
	mu          sync.RWMutex
	collections map[string]map[string]Record
	closed      bool
}

// NewMemoryStore creates an empty in-memory store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{collections: make(map[string]map[string]Record)}
}

// SaveOrUpdateRecord upserts one record.
func (s *MemoryStore) SaveOrUpdateRecord(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	ids, err := s.SaveRecords(ctx, collection, []RecordInput{{ID: id, Fields: fields}})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SaveRecords upserts several records under one lock acquisition.
func (s *MemoryStore) SaveRecords(ctx context.Context, collection string, records []RecordInput) ([]string, error) {
	if collection == "" {
		return nil, ErrCollectionEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	coll, ok := s.collections[collection]
	if !ok {
		coll = make(map[string]Record)
		s.collections[collection] = coll
	}

	ids := make([]string, len(records))
	now := time.Now().UTC()
	for i, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		fields := make(map[string]any, len(rec.Fields))
		for k, v := range rec.Fields {
			fields[k] = v
		}
		coll[id] = Record{ID: id, Fields: fields, UpdatedAt: now}
		ids[i] = id
	}
	return ids, nil
}

// QueryRecords returns matching records sorted by id for determinism.
func (s *MemoryStore) QueryRecords(ctx context.Context, collection string, filter map[string]any) ([]Record, error) {
	if collection == "" {
		return nil, ErrCollectionEmpty
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	var out []Record
	for _, rec := range s.collections[collection] {
		if matchesFilter(rec.Fields, filter) {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Close marks the store closed.
func (s *MemoryStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}

// matchesFilter compares with reflect.DeepEqual: JSON round trips produce
// []any and map[string]any field values, which panic under plain interface
// comparison.
func matchesFilter(fields, filter map[string]any) bool {
	for k, want := range filter {
		got, ok := fields[k]
		if !ok || !reflect.DeepEqual(got, want) {
			return false
		}
	}
	return true
}
