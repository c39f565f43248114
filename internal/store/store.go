// Package store provides the persistent record collaborator: a small
// collection/record API with all-or-nothing semantics per call.
package store

import (
	"context"
	"errors"
	"time"
)

// Store errors.
var (
	// ErrCollectionEmpty is returned when a collection path is empty.
	ErrCollectionEmpty = errors.New("collection path cannot be empty")

	// ErrStoreClosed is returned when operating on a closed store.
	ErrStoreClosed = errors.New("store is closed")
)

// Record is one stored document.
type Record struct {
	ID        string         `json:"id"`
	Fields    map[string]any `json:"fields"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// RecordInput is one document in a batched write.
type RecordInput struct {
	ID     string
	Fields map[string]any
}

// RecordStore is the persistent store contract. Multi-record writes are
// atomic as a single batched call; there are no cross-call transactions.
type RecordStore interface {
	// SaveOrUpdateRecord upserts one record. An empty id creates a new
	// record and returns its generated id.
	SaveOrUpdateRecord(ctx context.Context, collection, id string, fields map[string]any) (string, error)

	// SaveRecords upserts several records atomically and returns their ids
	// in input order.
	SaveRecords(ctx context.Context, collection string, records []RecordInput) ([]string, error)

	// QueryRecords returns records whose fields match every entry of filter
	// by equality. A nil filter returns the whole collection.
	QueryRecords(ctx context.Context, collection string, filter map[string]any) ([]Record, error)

	Close() error
}
