package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/mmesoai/Omarim-AI-sub000/internal/logging"
)

// SQLiteStore implements RecordStore on a local SQLite database. Record
// fields are stored as a JSON document per row; filtering happens in Go.
type SQLiteStore struct {
	db     *sql.DB
	mu     sync.RWMutex
	dbPath string
	closed bool
}

// NewSQLiteStore opens (or creates) the database at the given path.
func NewSQLiteStore(path string) (*SQLiteStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSQLiteStore")
	defer timer.Stop()

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}

	s := &SQLiteStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}

	logging.Store("SQLite record store ready at %s", path)
	return s, nil
}

func (s *SQLiteStore) initialize() error {
	_, err := s.db.Exec(`
		CREATE TABLE IF NOT EXISTS records (
			collection TEXT NOT NULL,
			id         TEXT NOT NULL,
			fields     TEXT NOT NULL,
			updated_at INTEGER NOT NULL,
			PRIMARY KEY (collection, id)
		);
		CREATE INDEX IF NOT EXISTS idx_records_collection ON records(collection);
	`)
	if err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// SaveOrUpdateRecord upserts one record.
func (s *SQLiteStore) SaveOrUpdateRecord(ctx context.Context, collection, id string, fields map[string]any) (string, error) {
	ids, err := s.SaveRecords(ctx, collection, []RecordInput{{ID: id, Fields: fields}})
	if err != nil {
		return "", err
	}
	return ids[0], nil
}

// SaveRecords upserts several records inside a single transaction, so a
// multi-record update is atomic as one batched write.
func (s *SQLiteStore) SaveRecords(ctx context.Context, collection string, records []RecordInput) ([]string, error) {
	if collection == "" {
		return nil, ErrCollectionEmpty
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO records (collection, id, fields, updated_at)
		VALUES (?, ?, ?, ?)
		ON CONFLICT(collection, id) DO UPDATE SET
			fields = excluded.fields,
			updated_at = excluded.updated_at
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, len(records))
	now := time.Now().UTC().UnixMilli()
	for i, rec := range records {
		id := rec.ID
		if id == "" {
			id = uuid.NewString()
		}
		fieldsJSON, err := json.Marshal(rec.Fields)
		if err != nil {
			return nil, fmt.Errorf("failed to marshal fields for %s: %w", id, err)
		}
		if _, err := stmt.ExecContext(ctx, collection, id, string(fieldsJSON), now); err != nil {
			return nil, fmt.Errorf("failed to upsert record %s: %w", id, err)
		}
		ids[i] = id
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}

	logging.StoreDebug("Saved %d record(s) to %s", len(records), collection)
	return ids, nil
}

// QueryRecords loads a collection and filters by field equality in Go.
func (s *SQLiteStore) QueryRecords(ctx context.Context, collection string, filter map[string]any) ([]Record, error) {
	if collection == "" {
		return nil, ErrCollectionEmpty
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.closed {
		return nil, ErrStoreClosed
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT id, fields, updated_at FROM records WHERE collection = ? ORDER BY id",
		collection)
	if err != nil {
		return nil, fmt.Errorf("failed to query records: %w", err)
	}
	defer rows.Close()

	var out []Record
	for rows.Next() {
		var (
			id         string
			fieldsJSON string
			updatedAt  int64
		)
		if err := rows.Scan(&id, &fieldsJSON, &updatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan record: %w", err)
		}
		var fields map[string]any
		if err := json.Unmarshal([]byte(fieldsJSON), &fields); err != nil {
			return nil, fmt.Errorf("corrupt record %s: %w", id, err)
		}
		if !matchesFilter(fields, filter) {
			continue
		}
		out = append(out, Record{
			ID:        id,
			Fields:    fields,
			UpdatedAt: time.UnixMilli(updatedAt).UTC(),
		})
	}
	return out, rows.Err()
}

// Close closes the database.
func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil
	}
	s.closed = true
	return s.db.Close()
}
