package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// StorageKey is the fixed key the learner's progress document lives under.
// One document per learner/device.
const StorageKey = "learner"

// ProgressDocs persists the progress document and its backups. It satisfies
// the progress package's Storage interface.
type ProgressDocs struct {
	db *sql.DB
}

// Load reads the persisted document, or (nil, nil) when none exists yet.
func (r *ProgressDocs) Load(ctx context.Context) ([]byte, error) {
	var data string
	err := r.db.QueryRowContext(ctx,
		`SELECT data FROM progress_docs WHERE key = ?`, StorageKey,
	).Scan(&data)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load progress document: %w", err)
	}
	return []byte(data), nil
}

// Save upserts the document under the fixed key.
func (r *ProgressDocs) Save(ctx context.Context, doc []byte) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress_docs (key, data, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET data = excluded.data, updated_at = excluded.updated_at`,
		StorageKey, string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("save progress document: %w", err)
	}
	return nil
}

// Backup preserves an unusable or replaced document with the reason it was
// set aside, so a failed migration never silently destroys history.
func (r *ProgressDocs) Backup(ctx context.Context, doc []byte, reason string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO progress_backups (key, reason, data, created_at) VALUES (?, ?, ?, ?)`,
		StorageKey, reason, string(doc), time.Now().UTC())
	if err != nil {
		return fmt.Errorf("backup progress document: %w", err)
	}
	return nil
}
