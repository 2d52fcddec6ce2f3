package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

// SlotRepo is a string-keyed store of single string values backed by SQLite.
type SlotRepo struct {
	db  *sql.DB
	now func() time.Time
}

func NewSlotRepo(db *sql.DB) *SlotRepo {
	return &SlotRepo{db: db, now: time.Now}
}

func (r *SlotRepo) Lookup(ctx context.Context, key string) (*Slot, error) {
	row := r.db.QueryRowContext(ctx, `SELECT key, value, updated_at FROM slots WHERE key = ?`, key)

	var s Slot
	if err := row.Scan(&s.Key, &s.Value, &s.UpdatedAt); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("slot get: %w", err)
	}
	return &s, nil
}

// Get returns the stored value and whether the key was present.
func (r *SlotRepo) Get(ctx context.Context, key string) (string, bool, error) {
	s, err := r.Lookup(ctx, key)
	if err != nil || s == nil {
		return "", false, err
	}
	return s.Value, true, nil
}

func (r *SlotRepo) Put(ctx context.Context, key string, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO slots (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, r.now().UTC())
	if err != nil {
		return fmt.Errorf("slot put: %w", err)
	}
	return nil
}

// Delete removes key; deleting a missing key is not an error.
func (r *SlotRepo) Delete(ctx context.Context, key string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM slots WHERE key = ?`, key); err != nil {
		return fmt.Errorf("slot delete: %w", err)
	}
	return nil
}
