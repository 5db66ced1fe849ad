// Package mysql backs the approval overlay with a two-column upsert table.
package mysql

import (
	"context"
	"database/sql"

	"flex_reviews/internal/adapters/observability"
)

type Store struct{ db *sql.DB }

func New(db *sql.DB) *Store { return &Store{db: db} }

// EnsureSchema creates the approvals table when it does not exist yet. One
// table needs no migration chain.
func (s *Store) EnsureSchema(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, createApprovalsSQL)
	return err
}

func (s *Store) Read(ctx context.Context) (map[string]bool, error) {
	rows, err := s.db.QueryContext(ctx, selectApprovalsSQL)
	if err != nil {
		observability.ObserveStore("mysql", "error")
		return nil, err
	}
	defer rows.Close()

	m := map[string]bool{}
	for rows.Next() {
		var id string
		var approved bool
		if err := rows.Scan(&id, &approved); err != nil {
			observability.ObserveStore("mysql", "error")
			return nil, err
		}
		m[id] = approved
	}
	if err := rows.Err(); err != nil {
		observability.ObserveStore("mysql", "error")
		return nil, err
	}
	observability.ObserveStore("mysql", "read")
	return m, nil
}

// Upsert is a single-row INSERT ... ON DUPLICATE KEY UPDATE: atomic per key,
// last-writer-wins across concurrent callers.
func (s *Store) Upsert(ctx context.Context, id string, approved bool) error {
	if _, err := s.db.ExecContext(ctx, upsertApprovalSQL, id, approved); err != nil {
		observability.ObserveStore("mysql", "error")
		return err
	}
	observability.ObserveStore("mysql", "upsert")
	return nil
}
