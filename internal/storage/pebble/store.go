// Package pebblestore backs the approval overlay with an embedded Pebble DB.
package pebblestore

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/cockroachdb/pebble"

	"flex_reviews/internal/adapters/observability"
)

type Store struct{ db *pebble.DB }

func Open(dir string) (*Store, error) {
	d, err := pebble.Open(filepath.Clean(dir), &pebble.Options{})
	if err != nil {
		return nil, fmt.Errorf("pebble open: %w", err)
	}
	return &Store{db: d}, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) Read(ctx context.Context) (map[string]bool, error) {
	it, err := s.db.NewIter(nil)
	if err != nil {
		observability.ObserveStore("pebble", "error")
		return nil, err
	}
	defer it.Close()

	m := map[string]bool{}
	for it.First(); it.Valid(); it.Next() {
		k := append([]byte(nil), it.Key()...)
		m[string(k)] = len(it.Value()) == 1 && it.Value()[0] == '1'
	}
	if err := it.Error(); err != nil {
		observability.ObserveStore("pebble", "error")
		return nil, err
	}
	observability.ObserveStore("pebble", "read")
	return m, nil
}

// Upsert writes one key with a synced Set, so the entry is durable before the
// curation action is acknowledged.
func (s *Store) Upsert(ctx context.Context, id string, approved bool) error {
	v := []byte{'0'}
	if approved {
		v[0] = '1'
	}
	if err := s.db.Set([]byte(id), v, pebble.Sync); err != nil {
		observability.ObserveStore("pebble", "error")
		return err
	}
	observability.ObserveStore("pebble", "upsert")
	return nil
}
