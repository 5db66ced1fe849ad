// Package file persists the approval overlay as a single JSON object on disk,
// identifier-string keys to booleans, rewritten in full on every upsert.
package file

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"flex_reviews/internal/adapters/observability"
)

type Store struct {
	mu   sync.Mutex
	path string
}

func New(path string) *Store { return &Store{path: path} }

// Read returns the overlay. A missing or unparsable file is an empty overlay,
// never an error.
func (s *Store) Read(ctx context.Context) (map[string]bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	observability.ObserveStore("file", "read")
	return s.readLocked(), nil
}

func (s *Store) readLocked() map[string]bool {
	m := map[string]bool{}
	b, err := os.ReadFile(s.path)
	if err != nil {
		return m
	}
	if err := json.Unmarshal(b, &m); err != nil {
		return map[string]bool{}
	}
	return m
}

// Upsert sets one entry and rewrites the whole map via a temp file + rename,
// so a concurrent Read never observes a partial write. Concurrent upserts are
// last-writer-wins.
func (s *Store) Upsert(ctx context.Context, id string, approved bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := s.readLocked()
	m[id] = approved

	b, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		observability.ObserveStore("file", "error")
		return fmt.Errorf("encode overlay: %w", err)
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		observability.ObserveStore("file", "error")
		return fmt.Errorf("create overlay dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".approved-*.json")
	if err != nil {
		observability.ObserveStore("file", "error")
		return fmt.Errorf("create temp overlay: %w", err)
	}
	if _, err := tmp.Write(b); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("write overlay: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("close overlay: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		observability.ObserveStore("file", "error")
		return fmt.Errorf("replace overlay: %w", err)
	}
	observability.ObserveStore("file", "upsert")
	return nil
}
