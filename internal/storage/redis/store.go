// Package redisstore keeps the approval overlay in a single Redis hash.
package redisstore

import (
	"context"
	"strconv"

	"github.com/redis/go-redis/v9"

	"flex_reviews/internal/adapters/observability"
)

const overlayKey = "reviews:approved"

type Store struct{ c *redis.Client }

func New(addr, pass string, db int) *Store {
	return &Store{c: redis.NewClient(&redis.Options{Addr: addr, Password: pass, DB: db})}
}

func (s *Store) Read(ctx context.Context) (map[string]bool, error) {
	fields, err := s.c.HGetAll(ctx, overlayKey).Result()
	if err != nil {
		observability.ObserveStore("redis", "error")
		return nil, err
	}
	observability.ObserveStore("redis", "read")
	m := make(map[string]bool, len(fields))
	for id, v := range fields {
		b, err := strconv.ParseBool(v)
		if err != nil {
			continue // unparsable entries count as absent
		}
		m[id] = b
	}
	return m, nil
}

// Upsert writes one hash field. HSET is atomic per key, so no partial write
// is observable; concurrent upserts are last-writer-wins.
func (s *Store) Upsert(ctx context.Context, id string, approved bool) error {
	if err := s.c.HSet(ctx, overlayKey, id, strconv.FormatBool(approved)).Err(); err != nil {
		observability.ObserveStore("redis", "error")
		return err
	}
	observability.ObserveStore("redis", "upsert")
	return nil
}
