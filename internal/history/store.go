// Dramatlas - Whisky Collection Analytics and Recommendations
// Copyright 2026 Dramatlas Authors
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/dramatlas/dramatlas

// Package history persists served recommendations in BadgerDB so users
// can review what they were suggested and when. Records expire via
// Badger's native TTL support.
package history

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/dramatlas/dramatlas/internal/logging"
	"github.com/dramatlas/dramatlas/internal/metrics"
	"github.com/dramatlas/dramatlas/internal/recommend"
)

// Key layout: hist:{username}:{reverse-timestamp}:{uuid}
// The reverse timestamp makes prefix iteration yield newest first.
const historyKeyPrefix = "hist:"

// Record is one served recommendation response.
type Record struct {
	ID               string                     `json:"id"`
	Username         string                     `json:"username"`
	Count            int                        `json:"count"`
	IncludeReasoning bool                       `json:"include_reasoning"`
	Fallback         bool                       `json:"fallback"`
	Recommendations  []recommend.Recommendation `json:"recommendations"`
	CreatedAt        time.Time                  `json:"created_at"`
}

// Store is a BadgerDB-backed history store.
type Store struct {
	db     *badger.DB
	ttl    time.Duration
	logger zerolog.Logger
}

// Open opens (or creates) the history database at path. An empty path
// with inMemory set runs fully in memory, for tests.
func Open(path string, ttl time.Duration, inMemory bool) (*Store, error) {
	opts := badger.DefaultOptions(path).
		WithInMemory(inMemory).
		WithLogger(nil)
	if inMemory {
		opts = opts.WithDir("").WithValueDir("")
	}

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("opening history database: %w", err)
	}

	return &Store{
		db:     db,
		ttl:    ttl,
		logger: logging.WithComponent("history"),
	}, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Append stores a record. A zero ID or CreatedAt is filled in.
func (s *Store) Append(ctx context.Context, rec *Record) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.CreatedAt.IsZero() {
		rec.CreatedAt = time.Now().UTC()
	}

	data, err := json.Marshal(rec)
	if err != nil {
		metrics.RecordHistoryWrite(false)
		return fmt.Errorf("marshal history record: %w", err)
	}

	key := historyKey(rec.Username, rec.CreatedAt, rec.ID)
	err = s.db.Update(func(txn *badger.Txn) error {
		entry := badger.NewEntry(key, data)
		if s.ttl > 0 {
			entry = entry.WithTTL(s.ttl)
		}
		return txn.SetEntry(entry)
	})
	if err != nil {
		metrics.RecordHistoryWrite(false)
		return fmt.Errorf("store history record: %w", err)
	}

	metrics.RecordHistoryWrite(true)
	return nil
}

// ListByUser returns up to limit records for username, newest first.
func (s *Store) ListByUser(ctx context.Context, username string, limit int) ([]Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = 20
	}

	records := make([]Record, 0, limit)
	prefix := []byte(historyKeyPrefix + username + ":")

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = prefix
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix) && len(records) < limit; it.Next() {
			err := it.Item().Value(func(val []byte) error {
				var rec Record
				if err := json.Unmarshal(val, &rec); err != nil {
					return fmt.Errorf("unmarshal history record: %w", err)
				}
				records = append(records, rec)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return records, nil
}

// StartCleanupRoutine runs Badger's value log garbage collection on a
// ticker until ctx is cancelled. Expired records are dropped by TTL;
// GC reclaims their disk space.
func (s *Store) StartCleanupRoutine(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = time.Hour
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				// ErrNoRewrite just means there was nothing to reclaim.
				if err := s.db.RunValueLogGC(0.5); err != nil && err != badger.ErrNoRewrite {
					s.logger.Warn().Err(err).Msg("History value log GC failed")
				}
			}
		}
	}()
}

// historyKey builds hist:{username}:{reverse-ts}:{id}. The reverse
// timestamp is zero-padded so keys sort lexicographically.
func historyKey(username string, at time.Time, id string) []byte {
	reverse := uint64(math.MaxInt64 - at.UnixNano())
	return []byte(fmt.Sprintf("%s%s:%020d:%s", historyKeyPrefix, username, reverse, id))
}
