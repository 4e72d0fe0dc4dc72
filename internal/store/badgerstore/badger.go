// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package badgerstore implements store.Store on an embedded BadgerDB.
//
// Documents are stored as JSON values under keys of the form
// "doc:<collection>:<sequence>", where the zero-padded sequence preserves
// insertion order for prefix iteration. Queries scan the collection prefix
// and evaluate filters in process with store.Matcher.
package badgerstore

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/goccy/go-json"
	"github.com/google/uuid"

	"github.com/tomtom215/campusdocs/internal/logging"
	"github.com/tomtom215/campusdocs/internal/metrics"
	"github.com/tomtom215/campusdocs/internal/store"
)

const (
	docKeyPrefix = "doc:"
	seqKeyPrefix = "seq:"

	// seqBandwidth is the number of sequence numbers leased per refill.
	seqBandwidth = 256
)

// Config configures the embedded store.
type Config struct {
	// Path is the data directory. Ignored when InMemory is set.
	Path     string
	InMemory bool
}

// Store is a BadgerDB-backed document store.
type Store struct {
	db     *badger.DB
	closed atomic.Bool
}

// Open opens (or creates) the database.
func Open(cfg Config) (*Store, error) {
	var opts badger.Options
	if cfg.InMemory {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if cfg.Path == "" {
			return nil, fmt.Errorf("badger path is required")
		}
		opts = badger.DefaultOptions(cfg.Path)
	}
	// Reduce logging verbosity
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open BadgerDB: %w", err)
	}

	logging.Info().
		Str("path", cfg.Path).
		Bool("in_memory", cfg.InMemory).
		Msg("Document store opened")
	return &Store{db: db}, nil
}

// Name implements store.Store.
func (s *Store) Name() string {
	return "badger"
}

func collectionPrefix(collection string) []byte {
	return []byte(docKeyPrefix + collection + ":")
}

func docKey(collection string, seq uint64) []byte {
	return []byte(fmt.Sprintf("%s%s:%020d", docKeyPrefix, collection, seq))
}

// FindOne implements store.Store.
func (s *Store) FindOne(ctx context.Context, q store.Query) (store.Document, error) {
	q.Limit = 1
	docs, err := s.find(ctx, q, "find_one")
	if err != nil || len(docs) == 0 {
		return nil, err
	}
	return docs[0], nil
}

// Find implements store.Store.
func (s *Store) Find(ctx context.Context, q store.Query) ([]store.Document, error) {
	return s.find(ctx, q, "find")
}

func (s *Store) find(ctx context.Context, q store.Query, op string) (docs []store.Document, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQuery(s.Name(), op, q.Collection, time.Since(start), err)
	}()

	if s.closed.Load() {
		return nil, store.ErrClosed
	}
	if err := q.Validate(); err != nil {
		return nil, err
	}
	m, err := store.NewMatcher(q.Filters)
	if err != nil {
		return nil, err
	}

	prefix := collectionPrefix(q.Collection)
	err = s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}

			var doc store.Document
			if err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &doc)
			}); err != nil {
				return fmt.Errorf("decode %s: %w", it.Item().Key(), err)
			}

			if !m.Match(doc) {
				continue
			}
			docs = append(docs, store.Project(doc, q.Projection))
			if q.Limit > 0 && len(docs) >= q.Limit {
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("query %s: %w", q.Collection, err)
	}
	return docs, nil
}

// InsertMany implements store.Seeder. Documents without an _id get a
// generated one.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []store.Document) (int, error) {
	if s.closed.Load() {
		return 0, store.ErrClosed
	}
	if collection == "" {
		return 0, fmt.Errorf("collection is required")
	}

	seq, err := s.db.GetSequence([]byte(seqKeyPrefix+collection), seqBandwidth)
	if err != nil {
		return 0, fmt.Errorf("get sequence: %w", err)
	}
	defer func() {
		if rerr := seq.Release(); rerr != nil {
			logging.Warn().Err(rerr).Str("collection", collection).Msg("Failed to release sequence")
		}
	}()

	wb := s.db.NewWriteBatch()
	defer wb.Cancel()

	for i, doc := range docs {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		if _, ok := doc[store.IDField]; !ok {
			withID := make(store.Document, len(doc)+1)
			for k, v := range doc {
				withID[k] = v
			}
			withID[store.IDField] = uuid.NewString()
			doc = withID
		}

		data, err := json.Marshal(doc)
		if err != nil {
			return 0, fmt.Errorf("marshal document %d: %w", i, err)
		}
		n, err := seq.Next()
		if err != nil {
			return 0, fmt.Errorf("next sequence: %w", err)
		}
		if err := wb.Set(docKey(collection, n), data); err != nil {
			return 0, fmt.Errorf("write document %d: %w", i, err)
		}
	}

	if err := wb.Flush(); err != nil {
		return 0, fmt.Errorf("flush batch: %w", err)
	}
	return len(docs), nil
}

// Ping implements store.Store.
func (s *Store) Ping(_ context.Context) error {
	if s.closed.Load() || s.db.IsClosed() {
		return store.ErrClosed
	}
	return nil
}

// Close implements store.Store.
func (s *Store) Close() error {
	if !s.closed.CompareAndSwap(false, true) {
		return nil
	}
	return s.db.Close()
}
