// Campusdocs - Read-only Content API for Institutional Websites
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/campusdocs

// Package mongostore implements store.Store on MongoDB.
//
// Filters translate directly to MongoDB query operators, so dotted paths
// through embedded arrays are evaluated by the server. Decoded documents are
// converted from BSON types to plain Go values (maps, slices, strings and
// numbers) before they leave this package.
package mongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"

	"github.com/tomtom215/campusdocs/internal/logging"
	"github.com/tomtom215/campusdocs/internal/metrics"
	"github.com/tomtom215/campusdocs/internal/store"
)

// Config configures the MongoDB client.
type Config struct {
	URI      string
	Database string
	// ConnectTimeout bounds the initial connection and ping.
	ConnectTimeout time.Duration
	// QueryTimeout bounds each query. Zero leaves the caller's deadline in charge.
	QueryTimeout time.Duration
	MaxPoolSize  uint64
}

// Store is a MongoDB-backed document store.
type Store struct {
	client *mongo.Client
	db     *mongo.Database
	cfg    Config
}

// Open connects to MongoDB and verifies the connection with a ping.
func Open(ctx context.Context, cfg Config) (*Store, error) {
	if cfg.URI == "" {
		return nil, errors.New("mongo uri is required")
	}
	if cfg.Database == "" {
		return nil, errors.New("mongo database name is required")
	}
	if cfg.ConnectTimeout <= 0 {
		cfg.ConnectTimeout = 10 * time.Second
	}

	opts := options.Client().
		ApplyURI(cfg.URI).
		SetConnectTimeout(cfg.ConnectTimeout).
		SetServerSelectionTimeout(cfg.ConnectTimeout).
		SetAppName("campusdocs")
	if cfg.MaxPoolSize > 0 {
		opts.SetMaxPoolSize(cfg.MaxPoolSize)
	}

	connectCtx, cancel := context.WithTimeout(ctx, cfg.ConnectTimeout)
	defer cancel()

	client, err := mongo.Connect(connectCtx, opts)
	if err != nil {
		return nil, fmt.Errorf("connect to mongodb: %w", err)
	}
	if err := client.Ping(connectCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("ping mongodb: %w", err)
	}

	logging.Info().
		Str("database", cfg.Database).
		Msg("Connected to MongoDB")

	return &Store{client: client, db: client.Database(cfg.Database), cfg: cfg}, nil
}

// Name implements store.Store.
func (s *Store) Name() string {
	return "mongo"
}

func (s *Store) queryContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.cfg.QueryTimeout > 0 {
		return context.WithTimeout(ctx, s.cfg.QueryTimeout)
	}
	return ctx, func() {}
}

// FindOne implements store.Store.
func (s *Store) FindOne(ctx context.Context, q store.Query) (doc store.Document, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQuery(s.Name(), "find_one", q.Collection, time.Since(start), err)
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	opts := options.FindOne()
	if p := projection(q.Projection); p != nil {
		opts.SetProjection(p)
	}

	var raw bson.M
	err = s.db.Collection(q.Collection).FindOne(ctx, filter(q.Filters), opts).Decode(&raw)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find one in %s: %w", q.Collection, err)
	}
	return toDocument(raw), nil
}

// Find implements store.Store.
func (s *Store) Find(ctx context.Context, q store.Query) (docs []store.Document, err error) {
	start := time.Now()
	defer func() {
		metrics.RecordStoreQuery(s.Name(), "find", q.Collection, time.Since(start), err)
	}()

	if err := q.Validate(); err != nil {
		return nil, err
	}
	ctx, cancel := s.queryContext(ctx)
	defer cancel()

	opts := options.Find()
	if p := projection(q.Projection); p != nil {
		opts.SetProjection(p)
	}
	if q.Limit > 0 {
		opts.SetLimit(int64(q.Limit))
	}

	cur, err := s.db.Collection(q.Collection).Find(ctx, filter(q.Filters), opts)
	if err != nil {
		return nil, fmt.Errorf("find in %s: %w", q.Collection, err)
	}
	var raws []bson.M
	if err := cur.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("read cursor for %s: %w", q.Collection, err)
	}

	docs = make([]store.Document, 0, len(raws))
	for _, raw := range raws {
		docs = append(docs, toDocument(raw))
	}
	return docs, nil
}

// InsertMany implements store.Seeder.
func (s *Store) InsertMany(ctx context.Context, collection string, docs []store.Document) (int, error) {
	if len(docs) == 0 {
		return 0, nil
	}
	items := make([]any, len(docs))
	for i := range docs {
		items[i] = docs[i]
	}
	res, err := s.db.Collection(collection).InsertMany(ctx, items)
	if err != nil {
		return 0, fmt.Errorf("insert into %s: %w", collection, err)
	}
	return len(res.InsertedIDs), nil
}

// Ping implements store.Store.
func (s *Store) Ping(ctx context.Context) error {
	return s.client.Ping(ctx, readpref.Primary())
}

// Close implements store.Store.
func (s *Store) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return s.client.Disconnect(ctx)
}

// filter translates store filters into a MongoDB query document.
func filter(filters []store.Filter) bson.D {
	out := bson.D{}
	for _, f := range filters {
		switch f.Op {
		case store.OpRegex:
			pattern, _ := f.Value.(string)
			out = append(out, bson.E{Key: f.Path, Value: primitive.Regex{Pattern: pattern}})
		default:
			out = append(out, bson.E{Key: f.Path, Value: f.Value})
		}
	}
	return out
}

func projection(p *store.Projection) bson.D {
	if p == nil {
		return nil
	}
	out := bson.D{}
	for _, field := range p.Include {
		out = append(out, bson.E{Key: field, Value: 1})
	}
	if p.ExcludeID {
		out = append(out, bson.E{Key: store.IDField, Value: 0})
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func toDocument(m bson.M) store.Document {
	doc := make(store.Document, len(m))
	for k, v := range m {
		doc[k] = toPlain(v)
	}
	return doc
}

// toPlain converts decoded BSON values into the plain Go values the rest of
// the service works with.
func toPlain(v any) any {
	switch t := v.(type) {
	case bson.M:
		return toDocument(t)
	case map[string]any:
		return toDocument(t)
	case bson.D:
		m := make(map[string]any, len(t))
		for _, e := range t {
			m[e.Key] = toPlain(e.Value)
		}
		return m
	case bson.A:
		out := make([]any, len(t))
		for i := range t {
			out[i] = toPlain(t[i])
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i := range t {
			out[i] = toPlain(t[i])
		}
		return out
	case primitive.ObjectID:
		return t.Hex()
	case primitive.DateTime:
		return t.Time().UTC().Format(time.RFC3339)
	case primitive.Timestamp:
		return time.Unix(int64(t.T), 0).UTC().Format(time.RFC3339)
	case primitive.Decimal128:
		return t.String()
	case int32:
		return int64(t)
	case primitive.Null, primitive.Undefined:
		return nil
	default:
		return t
	}
}
