package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	jsoniter "github.com/json-iterator/go"
	"github.com/lib/pq"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	pqUniqueViolation = "23505"
	pqQueryCanceled   = "57014"
)

// QueryObserver receives the duration of every store operation.
type QueryObserver interface {
	ObserveDBQuery(label string, duration time.Duration)
}

type documentRow struct {
	ID  string `db:"id"`
	Doc []byte `db:"doc"`
}

// DocumentStore is a query.Store over a single Postgres table holding JSONB
// documents keyed by collection and UUID.
type DocumentStore struct {
	db       *sqlx.DB
	schema   Schema
	timeout  time.Duration
	logger   *zap.Logger
	observer QueryObserver
	now      func() time.Time
}

// DocumentStoreOption configures a DocumentStore.
type DocumentStoreOption func(*DocumentStore)

// WithQueryTimeout bounds every store operation.
func WithQueryTimeout(d time.Duration) DocumentStoreOption {
	return func(s *DocumentStore) { s.timeout = d }
}

// WithQueryObserver records operation durations.
func WithQueryObserver(o QueryObserver) DocumentStoreOption {
	return func(s *DocumentStore) { s.observer = o }
}

// WithStoreClock overrides the timestamp source.
func WithStoreClock(now func() time.Time) DocumentStoreOption {
	return func(s *DocumentStore) { s.now = now }
}

// NewDocumentStore constructs the Postgres store.
func NewDocumentStore(db *sqlx.DB, schema Schema, logger *zap.Logger, opts ...DocumentStoreOption) *DocumentStore {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &DocumentStore{
		db:      db,
		schema:  schema,
		timeout: 5 * time.Second,
		logger:  logger,
		now:     func() time.Time { return time.Now().UTC() },
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ query.Store = (*DocumentStore)(nil)

// ValidID reports whether id is a UUID.
func (s *DocumentStore) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Ping checks database connectivity.
func (s *DocumentStore) Ping(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	return s.db.PingContext(ctx)
}

// FindByIDs returns documents whose _id is in ids, in insertion order.
func (s *DocumentStore) FindByIDs(ctx context.Context, collection string, ids []string, proj query.Projection) ([]query.Document, error) {
	valid := make([]string, 0, len(ids))
	for _, id := range ids {
		if s.ValidID(id) {
			valid = append(valid, id)
		}
	}
	if len(valid) == 0 {
		return []query.Document{}, nil
	}

	const stmt = `SELECT id, doc FROM documents WHERE collection = $1 AND id = ANY($2::uuid[]) ORDER BY seq ASC`
	var rows []documentRow
	err := s.run(ctx, "find_by_ids", collection, func(ctx context.Context) error {
		return s.db.SelectContext(ctx, &rows, stmt, collection, pq.StringArray(valid))
	})
	if err != nil {
		return nil, err
	}
	return s.decodeAll(collection, rows, proj)
}

// Find runs a filtered, sorted and paged scan.
func (s *DocumentStore) Find(ctx context.Context, collection string, opts query.FindOptions) ([]query.Document, error) {
	b := &sqlBuilder{schema: s.schema, args: []interface{}{collection}}
	where, err := b.build(opts.Filter)
	if err != nil {
		return nil, err
	}
	order, err := b.orderBy(opts.Sort)
	if err != nil {
		return nil, err
	}
	stmt := fmt.Sprintf("SELECT id, doc FROM documents WHERE collection = $1 AND %s ORDER BY %s", where, order)
	if opts.Limit > 0 {
		stmt += fmt.Sprintf(" LIMIT %d", opts.Limit)
	}
	if opts.Skip > 0 {
		stmt += fmt.Sprintf(" OFFSET %d", opts.Skip)
	}

	var rows []documentRow
	err = s.run(ctx, "find", collection, func(ctx context.Context) error {
		return s.db.SelectContext(ctx, &rows, stmt, b.args...)
	})
	if err != nil {
		return nil, err
	}
	return s.decodeAll(collection, rows, opts.Projection)
}

// Count returns the number of documents matching filter.
func (s *DocumentStore) Count(ctx context.Context, collection string, filter query.Filter) (int64, error) {
	b := &sqlBuilder{schema: s.schema, args: []interface{}{collection}}
	where, err := b.build(filter)
	if err != nil {
		return 0, err
	}
	stmt := "SELECT COUNT(*) FROM documents WHERE collection = $1 AND " + where

	var total int64
	err = s.run(ctx, "count", collection, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &total, stmt, b.args...)
	})
	return total, err
}

// Insert stores doc, assigning _id and timestamps.
func (s *DocumentStore) Insert(ctx context.Context, collection string, doc query.Document) (query.Document, error) {
	stored := doc.Clone()
	if stored == nil {
		stored = query.Document{}
	}
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
	}
	delete(stored, query.FieldPrimaryID)

	now := s.now()
	if !stored.Has(query.FieldCreatedAt) {
		stored[query.FieldCreatedAt] = now
	}
	stored[query.FieldUpdatedAt] = now

	payload, err := json.Marshal(stored)
	if err != nil {
		return nil, fmt.Errorf("encode %s document: %w", collection, err)
	}

	const stmt = `INSERT INTO documents (collection, id, doc) VALUES ($1, $2, $3::jsonb)`
	err = s.run(ctx, "insert", collection, func(ctx context.Context) error {
		_, execErr := s.db.ExecContext(ctx, stmt, collection, id, string(payload))
		return execErr
	})
	if err != nil {
		return nil, err
	}
	stored[query.FieldPrimaryID] = id
	return stored, nil
}

// Update merges patch into the stored document.
func (s *DocumentStore) Update(ctx context.Context, collection, id string, patch query.Document) (query.Document, error) {
	if !s.ValidID(id) {
		return nil, &query.StoreError{Kind: query.StoreNotFound, Collection: collection}
	}
	changes := patch.Clone()
	if changes == nil {
		changes = query.Document{}
	}
	delete(changes, query.FieldPrimaryID)
	delete(changes, query.FieldCreatedAt)
	changes[query.FieldUpdatedAt] = s.now()

	payload, err := json.Marshal(changes)
	if err != nil {
		return nil, fmt.Errorf("encode %s patch: %w", collection, err)
	}

	const stmt = `UPDATE documents SET doc = doc || $3::jsonb WHERE collection = $1 AND id = $2 RETURNING id, doc`
	var row documentRow
	err = s.run(ctx, "update", collection, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &row, stmt, collection, id, string(payload))
	})
	if err != nil {
		return nil, err
	}
	return s.decode(collection, row)
}

// Delete removes a document and returns it.
func (s *DocumentStore) Delete(ctx context.Context, collection, id string) (query.Document, error) {
	if !s.ValidID(id) {
		return nil, &query.StoreError{Kind: query.StoreNotFound, Collection: collection}
	}
	const stmt = `DELETE FROM documents WHERE collection = $1 AND id = $2 RETURNING id, doc`
	var row documentRow
	err := s.run(ctx, "delete", collection, func(ctx context.Context) error {
		return s.db.GetContext(ctx, &row, stmt, collection, id)
	})
	if err != nil {
		return nil, err
	}
	return s.decode(collection, row)
}

// run applies the operation timeout, records the duration, and maps driver
// failures onto query.StoreError.
func (s *DocumentStore) run(ctx context.Context, op, collection string, fn func(context.Context) error) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	if s.observer != nil {
		s.observer.ObserveDBQuery(op+":"+collection, time.Since(start))
	}
	if err == nil {
		return nil
	}
	mapped := s.mapError(collection, err)
	if mapped.Kind != query.StoreNotFound && mapped.Kind != query.StoreDuplicate {
		s.logger.Error("document store failure",
			zap.String("op", op),
			zap.String("collection", collection),
			zap.Stringer("kind", mapped.Kind),
			zap.Error(err))
	}
	return mapped
}

func (s *DocumentStore) mapError(collection string, err error) *query.StoreError {
	if errors.Is(err, sql.ErrNoRows) {
		return &query.StoreError{Kind: query.StoreNotFound, Collection: collection, Err: err}
	}
	if se := query.ContextError(collection, err); se != nil {
		return se
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			field := query.FieldPrimaryID
			if u, ok := s.schema.uniqueByIndex(pqErr.Constraint); ok {
				field = u.Field
			}
			return &query.StoreError{Kind: query.StoreDuplicate, Collection: collection, Field: field, Err: err}
		case pqQueryCanceled:
			return &query.StoreError{Kind: query.StoreTimeout, Collection: collection, Err: err}
		}
	}
	return &query.StoreError{Kind: query.StoreUnavailable, Collection: collection, Err: err}
}

func (s *DocumentStore) decodeAll(collection string, rows []documentRow, proj query.Projection) ([]query.Document, error) {
	out := make([]query.Document, 0, len(rows))
	for _, row := range rows {
		doc, err := s.decode(collection, row)
		if err != nil {
			return nil, err
		}
		out = append(out, proj.Apply(doc))
	}
	return out, nil
}

// decode restores typed values: time fields become time.Time.
func (s *DocumentStore) decode(collection string, row documentRow) (query.Document, error) {
	doc := query.Document{}
	if len(row.Doc) > 0 {
		if err := json.Unmarshal(row.Doc, &doc); err != nil {
			return nil, fmt.Errorf("decode %s document %s: %w", collection, row.ID, err)
		}
	}
	for field, v := range doc {
		if s.schema.kind(field) != KindTime {
			continue
		}
		if t, ok := query.AsTime(v); ok {
			doc[field] = t
		}
	}
	doc[query.FieldPrimaryID] = row.ID
	return doc, nil
}

// Migrate applies the schema DDL.
func (s *DocumentStore) Migrate(ctx context.Context) error {
	for _, stmt := range s.schema.DDL() {
		if _, err := s.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("migrate documents: %w", err)
		}
	}
	return nil
}
