// Package memstore is an in-memory query.Store. Documents are kept per
// collection in a B-tree ordered by insertion sequence, which gives scans a
// deterministic creation order.
package memstore

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/btree"
	"github.com/google/uuid"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

const btreeDegree = 32

type item struct {
	seq uint64
	doc query.Document
}

func itemLess(a, b item) bool {
	return a.seq < b.seq
}

type collection struct {
	tree *btree.BTreeG[item]
	byID map[string]item
}

func newCollection() *collection {
	return &collection{
		tree: btree.NewG[item](btreeDegree, itemLess),
		byID: make(map[string]item),
	}
}

// UniqueIndex rejects a second document with the same Field value. Fold
// compares strings case-insensitively.
type UniqueIndex struct {
	Field string
	Fold  bool
}

// Store is safe for concurrent use.
type Store struct {
	mu          sync.RWMutex
	collections map[string]*collection
	unique      map[string][]UniqueIndex
	seq         uint64
	now         func() time.Time
	matcher     *matcher
}

// Option configures a Store.
type Option func(*Store)

// WithUniqueIndex declares a unique field on collection.
func WithUniqueIndex(collectionName, field string, fold bool) Option {
	return func(s *Store) {
		s.unique[collectionName] = append(s.unique[collectionName], UniqueIndex{Field: field, Fold: fold})
	}
}

// WithClock overrides the timestamp source.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// New constructs an empty store.
func New(opts ...Option) *Store {
	s := &Store{
		collections: make(map[string]*collection),
		unique:      make(map[string][]UniqueIndex),
		now:         func() time.Time { return time.Now().UTC() },
		matcher:     newMatcher(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

var _ query.Store = (*Store)(nil)

// ValidID reports whether id is a UUID.
func (s *Store) ValidID(id string) bool {
	_, err := uuid.Parse(id)
	return err == nil
}

// Ping reports readiness.
func (s *Store) Ping(ctx context.Context) error {
	return ctx.Err()
}

func (s *Store) coll(name string) *collection {
	c, ok := s.collections[name]
	if !ok {
		c = newCollection()
		s.collections[name] = c
	}
	return c
}

func checkCtx(ctx context.Context, collectionName string) error {
	if err := ctx.Err(); err != nil {
		if se := query.ContextError(collectionName, err); se != nil {
			return se
		}
		return err
	}
	return nil
}

// FindByIDs returns the documents whose _id is in ids, in insertion order.
func (s *Store) FindByIDs(ctx context.Context, collectionName string, ids []string, proj query.Projection) ([]query.Document, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return []query.Document{}, nil
	}
	items := make([]item, 0, len(ids))
	seen := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if it, ok := c.byID[id]; ok {
			items = append(items, it)
		}
	}
	sort.Slice(items, func(i, j int) bool { return items[i].seq < items[j].seq })

	out := make([]query.Document, len(items))
	for i, it := range items {
		out[i] = proj.Apply(it.doc)
	}
	return out, nil
}

// Find scans the collection in insertion order, filters, sorts, and pages.
func (s *Store) Find(ctx context.Context, collectionName string, opts query.FindOptions) ([]query.Document, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return nil, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return []query.Document{}, nil
	}

	var matched []query.Document
	c.tree.Ascend(func(it item) bool {
		if s.matcher.match(it.doc, opts.Filter) {
			matched = append(matched, it.doc)
		}
		return true
	})

	if len(opts.Sort) > 0 {
		sort.SliceStable(matched, func(i, j int) bool {
			return less(matched[i], matched[j], opts.Sort)
		})
	}

	if opts.Skip > 0 {
		if opts.Skip >= len(matched) {
			matched = nil
		} else {
			matched = matched[opts.Skip:]
		}
	}
	if opts.Limit > 0 && len(matched) > opts.Limit {
		matched = matched[:opts.Limit]
	}

	out := make([]query.Document, len(matched))
	for i, d := range matched {
		out[i] = opts.Projection.Apply(d)
	}
	return out, nil
}

// Count returns the number of documents matching filter.
func (s *Store) Count(ctx context.Context, collectionName string, filter query.Filter) (int64, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return 0, err
	}
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.collections[collectionName]
	if !ok {
		return 0, nil
	}
	var n int64
	c.tree.Ascend(func(it item) bool {
		if s.matcher.match(it.doc, filter) {
			n++
		}
		return true
	})
	return n, nil
}

// Insert stores a copy of doc, assigning _id and timestamps.
func (s *Store) Insert(ctx context.Context, collectionName string, doc query.Document) (query.Document, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	stored := doc.Clone()
	if stored == nil {
		stored = query.Document{}
	}
	id := stored.ID()
	if id == "" {
		id = uuid.NewString()
		stored[query.FieldPrimaryID] = id
	}
	c := s.coll(collectionName)
	if _, exists := c.byID[id]; exists {
		return nil, &query.StoreError{Kind: query.StoreDuplicate, Collection: collectionName, Field: query.FieldPrimaryID}
	}
	if err := s.checkUnique(collectionName, c, stored, id); err != nil {
		return nil, err
	}

	now := s.now()
	if !stored.Has(query.FieldCreatedAt) {
		stored[query.FieldCreatedAt] = now
	}
	stored[query.FieldUpdatedAt] = now

	s.seq++
	it := item{seq: s.seq, doc: stored}
	c.tree.ReplaceOrInsert(it)
	c.byID[id] = it
	return stored.Clone(), nil
}

// Update merges patch into the stored document.
func (s *Store) Update(ctx context.Context, collectionName, id string, patch query.Document) (query.Document, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collectionName)
	existing, ok := c.byID[id]
	if !ok {
		return nil, &query.StoreError{Kind: query.StoreNotFound, Collection: collectionName}
	}

	merged := existing.doc.Clone()
	for k, v := range patch.Clone() {
		if k == query.FieldPrimaryID || k == query.FieldCreatedAt {
			continue
		}
		merged[k] = v
	}
	if err := s.checkUnique(collectionName, c, merged, id); err != nil {
		return nil, err
	}
	merged[query.FieldUpdatedAt] = s.now()

	it := item{seq: existing.seq, doc: merged}
	c.tree.ReplaceOrInsert(it)
	c.byID[id] = it
	return merged.Clone(), nil
}

// Delete removes a document and returns it.
func (s *Store) Delete(ctx context.Context, collectionName, id string) (query.Document, error) {
	if err := checkCtx(ctx, collectionName); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	c := s.coll(collectionName)
	existing, ok := c.byID[id]
	if !ok {
		return nil, &query.StoreError{Kind: query.StoreNotFound, Collection: collectionName}
	}
	c.tree.Delete(existing)
	delete(c.byID, id)
	return existing.doc.Clone(), nil
}

// Len returns the number of documents in a collection.
func (s *Store) Len(collectionName string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if c, ok := s.collections[collectionName]; ok {
		return c.tree.Len()
	}
	return 0
}

func (s *Store) checkUnique(collectionName string, c *collection, doc query.Document, selfID string) error {
	for _, idx := range s.unique[collectionName] {
		value, ok := doc[idx.Field]
		if !ok || value == nil || value == "" {
			continue
		}
		for id, it := range c.byID {
			if id == selfID {
				continue
			}
			if sameValue(it.doc[idx.Field], value, idx.Fold) {
				return &query.StoreError{
					Kind:       query.StoreDuplicate,
					Collection: collectionName,
					Field:      idx.Field,
					Err:        fmt.Errorf("duplicate %s", idx.Field),
				}
			}
		}
	}
	return nil
}

func sameValue(a, b interface{}, fold bool) bool {
	if fold {
		as, aok := a.(string)
		bs, bok := b.(string)
		if aok && bok {
			return strings.EqualFold(as, bs)
		}
	}
	return equal(a, b)
}

func less(a, b query.Document, fields []query.SortField) bool {
	for _, f := range fields {
		c := compareForSort(a[f.Field], b[f.Field])
		if c == 0 {
			continue
		}
		if f.Desc {
			return c > 0
		}
		return c < 0
	}
	return false
}
