package query

import (
	"context"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// RefKind tells the resolver how a reference value is keyed.
type RefKind int

const (
	// PrimaryRef values are primary identifiers (_id).
	PrimaryRef RefKind = iota + 1
	// ExternalRef values are external string identifiers (id).
	ExternalRef
)

func (k RefKind) String() string {
	switch k {
	case PrimaryRef:
		return "primary"
	case ExternalRef:
		return "external"
	}
	return "unknown"
}

// Ref is a tagged reference value.
type Ref struct {
	Kind  RefKind
	Value string
}

// Relation declares one join hop. The value at Field is replaced by the
// referenced document projected to Fields (all fields but the password
// when Fields is empty). Many relations hold a list of references.
type Relation struct {
	Field      string
	Kind       RefKind
	Collection string
	Fields     []string
	Many       bool
	Nested     []Relation
}

// JoinObserver is notified whenever a reference resolves to a stub.
type JoinObserver interface {
	ObserveJoinFallback(collection string)
}

type fetcher func(ctx context.Context, rel Relation, refs []string) map[string]Document

// Resolver attaches related documents to rows.
type Resolver struct {
	store       Reader
	logger      *zap.Logger
	concurrency int
	observer    JoinObserver
	fetchers    map[RefKind]fetcher
}

// NewResolver constructs a Resolver. concurrency bounds the number of
// in-flight external identifier lookups per relation.
func NewResolver(store Reader, logger *zap.Logger, concurrency int, observer JoinObserver) *Resolver {
	if logger == nil {
		logger = zap.NewNop()
	}
	if concurrency <= 0 {
		concurrency = 8
	}
	r := &Resolver{store: store, logger: logger, concurrency: concurrency, observer: observer}
	r.fetchers = map[RefKind]fetcher{
		PrimaryRef:  r.fetchPrimary,
		ExternalRef: r.fetchExternal,
	}
	return r
}

// Resolve joins relations into rows in place and returns rows. Primary
// relations are resolved before external ones. Missing references become
// stubs and lookup failures are logged, never returned.
func (r *Resolver) Resolve(ctx context.Context, rows []Document, relations []Relation) []Document {
	if len(rows) == 0 || len(relations) == 0 {
		return rows
	}
	ordered := append([]Relation(nil), relations...)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].Kind == PrimaryRef && ordered[j].Kind != PrimaryRef
	})

	for _, rel := range ordered {
		fetch, ok := r.fetchers[rel.Kind]
		if !ok {
			r.logger.Warn("unknown relation kind", zap.String("field", rel.Field), zap.Stringer("kind", rel.Kind))
			continue
		}
		found := fetch(ctx, rel, collectRefs(rows, rel))
		r.attach(rows, rel, found)
	}
	return rows
}

func (r *Resolver) attach(rows []Document, rel Relation, found map[string]Document) {
	for _, row := range rows {
		raw, ok := row[rel.Field]
		if !ok || raw == nil {
			continue
		}
		if rel.Many {
			refs := AsStrings(raw)
			members := make([]Document, 0, len(refs))
			for _, ref := range refs {
				if doc, ok := found[ref]; ok {
					members = append(members, doc.Clone())
				}
			}
			row[rel.Field] = members
			continue
		}
		ref, isString := raw.(string)
		if isString && ref == "" {
			continue
		}
		if doc, ok := found[ref]; isString && ok {
			row[rel.Field] = doc.Clone()
			continue
		}
		if r.observer != nil {
			r.observer.ObserveJoinFallback(rel.Collection)
		}
		row[rel.Field] = Stub(raw)
	}
}

func (r *Resolver) fetchPrimary(ctx context.Context, rel Relation, refs []string) map[string]Document {
	valid := make([]string, 0, len(refs))
	for _, ref := range refs {
		if r.store.ValidID(ref) {
			valid = append(valid, ref)
		}
	}
	if len(valid) == 0 {
		return nil
	}

	docs, err := r.store.FindByIDs(ctx, rel.Collection, valid, projectionFor(rel))
	if err != nil {
		r.logger.Warn("join lookup failed",
			zap.String("collection", rel.Collection),
			zap.String("field", rel.Field),
			zap.Int("refs", len(valid)),
			zap.Error(err))
		return nil
	}
	docs = r.Resolve(ctx, docs, rel.Nested)

	found := make(map[string]Document, len(docs))
	for _, d := range docs {
		found[d.ID()] = d
	}
	return found
}

func (r *Resolver) fetchExternal(ctx context.Context, rel Relation, refs []string) map[string]Document {
	if len(refs) == 0 {
		return nil
	}

	var (
		mu    sync.Mutex
		found = make(map[string]Document, len(refs))
		g     errgroup.Group
	)
	g.SetLimit(r.concurrency)
	proj := projectionFor(rel)

	for _, ref := range refs {
		ref := ref
		g.Go(func() error {
			docs, err := r.store.Find(ctx, rel.Collection, FindOptions{
				Filter:     Eq{Field: FieldExternalID, Value: ref},
				Limit:      1,
				Projection: proj,
			})
			if err != nil {
				r.logger.Warn("join lookup failed",
					zap.String("collection", rel.Collection),
					zap.String("field", rel.Field),
					zap.String("ref", ref),
					zap.Error(err))
				return nil
			}
			if len(docs) > 0 {
				mu.Lock()
				found[ref] = docs[0]
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	if len(rel.Nested) > 0 && len(found) > 0 {
		keys := make([]string, 0, len(found))
		for k := range found {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		docs := make([]Document, len(keys))
		for i, k := range keys {
			docs[i] = found[k]
		}
		r.Resolve(ctx, docs, rel.Nested)
	}
	return found
}

func projectionFor(rel Relation) Projection {
	p := Projection{Include: rel.Fields, Exclude: []string{FieldPassword}}
	if rel.Kind == ExternalRef {
		p = p.with(FieldExternalID)
	}
	nested := make([]string, len(rel.Nested))
	for i, n := range rel.Nested {
		nested[i] = n.Field
	}
	return p.with(nested...)
}

// collectRefs returns the distinct reference values of rel across rows in first-seen order.
func collectRefs(rows []Document, rel Relation) []string {
	seen := make(map[string]struct{})
	var refs []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		refs = append(refs, v)
	}
	for _, row := range rows {
		raw := row[rel.Field]
		if rel.Many {
			for _, v := range AsStrings(raw) {
				add(v)
			}
			continue
		}
		if v, ok := raw.(string); ok {
			add(v)
		}
	}
	return refs
}
