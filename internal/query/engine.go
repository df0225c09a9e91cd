package query

import (
	"context"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Engine runs the listing pipeline: compile, count and fetch, join.
type Engine struct {
	store    Store
	compiler *Compiler
	resolver *Resolver
	logger   *zap.Logger
}

// Option customises an Engine.
type Option func(*engineOptions)

type engineOptions struct {
	concurrency int
	observer    JoinObserver
}

// WithJoinConcurrency bounds concurrent external identifier lookups.
func WithJoinConcurrency(n int) Option {
	return func(o *engineOptions) { o.concurrency = n }
}

// WithJoinObserver registers a fallback observer, typically metrics.
func WithJoinObserver(obs JoinObserver) Option {
	return func(o *engineOptions) { o.observer = obs }
}

// NewEngine wires the engine around an explicit store.
func NewEngine(store Store, logger *zap.Logger, opts ...Option) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	o := engineOptions{concurrency: 8}
	for _, opt := range opts {
		opt(&o)
	}
	return &Engine{
		store:    store,
		compiler: NewCompiler(store),
		resolver: NewResolver(store, logger, o.concurrency, o.observer),
		logger:   logger,
	}
}

// Store exposes the underlying store for writes.
func (e *Engine) Store() Store { return e.store }

// Compiler exposes the filter compiler.
func (e *Engine) Compiler() *Compiler { return e.compiler }

// ListRequest describes one listing.
type ListRequest struct {
	Collection string
	Spec       FilterSpec
	Values     Values
	// Extra is ANDed with the compiled filter.
	Extra      Filter
	Sort       []SortField
	Page       Page
	Projection Projection
	Relations  []Relation
}

// ListResult is one page of joined rows.
type ListResult struct {
	Data        []Document
	Count       int64
	TotalPages  int
	CurrentPage int
}

// List compiles the request filter and runs count and page fetch against
// the same compiled filter.
func (e *Engine) List(ctx context.Context, req ListRequest) (*ListResult, error) {
	page := req.Page
	if page.Limit == 0 {
		page = NewPage(page.Number, DefaultLimit)
	}

	compiled, err := e.compiler.Compile(ctx, req.Spec, req.Values)
	if err != nil {
		return nil, err
	}
	filter := Simplify(And{compiled, req.Extra})

	result := &ListResult{Data: []Document{}, CurrentPage: page.Number}
	if IsNone(filter) {
		return result, nil
	}

	var (
		count int64
		rows  []Document
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		n, err := e.store.Count(gctx, req.Collection, filter)
		count = n
		return err
	})
	g.Go(func() error {
		docs, err := e.store.Find(gctx, req.Collection, FindOptions{
			Filter:     filter,
			Sort:       StableSort(req.Sort),
			Skip:       page.Skip(),
			Limit:      page.Limit,
			Projection: withoutPassword(req.Projection),
		})
		rows = docs
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, Translate(err, "")
	}

	if rows != nil {
		result.Data = e.resolver.Resolve(ctx, rows, req.Relations)
	}
	result.Count = count
	result.TotalPages = TotalPages(count, page.Limit)
	return result, nil
}

// Get loads one document by primary identifier and joins relations. noun
// is used in the malformed and not-found messages.
func (e *Engine) Get(ctx context.Context, collection, noun, id string, proj Projection, relations []Relation) (Document, error) {
	if !e.store.ValidID(id) {
		return nil, MalformedID(noun)
	}
	doc, err := FindByID(ctx, e.store, collection, id, withoutPassword(proj))
	if err != nil {
		if IsNotFound(err) {
			return nil, NotFound(noun)
		}
		return nil, Translate(err, "")
	}
	return e.Enrich(ctx, doc, relations), nil
}

// Enrich joins relations into a single document. Failures degrade to stubs.
func (e *Engine) Enrich(ctx context.Context, doc Document, relations []Relation) Document {
	if doc == nil {
		return nil
	}
	rows := e.resolver.Resolve(ctx, []Document{doc}, relations)
	return rows[0]
}

// Resolve joins relations into rows.
func (e *Engine) Resolve(ctx context.Context, rows []Document, relations []Relation) []Document {
	return e.resolver.Resolve(ctx, rows, relations)
}

func withoutPassword(p Projection) Projection {
	for _, f := range p.Exclude {
		if f == FieldPassword {
			return p
		}
	}
	return Projection{Include: p.Include, Exclude: append(append([]string(nil), p.Exclude...), FieldPassword)}
}
