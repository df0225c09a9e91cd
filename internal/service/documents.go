package service

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// ListParams carries the raw query string of a listing request.
type ListParams struct {
	Page   string
	Limit  string
	Values query.Values
}

// resource declares how one collection is listed, joined and addressed.
type resource struct {
	collection      string
	noun            string
	spec            query.FilterSpec
	sort            []query.SortField
	defaultLimit    int
	listRelations   []query.Relation
	detailRelations []query.Relation
	// duplicates maps a unique field to the message reported when a write collides on it.
	duplicates map[string]string
}

// ChangeObserver is told about every successful write to a collection.
type ChangeObserver interface {
	CollectionChanged(ctx context.Context, collection string)
}

// ServiceOption configures a resource service.
type ServiceOption func(*documents)

// WithChangeObserver notifies o after inserts, updates and deletes.
func WithChangeObserver(o ChangeObserver) ServiceOption {
	return func(d *documents) {
		if o != nil {
			d.observers = append(d.observers, o)
		}
	}
}

// documents implements the read and write plumbing shared by the
// resource services.
type documents struct {
	engine    *query.Engine
	res       resource
	logger    *zap.Logger
	now       func() time.Time
	observers []ChangeObserver
}

func newDocuments(engine *query.Engine, res resource, logger *zap.Logger, opts ...ServiceOption) *documents {
	if logger == nil {
		logger = zap.NewNop()
	}
	d := &documents{engine: engine, res: res, logger: logger, now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

func (d *documents) changed(ctx context.Context) {
	for _, o := range d.observers {
		o.CollectionChanged(ctx, d.res.collection)
	}
}

func (d *documents) store() query.Store {
	return d.engine.Store()
}

func (d *documents) list(ctx context.Context, params ListParams, extra query.Filter) (*query.ListResult, error) {
	page, err := query.ParsePage(params.Page, params.Limit, d.res.defaultLimit)
	if err != nil {
		return nil, err
	}
	result, err := d.engine.List(ctx, query.ListRequest{
		Collection: d.res.collection,
		Spec:       d.res.spec,
		Values:     params.Values,
		Extra:      extra,
		Sort:       d.res.sort,
		Page:       page,
		Relations:  d.res.listRelations,
	})
	if err != nil {
		return nil, d.logged(err, "list")
	}
	return result, nil
}

func (d *documents) get(ctx context.Context, id string) (query.Document, error) {
	doc, err := d.engine.Get(ctx, d.res.collection, d.res.noun, id, query.Projection{}, d.res.detailRelations)
	if err != nil {
		return nil, d.logged(err, "get")
	}
	return doc, nil
}

// load returns the stored document without joins.
func (d *documents) load(ctx context.Context, id string) (query.Document, error) {
	return d.engine.Get(ctx, d.res.collection, d.res.noun, id, query.Projection{}, nil)
}

func (d *documents) insert(ctx context.Context, doc query.Document) (query.Document, error) {
	created, err := d.store().Insert(ctx, d.res.collection, doc)
	if err != nil {
		return nil, d.logged(d.translate(err), "insert")
	}
	d.changed(ctx)
	return d.enrich(ctx, created), nil
}

// update applies patch to an existing document. An empty patch is rejected
// before the store is touched.
func (d *documents) update(ctx context.Context, id string, patch query.Document) (query.Document, error) {
	if !d.store().ValidID(id) {
		return nil, query.MalformedID(d.res.noun)
	}
	if len(patch) == 0 {
		return nil, appErrors.Malformed("No fields to update")
	}
	updated, err := d.store().Update(ctx, d.res.collection, id, patch)
	if err != nil {
		return nil, d.logged(d.translate(err), "update")
	}
	d.changed(ctx)
	return d.enrich(ctx, updated), nil
}

func (d *documents) remove(ctx context.Context, id string) (query.Document, error) {
	if !d.store().ValidID(id) {
		return nil, query.MalformedID(d.res.noun)
	}
	deleted, err := d.store().Delete(ctx, d.res.collection, id)
	if err != nil {
		return nil, d.logged(d.translate(err), "delete")
	}
	d.changed(ctx)
	return deleted, nil
}

// translate maps store failures, naming the resource on not-found and
// using the resource's own duplicate messages.
func (d *documents) translate(err error) error {
	var se *query.StoreError
	if errors.As(err, &se) && se.Kind == query.StoreDuplicate {
		if msg, ok := d.res.duplicates[se.Field]; ok {
			return appErrors.Wrap(se, appErrors.ErrBusinessRule.Code, appErrors.ErrBusinessRule.Status, msg)
		}
	}
	return query.Translate(err, query.NotFound(d.res.noun).Error())
}

// enrich joins the detail relations into a freshly written document. The
// write already succeeded, so join failures only degrade the response.
func (d *documents) enrich(ctx context.Context, doc query.Document) query.Document {
	if doc == nil {
		return nil
	}
	delete(doc, query.FieldPassword)
	return d.engine.Enrich(ctx, doc, d.res.detailRelations)
}

// exists checks a required reference. Malformed identifiers yield
// malformedMsg (400) and unknown ones notFoundMsg (404).
func (d *documents) exists(ctx context.Context, collection, id, malformedMsg, notFoundMsg string) (query.Document, error) {
	if !d.store().ValidID(id) {
		return nil, appErrors.Malformed(malformedMsg)
	}
	doc, err := query.FindByID(ctx, d.store(), collection, id, query.Projection{Exclude: []string{query.FieldPassword}})
	if err != nil {
		if query.IsNotFound(err) {
			return nil, appErrors.Clone(appErrors.ErrReferenceNotFound, notFoundMsg)
		}
		return nil, d.logged(query.Translate(err, ""), "lookup")
	}
	return doc, nil
}

// logged reports infrastructure failures and passes every error through.
func (d *documents) logged(err error, op string) error {
	appErr := appErrors.FromError(err)
	if appErr != nil && appErr.Status >= 500 {
		d.logger.Error("storage operation failed",
			zap.String("collection", d.res.collection),
			zap.String("op", op),
			zap.Error(err))
	}
	return err
}
