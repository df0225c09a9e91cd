package query

import (
	"context"
	"errors"
	"fmt"
)

// SortField orders results by one field.
type SortField struct {
	Field string
	Desc  bool
}

// Asc and Desc are sort shorthands.
func Asc(field string) SortField  { return SortField{Field: field} }
func Desc(field string) SortField { return SortField{Field: field, Desc: true} }

// FindOptions parameterises Reader.Find. A Limit of 0 means unbounded.
type FindOptions struct {
	Filter     Filter
	Sort       []SortField
	Skip       int
	Limit      int
	Projection Projection
}

// Reader is the read side of the persistence contract.
type Reader interface {
	// ValidID reports whether id has the shape of a primary identifier.
	ValidID(id string) bool
	FindByIDs(ctx context.Context, collection string, ids []string, proj Projection) ([]Document, error)
	Find(ctx context.Context, collection string, opts FindOptions) ([]Document, error)
	Count(ctx context.Context, collection string, filter Filter) (int64, error)
}

// Writer is the write side of the persistence contract. Stores assign _id
// when absent and maintain createdAt/updatedAt.
type Writer interface {
	Insert(ctx context.Context, collection string, doc Document) (Document, error)
	// Update sets only the fields present in patch and returns the stored document.
	Update(ctx context.Context, collection, id string, patch Document) (Document, error)
	// Delete removes the document and returns it.
	Delete(ctx context.Context, collection, id string) (Document, error)
}

// Store is the full persistence contract consumed by the engine.
type Store interface {
	Reader
	Writer
}

// FindOne returns the first match or a StoreNotFound error.
func FindOne(ctx context.Context, r Reader, collection string, filter Filter, proj Projection) (Document, error) {
	docs, err := r.Find(ctx, collection, FindOptions{Filter: filter, Limit: 1, Projection: proj})
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, &StoreError{Kind: StoreNotFound, Collection: collection}
	}
	return docs[0], nil
}

// FindByID loads one document by primary identifier.
func FindByID(ctx context.Context, r Reader, collection, id string, proj Projection) (Document, error) {
	if !r.ValidID(id) {
		return nil, &StoreError{Kind: StoreNotFound, Collection: collection}
	}
	docs, err := r.FindByIDs(ctx, collection, []string{id}, proj)
	if err != nil {
		return nil, err
	}
	if len(docs) == 0 {
		return nil, &StoreError{Kind: StoreNotFound, Collection: collection}
	}
	return docs[0], nil
}

// StoreErrorKind enumerates every failure a store adapter may report.
type StoreErrorKind int

const (
	StoreNotFound StoreErrorKind = iota + 1
	StoreDuplicate
	StoreTimeout
	StoreUnavailable
)

func (k StoreErrorKind) String() string {
	switch k {
	case StoreNotFound:
		return "not found"
	case StoreDuplicate:
		return "duplicate"
	case StoreTimeout:
		return "timeout"
	case StoreUnavailable:
		return "unavailable"
	}
	return "unknown"
}

// StoreError is the only error type store adapters return.
type StoreError struct {
	Kind       StoreErrorKind
	Collection string
	// Field names the unique field for StoreDuplicate, when known.
	Field string
	Err   error
}

func (e *StoreError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Collection, e.Kind)
	if e.Field != "" {
		msg += " (" + e.Field + ")"
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *StoreError) Unwrap() error { return e.Err }

// ContextError classifies a context failure as a store error, or returns nil.
func ContextError(collection string, err error) *StoreError {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return &StoreError{Kind: StoreTimeout, Collection: collection, Err: err}
	case errors.Is(err, context.Canceled):
		return &StoreError{Kind: StoreUnavailable, Collection: collection, Err: err}
	}
	return nil
}

// IsNotFound reports whether err is a StoreNotFound error.
func IsNotFound(err error) bool {
	return storeKind(err) == StoreNotFound
}

// IsDuplicate reports whether err is a StoreDuplicate error.
func IsDuplicate(err error) bool {
	return storeKind(err) == StoreDuplicate
}

func storeKind(err error) StoreErrorKind {
	var se *StoreError
	if errors.As(err, &se) {
		return se.Kind
	}
	return 0
}
