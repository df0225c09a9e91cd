package repository

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/alimovshaxzod89/SMS/internal/query/memstore"
)

// FieldKind selects the SQL cast applied to a JSONB field before comparing
// or ordering it.
type FieldKind int

const (
	KindText FieldKind = iota
	KindNumber
	KindTime
	KindBool
)

// UniqueField mirrors a unique expression index on the documents table.
type UniqueField struct {
	Collection string
	Field      string
	Fold       bool
}

// IndexName is the index created for the field by the migrations.
func (u UniqueField) IndexName() string {
	return fmt.Sprintf("ux_%s_%s", strings.ToLower(u.Collection), strings.ToLower(u.Field))
}

// Schema describes typed fields and unique indexes. Fields absent from
// Kinds are treated as text.
type Schema struct {
	Kinds  map[string]FieldKind
	Unique []UniqueField
}

var fieldNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

func validField(name string) error {
	if !fieldNamePattern.MatchString(name) {
		return fmt.Errorf("invalid field name %q", name)
	}
	return nil
}

func (s Schema) kind(field string) FieldKind {
	if k, ok := s.Kinds[field]; ok {
		return k
	}
	return KindText
}

func (s Schema) uniqueByIndex(name string) (UniqueField, bool) {
	for _, u := range s.Unique {
		if u.IndexName() == name {
			return u, true
		}
	}
	return UniqueField{}, false
}

// DefaultSchema is the schema of the school collections.
func DefaultSchema() Schema {
	return Schema{
		Kinds: map[string]FieldKind{
			"createdAt":     KindTime,
			"updatedAt":     KindTime,
			"startTime":     KindTime,
			"endTime":       KindTime,
			"startDate":     KindTime,
			"dueDate":       KindTime,
			"date":          KindTime,
			"birthday":      KindTime,
			"expiresAt":     KindTime,
			"revokedBefore": KindTime,
			"level":         KindNumber,
			"capacity":      KindNumber,
			"isActive":      KindBool,
		},
		Unique: []UniqueField{
			{Collection: "grades", Field: "level"},
			{Collection: "classes", Field: "name"},
			{Collection: "subjects", Field: "name", Fold: true},
			{Collection: "teachers", Field: "id"},
			{Collection: "teachers", Field: "username", Fold: true},
			{Collection: "teachers", Field: "email", Fold: true},
			{Collection: "students", Field: "id"},
			{Collection: "students", Field: "username", Fold: true},
			{Collection: "students", Field: "email", Fold: true},
			{Collection: "parents", Field: "id"},
			{Collection: "parents", Field: "username", Fold: true},
			{Collection: "parents", Field: "email", Fold: true},
			{Collection: "tokenBlacklist", Field: "key"},
		},
	}
}

// MemoryOptions declares the same unique indexes on an in-memory store.
func (s Schema) MemoryOptions() []memstore.Option {
	opts := make([]memstore.Option, 0, len(s.Unique))
	for _, u := range s.Unique {
		opts = append(opts, memstore.WithUniqueIndex(u.Collection, u.Field, u.Fold))
	}
	return opts
}

// DDL returns the statements creating the documents table and its unique
// indexes. Every statement is idempotent.
func (s Schema) DDL() []string {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS documents (
	seq BIGSERIAL NOT NULL,
	collection TEXT NOT NULL,
	id UUID NOT NULL,
	doc JSONB NOT NULL DEFAULT '{}'::jsonb,
	PRIMARY KEY (collection, id)
)`,
		`CREATE INDEX IF NOT EXISTS ix_documents_collection_seq ON documents (collection, seq)`,
	}
	for _, u := range s.Unique {
		expr := fmt.Sprintf("(doc->>'%s')", u.Field)
		if u.Fold {
			expr = fmt.Sprintf("LOWER(doc->>'%s')", u.Field)
		}
		stmts = append(stmts, fmt.Sprintf(
			"CREATE UNIQUE INDEX IF NOT EXISTS %s ON documents ((%s)) WHERE collection = '%s'",
			u.IndexName(), expr, u.Collection))
	}
	return stmts
}
