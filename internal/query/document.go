package query

import (
	"encoding/json"
	"strconv"
	"time"
)

// Well-known document fields.
const (
	FieldPrimaryID  = "_id"
	FieldExternalID = "id"
	FieldCreatedAt  = "createdAt"
	FieldUpdatedAt  = "updatedAt"
	FieldPassword   = "password"
)

// Document is a schemaless record. _id holds the primary identifier and id
// holds the external identifier for entities that carry one.
type Document map[string]interface{}

// Stub is the placeholder substituted for a dangling reference.
func Stub(raw interface{}) Document {
	return Document{FieldExternalID: raw}
}

// ID returns the primary identifier.
func (d Document) ID() string {
	return d.String(FieldPrimaryID)
}

// String returns a string field or "".
func (d Document) String(field string) string {
	if d == nil {
		return ""
	}
	s, _ := d[field].(string)
	return s
}

// Has reports whether field is present with a non-nil value.
func (d Document) Has(field string) bool {
	if d == nil {
		return false
	}
	v, ok := d[field]
	return ok && v != nil
}

// Time reads a time stored either natively or as an RFC3339 string.
func (d Document) Time(field string) (time.Time, bool) {
	if d == nil {
		return time.Time{}, false
	}
	return AsTime(d[field])
}

// Int reads an integral number regardless of the numeric type the store produced.
func (d Document) Int(field string) (int64, bool) {
	if d == nil {
		return 0, false
	}
	f, ok := AsNumber(d[field])
	if !ok {
		return 0, false
	}
	return int64(f), true
}

// Strings reads a string array field.
func (d Document) Strings(field string) []string {
	if d == nil {
		return nil
	}
	return AsStrings(d[field])
}

// Clone deep-copies the document.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return cloneValue(map[string]interface{}(d)).(Document)
}

// AsTime converts time-like values.
func AsTime(v interface{}) (time.Time, bool) {
	switch t := v.(type) {
	case time.Time:
		return t, true
	case *time.Time:
		if t == nil {
			return time.Time{}, false
		}
		return *t, true
	case string:
		parsed, err := time.Parse(time.RFC3339Nano, t)
		if err != nil {
			return time.Time{}, false
		}
		return parsed, true
	}
	return time.Time{}, false
}

// AsNumber converts numeric values to float64.
func AsNumber(v interface{}) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case float32:
		return float64(n), true
	case float64:
		return n, true
	case json.Number:
		f, err := n.Float64()
		return f, err == nil
	case interface{ String() string }:
		f, err := strconv.ParseFloat(n.String(), 64)
		return f, err == nil
	}
	return 0, false
}

// AsStrings converts []string and []interface{} arrays.
func AsStrings(v interface{}) []string {
	switch arr := v.(type) {
	case []string:
		out := make([]string, len(arr))
		copy(out, arr)
		return out
	case []interface{}:
		out := make([]string, 0, len(arr))
		for _, item := range arr {
			if s, ok := item.(string); ok {
				out = append(out, s)
			}
		}
		return out
	}
	return nil
}

func cloneValue(v interface{}) interface{} {
	switch val := v.(type) {
	case Document:
		out := make(Document, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case map[string]interface{}:
		out := make(Document, len(val))
		for k, item := range val {
			out[k] = cloneValue(item)
		}
		return out
	case []interface{}:
		out := make([]interface{}, len(val))
		for i, item := range val {
			out[i] = cloneValue(item)
		}
		return out
	case []string:
		out := make([]string, len(val))
		copy(out, val)
		return out
	case []Document:
		out := make([]Document, len(val))
		for i, item := range val {
			out[i] = item.Clone()
		}
		return out
	default:
		return val
	}
}

// Projection selects which fields a read returns. An empty Include keeps
// every field. _id is always kept.
type Projection struct {
	Include []string
	Exclude []string
}

// Fields builds an include projection.
func Fields(fields ...string) Projection {
	return Projection{Include: fields}
}

// Apply returns a projected copy of doc.
func (p Projection) Apply(doc Document) Document {
	if doc == nil {
		return nil
	}
	var out Document
	if len(p.Include) == 0 {
		out = doc.Clone()
	} else {
		out = make(Document, len(p.Include)+1)
		for _, field := range p.Include {
			if v, ok := doc[field]; ok {
				out[field] = cloneValue(v)
			}
		}
		if id, ok := doc[FieldPrimaryID]; ok {
			out[FieldPrimaryID] = id
		}
	}
	for _, field := range p.Exclude {
		if field != FieldPrimaryID {
			delete(out, field)
		}
	}
	return out
}

// with returns a projection that additionally includes fields, when it is an include projection.
func (p Projection) with(fields ...string) Projection {
	if len(p.Include) == 0 {
		return p
	}
	include := append([]string(nil), p.Include...)
	seen := make(map[string]struct{}, len(include))
	for _, f := range include {
		seen[f] = struct{}{}
	}
	for _, f := range fields {
		if _, ok := seen[f]; !ok {
			include = append(include, f)
			seen[f] = struct{}{}
		}
	}
	return Projection{Include: include, Exclude: p.Exclude}
}
