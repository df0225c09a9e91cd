package query

import (
	"context"
	"strings"
)

// Values are raw request parameters.
type Values map[string]string

// Get returns the trimmed value of key.
func (v Values) Get(key string) string {
	return strings.TrimSpace(v[key])
}

// Param binds one request parameter to a field.
type Param struct {
	Name  string
	Field string
	Kind  RefKind
	// Noun names the relation in error messages ("class" -> "Invalid class ID format").
	Noun string
	// Array marks fields holding a list of references.
	Array bool
}

func (p Param) filter(raw string) Filter {
	if p.Array {
		return Contains{Field: p.Field, Value: raw}
	}
	return Eq{Field: p.Field, Value: raw}
}

// Via restricts the primary collection through a related collection: rows
// qualify when Field references a Collection row matching Params. Explicit
// is an optional parameter naming the referenced row directly; it is
// intersected with the derived set.
type Via struct {
	Field      string
	Collection string
	Params     []Param
	Explicit   *Param
}

// FilterSpec declares how a listing turns request parameters into a filter.
type FilterSpec struct {
	Params []Param
	Via    *Via
	Search *SearchSpec
}

// Compiler turns raw parameters into a compiled Filter.
type Compiler struct {
	store Reader
}

// NewCompiler constructs a Compiler over store.
func NewCompiler(store Reader) *Compiler {
	return &Compiler{store: store}
}

// Compile validates identifier shapes, resolves related-collection
// restrictions, and layers the search disjunction on top. The result is
// None when a prerequisite restriction matched nothing.
func (c *Compiler) Compile(ctx context.Context, spec FilterSpec, values Values) (Filter, error) {
	var conds And

	for _, p := range spec.Params {
		raw := values.Get(p.Name)
		if raw == "" {
			continue
		}
		if err := c.check(p, raw); err != nil {
			return nil, err
		}
		conds = append(conds, p.filter(raw))
	}

	if spec.Via != nil {
		restriction, err := c.restrict(ctx, *spec.Via, values)
		if err != nil {
			return nil, err
		}
		if IsNone(restriction) {
			return None{}, nil
		}
		if restriction != nil {
			conds = append(conds, restriction)
		}
	}

	if spec.Search != nil {
		term := values.Get(spec.Search.param())
		if term != "" {
			branches, err := c.searchBranches(ctx, *spec.Search, term)
			if err != nil {
				return nil, err
			}
			return Compose(conds, branches...), nil
		}
	}

	return Simplify(conds), nil
}

func (c *Compiler) check(p Param, raw string) error {
	if p.Kind == PrimaryRef && !c.store.ValidID(raw) {
		return MalformedID(p.Noun)
	}
	return nil
}

// restrict returns nil when no restricting parameter is present.
func (c *Compiler) restrict(ctx context.Context, via Via, values Values) (Filter, error) {
	var related And
	for _, p := range via.Params {
		raw := values.Get(p.Name)
		if raw == "" {
			continue
		}
		if err := c.check(p, raw); err != nil {
			return nil, err
		}
		related = append(related, p.filter(raw))
	}

	explicit := ""
	if via.Explicit != nil {
		explicit = values.Get(via.Explicit.Name)
		if explicit != "" {
			if err := c.check(*via.Explicit, explicit); err != nil {
				return nil, err
			}
		}
	}

	if len(related) == 0 {
		if explicit == "" {
			return nil, nil
		}
		return Eq{Field: via.Field, Value: explicit}, nil
	}

	ids, err := c.ids(ctx, via.Collection, related)
	if err != nil {
		return nil, err
	}
	if explicit != "" {
		ids = intersect(ids, explicit)
	}
	if len(ids) == 0 {
		return None{}, nil
	}
	return InStrings(via.Field, ids), nil
}

// ids returns the primary identifiers of every row in collection matching filter.
func (c *Compiler) ids(ctx context.Context, collection string, filter Filter) ([]string, error) {
	filter = Simplify(filter)
	if IsNone(filter) {
		return nil, nil
	}
	docs, err := c.store.Find(ctx, collection, FindOptions{
		Filter:     filter,
		Sort:       []SortField{Asc(FieldPrimaryID)},
		Projection: Fields(FieldPrimaryID),
	})
	if err != nil {
		return nil, Translate(err, "")
	}
	ids := make([]string, 0, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID())
	}
	return ids, nil
}

func intersect(ids []string, keep ...string) []string {
	set := make(map[string]struct{}, len(keep))
	for _, k := range keep {
		set[k] = struct{}{}
	}
	out := make([]string, 0, len(keep))
	for _, id := range ids {
		if _, ok := set[id]; ok {
			out = append(out, id)
		}
	}
	return out
}
