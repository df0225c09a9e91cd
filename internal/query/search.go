package query

import "context"

// Hop is one step of a join path: Field on the current collection
// references rows of Collection.
type Hop struct {
	Field      string
	Collection string
}

// IndirectMatch matches primary rows whose related row, reached through
// Path, has Field matching the term.
type IndirectMatch struct {
	Path  []Hop
	Field string
}

// SearchSpec declares the direct and indirect branches of a text search.
type SearchSpec struct {
	// Param defaults to "search".
	Param    string
	Fields   []string
	Indirect []IndirectMatch
}

func (s SearchSpec) param() string {
	if s.Param == "" {
		return "search"
	}
	return s.Param
}

// Compose builds restriction AND (branch1 OR branch2 ...). A None
// restriction yields None, and so does a search whose branches are all None.
func Compose(restriction Filter, branches ...Filter) Filter {
	or := make(Or, 0, len(branches))
	for _, b := range branches {
		or = append(or, b)
	}
	return Simplify(And{restriction, or})
}

func (c *Compiler) searchBranches(ctx context.Context, spec SearchSpec, term string) ([]Filter, error) {
	pattern := Escape(term)
	branches := make([]Filter, 0, len(spec.Fields)+len(spec.Indirect))
	for _, field := range spec.Fields {
		branches = append(branches, Match{Field: field, Pattern: pattern})
	}
	for _, ind := range spec.Indirect {
		f, err := c.indirect(ctx, ind, pattern)
		if err != nil {
			return nil, err
		}
		branches = append(branches, f)
	}
	return branches, nil
}

// indirect walks the path from its far end back to the primary collection.
func (c *Compiler) indirect(ctx context.Context, ind IndirectMatch, pattern string) (Filter, error) {
	if len(ind.Path) == 0 {
		return None{}, nil
	}
	last := len(ind.Path) - 1
	ids, err := c.ids(ctx, ind.Path[last].Collection, Match{Field: ind.Field, Pattern: pattern})
	if err != nil {
		return nil, err
	}
	for k := last; k > 0; k-- {
		if len(ids) == 0 {
			return None{}, nil
		}
		ids, err = c.ids(ctx, ind.Path[k-1].Collection, InStrings(ind.Path[k].Field, ids))
		if err != nil {
			return nil, err
		}
	}
	if len(ids) == 0 {
		return None{}, nil
	}
	return InStrings(ind.Path[0].Field, ids), nil
}
