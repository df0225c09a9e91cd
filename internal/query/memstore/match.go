package memstore

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

// maxCachedRegexes bounds the compiled pattern cache; it is emptied when full.
const maxCachedRegexes = 256

type matcher struct {
	mu      sync.Mutex
	regexes map[string]*regexp.Regexp
}

func newMatcher() *matcher {
	return &matcher{regexes: make(map[string]*regexp.Regexp)}
}

func (m *matcher) regex(pattern string) *regexp.Regexp {
	m.mu.Lock()
	defer m.mu.Unlock()
	if re, ok := m.regexes[pattern]; ok {
		return re
	}
	re, err := regexp.Compile("(?i)" + pattern)
	if err != nil {
		re = nil
	}
	if len(m.regexes) >= maxCachedRegexes {
		m.regexes = make(map[string]*regexp.Regexp)
	}
	m.regexes[pattern] = re
	return re
}

func (m *matcher) match(doc query.Document, f query.Filter) bool {
	switch node := f.(type) {
	case nil:
		return true
	case query.None:
		return false
	case query.And:
		for _, child := range node {
			if !m.match(doc, child) {
				return false
			}
		}
		return true
	case query.Or:
		for _, child := range node {
			if m.match(doc, child) {
				return true
			}
		}
		return false
	case query.Eq:
		return equal(doc[node.Field], node.Value)
	case query.Ne:
		return !equal(doc[node.Field], node.Value)
	case query.In:
		v := doc[node.Field]
		for _, candidate := range node.Values {
			if equal(v, candidate) {
				return true
			}
		}
		return false
	case query.Contains:
		return contains(doc[node.Field], node.Value)
	case query.Match:
		s, ok := doc[node.Field].(string)
		if !ok {
			return false
		}
		re := m.regex(node.Pattern)
		return re != nil && re.MatchString(s)
	case query.Range:
		v, ok := doc[node.Field]
		if !ok || v == nil {
			return false
		}
		return inRange(v, node)
	}
	return false
}

func inRange(v interface{}, r query.Range) bool {
	check := func(bound interface{}, ok func(int) bool) bool {
		if bound == nil {
			return true
		}
		c, comparable := compare(v, bound)
		return comparable && ok(c)
	}
	return check(r.Gt, func(c int) bool { return c > 0 }) &&
		check(r.Gte, func(c int) bool { return c >= 0 }) &&
		check(r.Lt, func(c int) bool { return c < 0 }) &&
		check(r.Lte, func(c int) bool { return c <= 0 })
}

func contains(arr, value interface{}) bool {
	switch list := arr.(type) {
	case []string:
		for _, item := range list {
			if equal(item, value) {
				return true
			}
		}
	case []interface{}:
		for _, item := range list {
			if equal(item, value) {
				return true
			}
		}
	}
	return false
}

func equal(a, b interface{}) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	c, ok := compare(a, b)
	return ok && c == 0
}

// compare orders two scalar values of compatible kinds. Times compare with
// RFC3339 strings so seeded and native timestamps mix.
func compare(a, b interface{}) (int, bool) {
	if an, ok := query.AsNumber(a); ok && !isTime(a) {
		if bn, ok := query.AsNumber(b); ok && !isTime(b) {
			switch {
			case an < bn:
				return -1, true
			case an > bn:
				return 1, true
			}
			return 0, true
		}
	}
	if isTime(a) || isTime(b) {
		at, aok := query.AsTime(a)
		bt, bok := query.AsTime(b)
		if !aok || !bok {
			return 0, false
		}
		switch {
		case at.Before(bt):
			return -1, true
		case at.After(bt):
			return 1, true
		}
		return 0, true
	}
	if as, ok := a.(string); ok {
		if bs, ok := b.(string); ok {
			return strings.Compare(as, bs), true
		}
		return 0, false
	}
	if ab, ok := a.(bool); ok {
		if bb, ok := b.(bool); ok {
			switch {
			case ab == bb:
				return 0, true
			case !ab:
				return -1, true
			}
			return 1, true
		}
	}
	return 0, false
}

func isTime(v interface{}) bool {
	switch v.(type) {
	case time.Time, *time.Time:
		return true
	}
	return false
}

// compareForSort places missing values first and falls back to string order.
func compareForSort(a, b interface{}) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	if c, ok := compare(a, b); ok {
		return c
	}
	if at, aok := query.AsTime(a); aok {
		if bt, bok := query.AsTime(b); bok {
			return at.Compare(bt)
		}
	}
	return 0
}
