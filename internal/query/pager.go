package query

import (
	"math"
	"strconv"
	"strings"

	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
)

// MaxLimit caps every page size.
const MaxLimit = 100

// DefaultLimit applies when a listing does not declare its own.
const DefaultLimit = 10

// MaxPage is the largest page whose offset fits in an int at MaxLimit.
const MaxPage = math.MaxInt / MaxLimit

// Page is a clamped page request.
type Page struct {
	Number int
	Limit  int
}

// ParsePage parses raw page/limit parameters. Empty values take the
// defaults, non-integers and pages past MaxPage are rejected, and the rest
// is clamped: page to at least 1, limit into [1, MaxLimit]. A zero limit
// means default.
func ParsePage(rawPage, rawLimit string, defaultLimit int) (Page, error) {
	if defaultLimit <= 0 {
		defaultLimit = DefaultLimit
	}

	page := 1
	if raw := strings.TrimSpace(rawPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n > MaxPage {
			return Page{}, appErrors.Malformed("Invalid page parameter")
		}
		page = n
	}

	limit := defaultLimit
	if raw := strings.TrimSpace(rawLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Page{}, appErrors.Malformed("Invalid limit parameter")
		}
		if n != 0 {
			limit = n
		}
	}

	return NewPage(page, limit), nil
}

// NewPage clamps already-parsed values.
func NewPage(page, limit int) Page {
	if page < 1 {
		page = 1
	}
	if page > MaxPage {
		page = MaxPage
	}
	if limit < 1 {
		limit = 1
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}
	return Page{Number: page, Limit: limit}
}

// Skip is the number of rows before this page.
func (p Page) Skip() int {
	return (p.Number - 1) * p.Limit
}

// TotalPages is ceil(count/limit).
func TotalPages(count int64, limit int) int {
	if limit <= 0 || count <= 0 {
		return 0
	}
	return int((count + int64(limit) - 1) / int64(limit))
}

// StableSort appends the primary identifier as a final ascending tie-break.
func StableSort(sort []SortField) []SortField {
	out := make([]SortField, 0, len(sort)+1)
	for _, s := range sort {
		if s.Field == FieldPrimaryID {
			return append(out, s)
		}
		out = append(out, s)
	}
	return append(out, Asc(FieldPrimaryID))
}
