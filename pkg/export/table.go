package export

import "errors"

// ErrNoColumns is returned when a table declares no columns.
var ErrNoColumns = errors.New("export: table has no columns")

// Table is a titled grid. Each record is read positionally against
// Columns; missing cells render empty and extra cells are dropped.
type Table struct {
	Title   string
	Columns []string
	Records [][]string
}

// cells returns record resized to the column count.
func (t Table) cells(record []string) []string {
	out := make([]string, len(t.Columns))
	copy(out, record)
	return out
}
