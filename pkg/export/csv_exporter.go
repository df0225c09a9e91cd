package export

import (
	"bytes"
	"encoding/csv"
	"fmt"
)

// CSVExporter writes a table as RFC 4180 CSV with a header line. The
// title is not part of the output.
type CSVExporter struct {
	// Comma overrides the field delimiter when non-zero.
	Comma rune
}

// NewCSVExporter builds a comma separated exporter.
func NewCSVExporter() *CSVExporter {
	return &CSVExporter{}
}

// Render encodes the table.
func (e *CSVExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, ErrNoColumns
	}
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if e.Comma != 0 {
		w.Comma = e.Comma
	}
	lines := make([][]string, 0, len(table.Records)+1)
	lines = append(lines, table.Columns)
	for _, record := range table.Records {
		lines = append(lines, table.cells(record))
	}
	if err := w.WriteAll(lines); err != nil {
		return nil, fmt.Errorf("write csv: %w", err)
	}
	return buf.Bytes(), nil
}
