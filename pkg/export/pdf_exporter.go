package export

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

const (
	pdfMargin     = 10.0
	pdfHeaderCell = 8.0
	pdfBodyCell   = 7.0
)

// PDFExporter renders a table in landscape, repeating the column header
// on every page and the title on the first.
type PDFExporter struct{}

// NewPDFExporter constructs a PDF exporter.
func NewPDFExporter() *PDFExporter {
	return &PDFExporter{}
}

// Render lays out the table. An empty table prints a "No records" row.
func (e *PDFExporter) Render(table Table) ([]byte, error) {
	if len(table.Columns) == 0 {
		return nil, ErrNoColumns
	}
	title := table.Title
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pdfMargin, pdfMargin+5, pdfMargin)
	pdf.SetAutoPageBreak(true, pdfMargin)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pageWidth, _ := pdf.GetPageSize()
	colWidth := (pageWidth - 2*pdfMargin) / float64(len(table.Columns))
	header := func() {
		pdf.SetFont("Arial", "B", 10)
		pdf.SetFillColor(230, 230, 230)
		for _, column := range table.Columns {
			pdf.CellFormat(colWidth, pdfHeaderCell, tr(column), "1", 0, "C", true, 0, "")
		}
		pdf.Ln(-1)
		pdf.SetFont("Arial", "", 9)
	}
	pdf.SetHeaderFunc(func() {
		if title != "" && pdf.PageNo() == 1 {
			pdf.SetFont("Arial", "B", 14)
			pdf.CellFormat(0, 10, tr(title), "", 1, "C", false, 0, "")
			pdf.Ln(3)
		}
		header()
	})
	pdf.AddPage()

	for _, record := range table.Records {
		for _, cell := range table.cells(record) {
			pdf.CellFormat(colWidth, pdfBodyCell, tr(cell), "1", 0, "", false, 0, "")
		}
		pdf.Ln(-1)
	}
	if len(table.Records) == 0 {
		pdf.CellFormat(0, pdfBodyCell, "No records", "1", 1, "C", false, 0, "")
	}

	buf := &bytes.Buffer{}
	if err := pdf.Output(buf); err != nil {
		return nil, fmt.Errorf("render pdf: %w", err)
	}
	return buf.Bytes(), nil
}
