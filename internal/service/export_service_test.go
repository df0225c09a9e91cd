package service

import (
	"bytes"
	"context"
	"encoding/csv"
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
)

type pagedExams struct {
	pages [][]query.Document
	seen  []ListParams
}

func (p *pagedExams) List(ctx context.Context, params ListParams) (*query.ListResult, error) {
	p.seen = append(p.seen, params)
	page := len(p.seen)
	result := &query.ListResult{Data: []query.Document{}, CurrentPage: page, TotalPages: len(p.pages)}
	if page <= len(p.pages) {
		result.Data = p.pages[page-1]
	}
	return result, nil
}

func exportedExam(title string) query.Document {
	return query.Document{
		"title":     title,
		"startTime": time.Date(2030, 5, 1, 9, 0, 0, 0, time.UTC),
		"endTime":   time.Date(2030, 5, 1, 10, 0, 0, 0, time.UTC),
		"lessonId": query.Document{
			"name":      "Math 1A",
			"subjectId": query.Document{"name": "Math"},
			"classId":   query.Document{"name": "1A"},
			"teacherId": query.Document{"name": "Jane", "surname": "Doe"},
		},
	}
}

func TestExportExamsCSVWalksEveryPage(t *testing.T) {
	lister := &pagedExams{pages: [][]query.Document{
		{exportedExam("Midterm")},
		{exportedExam("Final"), {"title": "Orphan", "lessonId": query.Document{"id": "x"}}},
	}}
	svc := NewExportService(lister, nil, nil, zap.NewNop())

	result, err := svc.Exams(context.Background(), ExportFormatCSV, values("classId", "c1"))
	require.NoError(t, err)
	assert.Equal(t, "text/csv", result.ContentType)
	assert.Contains(t, result.Filename, ".csv")
	require.Len(t, lister.seen, 2)
	assert.Equal(t, "100", lister.seen[0].Limit)
	assert.Equal(t, "2", lister.seen[1].Page)
	assert.Equal(t, "c1", lister.seen[1].Values.Get("classId"))

	records, err := csv.NewReader(bytes.NewReader(result.Payload)).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 4)
	assert.Equal(t, examExportColumns, records[0])
	assert.Equal(t, []string{"Midterm", "Math 1A", "Math", "1A", "Jane Doe", "2030-05-01 09:00", "2030-05-01 10:00"}, records[1])
	assert.Equal(t, []string{"Orphan", "", "", "", "", "", ""}, records[3])
}

func TestExportExamsPDF(t *testing.T) {
	lister := &pagedExams{pages: [][]query.Document{{exportedExam("Midterm")}}}
	svc := NewExportService(lister, nil, nil, zap.NewNop())

	result, err := svc.Exams(context.Background(), ExportFormatPDF, nil)
	require.NoError(t, err)
	assert.Equal(t, "application/pdf", result.ContentType)
	assert.True(t, bytes.HasPrefix(result.Payload, []byte("%PDF")))
}

func TestParseExportFormat(t *testing.T) {
	format, err := ParseExportFormat("")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatCSV, format)

	format, err = ParseExportFormat("PDF")
	require.NoError(t, err)
	assert.Equal(t, ExportFormatPDF, format)

	_, err = ParseExportFormat("xlsx")
	requireAppError(t, err, http.StatusBadRequest, "Invalid export format")
}
