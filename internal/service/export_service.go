package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/alimovshaxzod89/SMS/internal/query"
	appErrors "github.com/alimovshaxzod89/SMS/pkg/errors"
	"github.com/alimovshaxzod89/SMS/pkg/export"
)

// ExportFormat names a rendered file type.
type ExportFormat string

const (
	ExportFormatCSV ExportFormat = "csv"
	ExportFormatPDF ExportFormat = "pdf"
)

var examExportColumns = []string{"Title", "Lesson", "Subject", "Class", "Teacher", "Start", "End"}

// ExportResult is a rendered file ready to be streamed.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

type examLister interface {
	List(ctx context.Context, params ListParams) (*query.ListResult, error)
}

type csvRenderer interface {
	Render(table export.Table) ([]byte, error)
}

type pdfRenderer interface {
	Render(table export.Table) ([]byte, error)
}

// ExportService renders exam timetables.
type ExportService struct {
	exams  examLister
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to
// the package exporters.
func NewExportService(exams examLister, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{exams: exams, csv: csv, pdf: pdf, logger: logger, now: func() time.Time { return time.Now().UTC() }}
}

// ParseExportFormat validates the format query parameter. Empty means csv.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExportFormatCSV:
		return ExportFormatCSV, nil
	case ExportFormatPDF:
		return ExportFormatPDF, nil
	default:
		return "", appErrors.Malformed("Invalid export format")
	}
}

// Exams renders every exam matching the listing filters in values.
func (s *ExportService) Exams(ctx context.Context, format ExportFormat, values query.Values) (*ExportResult, error) {
	timetable := export.Table{Title: "Exam timetable", Columns: examExportColumns}
	for page := 1; ; page++ {
		result, err := s.exams.List(ctx, ListParams{Page: strconv.Itoa(page), Limit: strconv.Itoa(query.MaxLimit), Values: values})
		if err != nil {
			return nil, err
		}
		for _, exam := range result.Data {
			timetable.Records = append(timetable.Records, examRecord(exam))
		}
		if page >= result.TotalPages {
			break
		}
	}

	var (
		payload     []byte
		err         error
		contentType string
	)
	switch format {
	case ExportFormatPDF:
		payload, err = s.pdf.Render(timetable)
		contentType = "application/pdf"
	default:
		format = ExportFormatCSV
		payload, err = s.csv.Render(timetable)
		contentType = "text/csv"
	}
	if err != nil {
		s.logger.Error("exam export failed", zap.String("format", string(format)), zap.Error(err))
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}
	return &ExportResult{
		Filename:    fmt.Sprintf("exams-%s.%s", s.now().Format("20060102-150405"), format),
		ContentType: contentType,
		Payload:     payload,
	}, nil
}

// examRecord follows examExportColumns.
func examRecord(exam query.Document) []string {
	lesson := nested(exam, "lessonId")
	teacher := nested(lesson, "teacherId")
	return []string{
		exam.String("title"),
		lesson.String("name"),
		nested(lesson, "subjectId").String("name"),
		nested(lesson, "classId").String("name"),
		strings.TrimSpace(teacher.String("name") + " " + teacher.String("surname")),
		formatTime(exam, "startTime"),
		formatTime(exam, "endTime"),
	}
}

// nested returns a joined sub-document, or an empty one when the field
// holds anything else.
func nested(doc query.Document, field string) query.Document {
	switch v := doc[field].(type) {
	case query.Document:
		return v
	case map[string]interface{}:
		return query.Document(v)
	}
	return query.Document{}
}

func formatTime(doc query.Document, field string) string {
	if t, ok := doc.Time(field); ok {
		return t.UTC().Format("2006-01-02 15:04")
	}
	return doc.String(field)
}
