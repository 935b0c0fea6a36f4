package service

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/openclass/planner-api/internal/models"
	"github.com/openclass/planner-api/internal/schedule"
	appErrors "github.com/openclass/planner-api/pkg/errors"
	"github.com/openclass/planner-api/pkg/export"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

type xlsxRenderer interface {
	Render(data export.Dataset, sheet string) ([]byte, error)
}

// ExportFormat names a supported schedule export format.
type ExportFormat string

const (
	FormatCSV  ExportFormat = "csv"
	FormatPDF  ExportFormat = "pdf"
	FormatXLSX ExportFormat = "xlsx"
)

// ExportResult carries a rendered schedule file.
type ExportResult struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders a term's committed schedule into downloadable
// files.
type ExportService struct {
	terms     termReader
	conflicts conflictReporter
	csv       csvRenderer
	pdf       pdfRenderer
	xlsx      xlsxRenderer
	logger    *zap.Logger
}

// NewExportService constructs an ExportService. Nil renderers fall back
// to the package defaults.
func NewExportService(terms termReader, conflicts conflictReporter, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer, xlsx xlsxRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	if xlsx == nil {
		xlsx = export.NewXLSXExporter()
	}
	return &ExportService{terms: terms, conflicts: conflicts, csv: csv, pdf: pdf, xlsx: xlsx, logger: logger}
}

// Schedule renders the term's weekly schedule in the requested format.
func (s *ExportService) Schedule(ctx context.Context, termID string, format ExportFormat) (*ExportResult, error) {
	term, err := s.terms.FindByID(ctx, termID)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "term not found")
	}

	committed, err := s.conflicts.Snapshot(ctx, termID)
	if err != nil {
		return nil, err
	}

	dataset := buildScheduleDataset(committed, *term)
	title := fmt.Sprintf("%s %d Schedule", term.Season, term.Year)

	var payload []byte
	var contentType string
	switch format {
	case FormatCSV:
		payload, err = s.csv.Render(dataset)
		contentType = "text/csv"
	case FormatPDF:
		payload, err = s.pdf.Render(dataset, title)
		contentType = "application/pdf"
	case FormatXLSX:
		payload, err = s.xlsx.Render(dataset, "Schedule")
		contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, "unsupported export format: "+string(format))
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
	}

	timestamp := time.Now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("schedule_%s_%d_%s.%s", strings.ToLower(string(term.Season)), term.Year, timestamp, format)

	s.logger.Info("schedule exported",
		zap.String("term_id", termID),
		zap.String("format", string(format)),
		zap.Int("bytes", len(payload)))
	return &ExportResult{Filename: filename, ContentType: contentType, Payload: payload}, nil
}

// buildScheduleDataset flattens the committed plan into one row per
// weekly meeting, courses first, then unavailable blocks.
func buildScheduleDataset(committed schedule.CommittedSet, term models.Term) export.Dataset {
	headers := []string{"Type", "Course", "Title", "CRN", "Day", "Start", "End", "Credits"}
	rows := make([]map[string]string, 0, len(committed.Events))

	events := append([]models.PlanEvent(nil), committed.Events...)
	sort.Slice(events, func(i, j int) bool {
		if events[i].Type != events[j].Type {
			return events[i].IsCourse()
		}
		if events[i].Start.Weekday() != events[j].Start.Weekday() {
			return events[i].Start.Weekday() < events[j].Start.Weekday()
		}
		return events[i].Start.Before(events[j].Start)
	})

	for _, ev := range events {
		p := schedule.PlaceEvent(ev, term)
		row := map[string]string{
			"Type":  string(ev.Type),
			"Title": ev.Title,
			"Day":   p.Weekday.String(),
			"Start": p.StartTime,
			"End":   p.EndTime,
		}
		if ev.IsCourse() {
			row["CRN"] = ev.CRNValue()
			if sec, ok := committed.Sections[ev.CRNValue()]; ok {
				row["Course"] = sec.Course
				if sec.Credits != nil {
					row["Credits"] = fmt.Sprintf("%.1f", *sec.Credits)
				}
			}
		}
		rows = append(rows, row)
	}

	return export.Dataset{Headers: headers, Rows: rows}
}
