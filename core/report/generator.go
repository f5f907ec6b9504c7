package report

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
)

var (
	// ErrUnknownReportType is returned for a report kind outside the
	// supported set.
	ErrUnknownReportType = errors.New("unknown report type")

	// ErrUnknownFormat is returned for an output format other than csv or
	// json.
	ErrUnknownFormat = errors.New("unknown report format")

	// ErrEmptyResult is returned when CSV output is requested for an empty
	// result set: there is no first row to derive a header from.
	ErrEmptyResult = errors.New("report result set is empty")

	// ErrInvalidDateRange is returned for missing or reversed dates.
	ErrInvalidDateRange = errors.New("invalid report date range")
)

// File is a generated report ready for download.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Generator builds admin reports from the aggregate queries and
// serializes them to CSV or pretty-printed JSON.
type Generator struct {
	reports repository.ReportRepository
	now     func() time.Time
}

// NewGenerator creates a report generator.
func NewGenerator(reports repository.ReportRepository) *Generator {
	return &Generator{reports: reports, now: time.Now}
}

// Generate validates the request, runs the matching aggregate query and
// serializes the result.
func (g *Generator) Generate(ctx context.Context, req model.ReportRequest) (*File, error) {
	if err := validateDates(req.StartDate, req.EndDate); err != nil {
		return nil, err
	}

	filter := repository.ReportFilter{
		StartDate: req.StartDate,
		EndDate:   req.EndDate,
		Genre:     req.Genre,
		Status:    req.Status,
	}

	var result *model.ReportResult
	var err error
	switch req.ReportType {
	case model.ReportContentStatistics:
		result, err = g.reports.ContentStatistics(ctx, filter)
	case model.ReportUserActivity:
		result, err = g.reports.UserActivity(ctx, filter)
	case model.ReportApprovalStats:
		result, err = g.reports.ApprovalStats(ctx, filter)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownReportType, req.ReportType)
	}
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("report_%s_%s.%s", req.ReportType, g.now().Format("2006-01-02"), req.Format)

	switch req.Format {
	case model.FormatCSV:
		data, err := MarshalCSV(result)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "text/csv", Data: data}, nil
	case model.FormatJSON:
		data, err := MarshalJSON(result)
		if err != nil {
			return nil, err
		}
		return &File{Name: name, ContentType: "application/json", Data: data}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, req.Format)
	}
}

// MarshalCSV writes the result as CSV with the column list as header.
// An empty result set is an error: without rows there is nothing to
// anchor the header to.
func MarshalCSV(result *model.ReportResult) ([]byte, error) {
	if len(result.Rows) == 0 {
		return nil, ErrEmptyResult
	}

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(result.Columns); err != nil {
		return nil, fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, row := range result.Rows {
		record := make([]string, len(row))
		for i, v := range row {
			record[i] = formatValue(v)
		}
		if err := w.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush CSV: %w", err)
	}
	return buf.Bytes(), nil
}

// MarshalJSON writes the result as a pretty-printed array of
// column-keyed objects. An empty result serializes to an empty array.
func MarshalJSON(result *model.ReportResult) ([]byte, error) {
	records := make([]map[string]any, 0, len(result.Rows))
	for _, row := range result.Rows {
		record := make(map[string]any, len(result.Columns))
		for i, col := range result.Columns {
			if i < len(row) {
				record[col] = normalizeValue(row[i])
			}
		}
		records = append(records, record)
	}

	data, err := json.MarshalIndent(records, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal report JSON: %w", err)
	}
	return data, nil
}

func validateDates(start, end string) error {
	if start == "" || end == "" {
		return ErrInvalidDateRange
	}
	from, err := time.Parse("2006-01-02", start)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateRange, start)
	}
	to, err := time.Parse("2006-01-02", end)
	if err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidDateRange, end)
	}
	if from.After(to) {
		return ErrInvalidDateRange
	}
	return nil
}

func formatValue(v any) string {
	switch t := v.(type) {
	case nil:
		return ""
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return fmt.Sprintf("%v", t)
	}
}

func normalizeValue(v any) any {
	switch t := v.(type) {
	case []byte:
		return string(t)
	case time.Time:
		return t.Format("2006-01-02")
	default:
		return v
	}
}
