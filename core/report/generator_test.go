package report

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeReportRepo struct {
	result *model.ReportResult
	filter repository.ReportFilter
}

func (f *fakeReportRepo) ContentStatistics(ctx context.Context, filter repository.ReportFilter) (*model.ReportResult, error) {
	f.filter = filter
	return f.result, nil
}

func (f *fakeReportRepo) UserActivity(ctx context.Context, filter repository.ReportFilter) (*model.ReportResult, error) {
	f.filter = filter
	return f.result, nil
}

func (f *fakeReportRepo) ApprovalStats(ctx context.Context, filter repository.ReportFilter) (*model.ReportResult, error) {
	f.filter = filter
	return f.result, nil
}

func newTestGenerator(result *model.ReportResult) (*Generator, *fakeReportRepo) {
	repo := &fakeReportRepo{result: result}
	gen := NewGenerator(repo)
	gen.now = func() time.Time {
		return time.Date(2025, 3, 14, 10, 0, 0, 0, time.UTC)
	}
	return gen, repo
}

func validRequest() model.ReportRequest {
	return model.ReportRequest{
		ReportType: model.ReportContentStatistics,
		Format:     model.FormatCSV,
		StartDate:  "2025-01-01",
		EndDate:    "2025-03-01",
	}
}

func TestGenerate_CSV(t *testing.T) {
	gen, repo := newTestGenerator(&model.ReportResult{
		Columns: []string{"type", "genre", "count"},
		Rows: [][]any{
			{"Song", []byte("Jazz"), int64(12)},
			{"Album", []byte("Rock"), int64(4)},
		},
	})

	file, err := gen.Generate(context.Background(), validRequest())

	require.NoError(t, err)
	assert.Equal(t, "report_content-statistics_2025-03-14.csv", file.Name)
	assert.Equal(t, "text/csv", file.ContentType)
	assert.Equal(t, "type,genre,count\nSong,Jazz,12\nAlbum,Rock,4\n", string(file.Data))
	assert.Equal(t, "2025-01-01", repo.filter.StartDate)
	assert.Equal(t, "2025-03-01", repo.filter.EndDate)
}

func TestGenerate_JSON(t *testing.T) {
	gen, _ := newTestGenerator(&model.ReportResult{
		Columns: []string{"nickname", "total"},
		Rows:    [][]any{{[]byte("tema"), int64(3)}},
	})

	req := validRequest()
	req.Format = model.FormatJSON

	file, err := gen.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "application/json", file.ContentType)

	var records []map[string]any
	require.NoError(t, json.Unmarshal(file.Data, &records))
	require.Len(t, records, 1)
	assert.Equal(t, "tema", records[0]["nickname"])
	assert.Equal(t, float64(3), records[0]["total"])
}

func TestGenerate_EmptyCSVIsError(t *testing.T) {
	gen, _ := newTestGenerator(&model.ReportResult{
		Columns: []string{"type", "count"},
	})

	_, err := gen.Generate(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestGenerate_EmptyJSONIsEmptyArray(t *testing.T) {
	gen, _ := newTestGenerator(&model.ReportResult{
		Columns: []string{"type", "count"},
	})

	req := validRequest()
	req.Format = model.FormatJSON

	file, err := gen.Generate(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "[]", string(file.Data))
}

func TestGenerate_UnknownKind(t *testing.T) {
	gen, _ := newTestGenerator(nil)

	req := validRequest()
	req.ReportType = "revenue"

	_, err := gen.Generate(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnknownReportType)
}

func TestGenerate_UnknownFormat(t *testing.T) {
	gen, _ := newTestGenerator(&model.ReportResult{
		Columns: []string{"a"},
		Rows:    [][]any{{1}},
	})

	req := validRequest()
	req.Format = "xlsx"

	_, err := gen.Generate(context.Background(), req)

	assert.ErrorIs(t, err, ErrUnknownFormat)
}

func TestGenerate_DateValidation(t *testing.T) {
	gen, _ := newTestGenerator(nil)

	cases := []struct {
		name  string
		start string
		end   string
	}{
		{"missing start", "", "2025-03-01"},
		{"missing end", "2025-01-01", ""},
		{"malformed", "01.01.2025", "2025-03-01"},
		{"reversed", "2025-03-01", "2025-01-01"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			req := validRequest()
			req.StartDate = tc.start
			req.EndDate = tc.end

			_, err := gen.Generate(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidDateRange)
		})
	}
}

func TestMarshalCSV_FormatsTimesAndNils(t *testing.T) {
	data, err := MarshalCSV(&model.ReportResult{
		Columns: []string{"day", "status", "count"},
		Rows: [][]any{
			{time.Date(2025, 2, 1, 15, 4, 5, 0, time.UTC), nil, int64(9)},
		},
	})

	require.NoError(t, err)
	assert.Equal(t, "day,status,count\n2025-02-01,,9\n", string(data))
}
