package server

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
)

type fakeGenreRepo struct {
	known map[string]int64
}

func (f *fakeGenreRepo) AllGenres(ctx context.Context) ([]model.Genre, error) {
	return nil, nil
}

func (f *fakeGenreRepo) GenreByName(ctx context.Context, name string) (*model.Genre, error) {
	id, ok := f.known[name]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &model.Genre{ID: id, Name: name}, nil
}

type fakeReportGenerator struct {
	calls int
}

func (f *fakeReportGenerator) Generate(ctx context.Context, req model.ReportRequest) (*report.File, error) {
	f.calls++
	return &report.File{
		Name:        "report_content-statistics_2025-03-14.csv",
		ContentType: "text/csv",
		Data:        []byte("type,genre,count\n"),
	}, nil
}

func reportRequest(t *testing.T, req model.ReportRequest) *http.Request {
	t.Helper()
	body, err := json.Marshal(req)
	assert.NoError(t, err)
	return httptest.NewRequest(http.MethodPost, "/api/admin/reports/generate", bytes.NewReader(body))
}

func TestGenerateReportRejectsUnknownGenre(t *testing.T) {
	generator := &fakeReportGenerator{}
	h := &APIHandler{
		reports:   generator,
		genreRepo: &fakeGenreRepo{known: map[string]int64{"Jazz": 1}},
	}

	rec := httptest.NewRecorder()
	h.GenerateReportHandler(rec, reportRequest(t, model.ReportRequest{
		ReportType: "content-statistics",
		Format:     "csv",
		StartDate:  "2025-01-01",
		EndDate:    "2025-02-01",
		Genre:      "Jazzz",
	}))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Zero(t, generator.calls, "unknown genre must not reach the generator")
}

func TestGenerateReportAcceptsKnownGenre(t *testing.T) {
	generator := &fakeReportGenerator{}
	h := &APIHandler{
		reports:   generator,
		genreRepo: &fakeGenreRepo{known: map[string]int64{"Jazz": 1}},
	}

	rec := httptest.NewRecorder()
	h.GenerateReportHandler(rec, reportRequest(t, model.ReportRequest{
		ReportType: "content-statistics",
		Format:     "csv",
		StartDate:  "2025-01-01",
		EndDate:    "2025-02-01",
		Genre:      "Jazz",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, generator.calls)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "attachment")
}

func TestGenerateReportSkipsGenreLookupForAll(t *testing.T) {
	generator := &fakeReportGenerator{}
	h := &APIHandler{
		reports:   generator,
		genreRepo: &fakeGenreRepo{}, // knows nothing, must not be consulted
	}

	rec := httptest.NewRecorder()
	h.GenerateReportHandler(rec, reportRequest(t, model.ReportRequest{
		ReportType: "content-statistics",
		Format:     "csv",
		StartDate:  "2025-01-01",
		EndDate:    "2025-02-01",
		Genre:      "all",
	}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 1, generator.calls)
}
