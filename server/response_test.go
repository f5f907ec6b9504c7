package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/core/moderation"
	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteServiceError_StatusMapping(t *testing.T) {
	cases := []struct {
		name   string
		err    error
		status int
	}{
		{"not found", repository.ErrNotFound, http.StatusNotFound},
		{"wrapped not found", fmt.Errorf("approve entity 7: %w", repository.ErrNotFound), http.StatusNotFound},
		{"duplicate email", repository.ErrDuplicateEmail, http.StatusBadRequest},
		{"duplicate nickname", repository.ErrDuplicateNickname, http.StatusBadRequest},
		{"bad credentials", auth.ErrInvalidCredentials, http.StatusUnauthorized},
		{"access denied", moderation.ErrAccessDenied, http.StatusForbidden},
		{"invalid type", moderation.ErrInvalidType, http.StatusBadRequest},
		{"bad report kind", report.ErrUnknownReportType, http.StatusBadRequest},
		{"bad date range", report.ErrInvalidDateRange, http.StatusBadRequest},
		{"unknown error", errors.New("disk on fire"), http.StatusInternalServerError},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			writeServiceError(rec, tc.err, "Something went wrong")

			assert.Equal(t, tc.status, rec.Code)

			var resp Response
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.False(t, resp.Success)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestWriteServiceError_HidesInternalDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	writeServiceError(rec, errors.New("dial tcp 10.0.0.5:3306: connection refused"), "Failed to load profile")

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "Failed to load profile", resp.Error)
	assert.NotContains(t, rec.Body.String(), "10.0.0.5")
}

func TestWriteSuccess_Envelope(t *testing.T) {
	rec := httptest.NewRecorder()
	writeSuccess(rec, map[string]int{"id": 7}, "Created")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp Response
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, "Created", resp.Message)
}
