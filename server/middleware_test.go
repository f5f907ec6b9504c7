package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/model"

	"github.com/stretchr/testify/assert"
)

// fakeAuthService answers role checks from a fixed role table.
type fakeAuthService struct {
	roles map[int64]string
}

func (f *fakeAuthService) Register(ctx context.Context, in auth.RegisterInput) (*model.PublicUser, error) {
	return nil, nil
}

func (f *fakeAuthService) Login(ctx context.Context, email, password string) (*model.PublicUser, error) {
	return nil, nil
}

func (f *fakeAuthService) CurrentUser(ctx context.Context, id int64) (*model.PublicUser, error) {
	return &model.PublicUser{ID: id, Type: f.roles[id]}, nil
}

func (f *fakeAuthService) IsAuthor(ctx context.Context, id int64) (bool, error) {
	role := f.roles[id]
	return role == model.RoleAuthor || role == model.RoleAdmin, nil
}

func (f *fakeAuthService) IsAdmin(ctx context.Context, id int64) (bool, error) {
	return f.roles[id] == model.RoleAdmin, nil
}

var _ ReportGenerator = (*report.Generator)(nil)

func requestAs(user *model.PublicUser) *http.Request {
	r := httptest.NewRequest(http.MethodGet, "/api/test", nil)
	if user == nil {
		return r
	}
	return r.WithContext(context.WithValue(r.Context(), userContextKey, user))
}

func okHandler(called *bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		*called = true
		writeSuccess(w, nil, "")
	}
}

func TestRequireAuth(t *testing.T) {
	h := &APIHandler{authService: &fakeAuthService{}}

	var called bool
	rec := httptest.NewRecorder()
	h.requireAuth(okHandler(&called))(rec, requestAs(nil))

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.requireAuth(okHandler(&called))(rec, requestAs(&model.PublicUser{ID: 1}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}

func TestRequireAuthor_RoleReadFromStorage(t *testing.T) {
	h := &APIHandler{authService: &fakeAuthService{roles: map[int64]string{
		1: model.RoleUser,
		2: model.RoleAuthor,
		3: model.RoleAdmin,
	}}}

	cases := []struct {
		name   string
		userID int64
		status int
	}{
		{"plain user", 1, http.StatusForbidden},
		{"author", 2, http.StatusOK},
		{"admin passes author gate", 3, http.StatusOK},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var called bool
			rec := httptest.NewRecorder()

			// Session claims Author for everyone; only the stored role counts.
			req := requestAs(&model.PublicUser{ID: tc.userID, Type: model.RoleAuthor})
			h.requireAuthor(okHandler(&called))(rec, req)

			assert.Equal(t, tc.status, rec.Code)
			assert.Equal(t, tc.status == http.StatusOK, called)
		})
	}
}

func TestRequireAdmin(t *testing.T) {
	h := &APIHandler{authService: &fakeAuthService{roles: map[int64]string{
		2: model.RoleAuthor,
		3: model.RoleAdmin,
	}}}

	var called bool
	rec := httptest.NewRecorder()
	h.requireAdmin(okHandler(&called))(rec, requestAs(&model.PublicUser{ID: 2}))

	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.False(t, called)

	rec = httptest.NewRecorder()
	h.requireAdmin(okHandler(&called))(rec, requestAs(&model.PublicUser{ID: 3}))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, called)
}
