package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/TemaXo00/musium-web-application/cache"
	"github.com/TemaXo00/musium-web-application/config"
	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
	"github.com/TemaXo00/musium-web-application/session"
	"github.com/TemaXo00/musium-web-application/storage"

	"github.com/gorilla/mux"
)

// AuthService is the slice of the auth service the handlers consume.
type AuthService interface {
	Register(ctx context.Context, in auth.RegisterInput) (*model.PublicUser, error)
	Login(ctx context.Context, email, password string) (*model.PublicUser, error)
	CurrentUser(ctx context.Context, id int64) (*model.PublicUser, error)
	IsAuthor(ctx context.Context, id int64) (bool, error)
	IsAdmin(ctx context.Context, id int64) (bool, error)
}

// ModerationService is the slice of the moderation service the handlers
// consume.
type ModerationService interface {
	Approve(ctx context.Context, entityType string, id int64) error
	Reject(ctx context.Context, entityType string, id int64, reason string) error
	Create(ctx context.Context, authorID int64, sub *model.EntitySubmission) (int64, error)
	Update(ctx context.Context, requesterID, id int64, sub *model.EntitySubmission) error
	SoftDelete(ctx context.Context, requesterID int64, admin bool, id int64) error
	Restore(ctx context.Context, requesterID int64, admin bool, id int64) error
	Detail(ctx context.Context, requesterID, id int64) (*model.EntityDetail, error)
}

// ReportGenerator produces downloadable admin reports.
type ReportGenerator interface {
	Generate(ctx context.Context, req model.ReportRequest) (*report.File, error)
}

// APIHandler carries the wired dependencies for every route handler.
type APIHandler struct {
	cfg         *config.Config
	sessions    *session.Store
	authService AuthService
	moderation  ModerationService
	reports     ReportGenerator
	entityRepo  repository.EntityRepository
	authorRepo  repository.AuthorRepository
	userRepo    repository.UserRepository
	genreRepo   repository.GenreRepository
	views       *cache.ViewCache
	images      *storage.ImageStore
}

// NewAPIHandler creates the API handler.
func NewAPIHandler(
	cfg *config.Config,
	sessions *session.Store,
	authService AuthService,
	moderation ModerationService,
	reports ReportGenerator,
	entityRepo repository.EntityRepository,
	authorRepo repository.AuthorRepository,
	userRepo repository.UserRepository,
	genreRepo repository.GenreRepository,
	views *cache.ViewCache,
	images *storage.ImageStore,
) *APIHandler {
	return &APIHandler{
		cfg:         cfg,
		sessions:    sessions,
		authService: authService,
		moderation:  moderation,
		reports:     reports,
		entityRepo:  entityRepo,
		authorRepo:  authorRepo,
		userRepo:    userRepo,
		genreRepo:   genreRepo,
		views:       views,
		images:      images,
	}
}

// decodeJSON parses a request body into dst, answering 400 on failure.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// pathID parses the {id} route variable, answering 400 on failure.
func pathID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id <= 0 {
		writeError(w, http.StatusBadRequest, "Invalid id")
		return 0, false
	}
	return id, true
}
