package server

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/TemaXo00/musium-web-application/cache"
	"github.com/TemaXo00/musium-web-application/config"
	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/core/moderation"
	"github.com/TemaXo00/musium-web-application/core/report"
	"github.com/TemaXo00/musium-web-application/db"
	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/repository"
	"github.com/TemaXo00/musium-web-application/session"
	"github.com/TemaXo00/musium-web-application/storage"

	"github.com/gorilla/mux"
)

// Start initializes and starts the HTTP server.
func Start() {
	cfg := config.Load()

	logger.InitLogger(logger.Config{
		Level:      logger.LogLevel(cfg.LogLevel),
		OutputPath: cfg.LogPath,
		MaxSize:    100,
		MaxBackups: 5,
		MaxAge:     30,
		Compress:   true,
	})

	if err := db.ConnectDB(cfg); err != nil {
		logger.Fatal("failed to connect to database", logger.ErrorField(err))
	}
	defer db.CloseDB()

	if err := db.ConnectGormDB(cfg); err != nil {
		logger.Fatal("failed to connect to database via gorm", logger.ErrorField(err))
	}
	defer db.CloseGormDB()

	if err := db.Migrate(); err != nil {
		logger.Fatal("failed to migrate database schema", logger.ErrorField(err))
	}

	if err := db.ConnectRedis(cfg); err != nil {
		logger.Fatal("failed to connect to redis", logger.ErrorField(err))
	}
	defer db.CloseRedis()

	images, err := storage.NewImageStore(cfg)
	if err != nil {
		logger.Fatal("failed to initialize object storage", logger.ErrorField(err))
	}

	userRepo := repository.NewMySQLUserRepository(db.DB)
	entityRepo := repository.NewMySQLEntityRepository(db.DB)
	authorRepo := repository.NewMySQLAuthorRepository(db.DB)
	reportRepo := repository.NewMySQLReportRepository(db.DB)
	genreRepo := repository.NewGormGenreRepository(db.GormDB)

	sessions := session.NewStore(db.RedisClient, cfg.SessionCookie, cfg.SessionTTL)
	views := cache.NewViewCache(db.RedisClient)
	flusher := cache.NewViewFlusher(views, entityRepo, 30*time.Second)

	authService := auth.NewService(userRepo)
	moderationService := moderation.NewService(entityRepo, authorRepo)
	reportGenerator := report.NewGenerator(reportRepo)

	apiHandler := NewAPIHandler(
		cfg,
		sessions,
		authService,
		moderationService,
		reportGenerator,
		entityRepo,
		authorRepo,
		userRepo,
		genreRepo,
		views,
		images,
	)

	router := mux.NewRouter()
	router.Use(corsMiddleware)
	router.Use(apiHandler.sessionMiddleware)

	// Public catalog endpoints.
	router.HandleFunc("/api/content/search", apiHandler.SearchHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/content/new", apiHandler.NewContentHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/content/trending", apiHandler.TrendingHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/content/genres", apiHandler.GenresHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/entity/{id}", apiHandler.EntityHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/entity/{id}/view", apiHandler.IncrementViewsHandler).Methods(http.MethodPost)

	// Authentication.
	router.HandleFunc("/api/auth/register", apiHandler.RegisterHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/login", apiHandler.LoginHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/logout", apiHandler.LogoutHandler).Methods(http.MethodPost)
	router.HandleFunc("/api/auth/current", apiHandler.requireAuth(apiHandler.CurrentUserHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/auth/delete-account", apiHandler.requireAuth(apiHandler.DeleteAccountHandler)).Methods(http.MethodDelete)

	// Profiles and account settings.
	router.HandleFunc("/api/profile/update", apiHandler.requireAuth(apiHandler.UpdateProfileHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/profile/{id}", apiHandler.ProfileHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/profile/{id}/history", apiHandler.ProfileHistoryHandler).Methods(http.MethodGet)
	router.HandleFunc("/api/settings/update-nickname", apiHandler.requireAuth(apiHandler.UpdateNicknameHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/settings/update-email", apiHandler.requireAuth(apiHandler.UpdateEmailHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/settings/update-password", apiHandler.requireAuth(apiHandler.UpdatePasswordHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/upload/image", apiHandler.requireAuth(apiHandler.UploadImageHandler)).Methods(http.MethodPost)

	// Author submissions.
	router.HandleFunc("/api/author/entities", apiHandler.requireAuthor(apiHandler.AuthorEntitiesHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/author/entities", apiHandler.requireAuthor(apiHandler.CreateEntityHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/author/entities/{id}", apiHandler.requireAuthor(apiHandler.AuthorEntityHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/author/entities/{id}", apiHandler.requireAuthor(apiHandler.UpdateEntityHandler)).Methods(http.MethodPut)
	router.HandleFunc("/api/author/entities/{id}", apiHandler.requireAuthor(apiHandler.DeleteEntityHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/author/entities/{id}/restore", apiHandler.requireAuthor(apiHandler.RestoreEntityHandler)).Methods(http.MethodPatch)

	// Admin moderation and reporting.
	router.HandleFunc("/api/admin/tracks", apiHandler.requireAdmin(apiHandler.PendingTracksHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/albums", apiHandler.requireAdmin(apiHandler.PendingAlbumsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/eps", apiHandler.requireAdmin(apiHandler.PendingEPsHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/approve/{type}/{id}", apiHandler.requireAdmin(apiHandler.ApproveEntityHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/reject/{type}/{id}", apiHandler.requireAdmin(apiHandler.RejectEntityHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/users", apiHandler.requireAdmin(apiHandler.AdminUsersHandler)).Methods(http.MethodGet)
	router.HandleFunc("/api/admin/users/search", apiHandler.requireAdmin(apiHandler.AdminUserSearchHandler)).Methods(http.MethodPost)
	router.HandleFunc("/api/admin/users/delete/{id}", apiHandler.requireAdmin(apiHandler.AdminDeleteUserHandler)).Methods(http.MethodDelete)
	router.HandleFunc("/api/admin/reports/generate", apiHandler.requireAdmin(apiHandler.GenerateReportHandler)).Methods(http.MethodPost)

	server := &http.Server{
		Addr:         cfg.ServerAddr,
		Handler:      router,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	flusherCtx, stopFlusher := context.WithCancel(context.Background())
	flusherDone := make(chan struct{})
	go func() {
		defer close(flusherDone)
		flusher.Run(flusherCtx)
	}()

	go func() {
		logger.Info("server starting", logger.String("addr", cfg.ServerAddr))
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", logger.ErrorField(err))
		}
	}()

	<-stop
	logger.Info("shutting down server")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Fatal("server forced to shutdown", logger.ErrorField(err))
	}

	// Let the flusher persist any views counted since the last tick.
	stopFlusher()
	<-flusherDone

	logger.Info("server stopped")
}
