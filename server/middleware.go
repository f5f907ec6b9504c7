package server

import (
	"context"
	"errors"
	"net/http"

	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
	"github.com/TemaXo00/musium-web-application/session"
)

type contextKey string

const userContextKey contextKey = "sessionUser"

// corsMiddleware applies the CORS headers and short-circuits preflight
// requests.
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, PATCH, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		w.Header().Set("Access-Control-Max-Age", "86400")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// sessionMiddleware resolves the session user and refreshes it from
// storage on every request. When the backing user no longer exists the
// session is destroyed, so deleted accounts lose access immediately.
func (h *APIHandler) sessionMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sessionUser, err := h.sessions.Get(r.Context(), r)
		if err != nil {
			if !errors.Is(err, session.ErrNoSession) {
				logger.Error("failed to load session", logger.ErrorField(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		current, err := h.authService.CurrentUser(r.Context(), sessionUser.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				if derr := h.sessions.Destroy(r.Context(), w, r); derr != nil {
					logger.Warn("failed to destroy stale session", logger.ErrorField(derr))
				}
			} else {
				logger.Error("failed to refresh session user", logger.ErrorField(err))
			}
			next.ServeHTTP(w, r)
			return
		}

		if err := h.sessions.Refresh(r.Context(), r, current); err != nil {
			logger.Warn("failed to refresh session", logger.ErrorField(err))
		}

		ctx := context.WithValue(r.Context(), userContextKey, current)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// currentUser returns the session user attached by sessionMiddleware, or
// nil for anonymous requests.
func currentUser(r *http.Request) *model.PublicUser {
	user, _ := r.Context().Value(userContextKey).(*model.PublicUser)
	return user
}

// requireAuth guards a handler behind an active session.
func (h *APIHandler) requireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if currentUser(r) == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		next(w, r)
	}
}

// requireAuthor guards a handler behind the Author (or Admin) role. The
// role is re-checked against storage, not taken from the session.
func (h *APIHandler) requireAuthor(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ok, err := h.authService.IsAuthor(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, err, "Authentication error")
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, "Author access required")
			return
		}
		next(w, r)
	}
}

// requireAdmin guards a handler behind the Admin role.
func (h *APIHandler) requireAdmin(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := currentUser(r)
		if user == nil {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}

		ok, err := h.authService.IsAdmin(r.Context(), user.ID)
		if err != nil {
			writeServiceError(w, err, "Authentication error")
			return
		}
		if !ok {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		next(w, r)
	}
}
