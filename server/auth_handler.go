package server

import (
	"net/http"

	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/logger"
)

// RegisterRequest is the registration request body.
type RegisterRequest struct {
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Password string `json:"password"`
	UserType string `json:"userType"`
}

// LoginRequest is the login request body.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterHandler creates an account and opens a session for it.
func (h *APIHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Nickname == "" || req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Nickname, email and password are required")
		return
	}

	user, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Nickname: req.Nickname,
		Email:    req.Email,
		Password: req.Password,
		UserType: req.UserType,
	})
	if err != nil {
		writeServiceError(w, err, "Failed to create user")
		return
	}

	if err := h.sessions.Create(r.Context(), w, user); err != nil {
		writeServiceError(w, err, "Failed to create session")
		return
	}

	logger.Info("user registered",
		logger.String("nickname", user.Nickname),
		logger.String("type", user.Type))
	writeSuccess(w, user, "Registration successful")
}

// LoginHandler verifies credentials and opens a session.
func (h *APIHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || req.Password == "" {
		writeError(w, http.StatusBadRequest, "Email and password are required")
		return
	}

	user, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		writeServiceError(w, err, "Failed to log in")
		return
	}

	if err := h.sessions.Create(r.Context(), w, user); err != nil {
		writeServiceError(w, err, "Failed to create session")
		return
	}

	logger.Info("user logged in", logger.String("nickname", user.Nickname))
	writeSuccess(w, user, "Login successful")
}

// LogoutHandler destroys the current session.
func (h *APIHandler) LogoutHandler(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		writeServiceError(w, err, "Logout failed")
		return
	}
	writeSuccess(w, nil, "Logout successful")
}

// CurrentUserHandler returns the session user, or null when anonymous.
func (h *APIHandler) CurrentUserHandler(w http.ResponseWriter, r *http.Request) {
	writeSuccess(w, currentUser(r), "")
}

// DeleteAccountHandler deletes the logged-in account and ends its
// session. Entities authored by the account remain in the catalog.
func (h *APIHandler) DeleteAccountHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	if err := h.userRepo.DeleteUser(r.Context(), user.ID); err != nil {
		writeServiceError(w, err, "Failed to delete account")
		return
	}
	if err := h.sessions.Destroy(r.Context(), w, r); err != nil {
		logger.Warn("failed to destroy session after account deletion", logger.ErrorField(err))
	}

	logger.Info("account deleted", logger.Int64("userId", user.ID))
	writeSuccess(w, nil, "Account deleted successfully")
}
