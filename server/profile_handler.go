package server

import (
	"net/http"
	"strings"

	"github.com/TemaXo00/musium-web-application/core/auth"
	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"
)

// ProfileUpdateRequest is the profile edit body. Empty fields fall back
// to the fixed placeholders, matching how profiles read back.
type ProfileUpdateRequest struct {
	AvatarURL   string `json:"avatarUrl"`
	Gender      string `json:"gender"`
	Description string `json:"description"`
}

// ProfileHandler returns the resolved current profile of any user.
func (h *APIHandler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	profile, err := h.userRepo.GetProfile(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to load profile")
		return
	}
	writeSuccess(w, profile, "")
}

// ProfileHistoryHandler returns every profile revision of a user, newest
// first.
func (h *APIHandler) ProfileHistoryHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	history, err := h.userRepo.GetProfileHistory(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to load profile history")
		return
	}
	if history == nil {
		history = []model.ProfileEntry{}
	}
	writeSuccess(w, history, "")
}

// UpdateProfileHandler appends a new profile revision for the requester.
func (h *APIHandler) UpdateProfileHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req ProfileUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.AvatarURL == "" {
		req.AvatarURL = model.DefaultAvatarURL
	}
	if req.Gender == "" {
		req.Gender = model.DefaultGender
	}
	if req.Description == "" {
		req.Description = model.DefaultDescription
	}

	if err := h.userRepo.AppendProfile(r.Context(), user.ID, req.AvatarURL, req.Gender, req.Description); err != nil {
		writeServiceError(w, err, "Failed to update profile")
		return
	}
	writeSuccess(w, nil, "Profile updated successfully")
}

// UpdateNicknameHandler changes the requester's nickname after an
// exclusion-aware uniqueness check.
func (h *APIHandler) UpdateNicknameHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req struct {
		Nickname string `json:"nickname"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	req.Nickname = strings.TrimSpace(req.Nickname)
	if len(req.Nickname) < 3 {
		writeError(w, http.StatusBadRequest, "Nickname must be at least 3 characters long")
		return
	}

	taken, err := h.userRepo.NicknameExists(r.Context(), req.Nickname, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to update nickname")
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Nickname already exists")
		return
	}

	if err := h.userRepo.UpdateNickname(r.Context(), user.ID, req.Nickname); err != nil {
		writeServiceError(w, err, "Failed to update nickname")
		return
	}
	writeSuccess(w, nil, "Nickname updated successfully")
}

// UpdateEmailHandler changes the requester's email.
func (h *APIHandler) UpdateEmailHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" || !strings.Contains(req.Email, "@") {
		writeError(w, http.StatusBadRequest, "Please enter a valid email address")
		return
	}

	taken, err := h.userRepo.EmailExists(r.Context(), req.Email, user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to update email")
		return
	}
	if taken {
		writeError(w, http.StatusBadRequest, "Email already exists")
		return
	}

	if err := h.userRepo.UpdateEmail(r.Context(), user.ID, req.Email); err != nil {
		writeServiceError(w, err, "Failed to update email")
		return
	}
	writeSuccess(w, nil, "Email updated successfully")
}

// UpdatePasswordHandler changes the requester's password after verifying
// the current one.
func (h *APIHandler) UpdatePasswordHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var req struct {
		CurrentPassword string `json:"currentPassword"`
		NewPassword     string `json:"newPassword"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.CurrentPassword == "" || req.NewPassword == "" {
		writeError(w, http.StatusBadRequest, "Current and new password are required")
		return
	}
	if len(req.NewPassword) < 6 {
		writeError(w, http.StatusBadRequest, "New password must be at least 6 characters long")
		return
	}

	stored, err := h.userRepo.GetUserByID(r.Context(), user.ID)
	if err != nil {
		writeServiceError(w, err, "Failed to update password")
		return
	}
	if !auth.VerifyPassword(req.CurrentPassword, stored.PasswordHash) {
		writeError(w, http.StatusBadRequest, "Current password is incorrect")
		return
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		writeServiceError(w, err, "Failed to update password")
		return
	}
	if err := h.userRepo.UpdatePassword(r.Context(), user.ID, hash); err != nil {
		writeServiceError(w, err, "Failed to update password")
		return
	}

	logger.Info("password changed", logger.Int64("userId", user.ID))
	writeSuccess(w, nil, "Password updated successfully")
}
