package server

import (
	"fmt"
	"net/http"

	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"

	"github.com/gorilla/mux"
)

// RejectRequest is the body of a reject call.
type RejectRequest struct {
	Reason string `json:"reason"`
}

// UserSearchRequest is the body of the admin user search.
type UserSearchRequest struct {
	Nickname string `json:"nickname"`
}

// PendingTracksHandler lists pending songs for moderation.
func (h *APIHandler) PendingTracksHandler(w http.ResponseWriter, r *http.Request) {
	h.writePending(w, r, model.TypeSong)
}

// PendingAlbumsHandler lists pending albums for moderation.
func (h *APIHandler) PendingAlbumsHandler(w http.ResponseWriter, r *http.Request) {
	h.writePending(w, r, model.TypeAlbum)
}

// PendingEPsHandler lists pending EPs for moderation.
func (h *APIHandler) PendingEPsHandler(w http.ResponseWriter, r *http.Request) {
	h.writePending(w, r, model.TypeEP)
}

func (h *APIHandler) writePending(w http.ResponseWriter, r *http.Request, entityType string) {
	entities, err := h.entityRepo.PendingByType(r.Context(), entityType)
	if err != nil {
		writeServiceError(w, err, "Failed to get pending entities")
		return
	}
	if entities == nil {
		entities = []model.EntityRow{}
	}
	writeSuccess(w, entities, "")
}

// ApproveEntityHandler approves a pending entity, scoped by type and id.
func (h *APIHandler) ApproveEntityHandler(w http.ResponseWriter, r *http.Request) {
	entityType := mux.Vars(r)["type"]
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.moderation.Approve(r.Context(), entityType, id); err != nil {
		writeServiceError(w, err, "Failed to approve entity")
		return
	}

	logger.Info("entity approved",
		logger.Int64("entityId", id), logger.String("type", entityType))
	writeSuccess(w, nil, fmt.Sprintf("%s approved successfully", entityType))
}

// RejectEntityHandler declines a pending entity with a reason.
func (h *APIHandler) RejectEntityHandler(w http.ResponseWriter, r *http.Request) {
	entityType := mux.Vars(r)["type"]
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var req RejectRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.moderation.Reject(r.Context(), entityType, id, req.Reason); err != nil {
		writeServiceError(w, err, "Failed to reject entity")
		return
	}

	logger.Info("entity rejected",
		logger.Int64("entityId", id),
		logger.String("type", entityType),
		logger.String("reason", req.Reason))
	writeSuccess(w, nil, fmt.Sprintf("%s rejected successfully", entityType))
}

// AdminUsersHandler lists every account with its current profile.
func (h *APIHandler) AdminUsersHandler(w http.ResponseWriter, r *http.Request) {
	users, err := h.userRepo.AllUsers(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to get users")
		return
	}
	if users == nil {
		users = []model.Profile{}
	}
	writeSuccess(w, users, "")
}

// AdminUserSearchHandler searches accounts by nickname substring.
func (h *APIHandler) AdminUserSearchHandler(w http.ResponseWriter, r *http.Request) {
	var req UserSearchRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	users, err := h.userRepo.SearchByNickname(r.Context(), req.Nickname)
	if err != nil {
		writeServiceError(w, err, "Failed to search users")
		return
	}
	if users == nil {
		users = []model.Profile{}
	}
	writeSuccess(w, users, "")
}

// AdminDeleteUserHandler removes an account. The account's entities stay
// in the catalog.
func (h *APIHandler) AdminDeleteUserHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.userRepo.DeleteUser(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to delete user")
		return
	}

	logger.Info("user deleted by admin", logger.Int64("userId", id))
	writeSuccess(w, nil, "User deleted successfully")
}

// GenerateReportHandler builds a CSV or JSON report and streams it as a
// file download.
func (h *APIHandler) GenerateReportHandler(w http.ResponseWriter, r *http.Request) {
	var req model.ReportRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// A misspelled genre filter would otherwise produce a silently empty
	// report; resolve it against the reference list first.
	if req.Genre != "" && req.Genre != "all" {
		if _, err := h.genreRepo.GenreByName(r.Context(), req.Genre); err != nil {
			writeServiceError(w, err, "Unknown genre filter")
			return
		}
	}

	file, err := h.reports.Generate(r.Context(), req)
	if err != nil {
		writeServiceError(w, err, "Failed to generate report")
		return
	}

	logger.Info("report generated",
		logger.String("reportType", req.ReportType),
		logger.String("format", req.Format))

	w.Header().Set("Content-Type", file.ContentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename=%q`, file.Name))
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write(file.Data); err != nil {
		logger.Error("failed to write report body", logger.ErrorField(err))
	}
}
