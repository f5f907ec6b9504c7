package server

import (
	"net/http"

	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"
)

// AuthorEntitiesHandler lists the requester's entities with optional
// ?type= and ?status= filters.
func (h *APIHandler) AuthorEntitiesHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	q := r.URL.Query()

	entities, err := h.authorRepo.AuthorEntities(r.Context(), user.ID, q.Get("type"), q.Get("status"))
	if err != nil {
		writeServiceError(w, err, "Failed to get entities")
		return
	}
	if entities == nil {
		entities = []model.EntityRow{}
	}
	writeSuccess(w, entities, "")
}

// CreateEntityHandler submits a new entity for review.
func (h *APIHandler) CreateEntityHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)

	var sub model.EntitySubmission
	if !decodeJSON(w, r, &sub) {
		return
	}
	if sub.Name == "" || sub.Type == "" {
		writeError(w, http.StatusBadRequest, "Name and type are required")
		return
	}

	id, err := h.moderation.Create(r.Context(), user.ID, &sub)
	if err != nil {
		writeServiceError(w, err, "Failed to create entity")
		return
	}

	logger.Info("entity submitted",
		logger.Int64("entityId", id),
		logger.String("type", sub.Type),
		logger.Int64("authorId", user.ID))
	writeSuccess(w, map[string]any{"id": id}, sub.Type+" created successfully")
}

// AuthorEntityHandler returns one of the requester's entities with its
// tracks, in any status.
func (h *APIHandler) AuthorEntityHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	detail, err := h.moderation.Detail(r.Context(), user.ID, id)
	if err != nil {
		writeServiceError(w, err, "Failed to get entity details")
		return
	}
	writeSuccess(w, detail, "")
}

// UpdateEntityHandler applies an author edit; the entity returns to the
// review queue.
func (h *APIHandler) UpdateEntityHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	var sub model.EntitySubmission
	if !decodeJSON(w, r, &sub) {
		return
	}
	if sub.Name == "" {
		writeError(w, http.StatusBadRequest, "Name is required")
		return
	}

	if err := h.moderation.Update(r.Context(), user.ID, id, &sub); err != nil {
		writeServiceError(w, err, "Failed to update entity")
		return
	}

	logger.Info("entity updated", logger.Int64("entityId", id), logger.Int64("authorId", user.ID))
	writeSuccess(w, nil, "Entity updated successfully and sent for review")
}

// DeleteEntityHandler soft-deletes one of the requester's entities.
func (h *APIHandler) DeleteEntityHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.moderation.SoftDelete(r.Context(), user.ID, user.Type == model.RoleAdmin, id); err != nil {
		writeServiceError(w, err, "Failed to delete entity")
		return
	}
	writeSuccess(w, nil, "Entity deleted successfully")
}

// RestoreEntityHandler moves a removed entity back into the review queue.
func (h *APIHandler) RestoreEntityHandler(w http.ResponseWriter, r *http.Request) {
	user := currentUser(r)
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.moderation.Restore(r.Context(), user.ID, user.Type == model.RoleAdmin, id); err != nil {
		writeServiceError(w, err, "Failed to restore entity")
		return
	}
	writeSuccess(w, nil, "Entity restored successfully")
}
