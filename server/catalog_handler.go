package server

import (
	"net/http"

	"github.com/TemaXo00/musium-web-application/logger"
	"github.com/TemaXo00/musium-web-application/model"
	"github.com/TemaXo00/musium-web-application/repository"
)

// SearchHandler handles `GET /content/search?q=&type=&genre=&sort=`.
// An empty q degrades to a filtered browse over approved content.
func (h *APIHandler) SearchHandler(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	params := repository.SearchParams{
		Query: q.Get("q"),
		Type:  q.Get("type"),
		Genre: q.Get("genre"),
		Sort:  q.Get("sort"),
		Limit: h.cfg.SearchLimit,
	}

	results, err := h.entityRepo.Search(r.Context(), params)
	if err != nil {
		writeServiceError(w, err, "Search failed")
		return
	}
	if results == nil {
		results = []model.EntityRow{}
	}

	writeSuccess(w, map[string]any{
		"query":   params.Query,
		"results": results,
		"filters": map[string]string{
			"type":  params.Type,
			"genre": params.Genre,
			"sort":  params.Sort,
		},
	}, "")
}

// NewContentHandler returns the newest releases overall and per type.
func (h *APIHandler) NewContentHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	releases, err := h.entityRepo.NewReleases(ctx, 6)
	if err != nil {
		writeServiceError(w, err, "Failed to get new content")
		return
	}
	songs, err := h.entityRepo.FindByType(ctx, model.TypeSong, 6, "me.created_at DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get new content")
		return
	}
	albums, err := h.entityRepo.FindByType(ctx, model.TypeAlbum, 6, "me.created_at DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get new content")
		return
	}
	eps, err := h.entityRepo.FindByType(ctx, model.TypeEP, 6, "me.created_at DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get new content")
		return
	}

	writeSuccess(w, map[string]any{
		"releases": releases,
		"songs":    songs,
		"albums":   albums,
		"eps":      eps,
	}, "")
}

// TrendingHandler returns the most viewed entities per type.
func (h *APIHandler) TrendingHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	songs, err := h.entityRepo.FindByType(ctx, model.TypeSong, 10, "me.views DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get trending content")
		return
	}
	albums, err := h.entityRepo.FindByType(ctx, model.TypeAlbum, 10, "me.views DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get trending content")
		return
	}
	eps, err := h.entityRepo.FindByType(ctx, model.TypeEP, 10, "me.views DESC")
	if err != nil {
		writeServiceError(w, err, "Failed to get trending content")
		return
	}

	writeSuccess(w, map[string]any{
		"songs":  songs,
		"albums": albums,
		"eps":    eps,
	}, "")
}

// GenresHandler returns the genre reference list.
func (h *APIHandler) GenresHandler(w http.ResponseWriter, r *http.Request) {
	genres, err := h.genreRepo.AllGenres(r.Context())
	if err != nil {
		writeServiceError(w, err, "Failed to get genres")
		return
	}
	writeSuccess(w, genres, "")
}

// EntityHandler returns one approved entity with its tracks.
func (h *APIHandler) EntityHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	entity, err := h.entityRepo.GetApprovedByID(r.Context(), id)
	if err != nil {
		writeServiceError(w, err, "Failed to get entity")
		return
	}

	// Views counted since the last flush live only in Redis; overlay them
	// so the page shows the current total.
	pending, err := h.views.Get(r.Context(), id)
	if err != nil {
		logger.Warn("failed to read pending view counter",
			logger.Int64("entityId", id), logger.ErrorField(err))
	} else {
		entity.Views += pending
	}

	tracks, err := h.entityRepo.ApprovedTracks(r.Context(), id, entity.Type)
	if err != nil {
		writeServiceError(w, err, "Failed to get entity tracks")
		return
	}
	if tracks == nil {
		tracks = []model.Track{}
	}

	writeSuccess(w, model.EntityDetail{Entity: *entity, Tracks: tracks}, "")
}

// IncrementViewsHandler bumps the pending view counter in Redis. The
// flusher folds it into MySQL later, so a page view costs one INCR
// instead of an UPDATE.
func (h *APIHandler) IncrementViewsHandler(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r)
	if !ok {
		return
	}

	if err := h.views.Increment(r.Context(), id); err != nil {
		writeServiceError(w, err, "Failed to increment views")
		return
	}

	writeSuccess(w, nil, "Views incremented")
}
