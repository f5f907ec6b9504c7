package server

import (
	"net/http"
	"strings"

	"github.com/TemaXo00/musium-web-application/logger"
)

const maxUploadSize = 10 << 20 // 10 MiB

// UploadImageHandler accepts a multipart image and stores it in the
// object store, returning the public URL for use in submissions and
// profiles.
func (h *APIHandler) UploadImageHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxUploadSize)
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, "Image is too large or the form is malformed")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No image file provided")
		return
	}
	defer file.Close()

	contentType := header.Header.Get("Content-Type")
	if !strings.HasPrefix(contentType, "image/") {
		writeError(w, http.StatusBadRequest, "Only image files are accepted")
		return
	}

	url, err := h.images.UploadImage(r.Context(), file, header.Size, header.Filename, contentType)
	if err != nil {
		logger.Error("image upload failed", logger.ErrorField(err))
		writeError(w, http.StatusInternalServerError, "Failed to upload image")
		return
	}

	writeSuccess(w, map[string]string{"url": url}, "Image uploaded successfully")
}
