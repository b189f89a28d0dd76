package handlers

import (
	"net/http"

	"github.com/MatiasRiera/travelmatch-backend/internal/services"
)

// UploadHandler pushes avatar images to Cloudinary.
type UploadHandler struct {
	cloudinary *services.CloudinaryService
}

// NewUploadHandler builds the handler. cloudinary may be nil when no
// credentials are configured; uploads then return 503.
func NewUploadHandler(cloudinary *services.CloudinaryService) *UploadHandler {
	return &UploadHandler{cloudinary: cloudinary}
}

type uploadResponse struct {
	URL string `json:"url"`
}

// Upload handles POST /api/upload with a multipart "file" field.
func (h *UploadHandler) Upload(w http.ResponseWriter, r *http.Request) {
	if h.cloudinary == nil {
		writeError(w, http.StatusServiceUnavailable, "file upload service not available")
		return
	}

	// 10MB cap for avatar images.
	if err := r.ParseMultipartForm(10 << 20); err != nil {
		writeError(w, http.StatusBadRequest, "failed to parse form")
		return
	}

	_, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "no file provided")
		return
	}

	folder := r.URL.Query().Get("folder")
	if folder == "" {
		folder = "travelmatch"
	}

	url, err := h.cloudinary.UploadFileFromHeader(r.Context(), fileHeader, folder)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to upload file")
		return
	}

	writeJSON(w, http.StatusOK, uploadResponse{URL: url})
}
