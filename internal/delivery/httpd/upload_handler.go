package httpd

import (
	"io"
	"net/http"

	"github.com/BlackPool25/AI-Detector-Web/internal/middleware"
	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

const maxUploadMemory = 32 << 20

// Upload validates an uploaded file for its declared modality, archives it,
// and runs detection for image and document uploads. Video uploads return
// the storage URL for a follow-up call to the detect endpoint.
func (h *Handler) Upload(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadMemory); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "File is required")
		return
	}
	defer file.Close()

	modality, ok := models.ParseModality(r.FormValue("mode"))
	if !ok {
		writeError(w, http.StatusBadRequest, "mode must be one of: text, image, video")
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	mimeType := fileHeader.Header.Get("Content-Type")

	response, err := h.uploadService.HandleUpload(r.Context(), fileHeader.Filename, mimeType, data, modality)
	if err != nil {
		h.logger.Error().Err(err).
			Str("filename", fileHeader.Filename).
			Str("modality", modality.String()).
			Msg("Upload failed")
		writeError(w, statusFromError(err), err.Error())
		return
	}

	// Detection already succeeded; a failed history write is logged only.
	if response.Result != nil {
		userID := middleware.UserID(r.Context())
		upload := models.UploadMetadata{
			Filename:      fileHeader.Filename,
			FileType:      modality,
			FileSize:      int64(len(data)),
			FileExtension: models.FileExtension(fileHeader.Filename),
		}
		if response.File != nil {
			upload.FileURL = &response.File.URL
		}
		if _, err := h.historyService.Record(r.Context(), userID, response.Result, upload); err != nil {
			h.logger.Error().Err(err).
				Str("user_id", userID).
				Msg("Failed to record detection history")
		}
	}

	writeJSON(w, http.StatusOK, response)
}
