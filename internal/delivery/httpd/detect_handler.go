package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"path"

	"github.com/BlackPool25/AI-Detector-Web/internal/middleware"
	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

// Detect forwards a detection request to the inference service and returns
// the canonical result. When the caller is authenticated, a history row is
// recorded afterwards; a recording failure is logged but never withholds the
// already-computed result.
func (h *Handler) Detect(w http.ResponseWriter, r *http.Request) {
	var req models.DetectRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if req.VideoURL == "" && req.Image == "" && req.Text == "" {
		writeError(w, http.StatusBadRequest, "No video_url, image, or text provided")
		return
	}

	result, modality, err := h.detectionService.Detect(r.Context(), &req)
	if err != nil {
		h.handleDetectionError(w, err)
		return
	}

	if userID := middleware.UserID(r.Context()); userID != "" {
		upload := detectUploadMetadata(&req, modality)
		if _, err := h.historyService.Record(r.Context(), userID, result, upload); err != nil {
			h.logger.Error().Err(err).
				Str("user_id", userID).
				Str("modality", modality.String()).
				Msg("Failed to record detection history")
		}
	}

	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleDetectionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrTextTooShort):
		writeError(w, http.StatusBadRequest, "Text too short. Minimum 20 characters required.")
	case errors.Is(err, models.ErrServiceNotConfigured):
		h.logger.Error().Err(err).Msg("Inference endpoint not configured")
		writeError(w, http.StatusInternalServerError, "AI detection service is not configured")
	case errors.Is(err, models.ErrUpstream), errors.Is(err, models.ErrMalformedResponse):
		h.logger.Error().Err(err).Msg("Inference call failed")
		writeError(w, http.StatusInternalServerError, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Detection error")
		writeError(w, statusFromError(err), err.Error())
	}
}

// CORSPreflight answers OPTIONS for the browser-facing endpoints.
func (h *Handler) CORSPreflight(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.WriteHeader(http.StatusOK)
}

// detectUploadMetadata derives history metadata from the request body. The
// detect endpoint receives payloads, not files, so names and sizes are
// reconstructed from what is available.
func detectUploadMetadata(req *models.DetectRequest, modality models.Modality) models.UploadMetadata {
	switch modality {
	case models.ModalityVideo:
		filename := "video-upload.mp4"
		if u, err := url.Parse(req.VideoURL); err == nil && path.Base(u.Path) != "/" && path.Base(u.Path) != "." {
			filename = path.Base(u.Path)
		}
		videoURL := req.VideoURL
		return models.UploadMetadata{
			Filename:      filename,
			FileType:      modality,
			FileExtension: models.FileExtension(filename),
			FileURL:       &videoURL,
		}
	case models.ModalityImage:
		return models.UploadMetadata{
			Filename:      "image-upload",
			FileType:      modality,
			FileSize:      int64(len(req.Image)),
			FileExtension: "",
		}
	default:
		return models.UploadMetadata{
			Filename:      "direct-text-input.txt",
			FileType:      models.ModalityText,
			FileSize:      int64(len(req.Text)),
			FileExtension: "txt",
		}
	}
}
