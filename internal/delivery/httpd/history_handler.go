package httpd

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/BlackPool25/AI-Detector-Web/internal/middleware"
)

func (h *Handler) ListHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	limit := getIntQueryParam(r, "limit", 20)
	offset := getIntQueryParam(r, "offset", 0)

	response, err := h.historyService.List(r.Context(), userID, limit, offset)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", userID).Msg("Failed to list detection history")
		writeError(w, statusFromError(err), "Failed to load detection history")
		return
	}

	writeJSON(w, http.StatusOK, response)
}

func (h *Handler) DeleteHistory(w http.ResponseWriter, r *http.Request) {
	userID := middleware.UserID(r.Context())

	recordID := chi.URLParam(r, "record_id")
	if recordID == "" {
		writeError(w, http.StatusBadRequest, "Record ID is required")
		return
	}

	response, err := h.historyService.Delete(r.Context(), userID, recordID)
	if err != nil {
		status := statusFromError(err)
		if status == http.StatusNotFound {
			writeError(w, status, "Record not found")
			return
		}
		h.logger.Error().Err(err).
			Str("user_id", userID).
			Str("record_id", recordID).
			Msg("Failed to delete detection history record")
		writeError(w, status, "Failed to delete record")
		return
	}

	writeJSON(w, http.StatusOK, response)
}
