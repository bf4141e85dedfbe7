package httpd

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

func getIntQueryParam(r *http.Request, key string, defaultValue int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return defaultValue
	}

	intValue, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}

	return intValue
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data != nil {
		json.NewEncoder(w).Encode(data)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// statusFromError maps the error taxonomy onto HTTP status codes. Validation
// failures are the caller's to correct; everything else is a server-side or
// upstream condition.
func statusFromError(err error) int {
	switch {
	case errors.Is(err, models.ErrInvalidFormat),
		errors.Is(err, models.ErrInvalidType),
		errors.Is(err, models.ErrFileTooLarge),
		errors.Is(err, models.ErrUnsupportedFormat),
		errors.Is(err, models.ErrDocumentTooShort),
		errors.Is(err, models.ErrTextTooShort):
		return http.StatusBadRequest
	case errors.Is(err, models.ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, models.ErrNotFound):
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}
