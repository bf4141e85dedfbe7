package httpd

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

const (
	maxDocumentSize = 10 << 20
	previewLength   = 200
)

// ExtractText extracts plain text from an uploaded document and returns it
// with extraction metadata and a short preview.
func (h *Handler) ExtractText(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxDocumentSize + (1 << 20)); err != nil {
		writeError(w, http.StatusBadRequest, "Failed to parse form data")
		return
	}

	file, fileHeader, err := r.FormFile("file")
	if err != nil {
		writeError(w, http.StatusBadRequest, "No file provided")
		return
	}
	defer file.Close()

	if fileHeader.Size > maxDocumentSize {
		writeError(w, http.StatusBadRequest, "File too large. Maximum size is 10MB")
		return
	}

	extension := models.FileExtension(fileHeader.Filename)
	if !h.extractor.Supports(extension) {
		writeError(w, http.StatusBadRequest, fmt.Sprintf("Unsupported format. Supported: %s",
			strings.Join(h.extractor.SupportedFormats(), ", ")))
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to read file")
		return
	}

	doc, err := h.extractor.Extract(data, extension)
	if err != nil {
		h.handleExtractionError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, models.ExtractTextResponse{
		Success: true,
		Text:    doc.Text,
		Metadata: models.ExtractMetadata{
			ExtractionMethod: doc.ExtractionMethod,
			CharCount:        doc.CharCount,
			WordCount:        doc.WordCount,
			FileType:         extension,
			Success:          true,
		},
		Preview: preview(doc.Text),
	})
}

func (h *Handler) handleExtractionError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrDocumentTooShort):
		writeError(w, http.StatusBadRequest, "Document too short. Minimum 20 characters required.")
	case errors.Is(err, models.ErrUnsupportedFormat):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error().Err(err).Msg("Text extraction error")
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}

func preview(text string) string {
	if len(text) <= previewLength {
		return text
	}
	return text[:previewLength] + "..."
}
