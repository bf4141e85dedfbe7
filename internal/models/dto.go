package models

import (
	"strings"
	"time"
)

// FileExtension returns the lowercased substring after the last dot of the
// filename, without the dot. Empty when the name has no dot.
func FileExtension(filename string) string {
	idx := strings.LastIndex(filename, ".")
	if idx < 0 || idx == len(filename)-1 {
		return ""
	}
	return strings.ToLower(filename[idx+1:])
}

// Data Transfer Objects

// DetectRequest is the inbound body of POST /api/v1/detect. Exactly one of
// VideoURL, Image, or Text is expected; VideoURL wins over Image wins over
// Text when more than one is present.
type DetectRequest struct {
	VideoURL  string   `json:"video_url,omitempty"`
	Threshold *float64 `json:"threshold,omitempty"`
	Image     string   `json:"image,omitempty"`
	Text      string   `json:"text,omitempty"`
}

// ExtractMetadata mirrors the metadata block of the extract-text response.
type ExtractMetadata struct {
	ExtractionMethod string `json:"extraction_method"`
	CharCount        int    `json:"char_count"`
	WordCount        int    `json:"word_count"`
	FileType         string `json:"file_type"`
	Success          bool   `json:"success"`
}

// ExtractTextResponse is the success body of POST /api/v1/extract-text.
type ExtractTextResponse struct {
	Success  bool            `json:"success"`
	Text     string          `json:"text"`
	Metadata ExtractMetadata `json:"metadata"`
	Preview  string          `json:"preview"`
}

// UploadedFile points at an archived upload in object storage.
type UploadedFile struct {
	Path          string   `json:"path"`
	URL           string   `json:"url"`
	FileName      string   `json:"file_name"`
	FileSize      int64    `json:"file_size"`
	FileType      Modality `json:"file_type"`
	FileExtension string   `json:"file_extension"`
}

// UploadResponse is the body of POST /api/v1/upload. Result is nil for video
// uploads, which are detected asynchronously by the client via /detect with
// the returned storage URL.
type UploadResponse struct {
	File   *UploadedFile    `json:"file,omitempty"`
	Result *DetectionResult `json:"result,omitempty"`
}

// HistoryListResponse is the body of GET /api/v1/history.
type HistoryListResponse struct {
	Records []*DetectionHistory `json:"records"`
	Total   int                 `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

// DeleteHistoryResponse is the body of DELETE /api/v1/history/{id}.
type DeleteHistoryResponse struct {
	ID        string    `json:"id"`
	Deleted   bool      `json:"deleted"`
	DeletedAt time.Time `json:"deleted_at"`
}
