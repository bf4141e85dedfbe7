package models

import "errors"

// Error taxonomy for the detection flow. Handlers map these to HTTP status
// codes with errors.Is; services wrap them with %w to attach detail.
var (
	// Input validation (4xx, user-correctable, never retried).
	ErrInvalidFormat     = errors.New("invalid file format")
	ErrInvalidType       = errors.New("invalid file type")
	ErrFileTooLarge      = errors.New("file too large")
	ErrUnsupportedFormat = errors.New("unsupported format")
	ErrDocumentTooShort  = errors.New("document too short")
	ErrTextTooShort      = errors.New("text too short")

	// Deployment defect (500, fatal, requires operator action).
	ErrServiceNotConfigured = errors.New("detection service is not configured")

	// Upstream failures (500, surfaced verbatim, no retry).
	ErrUpstream          = errors.New("upstream detection error")
	ErrMalformedResponse = errors.New("malformed upstream response")

	// Extraction library failures (500).
	ErrExtractionFailed = errors.New("failed to extract text")

	// Auth and persistence.
	ErrUnauthenticated = errors.New("authentication required")
	ErrPersistence     = errors.New("failed to persist detection record")

	ErrNotFound = errors.New("record not found")
)
