package models

import "time"

// Verdict is the fixed enum stored in the detection_result column. The richer
// canonical shape is intentionally not stored as a JSON blob so the column
// stays queryable.
type Verdict string

const (
	VerdictFake Verdict = "FAKE"
	VerdictReal Verdict = "REAL"
)

// VerdictFromResult collapses a canonical result to the storage enum.
func VerdictFromResult(r *DetectionResult) Verdict {
	if r.IsAI {
		return VerdictFake
	}
	return VerdictReal
}

// DetectionHistory is one persisted detection record. Rows are created once
// per successful detection and never mutated by this layer except for soft
// deletion.
type DetectionHistory struct {
	ID              string     `json:"id" db:"id"`
	UserID          string     `json:"user_id" db:"user_id"`
	Filename        string     `json:"filename" db:"filename"`
	FileType        Modality   `json:"file_type" db:"file_type"`
	FileSize        int64      `json:"file_size" db:"file_size"`
	FileExtension   string     `json:"file_extension" db:"file_extension"`
	FileURL         *string    `json:"file_url" db:"file_url"`
	DetectionResult Verdict    `json:"detection_result" db:"detection_result"`
	ConfidenceScore int        `json:"confidence_score" db:"confidence_score"`
	ModelUsed       string     `json:"model_used" db:"model_used"`
	CreatedAt       time.Time  `json:"created_at" db:"created_at"`
	IsFileAvailable bool       `json:"is_file_available" db:"is_file_available"`
	FileDeletedAt   *time.Time `json:"file_deleted_at" db:"file_deleted_at"`
}

// UploadMetadata describes the uploaded artifact that produced a detection
// result, for history recording.
type UploadMetadata struct {
	Filename      string
	FileType      Modality
	FileSize      int64
	FileExtension string
	// FileURL is nil when storage archival was skipped or failed; storage
	// failure is non-fatal to the detection flow.
	FileURL *string
}
