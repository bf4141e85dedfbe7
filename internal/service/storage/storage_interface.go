package storage

import (
	"context"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
)

// ArchiveService stores uploaded artifacts in object storage. Archival is a
// fallible side-channel of the detection flow: Archive returns nil when the
// upload could not be stored, and that never fails the detection itself.
type ArchiveService interface {
	Archive(ctx context.Context, modality models.Modality, filename string, data []byte, contentType string) *models.UploadedFile
	RemoveByURL(ctx context.Context, fileURL string) error
}
