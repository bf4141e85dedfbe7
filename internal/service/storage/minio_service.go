package storage

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/BlackPool25/AI-Detector-Web/internal/repository"
)

type archiveService struct {
	repo          repository.StorageRepository
	presignExpiry time.Duration
	logger        zerolog.Logger
}

func NewArchiveService(repo repository.StorageRepository, presignExpiry time.Duration, logger zerolog.Logger) ArchiveService {
	return &archiveService{
		repo:          repo,
		presignExpiry: presignExpiry,
		logger:        logger,
	}
}

// Archive stores the upload and returns its storage location with a presigned
// URL. Any failure is logged and reported as a nil file.
func (s *archiveService) Archive(ctx context.Context, modality models.Modality, filename string, data []byte, contentType string) *models.UploadedFile {
	objectName := s.objectName(modality, filename)

	if err := s.repo.Upload(ctx, objectName, data, contentType); err != nil {
		s.logger.Error().Err(err).
			Str("object", objectName).
			Str("modality", modality.String()).
			Msg("Failed to archive upload; continuing without storage")
		return nil
	}

	fileURL, err := s.repo.PresignedURL(ctx, objectName, s.presignExpiry)
	if err != nil {
		s.logger.Error().Err(err).
			Str("object", objectName).
			Msg("Failed to presign archived upload; continuing without storage")
		return nil
	}

	return &models.UploadedFile{
		Path:          objectName,
		URL:           fileURL,
		FileName:      filename,
		FileSize:      int64(len(data)),
		FileType:      modality,
		FileExtension: models.FileExtension(filename),
	}
}

// RemoveByURL deletes the object a presigned URL points at. The object name
// is the URL path with the leading bucket segment stripped.
func (s *archiveService) RemoveByURL(ctx context.Context, fileURL string) error {
	u, err := url.Parse(fileURL)
	if err != nil {
		return fmt.Errorf("invalid file URL: %w", err)
	}

	parts := strings.SplitN(strings.TrimPrefix(u.Path, "/"), "/", 2)
	if len(parts) != 2 || parts[1] == "" {
		return fmt.Errorf("file URL has no object path: %s", u.Path)
	}

	return s.repo.Remove(ctx, parts[1])
}

func (s *archiveService) objectName(modality models.Modality, filename string) string {
	name := strings.ReplaceAll(filename, " ", "_")
	name = strings.ReplaceAll(name, "..", "")

	now := time.Now().UTC()
	return fmt.Sprintf("%s/%d/%02d/%02d/%s_%s",
		modality, now.Year(), now.Month(), now.Day(), uuid.New().String()[:8], name)
}
