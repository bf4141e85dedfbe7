package service

import (
	"context"
	"encoding/base64"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/extract"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/storage"
)

// UploadService handles a validated file upload end to end: policy check,
// storage archival, then detection for image and document uploads. Video
// uploads are archived only; the client submits the returned storage URL to
// the detect endpoint, mirroring the two-step video flow.
type UploadService interface {
	HandleUpload(ctx context.Context, filename, mimeType string, data []byte, modality models.Modality) (*models.UploadResponse, error)
}

type uploadService struct {
	archive   storage.ArchiveService
	extractor *extract.Extractor
	detection DetectionService
	logger    zerolog.Logger
}

func NewUploadService(archive storage.ArchiveService, extractor *extract.Extractor, detection DetectionService, logger zerolog.Logger) UploadService {
	return &uploadService{
		archive:   archive,
		extractor: extractor,
		detection: detection,
		logger:    logger,
	}
}

func (s *uploadService) HandleUpload(ctx context.Context, filename, mimeType string, data []byte, modality models.Modality) (*models.UploadResponse, error) {
	if err := ValidateUpload(filename, mimeType, int64(len(data)), modality); err != nil {
		return nil, err
	}

	// Archival failure is non-fatal for image and text: detection proceeds
	// and the history row simply carries no file URL.
	uploaded := s.archive.Archive(ctx, modality, filename, data, mimeType)

	switch modality {
	case models.ModalityVideo:
		// Video detection needs a reachable URL, so here archival is the
		// operation itself.
		if uploaded == nil {
			return nil, fmt.Errorf("%w: failed to store video for detection", models.ErrPersistence)
		}
		return &models.UploadResponse{File: uploaded}, nil

	case models.ModalityImage:
		encoded := base64.StdEncoding.EncodeToString(data)
		result, _, err := s.detection.Detect(ctx, &models.DetectRequest{Image: encoded})
		if err != nil {
			return nil, err
		}
		return &models.UploadResponse{File: uploaded, Result: result}, nil

	case models.ModalityText:
		doc, err := s.extractor.Extract(data, models.FileExtension(filename))
		if err != nil {
			return nil, err
		}
		result, _, err := s.detection.Detect(ctx, &models.DetectRequest{Text: doc.Text})
		if err != nil {
			return nil, err
		}
		return &models.UploadResponse{File: uploaded, Result: result}, nil
	}

	return nil, fmt.Errorf("%w: unknown modality %q", models.ErrInvalidType, modality)
}
