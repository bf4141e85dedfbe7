package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/extract"
	"github.com/BlackPool25/AI-Detector-Web/internal/service/inference"
)

// DetectionService routes a detection request to the inference client for its
// modality. Video wins over image wins over text when more than one payload
// is present.
type DetectionService interface {
	Detect(ctx context.Context, req *models.DetectRequest) (*models.DetectionResult, models.Modality, error)
}

type detectionService struct {
	client inference.Client
	logger zerolog.Logger
}

func NewDetectionService(client inference.Client, logger zerolog.Logger) DetectionService {
	return &detectionService{
		client: client,
		logger: logger,
	}
}

func (s *detectionService) Detect(ctx context.Context, req *models.DetectRequest) (*models.DetectionResult, models.Modality, error) {
	switch {
	case req.VideoURL != "":
		result, err := s.client.DetectVideo(ctx, req.VideoURL, req.Threshold)
		return result, models.ModalityVideo, err

	case req.Image != "":
		result, err := s.client.DetectImage(ctx, req.Image)
		return result, models.ModalityImage, err

	case req.Text != "":
		// The length floor is re-checked here independently of document
		// extraction; raw text arrives on this path without passing through
		// the extractor.
		if len(strings.TrimSpace(req.Text)) < extract.MinTextLength {
			return nil, models.ModalityText, fmt.Errorf("%w: minimum %d characters required",
				models.ErrTextTooShort, extract.MinTextLength)
		}
		result, err := s.client.DetectText(ctx, req.Text)
		return result, models.ModalityText, err
	}

	return nil, "", fmt.Errorf("%w: no video_url, image, or text provided", models.ErrInvalidType)
}
