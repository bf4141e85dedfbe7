package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/BlackPool25/AI-Detector-Web/internal/repository"
)

// HistoryService records and serves per-user detection history. Recording is
// sequenced after detection but fails independently: a persistence failure
// never invalidates an already-computed detection result.
type HistoryService interface {
	Record(ctx context.Context, userID string, result *models.DetectionResult, upload models.UploadMetadata) (string, error)
	List(ctx context.Context, userID string, limit, offset int) (*models.HistoryListResponse, error)
	Delete(ctx context.Context, userID, id string) (*models.DeleteHistoryResponse, error)
}

type historyService struct {
	repo    repository.HistoryRepository
	remover URLRemover
	logger  zerolog.Logger
}

// URLRemover deletes an archived object by its URL. Deletion is best-effort;
// failures are logged, not surfaced.
type URLRemover interface {
	RemoveByURL(ctx context.Context, fileURL string) error
}

func NewHistoryService(repo repository.HistoryRepository, remover URLRemover, logger zerolog.Logger) HistoryService {
	return &historyService{
		repo:    repo,
		remover: remover,
		logger:  logger,
	}
}

func (s *historyService) Record(ctx context.Context, userID string, result *models.DetectionResult, upload models.UploadMetadata) (string, error) {
	if userID == "" {
		return "", models.ErrUnauthenticated
	}

	record := &models.DetectionHistory{
		ID:              uuid.New().String(),
		UserID:          userID,
		Filename:        upload.Filename,
		FileType:        upload.FileType,
		FileSize:        upload.FileSize,
		FileExtension:   upload.FileExtension,
		FileURL:         upload.FileURL,
		DetectionResult: models.VerdictFromResult(result),
		ConfidenceScore: result.Confidence,
		ModelUsed:       result.Model,
		CreatedAt:       time.Now().UTC(),
		IsFileAvailable: upload.FileURL != nil,
	}

	if err := s.repo.Create(ctx, record); err != nil {
		return "", fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	s.logger.Info().
		Str("record_id", record.ID).
		Str("user_id", userID).
		Str("verdict", string(record.DetectionResult)).
		Int("confidence", record.ConfidenceScore).
		Msg("Detection recorded")

	return record.ID, nil
}

func (s *historyService) List(ctx context.Context, userID string, limit, offset int) (*models.HistoryListResponse, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	records, total, err := s.repo.GetByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	if records == nil {
		records = []*models.DetectionHistory{}
	}

	return &models.HistoryListResponse{
		Records: records,
		Total:   total,
		Limit:   limit,
		Offset:  offset,
	}, nil
}

func (s *historyService) Delete(ctx context.Context, userID, id string) (*models.DeleteHistoryResponse, error) {
	if userID == "" {
		return nil, models.ErrUnauthenticated
	}

	record, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}
	if record == nil || record.UserID != userID {
		return nil, models.ErrNotFound
	}

	deletedAt := time.Now().UTC()
	if err := s.repo.SoftDelete(ctx, id, userID, deletedAt); err != nil {
		if err == models.ErrNotFound {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", models.ErrPersistence, err)
	}

	if record.FileURL != nil && s.remover != nil {
		if err := s.remover.RemoveByURL(ctx, *record.FileURL); err != nil {
			s.logger.Warn().Err(err).
				Str("record_id", id).
				Msg("Failed to remove archived file for deleted record")
		}
	}

	return &models.DeleteHistoryResponse{
		ID:        id,
		Deleted:   true,
		DeletedAt: deletedAt,
	}, nil
}
