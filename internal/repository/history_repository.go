package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/BlackPool25/AI-Detector-Web/internal/models"
	"github.com/rs/zerolog"
)

type HistoryRepository interface {
	Create(ctx context.Context, record *models.DetectionHistory) error
	GetByID(ctx context.Context, id string) (*models.DetectionHistory, error)
	GetByUser(ctx context.Context, userID string, limit, offset int) ([]*models.DetectionHistory, int, error)
	SoftDelete(ctx context.Context, id, userID string, deletedAt time.Time) error
}

type historyRepository struct {
	*PostgresRepository
}

func NewHistoryRepository(db *sql.DB, logger zerolog.Logger) HistoryRepository {
	return &historyRepository{
		PostgresRepository: NewPostgresRepository(db, logger),
	}
}

func (r *historyRepository) Create(ctx context.Context, record *models.DetectionHistory) error {
	query := `
		INSERT INTO detection_history (
			id, user_id, filename, file_type, file_size, file_extension,
			file_url, detection_result, confidence_score, model_used,
			created_at, is_file_available, file_deleted_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13
		)
	`

	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Filename,
		record.FileType.String(),
		record.FileSize,
		record.FileExtension,
		record.FileURL,
		string(record.DetectionResult),
		record.ConfidenceScore,
		record.ModelUsed,
		record.CreatedAt,
		record.IsFileAvailable,
		record.FileDeletedAt,
	)

	return err
}

func (r *historyRepository) GetByID(ctx context.Context, id string) (*models.DetectionHistory, error) {
	query := `
		SELECT
			id, user_id, filename, file_type, file_size, file_extension,
			file_url, detection_result, confidence_score, model_used,
			created_at, is_file_available, file_deleted_at
		FROM detection_history
		WHERE id = $1
	`

	record := &models.DetectionHistory{}
	var fileType, result string
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&record.ID,
		&record.UserID,
		&record.Filename,
		&fileType,
		&record.FileSize,
		&record.FileExtension,
		&record.FileURL,
		&result,
		&record.ConfidenceScore,
		&record.ModelUsed,
		&record.CreatedAt,
		&record.IsFileAvailable,
		&record.FileDeletedAt,
	)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	record.FileType = models.Modality(fileType)
	record.DetectionResult = models.Verdict(result)
	return record, nil
}

func (r *historyRepository) GetByUser(ctx context.Context, userID string, limit, offset int) ([]*models.DetectionHistory, int, error) {
	countQuery := `SELECT COUNT(*) FROM detection_history WHERE user_id = $1`

	var total int
	if err := r.db.QueryRowContext(ctx, countQuery, userID).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count history records: %w", err)
	}

	query := `
		SELECT
			id, user_id, filename, file_type, file_size, file_extension,
			file_url, detection_result, confidence_score, model_used,
			created_at, is_file_available, file_deleted_at
		FROM detection_history
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query history records: %w", err)
	}
	defer rows.Close()

	var records []*models.DetectionHistory
	for rows.Next() {
		record := &models.DetectionHistory{}
		var fileType, result string
		if err := rows.Scan(
			&record.ID,
			&record.UserID,
			&record.Filename,
			&fileType,
			&record.FileSize,
			&record.FileExtension,
			&record.FileURL,
			&result,
			&record.ConfidenceScore,
			&record.ModelUsed,
			&record.CreatedAt,
			&record.IsFileAvailable,
			&record.FileDeletedAt,
		); err != nil {
			return nil, 0, fmt.Errorf("failed to scan history record: %w", err)
		}
		record.FileType = models.Modality(fileType)
		record.DetectionResult = models.Verdict(result)
		records = append(records, record)
	}

	return records, total, rows.Err()
}

func (r *historyRepository) SoftDelete(ctx context.Context, id, userID string, deletedAt time.Time) error {
	query := `
		UPDATE detection_history
		SET is_file_available = false, file_deleted_at = $3
		WHERE id = $1 AND user_id = $2
	`

	res, err := r.db.ExecContext(ctx, query, id, userID, deletedAt)
	if err != nil {
		return err
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return models.ErrNotFound
	}

	return nil
}
