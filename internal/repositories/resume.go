package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

type ResumeRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserResume, error)
	Upsert(ctx context.Context, resume *models.UserResume) error
	DeleteByUserID(ctx context.Context, userID uuid.UUID) error
	UpdateAnalysis(ctx context.Context, userID uuid.UUID, analysis datatypes.JSON, skillGaps, recommendations []string) error
	CreateExtraction(ctx context.Context, extraction *models.ResumeExtraction) error
	FindExtraction(ctx context.Context, userID, id uuid.UUID) (*models.ResumeExtraction, error)
	UpdateExtractionStatus(ctx context.Context, userID, id uuid.UUID, status models.ExtractionStatus) error
	ResolvePendingExtractions(ctx context.Context, userID uuid.UUID, status models.ExtractionStatus) (int64, error)
}

type resumeRepository struct {
	db *gorm.DB
}

func NewResumeRepository(db *gorm.DB) ResumeRepository {
	return &resumeRepository{db: db}
}

func (r *resumeRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserResume, error) {
	var resume models.UserResume
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&resume).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find resume: %w", err)
	}

	return &resume, nil
}

// Upsert replaces any previous resume of the user with the given row.
func (r *resumeRepository) Upsert(ctx context.Context, resume *models.UserResume) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", resume.UserID).Delete(&models.UserResume{}).Error; err != nil {
			return fmt.Errorf("failed to remove previous resume: %w", err)
		}
		if err := tx.Create(resume).Error; err != nil {
			return fmt.Errorf("failed to create resume: %w", err)
		}
		return nil
	})
}

func (r *resumeRepository) DeleteByUserID(ctx context.Context, userID uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("user_id = ?", userID).Delete(&models.UserResume{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete resume: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *resumeRepository) UpdateAnalysis(ctx context.Context, userID uuid.UUID, analysis datatypes.JSON, skillGaps, recommendations []string) error {
	result := r.db.WithContext(ctx).Model(&models.UserResume{}).
		Where("user_id = ?", userID).
		Updates(map[string]interface{}{
			"ai_analysis":       analysis,
			"skill_gaps":        pq.StringArray(skillGaps),
			"recommendations":   pq.StringArray(recommendations),
			"processing_status": models.ProcessingCompleted,
			"updated_at":        time.Now(),
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update analysis: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *resumeRepository) CreateExtraction(ctx context.Context, extraction *models.ResumeExtraction) error {
	if err := r.db.WithContext(ctx).Create(extraction).Error; err != nil {
		return fmt.Errorf("failed to create extraction: %w", err)
	}
	return nil
}

func (r *resumeRepository) FindExtraction(ctx context.Context, userID, id uuid.UUID) (*models.ResumeExtraction, error) {
	var extraction models.ResumeExtraction
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&extraction).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find extraction: %w", err)
	}

	return &extraction, nil
}

func (r *resumeRepository) UpdateExtractionStatus(ctx context.Context, userID, id uuid.UUID, status models.ExtractionStatus) error {
	result := r.db.WithContext(ctx).Model(&models.ResumeExtraction{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(extractionStatusUpdates(userID, status))
	if result.Error != nil {
		return fmt.Errorf("failed to update extraction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// ResolvePendingExtractions moves every pending extraction of the user to status.
func (r *resumeRepository) ResolvePendingExtractions(ctx context.Context, userID uuid.UUID, status models.ExtractionStatus) (int64, error) {
	result := r.db.WithContext(ctx).Model(&models.ResumeExtraction{}).
		Where("user_id = ? AND status = ?", userID, models.ExtractionPending).
		Updates(extractionStatusUpdates(userID, status))
	if result.Error != nil {
		return 0, fmt.Errorf("failed to resolve extractions: %w", result.Error)
	}

	return result.RowsAffected, nil
}

func extractionStatusUpdates(userID uuid.UUID, status models.ExtractionStatus) map[string]interface{} {
	now := time.Now()
	updates := map[string]interface{}{
		"status":     status,
		"updated_at": now,
	}
	if status == models.ExtractionApplied {
		updates["applied_at"] = now
		updates["applied_by"] = userID
	}
	return updates
}
