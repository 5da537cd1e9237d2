package repositories

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

type ActivityRepository interface {
	RecordAnalytics(ctx context.Context, event *models.ProfileAnalytics) error
	ListFavorites(ctx context.Context, userID uuid.UUID, itemType string) ([]models.DSAFavorite, error)
	AddFavorite(ctx context.Context, favorite *models.DSAFavorite) error
	RemoveFavorite(ctx context.Context, userID uuid.UUID, itemType, itemID string) error
	CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error)
	MarkSolved(ctx context.Context, solved *models.DSASolvedProblem) error
	UnmarkSolved(ctx context.Context, userID uuid.UUID, problemID string) error
	ListSolved(ctx context.Context, userID uuid.UUID) ([]models.DSASolvedProblem, error)
}

type activityRepository struct {
	db *gorm.DB
}

func NewActivityRepository(db *gorm.DB) ActivityRepository {
	return &activityRepository{db: db}
}

func (r *activityRepository) RecordAnalytics(ctx context.Context, event *models.ProfileAnalytics) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to record analytics: %w", err)
	}
	return nil
}

// ListFavorites filters by item type unless itemType is empty.
func (r *activityRepository) ListFavorites(ctx context.Context, userID uuid.UUID, itemType string) ([]models.DSAFavorite, error) {
	query := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if itemType != "" {
		query = query.Where("item_type = ?", itemType)
	}

	var favorites []models.DSAFavorite
	if err := query.Order("created_at DESC").Find(&favorites).Error; err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}

	return favorites, nil
}

// AddFavorite is idempotent.
func (r *activityRepository) AddFavorite(ctx context.Context, favorite *models.DSAFavorite) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(favorite).Error
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *activityRepository) RemoveFavorite(ctx context.Context, userID uuid.UUID, itemType, itemID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND item_type = ? AND item_id = ?", userID, itemType, itemID).
		Delete(&models.DSAFavorite{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove favorite: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *activityRepository) CountFavorites(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.DSAFavorite{}).
		Where("user_id = ?", userID).
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count favorites: %w", err)
	}
	return count, nil
}

// MarkSolved is idempotent; the first solve keeps its timestamp.
func (r *activityRepository) MarkSolved(ctx context.Context, solved *models.DSASolvedProblem) error {
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(solved).Error
	if err != nil {
		return fmt.Errorf("failed to mark problem solved: %w", err)
	}
	return nil
}

func (r *activityRepository) UnmarkSolved(ctx context.Context, userID uuid.UUID, problemID string) error {
	result := r.db.WithContext(ctx).
		Where("user_id = ? AND problem_id = ?", userID, problemID).
		Delete(&models.DSASolvedProblem{})
	if result.Error != nil {
		return fmt.Errorf("failed to unmark solved problem: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *activityRepository) ListSolved(ctx context.Context, userID uuid.UUID) ([]models.DSASolvedProblem, error) {
	var solved []models.DSASolvedProblem
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&solved).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list solved problems: %w", err)
	}
	return solved, nil
}
