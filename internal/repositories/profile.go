package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

// ProfileSections are the collection parts of a profile.
type ProfileSections struct {
	Education      []models.Education
	Experience     []models.Experience
	Projects       []models.Project
	Skills         []models.Skill
	Certifications []models.Certification
}

func (s ProfileSections) IsEmpty() bool {
	return len(s.Education) == 0 && len(s.Experience) == 0 && len(s.Projects) == 0 &&
		len(s.Skills) == 0 && len(s.Certifications) == 0
}

type ProfileRepository interface {
	FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error)
	Create(ctx context.Context, profile *models.UserProfile) error
	UpdatePersonalInfo(ctx context.Context, userID uuid.UUID, columns map[string]interface{}) error
	LoadSections(ctx context.Context, userID uuid.UUID) (*ProfileSections, error)
	ReplaceEducation(ctx context.Context, userID uuid.UUID, items []models.Education) error
	ReplaceExperience(ctx context.Context, userID uuid.UUID, items []models.Experience) error
	ReplaceProjects(ctx context.Context, userID uuid.UUID, items []models.Project) error
	ReplaceSkills(ctx context.Context, userID uuid.UUID, items []models.Skill) error
	ReplaceCertifications(ctx context.Context, userID uuid.UUID, items []models.Certification) error
	AppendSections(ctx context.Context, userID uuid.UUID, sections ProfileSections) error
	BumpRevision(ctx context.Context, userID uuid.UUID, expected *int64) (int64, error)
	UpdateCompletion(ctx context.Context, userID uuid.UUID, percentage int) error
	Transaction(ctx context.Context, fn func(repo ProfileRepository) error) error
}

type profileRepository struct {
	db *gorm.DB
}

func NewProfileRepository(db *gorm.DB) ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) FindByUserID(ctx context.Context, userID uuid.UUID) (*models.UserProfile, error) {
	var profile models.UserProfile
	if err := r.db.WithContext(ctx).Where("user_id = ?", userID).First(&profile).Error; err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find profile: %w", err)
	}

	return &profile, nil
}

func (r *profileRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if err := r.db.WithContext(ctx).Create(profile).Error; err != nil {
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) UpdatePersonalInfo(ctx context.Context, userID uuid.UUID, columns map[string]interface{}) error {
	if len(columns) == 0 {
		return nil
	}

	updates := make(map[string]interface{}, len(columns)+1)
	for k, v := range columns {
		updates[k] = v
	}
	updates["updated_at"] = time.Now()

	result := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("failed to update personal info: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

func (r *profileRepository) LoadSections(ctx context.Context, userID uuid.UUID) (*ProfileSections, error) {
	db := r.db.WithContext(ctx)
	sections := &ProfileSections{}

	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sections.Education).Error; err != nil {
		return nil, fmt.Errorf("failed to load education: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sections.Experience).Error; err != nil {
		return nil, fmt.Errorf("failed to load experience: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sections.Projects).Error; err != nil {
		return nil, fmt.Errorf("failed to load projects: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sections.Skills).Error; err != nil {
		return nil, fmt.Errorf("failed to load skills: %w", err)
	}
	if err := db.Where("user_id = ?", userID).Order("created_at ASC").Find(&sections.Certifications).Error; err != nil {
		return nil, fmt.Errorf("failed to load certifications: %w", err)
	}

	return sections, nil
}

// replace deletes every row of the section and inserts items in its place.
func (r *profileRepository) replace(ctx context.Context, section string, model, items interface{}, n int, userID uuid.UUID) error {
	db := r.db.WithContext(ctx)

	if err := db.Where("user_id = ?", userID).Delete(model).Error; err != nil {
		return fmt.Errorf("failed to clear %s: %w", section, err)
	}
	if n == 0 {
		return nil
	}
	if err := db.Create(items).Error; err != nil {
		return fmt.Errorf("failed to insert %s: %w", section, err)
	}

	return nil
}

func (r *profileRepository) ReplaceEducation(ctx context.Context, userID uuid.UUID, items []models.Education) error {
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].UserID = userID
	}
	return r.replace(ctx, "education", &models.Education{}, &items, len(items), userID)
}

func (r *profileRepository) ReplaceExperience(ctx context.Context, userID uuid.UUID, items []models.Experience) error {
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].UserID = userID
	}
	return r.replace(ctx, "experience", &models.Experience{}, &items, len(items), userID)
}

func (r *profileRepository) ReplaceProjects(ctx context.Context, userID uuid.UUID, items []models.Project) error {
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].UserID = userID
	}
	return r.replace(ctx, "projects", &models.Project{}, &items, len(items), userID)
}

func (r *profileRepository) ReplaceSkills(ctx context.Context, userID uuid.UUID, items []models.Skill) error {
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].UserID = userID
	}
	return r.replace(ctx, "skills", &models.Skill{}, &items, len(items), userID)
}

func (r *profileRepository) ReplaceCertifications(ctx context.Context, userID uuid.UUID, items []models.Certification) error {
	for i := range items {
		items[i].ID = uuid.Nil
		items[i].UserID = userID
	}
	return r.replace(ctx, "certifications", &models.Certification{}, &items, len(items), userID)
}

// AppendSections inserts the given entries next to the existing ones.
func (r *profileRepository) AppendSections(ctx context.Context, userID uuid.UUID, s ProfileSections) error {
	db := r.db.WithContext(ctx)

	if len(s.Education) > 0 {
		for i := range s.Education {
			s.Education[i].ID = uuid.Nil
			s.Education[i].UserID = userID
		}
		if err := db.Create(&s.Education).Error; err != nil {
			return fmt.Errorf("failed to append education: %w", err)
		}
	}
	if len(s.Experience) > 0 {
		for i := range s.Experience {
			s.Experience[i].ID = uuid.Nil
			s.Experience[i].UserID = userID
		}
		if err := db.Create(&s.Experience).Error; err != nil {
			return fmt.Errorf("failed to append experience: %w", err)
		}
	}
	if len(s.Projects) > 0 {
		for i := range s.Projects {
			s.Projects[i].ID = uuid.Nil
			s.Projects[i].UserID = userID
		}
		if err := db.Create(&s.Projects).Error; err != nil {
			return fmt.Errorf("failed to append projects: %w", err)
		}
	}
	if len(s.Skills) > 0 {
		for i := range s.Skills {
			s.Skills[i].ID = uuid.Nil
			s.Skills[i].UserID = userID
		}
		if err := db.Create(&s.Skills).Error; err != nil {
			return fmt.Errorf("failed to append skills: %w", err)
		}
	}
	if len(s.Certifications) > 0 {
		for i := range s.Certifications {
			s.Certifications[i].ID = uuid.Nil
			s.Certifications[i].UserID = userID
		}
		if err := db.Create(&s.Certifications).Error; err != nil {
			return fmt.Errorf("failed to append certifications: %w", err)
		}
	}

	return nil
}

// BumpRevision increments the profile revision. When expected is set the
// increment only happens if the stored revision still matches it.
func (r *profileRepository) BumpRevision(ctx context.Context, userID uuid.UUID, expected *int64) (int64, error) {
	db := r.db.WithContext(ctx)

	query := db.Model(&models.UserProfile{}).Where("user_id = ?", userID)
	if expected != nil {
		query = query.Where("revision = ?", *expected)
	}

	result := query.Updates(map[string]interface{}{
		"revision":   gorm.Expr("revision + 1"),
		"updated_at": time.Now(),
	})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to bump revision: %w", result.Error)
	}

	if result.RowsAffected == 0 {
		if expected == nil {
			return 0, ErrNotFound
		}
		if _, err := r.FindByUserID(ctx, userID); err != nil {
			return 0, err
		}
		return 0, ErrRevisionConflict
	}

	var revisions []int64
	if err := db.Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Pluck("revision", &revisions).Error; err != nil {
		return 0, fmt.Errorf("failed to read revision: %w", err)
	}
	if len(revisions) == 0 {
		return 0, ErrNotFound
	}

	return revisions[0], nil
}

func (r *profileRepository) UpdateCompletion(ctx context.Context, userID uuid.UUID, percentage int) error {
	err := r.db.WithContext(ctx).Model(&models.UserProfile{}).
		Where("user_id = ?", userID).
		Update("completion_percentage", percentage).Error
	if err != nil {
		return fmt.Errorf("failed to update completion: %w", err)
	}
	return nil
}

func (r *profileRepository) Transaction(ctx context.Context, fn func(repo ProfileRepository) error) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return fn(&profileRepository{db: tx})
	})
}
