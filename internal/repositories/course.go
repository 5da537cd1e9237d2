package repositories

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
)

type CourseRepository interface {
	ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Course, error)
	FindByID(ctx context.Context, userID, courseID uuid.UUID) (*models.Course, error)
	ListAll(ctx context.Context) ([]models.Course, error)
	Chapters(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error)
	Flashcards(ctx context.Context, courseID uuid.UUID) ([]models.Flashcard, error)
	MCQs(ctx context.Context, courseID uuid.UUID) ([]models.MCQ, error)
	QnAs(ctx context.Context, courseID uuid.UUID) ([]models.QnA, error)
	Resources(ctx context.Context, courseID uuid.UUID) ([]models.Resource, error)
	Notebook(ctx context.Context, courseID uuid.UUID) (*models.Notebook, error)
	FindMCQ(ctx context.Context, courseID, mcqID uuid.UUID) (*models.MCQ, error)
	FindChapter(ctx context.Context, courseID, chapterID uuid.UUID) (*models.Chapter, error)
	CreateFlashcards(ctx context.Context, items []models.Flashcard) error
	CreateMCQs(ctx context.Context, items []models.MCQ) error
	CreateQnAs(ctx context.Context, items []models.QnA) error
	CreateResources(ctx context.Context, items []models.Resource) error
	UpsertNotebook(ctx context.Context, notebook *models.Notebook) error
	CreateProgress(ctx context.Context, progress *models.CourseProgress) error
	ProgressSummary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error)
}

type courseRepository struct {
	db *gorm.DB
}

func NewCourseRepository(db *gorm.DB) CourseRepository {
	return &courseRepository{db: db}
}

func (r *courseRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	var courses []models.Course
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&courses).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}

	return courses, nil
}

func (r *courseRepository) FindByID(ctx context.Context, userID, courseID uuid.UUID) (*models.Course, error) {
	var course models.Course
	err := r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", courseID, userID).
		First(&course).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find course: %w", err)
	}

	return &course, nil
}

// ListAll is used by the chapter reindex script.
func (r *courseRepository) ListAll(ctx context.Context) ([]models.Course, error) {
	var courses []models.Course
	if err := r.db.WithContext(ctx).Order("created_at ASC").Find(&courses).Error; err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	return courses, nil
}

func (r *courseRepository) Chapters(ctx context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	var chapters []models.Chapter
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("order_number ASC").
		Find(&chapters).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load chapters: %w", err)
	}

	return chapters, nil
}

func (r *courseRepository) Flashcards(ctx context.Context, courseID uuid.UUID) ([]models.Flashcard, error) {
	var items []models.Flashcard
	if err := r.byCourse(ctx, courseID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load flashcards: %w", err)
	}
	return items, nil
}

func (r *courseRepository) MCQs(ctx context.Context, courseID uuid.UUID) ([]models.MCQ, error) {
	var items []models.MCQ
	if err := r.byCourse(ctx, courseID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load mcqs: %w", err)
	}
	return items, nil
}

func (r *courseRepository) QnAs(ctx context.Context, courseID uuid.UUID) ([]models.QnA, error) {
	var items []models.QnA
	if err := r.byCourse(ctx, courseID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load qnas: %w", err)
	}
	return items, nil
}

func (r *courseRepository) Resources(ctx context.Context, courseID uuid.UUID) ([]models.Resource, error) {
	var items []models.Resource
	if err := r.byCourse(ctx, courseID).Find(&items).Error; err != nil {
		return nil, fmt.Errorf("failed to load resources: %w", err)
	}
	return items, nil
}

// Notebook returns nil without error when the course has none.
func (r *courseRepository) Notebook(ctx context.Context, courseID uuid.UUID) (*models.Notebook, error) {
	var notebooks []models.Notebook
	err := r.db.WithContext(ctx).
		Where("course_id = ?", courseID).
		Order("updated_at DESC").
		Limit(1).
		Find(&notebooks).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load notebook: %w", err)
	}
	if len(notebooks) == 0 {
		return nil, nil
	}

	return &notebooks[0], nil
}

func (r *courseRepository) FindMCQ(ctx context.Context, courseID, mcqID uuid.UUID) (*models.MCQ, error) {
	var mcq models.MCQ
	err := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", mcqID, courseID).
		First(&mcq).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find mcq: %w", err)
	}

	return &mcq, nil
}

func (r *courseRepository) FindChapter(ctx context.Context, courseID, chapterID uuid.UUID) (*models.Chapter, error) {
	var chapter models.Chapter
	err := r.db.WithContext(ctx).
		Where("id = ? AND course_id = ?", chapterID, courseID).
		First(&chapter).Error
	if err != nil {
		if notFound(err) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to find chapter: %w", err)
	}

	return &chapter, nil
}

func (r *courseRepository) CreateFlashcards(ctx context.Context, items []models.Flashcard) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create flashcards: %w", err)
	}
	return nil
}

func (r *courseRepository) CreateMCQs(ctx context.Context, items []models.MCQ) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create mcqs: %w", err)
	}
	return nil
}

func (r *courseRepository) CreateQnAs(ctx context.Context, items []models.QnA) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create qnas: %w", err)
	}
	return nil
}

func (r *courseRepository) CreateResources(ctx context.Context, items []models.Resource) error {
	if len(items) == 0 {
		return nil
	}
	if err := r.db.WithContext(ctx).Create(&items).Error; err != nil {
		return fmt.Errorf("failed to create resources: %w", err)
	}
	return nil
}

// UpsertNotebook keeps a single notebook per course.
func (r *courseRepository) UpsertNotebook(ctx context.Context, notebook *models.Notebook) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "course_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"chapter_id", "key_concepts", "mind_map", "study_guide", "analogy", "updated_at"}),
	}).Create(notebook).Error
	if err != nil {
		return fmt.Errorf("failed to save notebook: %w", err)
	}
	return nil
}

func (r *courseRepository) CreateProgress(ctx context.Context, progress *models.CourseProgress) error {
	if progress.CompletedAt.IsZero() {
		progress.CompletedAt = time.Now()
	}
	if err := r.db.WithContext(ctx).Create(progress).Error; err != nil {
		return fmt.Errorf("failed to record progress: %w", err)
	}
	return nil
}

type progressTypeCount struct {
	ProgressType string
	Total        int64
}

func (r *courseRepository) ProgressSummary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error) {
	db := r.db.WithContext(ctx)
	summary := &models.ProgressSummary{ByType: map[string]int64{}}

	if err := db.Model(&models.Course{}).Where("user_id = ?", userID).Count(&summary.CourseCount).Error; err != nil {
		return nil, fmt.Errorf("failed to count courses: %w", err)
	}

	var avg struct{ Average float64 }
	err := db.Model(&models.Course{}).
		Select("COALESCE(AVG(progress_percentage), 0) AS average").
		Where("user_id = ?", userID).
		Scan(&avg).Error
	if err != nil {
		return nil, fmt.Errorf("failed to average progress: %w", err)
	}
	summary.AverageProgress = int(avg.Average + 0.5)

	var counts []progressTypeCount
	err = db.Model(&models.CourseProgress{}).
		Select("progress_type, COUNT(*) AS total").
		Where("user_id = ?", userID).
		Group("progress_type").
		Scan(&counts).Error
	if err != nil {
		return nil, fmt.Errorf("failed to count progress: %w", err)
	}
	for _, c := range counts {
		summary.ByType[c.ProgressType] = c.Total
	}

	return summary, nil
}

func (r *courseRepository) byCourse(ctx context.Context, courseID uuid.UUID) *gorm.DB {
	return r.db.WithContext(ctx).Where("course_id = ?", courseID).Order("created_at ASC")
}
