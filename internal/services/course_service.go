package services

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

const (
	defaultGenerateDifficulty = "medium"
	defaultSearchLimit        = 5
	maxSearchLimit            = 20
)

type CourseService interface {
	ListCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error)
	LoadCourseData(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseBundle, error)
	GenerateContent(ctx context.Context, userID, courseID uuid.UUID, contentType models.ContentType) (*models.GeneratedContent, error)
	AnswerMCQ(ctx context.Context, userID, courseID, mcqID uuid.UUID, answer string) (*models.AnswerResult, error)
	MarkChapterRead(ctx context.Context, userID, courseID, chapterID uuid.UUID) error
	SearchChapters(ctx context.Context, userID, courseID uuid.UUID, query string, limit int) ([]models.ChapterMatch, error)
	ProgressSummary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error)
}

type courseService struct {
	courses   repositories.CourseRepository
	generator ContentGenerator
	index     ChapterIndex
	answers   AnswerLock
	tracker   ProgressTracker
	busy      sync.Map
	logger    *zap.Logger
}

// NewCourseService wires the course flow. index may be nil, in which case
// chapter search returns no matches.
func NewCourseService(
	courses repositories.CourseRepository,
	generator ContentGenerator,
	index ChapterIndex,
	answers AnswerLock,
	tracker ProgressTracker,
	log *zap.Logger,
) CourseService {
	return &courseService{
		courses:   courses,
		generator: generator,
		index:     index,
		answers:   answers,
		tracker:   tracker,
		logger:    log.Named("course"),
	}
}

func (s *courseService) ListCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	courses, err := s.courses.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	return nonNilSlice(courses), nil
}

// LoadCourseData fetches the course and its six content collections
// concurrently. Any failure fails the whole load.
func (s *courseService) LoadCourseData(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseBundle, error) {
	var (
		course     *models.Course
		chapters   []models.Chapter
		flashcards []models.Flashcard
		mcqs       []models.MCQ
		qnas       []models.QnA
		resources  []models.Resource
		notebook   *models.Notebook
	)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() (err error) {
		course, err = s.courses.FindByID(gctx, userID, courseID)
		return err
	})
	g.Go(func() (err error) {
		chapters, err = s.courses.Chapters(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		flashcards, err = s.courses.Flashcards(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		mcqs, err = s.courses.MCQs(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		qnas, err = s.courses.QnAs(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		resources, err = s.courses.Resources(gctx, courseID)
		return err
	})
	g.Go(func() (err error) {
		notebook, err = s.courses.Notebook(gctx, courseID)
		return err
	})

	if err := g.Wait(); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return nil, ErrNotFound
		}
		s.logger.Error("❌ Failed to load course data",
			zap.String("course_id", courseID.String()),
			zap.Error(err),
		)
		return nil, ErrCourseLoadFailed
	}

	return &models.CourseBundle{
		Course:     *course,
		Chapters:   models.NewChaptersView(chapters),
		Flashcards: nonNilSlice(flashcards),
		MCQs:       nonNilSlice(mcqs),
		QnAs:       nonNilSlice(qnas),
		Resources:  nonNilSlice(resources),
		Notebook:   notebook,
	}, nil
}

// GenerationOptions are the options sent for one content type.
func GenerationOptions(course *models.Course, chapters []models.Chapter, contentType models.ContentType) models.GenerateOptions {
	count := 5
	if contentType == models.ContentResources {
		count = 8
	}

	contents := make([]string, 0, len(chapters))
	for _, ch := range chapters {
		contents = append(contents, ch.Content)
	}

	return models.GenerateOptions{
		Topic:          course.Title,
		Difficulty:     defaultGenerateDifficulty,
		Count:          count,
		ChapterContent: strings.Join(contents, "\n\n"),
	}
}

// GenerateContent runs at most one generation per course and type at a time.
// It returns only the re-fetched collection of the generated type.
func (s *courseService) GenerateContent(ctx context.Context, userID, courseID uuid.UUID, contentType models.ContentType) (*models.GeneratedContent, error) {
	if _, err := models.ParseContentType(string(contentType)); err != nil {
		return nil, ErrUnsupportedContent
	}

	key := courseID.String() + ":" + string(contentType)
	if _, busy := s.busy.LoadOrStore(key, struct{}{}); busy {
		return nil, ErrGenerationInProgress
	}
	defer s.busy.Delete(key)

	course, err := s.courses.FindByID(ctx, userID, courseID)
	if err != nil {
		return nil, err
	}

	chapters, err := s.courses.Chapters(ctx, courseID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.Generate(ctx, courseID, contentType, GenerationOptions(course, chapters, contentType))
	if err != nil {
		s.logger.Error("❌ Content generation failed",
			zap.String("course_id", courseID.String()),
			zap.String("type", string(contentType)),
			zap.Error(err),
		)
		return nil, err
	}

	if err := s.persist(ctx, generated); err != nil {
		return nil, err
	}

	return s.refetch(ctx, courseID, contentType)
}

func (s *courseService) persist(ctx context.Context, c *models.GeneratedContent) error {
	switch c.Type {
	case models.ContentFlashcards:
		return s.courses.CreateFlashcards(ctx, c.Flashcards)
	case models.ContentMCQs:
		return s.courses.CreateMCQs(ctx, c.MCQs)
	case models.ContentQnAs:
		return s.courses.CreateQnAs(ctx, c.QnAs)
	case models.ContentResources:
		return s.courses.CreateResources(ctx, c.Resources)
	case models.ContentNotebook:
		if c.Notebook == nil {
			return nil
		}
		return s.courses.UpsertNotebook(ctx, c.Notebook)
	}
	return ErrUnsupportedContent
}

func (s *courseService) refetch(ctx context.Context, courseID uuid.UUID, contentType models.ContentType) (*models.GeneratedContent, error) {
	out := &models.GeneratedContent{Type: contentType}

	var err error
	switch contentType {
	case models.ContentFlashcards:
		out.Flashcards, err = s.courses.Flashcards(ctx, courseID)
	case models.ContentMCQs:
		out.MCQs, err = s.courses.MCQs(ctx, courseID)
	case models.ContentQnAs:
		out.QnAs, err = s.courses.QnAs(ctx, courseID)
	case models.ContentResources:
		out.Resources, err = s.courses.Resources(ctx, courseID)
	case models.ContentNotebook:
		out.Notebook, err = s.courses.Notebook(ctx, courseID)
	}
	if err != nil {
		return nil, err
	}

	return out, nil
}

// AnswerMCQ grades the first answer a user gives. Later answers to the same
// question are rejected with ErrAlreadyAnswered.
func (s *courseService) AnswerMCQ(ctx context.Context, userID, courseID, mcqID uuid.UUID, answer string) (*models.AnswerResult, error) {
	if _, err := s.courses.FindByID(ctx, userID, courseID); err != nil {
		return nil, err
	}

	mcq, err := s.courses.FindMCQ(ctx, courseID, mcqID)
	if err != nil {
		return nil, err
	}
	if !mcq.HasOption(answer) {
		return nil, ErrInvalidAnswer
	}

	first, err := s.answers.Acquire(ctx, userID, mcqID)
	if err != nil {
		return nil, err
	}
	if !first {
		return nil, ErrAlreadyAnswered
	}

	correct := mcq.IsCorrect(answer)
	score := 0
	if correct {
		score = 100
	}

	s.tracker.Track(TrackingEvent{Progress: &models.CourseProgress{
		UserID:       userID,
		CourseID:     courseID,
		ChapterID:    mcq.ChapterID,
		MCQID:        &mcqID,
		ProgressType: models.ProgressMCQAnswered,
		Score:        &score,
	}})

	return &models.AnswerResult{
		MCQID:         mcqID,
		Selected:      answer,
		Correct:       correct,
		CorrectAnswer: mcq.CorrectAnswer,
		Explanation:   mcq.Explanation,
	}, nil
}

func (s *courseService) MarkChapterRead(ctx context.Context, userID, courseID, chapterID uuid.UUID) error {
	if _, err := s.courses.FindByID(ctx, userID, courseID); err != nil {
		return err
	}
	if _, err := s.courses.FindChapter(ctx, courseID, chapterID); err != nil {
		return err
	}

	s.tracker.Track(TrackingEvent{Progress: &models.CourseProgress{
		UserID:       userID,
		CourseID:     courseID,
		ChapterID:    &chapterID,
		ProgressType: models.ProgressChapterRead,
	}})

	return nil
}

func (s *courseService) SearchChapters(ctx context.Context, userID, courseID uuid.UUID, query string, limit int) ([]models.ChapterMatch, error) {
	if _, err := s.courses.FindByID(ctx, userID, courseID); err != nil {
		return nil, err
	}

	query = strings.TrimSpace(query)
	if s.index == nil || query == "" {
		return []models.ChapterMatch{}, nil
	}

	if limit <= 0 {
		limit = defaultSearchLimit
	}
	if limit > maxSearchLimit {
		limit = maxSearchLimit
	}

	return s.index.Search(ctx, courseID, query, limit)
}

func (s *courseService) ProgressSummary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error) {
	return s.courses.ProgressSummary(ctx, userID)
}
