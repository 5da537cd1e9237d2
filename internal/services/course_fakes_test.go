package services

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
)

var errFakeDB = errors.New("connection reset")

type fakeCourseRepo struct {
	mu         sync.Mutex
	courses    map[uuid.UUID]models.Course
	chapters   map[uuid.UUID][]models.Chapter
	flashcards map[uuid.UUID][]models.Flashcard
	mcqs       map[uuid.UUID][]models.MCQ
	qnas       map[uuid.UUID][]models.QnA
	resources  map[uuid.UUID][]models.Resource
	notebooks  map[uuid.UUID]*models.Notebook
	failOn     string
}

func newFakeCourseRepo() *fakeCourseRepo {
	return &fakeCourseRepo{
		courses:    map[uuid.UUID]models.Course{},
		chapters:   map[uuid.UUID][]models.Chapter{},
		flashcards: map[uuid.UUID][]models.Flashcard{},
		mcqs:       map[uuid.UUID][]models.MCQ{},
		qnas:       map[uuid.UUID][]models.QnA{},
		resources:  map[uuid.UUID][]models.Resource{},
		notebooks:  map[uuid.UUID]*models.Notebook{},
	}
}

func (r *fakeCourseRepo) addCourse(userID uuid.UUID, title string) models.Course {
	c := models.Course{ID: uuid.New(), UserID: userID, Title: title, Purpose: "learn", Difficulty: "beginner"}
	r.courses[c.ID] = c
	return c
}

func (r *fakeCourseRepo) fail(method string) error {
	if r.failOn == method {
		return errFakeDB
	}
	return nil
}

func (r *fakeCourseRepo) ListByUser(_ context.Context, userID uuid.UUID) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Course
	for _, c := range r.courses {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, r.fail("ListByUser")
}

func (r *fakeCourseRepo) FindByID(_ context.Context, userID, courseID uuid.UUID) (*models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := r.fail("FindByID"); err != nil {
		return nil, err
	}
	c, ok := r.courses[courseID]
	if !ok || c.UserID != userID {
		return nil, repositories.ErrNotFound
	}
	return &c, nil
}

func (r *fakeCourseRepo) ListAll(_ context.Context) ([]models.Course, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.Course
	for _, c := range r.courses {
		out = append(out, c)
	}
	return out, nil
}

func (r *fakeCourseRepo) Chapters(_ context.Context, courseID uuid.UUID) ([]models.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.chapters[courseID], r.fail("Chapters")
}

func (r *fakeCourseRepo) Flashcards(_ context.Context, courseID uuid.UUID) ([]models.Flashcard, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.flashcards[courseID], r.fail("Flashcards")
}

func (r *fakeCourseRepo) MCQs(_ context.Context, courseID uuid.UUID) ([]models.MCQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.mcqs[courseID], r.fail("MCQs")
}

func (r *fakeCourseRepo) QnAs(_ context.Context, courseID uuid.UUID) ([]models.QnA, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.qnas[courseID], r.fail("QnAs")
}

func (r *fakeCourseRepo) Resources(_ context.Context, courseID uuid.UUID) ([]models.Resource, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.resources[courseID], r.fail("Resources")
}

func (r *fakeCourseRepo) Notebook(_ context.Context, courseID uuid.UUID) (*models.Notebook, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.notebooks[courseID], r.fail("Notebook")
}

func (r *fakeCourseRepo) FindMCQ(_ context.Context, courseID, mcqID uuid.UUID) (*models.MCQ, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, m := range r.mcqs[courseID] {
		if m.ID == mcqID {
			cp := m
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCourseRepo) FindChapter(_ context.Context, courseID, chapterID uuid.UUID) (*models.Chapter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, ch := range r.chapters[courseID] {
		if ch.ID == chapterID {
			cp := ch
			return &cp, nil
		}
	}
	return nil, repositories.ErrNotFound
}

func (r *fakeCourseRepo) CreateFlashcards(_ context.Context, items []models.Flashcard) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		it.ID = uuid.New()
		r.flashcards[it.CourseID] = append(r.flashcards[it.CourseID], it)
	}
	return nil
}

func (r *fakeCourseRepo) CreateMCQs(_ context.Context, items []models.MCQ) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		it.ID = uuid.New()
		r.mcqs[it.CourseID] = append(r.mcqs[it.CourseID], it)
	}
	return nil
}

func (r *fakeCourseRepo) CreateQnAs(_ context.Context, items []models.QnA) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		it.ID = uuid.New()
		r.qnas[it.CourseID] = append(r.qnas[it.CourseID], it)
	}
	return nil
}

func (r *fakeCourseRepo) CreateResources(_ context.Context, items []models.Resource) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, it := range items {
		it.ID = uuid.New()
		r.resources[it.CourseID] = append(r.resources[it.CourseID], it)
	}
	return nil
}

func (r *fakeCourseRepo) UpsertNotebook(_ context.Context, notebook *models.Notebook) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *notebook
	r.notebooks[notebook.CourseID] = &cp
	return nil
}

func (r *fakeCourseRepo) CreateProgress(_ context.Context, _ *models.CourseProgress) error {
	return nil
}

func (r *fakeCourseRepo) ProgressSummary(_ context.Context, _ uuid.UUID) (*models.ProgressSummary, error) {
	return &models.ProgressSummary{ByType: map[string]int64{}}, nil
}

type stubGenerator struct {
	content *models.GeneratedContent
	err     error
	opts    models.GenerateOptions
	started chan struct{}
	release chan struct{}
}

func (g *stubGenerator) Generate(ctx context.Context, courseID uuid.UUID, contentType models.ContentType, opts models.GenerateOptions) (*models.GeneratedContent, error) {
	g.opts = opts
	if g.started != nil {
		close(g.started)
		<-g.release
	}
	if g.err != nil {
		return nil, g.err
	}
	out := *g.content
	return &out, nil
}

type stubChapterIndex struct {
	matches []models.ChapterMatch
	limit   int
}

func (i *stubChapterIndex) EnsureCollection(context.Context) error { return nil }

func (i *stubChapterIndex) IndexCourse(_ context.Context, _ uuid.UUID, chapters []models.Chapter) (int, error) {
	return len(chapters), nil
}

func (i *stubChapterIndex) Search(_ context.Context, _ uuid.UUID, _ string, limit int) ([]models.ChapterMatch, error) {
	i.limit = limit
	return i.matches, nil
}
