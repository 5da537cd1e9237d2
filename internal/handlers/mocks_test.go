package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Vishwa-247/light-and-lovely-space/internal/middleware"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

type MockProfileService struct {
	mock.Mock
}

func (m *MockProfileService) GetProfile(ctx context.Context, userID uuid.UUID) (*models.ProfileAggregate, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileAggregate), args.Error(1)
}

func (m *MockProfileService) GetUserResume(ctx context.Context, userID uuid.UUID) (*models.ResumeData, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResumeData), args.Error(1)
}

func (m *MockProfileService) UpdateProfile(ctx context.Context, userID uuid.UUID, update models.ProfileUpdate) (*models.ProfileAggregate, error) {
	args := m.Called(ctx, userID, update)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProfileAggregate), args.Error(1)
}

func (m *MockProfileService) UploadResume(ctx context.Context, userID uuid.UUID, file models.ResumeFile) (*models.UploadResult, error) {
	args := m.Called(ctx, userID, file)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UploadResult), args.Error(1)
}

func (m *MockProfileService) ApplyExtractedData(ctx context.Context, userID uuid.UUID, data *models.ExtractedResumeData) (bool, error) {
	args := m.Called(ctx, userID, data)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) DeclineExtractedData(ctx context.Context, userID, extractionID uuid.UUID) error {
	args := m.Called(ctx, userID, extractionID)
	return args.Error(0)
}

func (m *MockProfileService) DeleteResume(ctx context.Context, userID uuid.UUID) (bool, error) {
	args := m.Called(ctx, userID)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfileService) ResumeLinks(ctx context.Context, userID uuid.UUID) (*models.ResumeLinks, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResumeLinks), args.Error(1)
}

func (m *MockProfileService) AnalyzeResume(ctx context.Context, userID uuid.UUID, jobRole, jobDescription string) (*models.ResumeAnalysis, error) {
	args := m.Called(ctx, userID, jobRole, jobDescription)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResumeAnalysis), args.Error(1)
}

func (m *MockProfileService) Completion(ctx context.Context, userID uuid.UUID) ([]models.SectionCompletion, int, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]models.SectionCompletion), args.Int(1), args.Error(2)
}

type MockCourseService struct {
	mock.Mock
}

func (m *MockCourseService) ListCourses(ctx context.Context, userID uuid.UUID) ([]models.Course, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Course), args.Error(1)
}

func (m *MockCourseService) LoadCourseData(ctx context.Context, userID, courseID uuid.UUID) (*models.CourseBundle, error) {
	args := m.Called(ctx, userID, courseID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.CourseBundle), args.Error(1)
}

func (m *MockCourseService) GenerateContent(ctx context.Context, userID, courseID uuid.UUID, contentType models.ContentType) (*models.GeneratedContent, error) {
	args := m.Called(ctx, userID, courseID, contentType)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.GeneratedContent), args.Error(1)
}

func (m *MockCourseService) AnswerMCQ(ctx context.Context, userID, courseID, mcqID uuid.UUID, answer string) (*models.AnswerResult, error) {
	args := m.Called(ctx, userID, courseID, mcqID, answer)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AnswerResult), args.Error(1)
}

func (m *MockCourseService) MarkChapterRead(ctx context.Context, userID, courseID, chapterID uuid.UUID) error {
	args := m.Called(ctx, userID, courseID, chapterID)
	return args.Error(0)
}

func (m *MockCourseService) SearchChapters(ctx context.Context, userID, courseID uuid.UUID, query string, limit int) ([]models.ChapterMatch, error) {
	args := m.Called(ctx, userID, courseID, query, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.ChapterMatch), args.Error(1)
}

func (m *MockCourseService) ProgressSummary(ctx context.Context, userID uuid.UUID) (*models.ProgressSummary, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ProgressSummary), args.Error(1)
}

type fakeActivityRepo struct {
	mu        sync.Mutex
	favorites []models.DSAFavorite
	solved    []models.DSASolvedProblem
}

func (r *fakeActivityRepo) RecordAnalytics(context.Context, *models.ProfileAnalytics) error {
	return nil
}

func (r *fakeActivityRepo) ListFavorites(_ context.Context, userID uuid.UUID, itemType string) ([]models.DSAFavorite, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.DSAFavorite
	for _, f := range r.favorites {
		if f.UserID == userID && (itemType == "" || f.ItemType == itemType) {
			out = append(out, f)
		}
	}
	return out, nil
}

func (r *fakeActivityRepo) AddFavorite(_ context.Context, favorite *models.DSAFavorite) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.favorites = append(r.favorites, *favorite)
	return nil
}

func (r *fakeActivityRepo) RemoveFavorite(_ context.Context, userID uuid.UUID, itemType, itemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, f := range r.favorites {
		if f.UserID == userID && f.ItemType == itemType && f.ItemID == itemID {
			r.favorites = append(r.favorites[:i], r.favorites[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeActivityRepo) CountFavorites(_ context.Context, userID uuid.UUID) (int64, error) {
	favorites, _ := r.ListFavorites(context.Background(), userID, "")
	return int64(len(favorites)), nil
}

func (r *fakeActivityRepo) MarkSolved(_ context.Context, solved *models.DSASolvedProblem) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, s := range r.solved {
		if s.UserID == solved.UserID && s.ProblemID == solved.ProblemID {
			return nil
		}
	}
	row := *solved
	row.CreatedAt = time.Now()
	r.solved = append(r.solved, row)
	return nil
}

func (r *fakeActivityRepo) UnmarkSolved(_ context.Context, userID uuid.UUID, problemID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, s := range r.solved {
		if s.UserID == userID && s.ProblemID == problemID {
			r.solved = append(r.solved[:i], r.solved[i+1:]...)
			return nil
		}
	}
	return repositories.ErrNotFound
}

func (r *fakeActivityRepo) ListSolved(_ context.Context, userID uuid.UUID) ([]models.DSASolvedProblem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	var out []models.DSASolvedProblem
	for _, s := range r.solved {
		if s.UserID == userID {
			out = append(out, s)
		}
	}
	return out, nil
}

type recordingTracker struct {
	mu     sync.Mutex
	events []services.TrackingEvent
}

func (t *recordingTracker) Start(context.Context) {}
func (t *recordingTracker) Stop()                 {}

func (t *recordingTracker) Track(event services.TrackingEvent) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.events = append(t.events, event)
}

func testIdentity() *models.Identity {
	return &models.Identity{UserID: uuid.New(), Email: "ada@example.com", FullName: "Ada Lovelace"}
}

// newTestApp mounts routes behind a middleware that injects identity. A nil
// identity simulates an unauthenticated request.
func newTestApp(identity *models.Identity, mount func(app *fiber.App)) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if identity != nil {
			middleware.SetIdentity(c, identity)
		}
		return c.Next()
	})
	mount(app)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body interface{}) (*http.Response, map[string]interface{}) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}

	resp, err := app.Test(req)
	require.NoError(t, err)

	return resp, decodeBody(t, resp)
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) == 0 {
		return nil
	}

	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}
