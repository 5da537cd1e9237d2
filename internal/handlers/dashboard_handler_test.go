package handlers

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/dsa"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

type dashboardFixture struct {
	profiles *MockProfileService
	courses  *MockCourseService
	activity *fakeActivityRepo
	tracker  *recordingTracker
	app      *fiber.App
}

func newDashboardFixture(t *testing.T, identity *models.Identity) *dashboardFixture {
	t.Helper()

	catalog, err := dsa.Load()
	require.NoError(t, err)

	f := &dashboardFixture{
		profiles: new(MockProfileService),
		courses:  new(MockCourseService),
		activity: &fakeActivityRepo{},
		tracker:  &recordingTracker{},
	}

	h := NewDashboardHandler(f.profiles, f.courses, f.activity, catalog, f.tracker, zap.NewNop())
	f.app = newTestApp(identity, func(app *fiber.App) {
		app.Get("/dashboard", h.HandleSummary)
		app.Get("/dsa/favorites", h.HandleListFavorites)
		app.Post("/dsa/favorites", h.HandleAddFavorite)
		app.Delete("/dsa/favorites/:itemType/:itemId", h.HandleRemoveFavorite)
		app.Get("/dsa/catalog", h.HandleCatalog)
		app.Get("/dsa/progress", h.HandleProgress)
		app.Post("/dsa/problems/:problemId/solved", h.HandleMarkSolved)
		app.Delete("/dsa/problems/:problemId/solved", h.HandleUnmarkSolved)
	})
	return f
}

func TestDashboardHandler_Summary(t *testing.T) {
	identity := testIdentity()
	f := newDashboardFixture(t, identity)

	sections := []models.SectionCompletion{{Section: services.SectionResume, Completed: true, Percentage: 100}}
	f.profiles.On("Completion", mock.Anything, identity.UserID).Return(sections, 14, nil)
	f.profiles.On("GetUserResume", mock.Anything, identity.UserID).Return(&models.ResumeData{Filename: "cv.pdf"}, nil)
	f.courses.On("ProgressSummary", mock.Anything, identity.UserID).
		Return(&models.ProgressSummary{CourseCount: 2, AverageProgress: 50, ByType: map[string]int64{"mcq_answered": 3}}, nil)
	f.activity.favorites = []models.DSAFavorite{{UserID: identity.UserID, ItemID: "two-sum", ItemType: "problem"}}
	f.activity.solved = []models.DSASolvedProblem{{UserID: identity.UserID, ProblemID: "two-sum"}}

	resp, body := doJSON(t, f.app, fiber.MethodGet, "/dashboard", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 14, body["completion"])
	assert.Equal(t, true, body["has_resume"])
	assert.Equal(t, false, body["profile_missing"])
	assert.EqualValues(t, 1, body["favorite_count"])
	progress := body["progress"].(map[string]interface{})
	assert.EqualValues(t, 2, progress["course_count"])

	// two-sum sits in the arrays topic and in two company lists
	dsaProgress := body["dsa"].(map[string]interface{})
	assert.EqualValues(t, 1, dsaProgress["topic_solved"])
	assert.EqualValues(t, 2, dsaProgress["company_solved"])
	assert.EqualValues(t, 3, dsaProgress["total_solved"])
	assert.NotZero(t, dsaProgress["total_problems"])
	assert.Len(t, dsaProgress["recent_activity"], 3)
}

func TestDashboardHandler_SummaryWithoutProfile(t *testing.T) {
	identity := testIdentity()
	f := newDashboardFixture(t, identity)

	f.profiles.On("Completion", mock.Anything, identity.UserID).Return(nil, 0, services.ErrNotFound)
	f.profiles.On("GetUserResume", mock.Anything, identity.UserID).Return(nil, nil)
	f.courses.On("ProgressSummary", mock.Anything, identity.UserID).
		Return(&models.ProgressSummary{ByType: map[string]int64{}}, nil)

	resp, body := doJSON(t, f.app, fiber.MethodGet, "/dashboard", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["profile_missing"])
	assert.EqualValues(t, 0, body["completion"])
	assert.Equal(t, false, body["has_resume"])
	assert.Empty(t, body["sections"])
}

func TestDashboardHandler_Favorites(t *testing.T) {
	identity := testIdentity()
	f := newDashboardFixture(t, identity)

	resp, body := doJSON(t, f.app, fiber.MethodGet, "/dsa/favorites", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotNil(t, body["favorites"])
	assert.Empty(t, body["favorites"])

	resp, _ = doJSON(t, f.app, fiber.MethodPost, "/dsa/favorites", map[string]string{"item_id": "two-sum", "item_type": "problem"})
	assert.Equal(t, fiber.StatusCreated, resp.StatusCode)
	require.Len(t, f.tracker.events, 1)
	assert.Equal(t, "dsa_favorite_added", f.tracker.events[0].Analytics.ActionType)

	resp, body = doJSON(t, f.app, fiber.MethodGet, "/dsa/favorites?type=problem", nil)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Len(t, body["favorites"], 1)

	resp, _ = doJSON(t, f.app, fiber.MethodDelete, "/dsa/favorites/problem/two-sum", nil)
	assert.Equal(t, fiber.StatusNoContent, resp.StatusCode)

	resp, _ = doJSON(t, f.app, fiber.MethodDelete, "/dsa/favorites/problem/two-sum", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardHandler_AddFavoriteValidation(t *testing.T) {
	f := newDashboardFixture(t, testIdentity())

	resp, body := doJSON(t, f.app, fiber.MethodPost, "/dsa/favorites", map[string]string{"item_type": "problem"})

	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.NotEmpty(t, body["details"])
	assert.Empty(t, f.activity.favorites)
}

func TestDashboardHandler_SolvedProblems(t *testing.T) {
	identity := testIdentity()
	f := newDashboardFixture(t, identity)

	resp, body := doJSON(t, f.app, fiber.MethodGet, "/dsa/progress", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_solved"])
	assert.EqualValues(t, 0, body["percentage"])

	resp, body = doJSON(t, f.app, fiber.MethodPost, "/dsa/problems/climbing-stairs/solved", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["topic_solved"])
	assert.EqualValues(t, 0, body["company_solved"])
	require.Len(t, f.tracker.events, 1)
	assert.Equal(t, "dsa_problem_solved", f.tracker.events[0].Analytics.ActionType)

	// marking twice keeps one row
	resp, body = doJSON(t, f.app, fiber.MethodPost, "/dsa/problems/climbing-stairs/solved", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 1, body["total_solved"])
	assert.Len(t, f.activity.solved, 1)

	recent := body["recent_activity"].([]interface{})
	require.NotEmpty(t, recent)
	assert.Equal(t, "dynamic-programming", recent[0].(map[string]interface{})["id"])

	resp, body = doJSON(t, f.app, fiber.MethodDelete, "/dsa/problems/climbing-stairs/solved", nil)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.EqualValues(t, 0, body["total_solved"])

	resp, _ = doJSON(t, f.app, fiber.MethodDelete, "/dsa/problems/climbing-stairs/solved", nil)
	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
}

func TestDashboardHandler_MarkUnknownProblem(t *testing.T) {
	f := newDashboardFixture(t, testIdentity())

	resp, body := doJSON(t, f.app, fiber.MethodPost, "/dsa/problems/not-a-problem/solved", nil)

	assert.Equal(t, fiber.StatusNotFound, resp.StatusCode)
	assert.Contains(t, body["error"], "unknown DSA problem")
	assert.Empty(t, f.activity.solved)
	assert.Empty(t, f.tracker.events)
}

func TestDashboardHandler_Catalog(t *testing.T) {
	f := newDashboardFixture(t, testIdentity())

	resp, body := doJSON(t, f.app, fiber.MethodGet, "/dsa/catalog", nil)

	require.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.NotEmpty(t, body["topics"])
	assert.NotEmpty(t, body["companies"])
	assert.NotEmpty(t, body["problems"])
}
