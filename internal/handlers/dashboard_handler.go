package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Vishwa-247/light-and-lovely-space/internal/dsa"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/repositories"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

const (
	favoriteAction = "dsa_favorite_added"
	solvedAction   = "dsa_problem_solved"
)

type DashboardHandler struct {
	profiles services.ProfileService
	courses  services.CourseService
	activity repositories.ActivityRepository
	catalog  *dsa.Catalog
	tracker  services.ProgressTracker
	logger   *zap.Logger
}

func NewDashboardHandler(
	profiles services.ProfileService,
	courses services.CourseService,
	activity repositories.ActivityRepository,
	catalog *dsa.Catalog,
	tracker services.ProgressTracker,
	log *zap.Logger,
) *DashboardHandler {
	return &DashboardHandler{
		profiles: profiles,
		courses:  courses,
		activity: activity,
		catalog:  catalog,
		tracker:  tracker,
		logger:   log,
	}
}

// HandleSummary handles GET /dashboard. A user without a profile row gets
// zero completion rather than an error.
func (h *DashboardHandler) HandleSummary(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var summary models.DashboardSummary
	g, ctx := errgroup.WithContext(c.UserContext())

	g.Go(func() error {
		sections, overall, err := h.profiles.Completion(ctx, identity.UserID)
		if errors.Is(err, services.ErrNotFound) {
			summary.ProfileMissing = true
			summary.Sections = []models.SectionCompletion{}
			return nil
		}
		if err != nil {
			return err
		}
		summary.Sections = sections
		summary.Completion = overall
		return nil
	})
	g.Go(func() error {
		resume, err := h.profiles.GetUserResume(ctx, identity.UserID)
		if err != nil {
			return err
		}
		summary.HasResume = resume != nil
		return nil
	})
	g.Go(func() error {
		progress, err := h.courses.ProgressSummary(ctx, identity.UserID)
		if err != nil {
			return err
		}
		summary.Progress = *progress
		return nil
	})
	g.Go(func() error {
		count, err := h.activity.CountFavorites(ctx, identity.UserID)
		if err != nil {
			return err
		}
		summary.FavoriteCount = int(count)
		return nil
	})
	g.Go(func() error {
		solved, err := h.activity.ListSolved(ctx, identity.UserID)
		if err != nil {
			return err
		}
		summary.DSA = h.catalog.Progress(solved)
		return nil
	})

	if err := g.Wait(); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(summary)
}

// HandleListFavorites handles GET /dsa/favorites?type=
func (h *DashboardHandler) HandleListFavorites(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	favorites, err := h.activity.ListFavorites(c.UserContext(), identity.UserID, c.Query("type"))
	if err != nil {
		return respondError(c, h.logger, err)
	}
	if favorites == nil {
		favorites = []models.DSAFavorite{}
	}

	return c.JSON(fiber.Map{"favorites": favorites})
}

// HandleAddFavorite handles POST /dsa/favorites
func (h *DashboardHandler) HandleAddFavorite(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.FavoriteRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	favorite := &models.DSAFavorite{
		ID:       uuid.New(),
		UserID:   identity.UserID,
		ItemID:   req.ItemID,
		ItemType: req.ItemType,
	}
	if err := h.activity.AddFavorite(c.UserContext(), favorite); err != nil {
		return respondError(c, h.logger, err)
	}

	h.tracker.Track(services.AnalyticsEvent(identity.UserID, favoriteAction, req.ItemType))

	return c.Status(fiber.StatusCreated).JSON(favorite)
}

// HandleRemoveFavorite handles DELETE /dsa/favorites/:itemType/:itemId
func (h *DashboardHandler) HandleRemoveFavorite(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.activity.RemoveFavorite(c.UserContext(), identity.UserID, c.Params("itemType"), c.Params("itemId")); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleCatalog handles GET /dsa/catalog
func (h *DashboardHandler) HandleCatalog(c *fiber.Ctx) error {
	return c.JSON(h.catalog)
}

// HandleProgress handles GET /dsa/progress
func (h *DashboardHandler) HandleProgress(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	progress, err := h.progress(c, identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(progress)
}

// HandleMarkSolved handles POST /dsa/problems/:problemId/solved
func (h *DashboardHandler) HandleMarkSolved(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	problem, err := h.catalog.Problem(c.Params("problemId"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	solved := &models.DSASolvedProblem{
		ID:        uuid.New(),
		UserID:    identity.UserID,
		ProblemID: problem.ID,
	}
	if err := h.activity.MarkSolved(c.UserContext(), solved); err != nil {
		return respondError(c, h.logger, err)
	}

	h.tracker.Track(services.AnalyticsEvent(identity.UserID, solvedAction, problem.ID))

	progress, err := h.progress(c, identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(progress)
}

// HandleUnmarkSolved handles DELETE /dsa/problems/:problemId/solved
func (h *DashboardHandler) HandleUnmarkSolved(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.activity.UnmarkSolved(c.UserContext(), identity.UserID, c.Params("problemId")); err != nil {
		return respondError(c, h.logger, err)
	}

	progress, err := h.progress(c, identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(progress)
}

func (h *DashboardHandler) progress(c *fiber.Ctx, userID uuid.UUID) (models.DSAProgress, error) {
	solved, err := h.activity.ListSolved(c.UserContext(), userID)
	if err != nil {
		return models.DSAProgress{}, err
	}
	return h.catalog.Progress(solved), nil
}
