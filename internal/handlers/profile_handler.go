package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/session"
)

type ProfileHandler struct {
	profiles services.ProfileService
	logger   *zap.Logger
}

func NewProfileHandler(profiles services.ProfileService, log *zap.Logger) *ProfileHandler {
	return &ProfileHandler{profiles: profiles, logger: log}
}

// HandleGetProfile handles GET /profile. A failed load still answers with
// an empty profile seeded from the token, flagged with load_error.
func (h *ProfileHandler) HandleGetProfile(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	state := session.NewProfileState(identity, h.profiles, session.NewCollector(), h.logger)
	state.LoadProfile(c.UserContext())

	resp := fiber.Map{"profile": state.Profile()}
	if state.Err() != nil {
		resp["load_error"] = true
	}

	return c.JSON(resp)
}

// HandleUpdateProfile handles PUT /profile
func (h *ProfileHandler) HandleUpdateProfile(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.ProfileUpdate
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}
	if req.IsEmpty() {
		return errorJSON(c, fiber.StatusBadRequest, "Nothing to update")
	}

	state := session.NewProfileState(identity, h.profiles, session.NewCollector(), h.logger)
	if err := state.UpdateProfile(c.UserContext(), req); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"profile": state.Profile()})
}

// HandleCompletion handles GET /profile/completion
func (h *ProfileHandler) HandleCompletion(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	sections, overall, err := h.profiles.Completion(c.UserContext(), identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{
		"completion_percentage": overall,
		"sections":              sections,
	})
}

// HandleApplyExtracted handles POST /profile/extracted
func (h *ProfileHandler) HandleApplyExtracted(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var data models.ExtractedResumeData
	if err := bindJSON(c, &data); err != nil {
		return respondError(c, h.logger, err)
	}
	if data.IsEmpty() {
		return errorJSON(c, fiber.StatusBadRequest, "No extracted data to apply")
	}

	notes := session.NewCollector()
	state := session.NewProfileState(identity, h.profiles, notes, h.logger)
	ok := state.ApplyExtractedData(c.UserContext(), &data)

	status := fiber.StatusOK
	if !ok {
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{
		"success":       ok,
		"profile":       state.Profile(),
		"notifications": notes.Drain(),
	})
}
