package handlers

import (
	"io"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/session"
	"github.com/Vishwa-247/light-and-lovely-space/internal/upload"
)

const resumeField = "resume"

type ResumeHandler struct {
	profiles services.ProfileService
	flows    *upload.Manager
	logger   *zap.Logger
}

func NewResumeHandler(profiles services.ProfileService, flows *upload.Manager, log *zap.Logger) *ResumeHandler {
	return &ResumeHandler{profiles: profiles, flows: flows, logger: log}
}

// HandleUpload handles POST /profile/resume. Processing continues in the
// background; the flow is polled through HandleFlowStatus.
func (h *ResumeHandler) HandleUpload(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	fh, err := c.FormFile(resumeField)
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "Please upload your resume in the 'resume' field")
	}

	file := models.ResumeFile{
		Filename:    fh.Filename,
		ContentType: fh.Header.Get(fiber.HeaderContentType),
		Size:        fh.Size,
	}

	// Oversized or mistyped files are rejected before the body is read.
	if file.Size > 0 && file.Size <= services.MaxResumeSize {
		f, err := fh.Open()
		if err != nil {
			return respondError(c, h.logger, err)
		}
		defer f.Close()

		file.Data, err = io.ReadAll(f)
		if err != nil {
			return respondError(c, h.logger, err)
		}
	}

	snap, err := h.flows.Start(c.UserContext(), identity, file)
	if snap != nil && err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(snap)
	}
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusAccepted).JSON(snap)
}

// HandleFlowStatus handles GET /profile/resume/flow
func (h *ResumeHandler) HandleFlowStatus(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	snap, err := h.flows.Status(c.UserContext(), identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(snap)
}

type decisionRequest struct {
	Apply *bool `json:"apply" validate:"required"`
}

// HandleDecision handles POST /profile/resume/flow/decision
func (h *ResumeHandler) HandleDecision(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req decisionRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	snap, err := h.flows.Decide(c.UserContext(), identity, *req.Apply)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(snap)
}

// HandleDelete handles DELETE /profile/resume
func (h *ResumeHandler) HandleDelete(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	notes := session.NewCollector()
	state := session.NewProfileState(identity, h.profiles, notes, h.logger)
	ok := state.DeleteResume(c.UserContext())

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

// HandleLinks handles GET /profile/resume/links
func (h *ResumeHandler) HandleLinks(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	links, err := h.profiles.ResumeLinks(c.UserContext(), identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(links)
}

// HandleAnalyze handles POST /profile/resume/analyze
func (h *ResumeHandler) HandleAnalyze(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.AnalyzeResumeRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	analysis, err := h.profiles.AnalyzeResume(c.UserContext(), identity.UserID, req.JobRole, req.JobDescription)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(analysis)
}
