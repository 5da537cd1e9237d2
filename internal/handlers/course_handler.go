package handlers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
)

type CourseHandler struct {
	courses services.CourseService
	logger  *zap.Logger
}

func NewCourseHandler(courses services.CourseService, log *zap.Logger) *CourseHandler {
	return &CourseHandler{courses: courses, logger: log}
}

// HandleList handles GET /courses
func (h *CourseHandler) HandleList(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	courses, err := h.courses.ListCourses(c.UserContext(), identity.UserID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"courses": courses})
}

// HandleGet handles GET /courses/:id
func (h *CourseHandler) HandleGet(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	bundle, err := h.courses.LoadCourseData(c.UserContext(), identity.UserID, courseID)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(bundle)
}

// HandleGenerate handles POST /courses/:id/generate/:type
func (h *CourseHandler) HandleGenerate(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	contentType, err := models.ParseContentType(c.Params("type"))
	if err != nil {
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	}

	content, err := h.courses.GenerateContent(c.UserContext(), identity.UserID, courseID, contentType)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.Status(fiber.StatusCreated).JSON(content)
}

// HandleAnswer handles POST /courses/:id/mcqs/:mcqId/answer
func (h *CourseHandler) HandleAnswer(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}
	mcqID, err := uuidParam(c, "mcqId")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	var req models.AnswerRequest
	if err := bindJSON(c, &req); err != nil {
		return respondError(c, h.logger, err)
	}

	result, err := h.courses.AnswerMCQ(c.UserContext(), identity.UserID, courseID, mcqID, req.Answer)
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(result)
}

// HandleChapterRead handles POST /courses/:id/chapters/:chapterId/read
func (h *CourseHandler) HandleChapterRead(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}
	chapterID, err := uuidParam(c, "chapterId")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	if err := h.courses.MarkChapterRead(c.UserContext(), identity.UserID, courseID, chapterID); err != nil {
		return respondError(c, h.logger, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// HandleSearch handles GET /courses/:id/search?q=&limit=
func (h *CourseHandler) HandleSearch(c *fiber.Ctx) error {
	identity, err := currentIdentity(c)
	if err != nil {
		return respondError(c, h.logger, err)
	}
	courseID, err := uuidParam(c, "id")
	if err != nil {
		return respondError(c, h.logger, err)
	}

	matches, err := h.courses.SearchChapters(c.UserContext(), identity.UserID, courseID, c.Query("q"), c.QueryInt("limit"))
	if err != nil {
		return respondError(c, h.logger, err)
	}

	return c.JSON(fiber.Map{"matches": matches})
}
