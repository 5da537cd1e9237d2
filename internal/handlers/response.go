package handlers

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Vishwa-247/light-and-lovely-space/internal/dsa"
	"github.com/Vishwa-247/light-and-lovely-space/internal/logger"
	"github.com/Vishwa-247/light-and-lovely-space/internal/middleware"
	"github.com/Vishwa-247/light-and-lovely-space/internal/models"
	"github.com/Vishwa-247/light-and-lovely-space/internal/services"
	"github.com/Vishwa-247/light-and-lovely-space/internal/session"
	"github.com/Vishwa-247/light-and-lovely-space/internal/upload"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// requestError is a malformed or invalid request body.
type requestError struct {
	msg     string
	details []fieldError
}

func (e *requestError) Error() string {
	return e.msg
}

// bindJSON parses the body into dst and validates it.
func bindJSON(c *fiber.Ctx, dst interface{}) error {
	if err := c.BodyParser(dst); err != nil {
		return &requestError{msg: "Invalid request payload"}
	}

	if err := validate.Struct(dst); err != nil {
		var verrs validator.ValidationErrors
		if !errors.As(err, &verrs) {
			return &requestError{msg: "Request validation failed"}
		}

		details := make([]fieldError, 0, len(verrs))
		for _, fe := range verrs {
			details = append(details, fieldError{Field: fe.Namespace(), Message: validationMessage(fe)})
		}
		return &requestError{msg: "Request validation failed", details: details}
	}

	return nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email format"
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	default:
		return "Invalid value"
	}
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{
		"error": msg,
		"code":  status,
	})
}

// respondError maps domain errors to HTTP statuses. Unknown errors are
// logged and answered with a generic message.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	var reqErr *requestError
	if errors.As(err, &reqErr) {
		body := fiber.Map{"error": reqErr.msg, "code": fiber.StatusBadRequest}
		if len(reqErr.details) > 0 {
			body["details"] = reqErr.details
		}
		return c.Status(fiber.StatusBadRequest).JSON(body)
	}

	switch {
	case errors.Is(err, services.ErrAuthRequired):
		return errorJSON(c, fiber.StatusUnauthorized, "Authentication required")
	case errors.Is(err, services.ErrInvalidFile),
		errors.Is(err, services.ErrInvalidAnswer),
		errors.Is(err, services.ErrNoResumeText),
		errors.Is(err, services.ErrUnsupportedContent),
		errors.Is(err, session.ErrUploadRejected):
		return errorJSON(c, fiber.StatusBadRequest, err.Error())
	case errors.Is(err, dsa.ErrUnknownProblem):
		return errorJSON(c, fiber.StatusNotFound, err.Error())
	case errors.Is(err, services.ErrNotFound):
		return errorJSON(c, fiber.StatusNotFound, "Not found")
	case errors.Is(err, services.ErrRevisionConflict):
		return errorJSON(c, fiber.StatusConflict, "Profile was changed by another request, reload and try again")
	case errors.Is(err, services.ErrGenerationInProgress),
		errors.Is(err, services.ErrAlreadyAnswered),
		errors.Is(err, upload.ErrFlowRunning),
		errors.Is(err, upload.ErrDecisionRunning),
		errors.Is(err, upload.ErrNoPendingDecision):
		return errorJSON(c, fiber.StatusConflict, err.Error())
	case errors.Is(err, services.ErrCourseLoadFailed):
		return errorJSON(c, fiber.StatusInternalServerError, "Failed to load course data")
	}

	logger.FromCtx(c, log).Error("❌ Request failed", zap.Error(err))
	return errorJSON(c, fiber.StatusInternalServerError, "Something went wrong, please try again")
}

func currentIdentity(c *fiber.Ctx) (*models.Identity, error) {
	id := middleware.IdentityFrom(c)
	if id == nil {
		return nil, services.ErrAuthRequired
	}
	return id, nil
}

func uuidParam(c *fiber.Ctx, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params(name))
	if err != nil {
		return uuid.Nil, &requestError{msg: "Invalid " + name}
	}
	return id, nil
}
