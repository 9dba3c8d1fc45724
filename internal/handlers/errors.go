package handlers

import (
	"errors"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/utils"

	"storerating/internal/apperrors"
)

// ErrorResponse is the body of every failed request.
type ErrorResponse struct {
	StatusCode int               `json:"statusCode"`
	Message    string            `json:"message"`
	Error      string            `json:"error"`
	Errors     map[string]string `json:"errors,omitempty"`
}

func statusOf(kind apperrors.Kind) int {
	switch kind {
	case apperrors.KindValidation:
		return fiber.StatusBadRequest
	case apperrors.KindUnauthorized:
		return fiber.StatusUnauthorized
	case apperrors.KindForbidden:
		return fiber.StatusForbidden
	case apperrors.KindNotFound:
		return fiber.StatusNotFound
	case apperrors.KindConflict:
		return fiber.StatusConflict
	}
	return fiber.StatusInternalServerError
}

// ErrorHandler renders classified errors with their status. Anything else is
// logged and reported as a bare 500.
func ErrorHandler(log *slog.Logger) fiber.ErrorHandler {
	if log == nil {
		log = slog.Default()
	}
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return c.Status(fe.Code).JSON(ErrorResponse{
				StatusCode: fe.Code,
				Message:    fe.Message,
				Error:      utils.StatusMessage(fe.Code),
			})
		}

		var ae *apperrors.Error
		if errors.As(err, &ae) && ae.Kind != apperrors.KindInternal {
			status := statusOf(ae.Kind)
			if ae.Err != nil {
				log.DebugContext(c.UserContext(), "request rejected", "path", c.Path(), "status", status, "error", ae.Err)
			}
			return c.Status(status).JSON(ErrorResponse{
				StatusCode: status,
				Message:    ae.Message,
				Error:      ae.Kind.String(),
				Errors:     ae.Fields,
			})
		}

		log.ErrorContext(c.UserContext(), "request failed",
			"method", c.Method(),
			"path", c.Path(),
			"requestId", c.Locals("requestid"),
			"error", err,
		)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			StatusCode: fiber.StatusInternalServerError,
			Message:    "Internal server error",
			Error:      utils.StatusMessage(fiber.StatusInternalServerError),
		})
	}
}
