package serverutils

import (
	"errors"

	"ai-notes-be/internal/pkg/apperror"
	"ai-notes-be/internal/pkg/logger"

	"github.com/gofiber/fiber/v2"
)

// NewErrorHandler maps domain error kinds to status codes. Anything unrecognised
// becomes a 500 whose detail only reaches the log.
func NewErrorHandler(log logger.ILogger) fiber.ErrorHandler {
	return func(ctx *fiber.Ctx, err error) error {
		status := StatusFor(err)

		if status == fiber.StatusInternalServerError {
			log.Error("ErrorHandler", "Unhandled request error", map[string]interface{}{
				"error":  err,
				"method": ctx.Method(),
				"path":   ctx.Path(),
			})
			return ctx.Status(status).JSON(ErrorResponse("Internal server error"))
		}

		return ctx.Status(status).JSON(ErrorResponse(err.Error()))
	}
}

func StatusFor(err error) int {
	var fiberErr *fiber.Error
	switch {
	case errors.Is(err, apperror.ErrValidation):
		return fiber.StatusBadRequest
	case errors.Is(err, apperror.ErrUnauthenticated), errors.Is(err, apperror.ErrInvalidCredentials):
		return fiber.StatusUnauthorized
	case errors.Is(err, apperror.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, apperror.ErrEmailTaken):
		return fiber.StatusConflict
	case errors.As(err, &fiberErr):
		return fiberErr.Code
	default:
		return fiber.StatusInternalServerError
	}
}
