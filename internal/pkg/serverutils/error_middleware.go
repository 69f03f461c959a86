package serverutils

import (
	"errors"

	"collabnote-be/internal/entity"

	"github.com/gofiber/fiber/v2"
)

// StatusFor maps a handler error to an HTTP status and a client-safe message.
// Unknown errors become a bare 500 so store details never reach the client.
func StatusFor(err error) (int, string) {
	var validationErr *ValidationError
	var fiberErr *fiber.Error

	switch {
	case errors.As(err, &validationErr):
		return fiber.StatusBadRequest, validationErr.Error()
	case errors.As(err, &fiberErr):
		return fiberErr.Code, fiberErr.Message
	case errors.Is(err, entity.ErrAuthRequired):
		return fiber.StatusUnauthorized, "Unauthorized"
	case errors.Is(err, entity.ErrNotFound):
		return fiber.StatusNotFound, err.Error()
	case errors.Is(err, entity.ErrForbidden):
		return fiber.StatusForbidden, err.Error()
	case errors.Is(err, entity.ErrInvalidArgument):
		return fiber.StatusBadRequest, err.Error()
	case errors.Is(err, entity.ErrHierarchyCycle), errors.Is(err, entity.ErrHierarchyTooDeep):
		return fiber.StatusConflict, err.Error()
	case errors.Is(err, entity.ErrAIUnavailable):
		return fiber.StatusInternalServerError, "Failed to enhance text"
	default:
		return fiber.StatusInternalServerError, "Internal Server Error"
	}
}

func ErrorHandlerMiddleware() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		err := ctx.Next()
		if err == nil {
			return nil
		}
		code, message := StatusFor(err)
		return ctx.Status(code).JSON(ErrorResponse(code, message))
	}
}
