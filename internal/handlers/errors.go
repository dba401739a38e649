package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"pminternship/internship-ai/internal/models"
	"pminternship/internship-ai/internal/services"
)

// ErrorHandler renders every unhandled error as {error, code}.
func ErrorHandler(c *fiber.Ctx, err error) error {
	code := fiber.StatusInternalServerError

	var e *fiber.Error
	if errors.As(err, &e) {
		code = e.Code
	}

	return c.Status(code).JSON(models.ErrorResponse{
		Error: err.Error(),
		Code:  code,
	})
}

// statusFor maps coordinator errors to HTTP status codes.
func statusFor(err error) int {
	var verr *services.ValidationError
	switch {
	case errors.As(err, &verr):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, services.ErrRequestInFlight):
		return fiber.StatusConflict
	case errors.Is(err, services.ErrNotAuthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, services.ErrInternshipNotFound), errors.Is(err, services.ErrSessionNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, services.ErrUnknownTab):
		return fiber.StatusBadRequest
	default:
		return fiber.StatusInternalServerError
	}
}

func toFiberError(err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return e
	}
	return fiber.NewError(statusFor(err), err.Error())
}
