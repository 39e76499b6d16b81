package controller

import (
	"errors"

	"passkey_ms/domain"

	"github.com/gofiber/fiber/v2"
)

func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrUnauthenticated):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrInvalidState):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrVerificationFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrConflict):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrValidationFailed):
		return fiber.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrStorageUnavailable):
		return fiber.StatusServiceUnavailable
	default:
		return fiber.StatusInternalServerError
	}
}

func respondError(c *fiber.Ctx, err error) error {
	status := statusForError(err)
	message := err.Error()
	// Server-side faults keep their detail in the logs, not the response.
	if errors.Is(err, domain.ErrStorageUnavailable) {
		message = domain.ErrStorageUnavailable.Error()
	} else if status == fiber.StatusInternalServerError {
		message = "internal error"
	}
	return c.Status(status).JSON(fiber.Map{"error": message})
}
