package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/transfer"
	"socialdesk/pkg/apperrors"
)

// GetActor returns the authenticated actor stashed by the auth
// middleware. A zero actor means the request was not authenticated.
func GetActor(c *fiber.Ctx) transfer.Actor {
	actor, ok := c.Locals("actor").(transfer.Actor)
	if !ok {
		return transfer.Actor{}
	}
	return actor
}

func HandleError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	switch apperrors.KindOf(err) {
	case apperrors.Unauthorized:
		status = fiber.StatusUnauthorized
	case apperrors.Forbidden:
		status = fiber.StatusForbidden
	case apperrors.NotFound:
		status = fiber.StatusNotFound
	case apperrors.InvalidArgument:
		status = fiber.StatusBadRequest
	case apperrors.InvalidState, apperrors.Conflict:
		status = fiber.StatusConflict
	}

	return c.Status(status).JSON(fiber.Map{
		"error": err.Error(),
	})
}
