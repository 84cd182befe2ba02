package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/service"
	"socialdesk/internal/transfer"
)

type ClientHandler struct {
	s service.ClientService
}

func NewClientHandler(s service.ClientService) *ClientHandler {
	return &ClientHandler{s: s}
}

func (h *ClientHandler) CreateClient(c *fiber.Ctx) error {
	actor := GetActor(c)

	var req transfer.ClientCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	client, err := h.s.Create(c.Context(), actor, &req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"client": client,
	})
}

func (h *ClientHandler) ListClients(c *fiber.Ctx) error {
	actor := GetActor(c)

	clients, err := h.s.List(c.Context(), actor)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"clients": clients,
	})
}

func (h *ClientHandler) GetClient(c *fiber.Ctx) error {
	actor := GetActor(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client id",
		})
	}

	detail, err := h.s.Info(c.Context(), actor, int64(clientID))
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(detail)
}

func (h *ClientHandler) UpdateClient(c *fiber.Ctx) error {
	actor := GetActor(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client id",
		})
	}

	var req transfer.ClientUpdate
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	client, err := h.s.Update(c.Context(), actor, int64(clientID), &req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"client": client,
	})
}

func (h *ClientHandler) DeleteClient(c *fiber.Ctx) error {
	actor := GetActor(c)
	clientID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid client id",
		})
	}

	if err := h.s.Remove(c.Context(), actor, int64(clientID)); err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Client deleted",
	})
}
