package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/service"
	"socialdesk/internal/transfer"
)

type AccountHandler struct {
	s service.AccountService
}

func NewAccountHandler(s service.AccountService) *AccountHandler {
	return &AccountHandler{s: s}
}

func (h *AccountHandler) ConnectAccount(c *fiber.Ctx) error {
	actor := GetActor(c)

	var req transfer.AccountCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	account, err := h.s.Create(c.Context(), actor, &req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"account": account,
	})
}

func (h *AccountHandler) ListAccounts(c *fiber.Ctx) error {
	actor := GetActor(c)
	clientID := int64(c.QueryInt("client_id", 0))

	if clientID == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "client_id is required",
		})
	}

	accounts, err := h.s.List(c.Context(), actor, clientID)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"accounts": accounts,
	})
}

func (h *AccountHandler) DisconnectAccount(c *fiber.Ctx) error {
	actor := GetActor(c)
	accountID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid account id",
		})
	}

	if err := h.s.Remove(c.Context(), actor, int64(accountID)); err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"message": "Account disconnected",
	})
}
