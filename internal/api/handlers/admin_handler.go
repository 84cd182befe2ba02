package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/service"
	"socialdesk/internal/transfer"
)

type AdminHandler struct {
	s service.AdminService
}

func NewAdminHandler(s service.AdminService) *AdminHandler {
	return &AdminHandler{s: s}
}

func (h *AdminHandler) CreateEmployee(c *fiber.Ctx) error {
	actor := GetActor(c)

	var req transfer.EmployeeCreation
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	user, err := h.s.CreateEmployee(c.Context(), actor, &req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"user": user,
	})
}

func (h *AdminHandler) ListEmployees(c *fiber.Ctx) error {
	actor := GetActor(c)

	users, err := h.s.ListEmployees(c.Context(), actor)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"users": users,
	})
}

func (h *AdminHandler) AssignAccess(c *fiber.Ctx) error {
	actor := GetActor(c)

	var req transfer.AccessAssignment
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request body",
		})
	}

	grant, err := h.s.AssignAccess(c.Context(), actor, &req)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access": grant,
	})
}

func (h *AdminHandler) ListEmployeeAccess(c *fiber.Ctx) error {
	actor := GetActor(c)
	userID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid user id",
		})
	}

	grants, err := h.s.ListAccess(c.Context(), actor, int64(userID))
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"access": grants,
	})
}
