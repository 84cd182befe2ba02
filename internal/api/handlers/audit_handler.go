package handlers

import (
	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/service"
)

type AuditHandler struct {
	audit  service.AuditService
	access service.AccessService
}

func NewAuditHandler(audit service.AuditService, access service.AccessService) *AuditHandler {
	return &AuditHandler{audit: audit, access: access}
}

func (h *AuditHandler) ListLogs(c *fiber.Ctx) error {
	actor := GetActor(c)

	if err := h.access.Authorize(c.Context(), actor, service.OpViewAudit, 0); err != nil {
		return HandleError(c, err)
	}

	limit := c.QueryInt("limit", 50)

	logs, err := h.audit.Logs(c.Context(), limit)
	if err != nil {
		return HandleError(c, err)
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"logs": logs,
	})
}
