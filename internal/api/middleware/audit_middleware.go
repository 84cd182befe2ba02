package middleware

import (
	"encoding/json"
	"strings"

	"github.com/gofiber/fiber/v2"

	"socialdesk/internal/service"
	"socialdesk/internal/transfer"
)

const maxAuditBody = 1 << 20

type AuditMiddleware struct {
	audit service.AuditService
}

func NewAuditMiddleware(audit service.AuditService) *AuditMiddleware {
	return &AuditMiddleware{audit: audit}
}

// RecordMutations journals every successful mutating request. Reads are
// skipped, and a recorder failure never affects the response.
func (m *AuditMiddleware) RecordMutations() fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodGet {
			return c.Next()
		}

		details := captureBody(c)

		err := c.Next()
		if err != nil || c.Response().StatusCode() >= fiber.StatusBadRequest {
			return err
		}

		var userID int64
		if actor, ok := c.Locals("actor").(transfer.Actor); ok {
			userID = actor.UserID
		}

		m.audit.Record(transfer.AuditEntry{
			UserID:    userID,
			Action:    c.Method() + " " + c.Route().Path,
			Resource:  c.Params("id"),
			Details:   details,
			IPAddress: c.IP(),
		})

		return nil
	}
}

// captureBody copies the JSON request body so the handler can still
// consume it. Multipart uploads and oversized bodies are not captured.
func captureBody(c *fiber.Ctx) map[string]any {
	if strings.HasPrefix(c.Get(fiber.HeaderContentType), fiber.MIMEMultipartForm) {
		return nil
	}

	body := c.Body()
	if len(body) == 0 || len(body) > maxAuditBody {
		return nil
	}

	var details map[string]any
	if err := json.Unmarshal(body, &details); err != nil {
		return nil
	}
	return details
}
