package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/service"
)

// AuditHandler lets administrators read the audit trail.
type AuditHandler struct {
	audit *service.AuditService
}

// NewAuditHandler constructs handler.
func NewAuditHandler(auditService *service.AuditService) *AuditHandler {
	return &AuditHandler{audit: auditService}
}

// ListRecent handles GET /admin/audit-logs (admin only).
func (h *AuditHandler) ListRecent(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	entries, err := h.audit.ListRecent(c.UserContext(), limit, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(entries))
	for _, entry := range entries {
		items = append(items, fiber.Map{
			"id":          entry.ID,
			"action":      entry.Action,
			"actor_role":  entry.ActorRole,
			"actor_id":    entry.ActorID,
			"target_type": entry.TargetType,
			"target_id":   entry.TargetID,
			"detail":      entry.Detail,
			"created_at":  entry.CreatedAt,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}
