package auth

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/observability"
	apperrors "github.com/spec-kit/community-service/pkg/util"
)

const payloadKey = "auth_payload"

// Middleware adapts the guard to fiber routes, one handler per role.
type Middleware struct {
	guard   *Guard
	metrics *observability.Metrics
}

// NewMiddleware constructs middleware.
func NewMiddleware(guard *Guard, metrics *observability.Metrics) *Middleware {
	return &Middleware{guard: guard, metrics: metrics}
}

// RequireGuest admits callers holding a valid guestUser token.
func (m *Middleware) RequireGuest() fiber.Handler {
	return m.require(domain.RoleGuestUser)
}

// RequireMember admits callers holding a valid memberUser token.
func (m *Middleware) RequireMember() fiber.Handler {
	return m.require(domain.RoleMemberUser)
}

// RequireAdmin admits callers holding a valid adminUser token.
func (m *Middleware) RequireAdmin() fiber.Handler {
	return m.require(domain.RoleAdminUser)
}

func (m *Middleware) require(role domain.ActorRole) fiber.Handler {
	return func(c *fiber.Ctx) error {
		payload, err := m.guard.Authorize(c.UserContext(), c.Get("Authorization"), role)
		if err != nil {
			if de := apperrors.ToDomainError(err); de != nil {
				m.metrics.RecordGuardRejection(string(role), de.Code)
			}
			return err
		}
		c.Locals(payloadKey, payload)
		return c.Next()
	}
}

// PayloadFromContext retrieves the authenticated payload set by a guard.
func PayloadFromContext(c *fiber.Ctx) (*domain.AuthorizedPayload, bool) {
	val := c.Locals(payloadKey)
	if val == nil {
		return nil, false
	}
	payload, ok := val.(*domain.AuthorizedPayload)
	return payload, ok
}
