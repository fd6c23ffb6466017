package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/domain"
)

// payloadFromCtx fetches the guard-validated payload for the request.
func payloadFromCtx(c *fiber.Ctx) (*domain.AuthorizedPayload, bool) {
	return auth.PayloadFromContext(c)
}

// pageParams reads limit/offset query values with defaults.
func pageParams(c *fiber.Ctx) (int, int) {
	return c.QueryInt("limit", 20), c.QueryInt("offset", 0)
}
