package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/service"
)

// CommunitiesHandler exposes community and category endpoints.
type CommunitiesHandler struct {
	communities *service.CommunityService
}

// NewCommunitiesHandler constructs handler.
func NewCommunitiesHandler(communityService *service.CommunityService) *CommunitiesHandler {
	return &CommunitiesHandler{communities: communityService}
}

// ListCategories handles GET /categories.
func (h *CommunitiesHandler) ListCategories(c *fiber.Ctx) error {
	categories, err := h.communities.ListCategories(c.UserContext())
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(categories))
	for _, cat := range categories {
		items = append(items, fiber.Map{
			"id":           cat.ID,
			"name":         cat.Name,
			"display_name": cat.DisplayName,
		})
	}
	return c.JSON(fiber.Map{"data": items})
}

// Create handles POST /communities (member only).
func (h *CommunitiesHandler) Create(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CommunityCreateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Name == "" || req.CategoryID == "" {
		return fiber.NewError(http.StatusBadRequest, "name and category_id required")
	}

	community, err := h.communities.Create(c.UserContext(), *actor, service.CommunityCreateInput{
		Name:        req.Name,
		CategoryID:  req.CategoryID,
		Description: req.Description,
	})
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{"data": communityBody(community)})
}

// GetByName handles GET /communities/:name.
func (h *CommunitiesHandler) GetByName(c *fiber.Ctx) error {
	community, err := h.communities.GetByName(c.UserContext(), c.Params("name"))
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": communityBody(community)})
}

// ListByCategory handles GET /categories/:id/communities.
func (h *CommunitiesHandler) ListByCategory(c *fiber.Ctx) error {
	limit, offset := pageParams(c)
	communities, err := h.communities.ListByCategory(c.UserContext(), c.Params("id"), limit, offset)
	if err != nil {
		return err
	}

	items := make([]fiber.Map, 0, len(communities))
	for i := range communities {
		items = append(items, communityBody(&communities[i]))
	}
	return c.JSON(fiber.Map{"data": items})
}

// Update handles PATCH /communities/:id (creator only).
func (h *CommunitiesHandler) Update(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.CommunityUpdateRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}

	community, err := h.communities.UpdateDescription(c.UserContext(), *actor, c.Params("id"), req.Description)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": communityBody(community)})
}

// Delete handles DELETE /admin/communities/:id (admin only).
func (h *CommunitiesHandler) Delete(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	if err := h.communities.Delete(c.UserContext(), *actor, c.Params("id")); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

func communityBody(community *domain.Community) fiber.Map {
	return fiber.Map{
		"id":          community.ID,
		"name":        community.Name,
		"category_id": community.CategoryID,
		"description": community.Description,
		"creator_id":  community.CreatorID,
		"created_at":  community.CreatedAt,
	}
}
