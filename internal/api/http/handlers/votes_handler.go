package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/domain"
	"github.com/spec-kit/community-service/internal/service"
)

// VotesHandler exposes voting endpoints.
type VotesHandler struct {
	votes *service.VoteService
}

// NewVotesHandler constructs handler.
func NewVotesHandler(voteService *service.VoteService) *VotesHandler {
	return &VotesHandler{votes: voteService}
}

// Cast handles PUT /votes (member only).
func (h *VotesHandler) Cast(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	var req dto.VoteRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.TargetID == "" {
		return fiber.NewError(http.StatusBadRequest, "target_id required")
	}

	targetType := domain.VoteTarget(req.TargetType)
	vote, err := h.votes.Cast(c.UserContext(), *actor, targetType, req.TargetID, domain.VoteValue(req.Value))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"target_type": vote.TargetType,
			"target_id":   vote.TargetID,
			"value":       vote.Value,
		},
	})
}

// Score handles GET /votes/score.
func (h *VotesHandler) Score(c *fiber.Ctx) error {
	targetType := domain.VoteTarget(c.Query("target_type"))
	targetID := c.Query("target_id")
	if targetID == "" {
		return fiber.NewError(http.StatusBadRequest, "target_id required")
	}

	score, err := h.votes.Score(c.UserContext(), targetType, targetID)
	if err != nil {
		return err
	}
	return c.JSON(fiber.Map{"data": fiber.Map{"score": score}})
}
