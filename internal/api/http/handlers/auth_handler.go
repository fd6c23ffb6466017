package handlers

import (
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/dto"
	"github.com/spec-kit/community-service/internal/service"
)

// AuthHandler exposes account and session endpoints.
type AuthHandler struct {
	auth *service.AuthService
}

// NewAuthHandler constructs handler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{auth: authService}
}

// JoinGuest handles POST /auth/guests/join.
func (h *AuthHandler) JoinGuest(c *fiber.Ctx) error {
	guest, issued, err := h.auth.JoinGuest(c.UserContext())
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"guest": fiber.Map{"id": guest.ID},
			"auth":  dto.AuthResponse{Token: issued.Token, SessionID: issued.SessionID, ExpiresAt: issued.ExpiresAt},
		},
	})
}

// RegisterMember handles POST /auth/members/register.
func (h *AuthHandler) RegisterMember(c *fiber.Ctx) error {
	var req dto.MemberRegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" || req.DisplayName == "" {
		return fiber.NewError(http.StatusBadRequest, "email, display_name, password required")
	}

	member, issued, err := h.auth.RegisterMember(c.UserContext(), req.Email, req.DisplayName, req.Password)
	if err != nil {
		return err
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"data": fiber.Map{
			"member": fiber.Map{
				"id":           member.ID,
				"email":        member.Email,
				"display_name": member.DisplayName,
			},
			"auth": dto.AuthResponse{Token: issued.Token, SessionID: issued.SessionID, ExpiresAt: issued.ExpiresAt},
		},
	})
}

// LoginMember handles POST /auth/members/login.
func (h *AuthHandler) LoginMember(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	member, issued, err := h.auth.LoginMember(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"member": fiber.Map{
				"id":           member.ID,
				"email":        member.Email,
				"display_name": member.DisplayName,
			},
			"auth": dto.AuthResponse{Token: issued.Token, SessionID: issued.SessionID, ExpiresAt: issued.ExpiresAt},
		},
	})
}

// LoginAdmin handles POST /auth/admins/login.
func (h *AuthHandler) LoginAdmin(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(http.StatusBadRequest, "invalid payload")
	}
	if req.Email == "" || req.Password == "" {
		return fiber.NewError(http.StatusBadRequest, "email and password required")
	}

	admin, issued, err := h.auth.LoginAdmin(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"admin": fiber.Map{
				"id":           admin.ID,
				"email":        admin.Email,
				"display_name": admin.DisplayName,
			},
			"auth": dto.AuthResponse{Token: issued.Token, SessionID: issued.SessionID, ExpiresAt: issued.ExpiresAt},
		},
	})
}

// Logout handles POST /auth/logout. It revokes the session behind the
// presented bearer token.
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	header := c.Get("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return fiber.NewError(http.StatusUnauthorized, "missing bearer token")
	}

	if err := h.auth.Logout(c.UserContext(), parts[1]); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}

// Me returns the guard-validated principal for the request.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}
	return c.JSON(fiber.Map{"data": actor})
}

// InspectSession handles GET /admin/sessions/:id.
func (h *AuthHandler) InspectSession(c *fiber.Ctx) error {
	status, err := h.auth.InspectSession(c.UserContext(), c.Params("id"))
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"data": fiber.Map{
			"id":         status.Session.ID,
			"actor_role": status.Session.ActorRole,
			"actor_id":   status.Session.ActorID,
			"issued_at":  status.Session.IssuedAt,
			"expires_at": status.Session.ExpiresAt,
			"revoked_at": status.Session.RevokedAt,
			"cache_live": status.CacheLive,
		},
	})
}

// SuspendMember handles POST /admin/members/:id/suspend.
func (h *AuthHandler) SuspendMember(c *fiber.Ctx) error {
	actor, ok := payloadFromCtx(c)
	if !ok {
		return fiber.NewError(http.StatusUnauthorized, "authentication required")
	}

	memberID := c.Params("id")
	if memberID == "" {
		return fiber.NewError(http.StatusBadRequest, "member id required")
	}

	if err := h.auth.SuspendMember(c.UserContext(), *actor, memberID); err != nil {
		return err
	}
	return c.SendStatus(http.StatusNoContent)
}
