package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/spec-kit/community-service/internal/api/http/handlers"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/config"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health      *handlers.HealthHandler
	Auth        *handlers.AuthHandler
	Communities *handlers.CommunitiesHandler
	Posts       *handlers.PostsHandler
	Votes       *handlers.VotesHandler
	Audit       *handlers.AuditHandler
	Guards      *auth.Middleware
	RateLimit   config.RateLimitConfig
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	authGroup := app.Group("/auth", RateLimitAuth(cfg.RateLimit))
	authGroup.Post("/guests/join", cfg.Auth.JoinGuest)
	authGroup.Post("/members/register", cfg.Auth.RegisterMember)
	authGroup.Post("/members/login", cfg.Auth.LoginMember)
	authGroup.Post("/admins/login", cfg.Auth.LoginAdmin)
	authGroup.Post("/logout", cfg.Auth.Logout)

	// Public reads.
	app.Get("/categories", cfg.Communities.ListCategories)
	app.Get("/categories/:id/communities", cfg.Communities.ListByCategory)
	app.Get("/communities/:name", cfg.Communities.GetByName)
	app.Get("/communities/:id/posts", cfg.Posts.ListByCommunity)
	app.Get("/posts/:id", cfg.Posts.Get)
	app.Get("/posts/:id/comments", cfg.Posts.ListComments)
	app.Get("/votes/score", cfg.Votes.Score)

	// Identity probes, one per role.
	app.Get("/guests/me", cfg.Guards.RequireGuest(), cfg.Auth.Me)
	app.Get("/members/me", cfg.Guards.RequireMember(), cfg.Auth.Me)
	app.Get("/admins/me", cfg.Guards.RequireAdmin(), cfg.Auth.Me)

	// Member writes. The guard is attached per route so unmatched paths
	// still fall through to 404.
	member := cfg.Guards.RequireMember()
	app.Post("/communities", member, cfg.Communities.Create)
	app.Patch("/communities/:id", member, cfg.Communities.Update)
	app.Post("/posts", member, cfg.Posts.Create)
	app.Patch("/posts/:id", member, cfg.Posts.Update)
	app.Delete("/posts/:id", member, cfg.Posts.Delete)
	app.Post("/posts/:id/comments", member, cfg.Posts.CreateComment)
	app.Delete("/comments/:id", member, cfg.Posts.DeleteComment)
	app.Put("/votes", member, cfg.Votes.Cast)

	// Admin operations.
	admin := app.Group("/admin", cfg.Guards.RequireAdmin())
	admin.Delete("/communities/:id", cfg.Communities.Delete)
	admin.Delete("/posts/:id", cfg.Posts.Delete)
	admin.Delete("/comments/:id", cfg.Posts.DeleteComment)
	admin.Post("/members/:id/suspend", cfg.Auth.SuspendMember)
	admin.Get("/sessions/:id", cfg.Auth.InspectSession)
	admin.Get("/audit-logs", cfg.Audit.ListRecent)
}
