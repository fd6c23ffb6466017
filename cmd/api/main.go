package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/community-service/internal/api/http"
	"github.com/spec-kit/community-service/internal/api/http/handlers"
	"github.com/spec-kit/community-service/internal/auth"
	"github.com/spec-kit/community-service/internal/config"
	"github.com/spec-kit/community-service/internal/events"
	"github.com/spec-kit/community-service/internal/observability"
	"github.com/spec-kit/community-service/internal/persistence"
	"github.com/spec-kit/community-service/internal/repository"
	"github.com/spec-kit/community-service/internal/service"
	"github.com/spec-kit/community-service/internal/worker"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	logger, err := observability.NewLogger(cfg.Logger)
	if err != nil {
		log.Fatalf("failed to init logger: %v", err)
	}
	defer logger.Sync() //nolint:errcheck

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
	if err != nil {
		logger.Fatal("failed to connect postgres", zap.Error(err))
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	redis := persistence.NewRedis(cfg.Redis, logger)
	defer redis.Close()

	pool := pg.PoolHandle()
	guestRepo := repository.NewGuestUserRepository(pool)
	memberRepo := repository.NewMemberUserRepository(pool)
	adminRepo := repository.NewAdminUserRepository(pool)
	sessionRepo := repository.NewSessionRepository(pool)
	categoryRepo := repository.NewCategoryRepository(pool)
	communityRepo := repository.NewCommunityRepository(pool)
	postRepo := repository.NewPostRepository(pool)
	commentRepo := repository.NewCommentRepository(pool)
	voteRepo := repository.NewVoteRepository(pool)
	auditRepo := repository.NewAuditRepository(pool)
	sessionCache := repository.NewSessionCache(redis.Client)

	dispatcher := events.NewInMemoryDispatcher()

	authService := service.NewAuthService(*cfg, service.AuthDependencies{
		GuestRepo:    guestRepo,
		MemberRepo:   memberRepo,
		AdminRepo:    adminRepo,
		SessionRepo:  sessionRepo,
		SessionCache: sessionCache,
		Dispatcher:   dispatcher,
	})
	communityService := service.NewCommunityService(service.CommunityDependencies{
		CommunityRepo: communityRepo,
		CategoryRepo:  categoryRepo,
		Dispatcher:    dispatcher,
	})
	postService := service.NewPostService(service.PostDependencies{
		PostRepo:      postRepo,
		CommentRepo:   commentRepo,
		CommunityRepo: communityRepo,
		VoteRepo:      voteRepo,
		Dispatcher:    dispatcher,
	})
	voteService := service.NewVoteService(service.VoteDependencies{
		VoteRepo:    voteRepo,
		PostRepo:    postRepo,
		CommentRepo: commentRepo,
		Dispatcher:  dispatcher,
	})
	auditService := service.NewAuditService(auditRepo, dispatcher, logger)
	worker.StartAuditWorker(auditService)

	metrics := observability.NewMetrics()
	guard := auth.NewGuard(authService.TokenManager(), guestRepo, memberRepo, adminRepo)
	guards := auth.NewMiddleware(guard, metrics)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout())

	healthHandler := handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, pg, redis)
	authHandler := handlers.NewAuthHandler(authService)
	communitiesHandler := handlers.NewCommunitiesHandler(communityService)
	postsHandler := handlers.NewPostsHandler(postService)
	votesHandler := handlers.NewVotesHandler(voteService)
	auditHandler := handlers.NewAuditHandler(auditService)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:      healthHandler,
		Auth:        authHandler,
		Communities: communitiesHandler,
		Posts:       postsHandler,
		Votes:       votesHandler,
		Audit:       auditHandler,
		Guards:      guards,
		RateLimit:   cfg.RateLimit,
	})

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	_ = app.Shutdown()
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
