package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	httptransport "github.com/lippel/helpdesk-gateway/internal/api/http"
	"github.com/lippel/helpdesk-gateway/internal/api/http/handlers"
	"github.com/lippel/helpdesk-gateway/internal/authz"
	"github.com/lippel/helpdesk-gateway/internal/cache"
	"github.com/lippel/helpdesk-gateway/internal/config"
	"github.com/lippel/helpdesk-gateway/internal/events"
	"github.com/lippel/helpdesk-gateway/internal/observability"
	"github.com/lippel/helpdesk-gateway/internal/service"
	"github.com/lippel/helpdesk-gateway/internal/supabase"
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

	metrics := observability.NewMetrics()

	client := supabase.NewClient(cfg.Supabase, logger)

	referenceCache := cache.NewReferenceCache(cfg.Redis, logger)
	defer referenceCache.Close()

	var verifier authz.TokenVerifier
	if cfg.Supabase.JWTSecret != "" {
		verifier = authz.NewJWTVerifier(cfg.Supabase.JWTSecret)
	} else {
		logger.Warn("SUPABASE_JWT_SECRET not set; validating tokens with an identity-provider round trip per request")
		verifier = authz.NewRemoteVerifier(client)
	}

	// The service-tier handle is passed to the policy exactly once; no
	// other component ever holds it.
	policy := authz.NewPolicy(verifier, client, client.Service())
	authMiddleware := authz.NewMiddleware(policy)

	dispatcher := events.NewInMemoryDispatcher()
	events.RegisterAuditLogger(dispatcher, logger)

	ticketService := service.NewTicketService(service.TicketDependencies{
		Store:           client,
		Policy:          policy,
		Dispatcher:      dispatcher,
		DefaultStatusID: cfg.Supabase.DefaultStatusID,
		Logger:          logger,
	})
	authService := service.NewAuthService(client)
	referenceService := service.NewReferenceService(client, referenceCache)

	app := fiber.New()
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health:         handlers.NewHealthHandler(cfg.App.Name, cfg.App.Version, client.Anon(), referenceCache),
		Auth:           handlers.NewAuthHandler(authService),
		Tickets:        handlers.NewTicketsHandler(ticketService),
		Reference:      handlers.NewReferenceHandler(referenceService),
		AuthMiddleware: authMiddleware,
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
