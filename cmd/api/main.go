package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/fatih/color"
	"go.uber.org/zap"

	httptransport "github.com/spec-kit/aastha-chatbot/internal/api/http"
	"github.com/spec-kit/aastha-chatbot/internal/api/http/handlers"
	"github.com/spec-kit/aastha-chatbot/internal/config"
	"github.com/spec-kit/aastha-chatbot/internal/events"
	"github.com/spec-kit/aastha-chatbot/internal/observability"
	"github.com/spec-kit/aastha-chatbot/internal/persistence"
	"github.com/spec-kit/aastha-chatbot/internal/repository"
	"github.com/spec-kit/aastha-chatbot/internal/service"
	"github.com/spec-kit/aastha-chatbot/internal/session"
	"github.com/spec-kit/aastha-chatbot/internal/worker"
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
		// the chatbot keeps answering without a database; lookups reply with an apology
		logger.Error("failed to connect postgres", zap.Error(err))
		pg = &persistence.Postgres{}
	}
	defer pg.Close()

	if cfg.Postgres.RunMigrations && pg.Connected() {
		if err := persistence.RunMigrations(ctx, pg.PoolHandle(), logger); err != nil {
			logger.Fatal("failed to run migrations", zap.Error(err))
		}
	}

	var (
		sessions session.Store
		redis    *persistence.Redis
		pinger   handlers.Pinger
	)
	switch cfg.Session.Backend {
	case config.SessionBackendRedis:
		redis = persistence.NewRedis(cfg.Redis, logger)
		defer redis.Close()
		sessions = session.NewRedisStore(redis.Client, cfg.Session.KeyPrefix, cfg.Session.TTL)
		pinger = redis
	default:
		sessions = session.NewMemoryStore(cfg.Session.TTL, cfg.Session.CleanupInterval)
	}
	history := session.NewHistory(cfg.History.MaxTurns, cfg.Session.TTL, cfg.Session.CleanupInterval)

	metrics := observability.NewMetrics()
	dispatcher := events.NewInMemoryDispatcher(logger)
	worker.StartAuditWorker(service.NewAuditService(dispatcher, history, logger))

	ticketRepo := repository.NewTicketRepository(pg.PoolHandle())
	ratingRepo := repository.NewRatingRepository(cfg.Ratings.Dir, logger)

	conversation := service.NewConversationService(service.ConversationDependencies{
		Sessions:       sessions,
		History:        history,
		Tickets:        ticketRepo,
		LookupTimeout:  cfg.Postgres.LookupTimeout,
		Dispatcher:     dispatcher,
		Metrics:        metrics,
		Logger:         logger,
		MaxInputLength: cfg.App.MaxInputLength,
	})
	ticketService := service.NewTicketService(service.TicketDependencies{
		TicketRepo:    ticketRepo,
		Database:      pg,
		Dispatcher:    dispatcher,
		Logger:        logger,
		LookupTimeout: cfg.Postgres.LookupTimeout,
	})
	ratingService := service.NewRatingService(ratingRepo, dispatcher, logger)

	app := httptransport.NewApp(cfg.App.Name)
	httptransport.RegisterMiddlewares(app, logger, metrics, cfg.App.RequestTimeout(), cfg.App.CORSOrigins)

	httptransport.RegisterRoutes(app, httptransport.RouteConfig{
		Health: handlers.NewHealthHandler(handlers.HealthDependencies{
			ServiceName:  cfg.App.Name,
			Version:      cfg.App.Version,
			Database:     pg,
			Redis:        pinger,
			Conversation: conversation,
			Ratings:      ratingService,
			Metrics:      metrics,
		}),
		Chat:    handlers.NewChatHandler(conversation),
		Tickets: handlers.NewTicketsHandler(ticketService),
		Ratings: handlers.NewRatingsHandler(ratingService),
	})

	printBanner(cfg, pg.Connected())

	go func() {
		if err := app.Listen(cfg.App.Addr()); err != nil {
			logger.Fatal("fiber listen", zap.Error(err))
		}
	}()

	waitForShutdown(logger)

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		logger.Warn("shutdown", zap.Error(err))
	}
}

func printBanner(cfg *config.Config, dbConnected bool) {
	title := color.New(color.FgCyan, color.Bold)
	ok := color.New(color.FgGreen)
	warn := color.New(color.FgYellow)

	title.Printf("%s %s\n", cfg.App.Name, cfg.App.Version)
	ok.Printf("  listening on  %s\n", cfg.App.Addr())
	ok.Printf("  sessions      %s (ttl %s)\n", cfg.Session.Backend, cfg.Session.TTL)
	if dbConnected {
		ok.Println("  database      connected")
	} else {
		warn.Println("  database      not connected, ticket lookups will apologise")
	}
}

func waitForShutdown(logger *zap.Logger) {
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	sig := <-sigCh
	logger.Info("shutting down", zap.String("signal", sig.String()))
}
