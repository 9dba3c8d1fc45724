package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	fiberlogger "github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
	"github.com/streadway/amqp"
	"gorm.io/gorm"

	"storerating/internal/apperrors"
	"storerating/internal/auth"
	"storerating/internal/config"
	"storerating/internal/database"
	"storerating/internal/events"
	"storerating/internal/handlers"
	"storerating/internal/logger"
	"storerating/internal/metrics"
	"storerating/internal/middleware"
	"storerating/internal/repositories"
	"storerating/internal/services"
	"storerating/internal/validation"
	"storerating/pkg/rabbitmq"
)

// container holds the wired services shared by the HTTP app and the audit consumer.
type container struct {
	tokens     *auth.TokenManager
	auth       *services.AuthService
	users      *services.UserService
	stores     *services.StoreService
	ratings    *services.RatingService
	dashboards *services.DashboardService
	audit      *services.AuditService
}

func newContainer(cfg config.Config, db *gorm.DB, emitter *events.Emitter, log *slog.Logger) *container {
	userRepo := repositories.NewGORMUserRepository(db)
	storeRepo := repositories.NewGORMStoreRepository(db)
	ratingRepo := repositories.NewGORMRatingRepository(db)
	auditRepo := repositories.NewGORMAuditLogRepository(db)

	hasher := auth.NewPasswordHasher(cfg.BcryptCost)
	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTRefreshSecret, cfg.JWTExpiresIn, cfg.JWTRefreshIn)

	return &container{
		tokens:     tokens,
		auth:       services.NewAuthService(userRepo, hasher, tokens, emitter, log),
		users:      services.NewUserService(userRepo, hasher, emitter, log),
		stores:     services.NewStoreService(storeRepo, userRepo, ratingRepo, emitter, log),
		ratings:    services.NewRatingService(ratingRepo, storeRepo, emitter, log),
		dashboards: services.NewDashboardService(userRepo, storeRepo, ratingRepo, nil),
		audit:      services.NewAuditService(auditRepo, log),
	}
}

// newApp builds the Fiber app with middleware, API routes, /health and /metrics.
func newApp(cfg config.Config, log *slog.Logger, c *container) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "store-rating",
		ErrorHandler: handlers.ErrorHandler(log),
	})

	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	app.Use(fiberlogger.New(fiberlogger.Config{
		Format: "${time} ${locals:requestid} ${status} - ${latency} ${method} ${path}\n",
	}))
	app.Use(recover.New())
	app.Use(helmet.New())
	corsConfig := cors.Config{
		AllowOrigins: cfg.AllowedOrigins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET,POST,PUT,PATCH,DELETE,OPTIONS",
	}
	if strings.TrimSpace(cfg.AllowedOrigins) != "*" {
		corsConfig.AllowCredentials = true
	}
	app.Use(cors.New(corsConfig))
	app.Use(middleware.Metrics())

	app.Get("/health", func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"status": "healthy",
			"time":   time.Now().UTC().Format(time.RFC3339),
		})
	})
	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))

	api := app.Group(cfg.APIPrefix, limiter.New(limiter.Config{
		Max:        cfg.RateLimitMax,
		Expiration: cfg.RateLimitWindow,
		LimitReached: func(*fiber.Ctx) error {
			return fiber.NewError(fiber.StatusTooManyRequests, "Too many requests")
		},
	}))

	guard := middleware.NewGuard(c.tokens)
	validate := validation.New()
	handlers.NewAuthHandler(c.auth, validate).RegisterRoutes(api, guard)
	handlers.NewUserHandler(c.users, c.ratings, validate).RegisterRoutes(api, guard)
	handlers.NewStoreHandler(c.stores, c.ratings, validate).RegisterRoutes(api, guard)
	handlers.NewRatingHandler(c.ratings, validate).RegisterRoutes(api, guard)
	handlers.NewDashboardHandler(c.dashboards).RegisterRoutes(api, guard)

	return app
}

// auditHandler stores consumed events. Malformed bodies are reported so the
// consumer drops them.
func auditHandler(audit *services.AuditService, log *slog.Logger) func(amqp.Delivery) error {
	return func(msg amqp.Delivery) error {
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := audit.Record(ctx, msg.Body); err != nil {
			if apperrors.Is(err, apperrors.KindValidation) {
				log.Warn("dropping malformed event", "routingKey", msg.RoutingKey, "err", err)
			}
			return err
		}
		return nil
	}
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", "err", err)
		os.Exit(1)
	}
	log := logger.New(cfg.Env)
	slog.SetDefault(log)
	metrics.Register()

	db, err := database.Open(database.Options{
		Driver: cfg.DatabaseDriver,
		DSN:    cfg.DatabaseURL,
		Debug:  !cfg.IsProduction(),
	})
	if err != nil {
		log.Error("failed to connect to database", "err", err)
		os.Exit(1)
	}
	defer database.Close(db)
	if err := database.Migrate(db); err != nil {
		log.Error("failed to migrate database", "err", err)
		os.Exit(1)
	}

	// RabbitMQ is optional; without it events are not published or audited.
	var publisher events.Publisher
	var mqClient *rabbitmq.Client
	if cfg.RabbitMQURL != "" {
		mqClient, err = rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			log.Error("failed to initialize RabbitMQ client", "err", err)
			os.Exit(1)
		}
		defer mqClient.Close()
		publisher = mqClient
	} else {
		log.Info("RABBITMQ_URL is empty, domain events are disabled")
	}

	c := newContainer(cfg, db, events.NewEmitter(publisher, log), log)

	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 30*time.Second)
	created, err := c.users.EnsureAdmin(seedCtx, cfg.AdminName, cfg.AdminEmail, cfg.AdminPassword)
	cancelSeed()
	if err != nil {
		log.Error("failed to seed administrator", "err", err)
		os.Exit(1)
	}
	if created {
		log.Info("seeded administrator account", "email", cfg.AdminEmail)
	}

	if mqClient != nil {
		if err := mqClient.ConsumeEvents(auditHandler(c.audit, log)); err != nil {
			log.Error("failed to start audit consumer", "err", err)
		}
	}

	app := newApp(cfg, log, c)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErr := make(chan error, 1)
	go func() {
		log.Info("starting server", "addr", cfg.Port, "prefix", cfg.APIPrefix)
		serverErr <- app.Listen(cfg.Port)
	}()

	select {
	case <-quit:
		log.Info("shutting down server")
	case err := <-serverErr:
		if err != nil {
			log.Error("server failed", "err", err)
		}
	}

	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		log.Error("error during shutdown", "err", err)
	}
	log.Info("server stopped")
}
