// Package server contains the HTTP handlers for the chat API endpoints.
package server

import (
	"context"
	"errors"
	"fmt"
	"time"

	"thaichat/internal/cache"
	"thaichat/internal/config"
	"thaichat/internal/database"
	"thaichat/internal/middleware"
	"thaichat/internal/models"
	"thaichat/internal/repository"
	"thaichat/internal/seed"
	"thaichat/internal/store"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	store          *store.Store
	db             *gorm.DB
	redis          *redis.Client
	promMiddleware *fiberprometheus.FiberPrometheus
	userRepo       repository.UserRepository
	messageRepo    repository.MessageRepository
	themeRepo      repository.ThemeRepository
}

// NewServer creates a new server instance with all dependencies.
// The storage driver selects the repository backend: the default memory
// driver seeds a fresh in-process store, the sqlite and postgres drivers
// connect and (optionally) load the demo fixtures into an empty database.
func NewServer(cfg *config.Config) (*Server, error) {
	server := &Server{
		config:         cfg,
		promMiddleware: middleware.InitMetrics("thaichat-api"),
	}

	switch cfg.StorageDriver {
	case config.DriverMemory:
		st := store.New()
		server.store = st
		server.userRepo = repository.NewMemoryUserRepository(st)
		server.messageRepo = repository.NewMemoryMessageRepository(st)
		server.themeRepo = repository.NewMemoryThemeRepository(st)
	default:
		db, err := database.Connect(cfg)
		if err != nil {
			return nil, fmt.Errorf("database connection failed: %w", err)
		}
		if err := seed.EnsureThemes(db); err != nil {
			return nil, fmt.Errorf("theme catalog setup failed: %w", err)
		}
		if cfg.SeedDemoData {
			if err := seed.Database(db, false); err != nil {
				return nil, fmt.Errorf("demo seed failed: %w", err)
			}
		}
		server.db = db
		server.userRepo = repository.NewGormUserRepository(db)
		server.messageRepo = repository.NewGormMessageRepository(db)
		server.themeRepo = repository.NewGormThemeRepository(db)
	}

	// Initialize Redis (optional; everything falls through without it)
	cache.InitRedis(cfg.RedisURL)
	server.redis = cache.GetClient()

	return server, nil
}

// Store exposes the in-memory store, nil under the database drivers.
func (s *Server) Store() *store.Store { return s.store }

// NewApp creates the Fiber app with the API's error handler installed.
func (s *Server) NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "ThaiChat API",
		ErrorHandler: ErrorHandler,
	})
}

// ErrorHandler converts errors escaping a handler into the JSON envelope.
// Fiber's own errors (404 route miss, 405 wrong method) pass their status
// through; anything unrecognized becomes a generic 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		return c.Status(fiberErr.Code).JSON(models.ErrorResponse{
			Message: fiberErr.Message,
		})
	}

	var appErr *models.AppError
	if errors.As(err, &appErr) {
		return models.RespondWithError(c, models.StatusCode(appErr), appErr)
	}

	middleware.Logger.ErrorContext(c.UserContext(), "unhandled error", "error", err.Error())
	return c.Status(fiber.StatusInternalServerError).JSON(models.ErrorResponse{
		Message: "Internal server error",
	})
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context middleware to propagate request ID into the user context
	app.Use(middleware.ContextMiddleware())

	// Prometheus metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// OpenTelemetry spans per request
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// Structured logging (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// CORS before middlewares that can short-circuit, so browser clients
	// still receive CORS headers on error responses. Fiber rejects the
	// wildcard origin together with credentials, so "*" goes through
	// AllowOriginsFunc instead.
	corsConfig := cors.Config{
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowMethods:     "GET, POST, PUT, DELETE, OPTIONS",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}
	origins := s.config.AllowedOrigins
	if origins == "" || origins == "*" {
		corsConfig.AllowOriginsFunc = func(string) bool { return true }
	} else {
		corsConfig.AllowOrigins = origins
	}
	app.Use(cors.New(corsConfig))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions || s.config.Env == "test"
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(models.ErrorResponse{
				Message: "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	// Health check
	app.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}

	// OPTIONS on any path answers 200 with no body. Handled as middleware
	// rather than a catch-all route so unmatched paths on other methods
	// still produce 404 instead of 405.
	app.Use(func(c *fiber.Ctx) error {
		if c.Method() == fiber.MethodOptions {
			return c.SendStatus(fiber.StatusOK)
		}
		return c.Next()
	})

	// Auth routes
	auth := app.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 5, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/signin", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "signin"), s.Signin)

	// Message routes
	messages := app.Group("/messages")
	messages.Get("/", s.GetMessages)
	messages.Post("/", s.CreateMessage)
	messages.Put("/:id", s.UpdateMessage)
	messages.Delete("/:id", s.DeleteMessage)

	// User routes; /count must precede the generic /:id routes
	users := app.Group("/users")
	users.Get("/count", s.CountUsers)
	users.Get("/:id/profile", s.GetProfile)
	users.Put("/:id/profile", s.UpdateProfile)

	// Theme routes (POST and PUT are equivalent)
	app.Get("/theme", s.GetTheme)
	app.Post("/theme", s.ChangeTheme)
	app.Put("/theme", s.ChangeTheme)
}

// HealthCheck handles GET / and reports which storage backend is serving
// this process. The instance id tells divergent in-memory instances apart.
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	body := fiber.Map{
		"status":  "ok",
		"service": "thaichat-api",
		"storage": s.config.StorageDriver,
		"time":    time.Now().UTC(),
	}

	if s.store != nil {
		body["instanceId"] = s.store.InstanceID()
		body["lastModified"] = s.store.LastModified()
	}

	if s.db != nil {
		ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
		defer cancel()

		dbStatus := "healthy"
		sqlDB, err := s.db.DB()
		if err != nil {
			dbStatus = "unhealthy"
		} else if err := sqlDB.PingContext(ctx); err != nil {
			dbStatus = "unhealthy"
		}
		body["database"] = dbStatus
		if dbStatus != "healthy" {
			body["status"] = "degraded"
		}
	}

	return c.JSON(body)
}

// Shutdown releases server resources.
func (s *Server) Shutdown(ctx context.Context) error {
	cache.Close()

	if s.db != nil {
		sqlDB, err := s.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
