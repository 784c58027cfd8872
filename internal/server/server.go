// Package server contains HTTP and WebSocket handlers for the application's API endpoints.
package server

import (
	"context"
	"fmt"
	"log"
	"time"

	_ "tapcard/docs" // swagger docs
	"tapcard/internal/cache"
	"tapcard/internal/config"
	"tapcard/internal/database"
	"tapcard/internal/featureflags"
	"tapcard/internal/middleware"
	"tapcard/internal/models"
	"tapcard/internal/notifications"
	"tapcard/internal/repository"
	"tapcard/internal/service"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/monitor"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/gofiber/swagger"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Server holds all dependencies and provides handlers
type Server struct {
	config         *config.Config
	db             *gorm.DB
	redis          *redis.Client
	app            *fiber.App
	promMiddleware *fiberprometheus.FiberPrometheus
	shutdownCtx    context.Context
	shutdownFn     context.CancelFunc

	userRepo      repository.UserRepository
	circleRepo    repository.CircleRepository
	socialRepo    repository.SocialLinkRepository
	portfolioRepo repository.PortfolioRepository
	workRepo      repository.WorkExperienceRepository
	qrRepo        repository.QRCodeRepository
	analyticsRepo repository.AnalyticsRepository

	notifier     *notifications.Notifier
	hub          *notifications.Hub
	featureFlags *featureflags.Manager

	circleService    *service.CircleService
	userService      *service.UserService
	profileService   *service.ProfileService
	analyticsService *service.AnalyticsService
	qrService        *service.QRService
	dashboardService *service.DashboardService
}

// NewServer creates a new server instance with all dependencies
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize database
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, fmt.Errorf("database connection failed: %w", err)
	}

	// Initialize Redis
	cache.InitRedis(cfg.RedisURL)
	redisClient := cache.GetClient()

	return NewServerWithDeps(cfg, db, redisClient)
}

// NewServerWithDeps creates a Server using already-initialized dependencies.
// Use this in tests or when a bootstrap layer establishes DB/Redis and optionally
// performs explicit seeding.
func NewServerWithDeps(cfg *config.Config, db *gorm.DB, redisClient *redis.Client) (*Server, error) {
	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	circleRepo := repository.NewCircleRepository(db)
	socialRepo := repository.NewSocialLinkRepository(db)
	portfolioRepo := repository.NewPortfolioRepository(db)
	workRepo := repository.NewWorkExperienceRepository(db)
	qrRepo := repository.NewQRCodeRepository(db)
	analyticsRepo := repository.NewAnalyticsRepository(db)

	// Auth middleware shares the config and the revocation list.
	middleware.InitMiddleware(cfg, redisClient)

	// Initialize Prometheus metrics
	prom := middleware.InitMetrics("tapcard-api")

	server := &Server{
		config:         cfg,
		db:             db,
		redis:          redisClient,
		promMiddleware: prom,
		userRepo:       userRepo,
		circleRepo:     circleRepo,
		socialRepo:     socialRepo,
		portfolioRepo:  portfolioRepo,
		workRepo:       workRepo,
		qrRepo:         qrRepo,
		analyticsRepo:  analyticsRepo,
		featureFlags:   featureflags.NewManager(cfg.FeatureFlags),
	}

	server.circleService = service.NewCircleService(circleRepo, userRepo)
	server.userService = service.NewUserService(userRepo, circleRepo)
	server.profileService = service.NewProfileService(socialRepo, portfolioRepo, workRepo, userRepo)
	server.analyticsService = service.NewAnalyticsService(analyticsRepo, userRepo)
	server.qrService = service.NewQRService(qrRepo, userRepo, cfg.ProfileBaseURL)
	server.dashboardService = service.NewDashboardService(userRepo, socialRepo, circleRepo, analyticsRepo)

	// Initialize notifier and hub if Redis is available
	if redisClient != nil {
		server.notifier = notifications.NewNotifier(redisClient)
		server.hub = notifications.NewHub(redisClient)
	}

	return server, nil
}

// SetupMiddleware configures middleware for the Fiber app
func (s *Server) SetupMiddleware(app *fiber.App) {
	// Panic recovery
	app.Use(recover.New())

	// Request ID for tracing
	app.Use(requestid.New())

	// Context Middleware to propagate Request ID and User ID
	app.Use(middleware.ContextMiddleware())

	// Prometheus Metrics
	if s.promMiddleware != nil {
		app.Use(middleware.MetricsMiddleware(s.promMiddleware))
	}

	// Security headers
	app.Use(helmet.New())

	// Structured Logging middleware (after requestid and context middleware)
	app.Use(middleware.StructuredLogger())

	// OpenTelemetry spans per request when tracing is enabled.
	if s.config.TracingEnabled {
		app.Use(middleware.TracingMiddleware())
	}

	// CORS middleware should run before middlewares that can short-circuit (e.g. limiter)
	// so browser clients still receive CORS headers on error responses.
	origins := s.config.AllowedOrigins
	if origins == "" {
		origins = "http://localhost:5173,http://localhost:3000,http://127.0.0.1:5173"
	}

	app.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization, Upgrade, Connection, Sec-WebSocket-Key, Sec-WebSocket-Version",
		AllowCredentials: true,
		MaxAge:           86400, // 24 hours
	}))

	// Global rate limiting (100 requests per minute per IP)
	app.Use(limiter.New(limiter.Config{
		Max:        100,
		Expiration: 1 * time.Minute,
		// Never rate-limit preflight requests; they should be handled by CORS.
		Next: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodOptions
		},
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c *fiber.Ctx) error {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"error": "Too many requests, please try again later.",
			})
		},
	}))
}

// SetupRoutes configures all routes for the application
func (s *Server) SetupRoutes(app *fiber.App) {
	api := app.Group("/api")

	// Health checks
	app.Get("/health/live", s.LivenessCheck)
	app.Get("/health/ready", s.ReadinessCheck)
	// Backwards-compatible legacy route: map /health to readiness (keeps existing scripts working)
	app.Get("/health", s.ReadinessCheck)
	api.Get("/", s.HealthCheck)

	// Metrics endpoint for Prometheus
	if s.promMiddleware != nil {
		s.promMiddleware.RegisterAt(app, "/metrics")
	}
	api.Get("/metrics/dashboard", monitor.New(monitor.Config{
		Title: "Tapcard Backend Metrics Dashboard",
	}))

	// Swagger documentation
	api.Get("/swagger/*", swagger.HandlerDefault)

	// Auth routes
	auth := api.Group("/auth")
	auth.Post("/signup", middleware.RateLimit(
		s.redis, 3, 10*time.Minute, "signup"), s.Signup)
	auth.Post("/login", middleware.RateLimit(
		s.redis, 10, 5*time.Minute, "login"), s.Login)
	auth.Post("/logout", middleware.AuthRequired, s.Logout)

	// Public profile routes
	api.Get("/users/:id", s.GetUserProfile)

	// Protected routes
	protected := api.Group("", middleware.AuthRequired)

	// User search
	protected.Get("/search", middleware.RateLimit(
		s.redis, 10, time.Minute, "search"), s.SearchUsers)

	// Own profile routes
	user := protected.Group("/user")
	user.Get("/profile", s.GetMyProfile)
	user.Put("/profile", s.UpdateMyProfile)
	user.Get("/dashboard", s.GetDashboard)
	user.Get("/qr-code", s.GetQRCode)
	user.Post("/qr-code/regenerate", middleware.RateLimit(
		s.redis, 5, time.Minute, "qr_regenerate"), s.RegenerateQRCode)

	// Social link routes
	socialLinks := protected.Group("/social-links")
	socialLinks.Get("/", s.GetSocialLinks)
	socialLinks.Post("/", s.CreateSocialLink)
	socialLinks.Put("/:id", s.UpdateSocialLink)
	socialLinks.Delete("/:id", s.DeleteSocialLink)

	// Portfolio routes
	portfolio := protected.Group("/portfolio")
	portfolio.Get("/", s.GetPortfolioItems)
	portfolio.Post("/", s.CreatePortfolioItem)
	portfolio.Put("/:id", s.UpdatePortfolioItem)
	portfolio.Delete("/:id", s.DeletePortfolioItem)

	// Work experience routes
	work := protected.Group("/work-experience")
	work.Get("/", s.GetWorkExperiences)
	work.Post("/", s.CreateWorkExperience)
	work.Put("/:id", s.UpdateWorkExperience)
	work.Delete("/:id", s.DeleteWorkExperience)

	// Analytics routes
	analytics := protected.Group("/analytics")
	analytics.Post("/", middleware.RateLimit(
		s.redis, 30, time.Minute, "analytics_event"), s.RecordAnalyticsEvent)
	analytics.Get("/", s.GetAnalyticsEvents)
	analytics.Get("/stats", s.GetAnalyticsStats)

	// Circle routes
	circle := protected.Group("/circle")
	circle.Post("/invite/:userId", middleware.RateLimit(
		s.redis, 5, 5*time.Minute, "circle_invite"), s.InviteToCircle)
	circle.Post("/accept/:userId", s.AcceptCircleInvite)
	circle.Post("/reject/:userId", s.RejectCircleInvite)
	circle.Delete("/remove/:userId", s.RemoveFromCircle)
	circle.Get("/pending", s.GetPendingInvites)
	circle.Get("/status/:userId", s.GetConnectionStatus)
	circle.Get("/connections/:userId", s.GetConnections)

	// Follow compatibility shim for clients still on the pre-circle API.
	protected.Post("/follow/:userId", s.FollowUser)
	protected.Delete("/unfollow/:userId", s.UnfollowUser)

	// Feature flags snapshot for the authenticated user
	protected.Get("/feature-flags", s.GetFeatureFlags)

	// Websocket endpoint - protected by query-token auth
	api.Get("/ws", middleware.WebSocketAuthRequired, s.WebsocketHandler())
}

// HealthCheck is a legacy/simple alias for ReadinessCheck
func (s *Server) HealthCheck(c *fiber.Ctx) error {
	return s.ReadinessCheck(c)
}

// LivenessCheck handles liveness probe requests
func (s *Server) LivenessCheck(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"status": "up",
		"time":   time.Now(),
	})
}

// ReadinessCheck handles readiness probe requests
func (s *Server) ReadinessCheck(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 5*time.Second)
	defer cancel()

	dbStatus := "healthy"
	sqlDB, err := s.db.DB()
	if err != nil {
		dbStatus = "unhealthy"
	} else if err := sqlDB.PingContext(ctx); err != nil {
		dbStatus = "unhealthy"
	}

	redisStatus := "healthy"
	if s.redis != nil {
		if err := s.redis.Ping(ctx).Err(); err != nil {
			redisStatus = "unhealthy"
		}
	} else {
		// Redis is considered required for full readiness in this app
		redisStatus = "unavailable"
	}

	status := fiber.StatusOK
	overallStatus := "healthy"
	if dbStatus == "unhealthy" || redisStatus != "healthy" {
		status = fiber.StatusServiceUnavailable
		overallStatus = "unhealthy"
	}

	return c.Status(status).JSON(fiber.Map{
		"message": "Tapcard API",
		"version": "1.0.0",
		"status":  overallStatus,
		"checks": fiber.Map{
			"database": dbStatus,
			"redis":    redisStatus,
		},
		"time": time.Now(),
	})
}

// Start starts the server
func (s *Server) Start() error {
	ctx, cancel := context.WithCancel(context.Background())
	s.shutdownCtx = ctx
	s.shutdownFn = cancel

	app := fiber.New(fiber.Config{
		AppName: "Tapcard API",
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			// Custom error handler
			log.Printf("Error: %v", err)
			return models.RespondWithError(c, fiber.StatusInternalServerError,
				models.NewInternalError(err))
		},
	})
	s.app = app

	s.SetupMiddleware(app)
	s.SetupRoutes(app)

	// Wire the hub to the Redis subscriber if available
	if s.notifier != nil && s.hub != nil {
		go func() {
			if err := s.hub.StartWiring(s.shutdownCtx, s.notifier); err != nil {
				log.Printf("failed to start %s wiring: %v", s.hub.Name(), err)
			}
		}()
	}

	log.Printf("Server starting on port %s...", s.config.Port)
	return app.Listen(":" + s.config.Port)
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	// Cancel the server-scoped context to stop all wiring goroutines
	if s.shutdownFn != nil {
		s.shutdownFn()
	}

	// Shutdown the HTTP/WS server
	if s.app != nil {
		if err := s.app.ShutdownWithContext(ctx); err != nil {
			log.Printf("error shutting down HTTP server: %v", err)
		}
	}

	// Close WebSocket connections gracefully
	if s.hub != nil {
		if err := s.hub.Shutdown(ctx); err != nil {
			log.Printf("error shutting down %s: %v", s.hub.Name(), err)
		}
	}

	// Close database connection
	if sqlDB, err := s.db.DB(); err == nil {
		if cerr := sqlDB.Close(); cerr != nil {
			log.Printf("error closing sql DB: %v", cerr)
		}
	}

	// Close Redis connection
	if s.redis != nil {
		if rerr := s.redis.Close(); rerr != nil {
			log.Printf("error closing redis: %v", rerr)
		}
	}

	log.Println("Server shutdown complete")
	return nil
}
