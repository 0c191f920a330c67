package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/cache"
	"github.com/skillforge/api/internal/config"
	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/directory"
	"github.com/skillforge/api/internal/eventbus"
	"github.com/skillforge/api/internal/handlers"
	"github.com/skillforge/api/internal/matching"
	"github.com/skillforge/api/internal/middleware"
	"github.com/skillforge/api/internal/orchestration"
	"github.com/skillforge/api/internal/telemetry"

	_ "github.com/skillforge/api/docs" // Swagger docs
)

// @title SkillForge Matching API
// @version 0.1.0
// @description Team-formation matching API for the SkillForge freelance marketplace.
// @host localhost:8080
// @BasePath /api/v1
// @schemes http
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	// Initialize context
	ctx := context.Background()

	// Initialize logger with stdout sync
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	logger.Info("SkillForge matching API starting...",
		zap.String("version", "0.1.0"),
		zap.String("environment", os.Getenv("GO_ENV")),
	)

	logger.Info("Loading configuration...")
	cfg := config.Load()

	logger.Info("Initializing telemetry...")
	shutdownTelemetry, err := telemetry.InitTracer(ctx, "skillforge-api")
	if err != nil {
		// Log but don't fail, as collector might be down
		logger.Error("failed to initialize telemetry", zap.Error(err))
	} else {
		defer func() {
			if err := shutdownTelemetry(ctx); err != nil {
				logger.Error("failed to shutdown telemetry", zap.Error(err))
			}
		}()
	}

	logger.Info("Initializing NATS...")
	var eventStore eventbus.MatchEventStore
	_, err = eventbus.InitNATSClient()
	if err != nil {
		logger.Error("failed to connect to NATS", zap.Error(err))
	} else {
		defer eventbus.CloseNATSClient()
		logger.Info("connected to NATS")

		store, err := eventbus.NewJetStreamStore()
		if err != nil {
			logger.Error("failed to init JetStream store", zap.Error(err))
		} else {
			eventStore = store
			logger.Info("JetStream match audit log initialized")
		}
	}

	logger.Info("Initializing Temporal...")
	_, err = orchestration.InitTemporalClient(cfg.TemporalHostPort)
	if err != nil {
		logger.Error("failed to connect to temporal", zap.Error(err))
		// We don't fatal here to allow API to run even if Temporal is down
	} else {
		defer orchestration.CloseTemporalClient()
		logger.Info("connected to temporal")
	}

	// Initialize database
	if err := database.RunMigrations(cfg.DatabaseURL); err != nil {
		logger.Fatal("failed to run migrations", zap.Error(err))
	}

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	// Initialize Redis
	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	// Matching engine and its collaborators
	projectStore := directory.NewProjectStore(db, logger)
	freelancerDir := directory.NewFreelancerDirectory(db, logger)
	teamRegistry := directory.NewTeamRegistry(db, logger)
	engine := matching.NewEngine(projectStore, freelancerDir, teamRegistry, logger)
	recoCache := cache.NewRecommendationCache(rdb, cfg.RecommendationTTL, logger)

	// Setup Gin router
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestID())
	router.Use(middleware.RequestLogger(logger))
	router.Use(middleware.CORS())

	// Swagger documentation
	router.GET("/docs/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Prometheus metrics
	router.GET("/metrics", telemetry.MetricsHandler())

	// Health check handlers
	healthHandler := handlers.NewHealthHandler(db, rdb)
	router.GET("/health", healthHandler.Health)
	router.GET("/health/deep", healthHandler.DeepHealth)

	logger.Info("Router initialized, setting up handlers...")

	// Initialize handlers
	matchHandler := handlers.NewMatchHandler(engine, recoCache, eventStore, logger)
	projectHandler := handlers.NewProjectHandler(db, recoCache, logger)
	memberHandler := handlers.NewMemberHandler(db, logger)
	teamHandler := handlers.NewTeamHandler(db, teamRegistry, logger)
	freelancerHandler := handlers.NewFreelancerHandler(db, logger)
	rbac := middleware.NewRBACMiddleware(db, logger)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Protected routes with default rate limiting
		protected := v1.Group("")
		protected.Use(middleware.Auth(cfg.JWTSecret))
		protected.Use(middleware.RateLimitMiddleware(middleware.DefaultRateLimiter)) // 100 req/min
		{
			// Freelancer directory routes
			freelancer := protected.Group("/freelancer")
			{
				freelancer.POST("", freelancerHandler.CreateProfile)
				freelancer.GET("", freelancerHandler.ListProfiles)
				freelancer.GET("/:freelancerId", freelancerHandler.GetProfile)
				freelancer.PUT("/:freelancerId", freelancerHandler.UpdateProfile)
				freelancer.POST("/:freelancerId/verify", middleware.RequireRole("admin"), freelancerHandler.VerifyProfile)
			}

			// Pre-formed team routes
			team := protected.Group("/team")
			{
				team.POST("", teamHandler.CreateTeam)
				team.GET("", teamHandler.ListTeams)
				team.GET("/:teamId", teamHandler.GetTeam)
				team.POST("/:teamId/members", teamHandler.AddTeamMember)
				team.DELETE("/:teamId/members/:freelancerId", teamHandler.RemoveTeamMember)
			}

			// Project routes
			protected.POST("/project", projectHandler.CreateProject)
			protected.GET("/project", projectHandler.ListProjects)

			project := protected.Group("/project/:projectId")
			{
				project.GET("", rbac.RequirePermission(middleware.PermReadProject), projectHandler.GetProject)
				project.PUT("", rbac.RequirePermission(middleware.PermEditProject), projectHandler.UpdateProject)
				project.PUT("/status", rbac.RequirePermission(middleware.PermEditProject), projectHandler.UpdateStatus)

				// Project collaborators
				project.GET("/members", rbac.RequirePermission(middleware.PermReadProject), memberHandler.ListMembers)
				project.POST("/members/invite", rbac.RequirePermission(middleware.PermManageTeam), memberHandler.AddMember)
				project.DELETE("/members/:userId", rbac.RequirePermission(middleware.PermManageTeam), memberHandler.RemoveMember)

				// Matching routes - stricter rate limit + circuit breaker
				match := project.Group("/match")
				match.Use(rbac.RequirePermission(middleware.PermRequestMatch))
				match.Use(middleware.RateLimitMiddleware(middleware.StrictRateLimiter)) // 20 req/min
				match.Use(middleware.CircuitBreakerMiddleware(middleware.DirectoryCircuitBreaker))
				{
					match.POST("/team", matchHandler.FindBestTeam)
					match.POST("/recommendations", matchHandler.GetTeamRecommendations)
					match.POST("/freelancers", matchHandler.GetFreelancerRecommendations)
					match.GET("/existing-teams", matchHandler.FindExistingTeams)
				}
			}
		}
	}

	// Create HTTP server
	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		logger.Info("starting server", zap.String("port", cfg.Port))
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatal("failed to start server", zap.Error(err))
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Fatal("server forced to shutdown", zap.Error(err))
	}

	logger.Info("server exited gracefully")
}
