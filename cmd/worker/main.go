package main

import (
	"log"

	"go.temporal.io/sdk/worker"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/cache"
	"github.com/skillforge/api/internal/config"
	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/directory"
	"github.com/skillforge/api/internal/matching"
	"github.com/skillforge/api/internal/orchestration"
)

// The worker hosts the batch recommendation rebuild. It shares the matching
// engine with the API server but talks to Temporal instead of HTTP.
func main() {
	zapConfig := zap.NewProductionConfig()
	zapConfig.OutputPaths = []string{"stdout"}
	zapConfig.ErrorOutputPaths = []string{"stderr"}
	logger, err := zapConfig.Build()
	if err != nil {
		log.Fatalf("failed to initialize logger: %v", err)
	}
	defer logger.Sync()

	cfg := config.Load()

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		logger.Fatal("failed to connect to database", zap.Error(err))
	}
	defer db.Close()

	rdb, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		logger.Fatal("failed to connect to redis", zap.Error(err))
	}
	defer rdb.Close()

	temporalClient, err := orchestration.InitTemporalClient(cfg.TemporalHostPort)
	if err != nil {
		logger.Fatal("failed to connect to temporal", zap.Error(err))
	}
	defer orchestration.CloseTemporalClient()

	projectStore := directory.NewProjectStore(db, logger)
	freelancerDir := directory.NewFreelancerDirectory(db, logger)
	teamRegistry := directory.NewTeamRegistry(db, logger)
	engine := matching.NewEngine(projectStore, freelancerDir, teamRegistry, logger)
	recoCache := cache.NewRecommendationCache(rdb, cfg.RecommendationTTL, logger)

	activities := &orchestration.Activities{
		Projects: projectStore,
		Engine:   engine,
		Cache:    recoCache,
		Logger:   logger,
	}

	w := worker.New(temporalClient, orchestration.TaskQueue, worker.Options{})
	w.RegisterWorkflow(orchestration.RebuildRecommendationsWorkflow)
	w.RegisterActivity(activities)

	logger.Info("matching worker starting", zap.String("task_queue", orchestration.TaskQueue))
	if err := w.Run(worker.InterruptCh()); err != nil {
		logger.Fatal("worker stopped", zap.Error(err))
	}
}
