package orchestration

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/cache"
	"github.com/skillforge/api/internal/directory"
	"github.com/skillforge/api/internal/matching"
)

// TaskQueue is the Temporal task queue for matching workflows.
const TaskQueue = "matching"

// Batch limits for the nightly rebuild.
const (
	rebuildProjectLimit = 200
	rebuildTeamSize     = 3
	rebuildLimit        = 3
)

// RebuildRecommendationsInput bounds one rebuild run.
type RebuildRecommendationsInput struct {
	MaxProjects int `json:"max_projects"`
}

// RebuildRecommendationsResult summarizes one rebuild run.
type RebuildRecommendationsResult struct {
	ProjectsProcessed int `json:"projects_processed"`
	ProjectsFailed    int `json:"projects_failed"`
}

// Activities holds the dependencies the rebuild activities need. Registered
// once per worker process.
type Activities struct {
	Projects *directory.ProjectStore
	Engine   *matching.Engine
	Cache    *cache.RecommendationCache
	Logger   *zap.Logger
}

// ListOpenProjects returns the projects whose recommendations should be
// rebuilt.
func (a *Activities) ListOpenProjects(ctx context.Context, limit int) ([]uuid.UUID, error) {
	return a.Projects.ListOpenProjectIDs(ctx, limit)
}

// RebuildProjectRecommendations recomputes and caches the default
// recommendation set for one project. A project deleted since listing is not
// an error.
func (a *Activities) RebuildProjectRecommendations(ctx context.Context, projectID uuid.UUID) error {
	proposals, err := a.Engine.TeamRecommendations(ctx, projectID, nil, rebuildTeamSize, rebuildLimit)
	if err != nil {
		if err == matching.ErrProjectNotFound {
			a.Logger.Info("project gone, skipping rebuild", zap.String("project_id", projectID.String()))
			return nil
		}
		return err
	}

	key := cache.Key(projectID, rebuildTeamSize, rebuildLimit)
	a.Cache.Set(ctx, key, proposals)

	a.Logger.Debug("rebuilt recommendations",
		zap.String("project_id", projectID.String()),
		zap.Int("proposals", len(proposals)),
	)
	return nil
}

// RebuildRecommendationsWorkflow warms the recommendation cache for every open
// project. Projects fail independently; one bad project never aborts the run.
func RebuildRecommendationsWorkflow(ctx workflow.Context, input RebuildRecommendationsInput) (RebuildRecommendationsResult, error) {
	limit := input.MaxProjects
	if limit <= 0 {
		limit = rebuildProjectLimit
	}

	ao := workflow.ActivityOptions{
		StartToCloseTimeout: 2 * time.Minute,
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval: time.Second,
			MaximumAttempts: 3,
		},
	}
	ctx = workflow.WithActivityOptions(ctx, ao)

	var a *Activities

	var projectIDs []uuid.UUID
	if err := workflow.ExecuteActivity(ctx, a.ListOpenProjects, limit).Get(ctx, &projectIDs); err != nil {
		return RebuildRecommendationsResult{}, err
	}

	result := RebuildRecommendationsResult{}
	for _, projectID := range projectIDs {
		if err := workflow.ExecuteActivity(ctx, a.RebuildProjectRecommendations, projectID).Get(ctx, nil); err != nil {
			workflow.GetLogger(ctx).Warn("rebuild failed for project",
				"project_id", projectID.String(), "error", err)
			result.ProjectsFailed++
			continue
		}
		result.ProjectsProcessed++
	}

	return result, nil
}
