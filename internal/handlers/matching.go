package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/cache"
	"github.com/skillforge/api/internal/eventbus"
	"github.com/skillforge/api/internal/matching"
	"github.com/skillforge/api/internal/middleware"
	"github.com/skillforge/api/internal/telemetry"
)

var tracer = otel.Tracer("github.com/skillforge/api/internal/handlers")

// MatchHandler exposes the matching engine over HTTP. The event store and
// cache are optional; matching works without them.
type MatchHandler struct {
	engine *matching.Engine
	cache  *cache.RecommendationCache
	events eventbus.MatchEventStore
	logger *zap.Logger
}

func NewMatchHandler(engine *matching.Engine, recoCache *cache.RecommendationCache, events eventbus.MatchEventStore, logger *zap.Logger) *MatchHandler {
	return &MatchHandler{engine: engine, cache: recoCache, events: events, logger: logger}
}

// MatchTeamRequest tunes a single-team match. Both fields are optional:
// team_size 0 lets the engine estimate from budget, duration and skill count,
// and empty required_skills fall back to the project's stored requirement.
type MatchTeamRequest struct {
	TeamSize       int      `json:"team_size"`
	RequiredSkills []string `json:"required_skills"`
}

// RecommendationsRequest tunes multi-team recommendations
type RecommendationsRequest struct {
	TeamSize       int      `json:"team_size"`
	Limit          int      `json:"limit"`
	RequiredSkills []string `json:"required_skills"`
}

// FreelancersRequest tunes individual recommendations
type FreelancersRequest struct {
	Limit          int      `json:"limit"`
	RequiredSkills []string `json:"required_skills"`
}

// FindBestTeam returns the single best team for the project
func (h *MatchHandler) FindBestTeam(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "FindBestTeam")
	defer span.End()

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	var req MatchTeamRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.BadRequest(c, err.Error())
			return
		}
	}

	start := time.Now()
	team, err := h.engine.FindBestTeam(ctx, projectID, req.TeamSize, req.RequiredSkills)
	telemetry.MatchDuration.WithLabelValues("find_best_team").Observe(time.Since(start).Seconds())

	if err != nil {
		h.respondEngineError(c, "find_best_team", err)
		return
	}

	telemetry.MatchRequests.WithLabelValues("find_best_team", "ok").Inc()
	middleware.DirectoryCircuitBreaker.RecordSuccess()
	h.appendEvent(eventbus.SubjectTeamProposed, eventbus.MatchEvent{
		ProjectID:     projectID,
		Operation:     "find_best_team",
		TeamSize:      len(team.Members),
		Proposals:     1,
		SkillCoverage: team.SkillCoverage,
	})

	c.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		"team":       team,
	})
}

// GetTeamRecommendations returns up to limit alternative team proposals.
// Results are cached per (project, team_size, limit) for a short TTL.
func (h *MatchHandler) GetTeamRecommendations(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetTeamRecommendations")
	defer span.End()

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	var req RecommendationsRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.BadRequest(c, err.Error())
			return
		}
	}

	// Skill overrides bypass the cache; the key only encodes the stored
	// requirement variant.
	cacheable := h.cache != nil && len(req.RequiredSkills) == 0
	key := cache.Key(projectID, req.TeamSize, req.Limit)

	if cacheable {
		var cached []matching.TeamProposal
		if h.cache.Get(ctx, key, &cached) {
			telemetry.CacheHits.WithLabelValues("hit").Inc()
			c.JSON(http.StatusOK, gin.H{
				"project_id":      projectID,
				"recommendations": cached,
				"cached":          true,
			})
			return
		}
		telemetry.CacheHits.WithLabelValues("miss").Inc()
	}

	start := time.Now()
	proposals, err := h.engine.TeamRecommendations(ctx, projectID, req.RequiredSkills, req.TeamSize, req.Limit)
	telemetry.MatchDuration.WithLabelValues("team_recommendations").Observe(time.Since(start).Seconds())

	if err != nil {
		h.respondEngineError(c, "team_recommendations", err)
		return
	}

	telemetry.MatchRequests.WithLabelValues("team_recommendations", "ok").Inc()
	telemetry.TeamsProposed.Add(float64(len(proposals)))
	middleware.DirectoryCircuitBreaker.RecordSuccess()

	if cacheable {
		h.cache.Set(ctx, key, proposals)
	}
	h.appendEvent(eventbus.SubjectRecommendationsBuilt, eventbus.MatchEvent{
		ProjectID: projectID,
		Operation: "team_recommendations",
		TeamSize:  req.TeamSize,
		Proposals: len(proposals),
	})

	c.JSON(http.StatusOK, gin.H{
		"project_id":      projectID,
		"recommendations": proposals,
	})
}

// GetFreelancerRecommendations returns ranked individual candidates with
// recommendation reasons
func (h *MatchHandler) GetFreelancerRecommendations(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "GetFreelancerRecommendations")
	defer span.End()

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	var req FreelancersRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			middleware.BadRequest(c, err.Error())
			return
		}
	}

	start := time.Now()
	recs, err := h.engine.FreelancerRecommendations(ctx, projectID, req.RequiredSkills, req.Limit)
	telemetry.MatchDuration.WithLabelValues("freelancer_recommendations").Observe(time.Since(start).Seconds())

	if err != nil {
		h.respondEngineError(c, "freelancer_recommendations", err)
		return
	}

	telemetry.MatchRequests.WithLabelValues("freelancer_recommendations", "ok").Inc()
	middleware.DirectoryCircuitBreaker.RecordSuccess()
	h.appendEvent(eventbus.SubjectFreelancersRecommends, eventbus.MatchEvent{
		ProjectID: projectID,
		Operation: "freelancer_recommendations",
		Proposals: len(recs),
	})

	c.JSON(http.StatusOK, gin.H{
		"project_id":      projectID,
		"recommendations": recs,
	})
}

// FindExistingTeams ranks pre-formed teams against the project requirement
func (h *MatchHandler) FindExistingTeams(c *gin.Context) {
	ctx, span := tracer.Start(c.Request.Context(), "FindExistingTeams")
	defer span.End()

	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	start := time.Now()
	ranked, err := h.engine.FindExistingTeams(ctx, projectID)
	telemetry.MatchDuration.WithLabelValues("find_existing_teams").Observe(time.Since(start).Seconds())

	if err != nil {
		h.respondEngineError(c, "find_existing_teams", err)
		return
	}

	telemetry.MatchRequests.WithLabelValues("find_existing_teams", "ok").Inc()
	middleware.DirectoryCircuitBreaker.RecordSuccess()
	h.appendEvent(eventbus.SubjectExistingTeamsRanked, eventbus.MatchEvent{
		ProjectID: projectID,
		Operation: "find_existing_teams",
		Proposals: len(ranked),
	})

	c.JSON(http.StatusOK, gin.H{
		"project_id": projectID,
		"teams":      ranked,
	})
}

func (h *MatchHandler) respondEngineError(c *gin.Context, operation string, err error) {
	if errors.Is(err, matching.ErrProjectNotFound) {
		telemetry.MatchRequests.WithLabelValues(operation, "not_found").Inc()
		middleware.NotFound(c, "project not found")
		return
	}

	telemetry.MatchRequests.WithLabelValues(operation, "error").Inc()
	middleware.DirectoryCircuitBreaker.RecordFailure()
	h.logger.Error("matching operation failed",
		zap.String("operation", operation),
		zap.Error(err),
	)
	middleware.DirectoryUnavailable(c)
}

// appendEvent writes to the audit log and also publishes a plain NATS
// notification for live subscribers. Both are best effort.
func (h *MatchHandler) appendEvent(subject string, event eventbus.MatchEvent) {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}

	if h.events != nil {
		if err := h.events.Append(subject, event); err != nil {
			h.logger.Warn("failed to append match event", zap.String("subject", subject), zap.Error(err))
		}
		return
	}

	if payload, err := json.Marshal(event); err == nil {
		if err := eventbus.Publish(subject, payload); err != nil {
			h.logger.Debug("match event publish skipped", zap.String("subject", subject), zap.Error(err))
		}
	}
}
