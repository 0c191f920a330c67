package matching

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrProjectNotFound signals that the referenced project does not exist in the
// project store. It is the only error the engine distinguishes; every degraded
// matching outcome (empty pool, partial coverage) is a normal return value.
var ErrProjectNotFound = errors.New("project not found")

// ProjectStore supplies project requirements. Owned by the projects service.
type ProjectStore interface {
	GetRequirement(ctx context.Context, projectID uuid.UUID) (*ProjectRequirement, error)
}

// Directory supplies the candidate pool, pre-filtered to available, verified
// freelancers with at least one matching skill.
type Directory interface {
	FindBySkills(ctx context.Context, skills []string, limit int) ([]Candidate, error)
}

// TeamRegistry supplies pre-formed team rosters.
type TeamRegistry interface {
	ListTeams(ctx context.Context) ([]ExistingTeam, error)
}

// Defaults for the public entry points.
const (
	defaultRecommendationTeamSize = 3
	defaultRecommendationLimit    = 3
	defaultFreelancerLimit        = 5
	bestTeamPoolLimit             = 50
	builderPoolFactor             = 5
)

// Recommendation reason thresholds.
const (
	reasonMatchPercent   = 80
	reasonMinRating      = 4.5
	reasonMinCompleted   = 10
	reasonHighSkillMatch = "High skill match for the required skills"
	reasonHighRating     = "Excellent rating from past clients"
)

// Engine ties the pure matching algorithms to the data collaborators. All
// matching state is request-scoped; the engine itself is safe for concurrent
// use.
type Engine struct {
	projects ProjectStore
	pool     Directory
	teams    TeamRegistry
	logger   *zap.Logger
}

func NewEngine(projects ProjectStore, pool Directory, teams TeamRegistry, logger *zap.Logger) *Engine {
	return &Engine{
		projects: projects,
		pool:     pool,
		teams:    teams,
		logger:   logger,
	}
}

// FindBestTeam selects the single best team for a project. A teamSize of 0
// falls back to the size estimator; empty requiredSkills fall back to the
// project's stored requirement list.
func (e *Engine) FindBestTeam(ctx context.Context, projectID uuid.UUID, teamSize int, requiredSkills []string) (*Team, error) {
	req, required, err := e.resolveRequirement(ctx, projectID, requiredSkills)
	if err != nil {
		return nil, err
	}

	if teamSize <= 0 {
		teamSize = EstimateTeamSize(*req)
	}

	candidates, err := e.pool.FindBySkills(ctx, required.Slice(), bestTeamPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool: %w", err)
	}

	ranked := RankCandidates(candidates, required)
	team := BuildTeam(ranked, teamSize, required)

	e.logger.Info("built team",
		zap.String("project_id", projectID.String()),
		zap.Int("team_size", teamSize),
		zap.Int("pool_size", len(candidates)),
		zap.Int("members", len(team.Members)),
		zap.Float64("skill_coverage", team.SkillCoverage),
		zap.Strings("uncovered_skills", team.UncoveredSkills),
	)
	return &team, nil
}

// TeamRecommendations builds up to limit competing team proposals over a
// wider pool (teamSize*5 candidates).
func (e *Engine) TeamRecommendations(ctx context.Context, projectID uuid.UUID, requiredSkills []string, teamSize, limit int) ([]TeamProposal, error) {
	_, required, err := e.resolveRequirement(ctx, projectID, requiredSkills)
	if err != nil {
		return nil, err
	}

	if teamSize <= 0 {
		teamSize = defaultRecommendationTeamSize
	}
	if limit <= 0 {
		limit = defaultRecommendationLimit
	}

	candidates, err := e.pool.FindBySkills(ctx, required.Slice(), teamSize*builderPoolFactor)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool: %w", err)
	}

	proposals := BuildAlternativeTeams(candidates, required, teamSize, limit)

	e.logger.Info("built team recommendations",
		zap.String("project_id", projectID.String()),
		zap.Int("pool_size", len(candidates)),
		zap.Int("proposals", len(proposals)),
	)
	return proposals, nil
}

// FreelancerRecommendations ranks individual candidates for a project and
// attaches human-readable recommendation reasons.
func (e *Engine) FreelancerRecommendations(ctx context.Context, projectID uuid.UUID, requiredSkills []string, limit int) ([]FreelancerRecommendation, error) {
	_, required, err := e.resolveRequirement(ctx, projectID, requiredSkills)
	if err != nil {
		return nil, err
	}

	if limit <= 0 {
		limit = defaultFreelancerLimit
	}

	candidates, err := e.pool.FindBySkills(ctx, required.Slice(), bestTeamPoolLimit)
	if err != nil {
		return nil, fmt.Errorf("fetch candidate pool: %w", err)
	}

	ranked := RankCandidates(candidates, required)
	if len(ranked) > limit {
		ranked = ranked[:limit]
	}

	recs := make([]FreelancerRecommendation, 0, len(ranked))
	for _, sc := range ranked {
		recs = append(recs, FreelancerRecommendation{
			Candidate:             sc.Candidate,
			Score:                 sc.Score,
			MatchingSkills:        sc.MatchingSkills,
			RecommendationReasons: recommendationReasons(sc, required),
		})
	}
	return recs, nil
}

// FindExistingTeams ranks the pre-formed teams from the registry against the
// project's stored requirement and returns the top five.
func (e *Engine) FindExistingTeams(ctx context.Context, projectID uuid.UUID) ([]RankedTeam, error) {
	_, required, err := e.resolveRequirement(ctx, projectID, nil)
	if err != nil {
		return nil, err
	}

	teams, err := e.teams.ListTeams(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetch team rosters: %w", err)
	}

	ranked := RankExistingTeams(teams, required, defaultTeamRankTop)

	e.logger.Info("ranked existing teams",
		zap.String("project_id", projectID.String()),
		zap.Int("teams_considered", len(teams)),
		zap.Int("teams_returned", len(ranked)),
	)
	return ranked, nil
}

// resolveRequirement loads the project and applies the required-skills
// override when the caller supplied one.
func (e *Engine) resolveRequirement(ctx context.Context, projectID uuid.UUID, override []string) (*ProjectRequirement, SkillSet, error) {
	req, err := e.projects.GetRequirement(ctx, projectID)
	if err != nil {
		return nil, SkillSet{}, err
	}

	required := req.RequiredSkills
	if len(override) > 0 {
		if s := NewSkillSet(override...); !s.IsEmpty() {
			required = s
		}
	}
	return req, required, nil
}

// recommendationReasons produces the observable reason strings. Thresholds:
// skill match ≥ 80%, rating ≥ 4.5, completed projects ≥ 10.
func recommendationReasons(sc ScoredCandidate, required SkillSet) []string {
	reasons := []string{}

	if !required.IsEmpty() {
		matchPercent := float64(len(sc.MatchingSkills)) / float64(required.Len()) * 100
		if matchPercent >= reasonMatchPercent {
			reasons = append(reasons, reasonHighSkillMatch)
		}
	}
	if sc.Candidate.Rating >= reasonMinRating {
		reasons = append(reasons, reasonHighRating)
	}
	if sc.Candidate.CompletedProjects >= reasonMinCompleted {
		reasons = append(reasons, fmt.Sprintf("Experienced with %d completed projects", sc.Candidate.CompletedProjects))
	}

	return reasons
}
