package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/directory"
	"github.com/skillforge/api/internal/middleware"
)

// TeamHandler manages pre-formed freelancer teams, the rosters the
// existing-team ranker scores against project requirements.
type TeamHandler struct {
	db       *database.Postgres
	registry *directory.TeamRegistry
	logger   *zap.Logger
}

func NewTeamHandler(db *database.Postgres, registry *directory.TeamRegistry, logger *zap.Logger) *TeamHandler {
	return &TeamHandler{db: db, registry: registry, logger: logger}
}

type CreateTeamRequest struct {
	Name    string      `json:"name" binding:"required"`
	LeadID  uuid.UUID   `json:"lead_id" binding:"required"`
	Members []uuid.UUID `json:"members"`
}

// CreateTeam registers a pre-formed team. The lead is always a member.
func (h *TeamHandler) CreateTeam(c *gin.Context) {
	var req CreateTeamRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	teamID := uuid.New()
	now := time.Now()

	query := `
		INSERT INTO teams (id, name, lead_id, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := h.db.Pool().Exec(c.Request.Context(), query, teamID, req.Name, req.LeadID, now)
	if err != nil {
		h.logger.Error("failed to create team", zap.Error(err))
		middleware.InternalError(c, "failed to create team")
		return
	}

	memberQuery := `
		INSERT INTO team_members (team_id, freelancer_id, role, added_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (team_id, freelancer_id) DO NOTHING
	`
	h.db.Pool().Exec(c.Request.Context(), memberQuery, teamID, req.LeadID, "lead", now)
	for _, memberID := range req.Members {
		if memberID == req.LeadID {
			continue
		}
		if _, err := h.db.Pool().Exec(c.Request.Context(), memberQuery, teamID, memberID, "member", now); err != nil {
			h.logger.Warn("failed to add team member",
				zap.String("team_id", teamID.String()),
				zap.String("freelancer_id", memberID.String()),
				zap.Error(err),
			)
		}
	}

	c.JSON(http.StatusCreated, gin.H{
		"id":   teamID,
		"name": req.Name,
	})
}

// ListTeams returns every registered team with its roster
func (h *TeamHandler) ListTeams(c *gin.Context) {
	teams, err := h.registry.ListTeams(c.Request.Context())
	if err != nil {
		h.logger.Error("failed to list teams", zap.Error(err))
		middleware.InternalError(c, "failed to list teams")
		return
	}

	out := make([]gin.H, 0, len(teams))
	for _, t := range teams {
		out = append(out, gin.H{
			"id":      t.TeamID,
			"name":    t.Name,
			"members": t.Members,
		})
	}

	c.JSON(http.StatusOK, gin.H{"teams": out})
}

// GetTeam returns one team's roster
func (h *TeamHandler) GetTeam(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		middleware.BadRequest(c, "invalid team ID")
		return
	}

	var name string
	var leadID uuid.UUID
	err = h.db.Pool().QueryRow(c.Request.Context(),
		"SELECT name, lead_id FROM teams WHERE id = $1", teamID).Scan(&name, &leadID)
	if err != nil {
		middleware.NotFound(c, "team not found")
		return
	}

	members, err := h.registry.GetTeamMembers(c.Request.Context(), teamID)
	if err != nil {
		h.logger.Error("failed to fetch team members", zap.Error(err))
		middleware.InternalError(c, "failed to fetch team members")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":      teamID,
		"name":    name,
		"lead_id": leadID,
		"members": members,
	})
}

type AddTeamMemberRequest struct {
	FreelancerID uuid.UUID `json:"freelancer_id" binding:"required"`
	Role         string    `json:"role"`
}

// AddTeamMember adds a freelancer to a team roster
func (h *TeamHandler) AddTeamMember(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		middleware.BadRequest(c, "invalid team ID")
		return
	}

	var req AddTeamMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}
	if req.Role == "" {
		req.Role = "member"
	}

	query := `
		INSERT INTO team_members (team_id, freelancer_id, role)
		VALUES ($1, $2, $3)
		ON CONFLICT (team_id, freelancer_id) DO UPDATE SET role = $3
	`
	_, err = h.db.Pool().Exec(c.Request.Context(), query, teamID, req.FreelancerID, req.Role)
	if err != nil {
		h.logger.Error("failed to add team member", zap.Error(err))
		middleware.InternalError(c, "failed to add team member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member added"})
}

// RemoveTeamMember removes a freelancer from a team roster
func (h *TeamHandler) RemoveTeamMember(c *gin.Context) {
	teamID, err := uuid.Parse(c.Param("teamId"))
	if err != nil {
		middleware.BadRequest(c, "invalid team ID")
		return
	}

	freelancerID, err := uuid.Parse(c.Param("freelancerId"))
	if err != nil {
		middleware.BadRequest(c, "invalid freelancer ID")
		return
	}

	var leadID uuid.UUID
	if err := h.db.Pool().QueryRow(c.Request.Context(),
		"SELECT lead_id FROM teams WHERE id = $1", teamID).Scan(&leadID); err != nil {
		middleware.NotFound(c, "team not found")
		return
	}
	if leadID == freelancerID {
		middleware.BadRequest(c, "cannot remove the team lead")
		return
	}

	query := `DELETE FROM team_members WHERE team_id = $1 AND freelancer_id = $2`
	_, err = h.db.Pool().Exec(c.Request.Context(), query, teamID, freelancerID)
	if err != nil {
		h.logger.Error("failed to remove team member", zap.Error(err))
		middleware.InternalError(c, "failed to remove team member")
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "member removed"})
}
