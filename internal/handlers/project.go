package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/cache"
	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/middleware"
	"github.com/skillforge/api/internal/models"
)

type ProjectHandler struct {
	db     *database.Postgres
	cache  *cache.RecommendationCache
	logger *zap.Logger
}

func NewProjectHandler(db *database.Postgres, recoCache *cache.RecommendationCache, logger *zap.Logger) *ProjectHandler {
	return &ProjectHandler{db: db, cache: recoCache, logger: logger}
}

type CreateProjectRequest struct {
	Title           string   `json:"title" binding:"required"`
	Description     string   `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	Budget          float64  `json:"budget" binding:"min=0"`
	DurationDays    int      `json:"duration_days" binding:"min=0"`
	DesiredTeamSize int      `json:"desired_team_size" binding:"min=0"`
}

func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	projectID := uuid.New()
	now := time.Now()
	if req.RequiredSkills == nil {
		req.RequiredSkills = []string{}
	}

	query := `
		INSERT INTO projects (id, owner_id, title, description, required_skills, budget, duration_days, desired_team_size, status, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id
	`

	_, err := h.db.Pool().Exec(c.Request.Context(), query,
		projectID, userID, req.Title, req.Description, req.RequiredSkills,
		req.Budget, req.DurationDays, req.DesiredTeamSize, models.ProjectStatusOpen, now, now,
	)

	if err != nil {
		h.logger.Error("failed to create project", zap.Error(err))
		middleware.InternalError(c, "failed to create project")
		return
	}

	// Add owner as admin member
	memberQuery := `
		INSERT INTO project_members (project_id, user_id, role, added_at)
		VALUES ($1, $2, 'admin', $3)
	`
	h.db.Pool().Exec(c.Request.Context(), memberQuery, projectID, userID, now)

	c.JSON(http.StatusCreated, gin.H{
		"id":    projectID,
		"title": req.Title,
	})
}

func (h *ProjectHandler) ListProjects(c *gin.Context) {
	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	// List projects where user is the owner OR a member
	query := `
		SELECT DISTINCT p.id, p.title, p.owner_id, p.status, p.budget, p.created_at
		FROM projects p
		LEFT JOIN project_members pm ON p.id = pm.project_id
		WHERE p.owner_id = $1 OR pm.user_id = $1
		ORDER BY p.created_at DESC
	`

	rows, err := h.db.Pool().Query(c.Request.Context(), query, userID)
	if err != nil {
		h.logger.Error("failed to list projects", zap.Error(err))
		middleware.InternalError(c, "failed to list projects")
		return
	}
	defer rows.Close()

	var projects []gin.H
	for rows.Next() {
		var id uuid.UUID
		var title string
		var ownerID uuid.UUID
		var status models.ProjectStatus
		var budget float64
		var createdAt time.Time
		if err := rows.Scan(&id, &title, &ownerID, &status, &budget, &createdAt); err != nil {
			continue
		}
		projects = append(projects, gin.H{
			"id":         id,
			"title":      title,
			"owner_id":   ownerID,
			"status":     status,
			"budget":     budget,
			"created_at": createdAt,
		})
	}

	c.JSON(http.StatusOK, gin.H{"projects": projects})
}

func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	query := `
		SELECT id, owner_id, title, description, required_skills, budget, duration_days, desired_team_size, status, created_at, updated_at
		FROM projects
		WHERE id = $1
	`

	var project models.Project
	err = h.db.Pool().QueryRow(c.Request.Context(), query, projectID).Scan(
		&project.ID, &project.OwnerID, &project.Title, &project.Description,
		&project.RequiredSkills, &project.Budget, &project.DurationDays,
		&project.DesiredTeamSize, &project.Status, &project.CreatedAt, &project.UpdatedAt,
	)

	if err != nil {
		middleware.NotFound(c, "project not found")
		return
	}

	c.JSON(http.StatusOK, project)
}

type UpdateProjectRequest struct {
	Title           *string  `json:"title"`
	Description     *string  `json:"description"`
	RequiredSkills  []string `json:"required_skills"`
	Budget          *float64 `json:"budget"`
	DurationDays    *int     `json:"duration_days"`
	DesiredTeamSize *int     `json:"desired_team_size"`
}

// UpdateProject patches the project's matching requirement. Any change drops
// the cached recommendations for the project.
func (h *ProjectHandler) UpdateProject(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	var req UpdateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	query := `
		UPDATE projects
		SET title = COALESCE($1, title),
		    description = COALESCE($2, description),
		    required_skills = COALESCE($3, required_skills),
		    budget = COALESCE($4, budget),
		    duration_days = COALESCE($5, duration_days),
		    desired_team_size = COALESCE($6, desired_team_size),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING id
	`

	var updated uuid.UUID
	err = h.db.Pool().QueryRow(c.Request.Context(), query,
		req.Title, req.Description, req.RequiredSkills,
		req.Budget, req.DurationDays, req.DesiredTeamSize, projectID,
	).Scan(&updated)

	if err != nil {
		middleware.NotFound(c, "project not found")
		return
	}

	if h.cache != nil {
		h.cache.Invalidate(c.Request.Context(), projectID)
	}

	c.JSON(http.StatusOK, gin.H{"id": projectID, "updated": true})
}

type UpdateStatusRequest struct {
	Status models.ProjectStatus `json:"status" binding:"required"`
}

func (h *ProjectHandler) UpdateStatus(c *gin.Context) {
	projectID, err := uuid.Parse(c.Param("projectId"))
	if err != nil {
		middleware.BadRequest(c, "invalid project ID")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	if _, ok := models.ValidProjectStatuses[req.Status]; !ok {
		middleware.BadRequest(c, "invalid project status")
		return
	}

	query := `UPDATE projects SET status = $1, updated_at = NOW() WHERE id = $2`
	result, err := h.db.Pool().Exec(c.Request.Context(), query, req.Status, projectID)
	if err != nil {
		h.logger.Error("failed to update project status", zap.Error(err))
		middleware.InternalError(c, "failed to update project status")
		return
	}
	if result.RowsAffected() == 0 {
		middleware.NotFound(c, "project not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": projectID, "status": req.Status})
}
