package handlers

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/middleware"
	"github.com/skillforge/api/internal/models"
)

// FreelancerHandler manages the candidate directory profiles
type FreelancerHandler struct {
	db     *database.Postgres
	logger *zap.Logger
}

func NewFreelancerHandler(db *database.Postgres, logger *zap.Logger) *FreelancerHandler {
	return &FreelancerHandler{db: db, logger: logger}
}

type CreateFreelancerRequest struct {
	Name              string   `json:"name" binding:"required"`
	Headline          string   `json:"headline"`
	Skills            []string `json:"skills"`
	Rating            float64  `json:"rating" binding:"min=0,max=5"`
	CompletedProjects int      `json:"completed_projects" binding:"min=0"`
	IsAvailable       *bool    `json:"is_available"`
}

// CreateProfile creates the caller's freelancer profile. Verification is a
// separate admin action; new profiles start unverified and are invisible to
// matching until verified.
func (h *FreelancerHandler) CreateProfile(c *gin.Context) {
	var req CreateFreelancerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	userID, exists := middleware.GetUserID(c)
	if !exists {
		middleware.Unauthorized(c, "unauthorized")
		return
	}

	freelancerID := uuid.New()
	now := time.Now()
	if req.Skills == nil {
		req.Skills = []string{}
	}
	available := true
	if req.IsAvailable != nil {
		available = *req.IsAvailable
	}

	query := `
		INSERT INTO freelancers (id, user_id, name, headline, skills, rating, completed_projects, is_available, is_verified, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, FALSE, $9, $10)
	`
	_, err := h.db.Pool().Exec(c.Request.Context(), query,
		freelancerID, userID, req.Name, req.Headline, req.Skills,
		req.Rating, req.CompletedProjects, available, now, now,
	)
	if err != nil {
		h.logger.Error("failed to create freelancer profile", zap.Error(err))
		middleware.InternalError(c, "failed to create freelancer profile")
		return
	}

	c.JSON(http.StatusCreated, gin.H{"id": freelancerID})
}

type UpdateFreelancerRequest struct {
	Name              *string  `json:"name"`
	Headline          *string  `json:"headline"`
	Skills            []string `json:"skills"`
	Rating            *float64 `json:"rating"`
	CompletedProjects *int     `json:"completed_projects"`
	IsAvailable       *bool    `json:"is_available"`
}

// UpdateProfile patches a freelancer profile
func (h *FreelancerHandler) UpdateProfile(c *gin.Context) {
	freelancerID, err := uuid.Parse(c.Param("freelancerId"))
	if err != nil {
		middleware.BadRequest(c, "invalid freelancer ID")
		return
	}

	var req UpdateFreelancerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.BadRequest(c, err.Error())
		return
	}

	query := `
		UPDATE freelancers
		SET name = COALESCE($1, name),
		    headline = COALESCE($2, headline),
		    skills = COALESCE($3, skills),
		    rating = COALESCE($4, rating),
		    completed_projects = COALESCE($5, completed_projects),
		    is_available = COALESCE($6, is_available),
		    updated_at = NOW()
		WHERE id = $7
		RETURNING id
	`

	var updated uuid.UUID
	err = h.db.Pool().QueryRow(c.Request.Context(), query,
		req.Name, req.Headline, req.Skills, req.Rating,
		req.CompletedProjects, req.IsAvailable, freelancerID,
	).Scan(&updated)

	if err != nil {
		middleware.NotFound(c, "freelancer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": freelancerID, "updated": true})
}

// VerifyProfile marks a profile verified, admitting it to the matching pool.
// Admin only; enforced in routing.
func (h *FreelancerHandler) VerifyProfile(c *gin.Context) {
	freelancerID, err := uuid.Parse(c.Param("freelancerId"))
	if err != nil {
		middleware.BadRequest(c, "invalid freelancer ID")
		return
	}

	query := `UPDATE freelancers SET is_verified = TRUE, updated_at = NOW() WHERE id = $1`
	result, err := h.db.Pool().Exec(c.Request.Context(), query, freelancerID)
	if err != nil {
		h.logger.Error("failed to verify freelancer", zap.Error(err))
		middleware.InternalError(c, "failed to verify freelancer")
		return
	}
	if result.RowsAffected() == 0 {
		middleware.NotFound(c, "freelancer not found")
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": freelancerID, "verified": true})
}

// GetProfile returns one freelancer profile
func (h *FreelancerHandler) GetProfile(c *gin.Context) {
	freelancerID, err := uuid.Parse(c.Param("freelancerId"))
	if err != nil {
		middleware.BadRequest(c, "invalid freelancer ID")
		return
	}

	query := `
		SELECT id, user_id, name, headline, skills, rating, completed_projects, is_available, is_verified, created_at, updated_at
		FROM freelancers
		WHERE id = $1
	`

	var f models.Freelancer
	err = h.db.Pool().QueryRow(c.Request.Context(), query, freelancerID).Scan(
		&f.ID, &f.UserID, &f.Name, &f.Headline, &f.Skills, &f.Rating,
		&f.CompletedProjects, &f.IsAvailable, &f.IsVerified, &f.CreatedAt, &f.UpdatedAt,
	)
	if err != nil {
		middleware.NotFound(c, "freelancer not found")
		return
	}

	c.JSON(http.StatusOK, f)
}

// ListProfiles lists freelancers, optionally filtered by skill overlap
func (h *FreelancerHandler) ListProfiles(c *gin.Context) {
	skills := c.QueryArray("skill")
	if skills == nil {
		skills = []string{}
	}

	limit := 50
	if raw := c.Query("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 && n <= 200 {
			limit = n
		}
	}

	query := `
		SELECT id, user_id, name, headline, skills, rating, completed_projects, is_available, is_verified, created_at, updated_at
		FROM freelancers
		WHERE ($1::text[] = '{}' OR skills && $1::text[])
		ORDER BY rating DESC, id
		LIMIT $2
	`

	rows, err := h.db.Pool().Query(c.Request.Context(), query, skills, limit)
	if err != nil {
		h.logger.Error("failed to list freelancers", zap.Error(err))
		middleware.InternalError(c, "failed to list freelancers")
		return
	}
	defer rows.Close()

	var freelancers []models.Freelancer
	for rows.Next() {
		var f models.Freelancer
		if err := rows.Scan(
			&f.ID, &f.UserID, &f.Name, &f.Headline, &f.Skills, &f.Rating,
			&f.CompletedProjects, &f.IsAvailable, &f.IsVerified, &f.CreatedAt, &f.UpdatedAt,
		); err != nil {
			continue
		}
		freelancers = append(freelancers, f)
	}

	c.JSON(http.StatusOK, gin.H{"freelancers": freelancers})
}
