package directory

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/matching"
)

// ProjectStore reads project requirements for the matching engine
type ProjectStore struct {
	db     *database.Postgres
	logger *zap.Logger
}

func NewProjectStore(db *database.Postgres, logger *zap.Logger) *ProjectStore {
	return &ProjectStore{db: db, logger: logger}
}

// GetRequirement loads the matching requirement of a project. A missing row
// maps to matching.ErrProjectNotFound so callers can answer 404.
func (s *ProjectStore) GetRequirement(ctx context.Context, projectID uuid.UUID) (*matching.ProjectRequirement, error) {
	query := `
		SELECT required_skills, budget, duration_days, desired_team_size
		FROM projects
		WHERE id = $1
	`

	var (
		skills   []string
		budget   float64
		duration int
		teamSize int
	)
	err := s.db.Pool().QueryRow(ctx, query, projectID).Scan(&skills, &budget, &duration, &teamSize)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, matching.ErrProjectNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load project requirement: %w", err)
	}

	return &matching.ProjectRequirement{
		ProjectID:       projectID,
		RequiredSkills:  matching.NewSkillSet(skills...),
		Budget:          budget,
		DurationDays:    duration,
		DesiredTeamSize: teamSize,
	}, nil
}

// ListOpenProjectIDs returns the ids of projects currently accepting matches.
// Used by the batch recommendation worker.
func (s *ProjectStore) ListOpenProjectIDs(ctx context.Context, limit int) ([]uuid.UUID, error) {
	query := `
		SELECT id FROM projects
		WHERE status IN ('open', 'matching')
		ORDER BY created_at DESC
		LIMIT $1
	`

	rows, err := s.db.Pool().Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("list open projects: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, rows.Err()
}
