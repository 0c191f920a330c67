package directory

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/matching"
)

// TeamRegistry reads pre-formed team rosters for the existing-team ranker
type TeamRegistry struct {
	db     *database.Postgres
	logger *zap.Logger
}

func NewTeamRegistry(db *database.Postgres, logger *zap.Logger) *TeamRegistry {
	return &TeamRegistry{db: db, logger: logger}
}

// ListTeams returns every registered team with its full member roster.
func (r *TeamRegistry) ListTeams(ctx context.Context) ([]matching.ExistingTeam, error) {
	query := `
		SELECT t.id, t.name, f.id, f.name, f.skills, f.rating, f.completed_projects, f.is_available
		FROM teams t
		LEFT JOIN team_members tm ON tm.team_id = t.id
		LEFT JOIN freelancers f ON f.id = tm.freelancer_id
		ORDER BY t.created_at, t.id
	`

	rows, err := r.db.Pool().Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	defer rows.Close()

	var (
		teams []matching.ExistingTeam
		index = make(map[uuid.UUID]int)
	)
	for rows.Next() {
		var (
			teamID    uuid.UUID
			teamName  string
			memberID  *uuid.UUID
			name      *string
			rawSkills []string
			rating    *float64
			completed *int
			available *bool
		)
		if err := rows.Scan(&teamID, &teamName, &memberID, &name, &rawSkills, &rating, &completed, &available); err != nil {
			return nil, err
		}

		i, ok := index[teamID]
		if !ok {
			i = len(teams)
			index[teamID] = i
			teams = append(teams, matching.ExistingTeam{TeamID: teamID, Name: teamName})
		}

		// LEFT JOIN leaves member columns NULL for empty teams.
		if memberID == nil {
			continue
		}
		teams[i].Members = append(teams[i].Members, matching.Candidate{
			ID:                *memberID,
			Name:              *name,
			Skills:            matching.NewSkillSet(rawSkills...),
			Rating:            *rating,
			CompletedProjects: *completed,
			Available:         *available,
		})
	}
	return teams, rows.Err()
}

// GetTeamMembers returns the roster of one team.
func (r *TeamRegistry) GetTeamMembers(ctx context.Context, teamID uuid.UUID) ([]matching.Candidate, error) {
	query := `
		SELECT f.id, f.name, f.skills, f.rating, f.completed_projects, f.is_available
		FROM team_members tm
		JOIN freelancers f ON f.id = tm.freelancer_id
		WHERE tm.team_id = $1
		ORDER BY tm.added_at
	`

	rows, err := r.db.Pool().Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("get team members: %w", err)
	}
	defer rows.Close()

	var members []matching.Candidate
	for rows.Next() {
		var (
			c         matching.Candidate
			rawSkills []string
		)
		if err := rows.Scan(&c.ID, &c.Name, &rawSkills, &c.Rating, &c.CompletedProjects, &c.Available); err != nil {
			return nil, err
		}
		c.Skills = matching.NewSkillSet(rawSkills...)
		members = append(members, c)
	}
	return members, rows.Err()
}
