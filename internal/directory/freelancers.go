package directory

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/skillforge/api/internal/database"
	"github.com/skillforge/api/internal/matching"
)

// FreelancerDirectory supplies the candidate pool for matching. The directory
// owns the pre-filtering contract: only available, verified freelancers with
// at least one overlapping skill are returned — the engine never re-filters.
type FreelancerDirectory struct {
	db     *database.Postgres
	logger *zap.Logger
}

func NewFreelancerDirectory(db *database.Postgres, logger *zap.Logger) *FreelancerDirectory {
	return &FreelancerDirectory{db: db, logger: logger}
}

// FindBySkills returns candidates overlapping the given skills, best-rated
// first. An empty skill list returns the top available candidates unfiltered,
// which keeps matching usable for projects without a stored requirement.
func (d *FreelancerDirectory) FindBySkills(ctx context.Context, skills []string, limit int) ([]matching.Candidate, error) {
	if limit <= 0 {
		limit = 50
	}

	query := `
		SELECT id, name, skills, rating, completed_projects, is_available
		FROM freelancers
		WHERE is_available AND is_verified
		  AND ($1::text[] = '{}' OR skills && $1::text[])
		ORDER BY rating DESC, id
		LIMIT $2
	`
	if skills == nil {
		skills = []string{}
	}

	rows, err := d.db.Pool().Query(ctx, query, skills, limit)
	if err != nil {
		return nil, fmt.Errorf("query freelancers by skills: %w", err)
	}
	defer rows.Close()

	var candidates []matching.Candidate
	for rows.Next() {
		var (
			c         matching.Candidate
			rawSkills []string
		)
		if err := rows.Scan(&c.ID, &c.Name, &rawSkills, &c.Rating, &c.CompletedProjects, &c.Available); err != nil {
			return nil, err
		}
		c.Skills = matching.NewSkillSet(rawSkills...)
		candidates = append(candidates, c)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	d.logger.Debug("candidate pool fetched",
		zap.Int("pool_size", len(candidates)),
		zap.Int("limit", limit),
		zap.Strings("skills", skills),
	)
	return candidates, nil
}
