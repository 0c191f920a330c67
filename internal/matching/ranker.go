package matching

import "sort"

// Existing-team score weights: skill coverage (as a percentage) dominates,
// average member rating contributes up to 30 points.
const (
	coverageWeight     = 0.7
	teamRatingWeight   = 6
	defaultTeamRankTop = 5
)

// RankExistingTeams scores pre-formed teams against the required skills and
// returns the top limit (5 when limit is not positive). A team with no
// members scores purely on the absent skill term, i.e. zero.
func RankExistingTeams(teams []ExistingTeam, required SkillSet, limit int) []RankedTeam {
	if limit <= 0 {
		limit = defaultTeamRankTop
	}

	ranked := make([]RankedTeam, 0, len(teams))
	for _, t := range teams {
		combined := NewSkillSet()
		for _, m := range t.Members {
			combined = combined.Union(m.Skills)
		}

		matchPercent := coverageRatio(combined, required) * 100
		avgRating := averageRating(t.Members)

		ranked = append(ranked, RankedTeam{
			TeamID:            t.TeamID,
			Name:              t.Name,
			Members:           t.Members,
			CombinedSkills:    combined.Slice(),
			SkillMatchPercent: matchPercent,
			AverageRating:     avgRating,
			Score:             matchPercent*coverageWeight + avgRating*teamRatingWeight,
		})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].TeamID.String() < ranked[j].TeamID.String()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	return ranked
}
