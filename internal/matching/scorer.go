package matching

import "sort"

// Scoring weights. The skill term dominates once the requirement list grows;
// the experience term is capped so very senior candidates cannot run away with
// every slot.
const (
	pointsPerMatchingSkill = 10
	ratingWeight           = 5
	pointsPerProject       = 2
	experienceCap          = 20
	availabilityBonus      = 15
)

// Score computes the desirability of a single candidate against the required
// skills. Candidates with no overlapping skill still earn rating, experience
// and availability points; filtering to "has at least one matching skill"
// happens upstream in the directory query.
func Score(c Candidate, required SkillSet) ScoredCandidate {
	matching := c.Skills.Intersect(required)

	score := float64(matching.Len() * pointsPerMatchingSkill)
	score += c.Rating * ratingWeight

	experience := c.CompletedProjects * pointsPerProject
	if experience > experienceCap {
		experience = experienceCap
	}
	score += float64(experience)

	if c.Available {
		score += availabilityBonus
	}

	return ScoredCandidate{
		Candidate:      c,
		Score:          score,
		MatchingSkills: matching.Slice(),
		matching:       matching,
	}
}

// RankCandidates scores the whole pool and sorts it by score descending.
// Ties are broken by candidate id ascending so repeated runs over the same
// pool always produce the same order.
func RankCandidates(pool []Candidate, required SkillSet) []ScoredCandidate {
	ranked := make([]ScoredCandidate, 0, len(pool))
	for _, c := range pool {
		ranked = append(ranked, Score(c, required))
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Score != ranked[j].Score {
			return ranked[i].Score > ranked[j].Score
		}
		return ranked[i].Candidate.ID.String() < ranked[j].Candidate.ID.String()
	})
	return ranked
}
