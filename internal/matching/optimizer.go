package matching

import "sort"

// BuildTeam selects a team of at most teamSize members from candidates ranked
// by score descending.
//
// Phase 1 fills greedily, stopping early once every required skill is covered
// and at least half the requested seats (rounded up) are taken. Phase 2 runs
// only when the greedy pass filled all seats without covering every required
// skill: it trades the lowest-scoring members for skill-covering replacements,
// one uncovered skill at a time. A skill with no qualifying candidate in the
// pool is left uncovered and reported on the returned team.
func BuildTeam(ranked []ScoredCandidate, teamSize int, required SkillSet) Team {
	if teamSize < 1 || len(ranked) == 0 {
		return finishTeam(nil, required)
	}

	halfFloor := (teamSize + 1) / 2

	var members []ScoredCandidate
	covered := NewSkillSet()
	for _, sc := range ranked {
		members = append(members, sc)
		covered = covered.Union(sc.matchingSkills())

		if len(members) == teamSize {
			break
		}
		if covered.ContainsAll(required) && len(members) >= halfFloor {
			break
		}
	}

	uncovered := required.Difference(covered)
	if !uncovered.IsEmpty() && len(members) == teamSize {
		members = repairCoverage(members, ranked, uncovered)
	}

	return finishTeam(members, required)
}

// repairCoverage swaps the current lowest-scoring member for the best
// candidate covering each missing skill. Replacements are appended at the
// tail, so a freshly swapped-in member is never the next eviction victim.
func repairCoverage(members, ranked []ScoredCandidate, uncovered SkillSet) []ScoredCandidate {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Score != members[j].Score {
			return members[i].Score < members[j].Score
		}
		return members[i].Candidate.ID.String() < members[j].Candidate.ID.String()
	})

	onTeam := make(map[string]bool, len(members))
	for _, m := range members {
		onTeam[m.Candidate.ID.String()] = true
	}

	for _, skill := range uncovered.Slice() {
		replacement, found := bestForSkill(ranked, skill, onTeam)
		if !found {
			continue
		}

		evicted := members[0]
		members = members[1:]
		delete(onTeam, evicted.Candidate.ID.String())

		members = append(members, replacement)
		onTeam[replacement.Candidate.ID.String()] = true
	}

	return members
}

// bestForSkill returns the highest-scoring candidate covering the skill that
// is not already on the team. The input is already sorted by score descending.
func bestForSkill(ranked []ScoredCandidate, skill string, onTeam map[string]bool) (ScoredCandidate, bool) {
	for _, sc := range ranked {
		if onTeam[sc.Candidate.ID.String()] {
			continue
		}
		if sc.matchingSkills().Contains(skill) {
			return sc, true
		}
	}
	return ScoredCandidate{}, false
}

// finishTeam computes the derived aggregates from the final roster.
func finishTeam(members []ScoredCandidate, required SkillSet) Team {
	if members == nil {
		members = []ScoredCandidate{}
	}

	combined := NewSkillSet()
	candidates := make([]Candidate, 0, len(members))
	for _, m := range members {
		combined = combined.Union(m.Candidate.Skills)
		candidates = append(candidates, m.Candidate)
	}

	return Team{
		Members:         members,
		CombinedSkills:  combined.Slice(),
		AverageRating:   averageRating(candidates),
		SkillCoverage:   coverageRatio(combined, required),
		UncoveredSkills: required.Difference(combined).Slice(),
	}
}

// matchingSkills rebuilds the matching set when a ScoredCandidate was
// constructed outside Score (zero value from JSON or tests).
func (sc ScoredCandidate) matchingSkills() SkillSet {
	if sc.matching.index != nil {
		return sc.matching
	}
	return NewSkillSet(sc.MatchingSkills...)
}
