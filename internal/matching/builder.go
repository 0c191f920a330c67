package matching

import "sort"

// skillGroup buckets candidates by their primary skill: the first required
// skill (in requirement order) the candidate matches.
type skillGroup struct {
	skill   string
	members []Candidate // rating descending, id ascending
}

// BuildAlternativeTeams produces up to limit competing team proposals from a
// wide candidate pool (callers typically pass around teamSize*5 candidates).
//
// Candidates are partitioned into skill groups keyed by primary skill; each
// proposal first takes the top-rated member of every group in requirement
// order, then fills remaining seats preferring candidates that cover still
// missing skills. A claimed set threaded through the build guarantees no
// candidate appears in two proposals.
func BuildAlternativeTeams(pool []Candidate, required SkillSet, teamSize, limit int) []TeamProposal {
	proposals := []TeamProposal{}
	if teamSize < 1 || limit < 1 || required.IsEmpty() {
		return proposals
	}

	groups, ungrouped := groupByPrimarySkill(pool, required)
	claimed := make(map[string]bool)

	for len(proposals) < limit && remaining(groups, claimed) > 0 {
		team := buildOneTeam(groups, ungrouped, required, teamSize, claimed)
		if len(team) == 0 {
			break
		}
		proposals = append(proposals, newProposal(team, required))
	}

	return proposals
}

func buildOneTeam(groups []skillGroup, ungrouped []Candidate, required SkillSet, teamSize int, claimed map[string]bool) []Candidate {
	var team []Candidate
	teamSkills := NewSkillSet()

	add := func(c Candidate) {
		team = append(team, c)
		teamSkills = teamSkills.Union(c.Skills)
		claimed[c.ID.String()] = true
	}

	// One pass over the required skills: the best unclaimed member of each
	// non-empty group.
	for _, g := range groups {
		if len(team) == teamSize {
			break
		}
		if c, ok := popBest(g.members, claimed); ok {
			add(c)
		}
	}

	// Fill remaining seats, covering missing skills first.
	for len(team) < teamSize {
		missing := required.Difference(teamSkills)

		if c, ok := bestForMissing(groups, claimed, missing); ok {
			add(c)
			continue
		}

		// No candidate covers a missing skill (or nothing is missing):
		// take the highest-rated unclaimed candidate as filler, falling
		// back to the ungrouped leftovers once the groups run dry.
		if c, ok := bestAcross(groups, claimed); ok {
			add(c)
			continue
		}
		if c, ok := popBest(ungrouped, claimed); ok {
			add(c)
			continue
		}
		break
	}

	return team
}

// groupByPrimarySkill partitions the pool. Candidates matching no required
// skill land in the ungrouped spill-over, usable only as filler.
func groupByPrimarySkill(pool []Candidate, required SkillSet) ([]skillGroup, []Candidate) {
	byskill := make(map[string][]Candidate, required.Len())
	var ungrouped []Candidate

	for _, c := range pool {
		primary, ok := primarySkill(c, required)
		if !ok {
			ungrouped = append(ungrouped, c)
			continue
		}
		byskill[primary] = append(byskill[primary], c)
	}

	groups := make([]skillGroup, 0, required.Len())
	for _, skill := range required.Slice() {
		members := byskill[skill]
		sortByRating(members)
		groups = append(groups, skillGroup{skill: skill, members: members})
	}
	sortByRating(ungrouped)
	return groups, ungrouped
}

func primarySkill(c Candidate, required SkillSet) (string, bool) {
	for _, skill := range required.Slice() {
		if c.Skills.Contains(skill) {
			return skill, true
		}
	}
	return "", false
}

// sortByRating orders rating descending with id ascending as tie-break.
func sortByRating(members []Candidate) {
	sort.SliceStable(members, func(i, j int) bool {
		if members[i].Rating != members[j].Rating {
			return members[i].Rating > members[j].Rating
		}
		return members[i].ID.String() < members[j].ID.String()
	})
}

// popBest returns the first unclaimed member of a rating-sorted slice.
func popBest(members []Candidate, claimed map[string]bool) (Candidate, bool) {
	for _, c := range members {
		if !claimed[c.ID.String()] {
			return c, true
		}
	}
	return Candidate{}, false
}

// bestForMissing finds the highest-rated unclaimed candidate, in any group,
// covering at least one missing skill.
func bestForMissing(groups []skillGroup, claimed map[string]bool, missing SkillSet) (Candidate, bool) {
	if missing.IsEmpty() {
		return Candidate{}, false
	}
	best, found := Candidate{}, false
	for _, g := range groups {
		for _, c := range g.members {
			if claimed[c.ID.String()] {
				continue
			}
			if c.Skills.Intersect(missing).IsEmpty() {
				continue
			}
			if !found || betterRated(c, best) {
				best, found = c, true
			}
			break // members are rating-sorted; first unclaimed match is the group's best
		}
	}
	return best, found
}

// bestAcross finds the highest-rated unclaimed candidate over all groups.
func bestAcross(groups []skillGroup, claimed map[string]bool) (Candidate, bool) {
	best, found := Candidate{}, false
	for _, g := range groups {
		if c, ok := popBest(g.members, claimed); ok {
			if !found || betterRated(c, best) {
				best, found = c, true
			}
		}
	}
	return best, found
}

func betterRated(a, b Candidate) bool {
	if a.Rating != b.Rating {
		return a.Rating > b.Rating
	}
	return a.ID.String() < b.ID.String()
}

func remaining(groups []skillGroup, claimed map[string]bool) int {
	n := 0
	for _, g := range groups {
		for _, c := range g.members {
			if !claimed[c.ID.String()] {
				n++
			}
		}
	}
	return n
}

func newProposal(team []Candidate, required SkillSet) TeamProposal {
	combined := NewSkillSet()
	for _, c := range team {
		combined = combined.Union(c.Skills)
	}
	return TeamProposal{
		Members:        team,
		CombinedSkills: combined.Slice(),
		AverageRating:  averageRating(team),
		SkillCoverage:  coverageRatio(combined, required),
	}
}
