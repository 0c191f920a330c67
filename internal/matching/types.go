package matching

import "github.com/google/uuid"

// Candidate is a freelancer as seen by the matching engine. Candidates are
// supplied by the freelancer directory and never mutated here.
type Candidate struct {
	ID                uuid.UUID `json:"id"`
	Name              string    `json:"name"`
	Skills            SkillSet  `json:"-"`
	Rating            float64   `json:"rating"`
	CompletedProjects int       `json:"completed_projects"`
	Available         bool      `json:"is_available"`
}

// ProjectRequirement describes what a project needs from a team.
type ProjectRequirement struct {
	ProjectID       uuid.UUID
	RequiredSkills  SkillSet
	Budget          float64
	DurationDays    int
	DesiredTeamSize int // 0 means "estimate one"
}

// ScoredCandidate annotates a candidate with its score against a requirement.
type ScoredCandidate struct {
	Candidate      Candidate `json:"candidate"`
	Score          float64   `json:"score"`
	MatchingSkills []string  `json:"matching_skills"`

	matching SkillSet
}

// Team is the output of the individual-team optimizer. Partial skill coverage
// is a normal outcome and is reported through UncoveredSkills, never an error.
type Team struct {
	Members         []ScoredCandidate `json:"members"`
	CombinedSkills  []string          `json:"combined_skills"`
	AverageRating   float64           `json:"average_rating"`
	SkillCoverage   float64           `json:"skill_coverage"`
	UncoveredSkills []string          `json:"uncovered_skills"`
}

// TeamProposal is one alternative team produced by the multi-candidate builder.
type TeamProposal struct {
	Members        []Candidate `json:"members"`
	CombinedSkills []string    `json:"combined_skills"`
	AverageRating  float64     `json:"average_rating"`
	SkillCoverage  float64     `json:"skill_coverage"`
}

// ExistingTeam is a pre-formed team roster supplied by the team registry.
type ExistingTeam struct {
	TeamID  uuid.UUID
	Name    string
	Members []Candidate
}

// RankedTeam is an existing team scored against a project requirement.
type RankedTeam struct {
	TeamID            uuid.UUID   `json:"team_id"`
	Name              string      `json:"name"`
	Members           []Candidate `json:"members"`
	CombinedSkills    []string    `json:"combined_skills"`
	SkillMatchPercent float64     `json:"skill_match_percent"`
	AverageRating     float64     `json:"average_rating"`
	Score             float64     `json:"score"`
}

// FreelancerRecommendation pairs a scored candidate with human-readable
// reasons for recommending them.
type FreelancerRecommendation struct {
	Candidate             Candidate `json:"candidate"`
	Score                 float64   `json:"score"`
	MatchingSkills        []string  `json:"matching_skills"`
	RecommendationReasons []string  `json:"recommendation_reasons"`
}

func averageRating(members []Candidate) float64 {
	if len(members) == 0 {
		return 0
	}
	var sum float64
	for _, m := range members {
		sum += m.Rating
	}
	return sum / float64(len(members))
}

// coverageRatio is |combined ∩ required| / |required|, defined as 0 when the
// requirement is empty.
func coverageRatio(combined, required SkillSet) float64 {
	if required.IsEmpty() {
		return 0
	}
	return float64(combined.Intersect(required).Len()) / float64(required.Len())
}
