package matching

import (
	"math"
	"testing"
)

func existingTeams() []ExistingTeam {
	return []ExistingTeam{
		{
			TeamID: testID(10),
			Name:   "Full stack",
			Members: []Candidate{
				{ID: testID(1), Skills: NewSkillSet("php", "js"), Rating: 4},
				{ID: testID(2), Skills: NewSkillSet("sql"), Rating: 5},
			},
		},
		{
			TeamID: testID(11),
			Name:   "Backend only",
			Members: []Candidate{
				{ID: testID(3), Skills: NewSkillSet("php"), Rating: 3},
			},
		},
		{
			TeamID:  testID(12),
			Name:    "Empty",
			Members: nil,
		},
	}
}

func TestRankExistingTeamsScoreFormula(t *testing.T) {
	required := NewSkillSet("php", "js")

	ranked := RankExistingTeams(existingTeams(), required, 0)

	if len(ranked) != 3 {
		t.Fatalf("expected 3 teams, got %d", len(ranked))
	}

	// Full stack: 100% coverage × 0.7 + 4.5 avg × 6 = 97.
	top := ranked[0]
	if top.TeamID != testID(10) {
		t.Fatalf("expected full-stack team first, got %v", top.TeamID)
	}
	if math.Abs(top.Score-97) > 1e-9 {
		t.Errorf("expected score 97, got %v", top.Score)
	}

	// Backend only: 50% × 0.7 + 3 × 6 = 53.
	if math.Abs(ranked[1].Score-53) > 1e-9 {
		t.Errorf("expected score 53, got %v", ranked[1].Score)
	}

	// Empty team scores zero on both terms.
	if ranked[2].Score != 0 {
		t.Errorf("expected empty team to score 0, got %v", ranked[2].Score)
	}
}

// With no required skills the skill term is defined as 0, so teams rank purely
// by average rating × 6.
func TestRankExistingTeamsEmptyRequired(t *testing.T) {
	ranked := RankExistingTeams(existingTeams(), NewSkillSet(), 0)

	if ranked[0].TeamID != testID(10) || math.Abs(ranked[0].Score-27) > 1e-9 {
		t.Errorf("expected team 10 at 4.5×6=27, got %v at %v", ranked[0].TeamID, ranked[0].Score)
	}
	if ranked[1].TeamID != testID(11) || math.Abs(ranked[1].Score-18) > 1e-9 {
		t.Errorf("expected team 11 at 3×6=18, got %v at %v", ranked[1].TeamID, ranked[1].Score)
	}
	for _, rt := range ranked {
		if rt.SkillMatchPercent != 0 {
			t.Errorf("expected zero skill term, got %v", rt.SkillMatchPercent)
		}
	}
}

func TestRankExistingTeamsTopNTruncation(t *testing.T) {
	teams := make([]ExistingTeam, 0, 8)
	for i := 0; i < 8; i++ {
		teams = append(teams, ExistingTeam{
			TeamID:  testID(20 + i),
			Members: []Candidate{{ID: testID(i), Rating: float64(i)}},
		})
	}

	ranked := RankExistingTeams(teams, NewSkillSet("php"), 0)
	if len(ranked) != 5 {
		t.Fatalf("expected default top 5, got %d", len(ranked))
	}

	ranked = RankExistingTeams(teams, NewSkillSet("php"), 2)
	if len(ranked) != 2 {
		t.Fatalf("expected top 2, got %d", len(ranked))
	}
}
