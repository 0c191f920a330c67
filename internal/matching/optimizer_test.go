package matching

import (
	"testing"

	"github.com/google/uuid"
)

func rankedPair() ([]ScoredCandidate, SkillSet) {
	required := NewSkillSet("php", "js")
	pool := []Candidate{
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 5, CompletedProjects: 12, Available: true}, // score 70
		{ID: testID(2), Skills: NewSkillSet("js"), Rating: 3, CompletedProjects: 1},                    // score 27
	}
	return RankCandidates(pool, required), required
}

func memberIDs(team Team) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(team.Members))
	for _, m := range team.Members {
		ids = append(ids, m.Candidate.ID)
	}
	return ids
}

func TestBuildTeamFillsBothSeats(t *testing.T) {
	ranked, required := rankedPair()

	team := BuildTeam(ranked, 2, required)

	if len(team.Members) != 2 {
		t.Fatalf("expected 2 members, got %d", len(team.Members))
	}
	if team.SkillCoverage != 1 {
		t.Errorf("expected full coverage, got %v", team.SkillCoverage)
	}
	if len(team.UncoveredSkills) != 0 {
		t.Errorf("expected no uncovered skills, got %v", team.UncoveredSkills)
	}
}

// With a single seat the greedy pass takes the top scorer, leaving "js"
// uncovered; the repair pass must evict them for the js-covering candidate.
func TestBuildTeamRepairReplacesSingletonTeam(t *testing.T) {
	ranked, required := rankedPair()

	team := BuildTeam(ranked, 1, required)

	if len(team.Members) != 1 {
		t.Fatalf("expected 1 member, got %d", len(team.Members))
	}
	if team.Members[0].Candidate.ID != testID(2) {
		t.Errorf("expected repair pass to swap in candidate 2, got %v", memberIDs(team))
	}
}

func TestBuildTeamSizeBound(t *testing.T) {
	required := NewSkillSet("php", "js", "go", "sql")
	pool := make([]Candidate, 0, 10)
	for i := 1; i <= 10; i++ {
		pool = append(pool, Candidate{ID: testID(i), Skills: NewSkillSet("php"), Rating: float64(i % 5)})
	}
	ranked := RankCandidates(pool, required)

	for size := 1; size <= 5; size++ {
		team := BuildTeam(ranked, size, required)
		if len(team.Members) > size {
			t.Errorf("size %d: team has %d members", size, len(team.Members))
		}
	}
}

func TestBuildTeamEmptyPool(t *testing.T) {
	team := BuildTeam(nil, 3, NewSkillSet("php"))

	if len(team.Members) != 0 {
		t.Fatalf("expected empty team, got %d members", len(team.Members))
	}
	if team.AverageRating != 0 {
		t.Errorf("expected zero average rating, got %v", team.AverageRating)
	}
	if got := team.UncoveredSkills; len(got) != 1 || got[0] != "php" {
		t.Errorf("expected [php] uncovered, got %v", got)
	}
}

// With no required skills, coverage is trivially satisfied: the team stops at
// ceil(teamSize/2) members rather than filling every seat.
func TestBuildTeamEmptyRequiredStopsAtHalf(t *testing.T) {
	pool := make([]Candidate, 0, 8)
	for i := 1; i <= 8; i++ {
		pool = append(pool, Candidate{ID: testID(i), Rating: 4, Available: true})
	}
	ranked := RankCandidates(pool, NewSkillSet())

	team := BuildTeam(ranked, 5, NewSkillSet())
	if len(team.Members) != 3 {
		t.Fatalf("expected ceil(5/2)=3 members, got %d", len(team.Members))
	}

	team = BuildTeam(ranked, 4, NewSkillSet())
	if len(team.Members) != 2 {
		t.Fatalf("expected ceil(4/2)=2 members, got %d", len(team.Members))
	}
}

// When the pool holds a candidate for every required skill and the team is at
// least as large as the requirement list, repair must reach full coverage.
func TestBuildTeamCoverageMonotonicity(t *testing.T) {
	required := NewSkillSet("php", "js", "go")
	pool := []Candidate{
		// Three high scorers all covering only php.
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 5, CompletedProjects: 20, Available: true},
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 5, CompletedProjects: 15, Available: true},
		{ID: testID(3), Skills: NewSkillSet("php"), Rating: 5, CompletedProjects: 12, Available: true},
		// Low scorers holding the missing skills.
		{ID: testID(4), Skills: NewSkillSet("js"), Rating: 1},
		{ID: testID(5), Skills: NewSkillSet("go"), Rating: 1},
	}
	ranked := RankCandidates(pool, required)

	team := BuildTeam(ranked, 3, required)

	if team.SkillCoverage != 1 {
		t.Fatalf("expected 100%% coverage after repair, got %v (uncovered %v)", team.SkillCoverage, team.UncoveredSkills)
	}
	if len(team.Members) != 3 {
		t.Errorf("expected 3 members, got %d", len(team.Members))
	}
}

// A skill nobody in the pool has stays uncovered; that is a reportable
// outcome, not an error.
func TestBuildTeamReportsUncoverableSkill(t *testing.T) {
	required := NewSkillSet("php", "cobol")
	pool := []Candidate{
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 5},
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 4},
	}
	ranked := RankCandidates(pool, required)

	team := BuildTeam(ranked, 2, required)

	if got := team.UncoveredSkills; len(got) != 1 || got[0] != "cobol" {
		t.Errorf("expected [cobol] uncovered, got %v", got)
	}
	if team.SkillCoverage != 0.5 {
		t.Errorf("expected coverage 0.5, got %v", team.SkillCoverage)
	}
}

func TestBuildTeamDeterminism(t *testing.T) {
	required := NewSkillSet("php", "js", "go")
	pool := make([]Candidate, 0, 12)
	for i := 1; i <= 12; i++ {
		skills := []string{"php", "js", "go"}[i%3]
		pool = append(pool, Candidate{ID: testID(i), Skills: NewSkillSet(skills), Rating: float64(i % 5), Available: i%2 == 0})
	}

	first := BuildTeam(RankCandidates(pool, required), 4, required)
	for i := 0; i < 5; i++ {
		again := BuildTeam(RankCandidates(pool, required), 4, required)
		if len(again.Members) != len(first.Members) {
			t.Fatal("member count varies across runs")
		}
		for j := range first.Members {
			if first.Members[j].Candidate.ID != again.Members[j].Candidate.ID {
				t.Fatal("member order varies across runs")
			}
		}
	}
}
