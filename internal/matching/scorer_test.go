package matching

import (
	"fmt"
	"testing"

	"github.com/google/uuid"
)

// testID builds a stable uuid so tie-breaks are reproducible in tests.
func testID(n int) uuid.UUID {
	return uuid.MustParse(fmt.Sprintf("00000000-0000-0000-0000-%012d", n))
}

func TestScoreAdditiveModel(t *testing.T) {
	required := NewSkillSet("php", "js")

	// A: 2×10 skill + 5×5 rating + 20 capped experience + 15 available = 70
	a := Candidate{
		ID:                testID(1),
		Skills:            NewSkillSet("php", "js"),
		Rating:            5,
		CompletedProjects: 12,
		Available:         true,
	}
	if got := Score(a, required).Score; got != 70 {
		t.Errorf("expected score 70, got %v", got)
	}

	// B: 1×10 skill + 3×5 rating + 1×2 experience + 0 = 27
	b := Candidate{
		ID:                testID(2),
		Skills:            NewSkillSet("js"),
		Rating:            3,
		CompletedProjects: 1,
		Available:         false,
	}
	if got := Score(b, required).Score; got != 27 {
		t.Errorf("expected score 27, got %v", got)
	}
}

func TestScoreExperienceCap(t *testing.T) {
	required := NewSkillSet()

	four := Candidate{ID: testID(1), CompletedProjects: 4}
	if got := Score(four, required).Score; got != 8 {
		t.Errorf("4 completed projects: expected 8, got %v", got)
	}

	fifty := Candidate{ID: testID(2), CompletedProjects: 50}
	if got := Score(fifty, required).Score; got != 20 {
		t.Errorf("50 completed projects: expected capped 20, got %v", got)
	}
}

func TestScoreKeepsNonMatchingCandidates(t *testing.T) {
	required := NewSkillSet("go")
	c := Candidate{ID: testID(1), Skills: NewSkillSet("php"), Rating: 4, Available: true}

	sc := Score(c, required)
	if sc.Score != 35 {
		t.Errorf("expected rating+availability points 35, got %v", sc.Score)
	}
	if len(sc.MatchingSkills) != 0 {
		t.Errorf("expected no matching skills, got %v", sc.MatchingSkills)
	}
}

func TestScoreIsCaseSensitive(t *testing.T) {
	c := Candidate{ID: testID(1), Skills: NewSkillSet("PHP")}
	sc := Score(c, NewSkillSet("php"))

	if len(sc.MatchingSkills) != 0 {
		t.Errorf("PHP must not match php, got %v", sc.MatchingSkills)
	}
}

func TestRankCandidatesOrderAndTieBreak(t *testing.T) {
	required := NewSkillSet("php")
	pool := []Candidate{
		{ID: testID(3), Skills: NewSkillSet("php"), Rating: 4},
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 4}, // ties with 3, lower id
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 5},
	}

	ranked := RankCandidates(pool, required)
	want := []uuid.UUID{testID(2), testID(1), testID(3)}
	for i, sc := range ranked {
		if sc.Candidate.ID != want[i] {
			t.Fatalf("position %d: expected %v, got %v", i, want[i], sc.Candidate.ID)
		}
	}

	// Determinism: a second run over the same pool yields the same order.
	again := RankCandidates(pool, required)
	for i := range ranked {
		if ranked[i].Candidate.ID != again[i].Candidate.ID {
			t.Fatal("ranking is not deterministic across invocations")
		}
	}
}
