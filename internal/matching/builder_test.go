package matching

import (
	"testing"

	"github.com/google/uuid"
)

func builderPool() []Candidate {
	return []Candidate{
		{ID: testID(1), Skills: NewSkillSet("php", "js"), Rating: 4.8},
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 4.5},
		{ID: testID(3), Skills: NewSkillSet("php"), Rating: 3.9},
		{ID: testID(4), Skills: NewSkillSet("js"), Rating: 4.9},
		{ID: testID(5), Skills: NewSkillSet("js"), Rating: 4.2},
		{ID: testID(6), Skills: NewSkillSet("sql"), Rating: 4.7},
		{ID: testID(7), Skills: NewSkillSet("sql"), Rating: 3.1},
		{ID: testID(8), Skills: NewSkillSet("design"), Rating: 5.0}, // matches nothing
	}
}

func TestBuildAlternativeTeamsNoCandidateInTwoTeams(t *testing.T) {
	required := NewSkillSet("php", "js", "sql")

	proposals := BuildAlternativeTeams(builderPool(), required, 3, 3)

	if len(proposals) < 2 {
		t.Fatalf("expected at least 2 proposals, got %d", len(proposals))
	}

	seen := make(map[uuid.UUID]int)
	for i, p := range proposals {
		for _, m := range p.Members {
			if prev, dup := seen[m.ID]; dup {
				t.Fatalf("candidate %v appears in proposals %d and %d", m.ID, prev, i)
			}
			seen[m.ID] = i
		}
	}
}

func TestBuildAlternativeTeamsFirstTeamTakesTopRated(t *testing.T) {
	required := NewSkillSet("php", "js", "sql")

	proposals := BuildAlternativeTeams(builderPool(), required, 3, 1)

	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	// Group leaders in requirement order: php→1 (4.8), js→4 (4.9), sql→6 (4.7).
	want := map[uuid.UUID]bool{testID(1): true, testID(4): true, testID(6): true}
	for _, m := range proposals[0].Members {
		if !want[m.ID] {
			t.Errorf("unexpected member %v", m.ID)
		}
	}
	if proposals[0].SkillCoverage != 1 {
		t.Errorf("expected full coverage, got %v", proposals[0].SkillCoverage)
	}
}

func TestBuildAlternativeTeamsRespectsLimit(t *testing.T) {
	required := NewSkillSet("php", "js")

	proposals := BuildAlternativeTeams(builderPool(), required, 2, 2)
	if len(proposals) > 2 {
		t.Errorf("expected at most 2 proposals, got %d", len(proposals))
	}
}

func TestBuildAlternativeTeamsStopsWhenPoolExhausted(t *testing.T) {
	required := NewSkillSet("php")
	pool := []Candidate{
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 4},
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 3},
	}

	proposals := BuildAlternativeTeams(pool, required, 1, 10)

	if len(proposals) != 2 {
		t.Fatalf("expected 2 proposals from 2 grouped candidates, got %d", len(proposals))
	}
	if proposals[0].Members[0].ID != testID(1) {
		t.Errorf("expected highest-rated first, got %v", proposals[0].Members[0].ID)
	}
}

func TestBuildAlternativeTeamsFillsMissingSkillsFirst(t *testing.T) {
	required := NewSkillSet("php", "js")
	pool := []Candidate{
		{ID: testID(1), Skills: NewSkillSet("php"), Rating: 5.0},
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 4.9},
		{ID: testID(3), Skills: NewSkillSet("php", "js"), Rating: 1.0}, // only js cover, grouped under php
	}

	proposals := BuildAlternativeTeams(pool, required, 2, 1)

	if len(proposals) != 1 {
		t.Fatalf("expected 1 proposal, got %d", len(proposals))
	}
	ids := make(map[uuid.UUID]bool)
	for _, m := range proposals[0].Members {
		ids[m.ID] = true
	}
	if !ids[testID(3)] {
		t.Errorf("expected low-rated js cover to be picked over higher-rated filler, got %v", proposals[0].Members)
	}
	if proposals[0].SkillCoverage != 1 {
		t.Errorf("expected full coverage, got %v", proposals[0].SkillCoverage)
	}
}

func TestBuildAlternativeTeamsEmptyRequired(t *testing.T) {
	if got := BuildAlternativeTeams(builderPool(), NewSkillSet(), 3, 3); len(got) != 0 {
		t.Errorf("expected no proposals without required skills, got %d", len(got))
	}
}

func TestBuildAlternativeTeamsDeterminism(t *testing.T) {
	required := NewSkillSet("php", "js", "sql")

	first := BuildAlternativeTeams(builderPool(), required, 3, 3)
	for run := 0; run < 5; run++ {
		again := BuildAlternativeTeams(builderPool(), required, 3, 3)
		if len(again) != len(first) {
			t.Fatal("proposal count varies across runs")
		}
		for i := range first {
			for j := range first[i].Members {
				if first[i].Members[j].ID != again[i].Members[j].ID {
					t.Fatal("proposal membership varies across runs")
				}
			}
		}
	}
}
