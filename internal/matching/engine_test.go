package matching

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

type fakeProjectStore struct {
	requirements map[uuid.UUID]*ProjectRequirement
}

func (f *fakeProjectStore) GetRequirement(_ context.Context, id uuid.UUID) (*ProjectRequirement, error) {
	req, ok := f.requirements[id]
	if !ok {
		return nil, ErrProjectNotFound
	}
	return req, nil
}

type fakeDirectory struct {
	pool      []Candidate
	lastLimit int
}

func (f *fakeDirectory) FindBySkills(_ context.Context, _ []string, limit int) ([]Candidate, error) {
	f.lastLimit = limit
	return f.pool, nil
}

type fakeRegistry struct {
	teams []ExistingTeam
}

func (f *fakeRegistry) ListTeams(_ context.Context) ([]ExistingTeam, error) {
	return f.teams, nil
}

func testEngine(req *ProjectRequirement, pool []Candidate, teams []ExistingTeam) (*Engine, *fakeDirectory) {
	store := &fakeProjectStore{requirements: map[uuid.UUID]*ProjectRequirement{}}
	if req != nil {
		store.requirements[req.ProjectID] = req
	}
	dir := &fakeDirectory{pool: pool}
	return NewEngine(store, dir, &fakeRegistry{teams: teams}, zap.NewNop()), dir
}

func TestFindBestTeamUnknownProject(t *testing.T) {
	engine, _ := testEngine(nil, nil, nil)

	_, err := engine.FindBestTeam(context.Background(), testID(99), 2, nil)
	if !errors.Is(err, ErrProjectNotFound) {
		t.Fatalf("expected ErrProjectNotFound, got %v", err)
	}
}

func TestFindBestTeamEstimatesSizeWhenZero(t *testing.T) {
	req := &ProjectRequirement{
		ProjectID:      testID(1),
		RequiredSkills: NewSkillSet("php", "js", "go", "sql"),
		Budget:         12000,
		DurationDays:   120,
	}
	pool := make([]Candidate, 0, 10)
	for i := 1; i <= 10; i++ {
		skill := []string{"php", "js", "go", "sql"}[i%4]
		pool = append(pool, Candidate{ID: testID(i), Skills: NewSkillSet(skill), Rating: 4, Available: true})
	}
	engine, _ := testEngine(req, pool, nil)

	// budget>10000 (+2), duration>90 (+2), 4 skills (+1) → capped at 5.
	team, err := engine.FindBestTeam(context.Background(), testID(1), 0, nil)
	if err != nil {
		t.Fatalf("FindBestTeam failed: %v", err)
	}
	if len(team.Members) > 5 {
		t.Errorf("estimated size must cap at 5, got %d members", len(team.Members))
	}
	if len(team.Members) == 0 {
		t.Error("expected a non-empty team")
	}
}

func TestFindBestTeamSkillOverride(t *testing.T) {
	req := &ProjectRequirement{
		ProjectID:      testID(1),
		RequiredSkills: NewSkillSet("php"),
	}
	pool := []Candidate{
		{ID: testID(1), Skills: NewSkillSet("go"), Rating: 5, Available: true},
	}
	engine, _ := testEngine(req, pool, nil)

	team, err := engine.FindBestTeam(context.Background(), testID(1), 1, []string{"go"})
	if err != nil {
		t.Fatalf("FindBestTeam failed: %v", err)
	}
	if len(team.UncoveredSkills) != 0 {
		t.Errorf("override skills must replace stored ones, uncovered %v", team.UncoveredSkills)
	}
}

func TestTeamRecommendationsPoolSizing(t *testing.T) {
	req := &ProjectRequirement{ProjectID: testID(1), RequiredSkills: NewSkillSet("php")}
	engine, dir := testEngine(req, nil, nil)

	_, err := engine.TeamRecommendations(context.Background(), testID(1), nil, 0, 0)
	if err != nil {
		t.Fatalf("TeamRecommendations failed: %v", err)
	}
	// Default team size 3 → pool request of 3×5.
	if dir.lastLimit != 15 {
		t.Errorf("expected pool limit 15, got %d", dir.lastLimit)
	}
}

func TestFreelancerRecommendationReasons(t *testing.T) {
	req := &ProjectRequirement{
		ProjectID:      testID(1),
		RequiredSkills: NewSkillSet("php", "js"),
	}
	pool := []Candidate{
		// 100% match, rating 4.9, 14 completed: all three reasons.
		{ID: testID(1), Skills: NewSkillSet("php", "js"), Rating: 4.9, CompletedProjects: 14, Available: true},
		// 50% match, rating 4.0, 2 completed: no reasons.
		{ID: testID(2), Skills: NewSkillSet("php"), Rating: 4.0, CompletedProjects: 2, Available: true},
	}
	engine, _ := testEngine(req, pool, nil)

	recs, err := engine.FreelancerRecommendations(context.Background(), testID(1), nil, 5)
	if err != nil {
		t.Fatalf("FreelancerRecommendations failed: %v", err)
	}
	if len(recs) != 2 {
		t.Fatalf("expected 2 recommendations, got %d", len(recs))
	}

	want := []string{
		"High skill match for the required skills",
		"Excellent rating from past clients",
		"Experienced with 14 completed projects",
	}
	got := recs[0].RecommendationReasons
	if len(got) != len(want) {
		t.Fatalf("expected %d reasons, got %v", len(want), got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("reason %d: expected %q, got %q", i, want[i], got[i])
		}
	}

	if len(recs[1].RecommendationReasons) != 0 {
		t.Errorf("expected no reasons for weak candidate, got %v", recs[1].RecommendationReasons)
	}
}

func TestFreelancerRecommendationsLimit(t *testing.T) {
	req := &ProjectRequirement{ProjectID: testID(1), RequiredSkills: NewSkillSet("php")}
	pool := make([]Candidate, 0, 12)
	for i := 1; i <= 12; i++ {
		pool = append(pool, Candidate{ID: testID(i), Skills: NewSkillSet("php"), Rating: 3})
	}
	engine, _ := testEngine(req, pool, nil)

	recs, err := engine.FreelancerRecommendations(context.Background(), testID(1), nil, 0)
	if err != nil {
		t.Fatalf("FreelancerRecommendations failed: %v", err)
	}
	if len(recs) != 5 {
		t.Errorf("expected default limit of 5, got %d", len(recs))
	}
}

func TestFindExistingTeamsUsesStoredRequirement(t *testing.T) {
	req := &ProjectRequirement{ProjectID: testID(1), RequiredSkills: NewSkillSet("php", "js")}
	teams := []ExistingTeam{
		{TeamID: testID(10), Members: []Candidate{{ID: testID(2), Skills: NewSkillSet("php", "js"), Rating: 4}}},
		{TeamID: testID(11), Members: []Candidate{{ID: testID(3), Skills: NewSkillSet("design"), Rating: 5}}},
	}
	engine, _ := testEngine(req, nil, teams)

	ranked, err := engine.FindExistingTeams(context.Background(), testID(1))
	if err != nil {
		t.Fatalf("FindExistingTeams failed: %v", err)
	}
	if len(ranked) != 2 {
		t.Fatalf("expected 2 ranked teams, got %d", len(ranked))
	}
	if ranked[0].TeamID != testID(10) {
		t.Errorf("expected skill-covering team first, got %v", ranked[0].TeamID)
	}
}
