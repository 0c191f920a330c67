package matching

import "testing"

func TestEstimateTeamSize(t *testing.T) {
	tests := []struct {
		name     string
		budget   float64
		duration int
		skills   int
		want     int
	}{
		{"small project", 100, 1, 1, 1},
		{"budget over first step", 5001, 1, 1, 2},
		{"budget over both steps", 10001, 1, 1, 3},
		{"long duration only", 100, 91, 1, 3},
		{"many skills only", 100, 1, 7, 3},
		{"all thresholds capped at five", 10001, 91, 7, 5},
		{"exact thresholds do not trigger", 5000, 30, 3, 1},
		{"mixed increments", 6000, 40, 4, 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			skills := make([]string, tt.skills)
			for i := range skills {
				skills[i] = string(rune('a' + i))
			}
			req := ProjectRequirement{
				Budget:         tt.budget,
				DurationDays:   tt.duration,
				RequiredSkills: NewSkillSet(skills...),
			}
			if got := EstimateTeamSize(req); got != tt.want {
				t.Errorf("expected %d, got %d", tt.want, got)
			}
		})
	}
}
