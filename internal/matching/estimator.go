package matching

// Team size estimation thresholds. Each dimension contributes up to two
// increments; crossing the higher threshold earns both.
const (
	budgetStepOne   = 5000
	budgetStepTwo   = 10000
	durationStepOne = 30
	durationStepTwo = 90
	skillsStepOne   = 3
	skillsStepTwo   = 6

	maxEstimatedTeamSize = 5
)

// EstimateTeamSize derives a recommended team size from project attributes
// when the caller does not specify one. A coarse additive heuristic: start at
// one, bump for big budgets, long durations and wide skill requirements, cap
// at five.
func EstimateTeamSize(req ProjectRequirement) int {
	size := 1

	if req.Budget > budgetStepOne {
		size++
	}
	if req.Budget > budgetStepTwo {
		size++
	}

	if req.DurationDays > durationStepOne {
		size++
	}
	if req.DurationDays > durationStepTwo {
		size++
	}

	skillCount := req.RequiredSkills.Len()
	if skillCount > skillsStepOne {
		size++
	}
	if skillCount > skillsStepTwo {
		size++
	}

	if size > maxEstimatedTeamSize {
		size = maxEstimatedTeamSize
	}
	return size
}
