package estimation

import "relocation-quote/core/types"

// teamSizeSteps map a volume ceiling to the suggested team size. Larger
// volumes get maxSuggestedTeam.
var teamSizeSteps = []struct {
	upToM3 float64
	team   int
}{
	{15, 2},
	{35, 3},
}

const maxSuggestedTeam = 4

// OptimalTeamSize suggests a team size for the volume
func OptimalTeamSize(volume float64) int {
	for _, s := range teamSizeSteps {
		if volume <= s.upToM3 {
			return s.team
		}
	}
	return maxSuggestedTeam
}

// AssessTeam rates the job's team: exact match is optimal, one person
// off is good, anything further is suboptimal.
func AssessTeam(job *types.JobSpecification) types.TeamAssessment {
	optimal := OptimalTeamSize(job.Volume)
	a := types.TeamAssessment{
		CurrentTeamSize: job.TeamSize,
		OptimalTeamSize: optimal,
		Rating:          types.TeamSuboptimal,
	}
	switch diff := job.TeamSize - optimal; {
	case diff == 0:
		a.Rating = types.TeamOptimal
	case diff >= -1 && diff <= 1:
		a.Rating = types.TeamGood
	}
	return a
}
