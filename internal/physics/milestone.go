package physics

// MilestoneStep is the score distance between two extra-life milestones.
const MilestoneStep = 3000

// CrossedScoreMilestone reports whether score has reached at least one full
// step past *last, and if so advances *last by exactly one step.
//
// A jump across several steps only advances one step per call; repeated calls
// catch up one milestone at a time.
func CrossedScoreMilestone(score int, last *int) bool {
	if score >= *last+MilestoneStep {
		*last += MilestoneStep
		return true
	}
	return false
}
