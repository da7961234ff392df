package mastery

import (
	"math"

	"creativemastery/internal/model"
	"creativemastery/internal/scoring"
)

// gap tiers for damping the move toward an ambition's ideal score
var steps = []struct {
	above float64
	move  float64
}{
	{2.5, 0.7},
	{1.5, 0.5},
	{0.5, 0.3},
}

const (
	highLow        = 2.0
	highHigh       = 4.0
	highGrowth     = 0.5
	moderateGrowth = 0.4
	meaningful     = 0.2
	deadband       = 0.1
)

// AdjustTarget moves current toward ideal by an amount that shrinks with the gap.
// A gap of 0.5 or less jumps straight to ideal.
func AdjustTarget(current, ideal float64) float64 {
	gap := scoring.Round2(math.Abs(ideal - current))
	sign := 1.0
	if ideal < current {
		sign = -1.0
	}
	for _, s := range steps {
		if gap > s.above {
			return scoring.Round2(current + sign*s.move)
		}
	}
	return scoring.Round2(ideal)
}

// PriorityFor tiers a dimension by its score and boosted growth
func PriorityFor(score, growth float64) model.Priority {
	g := scoring.Round2(growth)
	switch {
	case (score <= highLow || score >= highHigh) && g >= highGrowth:
		return model.PriorityHigh
	case g >= moderateGrowth:
		return model.PriorityModerate
	case g >= meaningful:
		return model.PriorityMeaningful
	default:
		return model.PriorityMinimal
	}
}

// TargetState classifies an adjusted target
func TargetState(target float64) model.State {
	switch {
	case target >= 4.0:
		return model.StateRight
	case target <= 2.4:
		return model.StateLeft
	default:
		return model.StateBalanced
	}
}

// Direction reports which way current has to move to reach target
func Direction(current, target float64) model.GrowthDirection {
	diff := scoring.Round2(target - current)
	switch {
	case math.Abs(diff) < deadband:
		return model.DirectionMaintain
	case diff > 0:
		return model.DirectionIncrease
	default:
		return model.DirectionDecrease
	}
}

// IntensityFactor scales a synergy by how extreme the source score is
func IntensityFactor(score float64) float64 {
	switch {
	case score <= 1.5 || score >= 4.5:
		return 1.3
	case score <= 2.0 || score >= 4.0:
		return 1.15
	default:
		return 1.0
	}
}

// OverallFocus compares the total leftward and rightward moves.
// One side must be at least 1.5 times the other to set a direction.
func OverallFocus(current, targets model.DimensionScores) model.State {
	var left, right float64
	for _, d := range model.Dimensions {
		t, ok := targets[d]
		if !ok {
			continue
		}
		diff := t - current[d]
		if diff > 0 {
			right += diff
		} else {
			left -= diff
		}
	}
	left, right = scoring.Round2(left), scoring.Round2(right)
	switch {
	case right > 0 && right >= 1.5*left:
		return model.StateRight
	case left > 0 && left >= 1.5*right:
		return model.StateLeft
	default:
		return model.StateBalanced
	}
}
