// Package scoring turns raw slider answers into dimension scores and states.
package scoring

import (
	"math"

	"creativemastery/internal/model"
)

const (
	// MinScore and MaxScore bound every normalized score
	MinScore = 1.0
	MaxScore = 5.0
	// Midpoint is the neutral score, also used for unanswered dimensions
	Midpoint = 3.0

	leftMax      = 2.4
	rightMin     = 4.0
	balancedMin  = 2.5
	smoothRadius = 0.05
)

// Normalize maps a raw slider value in [0, 100] onto [1, 5].
// Values outside the slider range are not clamped.
func Normalize(raw int) float64 {
	return MinScore + float64(raw)/100*(MaxScore-MinScore)
}

// roundEpsilon absorbs binary representation error, so 1.005 rounds to 1.01
const roundEpsilon = 1e-9

// Round2 rounds half-up to two decimal places
func Round2(v float64) float64 {
	return math.Floor(v*100+0.5+roundEpsilon) / 100
}

// Classify buckets a score using the fixed thresholds.
// Scores that fall between buckets are balanced.
func Classify(score float64) model.State {
	switch {
	case score >= MinScore && score <= leftMax:
		return model.StateLeft
	case score >= balancedMin && score < rightMin:
		return model.StateBalanced
	case score >= rightMin && score <= MaxScore:
		return model.StateRight
	default:
		return model.StateBalanced
	}
}

// Smooth applies the boundary corrections to an already classified score
func Smooth(score float64, state model.State) model.State {
	switch {
	case nearly(score, balancedMin):
		return model.StateBalanced
	case nearly(score, rightMin):
		return model.StateRight
	default:
		return state
	}
}

func nearly(a, b float64) bool {
	// rounding noise must not push 2.45 or 3.95 outside the window
	return math.Abs(a-b) <= smoothRadius+1e-9
}

// Compute scores all five dimensions.
// byDimension maps each dimension to its question ids; answers to any other id are ignored.
// A dimension with no answers gets the midpoint score and a balanced state.
func Compute(answers model.Answers, byDimension map[model.DimensionID][]string) model.DimensionResults {
	res := model.DimensionResults{
		Scores: make(model.DimensionScores, len(model.Dimensions)),
		States: make(model.DimensionStates, len(model.Dimensions)),
	}

	for _, d := range model.Dimensions {
		sum, n := 0.0, 0
		for _, id := range byDimension[d] {
			raw, ok := answers[id]
			if !ok {
				continue
			}
			sum += Normalize(raw)
			n++
		}
		if n == 0 {
			res.Scores[d] = Midpoint
			res.States[d] = model.StateBalanced
			continue
		}
		score := Round2(sum / float64(n))
		res.Scores[d] = score
		res.States[d] = Classify(score)
	}

	// second pass, after every dimension has its initial state
	for _, d := range model.Dimensions {
		res.States[d] = Smooth(res.Scores[d], res.States[d])
	}
	return res
}

// ScoreToPercentage rescales a score onto 0..100 for display
func ScoreToPercentage(score float64) int {
	pct := math.Floor((score-MinScore)/(MaxScore-MinScore)*100 + 0.5)
	switch {
	case pct < 0:
		return 0
	case pct > 100:
		return 100
	default:
		return int(pct)
	}
}
