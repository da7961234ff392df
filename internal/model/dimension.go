package model

// DimensionID identifies one of the five fixed personality axes
type DimensionID string

const (
	BeliefMindset      DimensionID = "beliefMindset"
	ClarityVision      DimensionID = "clarityVision"
	ActionOrientation  DimensionID = "actionOrientation"
	IntuitionStrategy  DimensionID = "intuitionStrategy"
	EmotionalAlignment DimensionID = "emotionalAlignment"
)

// Dimensions lists every dimension in natural iteration order.
// Profile keys, practice ordering and synergy text all follow this order.
var Dimensions = []DimensionID{
	BeliefMindset,
	ClarityVision,
	ActionOrientation,
	IntuitionStrategy,
	EmotionalAlignment,
}

// IsKnown reports whether d is one of the five dimensions
func (d DimensionID) IsKnown() bool {
	for _, known := range Dimensions {
		if d == known {
			return true
		}
	}
	return false
}

// State is the discrete bucket a dimension score falls into
type State string

const (
	StateLeft     State = "left"
	StateBalanced State = "balanced"
	StateRight    State = "right"
)

// States lists the three states in pole order
var States = []State{StateLeft, StateBalanced, StateRight}

// IsExtreme reports whether s is one of the poles
func (s State) IsExtreme() bool {
	return s == StateLeft || s == StateRight
}

// IsValid reports whether s is left, balanced or right
func (s State) IsValid() bool {
	return s == StateLeft || s == StateBalanced || s == StateRight
}

// DimensionScores maps each dimension to its score in [1.0, 5.0]
type DimensionScores map[DimensionID]float64

// DimensionStates maps each dimension to its classified state
type DimensionStates map[DimensionID]State

// DimensionResults is the scoring engine output for all five dimensions
type DimensionResults struct {
	Scores DimensionScores `json:"dimensionScores"`
	States DimensionStates `json:"dimensionStates"`
}

// ExtremeCount returns how many dimensions are not balanced
func (s DimensionStates) ExtremeCount() int {
	n := 0
	for _, d := range Dimensions {
		if s[d].IsExtreme() {
			n++
		}
	}
	return n
}

// StateOf returns the state for d, treating a missing entry as balanced
func (s DimensionStates) StateOf(d DimensionID) State {
	if st, ok := s[d]; ok && st.IsValid() {
		return st
	}
	return StateBalanced
}
