package model

// Ambition is the secondary quiz's "what are you building toward" selection
type Ambition string

const (
	AmbitionPrecision Ambition = "Precision"
	AmbitionExpansion Ambition = "Expansion"
	AmbitionInfluence Ambition = "Influence"
	AmbitionFreedom   Ambition = "Freedom"
	AmbitionLegacy    Ambition = "Legacy"
)

// CreativeState is the ideal working state selection
type CreativeState string

const (
	CreativeFlow        CreativeState = "Flow"
	CreativeFocus       CreativeState = "Focus"
	CreativeInspiration CreativeState = "Inspiration"
	CreativeEase        CreativeState = "Ease"
)

// MasteryMetric is how the user measures success
type MasteryMetric string

const (
	MetricConsistency   MasteryMetric = "Consistency"
	MetricBreakthroughs MasteryMetric = "Breakthroughs"
	MetricFulfillment   MasteryMetric = "Fulfillment"
	MetricRecognition   MasteryMetric = "Recognition"
)

// MasterySelections are the three categorical answers of the mastery quiz
type MasterySelections struct {
	Ambition      Ambition      `json:"ambition" yaml:"ambition"`
	CreativeState CreativeState `json:"creativeState" yaml:"creativeState"`
	MasteryMetric MasteryMetric `json:"masteryMetric" yaml:"masteryMetric"`
}

// Priority is the tier assigned to a dimension's growth
type Priority string

const (
	PriorityHigh       Priority = "High"
	PriorityModerate   Priority = "Moderate"
	PriorityMeaningful Priority = "Meaningful"
	PriorityMinimal    Priority = "Minimal"
)

// Weight returns the tier's weight used in synergy relevance
func (p Priority) Weight() float64 {
	switch p {
	case PriorityHigh:
		return 1.0
	case PriorityModerate:
		return 0.7
	case PriorityMeaningful:
		return 0.5
	default:
		return 0.3
	}
}

// IsFocus reports whether the tier puts a dimension in the focus list
func (p Priority) IsFocus() bool {
	return p == PriorityHigh || p == PriorityModerate
}

// GrowthDirection is the sign of the move from current score to target
type GrowthDirection string

const (
	DirectionIncrease GrowthDirection = "increase"
	DirectionDecrease GrowthDirection = "decrease"
	DirectionMaintain GrowthDirection = "maintain"
)

// DimensionInsight is the per-dimension recommendation block
type DimensionInsight struct {
	Dimension       DimensionID     `json:"dimension"`
	CurrentScore    float64         `json:"currentScore"`
	CurrentState    State           `json:"currentState"`
	AdjustedTarget  float64         `json:"adjustedTarget"`
	TargetState     State           `json:"targetState"`
	GrowthPotential float64         `json:"growthPotential"`
	Priority        Priority        `json:"priority"`
	Direction       GrowthDirection `json:"direction"`
	Recommendation  string          `json:"recommendation"`
}

// SynergyInsight is one ranked cross-dimension influence
type SynergyInsight struct {
	From          DimensionID `json:"from"`
	To            DimensionID `json:"to"`
	BaseInfluence float64     `json:"baseInfluence"`
	Influence     float64     `json:"influence"` // base scaled by the source's intensity factor
	Insight       string      `json:"insight"`
	Relevance     float64     `json:"relevance"`
}

// SummaryInsights is the narrative overview of an insights bundle
type SummaryInsights struct {
	FocusDimensions      []DimensionID `json:"focusDimensions"`
	OverallFocus         State         `json:"overallFocus"`
	AmbitionInsight      string        `json:"ambitionInsight"`
	CreativeStateInsight string        `json:"creativeStateInsight"`
	MasteryMetricInsight string        `json:"masteryMetricInsight"`
}

// InsightsBundle is the output of the mastery insights generator
type InsightsBundle struct {
	AdjustedTargets       DimensionScores                  `json:"adjustedTargets"`
	GrowthPotential       DimensionScores                  `json:"growthPotential"`
	PriorityLevels        map[DimensionID]Priority         `json:"priorityLevels"`
	DimensionInsights     map[DimensionID]DimensionInsight `json:"dimensionInsights"`
	SynergyInsights       []SynergyInsight                 `json:"synergyInsights"`
	SummaryInsights       SummaryInsights                  `json:"summaryInsights"`
	PersonalizedPractices []string                         `json:"personalizedPractices"`
}
