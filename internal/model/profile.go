package model

const (
	// ProfileKeyBalanced is the catalog key for zero extreme dimensions
	ProfileKeyBalanced = "balanced_all"
	// ProfileKeyDefault is the catch-all catalog entry
	ProfileKeyDefault = "default"
)

// Profile is a named narrative result matched to a combination of states
type Profile struct {
	Key         string   `json:"key" yaml:"key"`
	Name        string   `json:"name" yaml:"name"`
	Description string   `json:"description" yaml:"description"`
	Celebrate   []string `json:"celebrate" yaml:"celebrate"`
	Support     []string `json:"support" yaml:"support"`
}

// MatchKind records how a profile was resolved
type MatchKind string

const (
	MatchExact    MatchKind = "exact"    // canonical key found in the catalog
	MatchNearest  MatchKind = "nearest"  // weighted nearest-neighbor fallback
	MatchFallback MatchKind = "fallback" // nothing scored, default entry
)

// DimensionSummary is the display record for one dimension of a result
type DimensionSummary struct {
	Dimension       DimensionID `json:"dimension"`
	Title           string      `json:"title"`
	Score           float64     `json:"score"`
	Percentage      int         `json:"percentage"`
	State           State       `json:"state"`
	StateName       string      `json:"stateName"`
	Description     string      `json:"description"`
	Recommendations []string    `json:"recommendations,omitempty"`
}

// Results is the output of a full quiz computation
type Results struct {
	DimensionScores DimensionScores     `json:"dimensionScores"`
	DimensionStates DimensionStates     `json:"dimensionStates"`
	Profile         Profile             `json:"profile"`
	MatchKind       MatchKind           `json:"matchKind"`
	Percentages     map[DimensionID]int `json:"percentages"`
	Dimensions      []DimensionSummary  `json:"dimensions"`
}
