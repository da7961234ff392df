package model

// Question is a Likert-slider prompt tagged to exactly one dimension
type Question struct {
	ID         string      `json:"id" yaml:"id"`                 // e.g., "bm1"
	Dimension  DimensionID `json:"dimension" yaml:"dimension"`   // owning dimension
	Prompt     string      `json:"prompt" yaml:"prompt"`         // statement shown above the slider
	LeftLabel  string      `json:"leftLabel" yaml:"leftLabel"`   // label at raw value 0
	RightLabel string      `json:"rightLabel" yaml:"rightLabel"` // label at raw value 100
}

const (
	SliderMin = 0   // raw slider lower bound
	SliderMax = 100 // raw slider upper bound
)

// Answers maps question id to a raw slider value in [0, 100]
type Answers map[string]int

// Clone returns a copy that callers can mutate freely
func (a Answers) Clone() Answers {
	out := make(Answers, len(a))
	for k, v := range a {
		out[k] = v
	}
	return out
}

// InRange reports whether a raw slider value is within the accepted range
func InRange(raw int) bool {
	return raw >= SliderMin && raw <= SliderMax
}
