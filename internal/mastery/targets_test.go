package mastery

import (
	"testing"

	"creativemastery/internal/model"

	"github.com/stretchr/testify/assert"
)

func TestAdjustTarget(t *testing.T) {
	tests := []struct {
		name           string
		current, ideal float64
		want           float64
	}{
		{"large gap moves 0.7", 2.0, 4.8, 2.7},
		{"large gap downward", 4.5, 1.0, 3.8},
		{"gap of 2.5 moves 0.5", 4.5, 2.0, 4.0},
		{"gap of 2.0 moves 0.5", 3.0, 1.0, 2.5},
		{"gap of 1.5 moves 0.3", 3.0, 4.5, 3.3},
		{"gap of 1.0 moves 0.3", 3.0, 4.0, 3.3},
		{"gap of 0.5 jumps to ideal", 3.0, 3.5, 3.5},
		{"small gap jumps to ideal", 3.0, 3.4, 3.4},
		{"no gap", 3.0, 3.0, 3.0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, AdjustTarget(tt.current, tt.ideal), 1e-9)
		})
	}
}

func TestPriorityFor(t *testing.T) {
	tests := []struct {
		score, growth float64
		want          model.Priority
	}{
		{2.0, 0.5, model.PriorityHigh},
		{4.0, 0.5, model.PriorityHigh},
		{1.5, 0.3 + 0.2, model.PriorityHigh},
		{3.0, 0.9, model.PriorityModerate},
		{2.0, 0.45, model.PriorityModerate},
		{3.0, 0.4, model.PriorityModerate},
		{3.0, 0.2, model.PriorityMeaningful},
		{4.5, 0.39, model.PriorityMeaningful},
		{3.0, 0.19, model.PriorityMinimal},
		{3.0, 0, model.PriorityMinimal},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, PriorityFor(tt.score, tt.growth), "PriorityFor(%v, %v)", tt.score, tt.growth)
	}
}

func TestTargetState(t *testing.T) {
	assert.Equal(t, model.StateLeft, TargetState(2.4))
	assert.Equal(t, model.StateBalanced, TargetState(2.45))
	assert.Equal(t, model.StateBalanced, TargetState(3.99))
	assert.Equal(t, model.StateRight, TargetState(4.0))
}

func TestDirection(t *testing.T) {
	assert.Equal(t, model.DirectionMaintain, Direction(3.0, 3.05))
	assert.Equal(t, model.DirectionMaintain, Direction(3.0, 2.95))
	assert.Equal(t, model.DirectionIncrease, Direction(3.0, 3.1))
	assert.Equal(t, model.DirectionDecrease, Direction(3.0, 2.5))
}

func TestIntensityFactor(t *testing.T) {
	tests := []struct {
		score float64
		want  float64
	}{
		{1.0, 1.3},
		{1.5, 1.3},
		{4.5, 1.3},
		{1.8, 1.15},
		{2.0, 1.15},
		{4.0, 1.15},
		{2.1, 1.0},
		{3.0, 1.0},
		{3.9, 1.0},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, IntensityFactor(tt.score), "IntensityFactor(%v)", tt.score)
	}
}

func TestOverallFocus(t *testing.T) {
	current := model.DimensionScores{}
	for _, d := range model.Dimensions {
		current[d] = 3.0
	}
	with := func(bm, cv float64) model.DimensionScores {
		out := model.DimensionScores{}
		for d, v := range current {
			out[d] = v
		}
		out[model.BeliefMindset] = bm
		out[model.ClarityVision] = cv
		return out
	}

	assert.Equal(t, model.StateBalanced, OverallFocus(current, current))
	assert.Equal(t, model.StateBalanced, OverallFocus(current, with(4.0, 2.0)))
	assert.Equal(t, model.StateRight, OverallFocus(current, with(4.5, 2.0)))
	assert.Equal(t, model.StateLeft, OverallFocus(current, with(3.4, 2.3)))
	assert.Equal(t, model.StateRight, OverallFocus(current, with(3.3, 3.0)))
}
