// Package mastery builds personalized growth insights from dimension scores
// and the three mastery quiz selections.
package mastery

import (
	"sort"
	"strings"

	"creativemastery/internal/catalog"
	"creativemastery/internal/model"
	"creativemastery/internal/scoring"
)

const (
	// MaxPractices caps the personalized practice list
	MaxPractices = 10
	// MaxSynergies is how many ranked synergies a bundle carries
	MaxSynergies = 5

	synergyAppendMin = 0.7
)

// Input is everything Generate needs. Missing scores count as the midpoint.
type Input struct {
	Scores        model.DimensionScores
	States        model.DimensionStates
	Ambition      model.Ambition
	CreativeState model.CreativeState
	MasteryMetric model.MasteryMetric
}

// Generator computes insight bundles against a fixed catalog
type Generator struct {
	cat *catalog.Catalog
}

func NewGenerator(cat *catalog.Catalog) *Generator {
	return &Generator{cat: cat}
}

// Generate never fails; unknown selections fall back to generic texts
func (g *Generator) Generate(in Input) *model.InsightsBundle {
	current := make(model.DimensionScores, len(model.Dimensions))
	for _, d := range model.Dimensions {
		current[d] = scoreOf(in.Scores, d)
	}

	b := &model.InsightsBundle{
		AdjustedTargets:   make(model.DimensionScores, len(model.Dimensions)),
		GrowthPotential:   make(model.DimensionScores, len(model.Dimensions)),
		PriorityLevels:    make(map[model.DimensionID]model.Priority, len(model.Dimensions)),
		DimensionInsights: make(map[model.DimensionID]model.DimensionInsight, len(model.Dimensions)),
	}

	for _, d := range model.Dimensions {
		score := current[d]
		target := score
		if ideal, ok := g.cat.AmbitionTarget(in.Ambition, d); ok {
			target = AdjustTarget(score, ideal)
		}
		growth := scoring.Round2(absDiff(target, score))

		b.AdjustedTargets[d] = target
		b.GrowthPotential[d] = growth
		b.PriorityLevels[d] = PriorityFor(score, growth+g.cat.AmbitionBonus(in.Ambition, d))
	}

	for _, d := range model.Dimensions {
		b.DimensionInsights[d] = g.dimensionInsight(d, in, current, b)
	}

	b.SynergyInsights = g.synergies(in.States, current, b)
	b.SummaryInsights = g.summary(in, current, b)
	b.PersonalizedPractices = g.practices(in, b)
	return b
}

func (g *Generator) dimensionInsight(d model.DimensionID, in Input, current model.DimensionScores, b *model.InsightsBundle) model.DimensionInsight {
	score, target := current[d], b.AdjustedTargets[d]
	from, to := in.States.StateOf(d), TargetState(target)

	var rec string
	if from == to {
		rec = g.cat.RefinementRecommendation(d, from, in.Ambition)
	} else {
		rec = g.cat.TransitionRecommendation(d, from, to, in.Ambition)
	}

	parts := []string{rec}
	for _, e := range g.cat.SynergyEdges() {
		if e.To != d {
			continue
		}
		if scaledInfluence(e.Influence, current[e.From]) >= synergyAppendMin {
			parts = append(parts, g.cat.SynergyInsightText(e, in.States.StateOf(e.From)))
		}
	}

	return model.DimensionInsight{
		Dimension:       d,
		CurrentScore:    score,
		CurrentState:    from,
		AdjustedTarget:  target,
		TargetState:     to,
		GrowthPotential: b.GrowthPotential[d],
		Priority:        b.PriorityLevels[d],
		Direction:       Direction(score, target),
		Recommendation:  strings.Join(parts, " "),
	}
}

func (g *Generator) synergies(states model.DimensionStates, current model.DimensionScores, b *model.InsightsBundle) []model.SynergyInsight {
	edges := g.cat.SynergyEdges()
	out := make([]model.SynergyInsight, 0, len(edges))
	for _, e := range edges {
		from, to := e.From, e.To
		weight := (b.PriorityLevels[from].Weight() + b.PriorityLevels[to].Weight()) / 2
		growth := (b.GrowthPotential[from] + b.GrowthPotential[to]) / 2
		out = append(out, model.SynergyInsight{
			From:          from,
			To:            to,
			BaseInfluence: e.Influence,
			Influence:     scaledInfluence(e.Influence, current[from]),
			Insight:       g.cat.SynergyInsightText(e, states.StateOf(from)),
			Relevance:     scoring.Round2(weight * (1 + growth)),
		})
	}

	// stable, so edge table order breaks ties
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Influence > out[j].Influence
	})
	if len(out) > MaxSynergies {
		out = out[:MaxSynergies]
	}
	return out
}

func (g *Generator) summary(in Input, current model.DimensionScores, b *model.InsightsBundle) model.SummaryInsights {
	focus := make([]model.DimensionID, 0, len(model.Dimensions))
	for _, d := range model.Dimensions {
		if b.PriorityLevels[d].IsFocus() {
			focus = append(focus, d)
		}
	}
	return model.SummaryInsights{
		FocusDimensions:      focus,
		OverallFocus:         OverallFocus(current, b.AdjustedTargets),
		AmbitionInsight:      g.cat.AmbitionInsight(in.Ambition),
		CreativeStateInsight: g.cat.CreativeStateInsight(in.CreativeState),
		MasteryMetricInsight: g.cat.MetricInsight(in.MasteryMetric),
	}
}

func (g *Generator) practices(in Input, b *model.InsightsBundle) []string {
	out := make([]string, 0, MaxPractices)
	out = append(out, g.cat.AmbitionPractices(in.Ambition)...)
	out = append(out, g.cat.CreativeStatePractices(in.CreativeState)...)
	out = append(out, g.cat.MetricPractices(in.MasteryMetric)...)
	for _, d := range model.Dimensions {
		if b.PriorityLevels[d].IsFocus() {
			out = append(out, g.cat.DimensionPractices(d, in.States.StateOf(d), in.Ambition)...)
		}
	}
	if len(out) > MaxPractices {
		out = out[:MaxPractices]
	}
	return out
}

func scaledInfluence(base, sourceScore float64) float64 {
	return scoring.Round2(base * IntensityFactor(sourceScore))
}

func scoreOf(scores model.DimensionScores, d model.DimensionID) float64 {
	if s, ok := scores[d]; ok {
		return s
	}
	return scoring.Midpoint
}

func absDiff(a, b float64) float64 {
	if a > b {
		return a - b
	}
	return b - a
}
