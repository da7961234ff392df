// Package engine is the entry point callers use to score a quiz and build insights.
// It holds no mutable state; every call recomputes from its inputs.
package engine

import (
	"creativemastery/internal/catalog"
	"creativemastery/internal/mastery"
	"creativemastery/internal/model"
	"creativemastery/internal/profile"
	"creativemastery/internal/scoring"
)

// Engine wires the scoring, profile and mastery components to one catalog
type Engine struct {
	cat      *catalog.Catalog
	resolver *profile.Resolver
	insights *mastery.Generator
}

// New returns an engine over cat
func New(cat *catalog.Catalog) *Engine {
	return &Engine{
		cat:      cat,
		resolver: profile.NewResolver(cat),
		insights: mastery.NewGenerator(cat),
	}
}

// Catalog returns the reference data the engine reads from
func (e *Engine) Catalog() *catalog.Catalog {
	return e.cat
}

// ComputeResults scores answers against questions and resolves the profile.
// A nil questions slice means the catalog's own question bank.
func (e *Engine) ComputeResults(answers model.Answers, questions []model.Question) model.Results {
	byDimension := e.cat.QuestionsByDimension()
	if questions != nil {
		byDimension = groupByDimension(questions)
	}

	dr := scoring.Compute(answers, byDimension)
	m := e.resolver.Match(dr.States, dr.Scores)

	res := model.Results{
		DimensionScores: dr.Scores,
		DimensionStates: dr.States,
		Profile:         m.Profile,
		MatchKind:       m.Kind,
		Percentages:     make(map[model.DimensionID]int, len(model.Dimensions)),
		Dimensions:      make([]model.DimensionSummary, 0, len(model.Dimensions)),
	}
	for _, d := range model.Dimensions {
		score, st := dr.Scores[d], dr.States[d]
		pct := scoring.ScoreToPercentage(score)
		res.Percentages[d] = pct

		info, _ := e.cat.Dimension(d)
		stateInfo := info.States[st]
		res.Dimensions = append(res.Dimensions, model.DimensionSummary{
			Dimension:       d,
			Title:           info.Title,
			Score:           score,
			Percentage:      pct,
			State:           st,
			StateName:       stateInfo.Name,
			Description:     stateInfo.Description,
			Recommendations: stateInfo.Recommendations,
		})
	}
	return res
}

// ScoreToPercentage rescales a dimension score for display
func (e *Engine) ScoreToPercentage(score float64) int {
	return scoring.ScoreToPercentage(score)
}

// GenerateMasteryInsights builds the insights bundle for scores, states and selections
func (e *Engine) GenerateMasteryInsights(
	scores model.DimensionScores,
	states model.DimensionStates,
	ambition model.Ambition,
	creativeState model.CreativeState,
	metric model.MasteryMetric,
) *model.InsightsBundle {
	return e.insights.Generate(mastery.Input{
		Scores:        scores,
		States:        states,
		Ambition:      ambition,
		CreativeState: creativeState,
		MasteryMetric: metric,
	})
}

func groupByDimension(questions []model.Question) map[model.DimensionID][]string {
	out := make(map[model.DimensionID][]string, len(model.Dimensions))
	for _, q := range questions {
		out[q.Dimension] = append(out[q.Dimension], q.ID)
	}
	return out
}
