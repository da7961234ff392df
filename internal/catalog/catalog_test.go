package catalog

import (
	"errors"
	"io/fs"
	"strings"
	"testing"
	"testing/fstest"

	"creativemastery/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func embeddedFS(t *testing.T) fstest.MapFS {
	t.Helper()
	out := fstest.MapFS{}
	for _, name := range []string{dimensionsFile, questionsFile, profilesFile, masteryFile} {
		data, err := fs.ReadFile(assets, "data/"+name)
		require.NoError(t, err)
		out[name] = &fstest.MapFile{Data: data}
	}
	return out
}

func TestDefaultCatalogInvariants(t *testing.T) {
	cat := Default()
	require.NotNil(t, cat)

	dims := cat.Dimensions()
	require.Len(t, dims, 5)
	for i, d := range dims {
		assert.Equal(t, model.Dimensions[i], d.ID)
	}

	assert.Len(t, cat.Questions(), 30)
	for _, d := range model.Dimensions {
		assert.Len(t, cat.QuestionsByDimension()[d], 6, "dimension %s", d)
	}

	assert.Len(t, cat.SynergyEdges(), 20)
	assert.Len(t, cat.Ambitions(), 5)
	assert.Len(t, cat.CreativeStates(), 4)
	assert.Len(t, cat.MasteryMetrics(), 4)

	_, ok := cat.Profile(model.ProfileKeyBalanced)
	assert.True(t, ok)
	assert.Equal(t, model.ProfileKeyDefault, cat.DefaultProfile().Key)
}

func TestDefaultCatalogCoversEverySingleExtreme(t *testing.T) {
	cat := Default()
	for _, d := range model.Dimensions {
		for _, st := range []model.State{model.StateLeft, model.StateRight} {
			key, _ := model.Pattern{{Dimension: d, State: st}}.Key()
			_, ok := cat.Profile(key)
			assert.True(t, ok, "missing profile %s", key)
		}
	}
}

func TestPrecisionClarityTarget(t *testing.T) {
	target, ok := Default().AmbitionTarget(model.AmbitionPrecision, model.ClarityVision)
	require.True(t, ok)
	assert.Equal(t, 4.8, target)
}

func TestSomeAmbitionOmitsATarget(t *testing.T) {
	cat := Default()
	omitted := false
	for _, a := range cat.Ambitions() {
		for _, d := range model.Dimensions {
			if _, ok := cat.AmbitionTarget(a, d); !ok {
				omitted = true
			}
		}
	}
	assert.True(t, omitted)
}

func TestLoadRejectsInvalidData(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		mutate  func(string) string
		wantMsg string
	}{
		{
			name:    "missing default profile",
			file:    profilesFile,
			mutate:  func(s string) string { return strings.Replace(s, "key: default", "key: beliefMindset_left_clarityVision_right", 1) },
			wantMsg: "default",
		},
		{
			name:    "unknown question dimension",
			file:    questionsFile,
			mutate:  func(s string) string { return strings.Replace(s, "dimension: beliefMindset", "dimension: courage", 1) },
			wantMsg: "courage",
		},
		{
			name:    "duplicate question id",
			file:    questionsFile,
			mutate:  func(s string) string { return strings.Replace(s, "id: bm2", "id: bm1", 1) },
			wantMsg: "duplicate question",
		},
		{
			name:    "profile key out of order",
			file:    profilesFile,
			mutate:  func(s string) string { return strings.Replace(s, "key: beliefMindset_left_actionOrientation_left", "key: actionOrientation_left_beliefMindset_left", 1) },
			wantMsg: "out of order",
		},
		{
			name:    "synergy influence out of range",
			file:    masteryFile,
			mutate:  func(s string) string { return strings.Replace(s, "influence: 0.8", "influence: 1.8", 1) },
			wantMsg: "influence",
		},
		{
			name:    "unknown field",
			file:    dimensionsFile,
			mutate:  func(s string) string { return strings.Replace(s, "title: Belief Mindset", "heading: Belief Mindset", 1) },
			wantMsg: "decode",
		},
		{
			name:    "emphasis above cap",
			file:    masteryFile,
			mutate:  func(s string) string { return strings.Replace(s, "clarityVision: 0.2", "clarityVision: 0.9", 1) },
			wantMsg: "emphasis",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := embeddedFS(t)
			original := string(fsys[tt.file].Data)
			mutated := tt.mutate(original)
			require.NotEqual(t, original, mutated, "mutation did not apply")
			fsys[tt.file] = &fstest.MapFile{Data: []byte(mutated)}

			_, err := Load(fsys)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidCatalog))
			assert.Contains(t, err.Error(), tt.wantMsg)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	fsys := embeddedFS(t)
	delete(fsys, masteryFile)

	_, err := Load(fsys)
	assert.ErrorIs(t, err, ErrInvalidCatalog)
}

func TestRecommendationFallbackChain(t *testing.T) {
	cat := Default()
	d := model.BeliefMindset

	specific := cat.TransitionRecommendation(d, model.StateLeft, model.StateBalanced, model.AmbitionPrecision)
	generic := cat.TransitionRecommendation(d, model.StateLeft, model.StateBalanced, model.AmbitionLegacy)
	assert.NotEqual(t, specific, generic)
	assert.Contains(t, specific, "skepticism")

	unknown := cat.TransitionRecommendation(d, model.StateLeft, model.StateBalanced, model.Ambition("Wealth"))
	assert.Equal(t, generic, unknown)

	assert.Equal(t, cat.fallbacks.Transition,
		cat.TransitionRecommendation(model.DimensionID("courage"), model.StateLeft, model.StateRight, model.AmbitionPrecision))
	assert.Equal(t, cat.fallbacks.Refinement,
		cat.RefinementRecommendation(model.DimensionID("courage"), model.StateLeft, model.AmbitionPrecision))
}

func TestSelectionFallbacks(t *testing.T) {
	cat := Default()

	assert.Equal(t, cat.fallbacks.Ambition, cat.AmbitionInsight("Wealth"))
	assert.Equal(t, cat.fallbacks.CreativeState, cat.CreativeStateInsight("Chaos"))
	assert.Equal(t, cat.fallbacks.MasteryMetric, cat.MetricInsight("Money"))
	assert.Empty(t, cat.AmbitionPractices("Wealth"))
	assert.Empty(t, cat.CreativeStatePractices("Chaos"))
	assert.Empty(t, cat.MetricPractices("Money"))
	assert.Zero(t, cat.AmbitionBonus("Wealth", model.ClarityVision))

	_, ok := cat.AmbitionTarget(model.AmbitionFreedom, model.EmotionalAlignment)
	assert.False(t, ok)
}

func TestDimensionPracticesPreferAmbition(t *testing.T) {
	cat := Default()

	withAmbition := cat.DimensionPractices(model.ClarityVision, model.StateLeft, model.AmbitionPrecision)
	generic := cat.DimensionPractices(model.ClarityVision, model.StateLeft, model.AmbitionFreedom)
	require.NotEmpty(t, withAmbition)
	require.NotEmpty(t, generic)
	assert.NotEqual(t, withAmbition, generic)
}

func TestSynergyInsightTextFallback(t *testing.T) {
	cat := Default()

	var edge SynergyEdge
	for _, e := range cat.SynergyEdges() {
		if e.From == model.BeliefMindset && e.To == model.IntuitionStrategy {
			edge = e
		}
	}
	require.Equal(t, model.BeliefMindset, edge.From)

	text := cat.SynergyInsightText(edge, model.StateBalanced)
	assert.Contains(t, text, "Belief Mindset")
	assert.Contains(t, text, "Intuition and Strategy")

	assert.Equal(t, edge.Insights[model.StateLeft], cat.SynergyInsightText(edge, model.StateLeft))
}
