package catalog

import (
	"fmt"

	"creativemastery/internal/model"
)

// Lookups never fail. Missing entries degrade to a fallback text, an empty
// list or the zero value so insight generation can always complete.

// Dimensions returns the five dimension records in natural order
func (c *Catalog) Dimensions() []DimensionInfo {
	out := make([]DimensionInfo, len(c.dimensions))
	copy(out, c.dimensions)
	return out
}

// Dimension returns the record for id
func (c *Catalog) Dimension(id model.DimensionID) (DimensionInfo, bool) {
	i, ok := c.dimensionIndex[id]
	if !ok {
		return DimensionInfo{}, false
	}
	return c.dimensions[i], true
}

func (c *Catalog) title(id model.DimensionID) string {
	if d, ok := c.Dimension(id); ok {
		return d.Title
	}
	return string(id)
}

// Questions returns the question bank in authored order
func (c *Catalog) Questions() []model.Question {
	out := make([]model.Question, len(c.questions))
	copy(out, c.questions)
	return out
}

// Question returns the question with the given id
func (c *Catalog) Question(id string) (model.Question, bool) {
	i, ok := c.questionIndex[id]
	if !ok {
		return model.Question{}, false
	}
	return c.questions[i], true
}

// QuestionsByDimension returns question ids grouped by dimension.
// The grouping is computed once at load; callers must not modify it.
func (c *Catalog) QuestionsByDimension() map[model.DimensionID][]string {
	return c.byDimension
}

// Profiles returns the profile catalog in insertion order
func (c *Catalog) Profiles() []model.Profile {
	out := make([]model.Profile, len(c.profiles))
	copy(out, c.profiles)
	return out
}

// Profile returns the profile stored under key
func (c *Catalog) Profile(key string) (model.Profile, bool) {
	i, ok := c.profileIndex[key]
	if !ok {
		return model.Profile{}, false
	}
	return c.profiles[i], true
}

// DefaultProfile returns the catch-all profile
func (c *Catalog) DefaultProfile() model.Profile {
	p, _ := c.Profile(model.ProfileKeyDefault)
	return p
}

// Mastery enumerations

func (c *Catalog) Ambitions() []model.Ambition {
	out := make([]model.Ambition, 0, len(c.ambitions))
	for _, a := range c.ambitions {
		out = append(out, a.ID)
	}
	return out
}

func (c *Catalog) CreativeStates() []model.CreativeState {
	out := make([]model.CreativeState, 0, len(c.creativeStates))
	for _, s := range c.creativeStates {
		out = append(out, model.CreativeState(s.ID))
	}
	return out
}

func (c *Catalog) MasteryMetrics() []model.MasteryMetric {
	out := make([]model.MasteryMetric, 0, len(c.metrics))
	for _, m := range c.metrics {
		out = append(out, model.MasteryMetric(m.ID))
	}
	return out
}

// AmbitionInfos returns the ambition records in authored order
func (c *Catalog) AmbitionInfos() []AmbitionInfo {
	out := make([]AmbitionInfo, len(c.ambitions))
	copy(out, c.ambitions)
	return out
}

// CreativeStateInfos returns the creative state records in authored order
func (c *Catalog) CreativeStateInfos() []SelectionInfo {
	out := make([]SelectionInfo, len(c.creativeStates))
	copy(out, c.creativeStates)
	return out
}

// MetricInfos returns the mastery metric records in authored order
func (c *Catalog) MetricInfos() []SelectionInfo {
	out := make([]SelectionInfo, len(c.metrics))
	copy(out, c.metrics)
	return out
}

func (c *Catalog) HasAmbition(a model.Ambition) bool {
	_, ok := c.ambitionIndex[a]
	return ok
}

func (c *Catalog) HasCreativeState(s model.CreativeState) bool {
	_, ok := c.creativeIndex[s]
	return ok
}

func (c *Catalog) HasMasteryMetric(m model.MasteryMetric) bool {
	_, ok := c.metricIndex[m]
	return ok
}

func (c *Catalog) ambition(a model.Ambition) (AmbitionInfo, bool) {
	i, ok := c.ambitionIndex[a]
	if !ok {
		return AmbitionInfo{}, false
	}
	return c.ambitions[i], true
}

// AmbitionTarget returns the ambition's ideal score for d, if it defines one
func (c *Catalog) AmbitionTarget(a model.Ambition, d model.DimensionID) (float64, bool) {
	info, ok := c.ambition(a)
	if !ok {
		return 0, false
	}
	target, ok := info.Targets[d]
	return target, ok
}

// AmbitionBonus returns the priority emphasis the ambition gives d, 0 when absent
func (c *Catalog) AmbitionBonus(a model.Ambition, d model.DimensionID) float64 {
	info, ok := c.ambition(a)
	if !ok {
		return 0
	}
	return info.Emphasis[d]
}

// AmbitionInsight returns the summary text for a, or the generic fallback
func (c *Catalog) AmbitionInsight(a model.Ambition) string {
	if info, ok := c.ambition(a); ok && info.Insight != "" {
		return info.Insight
	}
	return c.fallbacks.Ambition
}

// CreativeStateInsight returns the summary text for s, or the generic fallback
func (c *Catalog) CreativeStateInsight(s model.CreativeState) string {
	if i, ok := c.creativeIndex[s]; ok && c.creativeStates[i].Insight != "" {
		return c.creativeStates[i].Insight
	}
	return c.fallbacks.CreativeState
}

// MetricInsight returns the summary text for m, or the generic fallback
func (c *Catalog) MetricInsight(m model.MasteryMetric) string {
	if i, ok := c.metricIndex[m]; ok && c.metrics[i].Insight != "" {
		return c.metrics[i].Insight
	}
	return c.fallbacks.MasteryMetric
}

func (c *Catalog) AmbitionPractices(a model.Ambition) []string {
	info, _ := c.ambition(a)
	return info.Practices
}

func (c *Catalog) CreativeStatePractices(s model.CreativeState) []string {
	if i, ok := c.creativeIndex[s]; ok {
		return c.creativeStates[i].Practices
	}
	return nil
}

func (c *Catalog) MetricPractices(m model.MasteryMetric) []string {
	if i, ok := c.metricIndex[m]; ok {
		return c.metrics[i].Practices
	}
	return nil
}

// TransitionRecommendation picks the text for moving d from one state to another.
// Order: ambition specific, dimension generic, global fallback.
func (c *Catalog) TransitionRecommendation(d model.DimensionID, from, to model.State, a model.Ambition) string {
	rec := c.transitions[d][transitionKey(from, to)]
	return rec.pick(a, c.fallbacks.Transition)
}

// RefinementRecommendation picks the text for staying in st on d.
// Same fallback order as TransitionRecommendation.
func (c *Catalog) RefinementRecommendation(d model.DimensionID, st model.State, a model.Ambition) string {
	rec := c.refinements[d][st]
	return rec.pick(a, c.fallbacks.Refinement)
}

func (r Recommendation) pick(a model.Ambition, fallback string) string {
	if text := r.ByAmbition[a]; text != "" {
		return text
	}
	if r.Generic != "" {
		return r.Generic
	}
	return fallback
}

// DimensionPractices returns the practices for d in state st.
// Ambition specific lists win over the state's generic list.
func (c *Catalog) DimensionPractices(d model.DimensionID, st model.State, a model.Ambition) []string {
	set := c.practices[d][st]
	if list := set.ByAmbition[a]; len(list) > 0 {
		return list
	}
	return set.Generic
}

// SynergyEdges returns the synergy table in authored order
func (c *Catalog) SynergyEdges() []SynergyEdge {
	out := make([]SynergyEdge, len(c.synergies))
	copy(out, c.synergies)
	return out
}

// SynergyInsightText returns the edge's text for the source state.
// Missing texts are generated from the dimension titles.
func (c *Catalog) SynergyInsightText(e SynergyEdge, st model.State) string {
	if text := e.Insights[st]; text != "" {
		return text
	}
	from, to := c.title(e.From), c.title(e.To)
	if st == model.StateBalanced {
		return fmt.Sprintf("With %s in balance, your %s can grow steadily alongside it.", from, to)
	}
	return fmt.Sprintf("Your %s shapes how your %s develops.", from, to)
}
