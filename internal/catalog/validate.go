package catalog

import (
	"fmt"
	"strings"

	"creativemastery/internal/model"
)

const (
	minScore       = 1.0
	maxScore       = 5.0
	maxEmphasis    = 0.2
	transitionSep  = "_to_"
	minProfileSize = 2 // balanced_all plus default
)

func invalid(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidCatalog, fmt.Sprintf(format, args...))
}

func (c *Catalog) validate() error {
	checks := []func() error{
		c.validateDimensions,
		c.validateQuestions,
		c.validateProfiles,
		c.validateAmbitions,
		c.validateSelections,
		c.validateSynergies,
		c.validateRecommendations,
		c.validateFallbacks,
	}
	for _, check := range checks {
		if err := check(); err != nil {
			return err
		}
	}
	return nil
}

func (c *Catalog) validateDimensions() error {
	if len(c.dimensions) != len(model.Dimensions) {
		return invalid("want %d dimensions, got %d", len(model.Dimensions), len(c.dimensions))
	}
	for i, d := range c.dimensions {
		if d.ID != model.Dimensions[i] {
			return invalid("dimension %d is %q, want %q", i, d.ID, model.Dimensions[i])
		}
		if d.Title == "" {
			return invalid("dimension %q has no title", d.ID)
		}
		for _, st := range model.States {
			info, ok := d.States[st]
			if !ok || info.Name == "" {
				return invalid("dimension %q has no %s state", d.ID, st)
			}
		}
	}
	return nil
}

func (c *Catalog) validateQuestions() error {
	seen := make(map[string]bool, len(c.questions))
	perDim := make(map[model.DimensionID]int, len(model.Dimensions))
	for _, q := range c.questions {
		if q.ID == "" {
			return invalid("question with empty id")
		}
		if seen[q.ID] {
			return invalid("duplicate question id %q", q.ID)
		}
		seen[q.ID] = true
		if !q.Dimension.IsKnown() {
			return invalid("question %q has unknown dimension %q", q.ID, q.Dimension)
		}
		perDim[q.Dimension]++
	}
	for _, d := range model.Dimensions {
		if perDim[d] == 0 {
			return invalid("dimension %q has no questions", d)
		}
	}
	return nil
}

func (c *Catalog) validateProfiles() error {
	if len(c.profiles) < minProfileSize {
		return invalid("want at least %d profiles, got %d", minProfileSize, len(c.profiles))
	}
	seen := make(map[string]bool, len(c.profiles))
	for _, p := range c.profiles {
		if seen[p.Key] {
			return invalid("duplicate profile key %q", p.Key)
		}
		seen[p.Key] = true
		if p.Name == "" {
			return invalid("profile %q has no name", p.Key)
		}
		if p.Key == model.ProfileKeyDefault {
			continue
		}
		if _, err := model.ParsePattern(p.Key); err != nil {
			return fmt.Errorf("%w: profile: %v", ErrInvalidCatalog, err)
		}
	}
	if !seen[model.ProfileKeyDefault] {
		return invalid("missing %q profile", model.ProfileKeyDefault)
	}
	return nil
}

func (c *Catalog) validateAmbitions() error {
	seen := make(map[model.Ambition]bool, len(c.ambitions))
	for _, a := range c.ambitions {
		if a.ID == "" || seen[a.ID] {
			return invalid("empty or duplicate ambition %q", a.ID)
		}
		seen[a.ID] = true
		for d, target := range a.Targets {
			if !d.IsKnown() {
				return invalid("ambition %q targets unknown dimension %q", a.ID, d)
			}
			if target < minScore || target > maxScore {
				return invalid("ambition %q target %v for %q out of range", a.ID, target, d)
			}
		}
		for d, bonus := range a.Emphasis {
			if !d.IsKnown() {
				return invalid("ambition %q emphasizes unknown dimension %q", a.ID, d)
			}
			if bonus < 0 || bonus > maxEmphasis {
				return invalid("ambition %q emphasis %v for %q out of range", a.ID, bonus, d)
			}
		}
	}
	return nil
}

func (c *Catalog) validateSelections() error {
	for kind, list := range map[string][]SelectionInfo{
		"creative state": c.creativeStates,
		"metric":         c.metrics,
	} {
		seen := make(map[string]bool, len(list))
		for _, s := range list {
			if s.ID == "" || seen[s.ID] {
				return invalid("empty or duplicate %s %q", kind, s.ID)
			}
			seen[s.ID] = true
		}
	}
	return nil
}

func (c *Catalog) validateSynergies() error {
	seen := make(map[[2]model.DimensionID]bool, len(c.synergies))
	for _, e := range c.synergies {
		if !e.From.IsKnown() || !e.To.IsKnown() {
			return invalid("synergy %s->%s references unknown dimension", e.From, e.To)
		}
		if e.From == e.To {
			return invalid("synergy %s->%s is a self edge", e.From, e.To)
		}
		pair := [2]model.DimensionID{e.From, e.To}
		if seen[pair] {
			return invalid("duplicate synergy %s->%s", e.From, e.To)
		}
		seen[pair] = true
		if e.Influence < 0 || e.Influence > 1 {
			return invalid("synergy %s->%s influence %v out of range", e.From, e.To, e.Influence)
		}
		for st := range e.Insights {
			if !st.IsValid() {
				return invalid("synergy %s->%s has insight for unknown state %q", e.From, e.To, st)
			}
		}
	}
	return nil
}

func (c *Catalog) validateRecommendations() error {
	for d, byKey := range c.transitions {
		if !d.IsKnown() {
			return invalid("transitions for unknown dimension %q", d)
		}
		for key := range byKey {
			from, to, ok := splitTransitionKey(key)
			if !ok || from == to {
				return invalid("transition %q for %q is malformed", key, d)
			}
		}
	}
	for d, byState := range c.refinements {
		if !d.IsKnown() {
			return invalid("refinements for unknown dimension %q", d)
		}
		for st := range byState {
			if !st.IsValid() {
				return invalid("refinement for %q has unknown state %q", d, st)
			}
		}
	}
	for d, byState := range c.practices {
		if !d.IsKnown() {
			return invalid("practices for unknown dimension %q", d)
		}
		for st := range byState {
			if !st.IsValid() {
				return invalid("practices for %q have unknown state %q", d, st)
			}
		}
	}
	return nil
}

func (c *Catalog) validateFallbacks() error {
	f := c.fallbacks
	for name, text := range map[string]string{
		"ambition":      f.Ambition,
		"creativeState": f.CreativeState,
		"masteryMetric": f.MasteryMetric,
		"transition":    f.Transition,
		"refinement":    f.Refinement,
	} {
		if strings.TrimSpace(text) == "" {
			return invalid("missing %s fallback text", name)
		}
	}
	return nil
}

func transitionKey(from, to model.State) string {
	return string(from) + transitionSep + string(to)
}

func splitTransitionKey(key string) (model.State, model.State, bool) {
	parts := strings.Split(key, transitionSep)
	if len(parts) != 2 {
		return "", "", false
	}
	from, to := model.State(parts[0]), model.State(parts[1])
	return from, to, from.IsValid() && to.IsValid()
}
