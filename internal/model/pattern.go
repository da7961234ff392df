package model

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidPatternKey is returned when a profile key does not describe a pattern
var ErrInvalidPatternKey = errors.New("invalid pattern key")

// MaxKeyedExtremes is the largest extreme count that has a canonical profile key
const MaxKeyedExtremes = 3

// Extreme is one non-balanced dimension of a pattern
type Extreme struct {
	Dimension DimensionID
	State     State
}

// Pattern is the set of extreme dimensions of a result, in natural dimension order.
// An empty pattern means every dimension is balanced.
type Pattern []Extreme

// PatternOf collects the extremes of states in natural dimension order
func PatternOf(states DimensionStates) Pattern {
	p := make(Pattern, 0, len(Dimensions))
	for _, d := range Dimensions {
		if st := states.StateOf(d); st.IsExtreme() {
			p = append(p, Extreme{Dimension: d, State: st})
		}
	}
	return p
}

// Key renders the canonical catalog key.
// Patterns with more than three extremes have no key.
func (p Pattern) Key() (string, bool) {
	if len(p) == 0 {
		return ProfileKeyBalanced, true
	}
	if len(p) > MaxKeyedExtremes {
		return "", false
	}
	parts := make([]string, 0, len(p)*2)
	for _, e := range p {
		parts = append(parts, string(e.Dimension), string(e.State))
	}
	return strings.Join(parts, "_"), true
}

// StateOf returns the pattern's state for d; unlisted dimensions are balanced
func (p Pattern) StateOf(d DimensionID) State {
	for _, e := range p {
		if e.Dimension == d {
			return e.State
		}
	}
	return StateBalanced
}

// ParsePattern turns a canonical key back into a pattern.
// Only keys that Key would produce are accepted, so dimension order matters.
func ParsePattern(key string) (Pattern, error) {
	if key == ProfileKeyBalanced {
		return Pattern{}, nil
	}
	tokens := strings.Split(key, "_")
	if key == "" || len(tokens)%2 != 0 {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPatternKey, key)
	}

	p := make(Pattern, 0, len(tokens)/2)
	last := -1
	for i := 0; i < len(tokens); i += 2 {
		d, st := DimensionID(tokens[i]), State(tokens[i+1])
		idx := dimensionIndex(d)
		if idx < 0 {
			return nil, fmt.Errorf("%w: %q: unknown dimension %q", ErrInvalidPatternKey, key, d)
		}
		if !st.IsExtreme() {
			return nil, fmt.Errorf("%w: %q: state %q is not extreme", ErrInvalidPatternKey, key, st)
		}
		if idx <= last {
			return nil, fmt.Errorf("%w: %q: dimensions out of order", ErrInvalidPatternKey, key)
		}
		last = idx
		p = append(p, Extreme{Dimension: d, State: st})
	}
	if len(p) > MaxKeyedExtremes {
		return nil, fmt.Errorf("%w: %q: too many extremes", ErrInvalidPatternKey, key)
	}
	return p, nil
}

func dimensionIndex(d DimensionID) int {
	for i, known := range Dimensions {
		if known == d {
			return i
		}
	}
	return -1
}
