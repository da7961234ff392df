// Package profile maps dimension states onto a narrative profile.
package profile

import (
	"math"

	"creativemastery/internal/catalog"
	"creativemastery/internal/model"
)

// Similarity weights
const (
	sameState      = 10.0
	oppositeState  = -5.0
	partialWeight  = 5.0
	sameCountBonus = 8.0
	countPenalty   = 2.0
	midpoint       = 3.0
)

// Match is a resolved profile together with how it was found
type Match struct {
	Profile model.Profile
	Kind    model.MatchKind
	Score   float64 // similarity of the winning entry; 0 for exact and fallback matches
}

type candidate struct {
	profile model.Profile
	pattern model.Pattern
}

// Resolver resolves profiles against a fixed catalog.
// Candidate patterns are parsed once, in catalog order.
type Resolver struct {
	cat        *catalog.Catalog
	candidates []candidate
}

// NewResolver prepares a resolver for cat
func NewResolver(cat *catalog.Catalog) *Resolver {
	r := &Resolver{cat: cat}
	for _, p := range cat.Profiles() {
		if p.Key == model.ProfileKeyDefault {
			continue
		}
		pattern, err := model.ParsePattern(p.Key)
		if err != nil {
			// Load has already rejected unparseable keys
			continue
		}
		r.candidates = append(r.candidates, candidate{profile: p, pattern: pattern})
	}
	return r
}

// Resolve returns the profile for states. It never returns a zero profile.
func (r *Resolver) Resolve(states model.DimensionStates, scores model.DimensionScores) model.Profile {
	return r.Match(states, scores).Profile
}

// Match tries the exact key first, then the weighted nearest neighbor
func (r *Resolver) Match(states model.DimensionStates, scores model.DimensionScores) Match {
	user := model.PatternOf(states)
	if key, ok := user.Key(); ok {
		if p, found := r.cat.Profile(key); found {
			return Match{Profile: p, Kind: model.MatchExact}
		}
	}

	best := -1
	bestScore := math.Inf(-1)
	for i, c := range r.candidates {
		s := Similarity(states, scores, c.pattern)
		// strictly greater, so the first entry wins a tie
		if s > bestScore {
			best, bestScore = i, s
		}
	}
	if best < 0 {
		return Match{Profile: r.cat.DefaultProfile(), Kind: model.MatchFallback}
	}
	return Match{Profile: r.candidates[best].profile, Kind: model.MatchNearest, Score: bestScore}
}

// Similarity scores how well a user's states and scores fit a profile pattern
func Similarity(states model.DimensionStates, scores model.DimensionScores, pattern model.Pattern) float64 {
	total := 0.0
	for _, d := range model.Dimensions {
		total += dimensionPoints(states.StateOf(d), pattern.StateOf(d), scoreOf(scores, d))
	}

	userCount, patternCount := states.ExtremeCount(), len(pattern)
	if userCount == patternCount {
		total += sameCountBonus
	} else {
		total -= countPenalty * math.Abs(float64(userCount-patternCount))
	}
	return total
}

func dimensionPoints(user, pattern model.State, score float64) float64 {
	distance := math.Abs(score - midpoint)
	switch {
	case user == pattern:
		return sameState
	case user.IsExtreme() && pattern.IsExtreme():
		return oppositeState
	case user == model.StateBalanced:
		// reward a balanced score that already leans toward the pattern's pole
		if leansToward(score, pattern) {
			return partialWeight * distance / 2
		}
		return 0
	default:
		// user is extreme, pattern balanced
		return partialWeight * distance / 4
	}
}

func leansToward(score float64, pole model.State) bool {
	if pole == model.StateLeft {
		return score < midpoint
	}
	return score > midpoint
}

func scoreOf(scores model.DimensionScores, d model.DimensionID) float64 {
	if s, ok := scores[d]; ok {
		return s
	}
	return midpoint
}
