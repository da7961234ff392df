package catalog

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"sync"

	"creativemastery/internal/model"

	"gopkg.in/yaml.v3"
)

//go:embed data/*.yaml
var assets embed.FS

// ErrInvalidCatalog wraps every validation failure reported by Load
var ErrInvalidCatalog = errors.New("invalid catalog")

const (
	dimensionsFile = "dimensions.yaml"
	questionsFile  = "questions.yaml"
	profilesFile   = "profiles.yaml"
	masteryFile    = "mastery.yaml"
)

// StateInfo is the display record for one state of a dimension
type StateInfo struct {
	Name            string   `yaml:"name" json:"name"`
	Description     string   `yaml:"description" json:"description"`
	Recommendations []string `yaml:"recommendations" json:"recommendations"`
}

// DimensionInfo describes one personality axis
type DimensionInfo struct {
	ID         model.DimensionID         `yaml:"id" json:"id"`
	Title      string                    `yaml:"title" json:"title"`
	LeftLabel  string                    `yaml:"leftLabel" json:"leftLabel"`
	RightLabel string                    `yaml:"rightLabel" json:"rightLabel"`
	States     map[model.State]StateInfo `yaml:"states" json:"states"`
}

// AmbitionInfo holds the targets, emphasis and texts of one ambition
type AmbitionInfo struct {
	ID        model.Ambition                `yaml:"id" json:"id"`
	Name      string                        `yaml:"name" json:"name"`
	Insight   string                        `yaml:"insight" json:"insight"`
	Targets   map[model.DimensionID]float64 `yaml:"targets" json:"targets"`
	Emphasis  map[model.DimensionID]float64 `yaml:"emphasis" json:"emphasis"`
	Practices []string                      `yaml:"practices" json:"practices"`
}

// SelectionInfo holds the texts of one creative state or mastery metric
type SelectionInfo struct {
	ID        string   `yaml:"id" json:"id"`
	Insight   string   `yaml:"insight" json:"insight"`
	Practices []string `yaml:"practices" json:"practices"`
}

// SynergyEdge is a directed influence between two dimensions.
// Insights are keyed by the source dimension's state.
type SynergyEdge struct {
	From      model.DimensionID      `yaml:"from" json:"from"`
	To        model.DimensionID      `yaml:"to" json:"to"`
	Influence float64                `yaml:"influence" json:"influence"`
	Insights  map[model.State]string `yaml:"insights" json:"insights"`
}

// Recommendation is an authored text with optional per-ambition overrides
type Recommendation struct {
	Generic    string                    `yaml:"generic"`
	ByAmbition map[model.Ambition]string `yaml:"byAmbition"`
}

// PracticeSet is an authored practice list with optional per-ambition overrides
type PracticeSet struct {
	Generic    []string                    `yaml:"generic"`
	ByAmbition map[model.Ambition][]string `yaml:"byAmbition"`
}

// Fallbacks are the global texts used when nothing more specific is authored
type Fallbacks struct {
	Ambition      string `yaml:"ambition"`
	CreativeState string `yaml:"creativeState"`
	MasteryMetric string `yaml:"masteryMetric"`
	Transition    string `yaml:"transition"`
	Refinement    string `yaml:"refinement"`
}

// Catalog is the immutable reference data every engine component reads from.
// It is safe for concurrent use once loaded.
type Catalog struct {
	dimensions     []DimensionInfo
	questions      []model.Question
	profiles       []model.Profile
	ambitions      []AmbitionInfo
	creativeStates []SelectionInfo
	metrics        []SelectionInfo
	synergies      []SynergyEdge
	transitions    map[model.DimensionID]map[string]Recommendation
	refinements    map[model.DimensionID]map[model.State]Recommendation
	practices      map[model.DimensionID]map[model.State]PracticeSet
	fallbacks      Fallbacks

	dimensionIndex map[model.DimensionID]int
	questionIndex  map[string]int
	byDimension    map[model.DimensionID][]string
	profileIndex   map[string]int
	ambitionIndex  map[model.Ambition]int
	creativeIndex  map[model.CreativeState]int
	metricIndex    map[model.MasteryMetric]int
}

type dimensionsDoc struct {
	Dimensions []DimensionInfo `yaml:"dimensions"`
}

type questionsDoc struct {
	Questions []model.Question `yaml:"questions"`
}

type profilesDoc struct {
	Profiles []model.Profile `yaml:"profiles"`
}

type masteryDoc struct {
	Ambitions          []AmbitionInfo                                       `yaml:"ambitions"`
	CreativeStates     []SelectionInfo                                      `yaml:"creativeStates"`
	Metrics            []SelectionInfo                                      `yaml:"metrics"`
	Fallbacks          Fallbacks                                            `yaml:"fallbacks"`
	Synergies          []SynergyEdge                                        `yaml:"synergies"`
	Transitions        map[model.DimensionID]map[string]Recommendation      `yaml:"transitions"`
	Refinements        map[model.DimensionID]map[model.State]Recommendation `yaml:"refinements"`
	DimensionPractices map[model.DimensionID]map[model.State]PracticeSet    `yaml:"dimensionPractices"`
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
)

// Default returns the embedded catalog, loading it on first use.
// An invalid embedded asset is a build defect, so it panics.
func Default() *Catalog {
	defaultOnce.Do(func() {
		sub, err := fs.Sub(assets, "data")
		if err != nil {
			panic(err)
		}
		cat, err := Load(sub)
		if err != nil {
			panic(fmt.Sprintf("catalog: embedded data: %v", err))
		}
		defaultCatalog = cat
	})
	return defaultCatalog
}

// Load decodes and validates the four catalog documents found at the root of fsys
func Load(fsys fs.FS) (*Catalog, error) {
	var (
		dims    dimensionsDoc
		qs      questionsDoc
		profs   profilesDoc
		mastery masteryDoc
	)
	docs := []struct {
		name string
		out  interface{}
	}{
		{dimensionsFile, &dims},
		{questionsFile, &qs},
		{profilesFile, &profs},
		{masteryFile, &mastery},
	}
	for _, doc := range docs {
		if err := decodeFile(fsys, doc.name, doc.out); err != nil {
			return nil, err
		}
	}

	c := &Catalog{
		dimensions:     dims.Dimensions,
		questions:      qs.Questions,
		profiles:       profs.Profiles,
		ambitions:      mastery.Ambitions,
		creativeStates: mastery.CreativeStates,
		metrics:        mastery.Metrics,
		synergies:      mastery.Synergies,
		transitions:    mastery.Transitions,
		refinements:    mastery.Refinements,
		practices:      mastery.DimensionPractices,
		fallbacks:      mastery.Fallbacks,
	}
	if err := c.validate(); err != nil {
		return nil, err
	}
	c.index()
	return c, nil
}

func decodeFile(fsys fs.FS, name string, out interface{}) error {
	data, err := fs.ReadFile(fsys, name)
	if err != nil {
		return fmt.Errorf("%w: read %s: %v", ErrInvalidCatalog, name, err)
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("%w: decode %s: %v", ErrInvalidCatalog, name, err)
	}
	return nil
}

func (c *Catalog) index() {
	c.dimensionIndex = make(map[model.DimensionID]int, len(c.dimensions))
	for i, d := range c.dimensions {
		c.dimensionIndex[d.ID] = i
	}

	c.questionIndex = make(map[string]int, len(c.questions))
	c.byDimension = make(map[model.DimensionID][]string, len(model.Dimensions))
	for i, q := range c.questions {
		c.questionIndex[q.ID] = i
		c.byDimension[q.Dimension] = append(c.byDimension[q.Dimension], q.ID)
	}

	c.profileIndex = make(map[string]int, len(c.profiles))
	for i, p := range c.profiles {
		c.profileIndex[p.Key] = i
	}

	c.ambitionIndex = make(map[model.Ambition]int, len(c.ambitions))
	for i, a := range c.ambitions {
		c.ambitionIndex[a.ID] = i
	}
	c.creativeIndex = make(map[model.CreativeState]int, len(c.creativeStates))
	for i, s := range c.creativeStates {
		c.creativeIndex[model.CreativeState(s.ID)] = i
	}
	c.metricIndex = make(map[model.MasteryMetric]int, len(c.metrics))
	for i, m := range c.metrics {
		c.metricIndex[model.MasteryMetric(m.ID)] = i
	}
}
