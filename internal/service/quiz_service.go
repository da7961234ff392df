package service

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"creativemastery/internal/catalog"
	"creativemastery/internal/engine"
	"creativemastery/internal/metrics"
	"creativemastery/internal/model"

	lru "github.com/hashicorp/golang-lru/v2"
	"go.uber.org/zap"
)

// InsightsRequest is the input to a stateless insights computation
type InsightsRequest struct {
	DimensionScores model.DimensionScores   `json:"dimensionScores"`
	DimensionStates model.DimensionStates   `json:"dimensionStates"`
	Selections      model.MasterySelections `json:"selections"`
}

// QuizService validates caller input and runs the engine, memoizing by input.
// Memoized values are shared; callers must treat them as read-only.
type QuizService struct {
	engine   *engine.Engine
	results  *lru.Cache[string, model.Results]
	insights *lru.Cache[string, *model.InsightsBundle]
	metrics  *metrics.Metrics
	logger   *zap.Logger
}

// NewQuizService creates a quiz service holding up to memoSize results and insight bundles
func NewQuizService(eng *engine.Engine, memoSize int, m *metrics.Metrics, logger *zap.Logger) (*QuizService, error) {
	results, err := lru.New[string, model.Results](memoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create results memo: %w", err)
	}
	insights, err := lru.New[string, *model.InsightsBundle](memoSize)
	if err != nil {
		return nil, fmt.Errorf("failed to create insights memo: %w", err)
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &QuizService{
		engine:   eng,
		results:  results,
		insights: insights,
		metrics:  m,
		logger:   logger,
	}, nil
}

// Catalog exposes the reference data for listing endpoints
func (s *QuizService) Catalog() *catalog.Catalog {
	return s.engine.Catalog()
}

// ValidateAnswer checks one raw answer against the question bank
func (s *QuizService) ValidateAnswer(questionID string, raw int) error {
	if _, ok := s.Catalog().Question(questionID); !ok {
		return fmt.Errorf("%w: %q", ErrUnknownQuestion, questionID)
	}
	if !model.InRange(raw) {
		return fmt.Errorf("%w: %s=%d, want %d..%d", ErrInvalidAnswer, questionID, raw, model.SliderMin, model.SliderMax)
	}
	return nil
}

// ValidateAnswers checks a full answer set
func (s *QuizService) ValidateAnswers(answers model.Answers) error {
	for _, id := range sortedKeys(answers) {
		if err := s.ValidateAnswer(id, answers[id]); err != nil {
			return err
		}
	}
	return nil
}

// ValidateSelections requires all three selections to be catalog values
func (s *QuizService) ValidateSelections(sel model.MasterySelections) error {
	cat := s.Catalog()
	switch {
	case !cat.HasAmbition(sel.Ambition):
		return fmt.Errorf("%w: ambition %q", ErrInvalidSelection, sel.Ambition)
	case !cat.HasCreativeState(sel.CreativeState):
		return fmt.Errorf("%w: creative state %q", ErrInvalidSelection, sel.CreativeState)
	case !cat.HasMasteryMetric(sel.MasteryMetric):
		return fmt.Errorf("%w: mastery metric %q", ErrInvalidSelection, sel.MasteryMetric)
	}
	return nil
}

// ComputeResults validates answers and returns scores, states and profile
func (s *QuizService) ComputeResults(answers model.Answers) (model.Results, error) {
	if err := s.ValidateAnswers(answers); err != nil {
		return model.Results{}, err
	}

	key := answersKey(answers)
	if res, ok := s.results.Get(key); ok {
		s.metrics.IncMemo("results", true)
		return res, nil
	}
	s.metrics.IncMemo("results", false)

	res := s.engine.ComputeResults(answers, nil)
	s.results.Add(key, res)
	s.metrics.IncComputation("results", string(res.MatchKind))
	s.logger.Debug("computed results",
		zap.Int("answers", len(answers)),
		zap.String("profile", res.Profile.Key),
		zap.String("match", string(res.MatchKind)),
	)
	return res, nil
}

// GenerateInsights runs the mastery generator.
// Unknown selections are accepted and produce the generic fallback texts.
func (s *QuizService) GenerateInsights(req InsightsRequest) *model.InsightsBundle {
	key := insightsKey(req)
	if b, ok := s.insights.Get(key); ok {
		s.metrics.IncMemo("insights", true)
		return b
	}
	s.metrics.IncMemo("insights", false)

	b := s.engine.GenerateMasteryInsights(
		req.DimensionScores,
		req.DimensionStates,
		req.Selections.Ambition,
		req.Selections.CreativeState,
		req.Selections.MasteryMetric,
	)
	s.insights.Add(key, b)
	s.metrics.IncComputation("insights", "ok")
	s.logger.Debug("generated insights",
		zap.String("ambition", string(req.Selections.Ambition)),
		zap.Int("focus", len(b.SummaryInsights.FocusDimensions)),
	)
	return b
}

// Memo keys

func answersKey(answers model.Answers) string {
	var b strings.Builder
	for _, id := range sortedKeys(answers) {
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(strconv.Itoa(answers[id]))
		b.WriteByte(';')
	}
	return b.String()
}

func insightsKey(req InsightsRequest) string {
	var b strings.Builder
	for _, d := range model.Dimensions {
		score, ok := req.DimensionScores[d]
		if ok {
			b.WriteString(strconv.FormatFloat(score, 'f', -1, 64))
		}
		b.WriteByte(':')
		b.WriteString(string(req.DimensionStates[d]))
		b.WriteByte(';')
	}
	fmt.Fprintf(&b, "%s|%s|%s", req.Selections.Ambition, req.Selections.CreativeState, req.Selections.MasteryMetric)
	return b.String()
}

func sortedKeys(answers model.Answers) []string {
	keys := make([]string, 0, len(answers))
	for id := range answers {
		keys = append(keys, id)
	}
	sort.Strings(keys)
	return keys
}
