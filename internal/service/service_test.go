package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"creativemastery/internal/cache"
	"creativemastery/internal/catalog"
	"creativemastery/internal/engine"
	"creativemastery/internal/metrics"
	"creativemastery/internal/model"

	"github.com/alicebob/miniredis/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type sentMessage struct {
	sessionID string
	msgType   string
	payload   interface{}
}

type fakeBroadcaster struct {
	mu           sync.Mutex
	sent         []sentMessage
	disconnected []string
}

func (f *fakeBroadcaster) BroadcastToSession(sessionID string, msgType string, payload interface{}) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, sentMessage{sessionID, msgType, payload})
}

func (f *fakeBroadcaster) DisconnectSession(sessionID string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.disconnected = append(f.disconnected, sessionID)
}

func (f *fakeBroadcaster) types() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]string, 0, len(f.sent))
	for _, m := range f.sent {
		out = append(out, m.msgType)
	}
	return out
}

func newQuizService(t *testing.T) *QuizService {
	t.Helper()
	m := metrics.MustNewMetrics(prometheus.NewRegistry())
	svc, err := NewQuizService(engine.New(catalog.Default()), 16, m, zap.NewNop())
	require.NoError(t, err)
	return svc
}

func newSessionService(t *testing.T) (*SessionService, *fakeBroadcaster) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	svc := NewSessionService(newQuizService(t), cache.NewQuizSessionCache(client, time.Hour), nil, zap.NewNop())
	svc.SetProfileStats(cache.NewProfileStatsCache(client))
	b := &fakeBroadcaster{}
	svc.SetBroadcaster(b)
	return svc, b
}

func TestComputeResultsValidates(t *testing.T) {
	svc := newQuizService(t)

	_, err := svc.ComputeResults(model.Answers{"bm1": 101})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = svc.ComputeResults(model.Answers{"bm1": -1})
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = svc.ComputeResults(model.Answers{"zz9": 50})
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	res, err := svc.ComputeResults(model.Answers{})
	require.NoError(t, err)
	assert.Equal(t, model.ProfileKeyBalanced, res.Profile.Key)
}

func TestComputeResultsMemoizes(t *testing.T) {
	svc := newQuizService(t)
	answers := model.Answers{"bm1": 0, "bm2": 0, "bm3": 0}

	first, err := svc.ComputeResults(answers)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.results.Len())

	second, err := svc.ComputeResults(answers.Clone())
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, svc.results.Len())
	assert.Equal(t, "beliefMindset_left", second.Profile.Key)
}

func TestGenerateInsightsFallsBackOnUnknownSelections(t *testing.T) {
	svc := newQuizService(t)
	res, err := svc.ComputeResults(model.Answers{})
	require.NoError(t, err)

	b := svc.GenerateInsights(InsightsRequest{
		DimensionScores: res.DimensionScores,
		DimensionStates: res.DimensionStates,
		Selections:      model.MasterySelections{Ambition: "Wealth"},
	})
	assert.Equal(t, svc.Catalog().AmbitionInsight("Wealth"), b.SummaryInsights.AmbitionInsight)
	assert.Same(t, b, svc.GenerateInsights(InsightsRequest{
		DimensionScores: res.DimensionScores,
		DimensionStates: res.DimensionStates,
		Selections:      model.MasterySelections{Ambition: "Wealth"},
	}))
}

func TestValidateSelections(t *testing.T) {
	svc := newQuizService(t)
	valid := model.MasterySelections{
		Ambition:      model.AmbitionPrecision,
		CreativeState: model.CreativeFocus,
		MasteryMetric: model.MetricBreakthroughs,
	}
	assert.NoError(t, svc.ValidateSelections(valid))

	bad := valid
	bad.CreativeState = "Chaos"
	assert.ErrorIs(t, svc.ValidateSelections(bad), ErrInvalidSelection)
}

func TestSessionWorkflow(t *testing.T) {
	svc, b := newSessionService(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.StepIntro, session.Step)

	for _, q := range svc.quiz.Catalog().Questions() {
		raw := 50
		if q.Dimension == model.BeliefMindset {
			raw = 0
		}
		_, err := svc.RecordAnswer(ctx, session.ID, q.ID, raw)
		require.NoError(t, err)
	}

	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StepQuestions, got.Step)
	assert.Len(t, got.Answers, 30)

	progress, err := svc.Progress(ctx, session.ID)
	require.NoError(t, err)
	assert.True(t, progress.Complete)
	assert.Equal(t, 30, progress.Answered)
	assert.Equal(t, 6, progress.Dimensions[0].Answered)

	_, err = svc.Insights(ctx, session.ID)
	assert.ErrorIs(t, err, ErrMasteryNotSelected)

	bundle, err := svc.SelectMastery(ctx, session.ID, model.MasterySelections{
		Ambition:      model.AmbitionExpansion,
		CreativeState: model.CreativeFlow,
		MasteryMetric: model.MetricFulfillment,
	})
	require.NoError(t, err)
	assert.LessOrEqual(t, len(bundle.PersonalizedPractices), 10)

	res, err := svc.Results(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, "beliefMindset_left", res.Profile.Key)
	_, err = svc.Results(ctx, session.ID)
	require.NoError(t, err)

	stats, err := svc.ProfileStats(ctx, 5)
	require.NoError(t, err)
	require.Len(t, stats, 1)
	assert.Equal(t, "beliefMindset_left", stats[0].ProfileKey)
	assert.Equal(t, 1, stats[0].Count)

	got, err = svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StepResults, got.Step)
	require.NotNil(t, got.Mastery)
	assert.Equal(t, model.AmbitionExpansion, got.Mastery.Ambition)

	types := b.types()
	require.Len(t, types, 31)
	assert.Equal(t, MsgResultsUpdate, types[0])
	assert.Equal(t, MsgInsightsUpdate, types[30])

	require.NoError(t, svc.DeleteSession(ctx, session.ID))
	assert.Equal(t, []string{session.ID}, b.disconnected)
	_, err = svc.GetSession(ctx, session.ID)
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestSessionErrors(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	_, err := svc.RecordAnswer(ctx, "missing", "bm1", 10)
	assert.True(t, errors.Is(err, ErrSessionNotFound))

	session, err := svc.StartSession(ctx)
	require.NoError(t, err)

	_, err = svc.RecordAnswer(ctx, session.ID, "bm1", 150)
	assert.ErrorIs(t, err, ErrInvalidAnswer)

	_, err = svc.RecordAnswer(ctx, session.ID, "nope", 10)
	assert.ErrorIs(t, err, ErrUnknownQuestion)

	_, err = svc.SelectMastery(ctx, session.ID, model.MasterySelections{Ambition: "Wealth"})
	assert.ErrorIs(t, err, ErrInvalidSelection)

	assert.ErrorIs(t, svc.DeleteSession(ctx, "missing"), ErrSessionNotFound)
}

func TestProfileCountedOncePerSession(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	session, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.Results(ctx, session.ID)
	require.NoError(t, err)

	_, err = svc.SelectMastery(ctx, session.ID, model.MasterySelections{
		Ambition:      model.AmbitionPrecision,
		CreativeState: model.CreativeFocus,
		MasteryMetric: model.MetricBreakthroughs,
	})
	require.NoError(t, err)
	got, err := svc.GetSession(ctx, session.ID)
	require.NoError(t, err)
	assert.Equal(t, model.StepResults, got.Step)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Results(ctx, session.ID)
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	stats, err := svc.ProfileStats(ctx, 5)
	require.NoError(t, err)
	assert.Equal(t, []cache.ProfileCount{{ProfileKey: model.ProfileKeyBalanced, Count: 1, Rank: 1}}, stats)
}

func TestProfileRank(t *testing.T) {
	svc, _ := newSessionService(t)
	ctx := context.Background()

	for i := 0; i < 2; i++ {
		session, err := svc.StartSession(ctx)
		require.NoError(t, err)
		_, err = svc.Results(ctx, session.ID)
		require.NoError(t, err)
	}

	row, err := svc.ProfileRank(ctx, model.ProfileKeyBalanced)
	require.NoError(t, err)
	assert.Equal(t, cache.ProfileCount{ProfileKey: model.ProfileKeyBalanced, Count: 2, Rank: 1}, row)

	row, err = svc.ProfileRank(ctx, "beliefMindset_right")
	require.NoError(t, err)
	assert.Equal(t, cache.ProfileCount{ProfileKey: "beliefMindset_right"}, row)

	_, err = svc.ProfileRank(ctx, "beliefMindset_sideways")
	assert.ErrorIs(t, err, ErrProfileNotFound)
}
