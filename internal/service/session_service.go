package service

import (
	"context"
	"fmt"
	"time"

	"creativemastery/internal/cache"
	"creativemastery/internal/metrics"
	"creativemastery/internal/model"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// SessionService owns the quiz session workflow.
// The engine never sees a session; every read recomputes from the stored answers.
type SessionService struct {
	quiz        *QuizService
	sessions    cache.QuizSessionCache
	stats       cache.ProfileStatsCache
	broadcaster Broadcaster
	metrics     *metrics.Metrics
	logger      *zap.Logger
	now         func() time.Time
}

// NewSessionService creates a new session service
func NewSessionService(quiz *QuizService, sessions cache.QuizSessionCache, m *metrics.Metrics, logger *zap.Logger) *SessionService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionService{
		quiz:     quiz,
		sessions: sessions,
		metrics:  m,
		logger:   logger,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// SetBroadcaster sets the broadcaster for live updates
func (s *SessionService) SetBroadcaster(b Broadcaster) {
	s.broadcaster = b
}

// SetProfileStats enables the tally of profiles resolved by completed sessions
func (s *SessionService) SetProfileStats(stats cache.ProfileStatsCache) {
	s.stats = stats
}

// StartSession creates an empty session on the intro step
func (s *SessionService) StartSession(ctx context.Context) (*model.QuizSession, error) {
	now := s.now()
	session := &model.QuizSession{
		ID:        uuid.NewString(),
		Step:      model.StepIntro,
		Answers:   model.Answers{},
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}
	s.metrics.IncSessionEvent("created")
	s.logger.Info("session started", zap.String("sessionId", session.ID))
	return session, nil
}

// GetSession loads a session or returns ErrSessionNotFound
func (s *SessionService) GetSession(ctx context.Context, id string) (*model.QuizSession, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	if session == nil {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return session, nil
}

// RecordAnswer stores one answer and returns the recomputed preview results
func (s *SessionService) RecordAnswer(ctx context.Context, id, questionID string, raw int) (model.Results, error) {
	if err := s.quiz.ValidateAnswer(questionID, raw); err != nil {
		return model.Results{}, err
	}
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return model.Results{}, err
	}

	if err := s.sessions.SetAnswer(ctx, id, questionID, raw); err != nil {
		return model.Results{}, fmt.Errorf("failed to save answer: %w", err)
	}
	session.Answers[questionID] = raw
	if session.Step == model.StepIntro {
		session.Step = model.StepQuestions
	}
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return model.Results{}, fmt.Errorf("failed to save session: %w", err)
	}
	s.metrics.IncSessionEvent("answered")

	res, err := s.quiz.ComputeResults(session.Answers)
	if err != nil {
		return model.Results{}, err
	}
	s.broadcast(id, MsgResultsUpdate, res)
	return res, nil
}

// Preview recomputes the session's results without moving it to another step
func (s *SessionService) Preview(ctx context.Context, id string) (model.Results, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return model.Results{}, err
	}
	return s.quiz.ComputeResults(session.Answers)
}

// SelectMastery validates and stores the mastery selections and returns fresh insights
func (s *SessionService) SelectMastery(ctx context.Context, id string, sel model.MasterySelections) (*model.InsightsBundle, error) {
	if err := s.quiz.ValidateSelections(sel); err != nil {
		return nil, err
	}
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	session.Mastery = &sel
	// results is terminal; changing selections afterwards keeps the session there
	if session.Step != model.StepResults {
		session.Step = model.StepMastery
	}
	session.UpdatedAt = s.now()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("failed to save session: %w", err)
	}

	bundle, err := s.insightsFor(session)
	if err != nil {
		return nil, err
	}
	s.broadcast(id, MsgInsightsUpdate, bundle)
	return bundle, nil
}

// Results computes the session's results and moves it to the results step
func (s *SessionService) Results(ctx context.Context, id string) (model.Results, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return model.Results{}, err
	}
	res, err := s.quiz.ComputeResults(session.Answers)
	if err != nil {
		return model.Results{}, err
	}

	if session.Step != model.StepResults {
		session.Step = model.StepResults
		session.UpdatedAt = s.now()
		if err := s.sessions.Save(ctx, session); err != nil {
			return model.Results{}, fmt.Errorf("failed to save session: %w", err)
		}
		s.metrics.IncSessionEvent("completed")
	}
	s.recordProfile(ctx, id, res.Profile.Key)
	return res, nil
}

// recordProfile tallies the session's profile at most once, even across concurrent reads
func (s *SessionService) recordProfile(ctx context.Context, id, profileKey string) {
	if s.stats == nil {
		return
	}
	first, err := s.sessions.MarkCounted(ctx, id)
	if err != nil {
		s.logger.Warn("failed to mark session counted", zap.String("sessionId", id), zap.Error(err))
		return
	}
	if !first {
		return
	}
	if err := s.stats.Record(ctx, profileKey); err != nil {
		s.logger.Warn("failed to record profile stats", zap.String("sessionId", id), zap.Error(err))
	}
}

// ProfileStats returns the most frequent profiles among completed sessions
func (s *SessionService) ProfileStats(ctx context.Context, limit int) ([]cache.ProfileCount, error) {
	if s.stats == nil {
		return []cache.ProfileCount{}, nil
	}
	top, err := s.stats.Top(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to load profile stats: %w", err)
	}
	return top, nil
}

// ProfileRank returns the tally row of one profile.
// A known profile that no session has reached yet has count 0 and rank 0.
func (s *SessionService) ProfileRank(ctx context.Context, profileKey string) (cache.ProfileCount, error) {
	if _, ok := s.quiz.Catalog().Profile(profileKey); !ok {
		return cache.ProfileCount{}, fmt.Errorf("%w: %s", ErrProfileNotFound, profileKey)
	}
	unranked := cache.ProfileCount{ProfileKey: profileKey}
	if s.stats == nil {
		return unranked, nil
	}
	row, err := s.stats.Rank(ctx, profileKey)
	if err != nil {
		return cache.ProfileCount{}, fmt.Errorf("failed to load profile rank: %w", err)
	}
	if row == nil {
		return unranked, nil
	}
	return *row, nil
}

// Insights returns the mastery insights for a session that has made its selections
func (s *SessionService) Insights(ctx context.Context, id string) (*model.InsightsBundle, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}
	return s.insightsFor(session)
}

func (s *SessionService) insightsFor(session *model.QuizSession) (*model.InsightsBundle, error) {
	if session.Mastery == nil {
		return nil, fmt.Errorf("%w: %s", ErrMasteryNotSelected, session.ID)
	}
	res, err := s.quiz.ComputeResults(session.Answers)
	if err != nil {
		return nil, err
	}
	return s.quiz.GenerateInsights(InsightsRequest{
		DimensionScores: res.DimensionScores,
		DimensionStates: res.DimensionStates,
		Selections:      *session.Mastery,
	}), nil
}

// Progress counts answered questions overall and per dimension
func (s *SessionService) Progress(ctx context.Context, id string) (*model.SessionProgress, error) {
	session, err := s.GetSession(ctx, id)
	if err != nil {
		return nil, err
	}

	byDim := s.quiz.Catalog().QuestionsByDimension()
	p := &model.SessionProgress{
		SessionID:  session.ID,
		Step:       session.Step,
		Dimensions: make([]model.DimensionProgress, 0, len(model.Dimensions)),
	}
	for _, d := range model.Dimensions {
		dp := model.DimensionProgress{Dimension: d, Total: len(byDim[d])}
		for _, qid := range byDim[d] {
			if _, ok := session.Answers[qid]; ok {
				dp.Answered++
			}
		}
		p.Answered += dp.Answered
		p.Total += dp.Total
		p.Dimensions = append(p.Dimensions, dp)
	}
	p.Complete = p.Total > 0 && p.Answered == p.Total
	return p, nil
}

// DeleteSession removes a session and disconnects its subscribers
func (s *SessionService) DeleteSession(ctx context.Context, id string) error {
	exists, err := s.sessions.Exists(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to check session: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if err := s.sessions.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	s.metrics.IncSessionEvent("deleted")
	if s.broadcaster != nil {
		s.broadcaster.BroadcastToSession(id, MsgSessionClosed, map[string]string{"sessionId": id})
		s.broadcaster.DisconnectSession(id)
	}
	s.logger.Info("session deleted", zap.String("sessionId", id))
	return nil
}

func (s *SessionService) broadcast(id, msgType string, payload interface{}) {
	if s.broadcaster == nil {
		return
	}
	s.broadcaster.BroadcastToSession(id, msgType, payload)
}
