package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"creativemastery/internal/model"

	"github.com/redis/go-redis/v9"
)

// QuizSessionCache stores caller-owned quiz sessions in Redis.
// Session metadata is a JSON blob; answers live in a hash so a single
// answer can be written without rewriting the whole session.
type QuizSessionCache interface {
	Save(ctx context.Context, session *model.QuizSession) error
	Get(ctx context.Context, id string) (*model.QuizSession, error)
	SetAnswer(ctx context.Context, id, questionID string, raw int) error
	Delete(ctx context.Context, id string) error
	Exists(ctx context.Context, id string) (bool, error)
	// MarkCounted reports true only for the first caller per session
	MarkCounted(ctx context.Context, id string) (bool, error)
}

type quizSessionCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewQuizSessionCache creates a session cache whose entries expire after ttl
func NewQuizSessionCache(client *redis.Client, ttl time.Duration) QuizSessionCache {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &quizSessionCache{
		client: client,
		ttl:    ttl,
	}
}

// Key helpers
func (c *quizSessionCache) metaKey(id string) string {
	return fmt.Sprintf("quiz:%s", id)
}

func (c *quizSessionCache) answersKey(id string) string {
	return fmt.Sprintf("quiz:%s:answers", id)
}

func (c *quizSessionCache) countedKey(id string) string {
	return fmt.Sprintf("quiz:%s:counted", id)
}

// Save writes metadata and answers and refreshes the TTL on both keys
func (c *quizSessionCache) Save(ctx context.Context, session *model.QuizSession) error {
	meta := *session
	meta.Answers = nil
	data, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	_, err = c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, c.metaKey(session.ID), data, c.ttl)
		if len(session.Answers) > 0 {
			fields := make(map[string]interface{}, len(session.Answers))
			for qid, raw := range session.Answers {
				fields[qid] = raw
			}
			pipe.HSet(ctx, c.answersKey(session.ID), fields)
			pipe.Expire(ctx, c.answersKey(session.ID), c.ttl)
		}
		return nil
	})
	return err
}

func (c *quizSessionCache) Get(ctx context.Context, id string) (*model.QuizSession, error) {
	data, err := c.client.Get(ctx, c.metaKey(id)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var session model.QuizSession
	if err := json.Unmarshal([]byte(data), &session); err != nil {
		return nil, err
	}

	raw, err := c.client.HGetAll(ctx, c.answersKey(id)).Result()
	if err != nil {
		return nil, err
	}
	session.Answers = make(model.Answers, len(raw))
	for qid, v := range raw {
		n, err := strconv.Atoi(v)
		if err != nil {
			continue
		}
		session.Answers[qid] = n
	}
	return &session, nil
}

// SetAnswer records one answer; the session must already exist
func (c *quizSessionCache) SetAnswer(ctx context.Context, id, questionID string, raw int) error {
	_, err := c.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.HSet(ctx, c.answersKey(id), questionID, raw)
		pipe.Expire(ctx, c.answersKey(id), c.ttl)
		pipe.Expire(ctx, c.metaKey(id), c.ttl)
		return nil
	})
	return err
}

func (c *quizSessionCache) Delete(ctx context.Context, id string) error {
	return c.client.Del(ctx, c.metaKey(id), c.answersKey(id), c.countedKey(id)).Err()
}

func (c *quizSessionCache) Exists(ctx context.Context, id string) (bool, error) {
	n, err := c.client.Exists(ctx, c.metaKey(id)).Result()
	return n > 0, err
}

func (c *quizSessionCache) MarkCounted(ctx context.Context, id string) (bool, error) {
	return c.client.SetNX(ctx, c.countedKey(id), 1, c.ttl).Result()
}
