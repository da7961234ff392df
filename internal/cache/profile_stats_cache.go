package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// ProfileStatsCache tallies resolved profiles in a Redis ZSET
type ProfileStatsCache interface {
	Record(ctx context.Context, profileKey string) error
	Top(ctx context.Context, limit int) ([]ProfileCount, error)
	Rank(ctx context.Context, profileKey string) (*ProfileCount, error)
}

// ProfileCount is one row of the profile distribution
type ProfileCount struct {
	ProfileKey string `json:"profileKey"`
	Count      int    `json:"count"`
	Rank       int    `json:"rank"`
}

type profileStatsCache struct {
	client *redis.Client
}

// NewProfileStatsCache creates a new profile stats cache
func NewProfileStatsCache(client *redis.Client) ProfileStatsCache {
	return &profileStatsCache{
		client: client,
	}
}

func (c *profileStatsCache) key() string {
	return "stats:profiles"
}

func (c *profileStatsCache) Record(ctx context.Context, profileKey string) error {
	return c.client.ZIncrBy(ctx, c.key(), 1, profileKey).Err()
}

func (c *profileStatsCache) Top(ctx context.Context, limit int) ([]ProfileCount, error) {
	if limit <= 0 {
		return []ProfileCount{}, nil
	}
	results, err := c.client.ZRevRangeWithScores(ctx, c.key(), 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}

	entries := make([]ProfileCount, len(results))
	for i, z := range results {
		entries[i] = ProfileCount{
			ProfileKey: z.Member.(string),
			Count:      int(z.Score),
			Rank:       i + 1,
		}
	}
	return entries, nil
}

// Rank is 1-indexed; a profile that was never recorded returns nil
func (c *profileStatsCache) Rank(ctx context.Context, profileKey string) (*ProfileCount, error) {
	rank, err := c.client.ZRevRank(ctx, c.key(), profileKey).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	score, err := c.client.ZScore(ctx, c.key(), profileKey).Result()
	if err == redis.Nil {
		// removed between the two reads
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &ProfileCount{
		ProfileKey: profileKey,
		Count:      int(score),
		Rank:       int(rank) + 1,
	}, nil
}
