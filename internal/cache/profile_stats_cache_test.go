package cache

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfileStatsCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	stats := NewProfileStatsCache(client)
	ctx := context.Background()

	for _, key := range []string{"balanced_all", "beliefMindset_left", "balanced_all", "balanced_all", "beliefMindset_left", "default"} {
		require.NoError(t, stats.Record(ctx, key))
	}

	top, err := stats.Top(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, []ProfileCount{
		{ProfileKey: "balanced_all", Count: 3, Rank: 1},
		{ProfileKey: "beliefMindset_left", Count: 2, Rank: 2},
	}, top)

	row, err := stats.Rank(ctx, "default")
	require.NoError(t, err)
	assert.Equal(t, &ProfileCount{ProfileKey: "default", Count: 1, Rank: 3}, row)

	row, err = stats.Rank(ctx, "clarityVision_left")
	require.NoError(t, err)
	assert.Nil(t, row)

	none, err := stats.Top(ctx, 0)
	require.NoError(t, err)
	assert.Empty(t, none)
}
