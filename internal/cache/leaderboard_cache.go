package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/tarundeepakjain/Quintz/internal/model"
)

// LeaderboardCache holds computed leaderboards in Redis, invalidated on each
// recorded submission.
type LeaderboardCache interface {
	Get(ctx context.Context, quizID string) ([]model.LeaderboardEntry, error)
	Set(ctx context.Context, quizID string, entries []model.LeaderboardEntry) error
	Invalidate(ctx context.Context, quizID string) error
}

type leaderboardCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewLeaderboardCache creates a new leaderboard cache
func NewLeaderboardCache(client *redis.Client) LeaderboardCache {
	return &leaderboardCache{
		client: client,
		ttl:    10 * time.Minute,
	}
}

func (c *leaderboardCache) key(quizID string) string {
	return fmt.Sprintf("quiz:%s:lb", quizID)
}

func (c *leaderboardCache) Get(ctx context.Context, quizID string) ([]model.LeaderboardEntry, error) {
	data, err := c.client.Get(ctx, c.key(quizID)).Result()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []model.LeaderboardEntry
	if err := json.Unmarshal([]byte(data), &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *leaderboardCache) Set(ctx context.Context, quizID string, entries []model.LeaderboardEntry) error {
	data, err := json.Marshal(entries)
	if err != nil {
		return err
	}
	return c.client.Set(ctx, c.key(quizID), data, c.ttl).Err()
}

func (c *leaderboardCache) Invalidate(ctx context.Context, quizID string) error {
	return c.client.Del(ctx, c.key(quizID)).Err()
}
