// Package cache holds the optional Redis-backed leaderboard. The trainer runs
// fine without it; wiring is skipped when no Redis address is configured.
package cache

import (
	"context"

	"github.com/redis/go-redis/v9"
)

const leaderboardKey = "trainer:leaderboard"

// Entry is one leaderboard row: a user's best mock-exam percent.
type Entry struct {
	UserID  string `json:"user_id"`
	Percent int    `json:"percent"`
	Rank    int    `json:"rank"`
}

type Leaderboard struct {
	client *redis.Client
}

func NewLeaderboard(client *redis.Client) *Leaderboard {
	return &Leaderboard{client: client}
}

// UpdateBest records percent for the user, keeping their highest result.
func (l *Leaderboard) UpdateBest(ctx context.Context, userID string, percent int) error {
	return l.client.ZAddGT(ctx, leaderboardKey, redis.Z{
		Score:  float64(percent),
		Member: userID,
	}).Err()
}

// GetTop returns the best-scoring users, 1-indexed rank, highest first.
func (l *Leaderboard) GetTop(ctx context.Context, limit int) ([]Entry, error) {
	results, err := l.client.ZRevRangeWithScores(ctx, leaderboardKey, 0, int64(limit-1)).Result()
	if err != nil {
		return nil, err
	}
	entries := make([]Entry, len(results))
	for i, z := range results {
		entries[i] = Entry{
			UserID:  z.Member.(string),
			Percent: int(z.Score),
			Rank:    i + 1,
		}
	}
	return entries, nil
}

// GetRank returns the user's 1-indexed rank, or -1 when absent.
func (l *Leaderboard) GetRank(ctx context.Context, userID string) (int64, error) {
	rank, err := l.client.ZRevRank(ctx, leaderboardKey, userID).Result()
	if err == redis.Nil {
		return -1, nil
	}
	return rank + 1, err
}
