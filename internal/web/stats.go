package web

import (
	"context"
	"encoding/json"
	"errors"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/warblerapp/warbler/internal/cache"
)

// statsTTL is how long cached profile stats stay fresh. Mutations
// invalidate eagerly; the TTL only covers missed invalidations.
const statsTTL = 5 * time.Minute

// ProfileStats are the counters shown on a profile page
type ProfileStats struct {
	Messages  int64 `json:"messages"`
	Following int64 `json:"following"`
	Followers int64 `json:"followers"`
	Likes     int64 `json:"likes"`
}

func statsKey(userID int64) string {
	return "user:stats:" + cache.HashKey("user", "stats", strconv.FormatInt(userID, 10))
}

// profileStats returns a user's counters, from Redis when available,
// falling back to the database. The cache is an optimization only;
// correctness never depends on it.
func (r *Router) profileStats(ctx context.Context, userID int64) (*ProfileStats, error) {
	if cached, err := r.cache.Get(statsKey(userID)); err == nil {
		var stats ProfileStats
		if json.Unmarshal([]byte(cached), &stats) == nil {
			return &stats, nil
		}
	} else if !errors.Is(err, cache.ErrCacheDisabled) {
		r.logger.Debug("Stats cache miss", zap.Int64("user_id", userID), zap.Error(err))
	}

	stats := &ProfileStats{}
	var err error
	if stats.Messages, err = r.messages.CountByUser(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Following, err = r.follows.CountFollowing(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Followers, err = r.follows.CountFollowers(ctx, userID); err != nil {
		return nil, err
	}
	if stats.Likes, err = r.likes.CountByUser(ctx, userID); err != nil {
		return nil, err
	}

	if encoded, err := json.Marshal(stats); err == nil {
		if err := r.cache.Set(statsKey(userID), encoded, statsTTL); err != nil &&
			!errors.Is(err, cache.ErrCacheDisabled) {
			r.logger.Warn("Failed to cache profile stats", zap.Int64("user_id", userID), zap.Error(err))
		}
	}

	return stats, nil
}

// invalidateStats drops cached counters after a mutation
func (r *Router) invalidateStats(userIDs ...int64) {
	for _, id := range userIDs {
		if err := r.cache.Delete(statsKey(id)); err != nil &&
			!errors.Is(err, cache.ErrCacheDisabled) {
			r.logger.Warn("Failed to invalidate profile stats", zap.Int64("user_id", id), zap.Error(err))
		}
	}
}
