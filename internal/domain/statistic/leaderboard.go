// Package statistic caches the points leaderboard in a redis sorted set. The
// database stays the source of truth for rank and cutoff numbers, the sorted
// set only serves the hot top-N read path.
package statistic

import (
	"context"

	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/xcontext"
	"github.com/pointpass/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// Entry is one leaderboard position. Display fields are resolved by the
// caller, the cache only knows ids and scores.
type Entry struct {
	UserID string
	Points uint64
	Rank   uint64
}

type Leaderboard interface {
	GetLeaderBoard(ctx context.Context, offset, limit int) ([]Entry, error)
	UpsertPointLeaderboard(ctx context.Context, userID string, points uint64) error
}

const leaderboardCacheSize = 1000

type leaderboard struct {
	userRepo    repository.UserRepository
	redisClient xredis.Client
}

func New(userRepo repository.UserRepository, redisClient xredis.Client) *leaderboard {
	return &leaderboard{userRepo: userRepo, redisClient: redisClient}
}

func (l *leaderboard) GetLeaderBoard(ctx context.Context, offset, limit int) ([]Entry, error) {
	ok, err := l.redisClient.Exist(ctx, redisKeyPointLeaderBoard())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return nil, errorx.Unknown
	}

	// If the key didn't exist in redis, load it from database.
	if !ok {
		if err := l.loadLeaderboardFromDB(ctx); err != nil {
			return nil, err
		}
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, redisKeyPointLeaderBoard(), offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get revrange redis: %v", err)
		return nil, errorx.Unknown
	}

	leaderboard := []Entry{}
	for i, z := range results {
		leaderboard = append(leaderboard, Entry{
			UserID: z.Member.(string),
			Points: uint64(z.Score),
			Rank:   uint64(offset + i + 1),
		})
	}

	return leaderboard, nil
}

// UpsertPointLeaderboard writes the user's point total into the warm sorted
// set. Writing the total instead of a delta keeps users who were outside the
// cached snapshot from ending up with a delta-only score.
func (l *leaderboard) UpsertPointLeaderboard(
	ctx context.Context, userID string, points uint64,
) error {
	ok, err := l.redisClient.Exist(ctx, redisKeyPointLeaderBoard())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call exist redis: %v", err)
		return errorx.Unknown
	}

	// If the key didn't exist in redis, no need to update.
	if !ok {
		return nil
	}

	err = l.redisClient.ZAdd(ctx, redisKeyPointLeaderBoard(),
		redis.Z{Member: userID, Score: float64(points)})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot call zadd redis: %v", err)
	}

	return nil
}

func (l *leaderboard) loadLeaderboardFromDB(ctx context.Context) error {
	users, err := l.userRepo.GetByPointsDesc(ctx, 0, leaderboardCacheSize)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot load leaderboard from database: %v", err)
		return errorx.Unknown
	}

	for _, u := range users {
		err := l.redisClient.ZAdd(ctx, redisKeyPointLeaderBoard(),
			redis.Z{Member: u.ID, Score: float64(u.Points)})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot zadd redis: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}
