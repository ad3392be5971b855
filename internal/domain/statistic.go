package domain

import (
	"context"
	"errors"

	"github.com/pkg/math"
	"github.com/pointpass/backend/internal/domain/statistic"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// Reward tiers by rank.
const (
	TierUnranked    = "Unranked"
	TierTop100      = "Top100"
	TierTop500      = "Top500"
	TierLotteryOnly = "LotteryOnly"
)

const (
	top100Rank = 100
	top500Rank = 500

	pointsPerLotteryTicket = 500
)

type StatisticDomain interface {
	GetLeaderBoard(ctx context.Context, req *model.GetLeaderBoardRequest) (*model.GetLeaderBoardResponse, error)
	GetRank(ctx context.Context, req *model.GetRankRequest) (*model.GetRankResponse, error)
	GetCutoff(ctx context.Context, req *model.GetCutoffRequest) (*model.GetCutoffResponse, error)
}

type statisticDomain struct {
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
}

func NewStatisticDomain(
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
) *statisticDomain {
	return &statisticDomain{userRepo: userRepo, leaderboard: leaderboard}
}

func (d *statisticDomain) GetLeaderBoard(
	ctx context.Context, req *model.GetLeaderBoardRequest,
) (*model.GetLeaderBoardResponse, error) {
	apiCfg := xcontext.Configs(ctx).ApiServer
	if req.Limit == 0 {
		req.Limit = apiCfg.DefaultLimit
	}

	if req.Limit < 0 || req.Offset < 0 {
		return nil, errorx.New(errorx.BadRequest, "Limit and offset must be positive")
	}

	limit := math.MinInt(req.Limit, apiCfg.MaxLimit)

	entries, err := d.leaderboard.GetLeaderBoard(ctx, req.Offset, limit)
	if err != nil {
		return nil, err
	}

	leaderboard := []model.LeaderBoardEntry{}
	for _, entry := range entries {
		user, err := d.userRepo.GetByID(ctx, entry.UserID)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot get user %s: %v", entry.UserID, err)
			return nil, errorx.Unknown
		}

		leaderboard = append(leaderboard, model.LeaderBoardEntry{
			UserID:            user.ID,
			Username:          user.Username,
			ProfilePictureURL: user.ProfilePictureURL,
			Points:            entry.Points,
			Rank:              entry.Rank,
		})
	}

	total, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetLeaderBoardResponse{
		LeaderBoard: leaderboard,
		Total:       uint64(total),
	}, nil
}

func (d *statisticDomain) GetRank(
	ctx context.Context, req *model.GetRankRequest,
) (*model.GetRankResponse, error) {
	user, err := d.userRepo.GetByID(ctx, xcontext.RequestUserID(ctx))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	higher, err := d.userRepo.CountWithMorePoints(ctx, user.Points)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users with more points: %v", err)
		return nil, errorx.Unknown
	}

	rank := uint64(higher) + 1
	return &model.GetRankResponse{
		Rank:           rank,
		Points:         user.Points,
		RewardTier:     rewardTier(rank),
		LotteryTickets: lotteryTickets(user.Points),
	}, nil
}

func (d *statisticDomain) GetCutoff(
	ctx context.Context, req *model.GetCutoffRequest,
) (*model.GetCutoffResponse, error) {
	top100, err := d.cutoffPoints(ctx, top100Rank)
	if err != nil {
		return nil, err
	}

	top500, err := d.cutoffPoints(ctx, top500Rank)
	if err != nil {
		return nil, err
	}

	total, err := d.userRepo.Count(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot count users: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetCutoffResponse{
		Top100Cutoff: top100,
		Top500Cutoff: top500,
		TotalUsers:   uint64(total),
	}, nil
}

// cutoffPoints returns the points of the account at the given 1-based rank, or
// zero when fewer accounts exist.
func (d *statisticDomain) cutoffPoints(ctx context.Context, rank int) (uint64, error) {
	users, err := d.userRepo.GetByPointsDesc(ctx, rank-1, 1)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users by points: %v", err)
		return 0, errorx.Unknown
	}

	if len(users) == 0 {
		return 0, nil
	}

	return users[0].Points, nil
}

func rewardTier(rank uint64) string {
	switch {
	case rank == 0:
		return TierUnranked
	case rank <= top100Rank:
		return TierTop100
	case rank <= top500Rank:
		return TierTop500
	default:
		return TierLotteryOnly
	}
}

func lotteryTickets(points uint64) uint64 {
	return points / pointsPerLotteryTicket
}
