package testutil

import (
	"context"

	"github.com/pointpass/backend/internal/domain/statistic"
)

type MockLeaderboard struct {
	GetLeaderBoardFunc func(ctx context.Context, offset, limit int) ([]statistic.Entry, error)

	UpsertPointLeaderboardFunc func(ctx context.Context, userID string, points uint64) error
}

func (m *MockLeaderboard) GetLeaderBoard(
	ctx context.Context, offset, limit int,
) ([]statistic.Entry, error) {
	if m.GetLeaderBoardFunc != nil {
		return m.GetLeaderBoardFunc(ctx, offset, limit)
	}

	return nil, nil
}

func (m *MockLeaderboard) UpsertPointLeaderboard(
	ctx context.Context, userID string, points uint64,
) error {
	if m.UpsertPointLeaderboardFunc != nil {
		return m.UpsertPointLeaderboardFunc(ctx, userID, points)
	}

	return nil
}
