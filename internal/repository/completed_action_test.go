package repository_test

import (
	"testing"

	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func Test_completedActionRepository_CreateIfAbsent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	repo := repository.NewCompletedActionRepository()

	inserted, err := repo.CreateIfAbsent(ctx, &entity.CompletedAction{
		UserID:    "user1",
		ActionKey: "join_discord",
	})
	require.NoError(t, err)
	require.True(t, inserted)

	// Marking twice keeps exactly one completion row.
	inserted, err = repo.CreateIfAbsent(ctx, &entity.CompletedAction{
		UserID:    "user1",
		ActionKey: "join_discord",
	})
	require.NoError(t, err)
	require.False(t, inserted)

	completed, err := repo.GetByUserID(ctx, "user1")
	require.NoError(t, err)
	require.Len(t, completed, 1)

	inserted, err = repo.CreateIfAbsent(ctx, &entity.CompletedAction{
		UserID:    "user2",
		ActionKey: "join_discord",
	})
	require.NoError(t, err)
	require.True(t, inserted)
}
