package domain

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pointpass/backend/config"
	"github.com/pointpass/backend/internal/catalog"
	"github.com/pointpass/backend/internal/domain/actionverify"
	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/api/twitter"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestActionDomain(
	caps config.VerificationCapabilities, endpoint twitter.IEndpoint,
) ActionDomain {
	return NewActionDomain(
		catalog.Default(),
		repository.NewUserRepository(),
		repository.NewActionLogRepository(),
		repository.NewCompletedActionRepository(),
		actionverify.New(caps, "abc", endpoint),
		&testutil.MockLeaderboard{},
	)
}

func requireErrorCode(t *testing.T, err error, code errorx.Code) errorx.Error {
	t.Helper()

	var errx errorx.Error
	require.ErrorAs(t, err, &errx)
	require.Equal(t, code, errx.Code)
	return errx
}

func Test_actionDomain_Claim_unknownAction(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "no_such_action"})
	requireErrorCode(t, err, errorx.UnknownAction)
}

func Test_actionDomain_Claim_userNotFound(t *testing.T) {
	ctx := testutil.MockContextWithUserID("nobody")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "join_discord"})
	requireErrorCode(t, err, errorx.NotFound)
}

func Test_actionDomain_Claim_onceAction(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	resp, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "join_discord"})
	require.NoError(t, err)
	require.Equal(t, uint64(250), resp.PointsAwarded)
	require.Equal(t, testutil.User1.Points+250, resp.TotalPoints)

	_, err = domain.Claim(ctx, &model.ClaimActionRequest{Action: "join_discord"})
	requireErrorCode(t, err, errorx.AlreadyCompleted)
}

func Test_actionDomain_Claim_recurringCooldown(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	resp, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "daily_checkin"})
	require.NoError(t, err)
	require.Equal(t, uint64(50), resp.PointsAwarded)

	_, err = domain.Claim(ctx, &model.ClaimActionRequest{Action: "daily_checkin"})
	errx := requireErrorCode(t, err, errorx.OnCooldown)
	require.NotEmpty(t, errx.Detail["cooldown_ends_at"])
}

func Test_actionDomain_Claim_cooldownBoundary(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})
	actionLogRepo := repository.NewActionLogRepository()

	// A minute short of the window keeps the claim blocked.
	lastClaim := time.Now().Add(-recurringCooldown + time.Minute)
	require.NoError(t, actionLogRepo.Create(ctx, &entity.ActionLog{
		Base:      entity.Base{ID: uuid.NewString(), CreatedAt: lastClaim, UpdatedAt: lastClaim},
		UserID:    "user1",
		ActionKey: "like_twitter",
		Points:    50,
	}))

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "like_twitter"})
	errx := requireErrorCode(t, err, errorx.OnCooldown)
	require.Equal(t,
		lastClaim.Add(recurringCooldown).Format(time.RFC3339),
		errx.Detail["cooldown_ends_at"])

	// The full window elapsed makes it eligible again.
	boundaryClaim := time.Now().Add(-recurringCooldown)
	require.NoError(t, actionLogRepo.Create(ctx, &entity.ActionLog{
		Base:      entity.Base{ID: uuid.NewString(), CreatedAt: boundaryClaim, UpdatedAt: boundaryClaim},
		UserID:    "user1",
		ActionKey: "qt_farcaster",
		Points:    200,
	}))

	resp, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "qt_farcaster"})
	require.NoError(t, err)
	require.Equal(t, uint64(200), resp.PointsAwarded)
}

func Test_actionDomain_Claim_followVerification(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	notFollowing := newTestActionDomain(
		config.VerificationCapabilities{FollowCheck: true},
		&testutil.MockTwitterEndpoint{
			CheckFollowingFunc: func(ctx context.Context, userID string) (bool, error) {
				return false, nil
			},
		},
	)

	_, err := notFollowing.Claim(ctx, &model.ClaimActionRequest{Action: "follow_twitter"})
	requireErrorCode(t, err, errorx.FollowNotVerified)

	following := newTestActionDomain(
		config.VerificationCapabilities{FollowCheck: true},
		&testutil.MockTwitterEndpoint{
			CheckFollowingFunc: func(ctx context.Context, userID string) (bool, error) {
				require.Equal(t, testutil.User1.SocialID, userID)
				return true, nil
			},
		},
	)

	resp, err := following.Claim(ctx, &model.ClaimActionRequest{Action: "follow_twitter"})
	require.NoError(t, err)
	require.Equal(t, uint64(250), resp.PointsAwarded)
}

func Test_actionDomain_Claim_followVerificationDisabled(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	// Without credentials the follow gate is skipped and the endpoint is
	// never called.
	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	resp, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "follow_twitter"})
	require.NoError(t, err)
	require.Equal(t, uint64(250), resp.PointsAwarded)
}

func Test_actionDomain_Claim_tweetVerification(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	caps := config.VerificationCapabilities{PostCheck: true}
	tweetURL := "https://x.com/alice/status/123456"

	t.Run("missing link", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "qt_twitter"})
		requireErrorCode(t, err, errorx.LinkRequired)
	})

	t.Run("invalid link", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "qt_twitter",
			TweetURL: "https://example.com/not-a-tweet",
		})
		requireErrorCode(t, err, errorx.LinkInvalid)
	})

	t.Run("tweet not found", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				return twitter.Tweet{}, twitter.ErrTweetNotFound
			},
		})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "qt_twitter",
			TweetURL: tweetURL,
		})
		requireErrorCode(t, err, errorx.ContentUnavailable)
	})

	t.Run("author mismatch", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				return twitter.Tweet{ID: tweetID, AuthorID: "someone-else", IsQuote: true}, nil
			},
		})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "qt_twitter",
			TweetURL: tweetURL,
		})
		requireErrorCode(t, err, errorx.AuthorMismatch)
	})

	t.Run("not a quote tweet", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				return twitter.Tweet{ID: tweetID, AuthorID: testutil.User1.SocialID}, nil
			},
		})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "qt_twitter",
			TweetURL: tweetURL,
		})
		requireErrorCode(t, err, errorx.RequirementNotMet)
	})

	t.Run("missing mention", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				return twitter.Tweet{
					ID:       tweetID,
					AuthorID: testutil.User1.SocialID,
					Text:     "gm everyone",
				}, nil
			},
		})
		_, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "post_twitter",
			TweetURL: tweetURL,
		})
		requireErrorCode(t, err, errorx.RequirementNotMet)
	})

	t.Run("valid quote tweet", func(t *testing.T) {
		domain := newTestActionDomain(caps, &testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				require.Equal(t, "123456", tweetID)
				return twitter.Tweet{
					ID:       tweetID,
					AuthorID: testutil.User1.SocialID,
					IsQuote:  true,
				}, nil
			},
		})
		resp, err := domain.Claim(ctx, &model.ClaimActionRequest{
			Action:   "qt_twitter",
			TweetURL: tweetURL,
		})
		require.NoError(t, err)
		require.Equal(t, uint64(200), resp.PointsAwarded)
	})
}

func Test_actionDomain_Claim_failedVerificationCommitsNothing(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(
		config.VerificationCapabilities{PostCheck: true},
		&testutil.MockTwitterEndpoint{
			GetTweetFunc: func(ctx context.Context, tweetID string) (twitter.Tweet, error) {
				return twitter.Tweet{}, twitter.ErrTweetNotFound
			},
		},
	)

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{
		Action:   "rt_twitter",
		TweetURL: "https://x.com/alice/status/42",
	})
	requireErrorCode(t, err, errorx.ContentUnavailable)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Points, user.Points)
}

func Test_actionDomain_Claim_stampsDailyActions(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "daily_checkin"})
	require.NoError(t, err)

	_, err = domain.Claim(ctx, &model.ClaimActionRequest{Action: "daily_post_farcaster"})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, "user1")
	require.NoError(t, err)
	require.True(t, user.LastCheckInAt.Valid)
	require.Contains(t, user.LastDailyPost, "farcaster")
}

func Test_actionDomain_GetMyActions(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := newTestActionDomain(config.VerificationCapabilities{}, &testutil.MockTwitterEndpoint{})

	_, err := domain.Claim(ctx, &model.ClaimActionRequest{Action: "join_discord"})
	require.NoError(t, err)
	_, err = domain.Claim(ctx, &model.ClaimActionRequest{Action: "daily_checkin"})
	require.NoError(t, err)

	resp, err := domain.GetMyActions(ctx, &model.GetMyActionsRequest{})
	require.NoError(t, err)
	require.Equal(t, catalog.Default().Len(), len(resp.Actions))

	byKey := map[string]model.ActionStatus{}
	for _, status := range resp.Actions {
		byKey[status.Key] = status
	}

	require.True(t, byKey["join_discord"].Completed)
	require.False(t, byKey["join_discord"].Available)

	require.False(t, byKey["daily_checkin"].Completed)
	require.False(t, byKey["daily_checkin"].Available)
	require.NotEmpty(t, byKey["daily_checkin"].CooldownEndsAt)

	require.True(t, byKey["like_twitter"].Available)
	require.True(t, byKey["follow_twitter"].Available)
}
