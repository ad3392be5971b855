package domain

import (
	"fmt"
	"testing"

	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/testutil"
	"github.com/pointpass/backend/pkg/xcontext"
	"github.com/stretchr/testify/require"
)

func Test_userDomain_Register(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:dave"),
		TwitterID:     "2000000000000000001",
		Username:      "dave",
	})
	require.NoError(t, err)
	require.True(t, resp.Created)
	require.NotEmpty(t, resp.AccessToken)
	require.Len(t, resp.User.ReferralCode, 8)
	require.Equal(t, uint64(0), resp.User.Points)
	require.Equal(t, "2000000000000000001", resp.User.SocialID)

	// A second login returns the same account without re-creating it.
	again, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:dave"),
		TwitterID:     "2000000000000000001",
		Username:      "dave",
	})
	require.NoError(t, err)
	require.False(t, again.Created)
	require.Equal(t, resp.User.ID, again.User.ID)
}

func Test_userDomain_Register_invalidIdentityToken(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	// No token, then a token signed with the wrong secret.
	_, err := domain.Register(ctx, &model.RegisterUserRequest{
		TwitterID: "2000000000000000001",
		Username:  "dave",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)

	_, err = domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: "eyJhbGciOiJIUzI1NiJ9.e30.not-a-real-signature",
		TwitterID:     "2000000000000000001",
		Username:      "dave",
	})
	requireErrorCode(t, err, errorx.Unauthenticated)
}

func Test_userDomain_Register_farcaster(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:grace"),
		FarcasterFid:  42,
		Username:      "grace",
	})
	require.NoError(t, err)
	require.True(t, resp.Created)
	require.Equal(t, "farcaster_42", resp.User.SocialID)
}

func Test_userDomain_Register_missingInfo(t *testing.T) {
	ctx := testutil.MockContext()

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	// Neither a twitter id nor a farcaster fid.
	_, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:dave"),
		Username:      "dave",
	})
	requireErrorCode(t, err, errorx.BadRequest)
}

func Test_userDomain_Register_referralCascade(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})
	userRepo := repository.NewUserRepository()

	// The first five referrals grant 200 points each, the sixth moves the
	// referrer into the next tier.
	for i := 1; i <= 6; i++ {
		resp, err := domain.Register(ctx, &model.RegisterUserRequest{
			IdentityToken: testutil.MockIdentityToken(ctx, fmt.Sprintf("did:privy:referred%d", i)),
			TwitterID:     fmt.Sprintf("3000000000000000%03d", i),
			Username:      fmt.Sprintf("referred%d", i),
			ReferralCode:  testutil.User1.ReferralCode,
		})
		require.NoError(t, err)
		require.True(t, resp.Created)
	}

	referrer, err := userRepo.GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(6), referrer.ReferralCount)
	require.Equal(t, testutil.User1.Points+5*200+300, referrer.Points)
}

func Test_userDomain_Register_selfReferral(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	// A code owned by the submitted social account resolves to no referrer.
	referrer, err := domain.resolveReferrer(ctx, testutil.User1.ReferralCode, testutil.User1.SocialID)
	require.NoError(t, err)
	require.Nil(t, referrer)

	// Registering under a new login subject with one's own social account and
	// code must not pay a bonus.
	_, err = domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:alice-again"),
		TwitterID:     testutil.User1.SocialID,
		Username:      "alice",
		ReferralCode:  testutil.User1.ReferralCode,
	})
	requireErrorCode(t, err, errorx.BadRequest)

	user, err := repository.NewUserRepository().GetByID(ctx, testutil.User1.ID)
	require.NoError(t, err)
	require.Equal(t, uint64(0), user.ReferralCount)
	require.Equal(t, testutil.User1.Points, user.Points)
}

func Test_referralBonus(t *testing.T) {
	require.Equal(t, uint64(200), referralBonus(1))
	require.Equal(t, uint64(200), referralBonus(5))
	require.Equal(t, uint64(300), referralBonus(6))
	require.Equal(t, uint64(300), referralBonus(20))
	require.Equal(t, uint64(500), referralBonus(21))
	require.Equal(t, uint64(500), referralBonus(100))
}

func Test_userDomain_Register_unknownReferralCode(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	// An unknown code never fails the registration, it is just ignored.
	resp, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:erin"),
		TwitterID:     "2000000000000000002",
		Username:      "erin",
		ReferralCode:  "WHATEVER",
	})
	require.NoError(t, err)
	require.True(t, resp.Created)

	user, err := repository.NewUserRepository().GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.False(t, user.ReferredBy.Valid)
}

func Test_userDomain_Register_lowercasedReferralCode(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.Register(ctx, &model.RegisterUserRequest{
		IdentityToken: testutil.MockIdentityToken(ctx, "did:privy:frank"),
		TwitterID:     "2000000000000000003",
		Username:      "frank",
		ReferralCode:  "alice234",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, resp.User.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.User1.ReferralCode, user.ReferredBy.String)
}

func Test_userDomain_GetMe(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.Equal(t, testutil.User1.Username, resp.User.Username)
	require.Equal(t, uint64(1), resp.Rank)
	require.Equal(t, TierTop100, resp.RewardTier)
	require.Equal(t, uint64(1), resp.LotteryTickets)

	// No twitter credentials are configured here.
	require.False(t, resp.TwitterVerificationEnabled)
	require.False(t, resp.TwitterTweetVerificationEnabled)
}

func Test_userDomain_GetMe_capabilityFlags(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	cfg := xcontext.Configs(ctx)
	cfg.Twitter.BearerToken = "bearer"
	cfg.Twitter.AccountID = "10"
	ctx = xcontext.WithConfigs(ctx, cfg)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.GetMe(ctx, &model.GetMeRequest{})
	require.NoError(t, err)
	require.True(t, resp.TwitterVerificationEnabled)
	require.True(t, resp.TwitterTweetVerificationEnabled)
}

func Test_userDomain_UpdateWallet(t *testing.T) {
	ctx := testutil.MockContextWithUserID("user1")
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	_, err := domain.UpdateWallet(ctx, &model.UpdateWalletRequest{WalletAddress: "not-an-address"})
	requireErrorCode(t, err, errorx.BadRequest)

	_, err = domain.UpdateWallet(ctx, &model.UpdateWalletRequest{
		WalletAddress: "0x52908400098527886E0F7030069857D2E4169EE7",
	})
	require.NoError(t, err)

	user, err := repository.NewUserRepository().GetByID(ctx, xcontext.RequestUserID(ctx))
	require.NoError(t, err)
	require.Equal(t, "0x52908400098527886E0F7030069857D2E4169EE7", user.WalletAddress.String)
}

func Test_userDomain_GetReferral(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := NewUserDomain(repository.NewUserRepository(), &testutil.MockLeaderboard{})

	resp, err := domain.GetReferral(ctx, &model.GetReferralRequest{Code: "alice234"})
	require.NoError(t, err)
	require.True(t, resp.Valid)
	require.Equal(t, testutil.User1.Username, resp.Username)

	resp, err = domain.GetReferral(ctx, &model.GetReferralRequest{Code: "ZZZZZZZZ"})
	require.NoError(t, err)
	require.False(t, resp.Valid)

	_, err = domain.GetReferral(ctx, &model.GetReferralRequest{})
	requireErrorCode(t, err, errorx.BadRequest)
}
