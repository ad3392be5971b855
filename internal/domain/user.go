package domain

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pointpass/backend/internal/domain/statistic"
	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/crypto"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const referralCodeLength = 8

var walletAddressRegexp = regexp.MustCompile(`^0x[0-9a-fA-F]{40}$`)

type UserDomain interface {
	Register(ctx context.Context, req *model.RegisterUserRequest) (*model.RegisterUserResponse, error)
	GetMe(ctx context.Context, req *model.GetMeRequest) (*model.GetMeResponse, error)
	UpdateWallet(ctx context.Context, req *model.UpdateWalletRequest) (*model.UpdateWalletResponse, error)
	GetReferral(ctx context.Context, req *model.GetReferralRequest) (*model.GetReferralResponse, error)
}

type userDomain struct {
	userRepo    repository.UserRepository
	leaderboard statistic.Leaderboard
}

func NewUserDomain(
	userRepo repository.UserRepository,
	leaderboard statistic.Leaderboard,
) *userDomain {
	return &userDomain{userRepo: userRepo, leaderboard: leaderboard}
}

// Register creates the account on first login and returns the existing one
// afterwards. The account is keyed by the subject of the verified identity
// token, and the referral cascade runs only on the creating call.
func (d *userDomain) Register(
	ctx context.Context, req *model.RegisterUserRequest,
) (*model.RegisterUserResponse, error) {
	claims, err := xcontext.IdentityEngine(ctx).Verify(req.IdentityToken)
	if err != nil || claims.ID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Invalid or expired identity token")
	}

	if req.Username == "" || (req.TwitterID == "" && req.FarcasterFid == 0) {
		return nil, errorx.New(errorx.BadRequest, "Not enough information to register")
	}

	existing, err := d.userRepo.GetByAuthSubject(ctx, claims.ID)
	if err == nil {
		return d.registerResponse(ctx, existing, false)
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	socialID := req.TwitterID
	if req.FarcasterFid != 0 {
		socialID = fmt.Sprintf("farcaster_%d", req.FarcasterFid)
	}

	referrer, err := d.resolveReferrer(ctx, req.ReferralCode, socialID)
	if err != nil {
		return nil, err
	}

	referralCode, err := d.newReferralCode(ctx)
	if err != nil {
		return nil, err
	}

	newUser := &entity.User{
		Base:              entity.Base{ID: uuid.NewString()},
		AuthSubject:       claims.ID,
		SocialID:          socialID,
		Username:          req.Username,
		ProfilePictureURL: req.ProfilePictureURL,
		ReferralCode:      referralCode,
	}

	if referrer != nil {
		newUser.ReferredBy = sql.NullString{Valid: true, String: referrer.ReferralCode}
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	inserted, err := d.userRepo.CreateIfAbsent(ctx, newUser)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create user: %v", err)
		return nil, errorx.Unknown
	}

	if !inserted {
		// Another registration of the same subject won the race.
		winner, err := d.userRepo.GetByAuthSubject(ctx, claims.ID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, errorx.New(errorx.BadRequest,
					"That social account is already registered")
			}

			xcontext.Logger(ctx).Errorf("Cannot get user after a conflict: %v", err)
			return nil, errorx.Unknown
		}

		return d.registerResponse(ctx, winner, false)
	}

	var referrerTotal uint64
	if referrer != nil {
		referrerTotal, err = d.cascadeReferral(ctx, referrer)
		if err != nil {
			return nil, err
		}
	}

	xcontext.WithCommitDBTransaction(ctx)

	if referrer != nil {
		err := d.leaderboard.UpsertPointLeaderboard(ctx, referrer.ID, referrerTotal)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot update leaderboard cache: %v", err)
		}
	}

	return d.registerResponse(ctx, newUser, true)
}

// resolveReferrer maps a submitted code to the referring account. Unknown
// codes and self-referrals are treated as if no code was given.
func (d *userDomain) resolveReferrer(
	ctx context.Context, code, socialID string,
) (*entity.User, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, nil
	}

	referrer, err := d.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
		return nil, errorx.Unknown
	}

	if referrer.SocialID == socialID {
		return nil, nil
	}

	return referrer, nil
}

func (d *userDomain) newReferralCode(ctx context.Context) (string, error) {
	for i := 0; i < 10; i++ {
		code := crypto.GenerateReferralCode(referralCodeLength)

		_, err := d.userRepo.GetByReferralCode(ctx, code)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return code, nil
		}

		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot check referral code: %v", err)
			return "", errorx.Unknown
		}
	}

	xcontext.Logger(ctx).Errorf("Cannot generate an unused referral code")
	return "", errorx.Unknown
}

// cascadeReferral rewards the referrer with a bonus scaled by their referral
// count after this referral, and returns their new point total.
func (d *userDomain) cascadeReferral(
	ctx context.Context, referrer *entity.User,
) (uint64, error) {
	if err := d.userRepo.IncreaseReferralCount(ctx, referrer.ID); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase referral count: %v", err)
		return 0, errorx.Unknown
	}

	updated, err := d.userRepo.GetByID(ctx, referrer.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get referrer: %v", err)
		return 0, errorx.Unknown
	}

	bonus := referralBonus(updated.ReferralCount)
	if err := d.userRepo.IncreasePoints(ctx, referrer.ID, bonus); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot award referral bonus: %v", err)
		return 0, errorx.Unknown
	}

	return updated.Points + bonus, nil
}

func referralBonus(newCount uint64) uint64 {
	switch {
	case newCount <= 5:
		return 200
	case newCount <= 20:
		return 300
	default:
		return 500
	}
}

func (d *userDomain) registerResponse(
	ctx context.Context, user *entity.User, created bool,
) (*model.RegisterUserResponse, error) {
	token, err := xcontext.TokenEngine(ctx).Generate(user.ID, model.AccessToken{
		ID:       user.ID,
		Username: user.Username,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot generate access token: %v", err)
		return nil, errorx.Unknown
	}

	return &model.RegisterUserResponse{
		User:        convertUser(user),
		AccessToken: token,
		Created:     created,
	}, nil
}

func (d *userDomain) GetMe(
	ctx context.Context, req *model.GetMeRequest,
) (*model.GetMeResponse, error) {
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

	caps := xcontext.Configs(ctx).Twitter.Capabilities()
	rank := uint64(higher) + 1
	resp := &model.GetMeResponse{
		User:           convertUser(user),
		Rank:           rank,
		RewardTier:     rewardTier(rank),
		LotteryTickets: lotteryTickets(user.Points),

		TwitterVerificationEnabled:      caps.FollowCheck,
		TwitterTweetVerificationEnabled: caps.PostCheck,
	}

	if user.LastCheckInAt.Valid {
		resp.LastCheckInAt = user.LastCheckInAt.Time.Format(time.RFC3339)
	}

	return resp, nil
}

func (d *userDomain) UpdateWallet(
	ctx context.Context, req *model.UpdateWalletRequest,
) (*model.UpdateWalletResponse, error) {
	if !walletAddressRegexp.MatchString(req.WalletAddress) {
		return nil, errorx.New(errorx.BadRequest, "Invalid wallet address")
	}

	err := d.userRepo.UpdateWalletByID(ctx, xcontext.RequestUserID(ctx), req.WalletAddress)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot update wallet address: %v", err)
		return nil, errorx.Unknown
	}

	return &model.UpdateWalletResponse{}, nil
}

func (d *userDomain) GetReferral(
	ctx context.Context, req *model.GetReferralRequest,
) (*model.GetReferralResponse, error) {
	code := strings.ToUpper(strings.TrimSpace(req.Code))
	if code == "" {
		return nil, errorx.New(errorx.BadRequest, "Missing referral code")
	}

	user, err := d.userRepo.GetByReferralCode(ctx, code)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return &model.GetReferralResponse{Valid: false}, nil
		}

		xcontext.Logger(ctx).Errorf("Cannot get user by referral code: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetReferralResponse{Valid: true, Username: user.Username}, nil
}

func convertUser(user *entity.User) model.User {
	converted := model.User{
		ID:                user.ID,
		SocialID:          user.SocialID,
		Username:          user.Username,
		ProfilePictureURL: user.ProfilePictureURL,
		Points:            user.Points,
		ReferralCode:      user.ReferralCode,
		ReferralCount:     user.ReferralCount,
	}

	if user.WalletAddress.Valid {
		converted.WalletAddress = user.WalletAddress.String
	}

	return converted
}
