package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/pointpass/backend/internal/catalog"
	"github.com/pointpass/backend/internal/domain/actionverify"
	"github.com/pointpass/backend/internal/domain/statistic"
	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/internal/model"
	"github.com/pointpass/backend/internal/repository"
	"github.com/pointpass/backend/pkg/errorx"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm"
)

// recurringCooldown is the window between two claims of a recurring action.
// The boundary is inclusive, a claim exactly at the 24h mark is eligible.
const recurringCooldown = 24 * time.Hour

type ActionDomain interface {
	Claim(ctx context.Context, req *model.ClaimActionRequest) (*model.ClaimActionResponse, error)
	GetMyActions(ctx context.Context, req *model.GetMyActionsRequest) (*model.GetMyActionsResponse, error)
}

type actionDomain struct {
	actionCatalog       *catalog.Catalog
	userRepo            repository.UserRepository
	actionLogRepo       repository.ActionLogRepository
	completedActionRepo repository.CompletedActionRepository
	verifier            *actionverify.Verifier
	leaderboard         statistic.Leaderboard
}

func NewActionDomain(
	actionCatalog *catalog.Catalog,
	userRepo repository.UserRepository,
	actionLogRepo repository.ActionLogRepository,
	completedActionRepo repository.CompletedActionRepository,
	verifier *actionverify.Verifier,
	leaderboard statistic.Leaderboard,
) *actionDomain {
	return &actionDomain{
		actionCatalog:       actionCatalog,
		userRepo:            userRepo,
		actionLogRepo:       actionLogRepo,
		completedActionRepo: completedActionRepo,
		verifier:            verifier,
		leaderboard:         leaderboard,
	}
}

func (d *actionDomain) Claim(
	ctx context.Context, req *model.ClaimActionRequest,
) (*model.ClaimActionResponse, error) {
	action, ok := d.actionCatalog.Get(req.Action)
	if !ok {
		return nil, errorx.New(errorx.UnknownAction, "Unknown action")
	}

	userID := xcontext.RequestUserID(ctx)
	user, err := d.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	now := time.Now()

	// Fast-path eligibility check before any verification network call. The
	// commit below re-checks with a conditional write, so a concurrent claim
	// slipping past this point is still rejected.
	if action.IsOnce() {
		_, err := d.completedActionRepo.Get(ctx, user.ID, action.Key)
		if err == nil {
			return nil, errorx.New(errorx.AlreadyCompleted, "Action already completed")
		}

		if !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get completed action: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		last, err := d.actionLogRepo.GetLast(ctx, user.ID, action.Key)
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			xcontext.Logger(ctx).Errorf("Cannot get last action log: %v", err)
			return nil, errorx.Unknown
		}

		if err == nil && now.Sub(last.CreatedAt) < recurringCooldown {
			return nil, cooldownError(last.CreatedAt)
		}
	}

	if err := d.verifier.Verify(ctx, user, action, req.TweetURL); err != nil {
		return nil, err
	}

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	if action.IsOnce() {
		inserted, err := d.completedActionRepo.CreateIfAbsent(ctx, &entity.CompletedAction{
			UserID:    user.ID,
			ActionKey: action.Key,
			CreatedAt: now,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot mark action as completed: %v", err)
			return nil, errorx.Unknown
		}

		if !inserted {
			return nil, errorx.New(errorx.AlreadyCompleted, "Action already completed")
		}

		err = d.actionLogRepo.Create(ctx, &entity.ActionLog{
			Base:      entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			UserID:    user.ID,
			ActionKey: action.Key,
			Points:    action.Points,
		})
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create action log: %v", err)
			return nil, errorx.Unknown
		}
	} else {
		inserted, err := d.actionLogRepo.CreateIfNotRecent(ctx, &entity.ActionLog{
			Base:      entity.Base{ID: uuid.NewString(), CreatedAt: now, UpdatedAt: now},
			UserID:    user.ID,
			ActionKey: action.Key,
			Points:    action.Points,
		}, recurringCooldown)
		if err != nil {
			xcontext.Logger(ctx).Errorf("Cannot create action log: %v", err)
			return nil, errorx.Unknown
		}

		if !inserted {
			last, err := d.actionLogRepo.GetLast(ctx, user.ID, action.Key)
			if err != nil {
				xcontext.Logger(ctx).Errorf("Cannot get last action log: %v", err)
				return nil, errorx.Unknown
			}

			return nil, cooldownError(last.CreatedAt)
		}
	}

	if err := d.userRepo.IncreasePoints(ctx, user.ID, action.Points); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot increase points: %v", err)
		return nil, errorx.Unknown
	}

	if err := d.stampDailyAction(ctx, user, action, now); err != nil {
		return nil, err
	}

	updatedUser, err := d.userRepo.GetByID(ctx, user.ID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get user after claim: %v", err)
		return nil, errorx.Unknown
	}

	xcontext.WithCommitDBTransaction(ctx)

	if err := d.leaderboard.UpsertPointLeaderboard(ctx, user.ID, updatedUser.Points); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot update leaderboard cache: %v", err)
	}

	return &model.ClaimActionResponse{
		PointsAwarded: action.Points,
		TotalPoints:   updatedUser.Points,
	}, nil
}

// stampDailyAction records display-only timestamps for daily actions. They
// never feed eligibility, the action log does.
func (d *actionDomain) stampDailyAction(
	ctx context.Context, user *entity.User, action catalog.Action, now time.Time,
) error {
	switch action.Key {
	case "daily_checkin":
		if err := d.userRepo.UpdateLastCheckIn(ctx, user.ID, now); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update last check-in: %v", err)
			return errorx.Unknown
		}

	case "daily_post_twitter", "daily_post_farcaster":
		lastDailyPost := entity.Map{}
		for k, v := range user.LastDailyPost {
			lastDailyPost[k] = v
		}
		lastDailyPost[action.Platform] = now.Format(time.RFC3339)

		if err := d.userRepo.UpdateLastDailyPost(ctx, user.ID, lastDailyPost); err != nil {
			xcontext.Logger(ctx).Errorf("Cannot update last daily post: %v", err)
			return errorx.Unknown
		}
	}

	return nil
}

func (d *actionDomain) GetMyActions(
	ctx context.Context, req *model.GetMyActionsRequest,
) (*model.GetMyActionsResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if _, err := d.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "User not found")
		}

		xcontext.Logger(ctx).Errorf("Cannot get user: %v", err)
		return nil, errorx.Unknown
	}

	completed, err := d.completedActionRepo.GetByUserID(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get completed actions: %v", err)
		return nil, errorx.Unknown
	}

	completedSet := map[string]bool{}
	for _, c := range completed {
		completedSet[c.ActionKey] = true
	}

	lastActions, err := d.actionLogRepo.GetLastOfEachAction(ctx, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get last action logs: %v", err)
		return nil, errorx.Unknown
	}

	lastByAction := map[string]time.Time{}
	for _, l := range lastActions {
		lastByAction[l.ActionKey] = l.CreatedAt
	}

	now := time.Now()
	statuses := []model.ActionStatus{}
	for _, action := range d.actionCatalog.Actions() {
		status := model.ActionStatus{Action: convertAction(action), Available: true}

		if action.IsOnce() {
			if completedSet[action.Key] {
				status.Available = false
				status.Completed = true
			}
		} else if last, ok := lastByAction[action.Key]; ok {
			if now.Sub(last) < recurringCooldown {
				status.Available = false
				status.CooldownEndsAt = last.Add(recurringCooldown).Format(time.RFC3339)
			}
		}

		statuses = append(statuses, status)
	}

	return &model.GetMyActionsResponse{Actions: statuses}, nil
}

func cooldownError(lastClaim time.Time) error {
	return errorx.New(errorx.OnCooldown, "On cooldown").
		WithDetail("cooldown_ends_at", lastClaim.Add(recurringCooldown).Format(time.RFC3339))
}

func convertAction(action catalog.Action) model.Action {
	return model.Action{
		Key:      action.Key,
		Label:    action.Label,
		Points:   action.Points,
		Cooldown: string(action.Cooldown),
		Category: string(action.Category),
		Platform: action.Platform,
		URL:      action.URL,
	}
}
