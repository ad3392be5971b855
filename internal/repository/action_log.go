package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/pkg/xcontext"
)

type LastAction struct {
	ActionKey string
	CreatedAt time.Time
}

type ActionLogRepository interface {
	Create(ctx context.Context, log *entity.ActionLog) error
	// CreateIfNotRecent appends the log entry unless another entry for the
	// same (user, action) exists inside the window. It returns false when the
	// append was suppressed.
	CreateIfNotRecent(ctx context.Context, log *entity.ActionLog, window time.Duration) (bool, error)
	GetLast(ctx context.Context, userID, actionKey string) (*entity.ActionLog, error)
	GetLastOfEachAction(ctx context.Context, userID string) ([]LastAction, error)
}

type actionLogRepository struct{}

func NewActionLogRepository() *actionLogRepository {
	return &actionLogRepository{}
}

func (r *actionLogRepository) Create(ctx context.Context, log *entity.ActionLog) error {
	return xcontext.DB(ctx).Create(log).Error
}

func (r *actionLogRepository) CreateIfNotRecent(
	ctx context.Context, log *entity.ActionLog, window time.Duration,
) (bool, error) {
	if log.CreatedAt.IsZero() {
		log.CreatedAt = time.Now()
	}
	log.UpdatedAt = log.CreatedAt

	// A single conditional insert keeps check and append in the same
	// statement, so two concurrent claims inside the window cannot both pass.
	// The boundary entry (created exactly one window ago) no longer blocks.
	tx := xcontext.DB(ctx).Exec(`
		INSERT INTO action_logs (id, created_at, updated_at, user_id, action_key, points)
		SELECT ?, ?, ?, ?, ?, ?
		WHERE NOT EXISTS (
			SELECT 1 FROM action_logs
			WHERE user_id=? AND action_key=? AND deleted_at IS NULL AND created_at>?
		)`,
		log.ID, log.CreatedAt, log.UpdatedAt, log.UserID, log.ActionKey, log.Points,
		log.UserID, log.ActionKey, log.CreatedAt.Add(-window),
	)

	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *actionLogRepository) GetLast(
	ctx context.Context, userID, actionKey string,
) (*entity.ActionLog, error) {
	var result entity.ActionLog
	err := xcontext.DB(ctx).
		Where("user_id=? AND action_key=?", userID, actionKey).
		Order("created_at DESC").
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *actionLogRepository) GetLastOfEachAction(
	ctx context.Context, userID string,
) ([]LastAction, error) {
	var result []LastAction
	err := xcontext.DB(ctx).Model(&entity.ActionLog{}).
		Select("action_key, MAX(created_at) AS created_at").
		Where("user_id=?", userID).
		Group("action_key").
		Scan(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
