package repository

import (
	"context"
	"errors"

	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type CompletedActionRepository interface {
	// CreateIfAbsent marks the action as completed for the user. It returns
	// false when the completion row already existed.
	CreateIfAbsent(ctx context.Context, completed *entity.CompletedAction) (bool, error)
	Get(ctx context.Context, userID, actionKey string) (*entity.CompletedAction, error)
	GetByUserID(ctx context.Context, userID string) ([]entity.CompletedAction, error)
}

type completedActionRepository struct{}

func NewCompletedActionRepository() *completedActionRepository {
	return &completedActionRepository{}
}

func (r *completedActionRepository) CreateIfAbsent(
	ctx context.Context, completed *entity.CompletedAction,
) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(completed)

	if tx.Error != nil {
		return false, tx.Error
	}

	if tx.RowsAffected > 1 {
		return false, errors.New("the number of affected rows is invalid")
	}

	return tx.RowsAffected == 1, nil
}

func (r *completedActionRepository) Get(
	ctx context.Context, userID, actionKey string,
) (*entity.CompletedAction, error) {
	var result entity.CompletedAction
	err := xcontext.DB(ctx).
		Where("user_id=? AND action_key=?", userID, actionKey).
		Take(&result).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *completedActionRepository) GetByUserID(
	ctx context.Context, userID string,
) ([]entity.CompletedAction, error) {
	var result []entity.CompletedAction
	err := xcontext.DB(ctx).Where("user_id=?", userID).Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}
