package repository

import (
	"context"
	"errors"
	"time"

	"github.com/pointpass/backend/internal/entity"
	"github.com/pointpass/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error)
	GetByID(ctx context.Context, id string) (*entity.User, error)
	GetByAuthSubject(ctx context.Context, subject string) (*entity.User, error)
	GetBySocialID(ctx context.Context, socialID string) (*entity.User, error)
	GetByReferralCode(ctx context.Context, code string) (*entity.User, error)
	UpdateWalletByID(ctx context.Context, id, walletAddress string) error
	IncreasePoints(ctx context.Context, id string, points uint64) error
	IncreaseReferralCount(ctx context.Context, id string) error
	UpdateLastCheckIn(ctx context.Context, id string, at time.Time) error
	UpdateLastDailyPost(ctx context.Context, id string, lastDailyPost entity.Map) error
	Count(ctx context.Context) (int64, error)
	GetByPointsDesc(ctx context.Context, offset, limit int) ([]entity.User, error)
	CountWithMorePoints(ctx context.Context, points uint64) (int64, error)
}

type userRepository struct{}

func NewUserRepository() *userRepository {
	return &userRepository{}
}

func (r *userRepository) Create(ctx context.Context, user *entity.User) error {
	return xcontext.DB(ctx).Create(user).Error
}

// CreateIfAbsent inserts the user unless a unique column already holds the
// value, and reports whether the row was inserted. The losing side of two
// concurrent registrations sees false instead of a duplicate-key error.
func (r *userRepository) CreateIfAbsent(ctx context.Context, user *entity.User) (bool, error) {
	tx := xcontext.DB(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(user)
	if tx.Error != nil {
		return false, tx.Error
	}

	return tx.RowsAffected == 1, nil
}

func (r *userRepository) GetByID(ctx context.Context, id string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByAuthSubject(ctx context.Context, subject string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "auth_subject=?", subject).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetBySocialID(ctx context.Context, socialID string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "social_id=?", socialID).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) GetByReferralCode(ctx context.Context, code string) (*entity.User, error) {
	var result entity.User
	if err := xcontext.DB(ctx).Take(&result, "referral_code=?", code).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *userRepository) UpdateWalletByID(ctx context.Context, id, walletAddress string) error {
	return xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("wallet_address", walletAddress).Error
}

func (r *userRepository) IncreasePoints(ctx context.Context, id string, points uint64) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("points", gorm.Expr("points+?", points)))
}

func (r *userRepository) IncreaseReferralCount(ctx context.Context, id string) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("referral_count", gorm.Expr("referral_count+1")))
}

func (r *userRepository) UpdateLastCheckIn(ctx context.Context, id string, at time.Time) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("last_check_in_at", at))
}

func (r *userRepository) UpdateLastDailyPost(
	ctx context.Context, id string, lastDailyPost entity.Map,
) error {
	return updateOne(xcontext.DB(ctx).
		Model(&entity.User{}).
		Where("id=?", id).
		Update("last_daily_post", lastDailyPost))
}

func (r *userRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := xcontext.DB(ctx).Model(&entity.User{}).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (r *userRepository) GetByPointsDesc(
	ctx context.Context, offset, limit int,
) ([]entity.User, error) {
	var result []entity.User
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Order("points DESC, created_at ASC").
		Offset(offset).Limit(limit).
		Find(&result).Error
	if err != nil {
		return nil, err
	}

	return result, nil
}

func (r *userRepository) CountWithMorePoints(ctx context.Context, points uint64) (int64, error) {
	var count int64
	err := xcontext.DB(ctx).Model(&entity.User{}).
		Where("points>?", points).
		Count(&count).Error
	if err != nil {
		return 0, err
	}

	return count, nil
}

func updateOne(tx *gorm.DB) error {
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected > 1 {
		return errors.New("the number of affected rows is invalid")
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}
