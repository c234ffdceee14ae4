package repository

import (
	"Postwise/internal/model"
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

type SocialAccountRepo interface {
	ListActiveAccounts(ctx context.Context, platform string) ([]*model.SocialAccount, error)
	GetAccount(ctx context.Context, id uint64) (*model.SocialAccount, error)
	UpdateLastSynced(ctx context.Context, id uint64, syncedAt time.Time) error
}

type socialAccountRepoImpl struct {
	db *gorm.DB
}

func NewSocialAccountRepository(db *gorm.DB) SocialAccountRepo {
	return &socialAccountRepoImpl{db: db}
}

func (r *socialAccountRepoImpl) ListActiveAccounts(ctx context.Context, platform string) ([]*model.SocialAccount, error) {
	accounts := make([]*model.SocialAccount, 0)
	err := r.db.WithContext(ctx).
		Where("platform = ? AND is_active = ?", platform, true).
		Order("id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *socialAccountRepoImpl) GetAccount(ctx context.Context, id uint64) (*model.SocialAccount, error) {
	var account model.SocialAccount
	err := r.db.WithContext(ctx).First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &account, nil
}

func (r *socialAccountRepoImpl) UpdateLastSynced(ctx context.Context, id uint64, syncedAt time.Time) error {
	return r.db.WithContext(ctx).Model(&model.SocialAccount{}).
		Where("id = ?", id).
		Update("last_synced_at", syncedAt).Error
}
