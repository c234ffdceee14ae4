package repository

import (
	"Postwise/internal/model"
	"context"

	pkgerrors "github.com/pkg/errors"
	"gorm.io/gorm"
)

type OptimalTimeRepo interface {
	ReplaceForAccount(ctx context.Context, accountID uint64, times []*model.OptimalTime) error
	ListByAccount(ctx context.Context, accountID uint64) ([]*model.OptimalTime, error)
}

type optimalTimeRepoImpl struct {
	db *gorm.DB
}

func NewOptimalTimeRepository(db *gorm.DB) OptimalTimeRepo {
	return &optimalTimeRepoImpl{db: db}
}

// ReplaceForAccount 删除账号全部推荐时段后写入新集合
func (r *optimalTimeRepoImpl) ReplaceForAccount(ctx context.Context, accountID uint64, times []*model.OptimalTime) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("account_id = ?", accountID).Delete(&model.OptimalTime{}).Error; err != nil {
			return pkgerrors.Wrap(err, "delete optimal times")
		}
		if len(times) == 0 {
			return nil
		}
		if err := tx.Create(times).Error; err != nil {
			return pkgerrors.Wrap(err, "insert optimal times")
		}
		return nil
	})
}

func (r *optimalTimeRepoImpl) ListByAccount(ctx context.Context, accountID uint64) ([]*model.OptimalTime, error) {
	times := make([]*model.OptimalTime, 0)
	result := r.db.WithContext(ctx).
		Where("account_id = ?", accountID).
		Order("day_of_week ASC").
		Order("`rank` ASC").
		Find(&times)
	return times, result.Error
}
