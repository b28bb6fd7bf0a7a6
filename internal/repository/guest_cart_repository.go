package repository

import (
	"context"
	"errors"
	"time"

	"github.com/mall-next/storefront/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GuestCartRepository 游客购物车数据访问接口
type GuestCartRepository interface {
	GetByGuestID(ctx context.Context, guestID string) (*models.GuestCart, error)
	Save(ctx context.Context, cart *models.GuestCart) error
	DeleteByGuestID(ctx context.Context, guestID string) error
	DeleteStaleBefore(ctx context.Context, before time.Time) (int64, error)
}

// GormGuestCartRepository GORM 实现
type GormGuestCartRepository struct {
	db *gorm.DB
}

// NewGuestCartRepository 创建游客购物车仓库
func NewGuestCartRepository(db *gorm.DB) *GormGuestCartRepository {
	return &GormGuestCartRepository{db: db}
}

// GetByGuestID 按游客 ID 获取购物车，不存在时返回 nil
func (r *GormGuestCartRepository) GetByGuestID(ctx context.Context, guestID string) (*models.GuestCart, error) {
	var cart models.GuestCart
	err := r.db.WithContext(ctx).Where("guest_id = ?", guestID).First(&cart).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// Save 按游客 ID 写入整份购物车（后写覆盖）
func (r *GormGuestCartRepository) Save(ctx context.Context, cart *models.GuestCart) error {
	if cart == nil {
		return nil
	}
	now := time.Now()
	if cart.CreatedAt.IsZero() {
		cart.CreatedAt = now
	}
	cart.UpdatedAt = now
	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "guest_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"payload", "item_count", "updated_at"}),
	}).Create(cart).Error
}

// DeleteByGuestID 删除游客购物车
func (r *GormGuestCartRepository) DeleteByGuestID(ctx context.Context, guestID string) error {
	return r.db.WithContext(ctx).Where("guest_id = ?", guestID).Delete(&models.GuestCart{}).Error
}

// DeleteStaleBefore 清理指定时间之前未更新的游客购物车
func (r *GormGuestCartRepository) DeleteStaleBefore(ctx context.Context, before time.Time) (int64, error) {
	result := r.db.WithContext(ctx).Where("updated_at < ?", before).Delete(&models.GuestCart{})
	return result.RowsAffected, result.Error
}
