package service

import (
	"context"
	"strings"
	"time"

	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/repository"
)

// GuestCartCleanupService 清理闲置的游客购物车
type GuestCartCleanupService struct {
	repo repository.GuestCartRepository
	ttl  time.Duration
	now  func() time.Time
}

// NewGuestCartCleanupService 创建清理服务
func NewGuestCartCleanupService(repo repository.GuestCartRepository, ttl time.Duration) *GuestCartCleanupService {
	if ttl <= 0 {
		ttl = 30 * 24 * time.Hour
	}
	return &GuestCartCleanupService{repo: repo, ttl: ttl, now: time.Now}
}

// ExpireGuestCart 购物车闲置超过 TTL 时删除
// 未过期时返回剩余时长，由调用方重新调度
func (s *GuestCartCleanupService) ExpireGuestCart(ctx context.Context, guestID string) (bool, time.Duration, error) {
	guestID = strings.TrimSpace(guestID)
	if guestID == "" {
		return false, 0, ErrGuestIDRequired
	}
	record, err := s.repo.GetByGuestID(ctx, guestID)
	if err != nil {
		return false, 0, err
	}
	if record == nil {
		return true, 0, nil
	}
	deadline := record.UpdatedAt.Add(s.ttl)
	now := s.now()
	if deadline.After(now) {
		return false, deadline.Sub(now), nil
	}
	if err := s.repo.DeleteByGuestID(ctx, guestID); err != nil {
		return false, 0, err
	}
	logger.Infow("guest_cart_expired", "guest_id", guestID, "updated_at", record.UpdatedAt)
	return true, 0, nil
}

// SweepStale 批量删除闲置超过 TTL 的游客购物车
func (s *GuestCartCleanupService) SweepStale(ctx context.Context) (int64, error) {
	deleted, err := s.repo.DeleteStaleBefore(ctx, s.now().Add(-s.ttl))
	if err != nil {
		return 0, err
	}
	if deleted > 0 {
		logger.Infow("guest_cart_sweep_done", "deleted", deleted)
	}
	return deleted, nil
}
