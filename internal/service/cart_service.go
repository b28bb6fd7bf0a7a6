package service

import (
	"context"
	"time"

	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/repository"
)

// CartServiceOptions 购物车服务配置
type CartServiceOptions struct {
	GuestCartTTL   time.Duration
	ServerCacheTTL time.Duration
}

// CartService 购物车门面，按会话选择游客或会员实现
type CartService struct {
	guestRepo repository.GuestCartRepository
	scheduler GuestCartExpiryScheduler
	backend   CartBackend
	cache     *cache.Store
	options   CartServiceOptions
}

// NewCartService 创建购物车服务
func NewCartService(guestRepo repository.GuestCartRepository, scheduler GuestCartExpiryScheduler, client CartBackend, store *cache.Store, options CartServiceOptions) *CartService {
	return &CartService{
		guestRepo: guestRepo,
		scheduler: scheduler,
		backend:   client,
		cache:     store,
		options:   options,
	}
}

// For 为会话选择购物车实现，一次请求内只选择一次
func (s *CartService) For(session Session) CartStrategy {
	if session.Authenticated() {
		return NewServerCart(s.backend, s.cache, s.options.ServerCacheTTL, session)
	}
	return NewLocalCart(s.guestRepo, s.scheduler, session.GuestID, s.options.GuestCartTTL)
}

// View 读取购物车视图
func (s *CartService) View(ctx context.Context, session Session) (*CartView, error) {
	return s.For(session).Load(ctx)
}

// AddItem 加入购物车
func (s *CartService) AddItem(ctx context.Context, session Session, input AddCartItemInput) (*CartView, error) {
	return s.mutate(ctx, session, "cart_item_add", func(c CartStrategy) error {
		return c.AddItem(ctx, input)
	}, "product_id", input.ProductID, "quantity", input.Quantity)
}

// UpdateQuantity 修改数量
func (s *CartService) UpdateQuantity(ctx context.Context, session Session, productID int64, quantity int) (*CartView, error) {
	return s.mutate(ctx, session, "cart_item_update", func(c CartStrategy) error {
		return c.UpdateQuantity(ctx, productID, quantity)
	}, "product_id", productID, "quantity", quantity)
}

// RemoveItem 移除商品
func (s *CartService) RemoveItem(ctx context.Context, session Session, productID int64) (*CartView, error) {
	return s.mutate(ctx, session, "cart_item_remove", func(c CartStrategy) error {
		return c.RemoveItem(ctx, productID)
	}, "product_id", productID)
}

// SetSelection 设置或切换选中状态
func (s *CartService) SetSelection(ctx context.Context, session Session, productID int64, selected *bool) (*CartView, error) {
	return s.mutate(ctx, session, "cart_item_select", func(c CartStrategy) error {
		return c.SetSelection(ctx, productID, selected)
	}, "product_id", productID)
}

// SetAllSelection 全选或全不选
func (s *CartService) SetAllSelection(ctx context.Context, session Session, selected bool) (*CartView, error) {
	return s.mutate(ctx, session, "cart_select_all", func(c CartStrategy) error {
		return c.SetAllSelection(ctx, selected)
	}, "selected", selected)
}

// RemoveSelected 删除已选中的商品
func (s *CartService) RemoveSelected(ctx context.Context, session Session) (*CartView, error) {
	return s.mutate(ctx, session, "cart_remove_selected", func(c CartStrategy) error {
		return c.RemoveSelected(ctx)
	})
}

// Clear 清空购物车
func (s *CartService) Clear(ctx context.Context, session Session) (*CartView, error) {
	return s.mutate(ctx, session, "cart_clear", func(c CartStrategy) error {
		return c.Clear(ctx)
	})
}

// InvalidateServerCart 使会员购物车缓存失效
func (s *CartService) InvalidateServerCart(ctx context.Context, customerID int64) {
	if customerID <= 0 {
		return
	}
	if err := s.cache.Del(ctx, cache.CustomerCartKey(customerID)); err != nil {
		logger.Warnw("server_cart_cache_invalidate_failed", "customer_id", customerID, "error", err)
	}
}

func (s *CartService) mutate(ctx context.Context, session Session, action string, fn func(CartStrategy) error, kv ...interface{}) (*CartView, error) {
	strategy := s.For(session)
	fields := append([]interface{}{
		"action", action,
		"source", strategy.Source(),
		"customer_id", session.CustomerID,
		"guest_id", session.GuestID,
	}, kv...)
	if err := fn(strategy); err != nil {
		logger.With(fields...).Warnw("cart_mutation_failed", "error", err)
		return nil, err
	}
	logger.With(fields...).Infow("cart_mutation_applied")
	return strategy.Load(ctx)
}
