package service

import (
	"context"
	"strings"
	"time"

	"github.com/mall-next/storefront/internal/cartstore"
	"github.com/mall-next/storefront/internal/constants"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/models"
	"github.com/mall-next/storefront/internal/repository"
)

// GuestCartExpiryScheduler 游客购物车过期任务调度
type GuestCartExpiryScheduler interface {
	EnqueueGuestCartExpire(guestID string, delay time.Duration) error
}

// LocalCart 游客购物车策略
// 每次操作：读取记录 → 在 cartstore 上变更 → 显式保存
type LocalCart struct {
	repo      repository.GuestCartRepository
	scheduler GuestCartExpiryScheduler
	guestID   string
	ttl       time.Duration
	now       func() time.Time
}

// NewLocalCart 创建游客购物车策略
func NewLocalCart(repo repository.GuestCartRepository, scheduler GuestCartExpiryScheduler, guestID string, ttl time.Duration) *LocalCart {
	return &LocalCart{
		repo:      repo,
		scheduler: scheduler,
		guestID:   strings.TrimSpace(guestID),
		ttl:       ttl,
		now:       time.Now,
	}
}

func (l *LocalCart) Source() string {
	return constants.CartSourceLocal
}

// Load 读取游客购物车，记录不存在时返回空购物车
func (l *LocalCart) Load(ctx context.Context) (*CartView, error) {
	store, _, err := l.load(ctx)
	if err != nil {
		return nil, err
	}
	return localView(store), nil
}

func (l *LocalCart) AddItem(ctx context.Context, input AddCartItemInput) error {
	if input.ProductID <= 0 || input.Quantity < 1 {
		return ErrInvalidCartItem
	}
	item := models.CartLineItem{
		ProductID:     input.ProductID,
		ProductName:   strings.TrimSpace(input.ProductName),
		ProductImage:  strings.TrimSpace(input.ProductImage),
		Price:         input.Price,
		StockQuantity: input.StockQuantity,
	}
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		return s.AddItem(item, input.Quantity), nil
	})
}

// UpdateQuantity 数量小于 1 时不做任何修改
func (l *LocalCart) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		if _, ok := s.Find(productID); !ok {
			return false, ErrCartItemNotFound
		}
		return s.UpdateQuantity(productID, quantity), nil
	})
}

func (l *LocalCart) RemoveItem(ctx context.Context, productID int64) error {
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		return s.RemoveItem(productID), nil
	})
}

func (l *LocalCart) SetSelection(ctx context.Context, productID int64, selected *bool) error {
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		if _, ok := s.Find(productID); !ok {
			return false, ErrCartItemNotFound
		}
		if selected == nil {
			return s.ToggleSelection(productID), nil
		}
		return s.SetSelection(productID, *selected), nil
	})
}

func (l *LocalCart) SetAllSelection(ctx context.Context, selected bool) error {
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		if s.Len() == 0 {
			return false, nil
		}
		s.ToggleAllSelection(selected)
		return true, nil
	})
}

func (l *LocalCart) RemoveSelected(ctx context.Context) error {
	return l.mutate(ctx, func(s *cartstore.Store) (bool, error) {
		return s.RemoveSelectedItems() > 0, nil
	})
}

// Clear 清空购物车并删除持久化记录
func (l *LocalCart) Clear(ctx context.Context) error {
	if l.guestID == "" {
		return ErrGuestIDRequired
	}
	return l.repo.DeleteByGuestID(ctx, l.guestID)
}

func (l *LocalCart) load(ctx context.Context) (*cartstore.Store, *models.GuestCart, error) {
	if l.guestID == "" {
		return nil, nil, ErrGuestIDRequired
	}
	record, err := l.repo.GetByGuestID(ctx, l.guestID)
	if err != nil {
		return nil, nil, err
	}
	if record == nil {
		return cartstore.New(cartstore.WithClock(l.now)), nil, nil
	}
	store, err := cartstore.Decode([]byte(record.Payload), cartstore.WithClock(l.now))
	if err != nil {
		// 损坏的记录按空购物车处理，下次保存时覆盖
		logger.Warnw("guest_cart_payload_corrupted", "guest_id", l.guestID, "error", err)
		return cartstore.New(cartstore.WithClock(l.now)), record, nil
	}
	return store, record, nil
}

func (l *LocalCart) mutate(ctx context.Context, fn func(*cartstore.Store) (bool, error)) error {
	store, record, err := l.load(ctx)
	if err != nil {
		return err
	}
	changed, err := fn(store)
	if err != nil || !changed {
		return err
	}
	return l.save(ctx, store, record == nil)
}

func (l *LocalCart) save(ctx context.Context, store *cartstore.Store, created bool) error {
	payload, err := cartstore.Encode(store)
	if err != nil {
		return err
	}
	record := &models.GuestCart{
		GuestID:   l.guestID,
		Payload:   string(payload),
		ItemCount: store.Len(),
	}
	if err := l.repo.Save(ctx, record); err != nil {
		return err
	}
	if created && l.scheduler != nil && l.ttl > 0 {
		if err := l.scheduler.EnqueueGuestCartExpire(l.guestID, l.ttl); err != nil {
			logger.Warnw("guest_cart_expire_enqueue_failed", "guest_id", l.guestID, "error", err)
		}
	}
	return nil
}

func localView(store *cartstore.Store) *CartView {
	lines := store.Items()
	items := make([]CartViewItem, 0, len(lines))
	for _, line := range lines {
		addedAt := line.AddedAt
		items = append(items, CartViewItem{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			ProductImage:  line.ProductImage,
			Price:         line.Price,
			Quantity:      line.Quantity,
			StockQuantity: line.StockQuantity,
			Selected:      line.Selected,
			AddedAt:       &addedAt,
		})
	}
	return buildCartView(constants.CartSourceLocal, false, items)
}
