package service

import (
	"context"
	"time"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/constants"
	"github.com/mall-next/storefront/internal/logger"
)

// CartBackend 会员购物车后端接口
type CartBackend interface {
	GetMyCart(ctx context.Context, token string) (*backend.Cart, error)
	AddCartItem(ctx context.Context, token string, req backend.AddCartItemRequest) (*backend.CartItem, error)
	UpdateCartItem(ctx context.Context, token string, cartItemID int64, req backend.UpdateCartItemRequest) (*backend.CartItem, error)
	RemoveCartItem(ctx context.Context, token string, cartItemID int64) error
	ClearCart(ctx context.Context, token string) error
	SetCartItemSelection(ctx context.Context, token string, cartItemID int64, selected bool) error
	SetAllCartItemSelection(ctx context.Context, token string, selected bool) error
}

// ServerCart 会员购物车策略
// 读取走 Redis 读缓存，变更成功后失效缓存，由下一次读取重新拉取
type ServerCart struct {
	backend CartBackend
	cache   *cache.Store
	ttl     time.Duration
	session Session
}

// NewServerCart 创建会员购物车策略
func NewServerCart(client CartBackend, store *cache.Store, ttl time.Duration, session Session) *ServerCart {
	return &ServerCart{backend: client, cache: store, ttl: ttl, session: session}
}

func (c *ServerCart) Source() string {
	return constants.CartSourceServer
}

func (c *ServerCart) Load(ctx context.Context) (*CartView, error) {
	cart, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	return serverView(cart), nil
}

func (c *ServerCart) AddItem(ctx context.Context, input AddCartItemInput) error {
	if input.ProductID <= 0 || input.Quantity < 1 {
		return ErrInvalidCartItem
	}
	_, err := c.backend.AddCartItem(ctx, c.session.Token, backend.AddCartItemRequest{
		ProductID: input.ProductID,
		Quantity:  input.Quantity,
	})
	return c.afterMutation(ctx, err)
}

// UpdateQuantity 数量小于 1 时不调用后端
func (c *ServerCart) UpdateQuantity(ctx context.Context, productID int64, quantity int) error {
	if quantity < 1 {
		return nil
	}
	item, err := c.find(ctx, productID)
	if err != nil {
		return err
	}
	_, err = c.backend.UpdateCartItem(ctx, c.session.Token, item.ID, backend.UpdateCartItemRequest{Quantity: quantity})
	return c.afterMutation(ctx, err)
}

func (c *ServerCart) RemoveItem(ctx context.Context, productID int64) error {
	item, err := c.find(ctx, productID)
	if err != nil {
		return err
	}
	return c.afterMutation(ctx, c.backend.RemoveCartItem(ctx, c.session.Token, item.ID))
}

func (c *ServerCart) SetSelection(ctx context.Context, productID int64, selected *bool) error {
	item, err := c.find(ctx, productID)
	if err != nil {
		return err
	}
	target := !item.Selected
	if selected != nil {
		target = *selected
	}
	return c.afterMutation(ctx, c.backend.SetCartItemSelection(ctx, c.session.Token, item.ID, target))
}

func (c *ServerCart) SetAllSelection(ctx context.Context, selected bool) error {
	return c.afterMutation(ctx, c.backend.SetAllCartItemSelection(ctx, c.session.Token, selected))
}

// RemoveSelected 逐行删除已选中的商品，遇到失败立即返回
func (c *ServerCart) RemoveSelected(ctx context.Context) error {
	cart, err := c.fetch(ctx)
	if err != nil {
		return err
	}
	removed := 0
	for _, item := range cart.Items {
		if !item.Selected {
			continue
		}
		if err := c.backend.RemoveCartItem(ctx, c.session.Token, item.ID); err != nil {
			if removed > 0 {
				c.invalidate(ctx)
			}
			return err
		}
		removed++
	}
	if removed > 0 {
		c.invalidate(ctx)
	}
	return nil
}

func (c *ServerCart) Clear(ctx context.Context) error {
	return c.afterMutation(ctx, c.backend.ClearCart(ctx, c.session.Token))
}

// Invalidate 使会员购物车缓存失效
func (c *ServerCart) Invalidate(ctx context.Context) {
	c.invalidate(ctx)
}

func (c *ServerCart) fetch(ctx context.Context) (*backend.Cart, error) {
	if !c.session.Authenticated() {
		return nil, ErrLoginRequired
	}
	key := cache.CustomerCartKey(c.session.CustomerID)
	var cached backend.Cart
	hit, err := c.cache.GetJSON(ctx, key, &cached)
	if err != nil {
		logger.Warnw("server_cart_cache_read_failed", "customer_id", c.session.CustomerID, "error", err)
	}
	if hit {
		return &cached, nil
	}
	cart, err := c.backend.GetMyCart(ctx, c.session.Token)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		cart = &backend.Cart{CustomerID: c.session.CustomerID}
	}
	if err := c.cache.SetJSON(ctx, key, cart, c.ttl); err != nil {
		logger.Warnw("server_cart_cache_write_failed", "customer_id", c.session.CustomerID, "error", err)
	}
	return cart, nil
}

func (c *ServerCart) find(ctx context.Context, productID int64) (*backend.CartItem, error) {
	cart, err := c.fetch(ctx)
	if err != nil {
		return nil, err
	}
	for i := range cart.Items {
		if cart.Items[i].ProductID == productID {
			return &cart.Items[i], nil
		}
	}
	return nil, ErrCartItemNotFound
}

func (c *ServerCart) afterMutation(ctx context.Context, err error) error {
	if err != nil {
		return err
	}
	c.invalidate(ctx)
	return nil
}

func (c *ServerCart) invalidate(ctx context.Context) {
	if err := c.cache.Del(ctx, cache.CustomerCartKey(c.session.CustomerID)); err != nil {
		logger.Warnw("server_cart_cache_invalidate_failed", "customer_id", c.session.CustomerID, "error", err)
	}
}

func serverView(cart *backend.Cart) *CartView {
	items := make([]CartViewItem, 0, len(cart.Items))
	for _, item := range cart.Items {
		items = append(items, CartViewItem{
			CartItemID:    item.ID,
			ProductID:     item.ProductID,
			ProductName:   item.ProductName,
			ProductImage:  item.ProductImage,
			Price:         item.Price,
			Quantity:      item.Quantity,
			StockQuantity: item.StockQuantity,
			Selected:      item.Selected,
		})
	}
	return buildCartView(constants.CartSourceServer, true, items)
}
