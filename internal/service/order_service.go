package service

import (
	"context"
	"strings"
	"time"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/logger"
)

// OrderBackend 订单与支付后端接口
type OrderBackend interface {
	ListMyOrders(ctx context.Context, token string, page, size int) (*backend.Page[backend.Order], error)
	GetOrder(ctx context.Context, token string, orderID int64) (*backend.Order, error)
	CancelOrder(ctx context.Context, token string, orderID int64, reason string) (*backend.Order, error)
	ConfirmOrder(ctx context.Context, token string, orderID int64) (*backend.Order, error)
	GetPaymentByOrder(ctx context.Context, token string, orderID int64) (*backend.Payment, error)
	CancelPayment(ctx context.Context, token, paymentKey, reason string) (*backend.Payment, error)
}

// OrderService 会员订单与支付查询
type OrderService struct {
	backend OrderBackend
	cache   *cache.Store
	ttl     time.Duration
}

// NewOrderService 创建订单服务
func NewOrderService(client OrderBackend, store *cache.Store, ttl time.Duration) *OrderService {
	return &OrderService{backend: client, cache: store, ttl: ttl}
}

// OrderDetail 订单详情及可执行操作
type OrderDetail struct {
	Order   *backend.Order `json:"order"`
	Actions OrderActions   `json:"actions"`
}

// List 分页获取我的订单
func (s *OrderService) List(ctx context.Context, session Session, page, size int) (*backend.Page[backend.Order], error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	if page < 0 {
		page = 0
	}
	if size <= 0 {
		size = 10
	}
	if size > 100 {
		size = 100
	}
	key := cache.CustomerOrdersKey(session.CustomerID)
	field := cache.OrderPageField(page, size)
	var cached backend.Page[backend.Order]
	if hit, err := s.cache.HGetJSON(ctx, key, field, &cached); err != nil {
		logger.Warnw("order_cache_read_failed", "customer_id", session.CustomerID, "error", err)
	} else if hit {
		return &cached, nil
	}
	result, err := s.backend.ListMyOrders(ctx, session.Token, page, size)
	if err != nil {
		return nil, err
	}
	if err := s.cache.HSetJSON(ctx, key, field, result, s.ttl); err != nil {
		logger.Warnw("order_cache_write_failed", "customer_id", session.CustomerID, "error", err)
	}
	return result, nil
}

// Get 获取订单详情
func (s *OrderService) Get(ctx context.Context, session Session, orderID int64) (*OrderDetail, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	key := cache.CustomerOrdersKey(session.CustomerID)
	field := cache.OrderDetailField(orderID)
	var cached backend.Order
	if hit, err := s.cache.HGetJSON(ctx, key, field, &cached); err != nil {
		logger.Warnw("order_cache_read_failed", "customer_id", session.CustomerID, "error", err)
	} else if hit {
		return &OrderDetail{Order: &cached, Actions: ActionsFor(cached.Status)}, nil
	}
	order, err := s.backend.GetOrder(ctx, session.Token, orderID)
	if err != nil {
		return nil, err
	}
	if err := s.cache.HSetJSON(ctx, key, field, order, s.ttl); err != nil {
		logger.Warnw("order_cache_write_failed", "customer_id", session.CustomerID, "error", err)
	}
	return &OrderDetail{Order: order, Actions: ActionsFor(order.Status)}, nil
}

// Cancel 取消订单，仅待支付或已支付状态可取消
func (s *OrderService) Cancel(ctx context.Context, session Session, orderID int64, reason string) (*OrderDetail, error) {
	current, err := s.fresh(ctx, session, orderID)
	if err != nil {
		return nil, err
	}
	if !ActionsFor(current.Status).CanCancel {
		return nil, ErrOrderNotCancelable
	}
	order, err := s.backend.CancelOrder(ctx, session.Token, orderID, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, session.CustomerID)
	logger.Infow("order_cancelled", "customer_id", session.CustomerID, "order_id", orderID)
	return &OrderDetail{Order: order, Actions: ActionsFor(order.Status)}, nil
}

// Confirm 确认收货，仅已送达状态可确认
func (s *OrderService) Confirm(ctx context.Context, session Session, orderID int64) (*OrderDetail, error) {
	current, err := s.fresh(ctx, session, orderID)
	if err != nil {
		return nil, err
	}
	if !ActionsFor(current.Status).CanConfirm {
		return nil, ErrOrderNotConfirmable
	}
	order, err := s.backend.ConfirmOrder(ctx, session.Token, orderID)
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, session.CustomerID)
	logger.Infow("order_confirmed", "customer_id", session.CustomerID, "order_id", orderID)
	return &OrderDetail{Order: order, Actions: ActionsFor(order.Status)}, nil
}

// PaymentByOrder 查询订单支付记录
func (s *OrderService) PaymentByOrder(ctx context.Context, session Session, orderID int64) (*backend.Payment, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	return s.backend.GetPaymentByOrder(ctx, session.Token, orderID)
}

// CancelPayment 取消支付
func (s *OrderService) CancelPayment(ctx context.Context, session Session, paymentKey, reason string) (*backend.Payment, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	paymentKey = strings.TrimSpace(paymentKey)
	if paymentKey == "" {
		return nil, ErrPaymentConfirmInvalid
	}
	payment, err := s.backend.CancelPayment(ctx, session.Token, paymentKey, strings.TrimSpace(reason))
	if err != nil {
		return nil, err
	}
	s.invalidate(ctx, session.CustomerID)
	logger.Infow("payment_cancelled", "customer_id", session.CustomerID, "order_id", payment.OrderID)
	return payment, nil
}

// fresh 直接从后端读取订单，状态校验不使用缓存
func (s *OrderService) fresh(ctx context.Context, session Session, orderID int64) (*backend.Order, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	if orderID <= 0 {
		return nil, ErrInvalidOrderID
	}
	return s.backend.GetOrder(ctx, session.Token, orderID)
}

func (s *OrderService) invalidate(ctx context.Context, customerID int64) {
	if err := s.cache.Del(ctx, cache.CustomerOrdersKey(customerID)); err != nil {
		logger.Warnw("order_cache_invalidate_failed", "customer_id", customerID, "error", err)
	}
}
