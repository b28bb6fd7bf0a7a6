package service

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/models"
	"github.com/mall-next/storefront/internal/repository"

	"github.com/alicebob/miniredis/v2"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// fakeBackend 内存版商城后端
type fakeBackend struct {
	mu           sync.Mutex
	cart         backend.Cart
	nextItemID   int64
	getCartCalls int
	calls        []string
	orders       map[int64]*backend.Order
	created      *backend.CreateOrderRequest
	discount     models.Money
	omitTotal    bool
	failures     map[string]error
}

func newFakeBackend() *fakeBackend {
	return &fakeBackend{
		nextItemID: 100,
		orders:     map[int64]*backend.Order{},
		failures:   map[string]error{},
	}
}

func (f *fakeBackend) record(name string) error {
	f.calls = append(f.calls, name)
	return f.failures[name]
}

func (f *fakeBackend) callCount(name string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, c := range f.calls {
		if c == name {
			n++
		}
	}
	return n
}

func (f *fakeBackend) seedCartItem(productID int64, name string, price int64, qty int, selected bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextItemID++
	f.cart.Items = append(f.cart.Items, backend.CartItem{
		ID:            f.nextItemID,
		ProductID:     productID,
		ProductName:   name,
		Price:         models.NewMoney(price),
		Quantity:      qty,
		StockQuantity: 99,
		Selected:      selected,
	})
}

func (f *fakeBackend) itemIndex(cartItemID int64) int {
	for i := range f.cart.Items {
		if f.cart.Items[i].ID == cartItemID {
			return i
		}
	}
	return -1
}

func (f *fakeBackend) GetMyCart(ctx context.Context, token string) (*backend.Cart, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.getCartCalls++
	if err := f.record("GetMyCart"); err != nil {
		return nil, err
	}
	cart := f.cart
	cart.Items = append([]backend.CartItem(nil), f.cart.Items...)
	return &cart, nil
}

func (f *fakeBackend) AddCartItem(ctx context.Context, token string, req backend.AddCartItemRequest) (*backend.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("AddCartItem"); err != nil {
		return nil, err
	}
	for i := range f.cart.Items {
		if f.cart.Items[i].ProductID == req.ProductID {
			f.cart.Items[i].Quantity += req.Quantity
			item := f.cart.Items[i]
			return &item, nil
		}
	}
	f.nextItemID++
	item := backend.CartItem{
		ID:          f.nextItemID,
		ProductID:   req.ProductID,
		ProductName: fmt.Sprintf("product-%d", req.ProductID),
		Price:       models.NewMoney(1000),
		Quantity:    req.Quantity,
		Selected:    true,
	}
	f.cart.Items = append(f.cart.Items, item)
	return &item, nil
}

func (f *fakeBackend) UpdateCartItem(ctx context.Context, token string, cartItemID int64, req backend.UpdateCartItemRequest) (*backend.CartItem, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("UpdateCartItem"); err != nil {
		return nil, err
	}
	idx := f.itemIndex(cartItemID)
	if idx < 0 {
		return nil, &backend.APIError{Status: 404, Code: "CART_ITEM_NOT_FOUND", Message: "not found"}
	}
	f.cart.Items[idx].Quantity = req.Quantity
	item := f.cart.Items[idx]
	return &item, nil
}

func (f *fakeBackend) RemoveCartItem(ctx context.Context, token string, cartItemID int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("RemoveCartItem"); err != nil {
		return err
	}
	idx := f.itemIndex(cartItemID)
	if idx >= 0 {
		f.cart.Items = append(f.cart.Items[:idx], f.cart.Items[idx+1:]...)
	}
	return nil
}

func (f *fakeBackend) ClearCart(ctx context.Context, token string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ClearCart"); err != nil {
		return err
	}
	f.cart.Items = nil
	return nil
}

func (f *fakeBackend) SetCartItemSelection(ctx context.Context, token string, cartItemID int64, selected bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetCartItemSelection"); err != nil {
		return err
	}
	if idx := f.itemIndex(cartItemID); idx >= 0 {
		f.cart.Items[idx].Selected = selected
	}
	return nil
}

func (f *fakeBackend) SetAllCartItemSelection(ctx context.Context, token string, selected bool) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("SetAllCartItemSelection"); err != nil {
		return err
	}
	for i := range f.cart.Items {
		f.cart.Items[i].Selected = selected
	}
	return nil
}

func (f *fakeBackend) CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CreateOrder"); err != nil {
		return nil, err
	}
	f.created = &req
	subtotal := models.NewMoney(0)
	for _, item := range req.Items {
		for _, line := range f.cart.Items {
			if line.ProductID == item.ProductID {
				subtotal = subtotal.Plus(line.Price.Times(item.Quantity))
			}
		}
	}
	order := &backend.Order{
		ID:              int64(len(f.orders) + 1),
		OrderNumber:     fmt.Sprintf("ORD-%d", len(f.orders)+1),
		Status:          "PENDING",
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Subtotal:        subtotal,
		ShippingFee:     req.ShippingFee,
		CouponID:        req.CouponID,
	}
	if req.CouponID != nil {
		order.DiscountAmount = f.discount
	}
	if !f.omitTotal {
		total := subtotal.Plus(req.ShippingFee).Minus(order.DiscountAmount)
		order.TotalAmount = &total
	}
	f.orders[order.ID] = order
	return order, nil
}

func (f *fakeBackend) ConfirmPayment(ctx context.Context, token string, req backend.PaymentConfirmRequest) (*backend.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ConfirmPayment"); err != nil {
		return nil, err
	}
	return &backend.Payment{ID: 1, OrderID: 7, PaymentKey: req.PaymentKey, Amount: req.Amount, Status: "DONE"}, nil
}

func (f *fakeBackend) CalculateDiscount(ctx context.Context, token string, couponID int64, req backend.CalculateDiscountRequest) (*backend.CouponDiscount, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CalculateDiscount"); err != nil {
		return nil, err
	}
	return &backend.CouponDiscount{CouponID: couponID, DiscountAmount: f.discount}, nil
}

func (f *fakeBackend) ValidateCoupon(ctx context.Context, token string, req backend.ValidateCouponRequest) (*backend.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ValidateCoupon"); err != nil {
		return nil, err
	}
	return &backend.Coupon{ID: 3, Code: req.Code, DiscountType: "FIXED", DiscountValue: models.NewMoney(2000)}, nil
}

func (f *fakeBackend) ListAvailableCoupons(ctx context.Context, token string) ([]backend.Coupon, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListAvailableCoupons"); err != nil {
		return nil, err
	}
	return nil, nil
}

func (f *fakeBackend) ListMyOrders(ctx context.Context, token string, page, size int) (*backend.Page[backend.Order], error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ListMyOrders"); err != nil {
		return nil, err
	}
	result := &backend.Page[backend.Order]{PageNumber: page, PageSize: size}
	for _, order := range f.orders {
		result.Content = append(result.Content, *order)
	}
	result.TotalElements = int64(len(result.Content))
	return result, nil
}

func (f *fakeBackend) GetOrder(ctx context.Context, token string, orderID int64) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetOrder"); err != nil {
		return nil, err
	}
	order, ok := f.orders[orderID]
	if !ok {
		return nil, &backend.APIError{Status: 404, Code: "ORDER_NOT_FOUND", Message: "주문을 찾을 수 없습니다."}
	}
	copied := *order
	return &copied, nil
}

func (f *fakeBackend) CancelOrder(ctx context.Context, token string, orderID int64, reason string) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CancelOrder"); err != nil {
		return nil, err
	}
	order := f.orders[orderID]
	order.Status = "CANCELLED"
	copied := *order
	return &copied, nil
}

func (f *fakeBackend) ConfirmOrder(ctx context.Context, token string, orderID int64) (*backend.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("ConfirmOrder"); err != nil {
		return nil, err
	}
	order := f.orders[orderID]
	order.Status = "COMPLETED"
	copied := *order
	return &copied, nil
}

func (f *fakeBackend) GetPaymentByOrder(ctx context.Context, token string, orderID int64) (*backend.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("GetPaymentByOrder"); err != nil {
		return nil, err
	}
	return &backend.Payment{ID: 1, OrderID: orderID, PaymentKey: "pk-1", Status: "DONE"}, nil
}

func (f *fakeBackend) CancelPayment(ctx context.Context, token, paymentKey, reason string) (*backend.Payment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.record("CancelPayment"); err != nil {
		return nil, err
	}
	return &backend.Payment{ID: 1, OrderID: 1, PaymentKey: paymentKey, Status: "CANCELED"}, nil
}

// fakeScheduler 记录入队的过期任务
type fakeScheduler struct {
	mu     sync.Mutex
	guests []string
	delays []time.Duration
}

func (s *fakeScheduler) EnqueueGuestCartExpire(guestID string, delay time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.guests = append(s.guests, guestID)
	s.delays = append(s.delays, delay)
	return nil
}

func setupGuestRepo(t *testing.T) (*repository.GormGuestCartRepository, *gorm.DB) {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	return repository.NewGuestCartRepository(db), db
}

func setupCache(t *testing.T) (*cache.Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return cache.NewStore(client, "test"), mr
}

func memberSession() Session {
	return Session{CustomerID: 7, CustomerName: "홍길동", Token: "tok-7"}
}
