package service

import (
	"context"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/config"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/models"
)

// CheckoutBackend 结算相关后端接口
type CheckoutBackend interface {
	CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.Order, error)
	ConfirmPayment(ctx context.Context, token string, req backend.PaymentConfirmRequest) (*backend.Payment, error)
}

// CheckoutService 结算流程
type CheckoutService struct {
	carts       *CartService
	coupons     *CouponService
	backend     CheckoutBackend
	cache       *cache.Store
	policy      ShippingPolicy
	successPath string
	failPath    string
}

// NewCheckoutService 创建结算服务
func NewCheckoutService(carts *CartService, coupons *CouponService, client CheckoutBackend, store *cache.Store, cfg config.CheckoutConfig) *CheckoutService {
	successPath := strings.TrimSpace(cfg.SuccessPath)
	if successPath == "" {
		successPath = "/orders/%d/complete"
	}
	failPath := strings.TrimSpace(cfg.FailPath)
	if failPath == "" {
		failPath = "/checkout/fail"
	}
	return &CheckoutService{
		carts:       carts,
		coupons:     coupons,
		backend:     client,
		cache:       store,
		policy:      NewShippingPolicy(cfg),
		successPath: successPath,
		failPath:    failPath,
	}
}

// CheckoutPreview 结算预览
type CheckoutPreview struct {
	Items    []CartViewItem  `json:"items"`
	Summary  CheckoutSummary `json:"summary"`
	CouponID *int64          `json:"couponId,omitempty"`
}

// Preview 计算已选中商品的结算金额，可选叠加优惠券
func (s *CheckoutService) Preview(ctx context.Context, session Session, couponID *int64) (*CheckoutPreview, error) {
	items, err := s.selectedItems(ctx, session)
	if err != nil {
		return nil, err
	}
	if couponID == nil || *couponID <= 0 {
		couponID = nil
	}
	discount, err := s.couponDiscount(ctx, session, couponID, items)
	if err != nil {
		return nil, err
	}
	return &CheckoutPreview{
		Items:    items,
		Summary:  s.policy.Summarize(items, discount),
		CouponID: couponID,
	}, nil
}

// couponDiscount 按已选商品小计计算优惠金额，未使用优惠券时为 0
func (s *CheckoutService) couponDiscount(ctx context.Context, session Session, couponID *int64, items []CartViewItem) (models.Money, error) {
	if couponID == nil || s.coupons == nil {
		return models.NewMoney(0), nil
	}
	subtotal := s.policy.Summarize(items, models.NewMoney(0)).Subtotal
	result, err := s.coupons.Calculate(ctx, session, *couponID, subtotal)
	if err != nil {
		return models.NewMoney(0), err
	}
	if result == nil {
		return models.NewMoney(0), nil
	}
	return result.DiscountAmount, nil
}

// PlaceOrderInput 下单输入
type PlaceOrderInput struct {
	ShippingAddress ShippingAddressInput
	PaymentMethod   string
	CouponID        *int64
	Memo            string
}

// PaymentWidgetParams 支付组件所需参数
type PaymentWidgetParams struct {
	OrderID      string       `json:"orderId"`
	OrderName    string       `json:"orderName"`
	Amount       models.Money `json:"amount"`
	CustomerName string       `json:"customerName"`
}

// PlaceOrderResult 下单结果
type PlaceOrderResult struct {
	Order   *backend.Order      `json:"order"`
	Payment PaymentWidgetParams `json:"payment"`
	Actions OrderActions        `json:"actions"`
}

// PlaceOrder 校验地址与支付方式后，以已选中商品创建订单
func (s *CheckoutService) PlaceOrder(ctx context.Context, session Session, input PlaceOrderInput) (*PlaceOrderResult, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	address := input.ShippingAddress.Normalize()
	if memo := strings.TrimSpace(input.Memo); memo != "" {
		address.DeliveryMemo = memo
	}
	if err := ValidateShippingAddress(address); err != nil {
		return nil, err
	}
	method := strings.ToUpper(strings.TrimSpace(input.PaymentMethod))
	if !ValidPaymentMethod(method) {
		return nil, ErrPaymentMethodInvalid
	}
	items, err := s.selectedItems(ctx, session)
	if err != nil {
		return nil, err
	}
	summary := s.policy.Summarize(items, models.NewMoney(0))

	req := backend.CreateOrderRequest{
		Items:           make([]backend.CreateOrderItem, 0, len(items)),
		ShippingAddress: address,
		PaymentMethod:   method,
		ShippingFee:     summary.ShippingFee,
	}
	if input.CouponID != nil && *input.CouponID > 0 {
		req.CouponID = input.CouponID
	}
	for _, item := range items {
		req.Items = append(req.Items, backend.CreateOrderItem{ProductID: item.ProductID, Quantity: item.Quantity})
	}

	order, err := s.backend.CreateOrder(ctx, session.Token, req)
	if err != nil {
		logger.Warnw("checkout_order_create_failed", "customer_id", session.CustomerID, "error", err)
		return nil, err
	}
	s.invalidateOrders(ctx, session.CustomerID)
	s.carts.InvalidateServerCart(ctx, session.CustomerID)
	amount := s.widgetAmount(ctx, session, order, req.CouponID, items)
	logger.Infow("checkout_order_created",
		"customer_id", session.CustomerID,
		"order_id", order.ID,
		"order_number", order.OrderNumber,
		"total_amount", amount.String(),
	)

	return &PlaceOrderResult{
		Order: order,
		Payment: PaymentWidgetParams{
			OrderID:      widgetOrderID(order),
			OrderName:    orderName(items),
			Amount:       amount,
			CustomerName: session.CustomerName,
		},
		Actions: ActionsFor(order.Status),
	}, nil
}

// PaymentConfirmInput 支付组件成功回调参数
type PaymentConfirmInput struct {
	PaymentKey string
	OrderID    string
	Amount     models.Money
}

// PaymentOutcome 支付确认结果，包含前端跳转地址
type PaymentOutcome struct {
	Success  bool             `json:"success"`
	Payment  *backend.Payment `json:"payment,omitempty"`
	Redirect string           `json:"redirect"`
	Message  string           `json:"message,omitempty"`
}

// ConfirmPayment 向后端确认支付
// 后端拒绝时同时返回失败跳转结果与错误
func (s *CheckoutService) ConfirmPayment(ctx context.Context, session Session, input PaymentConfirmInput) (*PaymentOutcome, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	input.PaymentKey = strings.TrimSpace(input.PaymentKey)
	input.OrderID = strings.TrimSpace(input.OrderID)
	if input.PaymentKey == "" || input.OrderID == "" || !input.Amount.IsPositive() {
		return nil, ErrPaymentConfirmInvalid
	}
	payment, err := s.backend.ConfirmPayment(ctx, session.Token, backend.PaymentConfirmRequest{
		PaymentKey: input.PaymentKey,
		OrderID:    input.OrderID,
		Amount:     input.Amount,
	})
	if err != nil {
		message := backend.MessageOf(err)
		logger.Warnw("checkout_payment_confirm_failed",
			"customer_id", session.CustomerID,
			"order_id", input.OrderID,
			"error", err,
		)
		return &PaymentOutcome{
			Success:  false,
			Redirect: s.FailRedirect(message),
			Message:  message,
		}, err
	}
	s.invalidateOrders(ctx, session.CustomerID)
	s.carts.InvalidateServerCart(ctx, session.CustomerID)
	logger.Infow("checkout_payment_confirmed",
		"customer_id", session.CustomerID,
		"order_id", payment.OrderID,
		"payment_key", payment.PaymentKey,
	)
	return &PaymentOutcome{
		Success:  true,
		Payment:  payment,
		Redirect: s.successRedirect(payment.OrderID),
	}, nil
}

// widgetAmount 以后端订单金额为准（包括优惠后为 0 的情况）
// 后端未返回金额时按优惠后的结算金额兜底
func (s *CheckoutService) widgetAmount(ctx context.Context, session Session, order *backend.Order, couponID *int64, items []CartViewItem) models.Money {
	if order.TotalAmount != nil {
		return *order.TotalAmount
	}
	discount := order.DiscountAmount
	if discount.IsZero() && couponID != nil {
		calculated, err := s.couponDiscount(ctx, session, couponID, items)
		if err != nil {
			logger.Warnw("checkout_widget_discount_failed", "customer_id", session.CustomerID, "order_id", order.ID, "error", err)
		} else {
			discount = calculated
		}
	}
	return s.policy.Summarize(items, discount).TotalAmount
}

func (s *CheckoutService) selectedItems(ctx context.Context, session Session) ([]CartViewItem, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	view, err := s.carts.For(session).Load(ctx)
	if err != nil {
		return nil, err
	}
	items := view.SelectedItems()
	if len(items) == 0 {
		return nil, ErrCartEmpty
	}
	return items, nil
}

func (s *CheckoutService) invalidateOrders(ctx context.Context, customerID int64) {
	if err := s.cache.Del(ctx, cache.CustomerOrdersKey(customerID)); err != nil {
		logger.Warnw("order_cache_invalidate_failed", "customer_id", customerID, "error", err)
	}
}

func (s *CheckoutService) successRedirect(orderID int64) string {
	if strings.Contains(s.successPath, "%d") {
		return fmt.Sprintf(s.successPath, orderID)
	}
	return strings.TrimRight(s.successPath, "/") + "/" + strconv.FormatInt(orderID, 10)
}

// FailRedirect 支付失败页地址，message 作为查询参数传递
func (s *CheckoutService) FailRedirect(message string) string {
	return s.failPath + "?message=" + url.QueryEscape(message)
}

func widgetOrderID(order *backend.Order) string {
	if number := strings.TrimSpace(order.OrderNumber); number != "" {
		return number
	}
	return strconv.FormatInt(order.ID, 10)
}

// orderName 支付组件展示的订单名，多件商品时为 "首件 외 N건"
func orderName(items []CartViewItem) string {
	if len(items) == 0 {
		return ""
	}
	first := strings.TrimSpace(items[0].ProductName)
	if len(items) == 1 {
		return first
	}
	return fmt.Sprintf("%s 외 %d건", first, len(items)-1)
}
