package backend

import (
	"time"

	"github.com/mall-next/storefront/internal/models"
)

// Envelope 后端统一响应结构
type Envelope[T any] struct {
	Success   bool   `json:"success"`
	Data      T      `json:"data"`
	Message   string `json:"message,omitempty"`
	ErrorCode string `json:"errorCode,omitempty"`
}

// Page 后端分页结构
type Page[T any] struct {
	Content       []T   `json:"content"`
	PageNumber    int   `json:"pageNumber"`
	PageSize      int   `json:"pageSize"`
	TotalElements int64 `json:"totalElements"`
	TotalPages    int   `json:"totalPages"`
	First         bool  `json:"first"`
	Last          bool  `json:"last"`
}

// Cart 会员购物车
type Cart struct {
	ID            int64        `json:"id"`
	CustomerID    int64        `json:"customerId"`
	Items         []CartItem   `json:"items"`
	TotalAmount   models.Money `json:"totalAmount"`
	TotalQuantity int          `json:"totalQuantity"`
}

// CartItem 会员购物车行
type CartItem struct {
	ID            int64        `json:"id"`
	ProductID     int64        `json:"productId"`
	ProductName   string       `json:"productName"`
	ProductImage  string       `json:"productImage,omitempty"`
	Price         models.Money `json:"price"`
	Quantity      int          `json:"quantity"`
	StockQuantity int          `json:"stockQuantity"`
	Selected      bool         `json:"selected"`
}

// AddCartItemRequest 加入购物车
type AddCartItemRequest struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// UpdateCartItemRequest 修改数量
type UpdateCartItemRequest struct {
	Quantity int `json:"quantity"`
}

// SelectionRequest 选中状态
type SelectionRequest struct {
	Selected bool `json:"selected"`
}

// ShippingAddress 收货地址
type ShippingAddress struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	ZipCode       string `json:"zipCode"`
	Address       string `json:"address"`
	AddressDetail string `json:"addressDetail,omitempty"`
	DeliveryMemo  string `json:"deliveryMemo,omitempty"`
}

// OrderItem 订单行快照
type OrderItem struct {
	ProductID    int64        `json:"productId"`
	ProductName  string       `json:"productName"`
	ProductImage string       `json:"productImage,omitempty"`
	Price        models.Money `json:"price"`
	Quantity     int          `json:"quantity"`
	TotalPrice   models.Money `json:"totalPrice"`
}

// Order 订单
type Order struct {
	ID              int64           `json:"id"`
	OrderNumber     string          `json:"orderNumber"`
	Status          string          `json:"status"`
	Items           []OrderItem     `json:"items"`
	ShippingAddress ShippingAddress `json:"shippingAddress"`
	PaymentMethod   string          `json:"paymentMethod"`
	Subtotal        models.Money    `json:"subtotal"`
	ShippingFee     models.Money    `json:"shippingFee"`
	DiscountAmount  models.Money    `json:"discountAmount"`
	TotalAmount     *models.Money   `json:"totalAmount"`
	CouponID        *int64          `json:"couponId,omitempty"`
	CreatedAt       time.Time       `json:"createdAt"`
}

// CreateOrderItem 下单行
type CreateOrderItem struct {
	ProductID int64 `json:"productId"`
	Quantity  int   `json:"quantity"`
}

// CreateOrderRequest 创建订单
type CreateOrderRequest struct {
	Items           []CreateOrderItem `json:"items"`
	ShippingAddress ShippingAddress   `json:"shippingAddress"`
	PaymentMethod   string            `json:"paymentMethod"`
	CouponID        *int64            `json:"couponId,omitempty"`
	ShippingFee     models.Money      `json:"shippingFee"`
}

// CancelOrderRequest 取消订单
type CancelOrderRequest struct {
	Reason string `json:"reason,omitempty"`
}

// PaymentConfirmRequest 支付确认（支付组件成功回调三元组）
type PaymentConfirmRequest struct {
	PaymentKey string       `json:"paymentKey"`
	OrderID    string       `json:"orderId"`
	Amount     models.Money `json:"amount"`
}

// Payment 支付记录
type Payment struct {
	ID         int64        `json:"id"`
	OrderID    int64        `json:"orderId"`
	PaymentKey string       `json:"paymentKey"`
	Method     string       `json:"method"`
	Amount     models.Money `json:"amount"`
	Status     string       `json:"status"`
	ApprovedAt *time.Time   `json:"approvedAt,omitempty"`
}

// CancelPaymentRequest 取消支付
type CancelPaymentRequest struct {
	CancelReason string `json:"cancelReason"`
}

// Coupon 优惠券
type Coupon struct {
	ID                int64         `json:"id"`
	Code              string        `json:"code"`
	Name              string        `json:"name"`
	DiscountType      string        `json:"discountType"`
	DiscountValue     models.Money  `json:"discountValue"`
	MinOrderAmount    models.Money  `json:"minOrderAmount"`
	MaxDiscountAmount *models.Money `json:"maxDiscountAmount,omitempty"`
	ExpiresAt         *time.Time    `json:"expiresAt,omitempty"`
}

// ValidateCouponRequest 校验优惠码
type ValidateCouponRequest struct {
	Code        string       `json:"code"`
	OrderAmount models.Money `json:"orderAmount"`
}

// CalculateDiscountRequest 计算优惠金额
type CalculateDiscountRequest struct {
	OrderAmount models.Money `json:"orderAmount"`
}

// CouponDiscount 优惠计算结果
type CouponDiscount struct {
	CouponID       int64        `json:"couponId"`
	DiscountAmount models.Money `json:"discountAmount"`
}
