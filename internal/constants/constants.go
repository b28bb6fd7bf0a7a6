package constants

// 订单状态常量（由后端维护，前台只做比较）
const (
	OrderStatusPending   = "PENDING"
	OrderStatusPaid      = "PAID"
	OrderStatusConfirmed = "CONFIRMED"
	OrderStatusPreparing = "PREPARING"
	OrderStatusShipped   = "SHIPPED"
	OrderStatusDelivered = "DELIVERED"
	OrderStatusCompleted = "COMPLETED"
	OrderStatusCancelled = "CANCELLED"
	OrderStatusRefunded  = "REFUNDED"
	OrderStatusReturned  = "RETURNED"
)

// 支付方式常量
const (
	PaymentMethodCard     = "CARD"
	PaymentMethodVirtual  = "VIRTUAL_ACCOUNT"
	PaymentMethodTransfer = "TRANSFER"
	PaymentMethodMobile   = "MOBILE_PHONE"
	PaymentMethodEasyPay  = "EASY_PAY"
)

// 支付状态常量
const (
	PaymentStatusReady           = "READY"
	PaymentStatusDone            = "DONE"
	PaymentStatusCanceled        = "CANCELED"
	PaymentStatusPartialCanceled = "PARTIAL_CANCELED"
	PaymentStatusAborted         = "ABORTED"
	PaymentStatusWaitingDeposit  = "WAITING_FOR_DEPOSIT"
)

// 优惠券折扣类型常量
const (
	CouponDiscountFixed      = "FIXED"
	CouponDiscountPercentage = "PERCENTAGE"
)

// 购物车来源常量
const (
	CartSourceLocal  = "local"
	CartSourceServer = "server"
)

// 队列常量
const (
	QueueDefault  = "default"
	QueueCritical = "critical"
)

// 异步任务类型
const (
	TaskGuestCartExpire = "guest_cart:expire"
	TaskGuestCartSweep  = "guest_cart:sweep"
)

// 前台跳转路径
const (
	RedirectLogin = "/login"
	RedirectCart  = "/cart"
)

// 请求头与上下文键
const (
	HeaderGuestCartID = "X-Guest-Cart-ID"
	HeaderRequestID   = "X-Request-ID"
	ContextSessionKey = "storefront_session"
	ContextRequestID  = "request_id"
)
