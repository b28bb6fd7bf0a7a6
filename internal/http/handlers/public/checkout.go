package public

import (
	"net/http"

	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/models"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// PlaceOrderRequest 下单请求
type PlaceOrderRequest struct {
	ShippingAddress service.ShippingAddressInput `json:"shippingAddress"`
	PaymentMethod   string                       `json:"paymentMethod" binding:"required"`
	CouponID        *int64                       `json:"couponId"`
	Memo            string                       `json:"memo" binding:"max=200"`
}

// ConfirmPaymentRequest 支付组件成功回调参数
type ConfirmPaymentRequest struct {
	PaymentKey string       `json:"paymentKey" binding:"required"`
	OrderID    string       `json:"orderId" binding:"required"`
	Amount     models.Money `json:"amount"`
}

// PreviewCheckout 结算预览
func (h *Handler) PreviewCheckout(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	couponID, ok := parseOptionalInt64Query(c, "couponId")
	if !ok {
		return
	}
	preview, err := h.CheckoutService.Preview(c.Request.Context(), session, couponID)
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, preview)
}

// PlaceOrder 创建订单并返回支付组件参数
func (h *Handler) PlaceOrder(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	var req PlaceOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	result, err := h.CheckoutService.PlaceOrder(c.Request.Context(), session, service.PlaceOrderInput{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		CouponID:        req.CouponID,
		Memo:            req.Memo,
	})
	if err != nil {
		respondCheckoutError(c, err)
		return
	}
	response.Created(c, result)
}

// ConfirmPayment 支付成功回调后向后端确认
// 后端拒绝时返回失败跳转地址
func (h *Handler) ConfirmPayment(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	var req ConfirmPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.payment_confirm_invalid", err)
		return
	}
	outcome, err := h.CheckoutService.ConfirmPayment(c.Request.Context(), session, service.PaymentConfirmInput{
		PaymentKey: req.PaymentKey,
		OrderID:    req.OrderID,
		Amount:     req.Amount,
	})
	if err != nil {
		if outcome != nil {
			msg := handlershared.BackendMessage(c, err)
			outcome.Message = msg
			outcome.Redirect = h.CheckoutService.FailRedirect(msg)
			response.ErrorWithData(c, http.StatusPaymentRequired, response.CodePaymentFailed, msg, outcome)
			return
		}
		respondCheckoutError(c, err)
		return
	}
	response.Success(c, outcome)
}
