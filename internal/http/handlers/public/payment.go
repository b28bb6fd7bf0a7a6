package public

import (
	"net/http"

	"github.com/mall-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CancelPaymentRequest 取消支付请求
type CancelPaymentRequest struct {
	CancelReason string `json:"cancelReason" binding:"required,max=200"`
}

// GetPaymentByOrder 查询订单支付记录
func (h *Handler) GetPaymentByOrder(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	orderID, ok := parseInt64Param(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	payment, err := h.OrderService.PaymentByOrder(c.Request.Context(), session, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, payment)
}

// CancelPayment 取消支付
func (h *Handler) CancelPayment(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	var req CancelPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	payment, err := h.OrderService.CancelPayment(c.Request.Context(), session, c.Param("key"), req.CancelReason)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, payment)
}
