package public

import (
	"net/http"
	"strconv"

	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
)

// CancelOrderRequest 取消订单请求
type CancelOrderRequest struct {
	Reason string `json:"reason" binding:"max=200"`
}

// ListOrders 我的订单
func (h *Handler) ListOrders(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	page, _ := strconv.Atoi(c.DefaultQuery("page", "0"))
	size, _ := strconv.Atoi(c.DefaultQuery("size", "10"))
	page, size = handlershared.NormalizePagination(page, size)

	result, err := h.OrderService.List(c.Request.Context(), session, page, size)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, result)
}

// GetOrder 订单详情
func (h *Handler) GetOrder(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	orderID, ok := parseInt64Param(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	detail, err := h.OrderService.Get(c.Request.Context(), session, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, detail)
}

// CancelOrder 取消订单
func (h *Handler) CancelOrder(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	orderID, ok := parseInt64Param(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	var req CancelOrderRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	detail, err := h.OrderService.Cancel(c.Request.Context(), session, orderID, req.Reason)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, detail)
}

// ConfirmOrder 确认收货
func (h *Handler) ConfirmOrder(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	orderID, ok := parseInt64Param(c, "id", "error.order_id_invalid")
	if !ok {
		return
	}
	detail, err := h.OrderService.Confirm(c.Request.Context(), session, orderID)
	if err != nil {
		respondOrderError(c, err)
		return
	}
	response.Success(c, detail)
}
