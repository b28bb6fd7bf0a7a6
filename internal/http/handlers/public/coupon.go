package public

import (
	"net/http"

	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/models"

	"github.com/gin-gonic/gin"
)

// ValidateCouponRequest 校验优惠码请求
type ValidateCouponRequest struct {
	Code        string       `json:"code" binding:"required,max=64"`
	OrderAmount models.Money `json:"orderAmount"`
}

// ValidateCoupon 校验优惠码
func (h *Handler) ValidateCoupon(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	var req ValidateCouponRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.coupon_code_required", err)
		return
	}
	coupon, err := h.CouponService.Validate(c.Request.Context(), session, req.Code, req.OrderAmount)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupon)
}

// ListAvailableCoupons 可用优惠券
func (h *Handler) ListAvailableCoupons(c *gin.Context) {
	session, ok := requireCustomer(c)
	if !ok {
		return
	}
	coupons, err := h.CouponService.Available(c.Request.Context(), session)
	if err != nil {
		respondCouponError(c, err)
		return
	}
	response.Success(c, coupons)
}
