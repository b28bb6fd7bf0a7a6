package backend

import (
	"context"
	"fmt"
	"net/http"
)

// ValidateCoupon POST /api/v1/coupons/validate
func (c *Client) ValidateCoupon(ctx context.Context, token string, req ValidateCouponRequest) (*Coupon, error) {
	coupon, err := call[Coupon](ctx, c, http.MethodPost, "/api/v1/coupons/validate", token, req)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// ListAvailableCoupons GET /api/v1/coupons/available
func (c *Client) ListAvailableCoupons(ctx context.Context, token string) ([]Coupon, error) {
	return call[[]Coupon](ctx, c, http.MethodGet, "/api/v1/coupons/available", token, nil)
}

// CalculateDiscount POST /api/v1/coupons/{id}/calculate
func (c *Client) CalculateDiscount(ctx context.Context, token string, couponID int64, req CalculateDiscountRequest) (*CouponDiscount, error) {
	result, err := call[CouponDiscount](ctx, c, http.MethodPost, fmt.Sprintf("/api/v1/coupons/%d/calculate", couponID), token, req)
	if err != nil {
		return nil, err
	}
	return &result, nil
}
