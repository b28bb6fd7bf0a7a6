package service

import (
	"context"
	"strings"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/models"
)

// CouponBackend 优惠券后端接口
type CouponBackend interface {
	ValidateCoupon(ctx context.Context, token string, req backend.ValidateCouponRequest) (*backend.Coupon, error)
	ListAvailableCoupons(ctx context.Context, token string) ([]backend.Coupon, error)
	CalculateDiscount(ctx context.Context, token string, couponID int64, req backend.CalculateDiscountRequest) (*backend.CouponDiscount, error)
}

// CouponService 优惠券查询
type CouponService struct {
	backend CouponBackend
}

// NewCouponService 创建优惠券服务
func NewCouponService(client CouponBackend) *CouponService {
	return &CouponService{backend: client}
}

// Validate 按优惠码校验
func (s *CouponService) Validate(ctx context.Context, session Session, code string, orderAmount models.Money) (*backend.Coupon, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return nil, ErrCouponCodeRequired
	}
	return s.backend.ValidateCoupon(ctx, session.Token, backend.ValidateCouponRequest{Code: code, OrderAmount: orderAmount})
}

// Available 可用优惠券列表
func (s *CouponService) Available(ctx context.Context, session Session) ([]backend.Coupon, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	coupons, err := s.backend.ListAvailableCoupons(ctx, session.Token)
	if err != nil {
		return nil, err
	}
	if coupons == nil {
		coupons = []backend.Coupon{}
	}
	return coupons, nil
}

// Calculate 计算优惠金额
func (s *CouponService) Calculate(ctx context.Context, session Session, couponID int64, orderAmount models.Money) (*backend.CouponDiscount, error) {
	if !session.Authenticated() {
		return nil, ErrLoginRequired
	}
	if couponID <= 0 {
		return nil, ErrCouponCodeRequired
	}
	return s.backend.CalculateDiscount(ctx, session.Token, couponID, backend.CalculateDiscountRequest{OrderAmount: orderAmount})
}
