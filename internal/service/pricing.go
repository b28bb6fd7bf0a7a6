package service

import (
	"github.com/mall-next/storefront/internal/config"
	"github.com/mall-next/storefront/internal/models"
)

// ShippingPolicy 运费规则：满额包邮，否则收取固定运费
type ShippingPolicy struct {
	FreeThreshold models.Money
	Fee           models.Money
}

// NewShippingPolicy 由结算配置创建运费规则
func NewShippingPolicy(cfg config.CheckoutConfig) ShippingPolicy {
	threshold := cfg.FreeShippingThreshold
	if threshold <= 0 {
		threshold = 50000
	}
	fee := cfg.ShippingFee
	if fee < 0 {
		fee = 0
	}
	return ShippingPolicy{FreeThreshold: models.NewMoney(threshold), Fee: models.NewMoney(fee)}
}

// ShippingFee 小计达到门槛（含等于）免运费
func (p ShippingPolicy) ShippingFee(subtotal models.Money) models.Money {
	if subtotal.GreaterThanOrEqual(p.FreeThreshold.Decimal) {
		return models.NewMoney(0)
	}
	return p.Fee
}

// CheckoutSummary 结算金额汇总
type CheckoutSummary struct {
	ItemCount             int          `json:"itemCount"`
	TotalQuantity         int          `json:"totalQuantity"`
	Subtotal              models.Money `json:"subtotal"`
	ShippingFee           models.Money `json:"shippingFee"`
	DiscountAmount        models.Money `json:"discountAmount"`
	TotalAmount           models.Money `json:"totalAmount"`
	FreeShippingRemaining models.Money `json:"freeShippingRemaining"`
}

// Summarize 按已选中商品计算小计、运费、优惠与应付金额
// 优惠金额被限制在 [0, subtotal]
func (p ShippingPolicy) Summarize(items []CartViewItem, discount models.Money) CheckoutSummary {
	summary := CheckoutSummary{Subtotal: models.NewMoney(0)}
	for _, item := range items {
		if !item.Selected {
			continue
		}
		summary.ItemCount++
		summary.TotalQuantity += item.Quantity
		summary.Subtotal = summary.Subtotal.Plus(item.Price.Times(item.Quantity))
	}
	if discount.IsNegative() {
		discount = models.NewMoney(0)
	}
	if discount.GreaterThan(summary.Subtotal.Decimal) {
		discount = summary.Subtotal
	}
	summary.DiscountAmount = models.NewMoneyFromDecimal(discount.Decimal)
	summary.ShippingFee = p.ShippingFee(summary.Subtotal)
	summary.TotalAmount = summary.Subtotal.Plus(summary.ShippingFee).Minus(summary.DiscountAmount)
	summary.FreeShippingRemaining = p.FreeThreshold.Minus(summary.Subtotal)
	return summary
}
