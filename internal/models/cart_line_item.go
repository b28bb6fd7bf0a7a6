package models

import "time"

// CartLineItem 游客购物车行（与前端本地购物车结构一致）
type CartLineItem struct {
	ProductID     int64     `json:"productId"`
	ProductName   string    `json:"productName"`
	ProductImage  string    `json:"productImage,omitempty"`
	Price         Money     `json:"price"`
	Quantity      int       `json:"quantity"`
	StockQuantity int       `json:"stockQuantity"`
	Selected      bool      `json:"selected"`
	AddedAt       time.Time `json:"addedAt"`
}

// LineTotal 行小计
func (i CartLineItem) LineTotal() Money {
	return i.Price.Times(i.Quantity)
}
