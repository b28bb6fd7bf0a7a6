package service

import (
	"context"
	"time"

	"github.com/mall-next/storefront/internal/constants"
	"github.com/mall-next/storefront/internal/models"
)

// AddCartItemInput 加入购物车输入
// 会员购物车只使用 ProductID/Quantity，其余字段用于游客购物车展示
type AddCartItemInput struct {
	ProductID     int64
	ProductName   string
	ProductImage  string
	Price         models.Money
	StockQuantity int
	Quantity      int
}

// CartViewItem 统一的购物车行
type CartViewItem struct {
	CartItemID    int64        `json:"cartItemId,omitempty"`
	ProductID     int64        `json:"productId"`
	ProductName   string       `json:"productName"`
	ProductImage  string       `json:"productImage,omitempty"`
	Price         models.Money `json:"price"`
	Quantity      int          `json:"quantity"`
	StockQuantity int          `json:"stockQuantity"`
	Selected      bool         `json:"selected"`
	LineTotal     models.Money `json:"lineTotal"`
	AddedAt       *time.Time   `json:"addedAt,omitempty"`
}

// CartView 统一的购物车视图
type CartView struct {
	Source           string         `json:"source"`
	Items            []CartViewItem `json:"items"`
	TotalAmount      models.Money   `json:"totalAmount"`
	SelectedAmount   models.Money   `json:"selectedAmount"`
	TotalQuantity    int            `json:"totalQuantity"`
	SelectedQuantity int            `json:"selectedQuantity"`
	IsLoading        bool           `json:"isLoading"`
	IsAuthenticated  bool           `json:"isAuthenticated"`
}

// SelectedItems 已选中的行
func (v *CartView) SelectedItems() []CartViewItem {
	if v == nil {
		return nil
	}
	out := make([]CartViewItem, 0, len(v.Items))
	for _, item := range v.Items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// CartStrategy 购物车读写策略，游客与会员各一种实现
type CartStrategy interface {
	Source() string
	Load(ctx context.Context) (*CartView, error)
	AddItem(ctx context.Context, input AddCartItemInput) error
	UpdateQuantity(ctx context.Context, productID int64, quantity int) error
	RemoveItem(ctx context.Context, productID int64) error
	// SetSelection selected 为 nil 时切换当前状态
	SetSelection(ctx context.Context, productID int64, selected *bool) error
	SetAllSelection(ctx context.Context, selected bool) error
	RemoveSelected(ctx context.Context) error
	Clear(ctx context.Context) error
}

// buildCartView 汇总购物车行
func buildCartView(source string, authenticated bool, items []CartViewItem) *CartView {
	view := &CartView{
		Source:          source,
		Items:           items,
		TotalAmount:     models.NewMoney(0),
		SelectedAmount:  models.NewMoney(0),
		IsAuthenticated: authenticated,
	}
	if view.Items == nil {
		view.Items = []CartViewItem{}
	}
	for i := range view.Items {
		item := &view.Items[i]
		item.LineTotal = item.Price.Times(item.Quantity)
		view.TotalAmount = view.TotalAmount.Plus(item.LineTotal)
		view.TotalQuantity += item.Quantity
		if item.Selected {
			view.SelectedAmount = view.SelectedAmount.Plus(item.LineTotal)
			view.SelectedQuantity += item.Quantity
		}
	}
	return view
}

// EmptyGuestCartView 尚未分配游客 ID 时的空购物车
func EmptyGuestCartView() *CartView {
	return buildCartView(constants.CartSourceLocal, false, nil)
}
