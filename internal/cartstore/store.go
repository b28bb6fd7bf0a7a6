// Package cartstore 实现游客本地购物车的状态容器。
//
// Store 只负责内存中的状态变更与派生计算，不做任何 IO；
// 持久化通过 Encode/Decode 显式完成，由调用方在状态变更后保存。
// 同一个 Store 不应跨请求共享。
package cartstore

import (
	"time"

	"github.com/mall-next/storefront/internal/models"
)

// MaxQuantity 单行商品数量上限，累加超出时截断
const MaxQuantity = 9999

// Store 游客购物车状态容器
type Store struct {
	items []models.CartLineItem
	now   func() time.Time
}

// Option Store 选项
type Option func(*Store)

// WithClock 指定时间来源
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New 创建空购物车
func New(opts ...Option) *Store {
	s := &Store{now: time.Now}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// AddItem 加入商品：已存在则累加数量，否则追加为选中状态
func (s *Store) AddItem(item models.CartLineItem, quantity int) bool {
	if item.ProductID <= 0 || quantity < 1 {
		return false
	}
	if idx := s.indexOf(item.ProductID); idx >= 0 {
		s.items[idx].Quantity = addQuantity(s.items[idx].Quantity, quantity)
		return true
	}
	item.Quantity = addQuantity(0, quantity)
	item.Selected = true
	item.AddedAt = s.now()
	s.items = append(s.items, item)
	return true
}

// RemoveItem 移除商品
func (s *Store) RemoveItem(productID int64) bool {
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items = append(s.items[:idx], s.items[idx+1:]...)
	return true
}

// UpdateQuantity 设置数量，小于 1 时不做任何变更
func (s *Store) UpdateQuantity(productID int64, quantity int) bool {
	if quantity < 1 {
		return false
	}
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items[idx].Quantity = addQuantity(0, quantity)
	return true
}

// ToggleSelection 切换单个商品的选中状态
func (s *Store) ToggleSelection(productID int64) bool {
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items[idx].Selected = !s.items[idx].Selected
	return true
}

// SetSelection 显式设置单个商品的选中状态
func (s *Store) SetSelection(productID int64, selected bool) bool {
	idx := s.indexOf(productID)
	if idx < 0 {
		return false
	}
	s.items[idx].Selected = selected
	return true
}

// ToggleAllSelection 全选/全不选
func (s *Store) ToggleAllSelection(selected bool) {
	for i := range s.items {
		s.items[i].Selected = selected
	}
}

// RemoveSelectedItems 删除所有选中商品，返回删除数量
func (s *Store) RemoveSelectedItems() int {
	kept := s.items[:0]
	removed := 0
	for _, item := range s.items {
		if item.Selected {
			removed++
			continue
		}
		kept = append(kept, item)
	}
	s.items = kept
	return removed
}

// Clear 清空购物车
func (s *Store) Clear() {
	s.items = nil
}

// Items 返回商品副本（按加入顺序）
func (s *Store) Items() []models.CartLineItem {
	out := make([]models.CartLineItem, len(s.items))
	copy(out, s.items)
	return out
}

// Len 行数
func (s *Store) Len() int {
	return len(s.items)
}

// Find 查找商品
func (s *Store) Find(productID int64) (models.CartLineItem, bool) {
	idx := s.indexOf(productID)
	if idx < 0 {
		return models.CartLineItem{}, false
	}
	return s.items[idx], true
}

// TotalItems 商品总件数
func (s *Store) TotalItems() int {
	total := 0
	for _, item := range s.items {
		total += item.Quantity
	}
	return total
}

// TotalAmount 全部商品金额
func (s *Store) TotalAmount() models.Money {
	return sumLines(s.items, false)
}

// SelectedItems 已选商品
func (s *Store) SelectedItems() []models.CartLineItem {
	out := make([]models.CartLineItem, 0, len(s.items))
	for _, item := range s.items {
		if item.Selected {
			out = append(out, item)
		}
	}
	return out
}

// SelectedTotalAmount 已选商品金额
func (s *Store) SelectedTotalAmount() models.Money {
	return sumLines(s.items, true)
}

func (s *Store) indexOf(productID int64) int {
	for i := range s.items {
		if s.items[i].ProductID == productID {
			return i
		}
	}
	return -1
}

// addQuantity 累加数量，结果不超过 MaxQuantity
func addQuantity(current, delta int) int {
	if current >= MaxQuantity || delta >= MaxQuantity-current {
		return MaxQuantity
	}
	return current + delta
}

func sumLines(items []models.CartLineItem, selectedOnly bool) models.Money {
	total := models.NewMoney(0)
	for _, item := range items {
		if selectedOnly && !item.Selected {
			continue
		}
		total = total.Plus(item.LineTotal())
	}
	return total
}
