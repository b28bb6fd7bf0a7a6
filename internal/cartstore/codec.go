package cartstore

import (
	"encoding/json"
	"fmt"

	"github.com/mall-next/storefront/internal/models"
)

// blob 本地购物车存储格式
type blob struct {
	Items []models.CartLineItem `json:"items"`
}

// Encode 序列化为 {"items":[...]}
func Encode(s *Store) ([]byte, error) {
	items := []models.CartLineItem{}
	if s != nil && len(s.items) > 0 {
		items = s.items
	}
	return json.Marshal(blob{Items: items})
}

// Decode 从存储格式恢复购物车
// 非法行（商品 ID 或数量无效）被丢弃，重复商品合并数量，数量截断到 MaxQuantity
func Decode(data []byte, opts ...Option) (*Store, error) {
	s := New(opts...)
	if len(data) == 0 {
		return s, nil
	}
	var b blob
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("decode cart blob: %w", err)
	}
	for _, item := range b.Items {
		if item.ProductID <= 0 || item.Quantity < 1 {
			continue
		}
		if idx := s.indexOf(item.ProductID); idx >= 0 {
			s.items[idx].Quantity = addQuantity(s.items[idx].Quantity, item.Quantity)
			continue
		}
		item.Quantity = addQuantity(0, item.Quantity)
		s.items = append(s.items, item)
	}
	return s, nil
}
