package models

import "time"

// GuestCart 游客购物车持久化记录
// Payload 保存 {"items":[...]} JSON，与前端本地存储格式一致
type GuestCart struct {
	ID        uint      `gorm:"primarykey" json:"id"`
	GuestID   string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"guest_id"`
	Payload   string    `gorm:"type:text;not null" json:"payload"`
	ItemCount int       `gorm:"not null;default:0" json:"item_count"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
	UpdatedAt time.Time `gorm:"index" json:"updated_at"`
}

// TableName 指定表名
func (GuestCart) TableName() string {
	return "guest_carts"
}
