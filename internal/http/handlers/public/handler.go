package public

import "github.com/mall-next/storefront/internal/provider"

// Handler 前台接口处理器入口
// 说明：游客与会员共用同一组购物车接口，结算与订单接口仅限会员。
type Handler struct {
	*provider.Container
}

// New 创建前台处理器
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
