package service

import (
	"strings"

	"github.com/mall-next/storefront/internal/constants"
)

// OrderActions 订单可执行的操作
type OrderActions struct {
	CanCancel  bool `json:"canCancel"`
	CanConfirm bool `json:"canConfirm"`
}

// ActionsFor 根据订单状态计算可执行操作
// 待支付/已支付可取消，已送达可确认收货
func ActionsFor(status string) OrderActions {
	status = strings.ToUpper(strings.TrimSpace(status))
	return OrderActions{
		CanCancel:  status == constants.OrderStatusPending || status == constants.OrderStatusPaid,
		CanConfirm: status == constants.OrderStatusDelivered,
	}
}
