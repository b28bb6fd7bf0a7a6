package queue

import (
	"encoding/json"

	"github.com/mall-next/storefront/internal/constants"

	"github.com/hibiken/asynq"
)

const (
	// TaskGuestCartExpire 游客购物车过期检查任务
	TaskGuestCartExpire = constants.TaskGuestCartExpire
	// TaskGuestCartSweep 游客购物车批量清理任务
	TaskGuestCartSweep = constants.TaskGuestCartSweep
)

// GuestCartExpirePayload 过期检查任务载荷
type GuestCartExpirePayload struct {
	GuestID string `json:"guest_id"`
}

// GuestCartExpireTaskID 过期检查任务 ID
func GuestCartExpireTaskID(guestID string) string {
	return "guest-cart-expire:" + guestID
}

// NewGuestCartExpireTask 创建过期检查任务
func NewGuestCartExpireTask(payload GuestCartExpirePayload) (*asynq.Task, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskGuestCartExpire, body), nil
}

// ParseGuestCartExpirePayload 解析过期检查任务载荷
func ParseGuestCartExpirePayload(body []byte) (GuestCartExpirePayload, error) {
	var payload GuestCartExpirePayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return GuestCartExpirePayload{}, err
	}
	return payload, nil
}

// NewGuestCartSweepTask 创建批量清理任务
func NewGuestCartSweepTask() *asynq.Task {
	return asynq.NewTask(TaskGuestCartSweep, nil)
}
