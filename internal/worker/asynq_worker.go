package worker

import (
	"context"
	"errors"
	"time"

	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/provider"
	"github.com/mall-next/storefront/internal/queue"
	"github.com/mall-next/storefront/internal/service"

	"github.com/hibiken/asynq"
)

// expireRescheduler 重新调度过期检查
type expireRescheduler interface {
	RescheduleGuestCartExpire(guestID string, delay time.Duration) error
}

// Consumer 异步任务消费者
type Consumer struct {
	*provider.Container
	rescheduler expireRescheduler
}

// NewConsumer 创建消费者
func NewConsumer(c *provider.Container) *Consumer {
	consumer := &Consumer{Container: c}
	if c != nil && c.QueueClient != nil {
		consumer.rescheduler = c.QueueClient
	}
	return consumer
}

// Register 注册消费者
func (c *Consumer) Register(mux *asynq.ServeMux) {
	if c == nil || mux == nil {
		logger.Debugw("worker_register_skip_nil", "consumer_nil", c == nil, "mux_nil", mux == nil)
		return
	}
	mux.HandleFunc(queue.TaskGuestCartExpire, c.handleGuestCartExpire)
	mux.HandleFunc(queue.TaskGuestCartSweep, c.handleGuestCartSweep)
}

func (c *Consumer) handleGuestCartExpire(ctx context.Context, task *asynq.Task) error {
	if c == nil || task == nil {
		logger.Debugw("worker_guest_cart_expire_skip_nil", "consumer_nil", c == nil, "task_nil", task == nil)
		return nil
	}
	payload, err := queue.ParseGuestCartExpirePayload(task.Payload())
	if err != nil {
		logger.Warnw("worker_guest_cart_expire_unmarshal_failed", "error", err)
		return err
	}
	if c.Container == nil || c.GuestCartCleanupService == nil {
		logger.Warnw("worker_guest_cart_expire_skip_service_nil", "guest_id", payload.GuestID)
		return nil
	}
	expired, remaining, err := c.GuestCartCleanupService.ExpireGuestCart(ctx, payload.GuestID)
	if err != nil {
		if errors.Is(err, service.ErrGuestIDRequired) {
			logger.Debugw("worker_guest_cart_expire_skip_invalid_payload")
			return nil
		}
		logger.Warnw("worker_guest_cart_expire_failed", "guest_id", payload.GuestID, "error", err)
		return err
	}
	if expired || c.rescheduler == nil {
		return nil
	}
	if err := c.rescheduler.RescheduleGuestCartExpire(payload.GuestID, remaining); err != nil {
		logger.Warnw("worker_guest_cart_expire_reschedule_failed", "guest_id", payload.GuestID, "error", err)
		return err
	}
	return nil
}

func (c *Consumer) handleGuestCartSweep(ctx context.Context, _ *asynq.Task) error {
	if c == nil || c.Container == nil || c.GuestCartCleanupService == nil {
		logger.Debugw("worker_guest_cart_sweep_skip_nil")
		return nil
	}
	if _, err := c.GuestCartCleanupService.SweepStale(ctx); err != nil {
		logger.Warnw("worker_guest_cart_sweep_failed", "error", err)
		return err
	}
	return nil
}
