package worker

import (
	"context"
	"errors"
	"time"

	"github.com/mall-next/storefront/internal/config"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/queue"

	"github.com/hibiken/asynq"
)

const (
	guestCartSweepInterval = time.Hour
)

// Service 异步队列服务
type Service struct {
	name     string
	server   *asynq.Server
	mux      *asynq.ServeMux
	consumer *Consumer
}

// NewService 创建异步队列服务
func NewService(cfg *config.QueueConfig, consumer *Consumer) (*Service, error) {
	if cfg == nil || !cfg.Enabled {
		return nil, errors.New("queue disabled")
	}
	if consumer == nil {
		return nil, errors.New("consumer is nil")
	}
	opt, serverCfg := queue.BuildServerConfig(cfg)
	server := asynq.NewServer(opt, serverCfg)
	mux := asynq.NewServeMux()
	consumer.Register(mux)
	return &Service{
		name:     "worker",
		server:   server,
		mux:      mux,
		consumer: consumer,
	}, nil
}

// Name 服务名称
func (s *Service) Name() string {
	if s == nil || s.name == "" {
		return "worker"
	}
	return s.name
}

// Start 启动消费者并阻塞到 ctx 取消
func (s *Service) Start(ctx context.Context) error {
	if s == nil || s.server == nil || s.mux == nil {
		return errors.New("worker not initialized")
	}
	if s.consumer != nil && s.consumer.Container != nil && s.consumer.QueueClient != nil {
		go s.runGuestCartSweepLoop(ctx)
	}
	if err := s.server.Start(s.mux); err != nil {
		return err
	}
	<-ctx.Done()
	return nil
}

// Stop 停止服务
func (s *Service) Stop(ctx context.Context) error {
	if s == nil || s.server == nil {
		return nil
	}
	s.server.Shutdown()
	return nil
}

// runGuestCartSweepLoop 定时推送批量清理任务，覆盖未调度过期任务的购物车
func (s *Service) runGuestCartSweepLoop(ctx context.Context) {
	runOnce := func() {
		err := s.consumer.QueueClient.EnqueueGuestCartSweep(
			asynq.Unique(guestCartSweepInterval),
			asynq.Timeout(5*time.Minute),
		)
		if err != nil && !errors.Is(err, asynq.ErrDuplicateTask) {
			logger.Warnw("worker_guest_cart_sweep_enqueue_failed", "error", err)
		}
	}
	runOnce()

	ticker := time.NewTicker(guestCartSweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			runOnce()
		}
	}
}
