package provider

import (
	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/config"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/queue"
	"github.com/mall-next/storefront/internal/repository"
	"github.com/mall-next/storefront/internal/service"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// Container 依赖注入容器
type Container struct {
	Config      *config.Config
	DB          *gorm.DB
	Redis       *redis.Client
	Cache       *cache.Store
	QueueClient *queue.Client
	Backend     *backend.Client

	// Repositories
	GuestCartRepo repository.GuestCartRepository

	// Services
	CartService             *service.CartService
	CheckoutService         *service.CheckoutService
	OrderService            *service.OrderService
	CouponService           *service.CouponService
	GuestCartCleanupService *service.GuestCartCleanupService
}

// NewContainer 初始化容器
func NewContainer(cfg *config.Config, db *gorm.DB) *Container {
	redisClient := cache.NewClient(&cfg.Redis)

	queueClient, err := queue.NewClient(&cfg.Queue)
	if err != nil {
		logger.Errorw("provider_init_queue_client_failed", "error", err)
		queueClient, _ = queue.NewClient(nil)
	}

	c := &Container{
		Config:      cfg,
		DB:          db,
		Redis:       redisClient,
		Cache:       cache.NewStore(redisClient, cfg.Redis.Prefix),
		QueueClient: queueClient,
		Backend:     backend.NewClient(cfg.Backend.BaseURL, cfg.Backend.Timeout()),
	}

	// 1. 初始化 Repositories
	c.initRepositories()

	// 2. 初始化 Services
	c.initServices()

	return c
}

func (c *Container) initRepositories() {
	c.GuestCartRepo = repository.NewGuestCartRepository(c.DB)
}

func (c *Container) initServices() {
	c.CartService = service.NewCartService(c.GuestCartRepo, c.QueueClient, c.Backend, c.Cache, service.CartServiceOptions{
		GuestCartTTL:   c.Config.Session.GuestCartTTL(),
		ServerCacheTTL: c.Config.Cart.ServerCacheTTL(),
	})
	c.CouponService = service.NewCouponService(c.Backend)
	c.CheckoutService = service.NewCheckoutService(c.CartService, c.CouponService, c.Backend, c.Cache, c.Config.Checkout)
	c.OrderService = service.NewOrderService(c.Backend, c.Cache, c.Config.Cart.OrderCacheTTL())
	c.GuestCartCleanupService = service.NewGuestCartCleanupService(c.GuestCartRepo, c.Config.Session.GuestCartTTL())
}

// Close 释放外部连接
func (c *Container) Close() {
	if c == nil {
		return
	}
	if err := c.QueueClient.Close(); err != nil {
		logger.Warnw("provider_close_queue_client_failed", "error", err)
	}
	if c.Redis != nil {
		if err := c.Redis.Close(); err != nil {
			logger.Warnw("provider_close_redis_failed", "error", err)
		}
	}
}
