package router

import (
	"fmt"
	"strings"

	"github.com/mall-next/storefront/internal/config"
	publichandlers "github.com/mall-next/storefront/internal/http/handlers/public"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/provider"

	"github.com/gin-gonic/gin"
)

// SetupRouter 初始化路由
func SetupRouter(cfg *config.Config, c *provider.Container) *gin.Engine {
	r := gin.New()

	h := publichandlers.New(c)
	redisPrefix := strings.TrimSpace(cfg.Redis.Prefix)
	if redisPrefix == "" {
		redisPrefix = "sf"
	}
	orderRule := RateLimitRule{
		Prefix:        fmt.Sprintf("%s:rate:checkout", redisPrefix),
		WindowSeconds: cfg.RateLimit.WindowSeconds,
		MaxRequests:   cfg.RateLimit.MaxRequests,
	}

	// 中间件
	r.Use(gin.Recovery())
	r.Use(RequestIDMiddleware())
	r.Use(LoggerMiddleware(logger.Z()))
	r.Use(CORSMiddleware(cfg.CORS))
	r.Use(SessionMiddleware(cfg.Session.JWTSecret))

	r.GET("/healthz", func(ctx *gin.Context) {
		response.Success(ctx, gin.H{"status": "ok"})
	})

	apiV1 := r.Group("/api/v1")
	{
		// 购物车：游客与会员共用，按会话选择存储
		cart := apiV1.Group("/cart")
		{
			cart.GET("", h.GetCart)
			cart.DELETE("", h.ClearCart)
			cart.POST("/items", h.AddCartItem)
			cart.PUT("/items/:product_id", h.UpdateCartItem)
			cart.DELETE("/items/:product_id", h.RemoveCartItem)
			cart.PATCH("/items/:product_id/selection", h.ToggleCartItem)
			cart.PATCH("/selection", h.ToggleAllCartItems)
			cart.DELETE("/selected", h.RemoveSelectedCartItems)
		}

		checkout := apiV1.Group("/checkout")
		{
			checkout.GET("/preview", h.PreviewCheckout)
			checkout.POST("/orders", RateLimitMiddleware(c.Redis, orderRule, KeyByCustomer), h.PlaceOrder)
			checkout.POST("/payments/confirm", h.ConfirmPayment)
		}

		orders := apiV1.Group("/orders")
		{
			orders.GET("", h.ListOrders)
			orders.GET("/:id", h.GetOrder)
			orders.POST("/:id/cancel", h.CancelOrder)
			orders.POST("/:id/confirm", h.ConfirmOrder)
		}

		payments := apiV1.Group("/payments")
		{
			payments.GET("/orders/:id", h.GetPaymentByOrder)
			payments.POST("/:key/cancel", h.CancelPayment)
		}

		coupons := apiV1.Group("/coupons")
		{
			coupons.POST("/validate", h.ValidateCoupon)
			coupons.GET("/available", h.ListAvailableCoupons)
		}
	}

	return r
}
