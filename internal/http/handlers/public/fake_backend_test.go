package public

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
	"github.com/mall-next/storefront/internal/config"
	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/models"
	"github.com/mall-next/storefront/internal/provider"
	"github.com/mall-next/storefront/internal/repository"
	"github.com/mall-next/storefront/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/glebarez/sqlite"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

// fakeMall 以 HTTP 形式模拟商城后端
type fakeMall struct {
	mu          sync.Mutex
	items       []backend.CartItem
	nextID      int64
	orders      map[int64]*backend.Order
	rejectAdd   bool
	rejectPay   bool
	silentPay   bool
	lastCreated backend.CreateOrderRequest
}

func newFakeMall() *fakeMall {
	return &fakeMall{nextID: 100, orders: map[int64]*backend.Order{}}
}

func writeEnvelope(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": true, "data": data})
}

func writeFailure(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]interface{}{"success": false, "errorCode": code, "message": message})
}

func (m *fakeMall) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/v1/carts/me", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		writeEnvelope(w, http.StatusOK, backend.Cart{ID: 1, CustomerID: 7, Items: m.items})
	})
	mux.HandleFunc("POST /api/v1/carts/items", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.rejectAdd {
			writeFailure(w, http.StatusConflict, "OUT_OF_STOCK", "재고가 부족합니다.")
			return
		}
		var req backend.AddCartItemRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		m.nextID++
		item := backend.CartItem{
			ID:          m.nextID,
			ProductID:   req.ProductID,
			ProductName: fmt.Sprintf("상품%d", req.ProductID),
			Price:       models.NewMoney(25000),
			Quantity:    req.Quantity,
			Selected:    true,
		}
		m.items = append(m.items, item)
		writeEnvelope(w, http.StatusCreated, item)
	})
	mux.HandleFunc("POST /api/v1/orders", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		var req backend.CreateOrderRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		m.lastCreated = req
		id := int64(len(m.orders) + 1)
		total := models.NewMoney(50000).Plus(req.ShippingFee)
		order := &backend.Order{
			ID:          id,
			OrderNumber: "ORD-" + strconv.FormatInt(id, 10),
			Status:      "PENDING",
			ShippingFee: req.ShippingFee,
			TotalAmount: &total,
		}
		m.orders[id] = order
		writeEnvelope(w, http.StatusCreated, order)
	})
	mux.HandleFunc("GET /api/v1/orders/{id}", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		id, _ := strconv.ParseInt(r.PathValue("id"), 10, 64)
		order, ok := m.orders[id]
		if !ok {
			writeFailure(w, http.StatusNotFound, "ORDER_NOT_FOUND", "주문을 찾을 수 없습니다.")
			return
		}
		writeEnvelope(w, http.StatusOK, order)
	})
	mux.HandleFunc("POST /api/v1/payments/confirm", func(w http.ResponseWriter, r *http.Request) {
		m.mu.Lock()
		defer m.mu.Unlock()
		if m.rejectPay {
			message := "카드 승인이 거절되었습니다."
			if m.silentPay {
				message = ""
			}
			writeFailure(w, http.StatusBadRequest, "PAYMENT_REJECTED", message)
			return
		}
		var req backend.PaymentConfirmRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		writeEnvelope(w, http.StatusOK, backend.Payment{ID: 1, OrderID: 1, PaymentKey: req.PaymentKey, Amount: req.Amount, Status: "DONE"})
	})
	return mux
}

type testEnv struct {
	engine *gin.Engine
	mall   *fakeMall
	mr     *miniredis.Miniredis
}

// session 由测试请求头 X-Test-Customer 决定
func setupHandlerEnv(t *testing.T) *testEnv {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mall := newFakeMall()
	server := httptest.NewServer(mall.handler())
	t.Cleanup(server.Close)

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	if err != nil {
		t.Fatalf("open sqlite failed: %v", err)
	}
	if err := models.AutoMigrate(db); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	cfg := &config.Config{
		Checkout: config.CheckoutConfig{FreeShippingThreshold: 50000, ShippingFee: 3000, FailPath: "/checkout/fail"},
	}
	client := backend.NewClient(server.URL, 5*time.Second)
	store := cache.NewStore(rdb, "test")
	repo := repository.NewGuestCartRepository(db)
	carts := service.NewCartService(repo, nil, client, store, service.CartServiceOptions{
		GuestCartTTL:   time.Hour,
		ServerCacheTTL: time.Minute,
	})
	coupons := service.NewCouponService(client)
	container := &provider.Container{
		Config:          cfg,
		DB:              db,
		Cache:           store,
		Backend:         client,
		GuestCartRepo:   repo,
		CartService:     carts,
		CheckoutService: service.NewCheckoutService(carts, coupons, client, store, cfg.Checkout),
		OrderService:    service.NewOrderService(client, store, time.Minute),
		CouponService:   coupons,
	}

	h := New(container)
	engine := gin.New()
	engine.Use(func(c *gin.Context) {
		if c.GetHeader("X-Test-Customer") != "" {
			handlershared.SetSession(c, service.Session{CustomerID: 7, CustomerName: "홍길동", Token: "tok-7"})
		} else {
			handlershared.SetSession(c, service.GuestSession(c.GetHeader("X-Guest-Cart-ID")))
		}
		c.Next()
	})
	api := engine.Group("/api/v1")
	api.GET("/cart", h.GetCart)
	api.POST("/cart/items", h.AddCartItem)
	api.PUT("/cart/items/:product_id", h.UpdateCartItem)
	api.DELETE("/cart/items/:product_id", h.RemoveCartItem)
	api.PATCH("/cart/items/:product_id/selection", h.ToggleCartItem)
	api.PATCH("/cart/selection", h.ToggleAllCartItems)
	api.DELETE("/cart/selected", h.RemoveSelectedCartItems)
	api.DELETE("/cart", h.ClearCart)
	api.GET("/checkout/preview", h.PreviewCheckout)
	api.POST("/checkout/orders", h.PlaceOrder)
	api.POST("/checkout/payments/confirm", h.ConfirmPayment)
	api.GET("/orders/:id", h.GetOrder)
	api.POST("/orders/:id/cancel", h.CancelOrder)

	return &testEnv{engine: engine, mall: mall, mr: mr}
}
