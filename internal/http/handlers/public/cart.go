package public

import (
	"net/http"

	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/i18n"
	"github.com/mall-next/storefront/internal/models"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// AddCartItemRequest 加入购物车请求
// 会员购物车只使用 productId/quantity，商品快照由后端维护
type AddCartItemRequest struct {
	ProductID     int64        `json:"productId" binding:"required,gt=0"`
	ProductName   string       `json:"productName" binding:"max=200"`
	ProductImage  string       `json:"productImage" binding:"max=500"`
	Price         models.Money `json:"price"`
	StockQuantity int          `json:"stockQuantity" binding:"gte=0"`
	Quantity      int          `json:"quantity" binding:"required,gte=1,lte=9999"`
}

// UpdateCartItemRequest 修改数量请求
type UpdateCartItemRequest struct {
	Quantity *int `json:"quantity" binding:"required,lte=9999"`
}

// SelectionRequest 单个商品选中请求，selected 缺省时切换
type SelectionRequest struct {
	Selected *bool `json:"selected"`
}

// SelectAllRequest 全选请求
type SelectAllRequest struct {
	Selected *bool `json:"selected" binding:"required"`
}

// GetCart 获取购物车
func (h *Handler) GetCart(c *gin.Context) {
	session := getSession(c)
	if !session.Authenticated() && session.GuestID == "" {
		response.Success(c, service.EmptyGuestCartView())
		return
	}
	view, err := h.CartService.View(c.Request.Context(), session)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// AddCartItem 加入购物车
func (h *Handler) AddCartItem(c *gin.Context) {
	var req AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeCartItemInvalid, "error.cart_item_invalid", err)
		return
	}
	view, err := h.CartService.AddItem(c.Request.Context(), getSession(c), service.AddCartItemInput{
		ProductID:     req.ProductID,
		ProductName:   req.ProductName,
		ProductImage:  req.ProductImage,
		Price:         req.Price,
		StockQuantity: req.StockQuantity,
		Quantity:      req.Quantity,
	})
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// UpdateCartItem 修改数量，小于 1 时保持不变
func (h *Handler) UpdateCartItem(c *gin.Context) {
	productID, ok := parseInt64Param(c, "product_id", "error.cart_item_invalid")
	if !ok {
		return
	}
	var req UpdateCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.CartService.UpdateQuantity(c.Request.Context(), getSession(c), productID, *req.Quantity)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveCartItem 移除商品
func (h *Handler) RemoveCartItem(c *gin.Context) {
	productID, ok := parseInt64Param(c, "product_id", "error.cart_item_invalid")
	if !ok {
		return
	}
	view, err := h.CartService.RemoveItem(c.Request.Context(), getSession(c), productID)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ToggleCartItem 设置或切换单个商品选中状态
func (h *Handler) ToggleCartItem(c *gin.Context) {
	productID, ok := parseInt64Param(c, "product_id", "error.cart_item_invalid")
	if !ok {
		return
	}
	var req SelectionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
			return
		}
	}
	view, err := h.CartService.SetSelection(c.Request.Context(), getSession(c), productID, req.Selected)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// ToggleAllCartItems 全选或全不选
func (h *Handler) ToggleAllCartItems(c *gin.Context) {
	var req SelectAllRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", err)
		return
	}
	view, err := h.CartService.SetAllSelection(c.Request.Context(), getSession(c), *req.Selected)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}

// RemoveSelectedCartItems 删除已选中的商品
func (h *Handler) RemoveSelectedCartItems(c *gin.Context) {
	session := getSession(c)
	before, err := h.CartService.View(c.Request.Context(), session)
	if err != nil {
		respondCartError(c, err)
		return
	}
	removed := len(before.SelectedItems())
	view, err := h.CartService.RemoveSelected(c.Request.Context(), session)
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.SuccessWithMsg(c, i18n.Sprintf(i18n.ResolveLocale(c), "cart.items_removed", removed), view)
}

// ClearCart 清空购物车
func (h *Handler) ClearCart(c *gin.Context) {
	view, err := h.CartService.Clear(c.Request.Context(), getSession(c))
	if err != nil {
		respondCartError(c, err)
		return
	}
	response.Success(c, view)
}
