package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// CreateOrder POST /api/v1/orders
func (c *Client) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*Order, error) {
	order, err := call[Order](ctx, c, http.MethodPost, "/api/v1/orders", token, req)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ListMyOrders GET /api/v1/orders/me
func (c *Client) ListMyOrders(ctx context.Context, token string, page, size int) (*Page[Order], error) {
	query := url.Values{}
	query.Set("page", strconv.Itoa(page))
	query.Set("size", strconv.Itoa(size))
	result, err := call[Page[Order]](ctx, c, http.MethodGet, "/api/v1/orders/me?"+query.Encode(), token, nil)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// GetOrder GET /api/v1/orders/{id}
func (c *Client) GetOrder(ctx context.Context, token string, orderID int64) (*Order, error) {
	order, err := call[Order](ctx, c, http.MethodGet, fmt.Sprintf("/api/v1/orders/%d", orderID), token, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// CancelOrder POST /api/v1/orders/{id}/cancel
func (c *Client) CancelOrder(ctx context.Context, token string, orderID int64, reason string) (*Order, error) {
	order, err := call[Order](ctx, c, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/cancel", orderID), token, CancelOrderRequest{Reason: reason})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// ConfirmOrder POST /api/v1/orders/{id}/confirm
func (c *Client) ConfirmOrder(ctx context.Context, token string, orderID int64) (*Order, error) {
	order, err := call[Order](ctx, c, http.MethodPost, fmt.Sprintf("/api/v1/orders/%d/confirm", orderID), token, nil)
	if err != nil {
		return nil, err
	}
	return &order, nil
}
