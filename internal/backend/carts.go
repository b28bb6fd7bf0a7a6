package backend

import (
	"context"
	"fmt"
	"net/http"
)

// GetMyCart GET /api/v1/carts/me
func (c *Client) GetMyCart(ctx context.Context, token string) (*Cart, error) {
	cart, err := call[Cart](ctx, c, http.MethodGet, "/api/v1/carts/me", token, nil)
	if err != nil {
		return nil, err
	}
	return &cart, nil
}

// AddCartItem POST /api/v1/carts/items
func (c *Client) AddCartItem(ctx context.Context, token string, req AddCartItemRequest) (*CartItem, error) {
	item, err := call[CartItem](ctx, c, http.MethodPost, "/api/v1/carts/items", token, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateCartItem PUT /api/v1/carts/items/{id}
func (c *Client) UpdateCartItem(ctx context.Context, token string, cartItemID int64, req UpdateCartItemRequest) (*CartItem, error) {
	item, err := call[CartItem](ctx, c, http.MethodPut, fmt.Sprintf("/api/v1/carts/items/%d", cartItemID), token, req)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// RemoveCartItem DELETE /api/v1/carts/items/{id}
func (c *Client) RemoveCartItem(ctx context.Context, token string, cartItemID int64) error {
	_, err := call[empty](ctx, c, http.MethodDelete, fmt.Sprintf("/api/v1/carts/items/%d", cartItemID), token, nil)
	return err
}

// ClearCart DELETE /api/v1/carts/me
func (c *Client) ClearCart(ctx context.Context, token string) error {
	_, err := call[empty](ctx, c, http.MethodDelete, "/api/v1/carts/me", token, nil)
	return err
}

// SetCartItemSelection PATCH /api/v1/carts/items/{id}/selection
func (c *Client) SetCartItemSelection(ctx context.Context, token string, cartItemID int64, selected bool) error {
	_, err := call[empty](ctx, c, http.MethodPatch, fmt.Sprintf("/api/v1/carts/items/%d/selection", cartItemID), token, SelectionRequest{Selected: selected})
	return err
}

// SetAllCartItemSelection PATCH /api/v1/carts/items/selection
func (c *Client) SetAllCartItemSelection(ctx context.Context, token string, selected bool) error {
	_, err := call[empty](ctx, c, http.MethodPatch, "/api/v1/carts/items/selection", token, SelectionRequest{Selected: selected})
	return err
}
