package backend

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// ConfirmPayment POST /api/v1/payments/confirm
func (c *Client) ConfirmPayment(ctx context.Context, token string, req PaymentConfirmRequest) (*Payment, error) {
	payment, err := call[Payment](ctx, c, http.MethodPost, "/api/v1/payments/confirm", token, req)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentByOrder GET /api/v1/payments/orders/{id}
func (c *Client) GetPaymentByOrder(ctx context.Context, token string, orderID int64) (*Payment, error) {
	payment, err := call[Payment](ctx, c, http.MethodGet, fmt.Sprintf("/api/v1/payments/orders/%d", orderID), token, nil)
	if err != nil {
		return nil, err
	}
	return &payment, nil
}

// CancelPayment POST /api/v1/payments/{key}/cancel
func (c *Client) CancelPayment(ctx context.Context, token, paymentKey, reason string) (*Payment, error) {
	path := fmt.Sprintf("/api/v1/payments/%s/cancel", url.PathEscape(paymentKey))
	payment, err := call[Payment](ctx, c, http.MethodPost, path, token, CancelPaymentRequest{CancelReason: reason})
	if err != nil {
		return nil, err
	}
	return &payment, nil
}
