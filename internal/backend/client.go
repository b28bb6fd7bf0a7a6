// Package backend 封装商城后端 REST API 的调用。
//
// 所有接口返回 {success, data, message?, errorCode?} 包装；
// 调用失败时返回 *APIError，不做任何重试。
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/mall-next/storefront/internal/logger"
)

const maxResponseBytes = 4 << 20

var (
	ErrRequestFailed   = errors.New("backend request failed")
	ErrResponseInvalid = errors.New("backend response invalid")
)

// APIError 后端业务/HTTP 错误
type APIError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("backend status %d code %s: %s: %v", e.Status, e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("backend status %d code %s: %s", e.Status, e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// AsAPIError 提取 APIError
func AsAPIError(err error) (*APIError, bool) {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr, true
	}
	return nil, false
}

// MessageOf 返回后端给出的错误信息，没有时返回空串，由调用方按语言兜底
func MessageOf(err error) string {
	if apiErr, ok := AsAPIError(err); ok {
		return strings.TrimSpace(apiErr.Message)
	}
	return ""
}

// IsNetworkError 判断是否为网络层失败（请求未到达后端）
func IsNetworkError(err error) bool {
	return errors.Is(err, ErrRequestFailed)
}

// Option 客户端选项
type Option func(*Client)

// WithHTTPClient 指定 http.Client
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

// Client 后端 REST 客户端
type Client struct {
	baseURL string
	http    *http.Client
}

// NewClient 创建客户端
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// call 发送请求并解包 data
func call[T any](ctx context.Context, c *Client, method, path, token string, body interface{}) (T, error) {
	var zero T
	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return zero, fmt.Errorf("%w: marshal request failed: %v", ErrRequestFailed, err)
		}
		reader = bytes.NewReader(payload)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return zero, fmt.Errorf("%w: build request failed: %v", ErrRequestFailed, err)
	}
	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token = strings.TrimSpace(token); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Warnw("backend_request_failed", "method", method, "path", path, "error", err)
		return zero, &APIError{
			Code: "NETWORK_ERROR",
			Err:  fmt.Errorf("%w: %v", ErrRequestFailed, err),
		}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return zero, &APIError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("%w: read body failed: %v", ErrResponseInvalid, err),
		}
	}

	if resp.StatusCode == http.StatusNoContent {
		return zero, nil
	}

	var envelope Envelope[T]
	var decodeErr error
	if len(bytes.TrimSpace(raw)) > 0 {
		decodeErr = json.Unmarshal(raw, &envelope)
	}

	if resp.StatusCode >= http.StatusBadRequest || decodeErr != nil || !envelope.Success {
		apiErr := &APIError{
			Status:  resp.StatusCode,
			Code:    strings.TrimSpace(envelope.ErrorCode),
			Message: strings.TrimSpace(envelope.Message),
		}
		if decodeErr != nil {
			apiErr.Err = fmt.Errorf("%w: %v", ErrResponseInvalid, decodeErr)
		}
		logger.Warnw("backend_request_rejected",
			"method", method,
			"path", path,
			"status", resp.StatusCode,
			"error_code", apiErr.Code,
			"latency_ms", time.Since(start).Milliseconds(),
		)
		return zero, apiErr
	}

	logger.Debugw("backend_request",
		"method", method,
		"path", path,
		"status", resp.StatusCode,
		"latency_ms", time.Since(start).Milliseconds(),
	)
	return envelope.Data, nil
}

// empty 用于忽略 data 的接口
type empty = json.RawMessage
