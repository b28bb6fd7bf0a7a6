package response

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope 统一响应结构，与商城后端保持一致
type Envelope struct {
	Success   bool        `json:"success"`
	Data      interface{} `json:"data"`
	Message   string      `json:"message,omitempty"`
	ErrorCode string      `json:"errorCode,omitempty"`
	RequestID string      `json:"requestId,omitempty"`
}

// Success 成功响应
func Success(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
	})
}

// SuccessWithMsg 成功响应（自定义消息）
func SuccessWithMsg(c *gin.Context, msg string, data interface{}) {
	c.JSON(http.StatusOK, Envelope{
		Success: true,
		Data:    data,
		Message: msg,
	})
}

// Created 201 响应
func Created(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Envelope{
		Success: true,
		Data:    data,
	})
}

// Error 错误响应
func Error(c *gin.Context, status int, code, msg string) {
	ErrorWithData(c, status, code, msg, nil)
}

// ErrorWithData 错误响应（带数据，例如跳转地址或字段错误）
func ErrorWithData(c *gin.Context, status int, code, msg string, data interface{}) {
	if status < http.StatusBadRequest {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, Envelope{
		Success:   false,
		Data:      data,
		Message:   msg,
		ErrorCode: code,
		RequestID: requestID(c),
	})
}

// AppErrorResponse 按 AppError 输出
func AppErrorResponse(c *gin.Context, appErr *AppError, data interface{}) {
	ErrorWithData(c, appErr.Status, appErr.Code, appErr.Message, data)
}

// Unauthorized 401响应
func Unauthorized(c *gin.Context, code, msg string) {
	Error(c, http.StatusUnauthorized, code, msg)
}

// BadRequest 400响应
func BadRequest(c *gin.Context, msg string) {
	Error(c, http.StatusBadRequest, CodeBadRequest, msg)
}

// TooManyRequests 429响应
func TooManyRequests(c *gin.Context, msg string) {
	Error(c, http.StatusTooManyRequests, CodeTooManyRequests, msg)
}

func requestID(c *gin.Context) string {
	if c == nil {
		return ""
	}
	if value, ok := c.Get("request_id"); ok {
		if id, ok := value.(string); ok {
			return id
		}
	}
	return ""
}
