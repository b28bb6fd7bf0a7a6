package shared

import (
	"net/http"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/i18n"
	"github.com/mall-next/storefront/internal/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// RequestLog 提供携带 request_id 的日志实例。
func RequestLog(c *gin.Context) *zap.SugaredLogger {
	if c == nil {
		return logger.S()
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok && id != "" {
			return logger.With("request_id", id)
		}
	}
	return logger.S()
}

// RespondError 返回国际化错误响应，并在有原始错误时记录日志。
func RespondError(c *gin.Context, status int, code, key string, err error) {
	RespondErrorWithData(c, status, code, key, err, nil)
}

// RespondErrorWithData 返回国际化错误响应并附带数据。
func RespondErrorWithData(c *gin.Context, status int, code, key string, err error, data interface{}) {
	msg := i18n.T(i18n.ResolveLocale(c), key)
	appErr := response.WrapError(status, code, msg, err)
	if err != nil {
		RequestLog(c).Errorw("handler_error",
			"status", appErr.Status,
			"code", appErr.Code,
			"message", appErr.Message,
			"error", err,
		)
	}
	response.AppErrorResponse(c, appErr, data)
}

// BackendMessage 优先使用后端返回的信息，否则按请求语言给出网络或通用兜底提示。
func BackendMessage(c *gin.Context, err error) string {
	locale := i18n.ResolveLocale(c)
	if backend.IsNetworkError(err) {
		return i18n.T(locale, "error.network")
	}
	if msg := backend.MessageOf(err); msg != "" {
		return msg
	}
	return i18n.T(locale, "error.default")
}

// RespondBackendError 透传后端错误信息，没有信息时使用兜底提示。
func RespondBackendError(c *gin.Context, err error) {
	apiErr, ok := backend.AsAPIError(err)
	if !ok {
		RespondError(c, http.StatusInternalServerError, response.CodeInternal, "error.default", err)
		return
	}
	status := apiErr.Status
	code := apiErr.Code
	msg := BackendMessage(c, err)
	switch {
	case status == 0 || backend.IsNetworkError(err):
		status = http.StatusBadGateway
		code = response.CodeBackendUnavailable
	case status < http.StatusBadRequest:
		// 200 但 success=false
		status = http.StatusUnprocessableEntity
	case status >= http.StatusInternalServerError:
		status = http.StatusBadGateway
	}
	if code == "" {
		code = response.CodeBackendUnavailable
	}
	RequestLog(c).Warnw("handler_backend_error",
		"status", status,
		"code", code,
		"message", msg,
		"error", err,
	)
	response.Error(c, status, code, msg)
}
