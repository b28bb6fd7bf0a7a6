package shared

import (
	"net/http"

	"github.com/mall-next/storefront/internal/constants"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// SetSession 写入请求会话。
func SetSession(c *gin.Context, session service.Session) {
	c.Set(constants.ContextSessionKey, session)
}

// GetSession 读取请求会话，中间件未写入时视为空游客会话。
func GetSession(c *gin.Context) service.Session {
	if value, ok := c.Get(constants.ContextSessionKey); ok {
		if session, ok := value.(service.Session); ok {
			return session
		}
	}
	return service.Session{}
}

// RequireCustomer 要求会员会话，否则返回 401 与登录跳转。
func RequireCustomer(c *gin.Context) (service.Session, bool) {
	session := GetSession(c)
	if session.Authenticated() {
		return session, true
	}
	RespondErrorWithData(c, http.StatusUnauthorized, response.CodeLoginRequired, "error.unauthorized", nil,
		gin.H{"redirect": constants.RedirectLogin})
	return service.Session{}, false
}
