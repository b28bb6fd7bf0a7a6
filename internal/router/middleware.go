package router

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mall-next/storefront/internal/config"
	"github.com/mall-next/storefront/internal/constants"
	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/i18n"
	"github.com/mall-next/storefront/internal/logger"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxGuestIDLength = 64

// CORSMiddleware 跨域中间件
func CORSMiddleware(cfg config.CORSConfig) gin.HandlerFunc {
	allowedOrigins := cfg.AllowedOrigins
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"*"}
	}
	allowedMethods := cfg.AllowedMethods
	if len(allowedMethods) == 0 {
		allowedMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	}
	allowedHeaders := cfg.AllowedHeaders
	if len(allowedHeaders) == 0 {
		allowedHeaders = []string{
			"Content-Type",
			"Authorization",
			"Accept-Language",
			constants.HeaderGuestCartID,
			constants.HeaderRequestID,
		}
	}
	exposedHeaders := cfg.ExposedHeaders
	if len(exposedHeaders) == 0 {
		exposedHeaders = []string{constants.HeaderGuestCartID, constants.HeaderRequestID}
	}
	methodsHeader := strings.Join(allowedMethods, ", ")
	headersHeader := strings.Join(allowedHeaders, ", ")
	exposedHeader := strings.Join(exposedHeaders, ", ")

	return func(c *gin.Context) {
		origin := c.GetHeader("Origin")
		allowedOrigin := resolveAllowedOrigin(origin, allowedOrigins, cfg.AllowCredentials)
		if allowedOrigin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", allowedOrigin)
			if allowedOrigin != "*" {
				c.Writer.Header().Add("Vary", "Origin")
			}
		}
		if cfg.AllowCredentials {
			c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		}
		c.Writer.Header().Set("Access-Control-Allow-Headers", headersHeader)
		c.Writer.Header().Set("Access-Control-Allow-Methods", methodsHeader)
		c.Writer.Header().Set("Access-Control-Expose-Headers", exposedHeader)
		if cfg.MaxAge > 0 {
			c.Writer.Header().Set("Access-Control-Max-Age", strconv.Itoa(cfg.MaxAge))
		}

		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func resolveAllowedOrigin(origin string, allowedOrigins []string, allowCredentials bool) string {
	for _, allowed := range allowedOrigins {
		if allowed == "*" {
			if allowCredentials && origin != "" {
				return origin
			}
			return "*"
		}
	}
	if origin == "" {
		return ""
	}
	for _, allowed := range allowedOrigins {
		if strings.EqualFold(allowed, origin) {
			return origin
		}
	}
	return ""
}

// RequestIDMiddleware 请求 ID 中间件
func RequestIDMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		requestID := strings.TrimSpace(c.GetHeader(constants.HeaderRequestID))
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Set(constants.ContextRequestID, requestID)
		c.Writer.Header().Set(constants.HeaderRequestID, requestID)
		c.Next()
	}
}

// LoggerMiddleware 结构化请求日志中间件
func LoggerMiddleware(log *zap.Logger) gin.HandlerFunc {
	if log == nil {
		log = logger.Z()
	}
	sugar := log.Sugar()
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		entry := sugar.With(
			"request_id", getRequestID(c),
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"latency_ms", time.Since(start).Milliseconds(),
			"client_ip", c.ClientIP(),
		)
		if session := handlershared.GetSession(c); session.Authenticated() {
			entry = entry.With("customer_id", session.CustomerID)
		}
		if len(c.Errors) > 0 {
			entry.Errorw("request", "errors", c.Errors.String())
			return
		}
		entry.Infow("request")
	}
}

func getRequestID(c *gin.Context) string {
	value, ok := c.Get(constants.ContextRequestID)
	if !ok {
		return ""
	}
	if requestID, ok := value.(string); ok {
		return requestID
	}
	return ""
}

// CustomerClaims 商城认证服务签发的会员令牌
type CustomerClaims struct {
	CustomerID int64  `json:"customerId"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	jwt.RegisteredClaims
}

// customerID 优先取 customerId，缺省时退回数字 sub
func (c *CustomerClaims) customerID() int64 {
	if c.CustomerID > 0 {
		return c.CustomerID
	}
	id, err := strconv.ParseInt(strings.TrimSpace(c.Subject), 10, 64)
	if err != nil || id <= 0 {
		return 0
	}
	return id
}

// SessionMiddleware 解析会员令牌或游客购物车 ID，写入请求会话
// 令牌校验通过后原样转发给后端
func SessionMiddleware(secretKey string) gin.HandlerFunc {
	parser := jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	return func(c *gin.Context) {
		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader == "" {
			handlershared.SetSession(c, service.GuestSession(resolveGuestID(c)))
			c.Next()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
			abortUnauthorized(c, "error.auth_header_invalid")
			return
		}
		if secretKey == "" {
			logger.Errorw("session_jwt_secret_missing")
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		tokenString := strings.TrimSpace(parts[1])
		claims := &CustomerClaims{}
		token, err := parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
			return []byte(secretKey), nil
		})
		customerID := claims.customerID()
		if err != nil || !token.Valid || customerID == 0 {
			handlershared.RequestLog(c).Warnw("session_token_invalid", "error", err)
			abortUnauthorized(c, "error.token_invalid")
			return
		}

		handlershared.SetSession(c, service.Session{
			CustomerID:   customerID,
			CustomerName: claims.Name,
			Email:        claims.Email,
			Token:        tokenString,
		})
		c.Next()
	}
}

// resolveGuestID 读取游客购物车 ID，写请求缺少时签发新的 ID 并通过响应头返回
func resolveGuestID(c *gin.Context) string {
	guestID := strings.TrimSpace(c.GetHeader(constants.HeaderGuestCartID))
	if len(guestID) > maxGuestIDLength {
		guestID = ""
	}
	if guestID == "" && !isReadOnlyMethod(c.Request.Method) {
		guestID = uuid.NewString()
	}
	if guestID != "" {
		c.Writer.Header().Set(constants.HeaderGuestCartID, guestID)
	}
	return guestID
}

func isReadOnlyMethod(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

func abortUnauthorized(c *gin.Context, key string) {
	data := gin.H{"redirect": constants.RedirectLogin}
	response.ErrorWithData(c, http.StatusUnauthorized, response.CodeTokenInvalid, i18n.T(i18n.ResolveLocale(c), key), data)
	c.Abort()
}
