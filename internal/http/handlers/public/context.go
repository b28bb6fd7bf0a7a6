package public

import (
	"net/http"
	"strconv"
	"strings"

	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

func respondError(c *gin.Context, status int, code, key string, err error) {
	handlershared.RespondError(c, status, code, key, err)
}

func getSession(c *gin.Context) service.Session {
	return handlershared.GetSession(c)
}

func requireCustomer(c *gin.Context) (service.Session, bool) {
	return handlershared.RequireCustomer(c)
}

func parseInt64Param(c *gin.Context, name, invalidKey string) (int64, bool) {
	value, err := strconv.ParseInt(strings.TrimSpace(c.Param(name)), 10, 64)
	if err != nil || value <= 0 {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, invalidKey, nil)
		return 0, false
	}
	return value, true
}

func parseOptionalInt64Query(c *gin.Context, name string) (*int64, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	value, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || value <= 0 {
		respondError(c, http.StatusBadRequest, response.CodeBadRequest, "error.bad_request", nil)
		return nil, false
	}
	return &value, true
}
