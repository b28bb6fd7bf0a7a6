package public

import (
	"errors"
	"net/http"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/constants"
	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"
	"github.com/mall-next/storefront/internal/i18n"
	"github.com/mall-next/storefront/internal/service"

	"github.com/gin-gonic/gin"
)

// mappedHandlerError 定义业务错误到接口错误响应的映射关系。
type mappedHandlerError struct {
	target   error
	status   int
	code     string
	key      string
	redirect string
}

// respondWithMappedError 依次匹配业务规则，其次是后端错误，最后使用兜底响应。
func respondWithMappedError(c *gin.Context, err error, rules []mappedHandlerError) {
	var verr *service.ValidationError
	if errors.As(err, &verr) {
		respondValidationError(c, verr)
		return
	}
	for _, rule := range rules {
		if errors.Is(err, rule.target) {
			var data interface{}
			if rule.redirect != "" {
				data = gin.H{"redirect": rule.redirect}
			}
			handlershared.RespondErrorWithData(c, rule.status, rule.code, rule.key, nil, data)
			return
		}
	}
	if _, ok := backend.AsAPIError(err); ok {
		handlershared.RespondBackendError(c, err)
		return
	}
	respondError(c, http.StatusInternalServerError, response.CodeInternal, "error.default", err)
}

func respondValidationError(c *gin.Context, verr *service.ValidationError) {
	locale := i18n.ResolveLocale(c)
	fields := make(map[string]string, len(verr.Fields))
	for _, field := range verr.Fields {
		fields[field.Field] = i18n.T(locale, field.Key)
	}
	key := "error.bad_request"
	if errors.Is(verr, service.ErrShippingAddressInvalid) {
		key = "error.shipping_address_invalid"
	}
	handlershared.RespondErrorWithData(c, http.StatusBadRequest, response.CodeValidationFailed, key, nil, gin.H{"fields": fields})
}

func concatMappedHandlerErrors(groups ...[]mappedHandlerError) []mappedHandlerError {
	total := 0
	for _, group := range groups {
		total += len(group)
	}
	result := make([]mappedHandlerError, 0, total)
	for _, group := range groups {
		result = append(result, group...)
	}
	return result
}

var sessionErrorRules = []mappedHandlerError{
	{target: service.ErrLoginRequired, status: http.StatusUnauthorized, code: response.CodeLoginRequired, key: "error.unauthorized", redirect: constants.RedirectLogin},
	{target: service.ErrGuestIDRequired, status: http.StatusBadRequest, code: response.CodeGuestCartMissing, key: "error.guest_cart_missing"},
}

var cartErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidCartItem, status: http.StatusBadRequest, code: response.CodeCartItemInvalid, key: "error.cart_item_invalid"},
	{target: service.ErrCartItemNotFound, status: http.StatusNotFound, code: response.CodeCartItemNotFound, key: "error.cart_item_not_found"},
}

var checkoutErrorRules = []mappedHandlerError{
	{target: service.ErrCartEmpty, status: http.StatusBadRequest, code: response.CodeCartEmpty, key: "error.cart_empty", redirect: constants.RedirectCart},
	{target: service.ErrPaymentMethodInvalid, status: http.StatusBadRequest, code: response.CodeBadRequest, key: "error.payment_method_invalid"},
	{target: service.ErrPaymentConfirmInvalid, status: http.StatusBadRequest, code: response.CodeBadRequest, key: "error.payment_confirm_invalid"},
}

var orderErrorRules = []mappedHandlerError{
	{target: service.ErrInvalidOrderID, status: http.StatusBadRequest, code: response.CodeBadRequest, key: "error.order_id_invalid"},
	{target: service.ErrOrderNotCancelable, status: http.StatusConflict, code: response.CodeOrderNotCancelable, key: "error.order_not_cancelable"},
	{target: service.ErrOrderNotConfirmable, status: http.StatusConflict, code: response.CodeOrderNotConfirmable, key: "error.order_not_confirmable"},
	{target: service.ErrPaymentConfirmInvalid, status: http.StatusBadRequest, code: response.CodeBadRequest, key: "error.payment_confirm_invalid"},
}

var couponErrorRules = []mappedHandlerError{
	{target: service.ErrCouponCodeRequired, status: http.StatusBadRequest, code: response.CodeBadRequest, key: "error.coupon_code_required"},
}

func respondCartError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(sessionErrorRules, cartErrorRules))
}

func respondCheckoutError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(sessionErrorRules, checkoutErrorRules))
}

func respondOrderError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(sessionErrorRules, orderErrorRules))
}

func respondCouponError(c *gin.Context, err error) {
	respondWithMappedError(c, err, concatMappedHandlerErrors(sessionErrorRules, couponErrorRules))
}
