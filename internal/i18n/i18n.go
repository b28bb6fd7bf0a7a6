// Package i18n 提供面向用户的提示文案，默认韩语
package i18n

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	LocaleKO = "ko-KR"
	LocaleEN = "en-US"

	// DefaultLocale 默认语言
	DefaultLocale = LocaleKO
)

var messages = map[string]map[string]string{
	LocaleKO: {
		"error.default":                  "요청 처리 중 오류가 발생했습니다.",
		"error.network":                  "서버와 통신할 수 없습니다. 잠시 후 다시 시도해주세요.",
		"error.bad_request":              "잘못된 요청입니다.",
		"error.unauthorized":             "로그인이 필요합니다.",
		"error.token_invalid":            "인증 정보가 유효하지 않습니다. 다시 로그인해주세요.",
		"error.auth_header_invalid":      "인증 헤더 형식이 올바르지 않습니다.",
		"error.not_found":                "요청한 정보를 찾을 수 없습니다.",
		"error.too_many_requests":        "요청이 너무 많습니다. 잠시 후 다시 시도해주세요.",
		"error.internal":                 "서버 내부 오류가 발생했습니다.",
		"error.guest_cart_missing":       "장바구니 정보를 찾을 수 없습니다.",
		"error.cart_empty":               "주문할 상품을 선택해주세요.",
		"error.cart_item_invalid":        "상품 정보가 올바르지 않습니다.",
		"error.cart_item_not_found":      "장바구니에서 상품을 찾을 수 없습니다.",
		"error.shipping_address_invalid": "배송지 정보를 확인해주세요.",
		"error.payment_method_invalid":   "결제 수단을 선택해주세요.",
		"error.payment_confirm_invalid":  "결제 정보가 올바르지 않습니다.",
		"error.order_not_cancelable":     "취소할 수 없는 주문 상태입니다.",
		"error.order_not_confirmable":    "구매 확정할 수 없는 주문 상태입니다.",
		"error.order_id_invalid":         "주문 번호가 올바르지 않습니다.",
		"error.coupon_code_required":     "쿠폰 코드를 입력해주세요.",
		"validation.recipient_required":  "받는 분 이름을 입력해주세요.",
		"validation.phone_required":      "연락처를 입력해주세요.",
		"validation.phone_invalid":       "올바른 휴대폰 번호를 입력해주세요.",
		"validation.zipcode_required":    "우편번호를 입력해주세요.",
		"validation.zipcode_invalid":     "우편번호는 5자리 숫자입니다.",
		"validation.address_required":    "주소를 입력해주세요.",
		"cart.items_removed":             "선택한 상품 %d개를 삭제했습니다.",
		"error.rate_limited":             "요청이 너무 많습니다. %d초 후 다시 시도해주세요.",
		"error.rate_limit_unavailable":   "잠시 후 다시 시도해주세요.",
	},
	LocaleEN: {
		"error.default":                  "Something went wrong while processing your request.",
		"error.network":                  "Unable to reach the server. Please try again later.",
		"error.bad_request":              "Invalid request.",
		"error.unauthorized":             "Please log in to continue.",
		"error.token_invalid":            "Your session is invalid. Please log in again.",
		"error.auth_header_invalid":      "Malformed authorization header.",
		"error.not_found":                "The requested resource was not found.",
		"error.too_many_requests":        "Too many requests. Please try again later.",
		"error.internal":                 "Internal server error.",
		"error.guest_cart_missing":       "Cart not found.",
		"error.cart_empty":               "Please select items to order.",
		"error.cart_item_invalid":        "Invalid product information.",
		"error.cart_item_not_found":      "The item is not in your cart.",
		"error.shipping_address_invalid": "Please check your shipping address.",
		"error.payment_method_invalid":   "Please choose a payment method.",
		"error.payment_confirm_invalid":  "Invalid payment information.",
		"error.order_not_cancelable":     "This order can no longer be cancelled.",
		"error.order_not_confirmable":    "This order cannot be confirmed yet.",
		"error.order_id_invalid":         "Invalid order id.",
		"error.coupon_code_required":     "Please enter a coupon code.",
		"validation.recipient_required":  "Recipient name is required.",
		"validation.phone_required":      "Phone number is required.",
		"validation.phone_invalid":       "Please enter a valid mobile number.",
		"validation.zipcode_required":    "Zip code is required.",
		"validation.zipcode_invalid":     "Zip code must be 5 digits.",
		"validation.address_required":    "Address is required.",
		"cart.items_removed":             "Removed %d selected items.",
		"error.rate_limited":             "Too many requests. Please retry in %d seconds.",
		"error.rate_limit_unavailable":   "Please try again shortly.",
	},
}

// T 获取文案，缺失时回退到默认语言，再回退到 key 本身
func T(locale, key string) string {
	if table, ok := messages[NormalizeLocale(locale)]; ok {
		if msg, ok := table[key]; ok {
			return msg
		}
	}
	if msg, ok := messages[DefaultLocale][key]; ok {
		return msg
	}
	return key
}

// Sprintf 格式化文案
func Sprintf(locale, key string, args ...interface{}) string {
	return fmt.Sprintf(T(locale, key), args...)
}

// NormalizeLocale 归一化语言标识
func NormalizeLocale(raw string) string {
	value := strings.ToLower(strings.TrimSpace(raw))
	switch {
	case value == "":
		return DefaultLocale
	case strings.HasPrefix(value, "en"):
		return LocaleEN
	case strings.HasPrefix(value, "ko"):
		return LocaleKO
	}
	return DefaultLocale
}

// ResolveLocale 依次读取 lang 参数与 Accept-Language
func ResolveLocale(c *gin.Context) string {
	if c == nil {
		return DefaultLocale
	}
	if lang := strings.TrimSpace(c.Query("lang")); lang != "" {
		return NormalizeLocale(lang)
	}
	header := c.GetHeader("Accept-Language")
	if header == "" {
		return DefaultLocale
	}
	first := strings.Split(header, ",")[0]
	first = strings.Split(first, ";")[0]
	return NormalizeLocale(first)
}
