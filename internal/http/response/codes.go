package response

// 业务错误码，随 errorCode 字段返回给前端
const (
	CodeBadRequest          = "BAD_REQUEST"
	CodeValidationFailed    = "VALIDATION_FAILED"
	CodeLoginRequired       = "LOGIN_REQUIRED"
	CodeTokenInvalid        = "TOKEN_INVALID"
	CodeNotFound            = "NOT_FOUND"
	CodeConflict            = "CONFLICT"
	CodeTooManyRequests     = "TOO_MANY_REQUESTS"
	CodeGuestCartMissing    = "GUEST_CART_MISSING"
	CodeCartEmpty           = "CART_EMPTY"
	CodeCartItemInvalid     = "CART_ITEM_INVALID"
	CodeCartItemNotFound    = "CART_ITEM_NOT_FOUND"
	CodePaymentFailed       = "PAYMENT_FAILED"
	CodeOrderNotCancelable  = "ORDER_NOT_CANCELABLE"
	CodeOrderNotConfirmable = "ORDER_NOT_CONFIRMABLE"
	CodeBackendUnavailable  = "BACKEND_UNAVAILABLE"
	CodeInternal            = "INTERNAL_ERROR"
)
