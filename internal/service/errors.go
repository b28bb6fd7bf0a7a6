package service

import "errors"

var (
	ErrLoginRequired          = errors.New("login required")
	ErrGuestIDRequired        = errors.New("guest cart id required")
	ErrCartEmpty              = errors.New("no selected cart items")
	ErrInvalidCartItem        = errors.New("invalid cart item")
	ErrCartItemNotFound       = errors.New("cart item not found")
	ErrShippingAddressInvalid = errors.New("shipping address invalid")
	ErrPaymentMethodInvalid   = errors.New("payment method invalid")
	ErrPaymentConfirmInvalid  = errors.New("payment confirm params invalid")
	ErrOrderNotCancelable     = errors.New("order cannot be cancelled in current status")
	ErrOrderNotConfirmable    = errors.New("order cannot be confirmed in current status")
	ErrInvalidOrderID         = errors.New("invalid order id")
	ErrCouponCodeRequired     = errors.New("coupon code required")
)

// FieldError 表单字段校验错误
type FieldError struct {
	Field string
	Key   string
}

// ValidationError 多字段校验错误，Unwrap 到对应的哨兵错误
type ValidationError struct {
	Target error
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	if e == nil || e.Target == nil {
		return "validation failed"
	}
	return e.Target.Error()
}

func (e *ValidationError) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Target
}
