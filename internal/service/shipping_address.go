package service

import (
	"regexp"
	"strings"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/constants"
)

var (
	phonePattern   = regexp.MustCompile(`^01[016789]-?\d{3,4}-?\d{4}$`)
	zipCodePattern = regexp.MustCompile(`^\d{5}$`)
)

// ShippingAddressInput 收货地址输入
type ShippingAddressInput struct {
	RecipientName string `json:"recipientName"`
	Phone         string `json:"phone"`
	ZipCode       string `json:"zipCode"`
	Address       string `json:"address"`
	AddressDetail string `json:"addressDetail"`
	DeliveryMemo  string `json:"deliveryMemo"`
}

// Normalize 去除首尾空白并返回后端结构
func (in ShippingAddressInput) Normalize() backend.ShippingAddress {
	return backend.ShippingAddress{
		RecipientName: strings.TrimSpace(in.RecipientName),
		Phone:         strings.TrimSpace(in.Phone),
		ZipCode:       strings.TrimSpace(in.ZipCode),
		Address:       strings.TrimSpace(in.Address),
		AddressDetail: strings.TrimSpace(in.AddressDetail),
		DeliveryMemo:  strings.TrimSpace(in.DeliveryMemo),
	}
}

// ValidateShippingAddress 校验收货地址，返回全部不合法字段
func ValidateShippingAddress(addr backend.ShippingAddress) error {
	var fields []FieldError
	if addr.RecipientName == "" {
		fields = append(fields, FieldError{Field: "recipientName", Key: "validation.recipient_required"})
	}
	switch {
	case addr.Phone == "":
		fields = append(fields, FieldError{Field: "phone", Key: "validation.phone_required"})
	case !phonePattern.MatchString(addr.Phone):
		fields = append(fields, FieldError{Field: "phone", Key: "validation.phone_invalid"})
	}
	switch {
	case addr.ZipCode == "":
		fields = append(fields, FieldError{Field: "zipCode", Key: "validation.zipcode_required"})
	case !zipCodePattern.MatchString(addr.ZipCode):
		fields = append(fields, FieldError{Field: "zipCode", Key: "validation.zipcode_invalid"})
	}
	if addr.Address == "" {
		fields = append(fields, FieldError{Field: "address", Key: "validation.address_required"})
	}
	if len(fields) == 0 {
		return nil
	}
	return &ValidationError{Target: ErrShippingAddressInvalid, Fields: fields}
}

// ValidPaymentMethod 判断支付方式是否受支持
func ValidPaymentMethod(method string) bool {
	switch strings.ToUpper(strings.TrimSpace(method)) {
	case constants.PaymentMethodCard,
		constants.PaymentMethodVirtual,
		constants.PaymentMethodTransfer,
		constants.PaymentMethodMobile,
		constants.PaymentMethodEasyPay:
		return true
	}
	return false
}
