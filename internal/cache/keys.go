package cache

import "fmt"

// CustomerCartKey 会员购物车缓存 key
func CustomerCartKey(customerID int64) string {
	return fmt.Sprintf("cart:customer:%d", customerID)
}

// CustomerOrdersKey 会员订单缓存哈希 key（字段为分页或详情）
func CustomerOrdersKey(customerID int64) string {
	return fmt.Sprintf("orders:customer:%d", customerID)
}

// OrderPageField 订单列表字段
func OrderPageField(page, size int) string {
	return fmt.Sprintf("page:%d:%d", page, size)
}

// OrderDetailField 订单详情字段
func OrderDetailField(orderID int64) string {
	return fmt.Sprintf("order:%d", orderID)
}
