package service

import "strings"

// Session 一次请求的购物身份
// 会员会话携带后端签发的 token，游客会话仅有购物车 ID
type Session struct {
	CustomerID   int64
	CustomerName string
	Email        string
	Token        string
	GuestID      string
}

// Authenticated 是否为已登录会员
func (s Session) Authenticated() bool {
	return s.CustomerID > 0 && strings.TrimSpace(s.Token) != ""
}

// GuestSession 创建游客会话
func GuestSession(guestID string) Session {
	return Session{GuestID: strings.TrimSpace(guestID)}
}
