package router

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mall-next/storefront/internal/constants"
	handlershared "github.com/mall-next/storefront/internal/http/handlers/shared"
	"github.com/mall-next/storefront/internal/http/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

const testSecret = "test-secret-key-with-enough-length-123"

func TestResolveAllowedOrigin(t *testing.T) {
	if got := resolveAllowedOrigin("https://shop.example.com", []string{"*"}, false); got != "*" {
		t.Fatalf("wildcard without credentials should return *, got %s", got)
	}
	if got := resolveAllowedOrigin("https://shop.example.com", []string{"*"}, true); got != "https://shop.example.com" {
		t.Fatalf("wildcard with credentials should echo origin, got %s", got)
	}
	if got := resolveAllowedOrigin("https://x.example.com", []string{"https://shop.example.com"}, false); got != "" {
		t.Fatalf("unmatched origin should be empty, got %s", got)
	}
}

func TestRequestIDMiddleware(t *testing.T) {
	gin.SetMode(gin.TestMode)

	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": getRequestID(c)})
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set(constants.HeaderRequestID, "req-123")
	r.ServeHTTP(w, req)
	if w.Header().Get(constants.HeaderRequestID) != "req-123" {
		t.Fatalf("response request id want req-123 got %s", w.Header().Get(constants.HeaderRequestID))
	}

	w2 := httptest.NewRecorder()
	r.ServeHTTP(w2, httptest.NewRequest(http.MethodGet, "/ping", nil))
	if w2.Header().Get(constants.HeaderRequestID) == "" {
		t.Fatalf("generated request id should not be empty")
	}
}

func sessionEngine() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(SessionMiddleware(testSecret))
	handler := func(c *gin.Context) {
		session := handlershared.GetSession(c)
		c.JSON(http.StatusOK, gin.H{
			"customerId": session.CustomerID,
			"name":       session.CustomerName,
			"guestId":    session.GuestID,
			"token":      session.Token,
		})
	}
	r.GET("/session", handler)
	r.POST("/session", handler)
	return r
}

func signToken(t *testing.T, secret string, claims jwt.Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		t.Fatalf("sign token failed: %v", err)
	}
	return token
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body failed: %v", err)
	}
	return body
}

func TestSessionMiddlewareCustomerToken(t *testing.T) {
	r := sessionEngine()
	token := signToken(t, testSecret, &CustomerClaims{
		CustomerID: 7,
		Name:       "홍길동",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	body := decodeBody(t, w)
	if w.Code != http.StatusOK || body["customerId"].(float64) != 7 || body["name"] != "홍길동" {
		t.Fatalf("unexpected session: %d %v", w.Code, body)
	}
	if body["token"] != token {
		t.Fatalf("token should be forwarded unchanged")
	}
}

func TestSessionMiddlewareSubjectFallback(t *testing.T) {
	r := sessionEngine()
	token := signToken(t, testSecret, &jwt.RegisteredClaims{Subject: "42"})

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	if body := decodeBody(t, w); body["customerId"].(float64) != 42 {
		t.Fatalf("numeric sub should become customer id, got %v", body)
	}
}

func TestSessionMiddlewareRejectsBadToken(t *testing.T) {
	r := sessionEngine()
	cases := map[string]string{
		"wrong secret": "Bearer " + signToken(t, "another-secret", &CustomerClaims{CustomerID: 7}),
		"expired": "Bearer " + signToken(t, testSecret, &CustomerClaims{
			CustomerID:       7,
			RegisteredClaims: jwt.RegisteredClaims{ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute))},
		}),
		"no customer": "Bearer " + signToken(t, testSecret, &CustomerClaims{Name: "x"}),
		"bad scheme":  "Basic abc",
	}
	for name, header := range cases {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/session", nil)
		req.Header.Set("Authorization", header)
		r.ServeHTTP(w, req)

		body := decodeBody(t, w)
		if w.Code != http.StatusUnauthorized || body["errorCode"] != response.CodeTokenInvalid {
			t.Fatalf("%s: unexpected response %d %v", name, w.Code, body)
		}
	}
}

func TestSessionMiddlewareGuestID(t *testing.T) {
	r := sessionEngine()

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/session", nil))
	if body := decodeBody(t, w); body["guestId"] != "" || w.Header().Get(constants.HeaderGuestCartID) != "" {
		t.Fatalf("read requests should not issue a guest id: %v", body)
	}

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/session", nil))
	issued := w.Header().Get(constants.HeaderGuestCartID)
	if body := decodeBody(t, w); issued == "" || body["guestId"] != issued {
		t.Fatalf("write request should issue guest id, header=%s body=%v", issued, body)
	}

	w = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set(constants.HeaderGuestCartID, issued)
	r.ServeHTTP(w, req)
	if body := decodeBody(t, w); body["guestId"] != issued {
		t.Fatalf("existing guest id should be kept, got %v", body)
	}
}
