package cartstore

import (
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/mall-next/storefront/internal/models"
)

func TestEncodeDecodeRoundTrip(t *testing.T) {
	s := New(WithClock(fixedClock()))
	s.AddItem(models.CartLineItem{ProductID: 7, ProductName: "머그컵", ProductImage: "/img/7.png", Price: models.NewMoney(12000), StockQuantity: 5}, 2)
	s.AddItem(product(9, 3300), 1)
	s.ToggleSelection(9)

	data, err := Encode(s)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if !strings.HasPrefix(string(data), `{"items":[`) {
		t.Fatalf("unexpected blob: %s", data)
	}

	restored, err := Decode(data)
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	want := s.Items()
	got := restored.Items()
	if len(got) != len(want) {
		t.Fatalf("item count want %d got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].ProductID != want[i].ProductID ||
			got[i].Quantity != want[i].Quantity ||
			got[i].Selected != want[i].Selected ||
			got[i].ProductImage != want[i].ProductImage ||
			!got[i].Price.Equal(want[i].Price.Decimal) ||
			!got[i].AddedAt.Equal(want[i].AddedAt) {
			t.Fatalf("item %d mismatch: want %+v got %+v", i, want[i], got[i])
		}
	}
}

func TestEncodeEmptyStore(t *testing.T) {
	data, err := Encode(New())
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if string(data) != `{"items":[]}` {
		t.Fatalf("unexpected blob: %s", data)
	}
	restored, err := Decode(nil)
	if err != nil || restored.Len() != 0 {
		t.Fatalf("decode empty failed: %v", err)
	}
}

func TestDecodeDropsInvalidAndMergesDuplicates(t *testing.T) {
	raw := `{"items":[
		{"productId":1,"productName":"a","price":1000,"quantity":1,"selected":true},
		{"productId":1,"productName":"a","price":1000,"quantity":2,"selected":true},
		{"productId":2,"productName":"b","price":500,"quantity":0,"selected":true},
		{"productId":0,"productName":"c","price":500,"quantity":1,"selected":true}
	]}`
	s, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Len() != 1 {
		t.Fatalf("expected 1 line, got %d", s.Len())
	}
	item, _ := s.Find(1)
	if item.Quantity != 3 {
		t.Fatalf("quantity want 3 got %d", item.Quantity)
	}
}

func TestDecodeClampsMergedQuantity(t *testing.T) {
	raw := fmt.Sprintf(`{"items":[
		{"productId":1,"productName":"a","price":1000,"quantity":%d,"selected":true},
		{"productId":1,"productName":"a","price":1000,"quantity":5,"selected":true},
		{"productId":2,"productName":"b","price":500,"quantity":%d,"selected":true}
	]}`, math.MaxInt, math.MaxInt)
	s, err := Decode([]byte(raw))
	if err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if s.Len() != 2 {
		t.Fatalf("expected 2 lines, got %d", s.Len())
	}
	for _, item := range s.Items() {
		if item.Quantity != MaxQuantity {
			t.Fatalf("quantity should clamp to %d: %+v", MaxQuantity, item)
		}
	}
	if s.TotalItems() != 2*MaxQuantity {
		t.Fatalf("unexpected total items %d", s.TotalItems())
	}
}

func TestDecodeRejectsMalformedBlob(t *testing.T) {
	if _, err := Decode([]byte(`{"items":`)); err == nil {
		t.Fatalf("expected error for malformed blob")
	}
}
