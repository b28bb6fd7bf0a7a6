package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mall-next/storefront/internal/backend"
	"github.com/mall-next/storefront/internal/cache"
)

func TestServerCartLoadUsesReadCache(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 1, true)
	store, mr := setupCache(t)
	cart := NewServerCart(fake, store, time.Minute, memberSession())
	ctx := context.Background()

	if _, err := cart.Load(ctx); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	view, err := cart.Load(ctx)
	if err != nil {
		t.Fatalf("second load failed: %v", err)
	}
	if fake.getCartCalls != 1 {
		t.Fatalf("second load should hit cache, backend calls=%d", fake.getCartCalls)
	}
	if !mr.Exists("test:cart:customer:7") {
		t.Fatalf("expected cart cached, keys=%v", mr.Keys())
	}
	if !view.IsAuthenticated || view.Source != "server" || view.Items[0].CartItemID == 0 {
		t.Fatalf("unexpected view: %+v", view)
	}

	mr.FastForward(2 * time.Minute)
	if _, err := cart.Load(ctx); err != nil {
		t.Fatalf("load after ttl failed: %v", err)
	}
	if fake.getCartCalls != 2 {
		t.Fatalf("expired cache should refetch, backend calls=%d", fake.getCartCalls)
	}
}

func TestServerCartMutationInvalidatesCache(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 1, true)
	store, mr := setupCache(t)
	cart := NewServerCart(fake, store, time.Minute, memberSession())
	ctx := context.Background()

	if err := cart.UpdateQuantity(ctx, 1, 3); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if mr.Exists("test:cart:customer:7") {
		t.Fatalf("mutation should invalidate cart cache")
	}
	view, _ := cart.Load(ctx)
	if view.Items[0].Quantity != 3 || view.TotalAmount.String() != "90000" {
		t.Fatalf("unexpected view after update: %+v", view.Items)
	}
}

func TestServerCartFailureKeepsCache(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 1, true)
	store, mr := setupCache(t)
	cart := NewServerCart(fake, store, time.Minute, memberSession())
	ctx := context.Background()
	_, _ = cart.Load(ctx)

	rejected := &backend.APIError{Status: 409, Code: "OUT_OF_STOCK", Message: "재고가 부족합니다."}
	fake.failures["UpdateCartItem"] = rejected
	err := cart.UpdateQuantity(ctx, 1, 50)
	if !errors.Is(err, rejected) {
		t.Fatalf("expected backend error, got %v", err)
	}
	if backend.MessageOf(err) != "재고가 부족합니다." {
		t.Fatalf("backend message should surface, got %s", backend.MessageOf(err))
	}
	if !mr.Exists("test:cart:customer:7") {
		t.Fatalf("failed mutation should not invalidate cache")
	}
}

func TestServerCartUpdateQuantityBelowOneSkipsBackend(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 2, true)
	cart := NewServerCart(fake, nil, time.Minute, memberSession())

	if err := cart.UpdateQuantity(context.Background(), 1, 0); err != nil {
		t.Fatalf("expected noop, got %v", err)
	}
	if fake.callCount("UpdateCartItem") != 0 || fake.callCount("GetMyCart") != 0 {
		t.Fatalf("backend should not be called, calls=%v", fake.calls)
	}
}

func TestServerCartSelectionResolvesCartItemID(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 1, true)
	fake.seedCartItem(2, "마우스", 15000, 1, true)
	cart := NewServerCart(fake, nil, time.Minute, memberSession())
	ctx := context.Background()

	if err := cart.SetSelection(ctx, 2, nil); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	view, _ := cart.Load(ctx)
	if view.SelectedAmount.String() != "30000" {
		t.Fatalf("selected amount want 30000 got %s", view.SelectedAmount.String())
	}
	if err := cart.RemoveItem(ctx, 99); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestServerCartRemoveSelected(t *testing.T) {
	fake := newFakeBackend()
	fake.seedCartItem(1, "키보드", 30000, 1, true)
	fake.seedCartItem(2, "마우스", 15000, 1, false)
	fake.seedCartItem(3, "모니터", 200000, 1, true)
	store, mr := setupCache(t)
	cart := NewServerCart(fake, store, time.Minute, memberSession())
	ctx := context.Background()

	if err := cart.RemoveSelected(ctx); err != nil {
		t.Fatalf("remove selected failed: %v", err)
	}
	if fake.callCount("RemoveCartItem") != 2 {
		t.Fatalf("expected two removals, calls=%v", fake.calls)
	}
	if mr.Exists("test:cart:customer:7") {
		t.Fatalf("cache should be invalidated")
	}
	view, _ := cart.Load(ctx)
	if len(view.Items) != 1 || view.Items[0].ProductID != 2 {
		t.Fatalf("unexpected remaining items: %+v", view.Items)
	}
}

func TestServerCartRequiresLogin(t *testing.T) {
	cart := NewServerCart(newFakeBackend(), cache.NewStore(nil, ""), time.Minute, Session{GuestID: "g"})
	if _, err := cart.Load(context.Background()); !errors.Is(err, ErrLoginRequired) {
		t.Fatalf("expected ErrLoginRequired, got %v", err)
	}
}
