package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/mall-next/storefront/internal/models"
)

func TestLocalCartAddPersistsAndSchedulesExpiry(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	scheduler := &fakeScheduler{}
	cart := NewLocalCart(repo, scheduler, "guest-1", 24*time.Hour)
	ctx := context.Background()

	input := AddCartItemInput{ProductID: 1, ProductName: "텀블러", Price: models.NewMoney(12000), StockQuantity: 5, Quantity: 2}
	if err := cart.AddItem(ctx, input); err != nil {
		t.Fatalf("add failed: %v", err)
	}
	if err := cart.AddItem(ctx, AddCartItemInput{ProductID: 1, Quantity: 1}); err != nil {
		t.Fatalf("second add failed: %v", err)
	}

	record, err := repo.GetByGuestID(ctx, "guest-1")
	if err != nil || record == nil {
		t.Fatalf("expected persisted cart, err=%v", err)
	}
	if record.ItemCount != 1 {
		t.Fatalf("expected one line, got %d", record.ItemCount)
	}

	// 重新构造策略，模拟新的请求
	view, err := NewLocalCart(repo, nil, "guest-1", 24*time.Hour).Load(ctx)
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if len(view.Items) != 1 || view.Items[0].Quantity != 3 || !view.Items[0].Selected {
		t.Fatalf("unexpected items: %+v", view.Items)
	}
	if view.TotalAmount.String() != "36000" || view.TotalQuantity != 3 {
		t.Fatalf("unexpected totals: amount=%s qty=%d", view.TotalAmount.String(), view.TotalQuantity)
	}
	if view.IsAuthenticated || view.IsLoading {
		t.Fatalf("guest view flags mismatch: %+v", view)
	}
	if len(scheduler.guests) != 1 || scheduler.guests[0] != "guest-1" || scheduler.delays[0] != 24*time.Hour {
		t.Fatalf("expiry should be scheduled once on creation: %+v", scheduler)
	}
}

func TestLocalCartRejectsInvalidInput(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	cart := NewLocalCart(repo, nil, "guest-2", time.Hour)
	ctx := context.Background()

	if err := cart.AddItem(ctx, AddCartItemInput{ProductID: 1, Quantity: 0}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem, got %v", err)
	}
	if err := cart.AddItem(ctx, AddCartItemInput{ProductID: 0, Quantity: 1}); !errors.Is(err, ErrInvalidCartItem) {
		t.Fatalf("expected ErrInvalidCartItem, got %v", err)
	}
	record, _ := repo.GetByGuestID(ctx, "guest-2")
	if record != nil {
		t.Fatalf("invalid input should not persist")
	}

	if _, err := NewLocalCart(repo, nil, "", time.Hour).Load(ctx); !errors.Is(err, ErrGuestIDRequired) {
		t.Fatalf("expected ErrGuestIDRequired, got %v", err)
	}
}

func TestLocalCartUpdateQuantityBelowOneIsNoop(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	cart := NewLocalCart(repo, nil, "guest-3", time.Hour)
	ctx := context.Background()
	_ = cart.AddItem(ctx, AddCartItemInput{ProductID: 5, Price: models.NewMoney(1000), Quantity: 4})

	if err := cart.UpdateQuantity(ctx, 5, 0); err != nil {
		t.Fatalf("update to 0 should be ignored, got %v", err)
	}
	view, _ := cart.Load(ctx)
	if view.Items[0].Quantity != 4 {
		t.Fatalf("quantity should stay 4, got %d", view.Items[0].Quantity)
	}
	if err := cart.UpdateQuantity(ctx, 5, 2); err != nil {
		t.Fatalf("update failed: %v", err)
	}
	view, _ = cart.Load(ctx)
	if view.Items[0].Quantity != 2 {
		t.Fatalf("quantity want 2 got %d", view.Items[0].Quantity)
	}
	if err := cart.UpdateQuantity(ctx, 99, 2); !errors.Is(err, ErrCartItemNotFound) {
		t.Fatalf("expected ErrCartItemNotFound, got %v", err)
	}
}

func TestLocalCartSelectionAndRemoveSelected(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	cart := NewLocalCart(repo, nil, "guest-4", time.Hour)
	ctx := context.Background()
	_ = cart.AddItem(ctx, AddCartItemInput{ProductID: 1, Price: models.NewMoney(1000), Quantity: 1})
	_ = cart.AddItem(ctx, AddCartItemInput{ProductID: 2, Price: models.NewMoney(2000), Quantity: 1})

	if err := cart.SetSelection(ctx, 1, nil); err != nil {
		t.Fatalf("toggle failed: %v", err)
	}
	view, _ := cart.Load(ctx)
	if view.SelectedAmount.String() != "2000" || view.TotalAmount.String() != "3000" {
		t.Fatalf("unexpected amounts: selected=%s total=%s", view.SelectedAmount.String(), view.TotalAmount.String())
	}

	if err := cart.RemoveSelected(ctx); err != nil {
		t.Fatalf("remove selected failed: %v", err)
	}
	view, _ = cart.Load(ctx)
	if len(view.Items) != 1 || view.Items[0].ProductID != 1 {
		t.Fatalf("only unselected item should remain: %+v", view.Items)
	}

	if err := cart.SetAllSelection(ctx, true); err != nil {
		t.Fatalf("select all failed: %v", err)
	}
	view, _ = cart.Load(ctx)
	if !view.Items[0].Selected {
		t.Fatalf("select all should mark item selected")
	}
}

func TestLocalCartClearDeletesRecord(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	cart := NewLocalCart(repo, nil, "guest-5", time.Hour)
	ctx := context.Background()
	_ = cart.AddItem(ctx, AddCartItemInput{ProductID: 1, Price: models.NewMoney(1000), Quantity: 1})

	if err := cart.Clear(ctx); err != nil {
		t.Fatalf("clear failed: %v", err)
	}
	record, _ := repo.GetByGuestID(ctx, "guest-5")
	if record != nil {
		t.Fatalf("clear should delete the record")
	}
	view, err := cart.Load(ctx)
	if err != nil || len(view.Items) != 0 {
		t.Fatalf("expected empty cart, items=%v err=%v", view, err)
	}
}

func TestLocalCartCorruptedPayloadLoadsEmpty(t *testing.T) {
	repo, _ := setupGuestRepo(t)
	ctx := context.Background()
	if err := repo.Save(ctx, &models.GuestCart{GuestID: "guest-6", Payload: "{broken"}); err != nil {
		t.Fatalf("seed failed: %v", err)
	}
	cart := NewLocalCart(repo, nil, "guest-6", time.Hour)
	view, err := cart.Load(ctx)
	if err != nil || len(view.Items) != 0 {
		t.Fatalf("corrupted payload should load empty, view=%+v err=%v", view, err)
	}
	if err := cart.AddItem(ctx, AddCartItemInput{ProductID: 3, Price: models.NewMoney(500), Quantity: 1}); err != nil {
		t.Fatalf("add after corruption failed: %v", err)
	}
	view, _ = cart.Load(ctx)
	if len(view.Items) != 1 {
		t.Fatalf("expected payload to be overwritten, got %+v", view.Items)
	}
}
