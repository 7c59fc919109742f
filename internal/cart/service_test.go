package cart

import (
	"context"
	"errors"
	"testing"

	"ticketly/internal/seats"
)

func newTestCartService(t *testing.T, inventory []seats.Seat) (Service, *Manager) {
	t.Helper()
	store := seedStore(t, inventory)
	manager := NewManager()
	return NewService(manager, store, seats.NewService(store)), manager
}

func TestServiceToggle(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, []seats.Seat{
		storedSeat("VIP", "A", 1, seats.StateAvailable, 150),
	})

	resp, err := svc.Toggle(ctx, "customer-1", "VIP:A:1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if len(resp.Items) != 1 || resp.Items[0] != "VIP:A:1" {
		t.Errorf("Items = %v, want [VIP:A:1]", resp.Items)
	}
	if resp.Total != 150 {
		t.Errorf("Total = %v, want 150", resp.Total)
	}

	resp, err = svc.Toggle(ctx, "customer-1", "VIP:A:1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if len(resp.Items) != 0 {
		t.Errorf("Items after deselect = %v, want empty", resp.Items)
	}
}

func TestServiceToggleValidation(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, nil)

	if _, err := svc.Toggle(ctx, "", "VIP:A:1"); !errors.Is(err, seats.ErrInvalidArgument) {
		t.Errorf("Toggle with empty customer error = %v, want ErrInvalidArgument", err)
	}
	if _, err := svc.Toggle(ctx, "customer-1", "not-a-seat-id"); !errors.Is(err, seats.ErrInvalidArgument) {
		t.Errorf("Toggle with malformed seat id error = %v, want ErrInvalidArgument", err)
	}
}

// Selecting a seat someone else holds is allowed; the conflict only surfaces
// at commit.
func TestServiceToggleDoesNotCheckSeatState(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestCartService(t, []seats.Seat{
		storedSeat("VIP", "A", 1, seats.StateSold, 150),
	})

	resp, err := svc.Toggle(ctx, "customer-1", "VIP:A:1")
	if err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if len(resp.Items) != 1 {
		t.Errorf("Items = %v, want the sold seat selected", resp.Items)
	}
}

func TestServiceGetCartWithoutCart(t *testing.T) {
	svc, _ := newTestCartService(t, nil)

	resp, err := svc.GetCart(context.Background(), "customer-1")
	if err != nil {
		t.Fatalf("GetCart() error = %v", err)
	}
	if len(resp.Items) != 0 || resp.Total != 0 {
		t.Errorf("GetCart() = %+v, want empty cart", resp)
	}
}

func TestServiceCommit(t *testing.T) {
	ctx := context.Background()
	svc, manager := newTestCartService(t, []seats.Seat{
		storedSeat("VIP", "A", 1, seats.StateAvailable, 150),
		storedSeat("VIP", "A", 2, seats.StateReserved, 150),
	})

	if _, err := svc.Toggle(ctx, "customer-1", "VIP:A:1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Toggle(ctx, "customer-1", "VIP:A:2"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}

	result, err := svc.Commit(ctx, "customer-1")
	if err != nil {
		t.Fatalf("Commit() error = %v", err)
	}
	if len(result.Succeeded) != 1 || result.Succeeded[0] != "VIP:A:1" {
		t.Errorf("Succeeded = %v, want [VIP:A:1]", result.Succeeded)
	}
	if len(result.Conflicted) != 1 || result.Conflicted[0] != "VIP:A:2" {
		t.Errorf("Conflicted = %v, want [VIP:A:2]", result.Conflicted)
	}

	// The cart survives because a conflicted id remains for retry.
	cart, ok := manager.Peek("customer-1")
	if !ok || cart.Len() != 1 {
		t.Errorf("cart after partial commit: ok=%v, want 1 conflicted item", ok)
	}
}

func TestServiceCommitEmptyCart(t *testing.T) {
	svc, _ := newTestCartService(t, nil)
	if _, err := svc.Commit(context.Background(), "customer-1"); !errors.Is(err, seats.ErrInvalidArgument) {
		t.Fatalf("Commit() on empty cart error = %v, want ErrInvalidArgument", err)
	}
}

func TestServiceCommitDestroysEmptiedCart(t *testing.T) {
	ctx := context.Background()
	svc, manager := newTestCartService(t, []seats.Seat{
		storedSeat("VIP", "A", 1, seats.StateAvailable, 150),
	})

	if _, err := svc.Toggle(ctx, "customer-1", "VIP:A:1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if _, err := svc.Commit(ctx, "customer-1"); err != nil {
		t.Fatalf("Commit() error = %v", err)
	}

	if _, ok := manager.Peek("customer-1"); ok {
		t.Error("cart should be destroyed after a clean commit")
	}
}

func TestServiceClear(t *testing.T) {
	ctx := context.Background()
	svc, manager := newTestCartService(t, []seats.Seat{
		storedSeat("VIP", "A", 1, seats.StateAvailable, 150),
	})

	if _, err := svc.Toggle(ctx, "customer-1", "VIP:A:1"); err != nil {
		t.Fatalf("Toggle() error = %v", err)
	}
	if err := svc.Clear(ctx, "customer-1"); err != nil {
		t.Fatalf("Clear() error = %v", err)
	}
	if _, ok := manager.Peek("customer-1"); ok {
		t.Error("cart should be gone after Clear")
	}

	// Clearing a customer with no cart is a no-op.
	if err := svc.Clear(ctx, "customer-2"); err != nil {
		t.Fatalf("Clear() on missing cart error = %v", err)
	}
}
