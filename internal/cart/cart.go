package cart

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketly/internal/seats"
)

// Cart is one customer's working set of seat ids. It holds references only,
// never a copy of seat state, so a selected seat can be taken by someone
// else between selection and commit. That staleness is resolved at commit
// time by the store's conditional transition.
type Cart struct {
	mu     sync.Mutex
	order  []string
	member map[string]bool
}

func NewCart() *Cart {
	return &Cart{
		member: make(map[string]bool),
	}
}

// Toggle flips membership for the seat id and reports whether it is now
// selected. It never consults the store: selecting a seat someone else holds
// is allowed and surfaces as a conflict at commit.
func (c *Cart) Toggle(seatID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.toggleLocked(seatID)
}

func (c *Cart) toggleLocked(seatID string) bool {
	if c.member[seatID] {
		delete(c.member, seatID)
		for i, id := range c.order {
			if id == seatID {
				c.order = append(c.order[:i], c.order[i+1:]...)
				break
			}
		}
		return false
	}

	c.member[seatID] = true
	c.order = append(c.order, seatID)
	return true
}

// Items returns the selected ids in selection order
func (c *Cart) Items() []string {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

func (c *Cart) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.order)
}

// Clear empties the cart without touching the store
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Cart) clearLocked() {
	c.order = nil
	c.member = make(map[string]bool)
}

// Totals is the running price aggregate for the current selection. Seats
// removed by an admin since selection are skipped, not errors, and surfaced
// so the caller can warn the customer.
type Totals struct {
	Total   float64  `json:"total"`
	Removed []string `json:"removed,omitempty"`
}

// Total sums the current store price of every selected seat
func (c *Cart) Total(ctx context.Context, store seats.Store) (*Totals, error) {
	totals := &Totals{}
	for _, id := range c.Items() {
		seat, err := store.Get(ctx, id)
		if err != nil {
			if errors.Is(err, seats.ErrNotFound) {
				totals.Removed = append(totals.Removed, id)
				continue
			}
			return nil, fmt.Errorf("failed to price seat %s: %w", id, err)
		}
		totals.Total += seat.Price
	}
	return totals, nil
}

// CommitResult reports the per-seat outcome of a commit. Total covers only
// the seats that actually moved to Reserved.
type CommitResult struct {
	Succeeded  []string `json:"succeeded"`
	Conflicted []string `json:"conflicted"`
	Removed    []string `json:"removed,omitempty"`
	Total      float64  `json:"total"`
}

// Commit attempts Available -> Reserved for every selected seat
// independently. One contended seat never blocks the rest of a group
// purchase: each seat either moves or is reported conflicted. Afterward the
// cart retains only the conflicted ids so the customer can retry or drop
// them. Succeeded transitions are never rolled back on a later failure.
func (c *Cart) Commit(ctx context.Context, store seats.Store, holder string) (*CommitResult, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	result := &CommitResult{
		Succeeded:  []string{},
		Conflicted: []string{},
	}

	for _, id := range c.order {
		err := store.Transition(ctx, id, seats.StateAvailable, seats.StateReserved, holder)
		switch {
		case err == nil:
			result.Succeeded = append(result.Succeeded, id)
			if seat, getErr := store.Get(ctx, id); getErr == nil {
				result.Total += seat.Price
			}
		case errors.Is(err, seats.ErrConflict):
			result.Conflicted = append(result.Conflicted, id)
		case errors.Is(err, seats.ErrNotFound):
			result.Removed = append(result.Removed, id)
		default:
			return nil, fmt.Errorf("failed to commit seat %s: %w", id, err)
		}
	}

	c.clearLocked()
	for _, id := range result.Conflicted {
		c.toggleLocked(id)
	}

	return result, nil
}
