package seats

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"
)

// seatSlot pairs a seat with its own lock so that contention during an
// on-sale stays scoped to a single seat id.
type seatSlot struct {
	mu      sync.Mutex
	seat    Seat
	removed bool
}

// MemoryStore is the in-memory Store implementation. The outer RWMutex only
// guards the map structure; every state change happens under the per-seat
// lock, so concurrent transitions on different seats never serialize.
type MemoryStore struct {
	mu    sync.RWMutex
	slots map[string]*seatSlot
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		slots: make(map[string]*seatSlot),
	}
}

func (m *MemoryStore) slot(seatID string) (*seatSlot, bool) {
	m.mu.RLock()
	slot, ok := m.slots[seatID]
	m.mu.RUnlock()
	return slot, ok
}

func (m *MemoryStore) Get(ctx context.Context, seatID string) (*Seat, error) {
	slot, ok := m.slot(seatID)
	if !ok {
		return nil, ErrNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.removed {
		return nil, ErrNotFound
	}
	seat := slot.seat
	return &seat, nil
}

func (m *MemoryStore) List(ctx context.Context, filter ListFilter) ([]Seat, error) {
	m.mu.RLock()
	slots := make([]*seatSlot, 0, len(m.slots))
	for _, slot := range m.slots {
		slots = append(slots, slot)
	}
	m.mu.RUnlock()

	seats := make([]Seat, 0, len(slots))
	for _, slot := range slots {
		slot.mu.Lock()
		if !slot.removed && filter.matches(&slot.seat) {
			seats = append(seats, slot.seat)
		}
		slot.mu.Unlock()
	}

	sort.Slice(seats, func(i, j int) bool {
		if seats[i].SectionID != seats[j].SectionID {
			return seats[i].SectionID < seats[j].SectionID
		}
		return seats[i].Position < seats[j].Position
	})

	return seats, nil
}

func (m *MemoryStore) Transition(ctx context.Context, seatID string, from, to SeatState, holder string) error {
	if !from.Valid() || !to.Valid() {
		return fmt.Errorf("%w: unknown seat state", ErrInvalidArgument)
	}

	slot, ok := m.slot(seatID)
	if !ok {
		return ErrNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.removed {
		return ErrNotFound
	}
	if slot.seat.State != from {
		return ErrConflict
	}

	applyTransition(&slot.seat, to, holder)
	return nil
}

func (m *MemoryStore) AdminTransition(ctx context.Context, seatID string, to SeatState, holder string) error {
	if !to.Valid() {
		return fmt.Errorf("%w: unknown seat state", ErrInvalidArgument)
	}

	slot, ok := m.slot(seatID)
	if !ok {
		return ErrNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.removed {
		return ErrNotFound
	}

	applyTransition(&slot.seat, to, holder)
	return nil
}

func (m *MemoryStore) SetPrice(ctx context.Context, seatID string, price float64) error {
	if price < 0 {
		return fmt.Errorf("%w: price must be >= 0, got %v", ErrInvalidArgument, price)
	}

	slot, ok := m.slot(seatID)
	if !ok {
		return ErrNotFound
	}

	slot.mu.Lock()
	defer slot.mu.Unlock()
	if slot.removed {
		return ErrNotFound
	}

	slot.seat.Price = price
	slot.seat.UpdatedAt = time.Now().UTC()
	return nil
}

func (m *MemoryStore) Remove(ctx context.Context, seatID string) error {
	slot, ok := m.slot(seatID)
	if !ok {
		return ErrNotFound
	}

	// Mark first under the seat lock so an in-flight Transition holding a
	// stale slot pointer observes the removal, then drop the map entry.
	slot.mu.Lock()
	if slot.removed {
		slot.mu.Unlock()
		return ErrNotFound
	}
	slot.removed = true
	slot.mu.Unlock()

	m.mu.Lock()
	delete(m.slots, seatID)
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Seed(ctx context.Context, inventory []Seat) error {
	now := time.Now().UTC()
	slots := make(map[string]*seatSlot, len(inventory))
	for _, seat := range inventory {
		if _, exists := slots[seat.ID]; exists {
			return fmt.Errorf("%w: duplicate seat id %q", ErrInvalidArgument, seat.ID)
		}
		if seat.CreatedAt.IsZero() {
			seat.CreatedAt = now
		}
		seat.UpdatedAt = now
		slots[seat.ID] = &seatSlot{seat: seat}
	}

	m.mu.Lock()
	m.slots = slots
	m.mu.Unlock()
	return nil
}

func (m *MemoryStore) Count(ctx context.Context) (int, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.slots), nil
}

func applyTransition(seat *Seat, to SeatState, holder string) {
	seat.State = to
	if to == StateAvailable {
		seat.Holder = ""
	} else {
		seat.Holder = holder
	}
	seat.UpdatedAt = time.Now().UTC()
}
