package seats

import "context"

// ListFilter narrows a List call. Zero values match everything.
type ListFilter struct {
	SectionID string
	State     SeatState
}

func (f ListFilter) matches(s *Seat) bool {
	if f.SectionID != "" && s.SectionID != f.SectionID {
		return false
	}
	if f.State != "" && s.State != f.State {
		return false
	}
	return true
}

// Store owns the lifecycle state, price and existence of every live seat.
// Transition is the only primitive that prevents double-booking: it succeeds
// only if the seat is still in the expected state at the moment of the check.
type Store interface {
	Get(ctx context.Context, seatID string) (*Seat, error)

	// List returns seats ordered by (section, position), which equals
	// (section, row, number) in generation order. The ordering is stable
	// across calls so paging callers can restart at any point.
	List(ctx context.Context, filter ListFilter) ([]Seat, error)

	// Transition atomically moves a seat from one state to another. It
	// returns ErrConflict without mutating anything when the seat is no
	// longer in the expected state, and ErrNotFound for unknown or removed
	// seats. The holder is recorded on the seat; transitions back to
	// AVAILABLE clear it.
	Transition(ctx context.Context, seatID string, from, to SeatState, holder string) error

	// AdminTransition moves a seat to any state regardless of its current
	// one. Customer-facing code must never call this.
	AdminTransition(ctx context.Context, seatID string, to SeatState, holder string) error

	// SetPrice updates the seat price. Negative prices are rejected with
	// ErrInvalidArgument before any mutation.
	SetPrice(ctx context.Context, seatID string, price float64) error

	// Remove deletes a seat permanently. Later references to the id get
	// ErrNotFound.
	Remove(ctx context.Context, seatID string) error

	// Seed replaces the store contents with a freshly generated inventory.
	Seed(ctx context.Context, inventory []Seat) error

	Count(ctx context.Context) (int, error)
}
