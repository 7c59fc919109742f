package admin

import (
	"context"
	"fmt"

	"ticketly/internal/audit"
	"ticketly/internal/seats"
	"ticketly/pkg/logger"
)

// Service wraps the store's unconditional operations with principal
// attribution. Authorization itself happens in the JWT middleware; this
// layer only insists that every override is attributable to someone.
type Service interface {
	// ForceState moves a seat to any state regardless of the lifecycle,
	// including edges no customer path allows, like Sold back to Available
	// for a refund.
	ForceState(ctx context.Context, principal, seatID string, to seats.SeatState) (*seats.Seat, error)

	// CycleState advances the seat one step in the admin click-through
	// cycle Available -> Reserved -> Sold -> Available.
	CycleState(ctx context.Context, principal, seatID string) (*seats.Seat, error)

	// OverridePrice sets the seat price independently of its section
	OverridePrice(ctx context.Context, principal, seatID string, price float64) (*seats.Seat, error)

	// RemoveSeat deletes the seat permanently
	RemoveSeat(ctx context.Context, principal, seatID string) error

	// ListSeats is the filtered listing behind the admin seat table
	ListSeats(ctx context.Context, filter seats.ListFilter) ([]seats.Seat, error)
}

type service struct {
	store        seats.Store
	seatsService seats.Service
	recorder     audit.Recorder
}

func NewService(store seats.Store, seatsService seats.Service) *service {
	return &service{
		store:        store,
		seatsService: seatsService,
		recorder:     audit.NewNopRecorder(),
	}
}

func (s *service) SetAuditRecorder(recorder audit.Recorder) {
	if recorder != nil {
		s.recorder = recorder
	}
}

func (s *service) ForceState(ctx context.Context, principal, seatID string, to seats.SeatState) (*seats.Seat, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}
	if !to.Valid() {
		return nil, fmt.Errorf("%w: unknown seat state %q", seats.ErrInvalidArgument, to)
	}

	if err := s.store.AdminTransition(ctx, seatID, to, principal); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, audit.ActionAdminForceState, principal, seatID, map[string]interface{}{
		"to": to,
	})
	return s.store.Get(ctx, seatID)
}

func (s *service) CycleState(ctx context.Context, principal, seatID string) (*seats.Seat, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}

	seat, err := s.store.Get(ctx, seatID)
	if err != nil {
		return nil, err
	}

	next := seat.State.Next()
	if err := s.store.AdminTransition(ctx, seatID, next, principal); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, audit.ActionAdminCycleState, principal, seatID, map[string]interface{}{
		"from": seat.State,
		"to":   next,
	})
	return s.store.Get(ctx, seatID)
}

func (s *service) OverridePrice(ctx context.Context, principal, seatID string, price float64) (*seats.Seat, error) {
	if err := requirePrincipal(principal); err != nil {
		return nil, err
	}

	if err := s.store.SetPrice(ctx, seatID, price); err != nil {
		return nil, err
	}

	s.afterMutation(ctx, audit.ActionAdminPriceOverride, principal, seatID, map[string]interface{}{
		"price": price,
	})
	return s.store.Get(ctx, seatID)
}

func (s *service) RemoveSeat(ctx context.Context, principal, seatID string) error {
	if err := requirePrincipal(principal); err != nil {
		return err
	}

	if err := s.store.Remove(ctx, seatID); err != nil {
		return err
	}

	s.afterMutation(ctx, audit.ActionAdminSeatRemoved, principal, seatID, nil)
	return nil
}

func (s *service) ListSeats(ctx context.Context, filter seats.ListFilter) ([]seats.Seat, error) {
	return s.seatsService.ListSeats(ctx, filter)
}

func (s *service) afterMutation(ctx context.Context, action audit.ActionType, principal, seatID string, details map[string]interface{}) {
	if sectionID, _, _, err := seats.ParseSeatID(seatID); err == nil {
		s.seatsService.InvalidateSection(ctx, sectionID)
	}

	logger.GetDefault().LogAdminOverride(ctx, string(action), seatID, principal)
	if err := s.recorder.Record(ctx, audit.NewEvent(action, principal, []string{seatID}, details)); err != nil {
		logger.GetDefault().Warn("failed to record admin override",
			"action", action, "seat_id", seatID, "error", err)
	}
}

func requirePrincipal(principal string) error {
	if principal == "" {
		return fmt.Errorf("%w: admin principal is required", seats.ErrInvalidArgument)
	}
	return nil
}
