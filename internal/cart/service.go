package cart

import (
	"context"
	"fmt"

	"ticketly/internal/audit"
	"ticketly/internal/seats"
	"ticketly/pkg/logger"
)

type Service interface {
	// Toggle flips the seat's membership in the customer's cart
	Toggle(ctx context.Context, customerID, seatID string) (*CartResponse, error)

	// GetCart returns the current selection with its running total
	GetCart(ctx context.Context, customerID string) (*CartResponse, error)

	// Commit attempts to reserve every selected seat for the customer
	Commit(ctx context.Context, customerID string) (*CommitResult, error)

	// Clear destroys the customer's cart
	Clear(ctx context.Context, customerID string) error
}

type service struct {
	manager      *Manager
	store        seats.Store
	seatsService seats.Service
	recorder     audit.Recorder
}

func NewService(manager *Manager, store seats.Store, seatsService seats.Service) *service {
	return &service{
		manager:      manager,
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

func (s *service) Toggle(ctx context.Context, customerID, seatID string) (*CartResponse, error) {
	if customerID == "" {
		return nil, fmt.Errorf("%w: customer id is required", seats.ErrInvalidArgument)
	}
	if _, _, _, err := seats.ParseSeatID(seatID); err != nil {
		return nil, err
	}

	cart := s.manager.GetOrCreate(customerID)
	selected := cart.Toggle(seatID)

	action := audit.ActionSeatDeselected
	if selected {
		action = audit.ActionSeatSelected
	}
	s.record(ctx, audit.NewEvent(action, customerID, []string{seatID}, nil))

	return s.buildResponse(ctx, customerID, cart)
}

func (s *service) GetCart(ctx context.Context, customerID string) (*CartResponse, error) {
	cart, ok := s.manager.Peek(customerID)
	if !ok {
		return &CartResponse{CustomerID: customerID, Items: []string{}}, nil
	}
	return s.buildResponse(ctx, customerID, cart)
}

func (s *service) Commit(ctx context.Context, customerID string) (*CommitResult, error) {
	cart, ok := s.manager.Peek(customerID)
	if !ok || cart.Len() == 0 {
		return nil, fmt.Errorf("%w: cart is empty", seats.ErrInvalidArgument)
	}

	// The customer id doubles as the holder recorded on reserved seats.
	result, err := cart.Commit(ctx, s.store, customerID)
	if err != nil {
		return nil, err
	}

	for _, id := range result.Succeeded {
		if sectionID, _, _, err := seats.ParseSeatID(id); err == nil {
			s.seatsService.InvalidateSection(ctx, sectionID)
		}
	}

	s.record(ctx, audit.NewEvent(audit.ActionCartCommitted, customerID, result.Succeeded, map[string]interface{}{
		"conflicted": result.Conflicted,
		"removed":    result.Removed,
		"total":      result.Total,
	}))

	if cart.Len() == 0 {
		s.manager.Destroy(customerID)
	}

	return result, nil
}

func (s *service) Clear(ctx context.Context, customerID string) error {
	if _, ok := s.manager.Peek(customerID); !ok {
		return nil
	}

	s.manager.Destroy(customerID)
	s.record(ctx, audit.NewEvent(audit.ActionCartCleared, customerID, nil, nil))
	return nil
}

func (s *service) buildResponse(ctx context.Context, customerID string, cart *Cart) (*CartResponse, error) {
	totals, err := cart.Total(ctx, s.store)
	if err != nil {
		return nil, err
	}

	return &CartResponse{
		CustomerID: customerID,
		Items:      cart.Items(),
		Total:      totals.Total,
		Removed:    totals.Removed,
	}, nil
}

func (s *service) record(ctx context.Context, event *audit.Event) {
	if err := s.recorder.Record(ctx, event); err != nil {
		logger.GetDefault().Warn("failed to record cart audit event",
			"action", event.Action, "principal", event.Principal, "error", err)
	}
}
