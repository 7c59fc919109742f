package seats

import (
	"context"
	"errors"
	"fmt"

	"ticketly/internal/audit"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"
)

// SectionResolver supplies section display metadata for seat detail reads.
// Implemented by the venue topology registry; optional.
type SectionResolver interface {
	SectionDisplayName(ctx context.Context, sectionID string) (string, bool)
}

type Service interface {
	// Reads for the view layer
	GetSeat(ctx context.Context, seatID string) (*Seat, error)
	GetSeatDetail(ctx context.Context, seatID string) (*SeatDetailResponse, error)
	GetSeatMap(ctx context.Context, sectionID string) (*SeatMapResponse, error)

	// Filtered listing for the admin screens
	ListSeats(ctx context.Context, filter ListFilter) ([]Seat, error)

	// ConfirmSale moves a seat the caller already holds from RESERVED to
	// SOLD. Invoked by the payment-confirmation collaborator; no payment
	// logic lives here.
	ConfirmSale(ctx context.Context, seatID, holder string) (*Seat, error)

	// InvalidateSection drops cached seat maps after any mutation.
	InvalidateSection(ctx context.Context, sectionID string)
}

type service struct {
	store           Store
	cacheService    cache.Service
	recorder        audit.Recorder
	sectionResolver SectionResolver
}

func NewService(store Store) *service {
	return &service{
		store:    store,
		recorder: audit.NewNopRecorder(),
	}
}

func (s *service) SetCacheService(cacheService cache.Service) {
	s.cacheService = cacheService
}

func (s *service) SetAuditRecorder(recorder audit.Recorder) {
	if recorder != nil {
		s.recorder = recorder
	}
}

func (s *service) SetSectionResolver(resolver SectionResolver) {
	s.sectionResolver = resolver
}

func (s *service) GetSeat(ctx context.Context, seatID string) (*Seat, error) {
	seat, err := s.store.Get(ctx, seatID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to get seat: %w", err)
	}
	return seat, nil
}

func (s *service) GetSeatDetail(ctx context.Context, seatID string) (*SeatDetailResponse, error) {
	seat, err := s.GetSeat(ctx, seatID)
	if err != nil {
		return nil, err
	}

	detail := &SeatDetailResponse{
		SeatResponse: seat.ToResponse(),
		Holder:       seat.Holder,
	}
	if s.sectionResolver != nil {
		if name, ok := s.sectionResolver.SectionDisplayName(ctx, seat.SectionID); ok {
			detail.SectionName = name
		}
	}
	return detail, nil
}

func (s *service) GetSeatMap(ctx context.Context, sectionID string) (*SeatMapResponse, error) {
	if sectionID == "" {
		return nil, fmt.Errorf("%w: section id is required", ErrInvalidArgument)
	}

	build := func() (interface{}, error) {
		seats, err := s.store.List(ctx, ListFilter{SectionID: sectionID})
		if err != nil {
			return nil, fmt.Errorf("failed to list seats: %w", err)
		}

		response := &SeatMapResponse{
			SectionID: sectionID,
			Seats:     make([]SeatResponse, 0, len(seats)),
			Total:     len(seats),
		}
		for i := range seats {
			response.Seats = append(response.Seats, seats[i].ToResponse())
			if seats[i].IsAvailable() {
				response.Available++
			}
		}
		return response, nil
	}

	if s.cacheService == nil {
		built, err := build()
		if err != nil {
			return nil, err
		}
		return built.(*SeatMapResponse), nil
	}

	var cached SeatMapResponse
	if err := s.cacheService.GetOrSet(ctx, constants.BuildSeatMapKey(sectionID), constants.TTL_SEAT_MAP, build, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (s *service) ListSeats(ctx context.Context, filter ListFilter) ([]Seat, error) {
	if filter.State != "" && !filter.State.Valid() {
		return nil, fmt.Errorf("%w: unknown seat state %q", ErrInvalidArgument, filter.State)
	}
	return s.store.List(ctx, filter)
}

func (s *service) ConfirmSale(ctx context.Context, seatID, holder string) (*Seat, error) {
	if holder == "" {
		return nil, fmt.Errorf("%w: holder is required", ErrInvalidArgument)
	}

	seat, err := s.store.Get(ctx, seatID)
	if err != nil {
		return nil, err
	}
	if seat.State == StateReserved && seat.Holder != holder {
		// Held by someone else; treat as a lost race, not an error.
		return nil, ErrConflict
	}

	if err := s.store.Transition(ctx, seatID, StateReserved, StateSold, holder); err != nil {
		return nil, err
	}

	s.InvalidateSection(ctx, seat.SectionID)
	if err := s.recorder.Record(ctx, audit.NewEvent(audit.ActionSaleConfirmed, holder, []string{seatID}, nil)); err != nil {
		logger.GetDefault().Warn("failed to record sale confirmation", "seat_id", seatID, "error", err)
	}

	return s.store.Get(ctx, seatID)
}

func (s *service) InvalidateSection(ctx context.Context, sectionID string) {
	if s.cacheService == nil || sectionID == "" {
		return
	}
	if err := s.cacheService.Delete(ctx, constants.BuildSeatMapKey(sectionID)); err != nil {
		logger.GetDefault().Debug("failed to invalidate seat map cache", "section_id", sectionID, "error", err)
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_VENUE_LAYOUTS); err != nil {
		logger.GetDefault().Debug("failed to invalidate venue layout cache", "error", err)
	}
}
