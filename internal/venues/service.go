package venues

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"ticketly/internal/audit"
	"ticketly/internal/seats"
	"ticketly/internal/shared/constants"
	"ticketly/pkg/cache"
	"ticketly/pkg/logger"
)

// ErrTopologyNotFound is returned for venue ids with no registered topology
var ErrTopologyNotFound = errors.New("topology not found")

type Service interface {
	// Topology registry, the venue-configuration surface
	RegisterTopology(ctx context.Context, topology Topology) error
	GetTopology(ctx context.Context, venueID string) (*Topology, error)
	ListTopologies(ctx context.Context) []Topology
	DeleteTopology(ctx context.Context, venueID string) error

	// Provision generates the inventory for a registered topology and
	// replaces the seat store contents with it. Regeneration never mutates
	// an inventory in place.
	Provision(ctx context.Context, venueID, principal string) (*ProvisionResponse, error)

	// ProvisionDemo registers the built-in concert topology and seeds it
	// with the deterministic mixed-state demo inventory.
	ProvisionDemo(ctx context.Context, seed int64, principal string) (*ProvisionResponse, error)

	// GetVenueLayout returns the cached section overview for the view layer
	GetVenueLayout(ctx context.Context, venueID string) (*VenueLayoutResponse, error)

	// ActiveVenueID reports which venue is currently provisioned
	ActiveVenueID() string
}

type service struct {
	mu          sync.RWMutex
	topologies  map[string]Topology
	activeVenue string

	store        seats.Store
	cacheService cache.Service
	recorder     audit.Recorder
}

func NewService(store seats.Store) *service {
	return &service{
		topologies: make(map[string]Topology),
		store:      store,
		recorder:   audit.NewNopRecorder(),
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

func (s *service) RegisterTopology(ctx context.Context, topology Topology) error {
	if err := topology.Validate(); err != nil {
		return err
	}

	s.mu.Lock()
	s.topologies[topology.VenueID] = topology
	s.mu.Unlock()

	s.invalidateLayouts(ctx)
	return nil
}

func (s *service) GetTopology(ctx context.Context, venueID string) (*Topology, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topology, ok := s.topologies[venueID]
	if !ok {
		return nil, ErrTopologyNotFound
	}
	return &topology, nil
}

func (s *service) ListTopologies(ctx context.Context) []Topology {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Topology, 0, len(s.topologies))
	for _, topology := range s.topologies {
		out = append(out, topology)
	}
	return out
}

func (s *service) DeleteTopology(ctx context.Context, venueID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.topologies[venueID]; !ok {
		return ErrTopologyNotFound
	}
	delete(s.topologies, venueID)
	return nil
}

func (s *service) Provision(ctx context.Context, venueID, principal string) (*ProvisionResponse, error) {
	topology, err := s.GetTopology(ctx, venueID)
	if err != nil {
		return nil, err
	}

	inventory, err := Generate(*topology)
	if err != nil {
		return nil, err
	}

	return s.seed(ctx, venueID, principal, inventory, false)
}

func (s *service) ProvisionDemo(ctx context.Context, seed int64, principal string) (*ProvisionResponse, error) {
	topology := DemoTopology()
	if err := s.RegisterTopology(ctx, topology); err != nil {
		return nil, err
	}

	inventory, err := Generate(topology)
	if err != nil {
		return nil, err
	}
	inventory = NewDemoSeeder(seed).Apply(inventory)

	return s.seed(ctx, topology.VenueID, principal, inventory, true)
}

func (s *service) seed(ctx context.Context, venueID, principal string, inventory []seats.Seat, demo bool) (*ProvisionResponse, error) {
	if err := s.store.Seed(ctx, inventory); err != nil {
		return nil, fmt.Errorf("failed to seed inventory: %w", err)
	}

	s.mu.Lock()
	s.activeVenue = venueID
	s.mu.Unlock()

	s.invalidateLayouts(ctx)

	event := audit.NewEvent(audit.ActionInventoryProvisioned, principal, nil, map[string]interface{}{
		"venue_id":   venueID,
		"seat_count": len(inventory),
		"demo":       demo,
	})
	if err := s.recorder.Record(ctx, event); err != nil {
		logger.GetDefault().Warn("failed to record provisioning", "venue_id", venueID, "error", err)
	}

	logger.GetDefault().LogInventoryProvisioned(ctx, venueID, len(inventory))
	return &ProvisionResponse{
		VenueID:    venueID,
		SeatCount:  len(inventory),
		DemoSeeded: demo,
	}, nil
}

func (s *service) GetVenueLayout(ctx context.Context, venueID string) (*VenueLayoutResponse, error) {
	build := func() (interface{}, error) {
		topology, err := s.GetTopology(ctx, venueID)
		if err != nil {
			return nil, err
		}

		layout := &VenueLayoutResponse{
			VenueID:  topology.VenueID,
			Name:     topology.Name,
			Sections: make([]SectionLayoutResponse, 0, len(topology.Sections)),
		}
		for i := range topology.Sections {
			section := &topology.Sections[i]

			available := 0
			if s.ActiveVenueID() == venueID {
				live, err := s.store.List(ctx, seats.ListFilter{SectionID: section.ID, State: seats.StateAvailable})
				if err != nil {
					return nil, fmt.Errorf("failed to count available seats: %w", err)
				}
				available = len(live)
			}

			layout.Sections = append(layout.Sections, SectionLayoutResponse{
				ID:          section.ID,
				DisplayName: section.DisplayName,
				Kind:        string(section.Kind),
				BasePrice:   section.BasePrice,
				SeatCount:   section.SeatCount(),
				Available:   available,
			})
		}
		return layout, nil
	}

	if s.cacheService == nil {
		built, err := build()
		if err != nil {
			return nil, err
		}
		return built.(*VenueLayoutResponse), nil
	}

	var cached VenueLayoutResponse
	if err := s.cacheService.GetOrSet(ctx, constants.BuildVenueLayoutKey(venueID), constants.TTL_VENUE_LAYOUT, build, &cached); err != nil {
		return nil, err
	}
	return &cached, nil
}

func (s *service) ActiveVenueID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activeVenue
}

// SectionDisplayName resolves a section id against the active venue's
// topology. Satisfies seats.SectionResolver.
func (s *service) SectionDisplayName(ctx context.Context, sectionID string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	topology, ok := s.topologies[s.activeVenue]
	if !ok {
		return "", false
	}
	for i := range topology.Sections {
		if topology.Sections[i].ID == sectionID {
			return topology.Sections[i].DisplayName, true
		}
	}
	return "", false
}

func (s *service) invalidateLayouts(ctx context.Context) {
	if s.cacheService == nil {
		return
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_VENUE_LAYOUTS); err != nil {
		logger.GetDefault().Debug("failed to invalidate venue layout cache", "error", err)
	}
	if err := s.cacheService.DeletePattern(ctx, constants.PATTERN_INVALIDATE_SEAT_MAPS); err != nil {
		logger.GetDefault().Debug("failed to invalidate seat map cache", "error", err)
	}
}
