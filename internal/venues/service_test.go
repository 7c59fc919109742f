package venues

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"

	"ticketly/internal/seats"
	"ticketly/pkg/cache"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestVenueService(t *testing.T) (*service, *seats.MemoryStore) {
	t.Helper()
	store := seats.NewMemoryStore()
	return NewService(store), store
}

func TestTopologyRegistry(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestVenueService(t)

	topology := DemoTopology()
	require.NoError(t, svc.RegisterTopology(ctx, topology))

	got, err := svc.GetTopology(ctx, topology.VenueID)
	require.NoError(t, err)
	assert.Equal(t, topology.VenueID, got.VenueID)
	assert.Len(t, got.Sections, len(topology.Sections))

	assert.Len(t, svc.ListTopologies(ctx), 1)

	require.NoError(t, svc.DeleteTopology(ctx, topology.VenueID))
	_, err = svc.GetTopology(ctx, topology.VenueID)
	assert.ErrorIs(t, err, ErrTopologyNotFound)
	assert.ErrorIs(t, svc.DeleteTopology(ctx, topology.VenueID), ErrTopologyNotFound)
}

func TestRegisterTopologyRejectsBadConfig(t *testing.T) {
	svc, _ := newTestVenueService(t)

	err := svc.RegisterTopology(context.Background(), Topology{
		VenueID: "bad",
		Sections: []Section{
			{ID: "S", Kind: KindUniformGrid, RowCount: 0, SeatsPerRow: []int{10}},
		},
	})
	require.Error(t, err)

	var confErr *ConfigurationError
	assert.True(t, errors.As(err, &confErr))
}

func TestProvision(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestVenueService(t)

	topology := DemoTopology()
	require.NoError(t, svc.RegisterTopology(ctx, topology))

	result, err := svc.Provision(ctx, topology.VenueID, "admin-1")
	require.NoError(t, err)
	assert.Equal(t, topology.VenueID, result.VenueID)
	assert.Equal(t, topology.SeatCount(), result.SeatCount)
	assert.False(t, result.DemoSeeded)
	assert.Equal(t, topology.VenueID, svc.ActiveVenueID())

	count, err := store.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, topology.SeatCount(), count)

	// Production provisioning starts every seat Available.
	live, err := store.List(ctx, seats.ListFilter{})
	require.NoError(t, err)
	for _, seat := range live {
		assert.Equal(t, seats.StateAvailable, seat.State)
	}
}

func TestProvisionUnknownVenue(t *testing.T) {
	svc, _ := newTestVenueService(t)
	_, err := svc.Provision(context.Background(), "nowhere", "admin-1")
	assert.ErrorIs(t, err, ErrTopologyNotFound)
}

func TestProvisionReplacesInventory(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestVenueService(t)

	topology := DemoTopology()
	require.NoError(t, svc.RegisterTopology(ctx, topology))
	_, err := svc.Provision(ctx, topology.VenueID, "admin-1")
	require.NoError(t, err)

	// Reserve a seat, then reprovision. Regeneration replaces the store
	// wholesale, so the reservation is gone.
	seatID := seats.SeatID("VIP", "A", 1)
	require.NoError(t, store.Transition(ctx, seatID, seats.StateAvailable, seats.StateReserved, "customer-1"))

	_, err = svc.Provision(ctx, topology.VenueID, "admin-1")
	require.NoError(t, err)

	seat, err := store.Get(ctx, seatID)
	require.NoError(t, err)
	assert.Equal(t, seats.StateAvailable, seat.State)
}

func TestProvisionDemo(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestVenueService(t)

	result, err := svc.ProvisionDemo(ctx, 42, "system")
	require.NoError(t, err)
	assert.True(t, result.DemoSeeded)
	assert.Equal(t, "concert-main", result.VenueID)
	topology := DemoTopology()
	assert.Equal(t, topology.SeatCount(), result.SeatCount)

	// The built-in topology is registered as a side effect.
	_, err = svc.GetTopology(ctx, "concert-main")
	require.NoError(t, err)

	// Demo seeding leaves a mixed-state inventory behind.
	reserved, err := store.List(ctx, seats.ListFilter{State: seats.StateReserved})
	require.NoError(t, err)
	assert.NotEmpty(t, reserved)
}

func TestGetVenueLayout(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestVenueService(t)

	topology := DemoTopology()
	require.NoError(t, svc.RegisterTopology(ctx, topology))
	_, err := svc.Provision(ctx, topology.VenueID, "admin-1")
	require.NoError(t, err)

	require.NoError(t, store.Transition(ctx, seats.SeatID("VIP", "A", 1), seats.StateAvailable, seats.StateReserved, "customer-1"))

	layout, err := svc.GetVenueLayout(ctx, topology.VenueID)
	require.NoError(t, err)
	assert.Equal(t, topology.VenueID, layout.VenueID)
	require.Len(t, layout.Sections, 5)

	vip := layout.Sections[0]
	assert.Equal(t, "VIP", vip.ID)
	assert.Equal(t, 100, vip.SeatCount)
	assert.Equal(t, 99, vip.Available)

	_, err = svc.GetVenueLayout(ctx, "nowhere")
	assert.ErrorIs(t, err, ErrTopologyNotFound)
}

// mapCache is a minimal in-memory cache.Service double.
type mapCache struct {
	items map[string][]byte
}

func (c *mapCache) Get(ctx context.Context, key string, dest interface{}) error {
	data, ok := c.items[key]
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (c *mapCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	c.items[key] = data
	return nil
}

func (c *mapCache) Delete(ctx context.Context, key string) error {
	delete(c.items, key)
	return nil
}

func (c *mapCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	for key := range c.items {
		if strings.HasPrefix(key, prefix) {
			delete(c.items, key)
		}
	}
	return nil
}

func (c *mapCache) Exists(ctx context.Context, key string) bool {
	_, ok := c.items[key]
	return ok
}

func (c *mapCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := c.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := c.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return c.Get(ctx, key, dest)
}

func (c *mapCache) Ping(ctx context.Context) error { return nil }

func TestGetVenueLayoutServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestVenueService(t)
	svc.SetCacheService(&mapCache{items: make(map[string][]byte)})

	topology := DemoTopology()
	require.NoError(t, svc.RegisterTopology(ctx, topology))
	_, err := svc.Provision(ctx, topology.VenueID, "admin-1")
	require.NoError(t, err)

	layout, err := svc.GetVenueLayout(ctx, topology.VenueID)
	require.NoError(t, err)
	assert.Equal(t, 100, layout.Sections[0].Available)

	// A direct store mutation leaves the cached layout stale.
	require.NoError(t, store.Transition(ctx, seats.SeatID("VIP", "A", 1), seats.StateAvailable, seats.StateReserved, "customer-1"))

	stale, err := svc.GetVenueLayout(ctx, topology.VenueID)
	require.NoError(t, err)
	assert.Equal(t, 100, stale.Sections[0].Available)

	// Registry writes invalidate cached layouts.
	require.NoError(t, svc.RegisterTopology(ctx, topology))

	fresh, err := svc.GetVenueLayout(ctx, topology.VenueID)
	require.NoError(t, err)
	assert.Equal(t, 99, fresh.Sections[0].Available)
}
