package seats

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"ticketly/pkg/cache"
)

func newTestService(t *testing.T, inventory []Seat) (*service, *MemoryStore) {
	t.Helper()
	store := NewMemoryStore()
	seedInventory(t, store, inventory)
	return NewService(store), store
}

func TestService_ConfirmSale(t *testing.T) {
	ctx := context.Background()
	seatID := SeatID("VIP", "A", 1)

	tests := []struct {
		name       string
		seatState  SeatState
		seatHolder string
		holder     string
		wantErr    error
	}{
		{
			name:       "holder confirms own reservation",
			seatState:  StateReserved,
			seatHolder: "customer-1",
			holder:     "customer-1",
		},
		{
			name:       "reserved by someone else",
			seatState:  StateReserved,
			seatHolder: "customer-2",
			holder:     "customer-1",
			wantErr:    ErrConflict,
		},
		{
			name:      "seat not reserved",
			seatState: StateAvailable,
			holder:    "customer-1",
			wantErr:   ErrConflict,
		},
		{
			name:       "already sold",
			seatState:  StateSold,
			seatHolder: "customer-1",
			holder:     "customer-1",
			wantErr:    ErrConflict,
		},
		{
			name:      "missing holder",
			seatState: StateReserved,
			holder:    "",
			wantErr:   ErrInvalidArgument,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			seat := testSeat("VIP", "A", 1, 0, tt.seatState, 150)
			seat.Holder = tt.seatHolder
			svc, store := newTestService(t, []Seat{seat})

			sold, err := svc.ConfirmSale(ctx, seatID, tt.holder)
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("ConfirmSale() error = %v, want %v", err, tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Fatalf("ConfirmSale() error = %v", err)
			}
			if sold.State != StateSold {
				t.Errorf("returned state = %s, want %s", sold.State, StateSold)
			}

			stored, err := store.Get(ctx, seatID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if stored.State != StateSold || stored.Holder != tt.holder {
				t.Errorf("stored seat = (%s, %q), want (%s, %q)", stored.State, stored.Holder, StateSold, tt.holder)
			}
		})
	}
}

func TestService_ConfirmSaleUnknownSeat(t *testing.T) {
	svc, _ := newTestService(t, nil)
	if _, err := svc.ConfirmSale(context.Background(), "VIP:A:1", "customer-1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("ConfirmSale() error = %v, want ErrNotFound", err)
	}
}

func TestService_GetSeatMap(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestService(t, []Seat{
		testSeat("VIP", "A", 1, 0, StateAvailable, 150),
		testSeat("VIP", "A", 2, 1, StateReserved, 150),
		testSeat("VIP", "A", 3, 2, StateSold, 150),
		testSeat("TRIBUNA", "A", 1, 0, StateAvailable, 50),
	})

	seatMap, err := svc.GetSeatMap(ctx, "VIP")
	if err != nil {
		t.Fatalf("GetSeatMap() error = %v", err)
	}
	if seatMap.Total != 3 {
		t.Errorf("Total = %d, want 3", seatMap.Total)
	}
	if seatMap.Available != 1 {
		t.Errorf("Available = %d, want 1", seatMap.Available)
	}
	if len(seatMap.Seats) != 3 {
		t.Errorf("len(Seats) = %d, want 3", len(seatMap.Seats))
	}

	if _, err := svc.GetSeatMap(ctx, ""); !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("GetSeatMap(\"\") error = %v, want ErrInvalidArgument", err)
	}
}

type stubSectionResolver struct {
	names map[string]string
}

func (r *stubSectionResolver) SectionDisplayName(ctx context.Context, sectionID string) (string, bool) {
	name, ok := r.names[sectionID]
	return name, ok
}

func TestService_GetSeatDetail(t *testing.T) {
	ctx := context.Background()
	seat := testSeat("VIP", "A", 1, 0, StateReserved, 150)
	seat.Holder = "customer-1"
	svc, _ := newTestService(t, []Seat{seat})

	// Without a resolver the detail still works, just without section metadata.
	detail, err := svc.GetSeatDetail(ctx, seat.ID)
	if err != nil {
		t.Fatalf("GetSeatDetail() error = %v", err)
	}
	if detail.SectionName != "" {
		t.Errorf("SectionName = %q, want empty without resolver", detail.SectionName)
	}
	if detail.Holder != "customer-1" {
		t.Errorf("Holder = %q, want customer-1", detail.Holder)
	}

	svc.SetSectionResolver(&stubSectionResolver{names: map[string]string{"VIP": "VIP Front"}})
	detail, err = svc.GetSeatDetail(ctx, seat.ID)
	if err != nil {
		t.Fatalf("GetSeatDetail() error = %v", err)
	}
	if detail.SectionName != "VIP Front" {
		t.Errorf("SectionName = %q, want VIP Front", detail.SectionName)
	}

	if _, err := svc.GetSeatDetail(ctx, "VIP:A:9"); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetSeatDetail(unknown) error = %v, want ErrNotFound", err)
	}
}

// fakeCache is an in-memory cache.Service double with the same JSON
// round-trip semantics as the Redis-backed implementation.
type fakeCache struct {
	mu    sync.Mutex
	items map[string][]byte
}

func newFakeCache() *fakeCache {
	return &fakeCache{items: make(map[string][]byte)}
}

func (f *fakeCache) Get(ctx context.Context, key string, dest interface{}) error {
	f.mu.Lock()
	data, ok := f.items[key]
	f.mu.Unlock()
	if !ok {
		return cache.ErrCacheMiss
	}
	return json.Unmarshal(data, dest)
}

func (f *fakeCache) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	f.mu.Lock()
	f.items[key] = data
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Delete(ctx context.Context, key string) error {
	f.mu.Lock()
	delete(f.items, key)
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) DeletePattern(ctx context.Context, pattern string) error {
	prefix := strings.TrimSuffix(pattern, "*")
	f.mu.Lock()
	for key := range f.items {
		if strings.HasPrefix(key, prefix) {
			delete(f.items, key)
		}
	}
	f.mu.Unlock()
	return nil
}

func (f *fakeCache) Exists(ctx context.Context, key string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	_, ok := f.items[key]
	return ok
}

func (f *fakeCache) GetOrSet(ctx context.Context, key string, ttl time.Duration, fetcher func() (interface{}, error), dest interface{}) error {
	if err := f.Get(ctx, key, dest); err == nil {
		return nil
	}
	data, err := fetcher()
	if err != nil {
		return err
	}
	if err := f.Set(ctx, key, data, ttl); err != nil {
		return err
	}
	return f.Get(ctx, key, dest)
}

func (f *fakeCache) Ping(ctx context.Context) error { return nil }

func TestService_GetSeatMapServedFromCache(t *testing.T) {
	ctx := context.Background()
	svc, store := newTestService(t, []Seat{
		testSeat("VIP", "A", 1, 0, StateAvailable, 150),
		testSeat("VIP", "A", 2, 1, StateAvailable, 150),
	})
	svc.SetCacheService(newFakeCache())

	first, err := svc.GetSeatMap(ctx, "VIP")
	if err != nil {
		t.Fatalf("GetSeatMap() error = %v", err)
	}
	if first.Available != 2 {
		t.Fatalf("Available = %d, want 2", first.Available)
	}

	// Mutate the store behind the service's back. The cached map keeps
	// being served until the section is invalidated.
	if err := store.Transition(ctx, SeatID("VIP", "A", 1), StateAvailable, StateReserved, "customer-1"); err != nil {
		t.Fatalf("Transition() error = %v", err)
	}

	stale, err := svc.GetSeatMap(ctx, "VIP")
	if err != nil {
		t.Fatalf("GetSeatMap() error = %v", err)
	}
	if stale.Available != 2 {
		t.Errorf("cached Available = %d, want 2", stale.Available)
	}

	svc.InvalidateSection(ctx, "VIP")
	fresh, err := svc.GetSeatMap(ctx, "VIP")
	if err != nil {
		t.Fatalf("GetSeatMap() error = %v", err)
	}
	if fresh.Available != 1 {
		t.Errorf("Available after invalidation = %d, want 1", fresh.Available)
	}
}

func TestService_ListSeatsRejectsUnknownStateFilter(t *testing.T) {
	svc, _ := newTestService(t, nil)
	_, err := svc.ListSeats(context.Background(), ListFilter{State: SeatState("BROKEN")})
	if !errors.Is(err, ErrInvalidArgument) {
		t.Fatalf("ListSeats() error = %v, want ErrInvalidArgument", err)
	}
}
