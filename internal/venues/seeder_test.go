package venues

import (
	"strings"
	"testing"

	"ticketly/internal/seats"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoSeederIsDeterministic(t *testing.T) {
	first, err := Generate(DemoTopology())
	require.NoError(t, err)
	second, err := Generate(DemoTopology())
	require.NoError(t, err)

	NewDemoSeeder(42).Apply(first)
	NewDemoSeeder(42).Apply(second)

	for i := range first {
		assert.Equal(t, first[i].State, second[i].State, "seat %s", first[i].ID)
		assert.Equal(t, first[i].Holder, second[i].Holder, "seat %s", first[i].ID)
	}
}

func TestDemoSeederDifferentSeedsDiffer(t *testing.T) {
	first, err := Generate(DemoTopology())
	require.NoError(t, err)
	second, err := Generate(DemoTopology())
	require.NoError(t, err)

	NewDemoSeeder(1).Apply(first)
	NewDemoSeeder(2).Apply(second)

	same := 0
	for i := range first {
		if first[i].State == second[i].State {
			same++
		}
	}
	assert.Less(t, same, len(first), "different seeds produced identical state assignments")
}

func TestDemoSeederStateDistribution(t *testing.T) {
	inventory, err := Generate(DemoTopology())
	require.NoError(t, err)
	NewDemoSeeder(7).Apply(inventory)

	counts := map[seats.SeatState]int{}
	for _, seat := range inventory {
		counts[seat.State]++
	}

	total := float64(len(inventory))
	// Rough 70/15/15 split; wide tolerance since it is a random draw.
	assert.InDelta(t, 0.70, float64(counts[seats.StateAvailable])/total, 0.10)
	assert.InDelta(t, 0.15, float64(counts[seats.StateReserved])/total, 0.10)
	assert.InDelta(t, 0.15, float64(counts[seats.StateSold])/total, 0.10)
}

func TestDemoSeederHolders(t *testing.T) {
	inventory, err := Generate(DemoTopology())
	require.NoError(t, err)
	NewDemoSeeder(7).Apply(inventory)

	for _, seat := range inventory {
		if seat.State == seats.StateAvailable {
			assert.Empty(t, seat.Holder, "available seat %s has a holder", seat.ID)
			continue
		}
		assert.True(t, strings.HasPrefix(seat.Holder, "demo-customer-"),
			"seat %s holder = %q", seat.ID, seat.Holder)
	}
}

func TestDemoTopologyShape(t *testing.T) {
	topology := DemoTopology()
	require.NoError(t, topology.Validate())

	assert.Equal(t, "concert-main", topology.VenueID)
	require.Len(t, topology.Sections, 5)

	// 100 VIP + 200 Preferencial + 330 Tribuna + 2 x 20 Platinum boxes.
	assert.Equal(t, 670, topology.SeatCount())
}
