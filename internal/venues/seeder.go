package venues

import (
	"fmt"
	"math/rand"

	"ticketly/internal/seats"
)

// DemoSeeder simulates business history on a freshly generated inventory:
// roughly 70% of seats stay Available and the rest split between Reserved
// and Sold, with a synthetic holder attached to every non-available seat.
// Fixture and demo use only; production inventories start all-Available.
type DemoSeeder struct {
	seed int64
}

// NewDemoSeeder creates a seeder. The same seed over the same inventory
// yields the same state assignment.
func NewDemoSeeder(seed int64) *DemoSeeder {
	return &DemoSeeder{seed: seed}
}

// Apply mutates the inventory in place and returns it
func (d *DemoSeeder) Apply(inventory []seats.Seat) []seats.Seat {
	rng := rand.New(rand.NewSource(d.seed))

	for i := range inventory {
		roll := rng.Float64()
		switch {
		case roll < 0.70:
			inventory[i].State = seats.StateAvailable
		case roll < 0.85:
			inventory[i].State = seats.StateReserved
		default:
			inventory[i].State = seats.StateSold
		}
		if inventory[i].State != seats.StateAvailable {
			inventory[i].Holder = fmt.Sprintf("demo-customer-%03d", rng.Intn(500))
		}
	}

	return inventory
}

// DemoTopology returns the built-in five-section concert venue used by the
// demo provisioning flag and by tests that want a realistic layout.
func DemoTopology() Topology {
	return Topology{
		VenueID: "concert-main",
		Name:    "Concert Main Hall",
		Sections: []Section{
			{
				ID:          "VIP",
				DisplayName: "VIP",
				Kind:        KindUniformGrid,
				BasePrice:   150,
				RowCount:    5,
				SeatsPerRow: []int{20},
			},
			{
				ID:          "PREFERENCIAL",
				DisplayName: "Preferencial",
				Kind:        KindUniformGrid,
				BasePrice:   100,
				RowCount:    8,
				SeatsPerRow: []int{25},
			},
			{
				ID:          "TRIBUNA",
				DisplayName: "Tribuna",
				Kind:        KindUniformGrid,
				BasePrice:   50,
				RowCount:    11,
				SeatsPerRow: []int{30},
			},
			{
				ID:          "PLATINUM-IZQ",
				DisplayName: "Platinum Izquierda",
				Kind:        KindLateralBlock,
				BasePrice:   200,
				RowFrom:     1,
				RowTo:       5,
				BoxFrom:     1,
				BoxTo:       4,
			},
			{
				ID:          "PLATINUM-DER",
				DisplayName: "Platinum Derecha",
				Kind:        KindLateralBlock,
				BasePrice:   200,
				RowFrom:     1,
				RowTo:       5,
				BoxFrom:     1,
				BoxTo:       4,
			},
		},
	}
}
