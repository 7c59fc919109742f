package venues

import (
	"strconv"

	"ticketly/internal/seats"
)

// Generate builds the full seat inventory for a topology. It is pure and
// deterministic: identical topologies produce identical seat id sets, which
// makes re-seeding idempotent. Every seat starts Available at the section's
// base price; demo state simulation lives in the seeder, not here.
func Generate(topology Topology) ([]seats.Seat, error) {
	// Validate everything up front so a bad section can never leave a
	// partially built inventory behind.
	if err := topology.Validate(); err != nil {
		return nil, err
	}

	inventory := make([]seats.Seat, 0, topology.SeatCount())
	for i := range topology.Sections {
		inventory = append(inventory, generateSection(&topology.Sections[i])...)
	}
	return inventory, nil
}

func generateSection(section *Section) []seats.Seat {
	out := make([]seats.Seat, 0, section.SeatCount())
	position := 0

	appendSeat := func(rowLabel string, number int) {
		out = append(out, seats.Seat{
			ID:         seats.SeatID(section.ID, rowLabel, number),
			SectionID:  section.ID,
			RowLabel:   rowLabel,
			SeatNumber: number,
			Position:   position,
			State:      seats.StateAvailable,
			Price:      section.BasePrice,
		})
		position++
	}

	switch section.Kind {
	case KindUniformGrid:
		start := section.rowStartLetter()
		for row := 0; row < section.RowCount; row++ {
			rowLabel := string(start + rune(row))
			for number := 1; number <= section.seatsInRow(row); number++ {
				appendSeat(rowLabel, number)
			}
		}
	case KindLateralBlock:
		for row := section.RowFrom; row <= section.RowTo; row++ {
			rowLabel := strconv.Itoa(row)
			for box := section.BoxFrom; box <= section.BoxTo; box++ {
				appendSeat(rowLabel, box)
			}
		}
	}

	return out
}
