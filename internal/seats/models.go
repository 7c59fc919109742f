package seats

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

// SeatState is the lifecycle state of a single seat.
type SeatState string

const (
	StateAvailable SeatState = "AVAILABLE"
	StateReserved  SeatState = "RESERVED"
	StateSold      SeatState = "SOLD"
)

// stateCycle fixes the order used by the admin click-through helper.
var stateCycle = []SeatState{StateAvailable, StateReserved, StateSold}

func (s SeatState) Valid() bool {
	for _, state := range stateCycle {
		if s == state {
			return true
		}
	}
	return false
}

// Next returns the state that follows s in the admin cycle
// AVAILABLE -> RESERVED -> SOLD -> AVAILABLE.
func (s SeatState) Next() SeatState {
	for i, state := range stateCycle {
		if s == state {
			return stateCycle[(i+1)%len(stateCycle)]
		}
	}
	return StateAvailable
}

// IDSeparator joins the components of a composite seat id. Section ids are
// validated to never contain it and row labels are letters or digits, so the
// composite parses back unambiguously.
const IDSeparator = ":"

// SeatID builds the composite id for a seat: "<section>:<row>:<number>".
func SeatID(sectionID, rowLabel string, seatNumber int) string {
	return sectionID + IDSeparator + rowLabel + IDSeparator + strconv.Itoa(seatNumber)
}

// ParseSeatID splits a composite seat id back into its components.
func ParseSeatID(id string) (sectionID, rowLabel string, seatNumber int, err error) {
	parts := strings.Split(id, IDSeparator)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", 0, fmt.Errorf("%w: malformed seat id %q", ErrInvalidArgument, id)
	}
	number, err := strconv.Atoi(parts[2])
	if err != nil || number < 1 {
		return "", "", 0, fmt.Errorf("%w: malformed seat number in id %q", ErrInvalidArgument, id)
	}
	return parts[0], parts[1], number, nil
}

// Seat is the authoritative record for one physical seat.
type Seat struct {
	ID         string    `gorm:"primaryKey" json:"id"`
	SectionID  string    `gorm:"index;not null" json:"section_id"`
	RowLabel   string    `gorm:"not null" json:"row_label"`
	SeatNumber int       `gorm:"not null" json:"seat_number"`
	Position   int       `gorm:"not null" json:"position"`
	State      SeatState `gorm:"type:varchar(20);default:'AVAILABLE'" json:"state"`
	Price      float64   `gorm:"not null" json:"price"`
	Holder     string    `json:"holder,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// TableName sets the table name for Seat
func (Seat) TableName() string {
	return "seats"
}

func (s *Seat) IsAvailable() bool {
	return s.State == StateAvailable
}

// ToResponse projects the seat onto the contract boundary fields.
func (s *Seat) ToResponse() SeatResponse {
	return SeatResponse{
		ID:         s.ID,
		SectionID:  s.SectionID,
		RowLabel:   s.RowLabel,
		SeatNumber: s.SeatNumber,
		State:      string(s.State),
		Price:      s.Price,
	}
}
