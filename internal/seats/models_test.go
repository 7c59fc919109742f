package seats

import (
	"errors"
	"testing"
)

func TestSeatIDRoundTrip(t *testing.T) {
	id := SeatID("PLATINUM-IZQ", "3", 4)
	if id != "PLATINUM-IZQ:3:4" {
		t.Fatalf("SeatID() = %s, want PLATINUM-IZQ:3:4", id)
	}

	sectionID, rowLabel, number, err := ParseSeatID(id)
	if err != nil {
		t.Fatalf("ParseSeatID() error = %v", err)
	}
	if sectionID != "PLATINUM-IZQ" || rowLabel != "3" || number != 4 {
		t.Errorf("ParseSeatID() = (%s, %s, %d), want (PLATINUM-IZQ, 3, 4)", sectionID, rowLabel, number)
	}
}

func TestParseSeatIDRejectsMalformedIDs(t *testing.T) {
	tests := []struct {
		name string
		id   string
	}{
		{"empty", ""},
		{"missing parts", "VIP:A"},
		{"too many parts", "VIP:A:1:extra"},
		{"non numeric seat", "VIP:A:one"},
		{"zero seat number", "VIP:A:0"},
		{"negative seat number", "VIP:A:-2"},
		{"empty section", ":A:1"},
		{"empty row", "VIP::1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, _, _, err := ParseSeatID(tt.id); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ParseSeatID(%q) error = %v, want ErrInvalidArgument", tt.id, err)
			}
		})
	}
}

func TestSeatStateNextCycles(t *testing.T) {
	tests := []struct {
		from SeatState
		want SeatState
	}{
		{StateAvailable, StateReserved},
		{StateReserved, StateSold},
		{StateSold, StateAvailable},
	}

	for _, tt := range tests {
		if got := tt.from.Next(); got != tt.want {
			t.Errorf("%s.Next() = %s, want %s", tt.from, got, tt.want)
		}
	}
}

func TestSeatStateValid(t *testing.T) {
	for _, state := range []SeatState{StateAvailable, StateReserved, StateSold} {
		if !state.Valid() {
			t.Errorf("%s.Valid() = false, want true", state)
		}
	}
	if SeatState("BROKEN").Valid() {
		t.Error("Valid() accepted an unknown state")
	}
}
