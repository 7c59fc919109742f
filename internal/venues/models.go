package venues

import (
	"fmt"
	"strings"

	"ticketly/internal/seats"
)

// TopologyKind selects the addressing algorithm for a section
type TopologyKind string

const (
	KindUniformGrid  TopologyKind = "UNIFORM_GRID"
	KindLateralBlock TopologyKind = "LATERAL_BLOCK"
)

// Section describes how one block of seats is generated. UniformGrid
// sections use RowStart/RowCount/SeatsPerRow; LateralBlock sections use the
// inclusive 1-based RowFrom/RowTo and BoxFrom/BoxTo ranges.
type Section struct {
	ID          string       `json:"id"`
	DisplayName string       `json:"display_name"`
	Kind        TopologyKind `json:"kind"`
	BasePrice   float64      `json:"base_price"`

	// UniformGrid parameters. RowStart defaults to "A". SeatsPerRow is
	// indexed per row; rows past its length reuse the first entry.
	RowStart    string `json:"row_start,omitempty"`
	RowCount    int    `json:"row_count,omitempty"`
	SeatsPerRow []int  `json:"seats_per_row,omitempty"`

	// LateralBlock parameters, inclusive 1-based ranges.
	RowFrom int `json:"row_from,omitempty"`
	RowTo   int `json:"row_to,omitempty"`
	BoxFrom int `json:"box_from,omitempty"`
	BoxTo   int `json:"box_to,omitempty"`
}

// Topology is the full static description of a venue
type Topology struct {
	VenueID  string    `json:"venue_id"`
	Name     string    `json:"name"`
	Sections []Section `json:"sections"`
}

// ConfigurationError reports a malformed topology. Generation aborts on the
// first one; a partially built inventory is never returned.
type ConfigurationError struct {
	SectionID string
	Reason    string
}

func (e *ConfigurationError) Error() string {
	if e.SectionID == "" {
		return "invalid topology: " + e.Reason
	}
	return fmt.Sprintf("invalid topology for section %q: %s", e.SectionID, e.Reason)
}

func configErr(sectionID, format string, args ...interface{}) *ConfigurationError {
	return &ConfigurationError{SectionID: sectionID, Reason: fmt.Sprintf(format, args...)}
}

// Validate checks every structural invariant of the section
func (s *Section) Validate() error {
	if s.ID == "" {
		return configErr("", "section id is required")
	}
	if strings.Contains(s.ID, seats.IDSeparator) {
		return configErr(s.ID, "section id must not contain %q", seats.IDSeparator)
	}
	if s.BasePrice < 0 {
		return configErr(s.ID, "base price must be >= 0, got %v", s.BasePrice)
	}

	switch s.Kind {
	case KindUniformGrid:
		if s.RowCount < 1 {
			return configErr(s.ID, "row count must be >= 1, got %d", s.RowCount)
		}
		if len(s.SeatsPerRow) == 0 {
			return configErr(s.ID, "seats per row sequence is empty")
		}
		for i, n := range s.SeatsPerRow {
			if n < 1 {
				return configErr(s.ID, "seats per row entry %d must be >= 1, got %d", i, n)
			}
		}
		start := s.rowStartLetter()
		if start < 'A' || start > 'Z' {
			return configErr(s.ID, "row start must be a single letter A-Z, got %q", s.RowStart)
		}
		if start+rune(s.RowCount-1) > 'Z' {
			return configErr(s.ID, "row range %c+%d rows runs past Z", start, s.RowCount)
		}
	case KindLateralBlock:
		if s.RowFrom < 1 {
			return configErr(s.ID, "row range must start at >= 1, got %d", s.RowFrom)
		}
		if s.RowTo < s.RowFrom {
			return configErr(s.ID, "inverted row range %d..%d", s.RowFrom, s.RowTo)
		}
		if s.BoxFrom < 1 {
			return configErr(s.ID, "box range must start at >= 1, got %d", s.BoxFrom)
		}
		if s.BoxTo < s.BoxFrom {
			return configErr(s.ID, "inverted box range %d..%d", s.BoxFrom, s.BoxTo)
		}
	default:
		return configErr(s.ID, "unknown topology kind %q", s.Kind)
	}

	return nil
}

// SeatCount returns the number of seats the section resolves to
func (s *Section) SeatCount() int {
	switch s.Kind {
	case KindUniformGrid:
		total := 0
		for row := 0; row < s.RowCount; row++ {
			total += s.seatsInRow(row)
		}
		return total
	case KindLateralBlock:
		return (s.RowTo - s.RowFrom + 1) * (s.BoxTo - s.BoxFrom + 1)
	default:
		return 0
	}
}

func (s *Section) rowStartLetter() rune {
	if s.RowStart == "" {
		return 'A'
	}
	runes := []rune(s.RowStart)
	if len(runes) != 1 {
		return 0
	}
	return runes[0]
}

func (s *Section) seatsInRow(rowIndex int) int {
	if rowIndex < len(s.SeatsPerRow) {
		return s.SeatsPerRow[rowIndex]
	}
	return s.SeatsPerRow[0]
}

// Validate checks the whole topology, sections included
func (t *Topology) Validate() error {
	if t.VenueID == "" {
		return configErr("", "venue id is required")
	}
	if len(t.Sections) == 0 {
		return configErr("", "topology has no sections")
	}

	seen := make(map[string]bool, len(t.Sections))
	for i := range t.Sections {
		section := &t.Sections[i]
		if err := section.Validate(); err != nil {
			return err
		}
		if seen[section.ID] {
			return configErr(section.ID, "duplicate section id")
		}
		seen[section.ID] = true
	}

	return nil
}

// SeatCount returns the total seat count across all sections
func (t *Topology) SeatCount() int {
	total := 0
	for i := range t.Sections {
		total += t.Sections[i].SeatCount()
	}
	return total
}
