package venues

// SectionRequest mirrors Section with field validation for the admin API
type SectionRequest struct {
	ID          string  `json:"id" validate:"required"`
	DisplayName string  `json:"display_name" validate:"required"`
	Kind        string  `json:"kind" validate:"required,oneof=UNIFORM_GRID LATERAL_BLOCK"`
	BasePrice   float64 `json:"base_price" validate:"gte=0"`

	RowStart    string `json:"row_start" validate:"omitempty,len=1"`
	RowCount    int    `json:"row_count" validate:"omitempty,gte=1"`
	SeatsPerRow []int  `json:"seats_per_row" validate:"omitempty,dive,gte=1"`

	RowFrom int `json:"row_from" validate:"omitempty,gte=1"`
	RowTo   int `json:"row_to" validate:"omitempty,gte=1"`
	BoxFrom int `json:"box_from" validate:"omitempty,gte=1"`
	BoxTo   int `json:"box_to" validate:"omitempty,gte=1"`
}

// TopologyRequest is the admin payload for registering a venue topology
type TopologyRequest struct {
	VenueID  string           `json:"venue_id" validate:"required"`
	Name     string           `json:"name" validate:"required"`
	Sections []SectionRequest `json:"sections" validate:"required,min=1,dive"`
}

// ToTopology converts the request into the domain model. Structural checks
// beyond field shape happen in Topology.Validate.
func (r *TopologyRequest) ToTopology() Topology {
	sections := make([]Section, 0, len(r.Sections))
	for _, sr := range r.Sections {
		sections = append(sections, Section{
			ID:          sr.ID,
			DisplayName: sr.DisplayName,
			Kind:        TopologyKind(sr.Kind),
			BasePrice:   sr.BasePrice,
			RowStart:    sr.RowStart,
			RowCount:    sr.RowCount,
			SeatsPerRow: sr.SeatsPerRow,
			RowFrom:     sr.RowFrom,
			RowTo:       sr.RowTo,
			BoxFrom:     sr.BoxFrom,
			BoxTo:       sr.BoxTo,
		})
	}
	return Topology{
		VenueID:  r.VenueID,
		Name:     r.Name,
		Sections: sections,
	}
}
