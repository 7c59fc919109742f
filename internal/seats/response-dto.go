package seats

// SeatResponse is the contract-boundary projection of a seat. Anything the
// UI layers with (colors, gate numbers, images) stays on their side.
type SeatResponse struct {
	ID         string  `json:"id"`
	SectionID  string  `json:"section_id"`
	RowLabel   string  `json:"row_label"`
	SeatNumber int     `json:"seat_number"`
	State      string  `json:"state"`
	Price      float64 `json:"price"`
}

// SeatDetailResponse is the single-seat projection with section metadata
// joined in for the detail view.
type SeatDetailResponse struct {
	SeatResponse
	SectionName string `json:"section_name,omitempty"`
	Holder      string `json:"holder,omitempty"`
}

// SeatMapResponse is the per-section seat map painted by the view layer.
type SeatMapResponse struct {
	SectionID string         `json:"section_id"`
	Seats     []SeatResponse `json:"seats"`
	Total     int            `json:"total"`
	Available int            `json:"available"`
}
