package venues

// ProvisionResponse reports the outcome of a provisioning run
type ProvisionResponse struct {
	VenueID    string `json:"venue_id"`
	SeatCount  int    `json:"seat_count"`
	DemoSeeded bool   `json:"demo_seeded"`
}

// SectionLayoutResponse is the per-section overview the view layer paints
type SectionLayoutResponse struct {
	ID          string  `json:"id"`
	DisplayName string  `json:"display_name"`
	Kind        string  `json:"kind"`
	BasePrice   float64 `json:"base_price"`
	SeatCount   int     `json:"seat_count"`
	Available   int     `json:"available"`
}

// VenueLayoutResponse is the full venue overview
type VenueLayoutResponse struct {
	VenueID  string                  `json:"venue_id"`
	Name     string                  `json:"name"`
	Sections []SectionLayoutResponse `json:"sections"`
}
