package cart

// CartResponse is the customer-facing view of a cart: current selection,
// running total, and any ids removed from the inventory since selection.
type CartResponse struct {
	CustomerID string   `json:"customer_id"`
	Items      []string `json:"items"`
	Total      float64  `json:"total"`
	Removed    []string `json:"removed,omitempty"`
}
