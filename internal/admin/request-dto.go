package admin

// ForceStateRequest is the payload for a forced state transition
type ForceStateRequest struct {
	State string `json:"state" binding:"required,oneof=AVAILABLE RESERVED SOLD"`
}

// OverridePriceRequest is the payload for a price override. Price is a
// pointer so an explicit zero survives binding.
type OverridePriceRequest struct {
	Price *float64 `json:"price" binding:"required,gte=0"`
}
