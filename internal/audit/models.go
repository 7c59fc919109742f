package audit

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// ActionType identifies what kind of mutation an audit event describes
type ActionType string

const (
	ActionSeatSelected         ActionType = "SEAT_SELECTED"
	ActionSeatDeselected       ActionType = "SEAT_DESELECTED"
	ActionCartCommitted        ActionType = "CART_COMMITTED"
	ActionCartCleared          ActionType = "CART_CLEARED"
	ActionSaleConfirmed        ActionType = "SALE_CONFIRMED"
	ActionAdminForceState      ActionType = "ADMIN_FORCE_STATE"
	ActionAdminCycleState      ActionType = "ADMIN_CYCLE_STATE"
	ActionAdminPriceOverride   ActionType = "ADMIN_PRICE_OVERRIDE"
	ActionAdminSeatRemoved     ActionType = "ADMIN_SEAT_REMOVED"
	ActionInventoryProvisioned ActionType = "INVENTORY_PROVISIONED"
)

// Event is one immutable audit trail entry. Events are fire-and-forget:
// a failed publish is logged by the caller but never fails the mutation
// it describes.
type Event struct {
	ID        uuid.UUID              `json:"id"`
	Action    ActionType             `json:"action"`
	Principal string                 `json:"principal"`
	SeatIDs   []string               `json:"seat_ids,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
	CreatedAt time.Time              `json:"created_at"`
}

// NewEvent builds an audit event with a fresh id and timestamp
func NewEvent(action ActionType, principal string, seatIDs []string, details map[string]interface{}) *Event {
	return &Event{
		ID:        uuid.New(),
		Action:    action,
		Principal: principal,
		SeatIDs:   seatIDs,
		Details:   details,
		CreatedAt: time.Now().UTC(),
	}
}

// ToJSON serializes the event for the wire
func (e *Event) ToJSON() ([]byte, error) {
	return json.Marshal(e)
}

// PartitionKey keys events by principal so one actor's actions land on
// the same partition in order.
func (e *Event) PartitionKey() string {
	if e.Principal != "" {
		return e.Principal
	}
	return e.ID.String()
}
