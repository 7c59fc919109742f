package cart

import "sync"

// Manager hands out one cart per customer id. Carts are created lazily on
// first use and destroyed on clear or when a commit empties them. The
// manager lock only guards the map; carts synchronize themselves.
type Manager struct {
	mu    sync.Mutex
	carts map[string]*Cart
}

func NewManager() *Manager {
	return &Manager{
		carts: make(map[string]*Cart),
	}
}

// GetOrCreate returns the customer's cart, creating it if needed
func (m *Manager) GetOrCreate(customerID string) *Cart {
	m.mu.Lock()
	defer m.mu.Unlock()

	if cart, ok := m.carts[customerID]; ok {
		return cart
	}
	cart := NewCart()
	m.carts[customerID] = cart
	return cart
}

// Peek returns the customer's cart without creating one
func (m *Manager) Peek(customerID string) (*Cart, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()

	cart, ok := m.carts[customerID]
	return cart, ok
}

// Destroy drops the customer's cart
func (m *Manager) Destroy(customerID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.carts, customerID)
}

// Count reports how many live carts exist
func (m *Manager) Count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.carts)
}
