package realtime

import (
	"log"
	"sync"
)

// conn is the slice of *websocket.Conn the hub needs. Kept narrow so tests
// can plug in a fake.
type conn interface {
	WriteJSON(v interface{}) error
	Close() error
}

// Address helpers. Every connection subscribes to its user address plus the
// role and village addresses derived from the account.

func UserAddress(userID string) string {
	return "user:" + userID
}

func RoleAddress(role string) string {
	return "role:" + role
}

func VillageAddress(village string) string {
	return "village:" + village
}

// Hub routes payloads to live websocket connections grouped by address. A
// connection failing a write is dropped from every address it subscribed to.
type Hub struct {
	mu      sync.RWMutex
	clients map[string]map[conn]bool
}

func NewHub() *Hub {
	return &Hub{clients: make(map[string]map[conn]bool)}
}

// Register subscribes a connection to the given addresses.
func (h *Hub) Register(c conn, addresses ...string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	for _, addr := range addresses {
		if h.clients[addr] == nil {
			h.clients[addr] = make(map[conn]bool)
		}
		h.clients[addr][c] = true
	}
}

// Unregister drops a connection from every address and closes it.
func (h *Hub) Unregister(c conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.removeLocked(c)
	c.Close()
}

func (h *Hub) removeLocked(c conn) {
	for addr, conns := range h.clients {
		delete(conns, c)
		if len(conns) == 0 {
			delete(h.clients, addr)
		}
	}
}

// Publish sends the payload to every connection subscribed to the address.
// Dead connections are evicted; a miss on the address is not an error.
func (h *Hub) Publish(address string, payload interface{}) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients[address] {
		if err := c.WriteJSON(payload); err != nil {
			log.Printf("realtime write to %s failed: %v", address, err)
			c.Close()
			h.removeLocked(c)
		}
	}
	return nil
}

// Subscribers returns how many connections listen on an address.
func (h *Hub) Subscribers(address string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[address])
}
