package websocket

import (
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Client represents a connected provider
type Client struct {
	Hub        *Hub
	ProviderID uint
	Conn       *websocket.Conn
	Send       chan []byte
}

// Hub manages the provider notification connections
type Hub struct {
	// Connected providers by ID. One connection per provider; a new
	// connection replaces the old one.
	Providers map[uint]*Client

	// Register requests from clients
	Register chan *Client

	// Unregister requests from clients
	Unregister chan *Client

	mu sync.RWMutex
}

// Message is a provider notification pushed over the socket
type Message struct {
	Type      string    `json:"type"`
	BookingID uint      `json:"booking_id,omitempty"`
	Title     string    `json:"title"`
	Body      string    `json:"body"`
	Timestamp time.Time `json:"timestamp"`
}

// NewHub creates a new notification hub
func NewHub() *Hub {
	return &Hub{
		Providers:  make(map[uint]*Client),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
	}
}

// Run starts the hub's main loop
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if old, ok := h.Providers[client.ProviderID]; ok {
				close(old.Send)
			}
			h.Providers[client.ProviderID] = client
			h.mu.Unlock()
			log.Printf("🔌 Provider %d connected", client.ProviderID)

		case client := <-h.Unregister:
			h.mu.Lock()
			if current, ok := h.Providers[client.ProviderID]; ok && current == client {
				delete(h.Providers, client.ProviderID)
				close(client.Send)
			}
			h.mu.Unlock()
			log.Printf("🔌 Provider %d disconnected", client.ProviderID)
		}
	}
}

// SendToProvider pushes a notification to one provider, dropping it when the
// provider is not connected or the buffer is full.
func (h *Hub) SendToProvider(providerID uint, message *Message) {
	if message.Timestamp.IsZero() {
		message.Timestamp = time.Now()
	}

	h.mu.RLock()
	client, exists := h.Providers[providerID]
	h.mu.RUnlock()

	if !exists {
		return
	}

	data, err := json.Marshal(message)
	if err != nil {
		log.Printf("❌ Error marshaling notification: %v", err)
		return
	}

	select {
	case client.Send <- data:
	default:
		log.Printf("⚠️ Provider %d's send buffer is full, dropping notification", providerID)
	}
}

// ConnectedProviders returns the number of open provider connections
func (h *Hub) ConnectedProviders() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.Providers)
}
