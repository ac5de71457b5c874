package hub

import (
	"encoding/json"
	"sync"
)

// Event represents a real-time event to be sent to clients.
type Event struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload"`
}

// Client represents a single streaming connection. It is a channel that the
// SSE handler drains while the connection is open.
type Client chan []byte

// Hub is the in-process fan-out registry: one topic per chat, each holding the
// set of clients currently subscribed to it. It is constructed once at server
// start and injected wherever broadcasting is needed; there is no package
// global.
type Hub struct {
	mu      sync.RWMutex
	topics  map[uint]map[Client]bool
	clients map[Client][]uint
	closed  bool
}

// NewHub creates a new Hub.
func NewHub() *Hub {
	return &Hub{
		topics:  make(map[uint]map[Client]bool),
		clients: make(map[Client][]uint),
	}
}

// Subscribe registers the client on each given chat topic. The topic set is a
// snapshot: chats created after this call do not reach the client until it
// reconnects and subscribes again.
func (h *Hub) Subscribe(client Client, chatIDs ...uint) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	for _, chatID := range chatIDs {
		if _, ok := h.topics[chatID]; !ok {
			h.topics[chatID] = make(map[Client]bool)
		}
		if !h.topics[chatID][client] {
			h.topics[chatID][client] = true
			h.clients[client] = append(h.clients[client], chatID)
		}
	}
}

// UnsubscribeAll removes every topic registration for the client and closes
// its channel. Safe to call for a client the hub no longer knows about.
func (h *Hub) UnsubscribeAll(client Client) {
	h.mu.Lock()
	defer h.mu.Unlock()

	chatIDs, ok := h.clients[client]
	if !ok {
		return
	}
	for _, chatID := range chatIDs {
		if clients, ok := h.topics[chatID]; ok {
			delete(clients, client)
			if len(clients) == 0 {
				delete(h.topics, chatID)
			}
		}
	}
	delete(h.clients, client)
	close(client) // Signal the streaming handler to stop.
}

// Broadcast sends an event to all clients currently subscribed to the chat's
// topic. Delivery is at-most-once and best-effort: a client whose channel is
// full is skipped rather than allowed to stall the publisher.
func (h *Hub) Broadcast(chatID uint, event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	clients, ok := h.topics[chatID]
	if !ok {
		return
	}
	messageBytes, err := json.Marshal(event)
	if err != nil {
		return
	}

	for client := range clients {
		select {
		case client <- messageBytes:
		default:
			// Slow or gone; the unsubscribe on disconnect cleans it up.
		}
	}
}

// Close tears down every registration and closes every client channel. Called
// once on server shutdown; the hub accepts no subscriptions afterwards.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.closed {
		return
	}
	h.closed = true
	for client := range h.clients {
		close(client)
	}
	h.topics = make(map[uint]map[Client]bool)
	h.clients = make(map[Client][]uint)
}
